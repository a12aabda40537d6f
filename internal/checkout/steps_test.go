package checkout

import (
	"testing"

	"storefront/internal/model"
)

func addr() *model.OrderAddress {
	return &model.OrderAddress{
		FullName:    "Jo Smith",
		StreetLine1: "1 Main St",
		City:        "Springfield",
		PostalCode:  "12345",
		CountryCode: "US",
	}
}

// orderAt builds an order completed up to (but not including) the named step.
func orderAt(step string) *model.Order {
	o := &model.Order{ID: "1", Code: "ABC123", State: model.OrderStateAddingItems}
	if step == "addresses" {
		return o
	}
	o.BillingAddress = addr()
	o.ShippingAddress = addr()
	o.Customer = &model.OrderCustomer{EmailAddress: "jo@example.com"}
	if step == "shipping" {
		return o
	}
	o.ShippingLines = []model.ShippingLine{{
		ShippingMethod: model.ShippingMethod{ID: "sm-1", Name: "Standard"},
		PriceWithTax:   500,
	}}
	if step == "payment" {
		return o
	}
	o.Payments = []model.Payment{{ID: "p-1", Method: "card", Amount: 10500, State: "Authorized"}}
	return o
}

func TestStepOrder(t *testing.T) {
	want := []string{"addresses", "shipping", "payment", "summary"}
	if len(Steps) != len(want) {
		t.Fatalf("len(Steps) = %d, want %d", len(Steps), len(want))
	}
	for i, id := range want {
		if Steps[i].Identifier != id {
			t.Errorf("Steps[%d] = %s, want %s", i, Steps[i].Identifier, id)
		}
	}
}

func TestFind(t *testing.T) {
	if _, ok := Find("shipping"); !ok {
		t.Error("Find(shipping) not found")
	}
	if _, ok := Find("gift-wrap"); ok {
		t.Error("Find(gift-wrap) should not be found")
	}
	if _, ok := Find(""); ok {
		t.Error("Find(\"\") should not be found")
	}
}

func TestStatusPositional(t *testing.T) {
	tests := []struct {
		current  string
		wantDone []bool
	}{
		{"addresses", []bool{false, false, false, false}},
		{"shipping", []bool{true, false, false, false}},
		{"payment", []bool{true, true, false, false}},
		{"summary", []bool{true, true, true, false}},
	}

	for _, tt := range tests {
		t.Run(tt.current, func(t *testing.T) {
			statuses := Status(tt.current)
			for i, st := range statuses {
				if st.Done != tt.wantDone[i] {
					t.Errorf("step %s Done = %v, want %v", st.Identifier, st.Done, tt.wantDone[i])
				}
				wantActive := st.Identifier == tt.current
				if st.Active != wantActive {
					t.Errorf("step %s Active = %v, want %v", st.Identifier, st.Active, wantActive)
				}
			}
		})
	}
}

// Revisiting an earlier step must mark later, already-visited steps as not
// done: done derives from position only, never from order contents.
func TestStatusRevisitEarlierStep(t *testing.T) {
	statuses := Status("addresses")
	for _, st := range statuses[1:] {
		if st.Done {
			t.Errorf("step %s Done = true when revisiting addresses", st.Identifier)
		}
	}
}

func TestStatusUnknownStep(t *testing.T) {
	for _, st := range Status("nonsense") {
		if st.Active || st.Done {
			t.Errorf("step %s should be neither active nor done for unknown current", st.Identifier)
		}
	}
}

func TestFirstIncomplete(t *testing.T) {
	tests := []struct {
		name   string
		order  *model.Order
		wantID string
		found  bool
	}{
		{"empty order", orderAt("addresses"), "addresses", true},
		{"addresses set", orderAt("shipping"), "shipping", true},
		{"shipping set", orderAt("payment"), "payment", true},
		{"fully complete", orderAt("done"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step, found := FirstIncomplete(tt.order)
			if found != tt.found {
				t.Fatalf("found = %v, want %v", found, tt.found)
			}
			if found && step.Identifier != tt.wantID {
				t.Errorf("step = %s, want %s", step.Identifier, tt.wantID)
			}
		})
	}
}

func TestCanVisit(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		order    *model.Order
		allowed  bool
		redirect string
	}{
		{"first step always reachable", "addresses", orderAt("addresses"), true, ""},
		{"forward jump blocked", "payment", orderAt("addresses"), false, "addresses"},
		{"next step after addresses", "shipping", orderAt("shipping"), true, ""},
		{"jump past shipping blocked", "summary", orderAt("shipping"), false, "shipping"},
		{"backward always allowed", "addresses", orderAt("payment"), true, ""},
		{"complete order reaches summary", "summary", orderAt("done"), true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step, ok := CanVisit(tt.target, tt.order)
			if ok != tt.allowed {
				t.Fatalf("CanVisit(%s) = %v, want %v", tt.target, ok, tt.allowed)
			}
			if !ok && step.Identifier != tt.redirect {
				t.Errorf("redirect = %s, want %s", step.Identifier, tt.redirect)
			}
		})
	}
}

func TestCanVisitUnknownStep(t *testing.T) {
	if _, ok := CanVisit("gift-wrap", orderAt("done")); ok {
		t.Error("unknown step should not be visitable")
	}
}

func TestValidateRules(t *testing.T) {
	o := orderAt("shipping")
	o.ShippingAddress = nil
	if step, _ := Find("addresses"); step.Validate(o) {
		t.Error("addresses should require both billing and shipping address")
	}

	o = orderAt("done")
	o.Customer = nil
	if step, _ := Find("summary"); step.Validate(o) {
		t.Error("summary should require a customer")
	}
}
