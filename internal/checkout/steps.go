// Package checkout models the fixed sequence of checkout steps and the
// completeness rules used to gate navigation between them.
package checkout

import "storefront/internal/model"

// Step is one stage of the checkout flow. Validate reports whether the order
// carries everything this step is supposed to have collected.
type Step struct {
	Identifier string
	Title      string
	Validate   func(*model.Order) bool
}

// StepStatus is a step decorated with its position-derived display state.
type StepStatus struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	Active     bool   `json:"active"`
	Done       bool   `json:"done"`
}

// Steps is the checkout flow in order. The list is fixed; handlers index into
// it by identifier only.
var Steps = []Step{
	{
		Identifier: "addresses",
		Title:      "Addresses",
		Validate: func(o *model.Order) bool {
			return hasAddress(o.BillingAddress) && hasAddress(o.ShippingAddress)
		},
	},
	{
		Identifier: "shipping",
		Title:      "Shipping",
		Validate: func(o *model.Order) bool {
			return len(o.ShippingLines) > 0
		},
	},
	{
		Identifier: "payment",
		Title:      "Payment",
		Validate: func(o *model.Order) bool {
			return len(o.Payments) > 0
		},
	},
	{
		Identifier: "summary",
		Title:      "Summary",
		Validate: func(o *model.Order) bool {
			return hasAddress(o.BillingAddress) && hasAddress(o.ShippingAddress) &&
				len(o.ShippingLines) > 0 && o.Customer != nil
		},
	},
}

func hasAddress(a *model.OrderAddress) bool {
	return a != nil && a.StreetLine1 != ""
}

// Find returns the step with the given identifier.
func Find(identifier string) (Step, bool) {
	for _, s := range Steps {
		if s.Identifier == identifier {
			return s, true
		}
	}
	return Step{}, false
}

// Status renders the display state of every step relative to the current one.
// Done is purely positional: every step before the current one counts as done
// regardless of order contents, so a customer revisiting an earlier step sees
// the later steps they already passed through as not-done.
func Status(currentID string) []StepStatus {
	currentIdx := -1
	for i, s := range Steps {
		if s.Identifier == currentID {
			currentIdx = i
			break
		}
	}

	statuses := make([]StepStatus, len(Steps))
	for i, s := range Steps {
		statuses[i] = StepStatus{
			Identifier: s.Identifier,
			Title:      s.Title,
			Active:     i == currentIdx,
			Done:       currentIdx >= 0 && i < currentIdx,
		}
	}
	return statuses
}

// FirstIncomplete returns the earliest step whose validation fails for the
// order. Navigation past it is redirected back to it. Returns false when the
// order satisfies every step.
func FirstIncomplete(o *model.Order) (Step, bool) {
	for _, s := range Steps {
		if !s.Validate(o) {
			return s, true
		}
	}
	return Step{}, false
}

// CanVisit reports whether the step may be navigated to given the order's
// state: the target must not lie beyond the first incomplete step. When it
// does, the returned step is where the customer should be redirected.
func CanVisit(identifier string, o *model.Order) (Step, bool) {
	target := -1
	for i, s := range Steps {
		if s.Identifier == identifier {
			target = i
			break
		}
	}
	if target < 0 {
		return Step{}, false
	}

	incomplete, found := FirstIncomplete(o)
	if !found {
		return Steps[target], true
	}
	for i, s := range Steps {
		if s.Identifier == incomplete.Identifier {
			if target > i {
				return incomplete, false
			}
			break
		}
	}
	return Steps[target], true
}
