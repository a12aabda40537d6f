// Package model defines the storefront's view of the commerce domain.
// All order and customer state is owned by the upstream shop API; these types
// are read-through projections decoded from GraphQL responses.
package model

// Order workflow states as reported by the shop API.
// The storefront only ever reads these; transitions happen upstream.
const (
	OrderStateAddingItems       = "AddingItems"
	OrderStateArrangingPayment  = "ArrangingPayment"
	OrderStatePaymentAuthorized = "PaymentAuthorized"
	OrderStatePaymentSettled    = "PaymentSettled"
	OrderStateCancelled         = "Cancelled"
)

// Order is the active cart/order aggregate. Every mutation is a round trip to
// the shop API followed by a refetch; the storefront never holds a writable
// copy.
type Order struct {
	ID            string         `json:"id"`
	Code          string         `json:"code"`
	State         string         `json:"state"`
	CurrencyCode  string         `json:"currencyCode"`
	SubTotal      int64          `json:"subTotal"`
	SubTotalTax   int64          `json:"subTotalWithTax"`
	Shipping      int64          `json:"shipping"`
	ShippingTax   int64          `json:"shippingWithTax"`
	Total         int64          `json:"total"`
	TotalWithTax  int64          `json:"totalWithTax"`
	TotalQuantity int            `json:"totalQuantity"`
	CouponCodes   []string       `json:"couponCodes"`
	Discounts     []Discount     `json:"discounts"`
	Lines         []OrderLine    `json:"lines"`
	Customer      *OrderCustomer `json:"customer"`

	BillingAddress  *OrderAddress  `json:"billingAddress"`
	ShippingAddress *OrderAddress  `json:"shippingAddress"`
	ShippingLines   []ShippingLine `json:"shippingLines"`
	Payments        []Payment      `json:"payments"`
}

// OrderLine is a single line item on the order.
type OrderLine struct {
	ID               string         `json:"id"`
	Quantity         int            `json:"quantity"`
	UnitPrice        int64          `json:"unitPrice"`
	UnitPriceWithTax int64          `json:"unitPriceWithTax"`
	LinePrice        int64          `json:"linePrice"`
	LinePriceWithTax int64          `json:"linePriceWithTax"`
	ProductVariant   ProductVariant `json:"productVariant"`
}

// OrderAddress is a normalized postal address attached to an order.
type OrderAddress struct {
	FullName    string `json:"fullName,omitempty"`
	Company     string `json:"company,omitempty"`
	StreetLine1 string `json:"streetLine1"`
	StreetLine2 string `json:"streetLine2,omitempty"`
	City        string `json:"city,omitempty"`
	Province    string `json:"province,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// OrderCustomer is the customer snapshot embedded in an order.
type OrderCustomer struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
}

// ShippingLine is a chosen shipping method plus its price.
type ShippingLine struct {
	ShippingMethod ShippingMethod `json:"shippingMethod"`
	PriceWithTax   int64          `json:"priceWithTax"`
}

// ShippingMethod describes one fulfillment option.
type ShippingMethod struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ShippingMethodQuote is an eligible shipping method with its quoted price.
type ShippingMethodQuote struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Price        int64  `json:"price"`
	PriceWithTax int64  `json:"priceWithTax"`
}

// PaymentMethodQuote is an eligible payment method.
type PaymentMethodQuote struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsEligible  bool   `json:"isEligible"`
}

// Payment is one payment attempt recorded on the order.
type Payment struct {
	ID     string `json:"id"`
	Method string `json:"method"`
	Amount int64  `json:"amount"`
	State  string `json:"state"`
}

// Discount is an applied promotion or coupon adjustment.
type Discount struct {
	Description   string `json:"description"`
	AmountWithTax int64  `json:"amountWithTax"`
}

// CreateAddressInput is the input for setting order addresses.
// CountryCode and StreetLine1 are the only required fields upstream.
type CreateAddressInput struct {
	FullName    string `json:"fullName,omitempty"`
	Company     string `json:"company,omitempty"`
	StreetLine1 string `json:"streetLine1"`
	StreetLine2 string `json:"streetLine2,omitempty"`
	City        string `json:"city,omitempty"`
	Province    string `json:"province,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	CountryCode string `json:"countryCode"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// CreateCustomerInput identifies a guest customer for an order.
type CreateCustomerInput struct {
	Title        string `json:"title,omitempty"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	EmailAddress string `json:"emailAddress"`
}

// PaymentInput selects a payment method for AddPaymentToOrder.
// Metadata is handler-specific and passed through opaquely.
type PaymentInput struct {
	Method   string         `json:"method"`
	Metadata map[string]any `json:"metadata"`
}
