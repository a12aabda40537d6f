// Package shop defines the interface to the upstream commerce platform.
// Implementations translate these operations to the platform's API; handlers
// and actions depend only on this interface.
package shop

import (
	"context"

	"storefront/internal/model"
)

// Shop abstracts every upstream operation the storefront performs.
//
// Order mutations return the mutated order on success; business-rule
// rejections come back as *model.DomainError, transport and protocol failures
// as *model.APIError. Callers are expected to refetch ActiveOrder after a
// mutation rather than trusting the returned snapshot for subsequent state.
type Shop interface {
	// ActiveChannel returns the sales channel this storefront serves.
	ActiveChannel(ctx context.Context) (*model.Channel, error)

	// Collections returns all visible collections.
	Collections(ctx context.Context) ([]model.Collection, error)

	// Collection resolves a single collection by slug.
	Collection(ctx context.Context, slug string) (*model.Collection, error)

	// Menu returns the top-level collections used for site navigation.
	Menu(ctx context.Context) ([]model.Collection, error)

	// Product resolves a product by slug, including variants and facet values.
	Product(ctx context.Context, slug string) (*model.Product, error)

	// Facets returns all facets with their values.
	Facets(ctx context.Context) ([]model.Facet, error)

	// SearchProducts runs a faceted product search.
	SearchProducts(ctx context.Context, in SearchInput) (*SearchResponse, error)

	// AvailableCountries lists shippable destinations for address forms.
	AvailableCountries(ctx context.Context) ([]model.Country, error)

	// ActiveOrder returns the session's open order, or nil if there is none.
	ActiveOrder(ctx context.Context) (*model.Order, error)

	// OrderByCode fetches a placed order for the confirmation page.
	OrderByCode(ctx context.Context, code string) (*model.Order, error)

	AddItemToOrder(ctx context.Context, variantID string, quantity int) (*model.Order, error)
	AdjustOrderLine(ctx context.Context, lineID string, quantity int) (*model.Order, error)
	RemoveOrderLine(ctx context.Context, lineID string) (*model.Order, error)
	ApplyCouponCode(ctx context.Context, code string) (*model.Order, error)
	RemoveCouponCode(ctx context.Context, code string) (*model.Order, error)

	SetOrderShippingAddress(ctx context.Context, in model.CreateAddressInput) (*model.Order, error)
	SetOrderBillingAddress(ctx context.Context, in model.CreateAddressInput) (*model.Order, error)
	SetCustomerForOrder(ctx context.Context, in model.CreateCustomerInput) (*model.Order, error)
	SetOrderShippingMethod(ctx context.Context, methodID string) (*model.Order, error)
	AddPaymentToOrder(ctx context.Context, in model.PaymentInput) (*model.Order, error)
	TransitionOrderToState(ctx context.Context, state string) (*model.Order, error)

	EligibleShippingMethods(ctx context.Context) ([]model.ShippingMethodQuote, error)
	EligiblePaymentMethods(ctx context.Context) ([]model.PaymentMethodQuote, error)

	// Authenticate signs a customer in with the native auth strategy.
	Authenticate(ctx context.Context, username, password string) (*model.CurrentUser, error)

	// LogOut invalidates the upstream session for the current bearer token.
	LogOut(ctx context.Context) (bool, error)

	// ActiveCustomer returns the signed-in customer, or nil when the bearer
	// token is absent or no longer valid upstream.
	ActiveCustomer(ctx context.Context) (*model.OrderCustomer, error)

	RegisterCustomerAccount(ctx context.Context, in RegisterCustomerInput) (bool, error)
	VerifyCustomerAccount(ctx context.Context, token, password string) (*model.CurrentUser, error)
	UpdateCustomer(ctx context.Context, in UpdateCustomerInput) (*model.OrderCustomer, error)
	CustomerOrders(ctx context.Context, skip, take int) (*model.OrderList, error)
}

// SearchInput parameterizes a product search.
type SearchInput struct {
	Term              string
	CollectionSlug    string
	FacetValueFilters []model.FacetValueFilter
	SortKey           string // "name" or "price"
	Direction         string // "ASC" or "DESC"
	Skip              int
	Take              int
}

// FacetValueCount is a facet value with its hit count in a search result set.
type FacetValueCount struct {
	FacetValue model.FacetValue `json:"facetValue"`
	Count      int              `json:"count"`
}

// SearchResponse is a page of search hits plus the facet counts for the
// whole result set.
type SearchResponse struct {
	Items       []model.SearchResult `json:"items"`
	TotalItems  int                  `json:"totalItems"`
	FacetValues []FacetValueCount    `json:"facetValues,omitempty"`
}

// RegisterCustomerInput holds the fields for account registration.
type RegisterCustomerInput struct {
	EmailAddress string `json:"emailAddress"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	Password     string `json:"password"`
}

// UpdateCustomerInput holds the mutable profile fields.
type UpdateCustomerInput struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type authKey struct{}

// Auth carries the per-request upstream credentials: the bearer token from
// the session cookie and a sink that receives rotated tokens observed on
// upstream responses.
type Auth struct {
	Token     string
	TokenSink func(token string)
}

// WithAuth binds upstream credentials to the context for the duration of a
// request.
func WithAuth(ctx context.Context, a Auth) context.Context {
	return context.WithValue(ctx, authKey{}, a)
}

// AuthFrom extracts the request's upstream credentials, if any.
func AuthFrom(ctx context.Context) Auth {
	a, _ := ctx.Value(authKey{}).(Auth)
	return a
}
