package shop

import (
	"context"

	"storefront/internal/model"
)

// Mock implements Shop for testing.
// Each method can be configured via function fields; unconfigured read
// methods return empty results and unconfigured mutations return an internal
// error so tests fail loudly when they hit an operation they did not stub.
type Mock struct {
	ActiveChannelFunc      func(ctx context.Context) (*model.Channel, error)
	CollectionsFunc        func(ctx context.Context) ([]model.Collection, error)
	CollectionFunc         func(ctx context.Context, slug string) (*model.Collection, error)
	MenuFunc               func(ctx context.Context) ([]model.Collection, error)
	ProductFunc            func(ctx context.Context, slug string) (*model.Product, error)
	FacetsFunc             func(ctx context.Context) ([]model.Facet, error)
	SearchProductsFunc     func(ctx context.Context, in SearchInput) (*SearchResponse, error)
	AvailableCountriesFunc func(ctx context.Context) ([]model.Country, error)

	ActiveOrderFunc func(ctx context.Context) (*model.Order, error)
	OrderByCodeFunc func(ctx context.Context, code string) (*model.Order, error)

	AddItemToOrderFunc   func(ctx context.Context, variantID string, quantity int) (*model.Order, error)
	AdjustOrderLineFunc  func(ctx context.Context, lineID string, quantity int) (*model.Order, error)
	RemoveOrderLineFunc  func(ctx context.Context, lineID string) (*model.Order, error)
	ApplyCouponCodeFunc  func(ctx context.Context, code string) (*model.Order, error)
	RemoveCouponCodeFunc func(ctx context.Context, code string) (*model.Order, error)

	SetOrderShippingAddressFunc func(ctx context.Context, in model.CreateAddressInput) (*model.Order, error)
	SetOrderBillingAddressFunc  func(ctx context.Context, in model.CreateAddressInput) (*model.Order, error)
	SetCustomerForOrderFunc     func(ctx context.Context, in model.CreateCustomerInput) (*model.Order, error)
	SetOrderShippingMethodFunc  func(ctx context.Context, methodID string) (*model.Order, error)
	AddPaymentToOrderFunc       func(ctx context.Context, in model.PaymentInput) (*model.Order, error)
	TransitionOrderToStateFunc  func(ctx context.Context, state string) (*model.Order, error)

	EligibleShippingMethodsFunc func(ctx context.Context) ([]model.ShippingMethodQuote, error)
	EligiblePaymentMethodsFunc  func(ctx context.Context) ([]model.PaymentMethodQuote, error)

	AuthenticateFunc            func(ctx context.Context, username, password string) (*model.CurrentUser, error)
	LogOutFunc                  func(ctx context.Context) (bool, error)
	ActiveCustomerFunc          func(ctx context.Context) (*model.OrderCustomer, error)
	RegisterCustomerAccountFunc func(ctx context.Context, in RegisterCustomerInput) (bool, error)
	VerifyCustomerAccountFunc   func(ctx context.Context, token, password string) (*model.CurrentUser, error)
	UpdateCustomerFunc          func(ctx context.Context, in UpdateCustomerInput) (*model.OrderCustomer, error)
	CustomerOrdersFunc          func(ctx context.Context, skip, take int) (*model.OrderList, error)
}

func (m *Mock) ActiveChannel(ctx context.Context) (*model.Channel, error) {
	if m.ActiveChannelFunc != nil {
		return m.ActiveChannelFunc(ctx)
	}
	return &model.Channel{Code: "__default_channel__", DefaultCurrency: "USD"}, nil
}

func (m *Mock) Collections(ctx context.Context) ([]model.Collection, error) {
	if m.CollectionsFunc != nil {
		return m.CollectionsFunc(ctx)
	}
	return nil, nil
}

func (m *Mock) Collection(ctx context.Context, slug string) (*model.Collection, error) {
	if m.CollectionFunc != nil {
		return m.CollectionFunc(ctx, slug)
	}
	return nil, model.NewNotFoundError("collection")
}

func (m *Mock) Menu(ctx context.Context) ([]model.Collection, error) {
	if m.MenuFunc != nil {
		return m.MenuFunc(ctx)
	}
	return nil, nil
}

func (m *Mock) Product(ctx context.Context, slug string) (*model.Product, error) {
	if m.ProductFunc != nil {
		return m.ProductFunc(ctx, slug)
	}
	return nil, model.NewNotFoundError("product")
}

func (m *Mock) Facets(ctx context.Context) ([]model.Facet, error) {
	if m.FacetsFunc != nil {
		return m.FacetsFunc(ctx)
	}
	return nil, nil
}

func (m *Mock) SearchProducts(ctx context.Context, in SearchInput) (*SearchResponse, error) {
	if m.SearchProductsFunc != nil {
		return m.SearchProductsFunc(ctx, in)
	}
	return &SearchResponse{}, nil
}

func (m *Mock) AvailableCountries(ctx context.Context) ([]model.Country, error) {
	if m.AvailableCountriesFunc != nil {
		return m.AvailableCountriesFunc(ctx)
	}
	return nil, nil
}

func (m *Mock) ActiveOrder(ctx context.Context) (*model.Order, error) {
	if m.ActiveOrderFunc != nil {
		return m.ActiveOrderFunc(ctx)
	}
	return nil, nil
}

func (m *Mock) OrderByCode(ctx context.Context, code string) (*model.Order, error) {
	if m.OrderByCodeFunc != nil {
		return m.OrderByCodeFunc(ctx, code)
	}
	return nil, model.NewNotFoundError("order")
}

func (m *Mock) AddItemToOrder(ctx context.Context, variantID string, quantity int) (*model.Order, error) {
	if m.AddItemToOrderFunc != nil {
		return m.AddItemToOrderFunc(ctx, variantID, quantity)
	}
	return nil, model.NewInternalError(nil)
}

func (m *Mock) AdjustOrderLine(ctx context.Context, lineID string, quantity int) (*model.Order, error) {
	if m.AdjustOrderLineFunc != nil {
		return m.AdjustOrderLineFunc(ctx, lineID, quantity)
	}
	return nil, model.NewInternalError(nil)
}

func (m *Mock) RemoveOrderLine(ctx context.Context, lineID string) (*model.Order, error) {
	if m.RemoveOrderLineFunc != nil {
		return m.RemoveOrderLineFunc(ctx, lineID)
	}
	return nil, model.NewInternalError(nil)
}

func (m *Mock) ApplyCouponCode(ctx context.Context, code string) (*model.Order, error) {
	if m.ApplyCouponCodeFunc != nil {
		return m.ApplyCouponCodeFunc(ctx, code)
	}
	return nil, model.NewInternalError(nil)
}

func (m *Mock) RemoveCouponCode(ctx context.Context, code string) (*model.Order, error) {
	if m.RemoveCouponCodeFunc != nil {
		return m.RemoveCouponCodeFunc(ctx, code)
	}
	return nil, model.NewInternalError(nil)
}

func (m *Mock) SetOrderShippingAddress(ctx context.Context, in model.CreateAddressInput) (*model.Order, error) {
	if m.SetOrderShippingAddressFunc != nil {
		return m.SetOrderShippingAddressFunc(ctx, in)
	}
	return nil, model.NewInternalError(nil)
}

func (m *Mock) SetOrderBillingAddress(ctx context.Context, in model.CreateAddressInput) (*model.Order, error) {
	if m.SetOrderBillingAddressFunc != nil {
		return m.SetOrderBillingAddressFunc(ctx, in)
	}
	return nil, model.NewInternalError(nil)
}

func (m *Mock) SetCustomerForOrder(ctx context.Context, in model.CreateCustomerInput) (*model.Order, error) {
	if m.SetCustomerForOrderFunc != nil {
		return m.SetCustomerForOrderFunc(ctx, in)
	}
	return nil, model.NewInternalError(nil)
}

func (m *Mock) SetOrderShippingMethod(ctx context.Context, methodID string) (*model.Order, error) {
	if m.SetOrderShippingMethodFunc != nil {
		return m.SetOrderShippingMethodFunc(ctx, methodID)
	}
	return nil, model.NewInternalError(nil)
}

func (m *Mock) AddPaymentToOrder(ctx context.Context, in model.PaymentInput) (*model.Order, error) {
	if m.AddPaymentToOrderFunc != nil {
		return m.AddPaymentToOrderFunc(ctx, in)
	}
	return nil, model.NewInternalError(nil)
}

func (m *Mock) TransitionOrderToState(ctx context.Context, state string) (*model.Order, error) {
	if m.TransitionOrderToStateFunc != nil {
		return m.TransitionOrderToStateFunc(ctx, state)
	}
	return nil, model.NewInternalError(nil)
}

func (m *Mock) EligibleShippingMethods(ctx context.Context) ([]model.ShippingMethodQuote, error) {
	if m.EligibleShippingMethodsFunc != nil {
		return m.EligibleShippingMethodsFunc(ctx)
	}
	return nil, nil
}

func (m *Mock) EligiblePaymentMethods(ctx context.Context) ([]model.PaymentMethodQuote, error) {
	if m.EligiblePaymentMethodsFunc != nil {
		return m.EligiblePaymentMethodsFunc(ctx)
	}
	return nil, nil
}

func (m *Mock) Authenticate(ctx context.Context, username, password string) (*model.CurrentUser, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, username, password)
	}
	return nil, model.NewInternalError(nil)
}

func (m *Mock) LogOut(ctx context.Context) (bool, error) {
	if m.LogOutFunc != nil {
		return m.LogOutFunc(ctx)
	}
	return true, nil
}

func (m *Mock) ActiveCustomer(ctx context.Context) (*model.OrderCustomer, error) {
	if m.ActiveCustomerFunc != nil {
		return m.ActiveCustomerFunc(ctx)
	}
	return nil, nil
}

func (m *Mock) RegisterCustomerAccount(ctx context.Context, in RegisterCustomerInput) (bool, error) {
	if m.RegisterCustomerAccountFunc != nil {
		return m.RegisterCustomerAccountFunc(ctx, in)
	}
	return false, model.NewInternalError(nil)
}

func (m *Mock) VerifyCustomerAccount(ctx context.Context, token, password string) (*model.CurrentUser, error) {
	if m.VerifyCustomerAccountFunc != nil {
		return m.VerifyCustomerAccountFunc(ctx, token, password)
	}
	return nil, model.NewInternalError(nil)
}

func (m *Mock) UpdateCustomer(ctx context.Context, in UpdateCustomerInput) (*model.OrderCustomer, error) {
	if m.UpdateCustomerFunc != nil {
		return m.UpdateCustomerFunc(ctx, in)
	}
	return nil, model.NewInternalError(nil)
}

func (m *Mock) CustomerOrders(ctx context.Context, skip, take int) (*model.OrderList, error) {
	if m.CustomerOrdersFunc != nil {
		return m.CustomerOrdersFunc(ctx, skip, take)
	}
	return &model.OrderList{}, nil
}
