package vendure

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/shop"
)

// Compile-time check that Client satisfies the shop interface.
var _ shop.Shop = (*Client)(nil)

// query runs a GraphQL operation and unmarshals the data payload into out.
func (c *Client) query(ctx context.Context, req Request, out any) error {
	resp, err := c.Send(ctx, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("decoding %T: %w", out, err)
	}
	return nil
}

// orderMutation runs an order-returning mutation and collapses the union.
// field names the mutation's top-level response key.
func (c *Client) orderMutation(ctx context.Context, field, doc string, vars map[string]any) (*model.Order, error) {
	resp, err := c.Send(ctx, Request{Query: doc, Variables: vars, Cache: CacheNone})
	if err != nil {
		return nil, err
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", field, err)
	}
	raw, ok := payload[field]
	if !ok || string(raw) == "null" {
		return nil, model.NewUpstreamError("Vendure", fmt.Errorf("missing %s in response", field))
	}
	res, err := decodeOrderResult(raw)
	if err != nil {
		return nil, err
	}
	return orderFromResult(res)
}

func (c *Client) ActiveChannel(ctx context.Context) (*model.Channel, error) {
	var out struct {
		ActiveChannel *model.Channel `json:"activeChannel"`
	}
	if err := c.query(ctx, Request{Query: activeChannelQuery, Cache: CacheForce}, &out); err != nil {
		return nil, err
	}
	if out.ActiveChannel == nil {
		return nil, model.NewNotFoundError("channel")
	}
	return out.ActiveChannel, nil
}

func (c *Client) Collections(ctx context.Context) ([]model.Collection, error) {
	var out struct {
		Collections struct {
			Items []model.Collection `json:"items"`
		} `json:"collections"`
	}
	if err := c.query(ctx, Request{Query: collectionsQuery, Cache: CacheForce}, &out); err != nil {
		return nil, err
	}
	return out.Collections.Items, nil
}

func (c *Client) Collection(ctx context.Context, slug string) (*model.Collection, error) {
	var out struct {
		Collection *model.Collection `json:"collection"`
	}
	req := Request{Query: collectionQuery, Variables: map[string]any{"slug": slug}, Cache: CacheForce}
	if err := c.query(ctx, req, &out); err != nil {
		return nil, err
	}
	if out.Collection == nil {
		return nil, model.NewNotFoundError("collection")
	}
	return out.Collection, nil
}

func (c *Client) Menu(ctx context.Context) ([]model.Collection, error) {
	var out struct {
		Collections struct {
			Items []model.Collection `json:"items"`
		} `json:"collections"`
	}
	if err := c.query(ctx, Request{Query: menuQuery, Cache: CacheForce}, &out); err != nil {
		return nil, err
	}
	return out.Collections.Items, nil
}

func (c *Client) Product(ctx context.Context, slug string) (*model.Product, error) {
	var out struct {
		Product *model.Product `json:"product"`
	}
	req := Request{Query: productQuery, Variables: map[string]any{"slug": slug}, Cache: CacheForce}
	if err := c.query(ctx, req, &out); err != nil {
		return nil, err
	}
	if out.Product == nil {
		return nil, model.NewNotFoundError("product")
	}
	return out.Product, nil
}

func (c *Client) Facets(ctx context.Context) ([]model.Facet, error) {
	var out struct {
		Facets struct {
			Items []model.Facet `json:"items"`
		} `json:"facets"`
	}
	if err := c.query(ctx, Request{Query: facetsQuery, Cache: CacheForce}, &out); err != nil {
		return nil, err
	}
	return out.Facets.Items, nil
}

// searchItemWire decodes the price union: single-variant products report a
// SinglePrice, multi-variant products a PriceRange.
type searchItemWire struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	CurrencyCode string `json:"currencyCode"`
	PriceWithTax struct {
		Value *int64 `json:"value"`
		Min   *int64 `json:"min"`
		Max   *int64 `json:"max"`
	} `json:"priceWithTax"`
}

func (w searchItemWire) toModel() model.SearchResult {
	r := model.SearchResult{
		ProductID:   w.ProductID,
		ProductName: w.ProductName,
		Slug:        w.Slug,
		Description: w.Description,
		Currency:    w.CurrencyCode,
	}
	switch {
	case w.PriceWithTax.Value != nil:
		r.PriceWithTaxMin = *w.PriceWithTax.Value
		r.PriceWithTaxMax = *w.PriceWithTax.Value
	default:
		if w.PriceWithTax.Min != nil {
			r.PriceWithTaxMin = *w.PriceWithTax.Min
		}
		if w.PriceWithTax.Max != nil {
			r.PriceWithTaxMax = *w.PriceWithTax.Max
		}
	}
	return r
}

func (c *Client) SearchProducts(ctx context.Context, in shop.SearchInput) (*shop.SearchResponse, error) {
	input := map[string]any{
		"groupByProduct": true,
	}
	if in.Term != "" {
		input["term"] = in.Term
	}
	if in.CollectionSlug != "" {
		input["collectionSlug"] = in.CollectionSlug
	}
	if len(in.FacetValueFilters) > 0 {
		input["facetValueFilters"] = in.FacetValueFilters
	}
	if in.SortKey != "" {
		input["sort"] = map[string]any{in.SortKey: in.Direction}
	}
	if in.Skip > 0 {
		input["skip"] = in.Skip
	}
	if in.Take > 0 {
		input["take"] = in.Take
	}

	var out struct {
		Search struct {
			TotalItems  int                    `json:"totalItems"`
			Items       []searchItemWire       `json:"items"`
			FacetValues []shop.FacetValueCount `json:"facetValues"`
		} `json:"search"`
	}
	req := Request{Query: searchQuery, Variables: map[string]any{"input": input}, Cache: CacheForce}
	if err := c.query(ctx, req, &out); err != nil {
		return nil, err
	}

	items := make([]model.SearchResult, len(out.Search.Items))
	for i, w := range out.Search.Items {
		items[i] = w.toModel()
	}
	return &shop.SearchResponse{
		Items:       items,
		TotalItems:  out.Search.TotalItems,
		FacetValues: out.Search.FacetValues,
	}, nil
}

func (c *Client) AvailableCountries(ctx context.Context) ([]model.Country, error) {
	var out struct {
		AvailableCountries []model.Country `json:"availableCountries"`
	}
	if err := c.query(ctx, Request{Query: availableCountriesQuery, Cache: CacheForce}, &out); err != nil {
		return nil, err
	}
	return out.AvailableCountries, nil
}

// ActiveOrder returns nil without error when the session has no open order.
func (c *Client) ActiveOrder(ctx context.Context) (*model.Order, error) {
	var out struct {
		ActiveOrder *model.Order `json:"activeOrder"`
	}
	if err := c.query(ctx, Request{Query: activeOrderQuery, Cache: CacheNone}, &out); err != nil {
		return nil, err
	}
	return out.ActiveOrder, nil
}

func (c *Client) OrderByCode(ctx context.Context, code string) (*model.Order, error) {
	var out struct {
		OrderByCode *model.Order `json:"orderByCode"`
	}
	req := Request{Query: orderByCodeQuery, Variables: map[string]any{"code": code}, Cache: CacheNone}
	if err := c.query(ctx, req, &out); err != nil {
		return nil, err
	}
	if out.OrderByCode == nil {
		return nil, model.NewNotFoundError("order")
	}
	return out.OrderByCode, nil
}

func (c *Client) AddItemToOrder(ctx context.Context, variantID string, quantity int) (*model.Order, error) {
	return c.orderMutation(ctx, "addItemToOrder", addItemToOrderMutation,
		map[string]any{"productVariantId": variantID, "quantity": quantity})
}

func (c *Client) AdjustOrderLine(ctx context.Context, lineID string, quantity int) (*model.Order, error) {
	return c.orderMutation(ctx, "adjustOrderLine", adjustOrderLineMutation,
		map[string]any{"orderLineId": lineID, "quantity": quantity})
}

func (c *Client) RemoveOrderLine(ctx context.Context, lineID string) (*model.Order, error) {
	return c.orderMutation(ctx, "removeOrderLine", removeOrderLineMutation,
		map[string]any{"orderLineId": lineID})
}

func (c *Client) ApplyCouponCode(ctx context.Context, code string) (*model.Order, error) {
	return c.orderMutation(ctx, "applyCouponCode", applyCouponCodeMutation,
		map[string]any{"couponCode": code})
}

func (c *Client) RemoveCouponCode(ctx context.Context, code string) (*model.Order, error) {
	return c.orderMutation(ctx, "removeCouponCode", removeCouponCodeMutation,
		map[string]any{"couponCode": code})
}

func (c *Client) SetOrderShippingAddress(ctx context.Context, in model.CreateAddressInput) (*model.Order, error) {
	return c.orderMutation(ctx, "setOrderShippingAddress", setOrderShippingAddressMutation,
		map[string]any{"input": in})
}

func (c *Client) SetOrderBillingAddress(ctx context.Context, in model.CreateAddressInput) (*model.Order, error) {
	return c.orderMutation(ctx, "setOrderBillingAddress", setOrderBillingAddressMutation,
		map[string]any{"input": in})
}

func (c *Client) SetCustomerForOrder(ctx context.Context, in model.CreateCustomerInput) (*model.Order, error) {
	return c.orderMutation(ctx, "setCustomerForOrder", setCustomerForOrderMutation,
		map[string]any{"input": in})
}

func (c *Client) SetOrderShippingMethod(ctx context.Context, methodID string) (*model.Order, error) {
	// The shop API accepts a list to support split shipments; this storefront
	// always ships as a single consignment.
	return c.orderMutation(ctx, "setOrderShippingMethod", setOrderShippingMethodMutation,
		map[string]any{"shippingMethodId": []string{methodID}})
}

func (c *Client) AddPaymentToOrder(ctx context.Context, in model.PaymentInput) (*model.Order, error) {
	return c.orderMutation(ctx, "addPaymentToOrder", addPaymentToOrderMutation,
		map[string]any{"input": in})
}

func (c *Client) TransitionOrderToState(ctx context.Context, state string) (*model.Order, error) {
	return c.orderMutation(ctx, "transitionOrderToState", transitionOrderToStateMutation,
		map[string]any{"state": state})
}

func (c *Client) EligibleShippingMethods(ctx context.Context) ([]model.ShippingMethodQuote, error) {
	var out struct {
		EligibleShippingMethods []model.ShippingMethodQuote `json:"eligibleShippingMethods"`
	}
	if err := c.query(ctx, Request{Query: eligibleShippingMethodsQuery, Cache: CacheNone}, &out); err != nil {
		return nil, err
	}
	return out.EligibleShippingMethods, nil
}

func (c *Client) EligiblePaymentMethods(ctx context.Context) ([]model.PaymentMethodQuote, error) {
	var out struct {
		EligiblePaymentMethods []model.PaymentMethodQuote `json:"eligiblePaymentMethods"`
	}
	if err := c.query(ctx, Request{Query: eligiblePaymentMethodsQuery, Cache: CacheNone}, &out); err != nil {
		return nil, err
	}
	return out.EligiblePaymentMethods, nil
}

func (c *Client) Authenticate(ctx context.Context, username, password string) (*model.CurrentUser, error) {
	resp, err := c.Send(ctx, Request{
		Query:     authenticateMutation,
		Variables: map[string]any{"username": username, "password": password},
		Cache:     CacheNone,
	})
	if err != nil {
		return nil, err
	}
	var payload struct {
		Authenticate json.RawMessage `json:"authenticate"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		return nil, fmt.Errorf("decoding authenticate: %w", err)
	}
	res, err := decodeUserResult(payload.Authenticate)
	if err != nil {
		return nil, err
	}
	return userFromResult(res)
}

func (c *Client) LogOut(ctx context.Context) (bool, error) {
	var out struct {
		Logout struct {
			Success bool `json:"success"`
		} `json:"logout"`
	}
	if err := c.query(ctx, Request{Query: logOutMutation, Cache: CacheNone}, &out); err != nil {
		return false, err
	}
	return out.Logout.Success, nil
}

// ActiveCustomer returns nil without error when the bearer token is absent or
// no longer recognized upstream. Callers use that as the signal to drop local
// session state.
func (c *Client) ActiveCustomer(ctx context.Context) (*model.OrderCustomer, error) {
	var out struct {
		ActiveCustomer *model.OrderCustomer `json:"activeCustomer"`
	}
	if err := c.query(ctx, Request{Query: activeCustomerQuery, Cache: CacheNone}, &out); err != nil {
		return nil, err
	}
	return out.ActiveCustomer, nil
}

func (c *Client) RegisterCustomerAccount(ctx context.Context, in shop.RegisterCustomerInput) (bool, error) {
	resp, err := c.Send(ctx, Request{
		Query:     registerCustomerAccountMutation,
		Variables: map[string]any{"input": in},
		Cache:     CacheNone,
	})
	if err != nil {
		return false, err
	}
	var payload struct {
		RegisterCustomerAccount json.RawMessage `json:"registerCustomerAccount"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		return false, fmt.Errorf("decoding registerCustomerAccount: %w", err)
	}
	res, err := decodeSuccessResult(payload.RegisterCustomerAccount)
	if err != nil {
		return false, err
	}
	if res.Err != nil {
		return false, res.Err
	}
	return res.Success, nil
}

func (c *Client) VerifyCustomerAccount(ctx context.Context, token, password string) (*model.CurrentUser, error) {
	vars := map[string]any{"token": token}
	if password != "" {
		vars["password"] = password
	}
	resp, err := c.Send(ctx, Request{
		Query:     verifyCustomerAccountMutation,
		Variables: vars,
		Cache:     CacheNone,
	})
	if err != nil {
		return nil, err
	}
	var payload struct {
		VerifyCustomerAccount json.RawMessage `json:"verifyCustomerAccount"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		return nil, fmt.Errorf("decoding verifyCustomerAccount: %w", err)
	}
	res, err := decodeUserResult(payload.VerifyCustomerAccount)
	if err != nil {
		return nil, err
	}
	return userFromResult(res)
}

func (c *Client) UpdateCustomer(ctx context.Context, in shop.UpdateCustomerInput) (*model.OrderCustomer, error) {
	var out struct {
		UpdateCustomer *model.OrderCustomer `json:"updateCustomer"`
	}
	req := Request{Query: updateCustomerMutation, Variables: map[string]any{"input": in}, Cache: CacheNone}
	if err := c.query(ctx, req, &out); err != nil {
		return nil, err
	}
	if out.UpdateCustomer == nil {
		return nil, model.NewUnauthorizedError("not signed in")
	}
	return out.UpdateCustomer, nil
}

func (c *Client) CustomerOrders(ctx context.Context, skip, take int) (*model.OrderList, error) {
	options := map[string]any{
		"sort": map[string]any{"createdAt": "DESC"},
	}
	if skip > 0 {
		options["skip"] = skip
	}
	if take > 0 {
		options["take"] = take
	}
	var out struct {
		ActiveCustomer *struct {
			Orders model.OrderList `json:"orders"`
		} `json:"activeCustomer"`
	}
	req := Request{Query: customerOrdersQuery, Variables: map[string]any{"options": options}, Cache: CacheNone}
	if err := c.query(ctx, req, &out); err != nil {
		return nil, err
	}
	if out.ActiveCustomer == nil {
		return nil, model.NewUnauthorizedError("not signed in")
	}
	return &out.ActiveCustomer.Orders, nil
}
