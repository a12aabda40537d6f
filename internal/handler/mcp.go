// MCP transport for agent-driven shopping using the official MCP Go SDK.
// Exposes catalog browsing and cart/checkout operations as MCP tools.
//
// MCP clients do not carry the browser session cookie, so session state is
// threaded through the tools explicitly: every cart tool accepts an optional
// session_token and returns the current token, which the agent must send on
// subsequent calls to keep operating on the same order.
package handler

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"storefront/internal/cart"
	"storefront/internal/checkout"
	"storefront/internal/model"
	"storefront/internal/shop"
)

// SearchProductsInput is the input schema for the search_products tool.
type SearchProductsInput struct {
	Term string `json:"term,omitempty" jsonschema:"free-text search term"`
	Take int    `json:"take,omitempty" jsonschema:"maximum results to return"`
}

// GetProductInput is the input schema for the get_product tool.
type GetProductInput struct {
	Slug string `json:"slug" jsonschema:"product slug,required"`
}

// GetCartInput is the input schema for the get_cart tool.
type GetCartInput struct {
	SessionToken string `json:"session_token,omitempty" jsonschema:"session token from a previous cart call"`
}

// AddToCartInput is the input schema for the add_to_cart tool.
type AddToCartInput struct {
	SessionToken string `json:"session_token,omitempty" jsonschema:"session token from a previous cart call"`
	VariantID    string `json:"variant_id" jsonschema:"product variant ID,required"`
	Quantity     int    `json:"quantity,omitempty" jsonschema:"quantity to add, defaults to 1"`
}

// SetCartInput is the input schema for the set_cart tool.
// Uses full PUT semantics: the lines array is the complete desired cart.
type SetCartInput struct {
	SessionToken string             `json:"session_token,omitempty" jsonschema:"session token from a previous cart call"`
	Lines        []cart.DesiredLine `json:"lines" jsonschema:"complete desired cart lines,required"`
}

// GetCheckoutStepsInput is the input schema for the get_checkout_steps tool.
type GetCheckoutStepsInput struct {
	SessionToken string `json:"session_token,omitempty" jsonschema:"session token from a previous cart call"`
}

// SetShippingAddressInput is the input schema for the set_shipping_address
// tool. Billing follows shipping unless given separately; the customer block
// attaches a guest identity to the order.
type SetShippingAddressInput struct {
	SessionToken    string                     `json:"session_token,omitempty" jsonschema:"session token from a previous cart call"`
	ShippingAddress model.CreateAddressInput   `json:"shipping_address" jsonschema:"shipping address,required"`
	BillingAddress  *model.CreateAddressInput  `json:"billing_address,omitempty" jsonschema:"billing address, defaults to the shipping address"`
	Customer        *model.CreateCustomerInput `json:"customer,omitempty" jsonschema:"guest customer identity for the order"`
}

// CheckoutStepsOutput reports where the order stands in the checkout flow.
type CheckoutStepsOutput struct {
	SessionToken   string                `json:"session_token,omitempty"`
	Steps          []checkout.StepStatus `json:"steps"`
	NextStep       string                `json:"next_step,omitempty"`
	Order          *model.Order          `json:"order,omitempty"`
	TotalFormatted string                `json:"total_formatted,omitempty"`
}

// CartOutput is the result of every cart tool: the order state plus the
// session token to use on the next call.
type CartOutput struct {
	Success        bool         `json:"success"`
	Error          string       `json:"error,omitempty"`
	SessionToken   string       `json:"session_token,omitempty"`
	Order          *model.Order `json:"order,omitempty"`
	TotalFormatted string       `json:"total_formatted,omitempty"`
}

func formatTotal(o *model.Order) string {
	if o == nil {
		return ""
	}
	return model.FormatCurrency(o.TotalWithTax, o.CurrencyCode)
}

// NewMCPServer creates an MCP server with storefront tools registered.
func (h *Handler) NewMCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "storefront",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			Instructions: "Storefront shopping tools. Search the catalog, inspect products, " +
				"and manage a cart. Cart tools return a session_token; pass it on later " +
				"calls to keep working with the same cart.",
		},
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_products",
		Description: "Search the product catalog by free-text term.",
	}, h.mcpSearchProducts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_product",
		Description: "Get a product's details and purchasable variants by slug.",
	}, h.mcpGetProduct)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_cart",
		Description: "Get the current state of the cart.",
	}, h.mcpGetCart)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_to_cart",
		Description: "Add a product variant to the cart.",
	}, h.mcpAddToCart)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_cart",
		Description: "Set the complete cart contents. Lines not listed are removed.",
	}, h.mcpSetCart)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_checkout_steps",
		Description: "Get the checkout steps and which one the order should visit next.",
	}, h.mcpGetCheckoutSteps)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_shipping_address",
		Description: "Set the order's shipping (and billing) address, optionally with a guest customer.",
	}, h.mcpSetShippingAddress)

	return server
}

// NewMCPHandler returns an HTTP handler for the MCP endpoint.
// Mount this at /mcp on your mux.
func (h *Handler) NewMCPHandler() http.Handler {
	server := h.NewMCPServer()
	return mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server { return server },
		nil,
	)
}

// mcpAuth binds the agent-supplied token to the context and returns a getter
// for the token after the call (rotated or freshly issued).
func mcpAuth(ctx context.Context, token string) (context.Context, func() string) {
	current := token
	ctx = shop.WithAuth(ctx, shop.Auth{
		Token:     token,
		TokenSink: func(t string) { current = t },
	})
	return ctx, func() string { return current }
}

func (h *Handler) mcpSearchProducts(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input SearchProductsInput,
) (*mcp.CallToolResult, *shop.SearchResponse, error) {
	take := input.Take
	if take <= 0 || take > maxPageSize {
		take = defaultPageSize
	}

	results, err := h.shop.SearchProducts(ctx, shop.SearchInput{Term: input.Term, Take: take})
	if err != nil {
		return nil, nil, err
	}
	return nil, results, nil
}

func (h *Handler) mcpGetProduct(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input GetProductInput,
) (*mcp.CallToolResult, *model.Product, error) {
	product, err := h.shop.Product(ctx, input.Slug)
	if err != nil {
		return nil, nil, err
	}
	return nil, product, nil
}

func (h *Handler) mcpGetCart(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input GetCartInput,
) (*mcp.CallToolResult, *CartOutput, error) {
	ctx, token := mcpAuth(ctx, input.SessionToken)

	order, err := h.shop.ActiveOrder(ctx)
	if err != nil {
		return nil, nil, err
	}
	return nil, &CartOutput{
		Success:        true,
		SessionToken:   token(),
		Order:          order,
		TotalFormatted: formatTotal(order),
	}, nil
}

func (h *Handler) mcpAddToCart(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input AddToCartInput,
) (*mcp.CallToolResult, *CartOutput, error) {
	ctx, token := mcpAuth(ctx, input.SessionToken)

	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}

	res := h.cart.AddItem(ctx, input.VariantID, quantity)
	return nil, &CartOutput{
		Success:        res.Success,
		Error:          res.Error,
		SessionToken:   token(),
		Order:          res.Order,
		TotalFormatted: formatTotal(res.Order),
	}, nil
}

func (h *Handler) mcpSetCart(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input SetCartInput,
) (*mcp.CallToolResult, *CartOutput, error) {
	ctx, token := mcpAuth(ctx, input.SessionToken)

	res := h.cart.SetCart(ctx, input.Lines)
	return nil, &CartOutput{
		Success:        res.Success,
		Error:          res.Error,
		SessionToken:   token(),
		Order:          res.Order,
		TotalFormatted: formatTotal(res.Order),
	}, nil
}

func (h *Handler) mcpGetCheckoutSteps(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input GetCheckoutStepsInput,
) (*mcp.CallToolResult, *CheckoutStepsOutput, error) {
	ctx, token := mcpAuth(ctx, input.SessionToken)

	order, err := h.shop.ActiveOrder(ctx)
	if err != nil {
		return nil, nil, err
	}

	out := &CheckoutStepsOutput{
		SessionToken:   token(),
		Order:          order,
		TotalFormatted: formatTotal(order),
	}
	if order == nil || len(order.Lines) == 0 {
		out.Steps = checkout.Status("")
		return nil, out, nil
	}

	current := checkout.Steps[len(checkout.Steps)-1].Identifier
	if step, found := checkout.FirstIncomplete(order); found {
		current = step.Identifier
	}
	out.Steps = checkout.Status(current)
	out.NextStep = current
	return nil, out, nil
}

func (h *Handler) mcpSetShippingAddress(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input SetShippingAddressInput,
) (*mcp.CallToolResult, *CartOutput, error) {
	ctx, token := mcpAuth(ctx, input.SessionToken)

	fail := func(err error) (*mcp.CallToolResult, *CartOutput, error) {
		return nil, &CartOutput{
			Error:        cart.Message(err, "Error updating checkout"),
			SessionToken: token(),
		}, nil
	}

	if input.Customer != nil {
		if _, err := h.shop.SetCustomerForOrder(ctx, *input.Customer); err != nil {
			return fail(err)
		}
	}
	if _, err := h.shop.SetOrderShippingAddress(ctx, input.ShippingAddress); err != nil {
		return fail(err)
	}
	billing := input.ShippingAddress
	if input.BillingAddress != nil {
		billing = *input.BillingAddress
	}
	order, err := h.shop.SetOrderBillingAddress(ctx, billing)
	if err != nil {
		return fail(err)
	}

	return nil, &CartOutput{
		Success:        true,
		SessionToken:   token(),
		Order:          order,
		TotalFormatted: formatTotal(order),
	}, nil
}
