// Package handler provides the HTTP handlers for the storefront API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"storefront/internal/account"
	"storefront/internal/cart"
	"storefront/internal/model"
	"storefront/internal/session"
	"storefront/internal/shop"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	shop     shop.Shop
	sessions *session.Manager
	cart     *cart.Actions
	account  *account.Actions
	logger   *slog.Logger
	siteName string
}

// New creates a Handler backed by the given shop and session manager.
func New(s shop.Shop, sessions *session.Manager, logger *slog.Logger, siteName string) *Handler {
	return &Handler{
		shop:     s,
		sessions: sessions,
		cart:     cart.New(s, logger),
		account:  account.New(s, logger),
		logger:   logger,
		siteName: siteName,
	}
}

// RegisterRoutes registers all HTTP routes with the given ServeMux.
// Uses Go 1.22+ method routing patterns.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Catalog
	mux.HandleFunc("GET /api/channel", h.handleChannel)
	mux.HandleFunc("GET /api/menu", h.handleMenu)
	mux.HandleFunc("GET /api/collections", h.handleCollections)
	mux.HandleFunc("GET /api/collections/{slug}", h.handleCollection)
	mux.HandleFunc("GET /api/product/{slug}", h.handleProduct)
	mux.HandleFunc("GET /api/search", h.handleSearch)
	mux.HandleFunc("GET /api/countries", h.handleCountries)

	// Cart
	mux.HandleFunc("GET /api/cart", h.handleGetCart)
	mux.HandleFunc("PUT /api/cart", h.handleSetCart)
	mux.HandleFunc("POST /api/cart/items", h.handleAddItem)
	mux.HandleFunc("PATCH /api/cart/items/{lineId}", h.handleUpdateItem)
	mux.HandleFunc("DELETE /api/cart/items/{lineId}", h.handleRemoveItem)
	mux.HandleFunc("POST /api/cart/coupon", h.handleApplyCoupon)
	mux.HandleFunc("DELETE /api/cart/coupon/{code}", h.handleRemoveCoupon)

	// Session and account
	mux.HandleFunc("GET /api/session", h.handleSession)
	mux.HandleFunc("POST /sign-in", h.handleSignIn)
	mux.HandleFunc("POST /register", h.handleRegister)
	mux.HandleFunc("POST /verify", h.handleVerify)
	mux.HandleFunc("GET /logout", h.handleLogout)
	mux.HandleFunc("GET /account", h.handleAccount)
	mux.HandleFunc("POST /account/settings", h.handleUpdateAccount)
	mux.HandleFunc("GET /account/orders", h.handleAccountOrders)
	mux.HandleFunc("GET /account/orders/{code}", h.handleAccountOrder)

	// Checkout
	mux.HandleFunc("GET /checkout/{step}", h.handleCheckoutStep)
	mux.HandleFunc("GET /checkout/confirmation/{code}", h.handleConfirmation)
	mux.HandleFunc("POST /checkout/addresses", h.handleCheckoutAddresses)
	mux.HandleFunc("POST /checkout/shipping", h.handleCheckoutShipping)
	mux.HandleFunc("POST /checkout/payment", h.handleCheckoutPayment)
	mux.HandleFunc("POST /checkout/transition", h.handleCheckoutTransition)
	mux.HandleFunc("GET /checkout/shipping-methods", h.handleShippingMethods)
	mux.HandleFunc("GET /checkout/payment-methods", h.handlePaymentMethods)

	// MCP transport for agent-driven shopping
	mux.Handle("/mcp", h.NewMCPHandler())

	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealth)
}

// begin loads the request's session and binds its credentials to the context
// so upstream calls carry the bearer token and rotated tokens flow back into
// the session.
func (h *Handler) begin(r *http.Request) (*session.Session, context.Context) {
	sess := h.sessions.Get(r)
	ctx := shop.WithAuth(r.Context(), shop.Auth{
		Token:     sess.AuthToken(),
		TokenSink: sess.SetToken,
	})
	return sess, ctx
}

// === Response Helpers ===

// respond saves the session cookie (if changed) and writes the JSON body.
// The save must happen first: headers are committed by WriteHeader.
func (h *Handler) respond(w http.ResponseWriter, sess *session.Session, status int, data any) {
	h.sessions.Save(w, sess)
	h.writeJSON(w, status, data)
}

// redirect saves the session cookie and issues a 302.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, sess *session.Session, location string) {
	h.sessions.Save(w, sess)
	http.Redirect(w, r, location, http.StatusFound)
}

// writeJSON sends a JSON response with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeError sends an error response, extracting status/code from APIError if present.
// Uses errors.As() to unwrap error chains (e.g., fmt.Errorf wrapping).
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError

	if errors.As(err, &apiErr) {
		// Found APIError in error chain - use it
	} else {
		apiErr = &model.APIError{
			Code:       "INTERNAL_ERROR",
			Message:    "an internal error occurred",
			StatusCode: http.StatusInternalServerError,
		}
		h.logger.Error("internal error", slog.String("error", err.Error()))
	}

	h.writeJSON(w, apiErr.StatusCode, errorResponse{
		Error: errorBody{
			Code:    apiErr.Code,
			Message: apiErr.Message,
		},
	})
}

// errorResponse is the JSON structure for error responses.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MaxRequestBodySize limits JSON request bodies to 1MB to prevent DoS.
const MaxRequestBodySize = 1 << 20 // 1MB

// decodeJSON reads JSON from request body into v.
// Limits body size to MaxRequestBodySize to prevent memory exhaustion.
// Returns an APIError if decoding fails.
func decodeJSON(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// Don't expose internal error details to client
		return model.NewValidationError("body", "invalid JSON")
	}
	return nil
}

// handleHealth responds to health checks.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleChannel returns the active sales channel plus the configured site
// name, used by clients for currency and branding.
func (h *Handler) handleChannel(w http.ResponseWriter, r *http.Request) {
	_, ctx := h.begin(r)

	channel, err := h.shop.ActiveChannel(ctx)
	if err != nil {
		h.writeError(w, err)
		return
	}

	setCacheHeader(w, cacheForce)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"channel":  channel,
		"siteName": h.siteName,
	})
}

// handleSession returns the client-safe session projection. The bearer token
// never appears in this payload.
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.begin(r)
	setCacheHeader(w, cacheNone)
	h.respond(w, sess, http.StatusOK, sess.Fetch())
}

// Cache header values for the two endpoint classes: shared catalog data and
// session-coupled state.
const (
	cacheForce = "public, max-age=60"
	cacheNone  = "no-store"
)

func setCacheHeader(w http.ResponseWriter, value string) {
	w.Header().Set("Cache-Control", value)
}
