package handler

import (
	"net/http"

	"storefront/internal/cart"
)

// cartStatus picks the HTTP status for a cart action result. Failures are
// 422: the request was well-formed but the shop rejected it.
func cartStatus(res cart.Result) int {
	if res.Success {
		return http.StatusOK
	}
	return http.StatusUnprocessableEntity
}

// handleGetCart returns the active order, or an empty object when the
// session has none.
func (h *Handler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	order, err := h.shop.ActiveOrder(ctx)
	if err != nil {
		h.sessions.Save(w, sess)
		h.writeError(w, err)
		return
	}

	setCacheHeader(w, cacheNone)
	h.respond(w, sess, http.StatusOK, map[string]any{"order": order})
}

func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	var req struct {
		VariantID string `json:"variantId"`
		Quantity  int    `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	res := h.cart.AddItem(ctx, req.VariantID, req.Quantity)
	setCacheHeader(w, cacheNone)
	h.respond(w, sess, cartStatus(res), res)
}

func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	res := h.cart.UpdateItemQuantity(ctx, r.PathValue("lineId"), req.Quantity)
	setCacheHeader(w, cacheNone)
	h.respond(w, sess, cartStatus(res), res)
}

func (h *Handler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	res := h.cart.RemoveItem(ctx, r.PathValue("lineId"))
	setCacheHeader(w, cacheNone)
	h.respond(w, sess, cartStatus(res), res)
}

// handleSetCart reconciles the cart to the full desired state sent by the
// client (PUT semantics).
func (h *Handler) handleSetCart(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	var req struct {
		Lines []cart.DesiredLine `json:"lines"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	res := h.cart.SetCart(ctx, req.Lines)
	setCacheHeader(w, cacheNone)
	h.respond(w, sess, cartStatus(res), res)
}

func (h *Handler) handleApplyCoupon(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	var req struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	res := h.cart.ApplyCoupon(ctx, req.Code)
	setCacheHeader(w, cacheNone)
	h.respond(w, sess, cartStatus(res), res)
}

func (h *Handler) handleRemoveCoupon(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	res := h.cart.RemoveCoupon(ctx, r.PathValue("code"))
	setCacheHeader(w, cacheNone)
	h.respond(w, sess, cartStatus(res), res)
}
