package handler

import (
	"context"
	"net/http"

	"storefront/internal/cart"
	"storefront/internal/checkout"
	"storefront/internal/model"
	"storefront/internal/session"
)

// handleCheckoutStep renders the state of one checkout step. An unknown step
// goes home; a step past the first incomplete one redirects back to it.
// Display state stays positional regardless of order contents.
func (h *Handler) handleCheckoutStep(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)
	stepID := r.PathValue("step")

	step, known := checkout.Find(stepID)
	if !known {
		h.redirect(w, r, sess, "/")
		return
	}

	order, err := h.shop.ActiveOrder(ctx)
	if err != nil {
		h.sessions.Save(w, sess)
		h.writeError(w, err)
		return
	}
	if order == nil || len(order.Lines) == 0 {
		h.redirect(w, r, sess, "/")
		return
	}

	if redirectTo, ok := checkout.CanVisit(stepID, order); !ok {
		h.redirect(w, r, sess, "/checkout/"+redirectTo.Identifier)
		return
	}

	setCacheHeader(w, cacheNone)
	h.respond(w, sess, http.StatusOK, map[string]any{
		"step":           step.Identifier,
		"steps":          checkout.Status(stepID),
		"order":          order,
		"totalFormatted": model.FormatCurrency(order.TotalWithTax, order.CurrencyCode),
	})
}

// addressesRequest carries the addresses step form. The customer block is
// required for guest checkout; signed-in customers are already attached to
// the order upstream.
type addressesRequest struct {
	ShippingAddress model.CreateAddressInput   `json:"shippingAddress"`
	BillingAddress  *model.CreateAddressInput  `json:"billingAddress,omitempty"`
	Customer        *model.CreateCustomerInput `json:"customer,omitempty"`
}

// handleCheckoutAddresses commits the addresses step: guest customer,
// shipping address, and billing address (falling back to shipping when the
// form says they match).
func (h *Handler) handleCheckoutAddresses(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	var req addressesRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.ShippingAddress.StreetLine1 == "" || req.ShippingAddress.CountryCode == "" {
		h.sessions.Save(w, sess)
		h.writeError(w, model.NewValidationError("shippingAddress", "street line and country are required"))
		return
	}

	if req.Customer != nil && !sess.IsAuthenticated() {
		if _, err := h.shop.SetCustomerForOrder(ctx, *req.Customer); err != nil {
			h.checkoutFailure(w, sess, err)
			return
		}
	}
	if _, err := h.shop.SetOrderShippingAddress(ctx, req.ShippingAddress); err != nil {
		h.checkoutFailure(w, sess, err)
		return
	}
	billing := req.ShippingAddress
	if req.BillingAddress != nil {
		billing = *req.BillingAddress
	}
	if _, err := h.shop.SetOrderBillingAddress(ctx, billing); err != nil {
		h.checkoutFailure(w, sess, err)
		return
	}

	h.checkoutSuccess(w, sess, ctx, "shipping")
}

// handleCheckoutShipping commits the shipping step.
func (h *Handler) handleCheckoutShipping(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	var req struct {
		ShippingMethodID string `json:"shippingMethodId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.ShippingMethodID == "" {
		h.sessions.Save(w, sess)
		h.writeError(w, model.NewValidationError("shippingMethodId", "required"))
		return
	}

	if _, err := h.shop.SetOrderShippingMethod(ctx, req.ShippingMethodID); err != nil {
		h.checkoutFailure(w, sess, err)
		return
	}

	h.checkoutSuccess(w, sess, ctx, "payment")
}

// handleCheckoutPayment commits the payment step. The order must already be
// in ArrangingPayment; on settled payment the response carries the order code
// for the confirmation page.
func (h *Handler) handleCheckoutPayment(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	var req model.PaymentInput
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.Method == "" {
		h.sessions.Save(w, sess)
		h.writeError(w, model.NewValidationError("method", "required"))
		return
	}

	order, err := h.shop.AddPaymentToOrder(ctx, req)
	if err != nil {
		h.checkoutFailure(w, sess, err)
		return
	}

	setCacheHeader(w, cacheNone)
	h.respond(w, sess, http.StatusOK, map[string]any{
		"success":   true,
		"orderCode": order.Code,
		"state":     order.State,
	})
}

// handleCheckoutTransition moves the order between states, e.g. into
// ArrangingPayment before payment or back to AddingItems to edit the cart.
func (h *Handler) handleCheckoutTransition(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	var req struct {
		State string `json:"state"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.State == "" {
		h.sessions.Save(w, sess)
		h.writeError(w, model.NewValidationError("state", "required"))
		return
	}

	if _, err := h.shop.TransitionOrderToState(ctx, req.State); err != nil {
		h.checkoutFailure(w, sess, err)
		return
	}

	h.checkoutSuccess(w, sess, ctx, "")
}

// handleConfirmation shows a placed order by code.
func (h *Handler) handleConfirmation(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	order, err := h.shop.OrderByCode(ctx, r.PathValue("code"))
	if err != nil {
		h.sessions.Save(w, sess)
		h.writeError(w, err)
		return
	}

	setCacheHeader(w, cacheNone)
	h.respond(w, sess, http.StatusOK, map[string]any{
		"order":          order,
		"totalFormatted": model.FormatCurrency(order.TotalWithTax, order.CurrencyCode),
	})
}

func (h *Handler) handleShippingMethods(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	methods, err := h.shop.EligibleShippingMethods(ctx)
	if err != nil {
		h.sessions.Save(w, sess)
		h.writeError(w, err)
		return
	}

	setCacheHeader(w, cacheNone)
	h.respond(w, sess, http.StatusOK, map[string]any{"items": methods})
}

func (h *Handler) handlePaymentMethods(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	methods, err := h.shop.EligiblePaymentMethods(ctx)
	if err != nil {
		h.sessions.Save(w, sess)
		h.writeError(w, err)
		return
	}

	setCacheHeader(w, cacheNone)
	h.respond(w, sess, http.StatusOK, map[string]any{"items": methods})
}

// checkoutSuccess refetches the order and reports the step to continue with.
func (h *Handler) checkoutSuccess(w http.ResponseWriter, sess *session.Session, ctx context.Context, next string) {
	payload := map[string]any{"success": true}
	if next != "" {
		payload["next"] = "/checkout/" + next
	}
	if order, err := h.shop.ActiveOrder(ctx); err == nil {
		payload["order"] = order
	}

	setCacheHeader(w, cacheNone)
	h.respond(w, sess, http.StatusOK, payload)
}

// checkoutFailure reports a failed checkout commit the same way cart actions
// do: business rejections keep their wording, the rest collapses to a
// generic message.
func (h *Handler) checkoutFailure(w http.ResponseWriter, sess *session.Session, err error) {
	h.logger.Warn("checkout commit failed", "error", err)
	setCacheHeader(w, cacheNone)
	h.respond(w, sess, http.StatusUnprocessableEntity, map[string]any{
		"success": false,
		"error":   cart.Message(err, "Error updating checkout"),
	})
}
