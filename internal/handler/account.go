package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"storefront/internal/account"
	"storefront/internal/model"
	"storefront/internal/shop"
)

func accountStatus(res account.Result) int {
	if res.Success {
		return http.StatusOK
	}
	return http.StatusUnprocessableEntity
}

func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	res := h.account.SignIn(ctx, sess, req.Email, req.Password)
	setCacheHeader(w, cacheNone)
	h.respond(w, sess, accountStatus(res), res)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	var req shop.RegisterCustomerInput
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	res := h.account.Register(ctx, req)
	setCacheHeader(w, cacheNone)
	h.respond(w, sess, accountStatus(res), res)
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	var req struct {
		Token    string `json:"token"`
		Password string `json:"password,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	res := h.account.Verify(ctx, sess, req.Token, req.Password)
	setCacheHeader(w, cacheNone)
	h.respond(w, sess, accountStatus(res), res)
}

// handleLogout signs the customer out and sends them to the home page.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	h.account.SignOut(ctx, sess)
	h.redirect(w, r, sess, "/")
}

// handleAccount returns the customer's profile. The session hint alone is
// not enough: the shop API is consulted, and a session it no longer
// recognizes is cleared and redirected to sign-in.
func (h *Handler) handleAccount(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	customer := h.account.ValidateAndFetchUser(ctx, sess)
	if customer == nil {
		h.redirect(w, r, sess, "/sign-in")
		return
	}

	setCacheHeader(w, cacheNone)
	h.respond(w, sess, http.StatusOK, map[string]any{"customer": customer})
}

func (h *Handler) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	if h.account.ValidateAndFetchUser(ctx, sess) == nil {
		h.redirect(w, r, sess, "/sign-in")
		return
	}

	var req shop.UpdateCustomerInput
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	res := h.account.UpdateProfile(ctx, sess, req)
	setCacheHeader(w, cacheNone)
	h.respond(w, sess, accountStatus(res), res)
}

func (h *Handler) handleAccountOrders(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	if h.account.ValidateAndFetchUser(ctx, sess) == nil {
		h.redirect(w, r, sess, "/sign-in")
		return
	}

	skip, take := pagination(r, 10)
	orders, err := h.shop.CustomerOrders(ctx, skip, take)
	if err != nil {
		h.sessions.Save(w, sess)
		h.writeError(w, err)
		return
	}

	setCacheHeader(w, cacheNone)
	h.respond(w, sess, http.StatusOK, orders)
}

// handleAccountOrder shows one of the customer's past orders by code.
func (h *Handler) handleAccountOrder(w http.ResponseWriter, r *http.Request) {
	sess, ctx := h.begin(r)

	if h.account.ValidateAndFetchUser(ctx, sess) == nil {
		h.redirect(w, r, sess, "/sign-in")
		return
	}

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

// pagination reads page/take query parameters with a default page size.
func pagination(r *http.Request, defaultTake int) (skip, take int) {
	take = defaultTake
	q := r.URL.Query()
	if t := q.Get("take"); t != "" {
		if n, err := atoiPositive(t); err == nil {
			take = n
		}
	}
	if p := q.Get("page"); p != "" {
		if n, err := atoiPositive(p); err == nil && n > 1 {
			skip = (n - 1) * take
		}
	}
	return skip, take
}

func atoiPositive(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("not positive: %d", n)
	}
	return n, nil
}
