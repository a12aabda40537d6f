// Package account implements customer authentication and profile actions.
// The session cookie only ever holds a denormalized hint of identity; the
// shop API remains the source of truth and is reconsulted before anything
// protected happens.
package account

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/model"
	"storefront/internal/session"
	"storefront/internal/shop"
)

const (
	msgSignInFailed   = "Error signing in"
	msgRegisterFailed = "Error registering account"
	msgVerifyFailed   = "Error verifying account"
	msgUpdateFailed   = "Error updating profile"
)

// Result is the outcome of an account action.
type Result struct {
	Success  bool                 `json:"success"`
	Error    string               `json:"error,omitempty"`
	Customer *model.OrderCustomer `json:"customer,omitempty"`
}

// Actions performs account operations against the shop API, keeping the
// session's identity snapshot in sync.
type Actions struct {
	shop   shop.Shop
	logger *slog.Logger
}

// New creates account actions backed by the given shop.
func New(s shop.Shop, logger *slog.Logger) *Actions {
	return &Actions{shop: s, logger: logger}
}

// SignIn authenticates the customer and denormalizes their identity into the
// session. The upstream bearer token arrives separately through the token
// sink during the authenticate call.
func (a *Actions) SignIn(ctx context.Context, sess *session.Session, username, password string) Result {
	if username == "" || password == "" {
		return Result{Error: msgSignInFailed}
	}

	user, err := a.shop.Authenticate(ctx, username, password)
	if err != nil {
		return a.failure(msgSignInFailed, err)
	}

	sess.Update(session.Data{IsAuthenticated: true, CustomerID: user.ID, Email: user.Identifier})
	a.syncCustomer(ctx, sess)
	return Result{Success: true}
}

// Register creates a customer account. The shop sends a verification email;
// the account is not signed in until verified.
func (a *Actions) Register(ctx context.Context, in shop.RegisterCustomerInput) Result {
	if in.EmailAddress == "" || in.Password == "" {
		return Result{Error: msgRegisterFailed}
	}

	ok, err := a.shop.RegisterCustomerAccount(ctx, in)
	if err != nil || !ok {
		return a.failure(msgRegisterFailed, err)
	}
	return Result{Success: true}
}

// Verify completes email verification and signs the customer in, same as
// SignIn.
func (a *Actions) Verify(ctx context.Context, sess *session.Session, token, password string) Result {
	if token == "" {
		return Result{Error: msgVerifyFailed}
	}

	user, err := a.shop.VerifyCustomerAccount(ctx, token, password)
	if err != nil {
		return a.failure(msgVerifyFailed, err)
	}

	sess.Update(session.Data{IsAuthenticated: true, CustomerID: user.ID, Email: user.Identifier})
	a.syncCustomer(ctx, sess)
	return Result{Success: true}
}

// UpdateProfile changes the customer's mutable fields and refreshes the
// session snapshot from the result.
func (a *Actions) UpdateProfile(ctx context.Context, sess *session.Session, in shop.UpdateCustomerInput) Result {
	customer, err := a.shop.UpdateCustomer(ctx, in)
	if err != nil {
		return a.failure(msgUpdateFailed, err)
	}

	sess.Update(session.Data{
		CustomerID: customer.ID,
		Email:      customer.EmailAddress,
		FirstName:  customer.FirstName,
		LastName:   customer.LastName,
	})
	return Result{Success: true, Customer: customer}
}

// SignOut invalidates the upstream session and clears the cookie. Upstream
// failure still clears local state; a stale upstream session expires on its
// own.
func (a *Actions) SignOut(ctx context.Context, sess *session.Session) {
	if _, err := a.shop.LogOut(ctx); err != nil {
		a.logger.Warn("upstream logout failed", "error", err)
	}
	sess.Clear()
}

// ValidateAndFetchUser checks the session's authentication hint against the
// shop API. A session the shop no longer recognizes is cleared on the spot
// (soft invalidation) and nil is returned.
func (a *Actions) ValidateAndFetchUser(ctx context.Context, sess *session.Session) *model.OrderCustomer {
	if !sess.IsAuthenticated() {
		return nil
	}

	customer, err := a.shop.ActiveCustomer(ctx)
	if err != nil {
		a.logger.Warn("active customer check failed", "error", err)
		return nil
	}
	if customer == nil {
		sess.Clear()
		return nil
	}

	sess.Update(session.Data{
		CustomerID: customer.ID,
		Email:      customer.EmailAddress,
		FirstName:  customer.FirstName,
		LastName:   customer.LastName,
	})
	return customer
}

// syncCustomer best-effort refreshes the session's identity fields after an
// authentication event.
func (a *Actions) syncCustomer(ctx context.Context, sess *session.Session) {
	customer, err := a.shop.ActiveCustomer(ctx)
	if err != nil || customer == nil {
		return
	}
	sess.Update(session.Data{
		CustomerID: customer.ID,
		Email:      customer.EmailAddress,
		FirstName:  customer.FirstName,
		LastName:   customer.LastName,
	})
}

// failure maps an error to the customer-facing message: business rejections
// with wording (invalid credentials, unverified account, token problems) pass
// through, everything else collapses to the generic message.
func (a *Actions) failure(generic string, err error) Result {
	if err != nil {
		a.logger.Warn("account action failed", "error", err)
	}
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) && domainErr.Message != "" {
		return Result{Error: domainErr.Message}
	}
	return Result{Error: generic}
}
