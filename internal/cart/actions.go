package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storefront/internal/model"
	"storefront/internal/shop"
)

// Generic failure messages shown when the upstream error carries nothing the
// customer can act on.
const (
	msgAddFailed    = "Error adding item to cart"
	msgRemoveFailed = "Error removing item from cart"
	msgUpdateFailed = "Error updating item quantity"
	msgCouponFailed = "Error applying coupon code"
	msgSyncFailed   = "Error updating cart"
)

// Result is the outcome of a cart action. Order holds the refetched active
// order regardless of success so the caller can re-render current state.
type Result struct {
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	Order   *model.Order `json:"order,omitempty"`
}

// Actions performs cart mutations. All methods catch every failure at this
// boundary and report it through Result; they never return an error.
type Actions struct {
	shop   shop.Shop
	logger *slog.Logger
}

// New creates cart actions backed by the given shop.
func New(s shop.Shop, logger *slog.Logger) *Actions {
	return &Actions{shop: s, logger: logger}
}

// AddItem adds a product variant to the active order, creating the order
// upstream if the session has none.
func (a *Actions) AddItem(ctx context.Context, variantID string, quantity int) Result {
	if variantID == "" || quantity < 1 {
		return a.failure(ctx, msgAddFailed, nil)
	}

	_, err := a.shop.AddItemToOrder(ctx, variantID, quantity)
	if err != nil {
		return a.failure(ctx, msgAddFailed, err)
	}
	return a.success(ctx)
}

// RemoveItem removes an order line. Removing a line the order no longer has
// yields an error result from upstream, never a panic.
func (a *Actions) RemoveItem(ctx context.Context, lineID string) Result {
	if lineID == "" {
		return a.failure(ctx, msgRemoveFailed, nil)
	}

	_, err := a.shop.RemoveOrderLine(ctx, lineID)
	if err != nil {
		return a.failure(ctx, msgRemoveFailed, err)
	}
	return a.success(ctx)
}

// UpdateItemQuantity changes the quantity of an existing order line.
func (a *Actions) UpdateItemQuantity(ctx context.Context, lineID string, quantity int) Result {
	if lineID == "" || quantity < 1 {
		return a.failure(ctx, msgUpdateFailed, nil)
	}

	_, err := a.shop.AdjustOrderLine(ctx, lineID, quantity)
	if err != nil {
		return a.failure(ctx, msgUpdateFailed, err)
	}
	return a.success(ctx)
}

// ApplyCoupon applies a coupon code to the active order.
func (a *Actions) ApplyCoupon(ctx context.Context, code string) Result {
	if code == "" {
		return a.failure(ctx, msgCouponFailed, nil)
	}

	_, err := a.shop.ApplyCouponCode(ctx, code)
	if err != nil {
		return a.failure(ctx, msgCouponFailed, err)
	}
	return a.success(ctx)
}

// RemoveCoupon removes a previously applied coupon code.
func (a *Actions) RemoveCoupon(ctx context.Context, code string) Result {
	if code == "" {
		return a.failure(ctx, msgCouponFailed, nil)
	}

	_, err := a.shop.RemoveCouponCode(ctx, code)
	if err != nil {
		return a.failure(ctx, msgCouponFailed, err)
	}
	return a.success(ctx)
}

// SetCart reconciles the active order's lines with the full desired state,
// applying the minimal remove/adjust/add mutation set. The first failing
// mutation aborts the sync and reports its message.
func (a *Actions) SetCart(ctx context.Context, desired []DesiredLine) Result {
	for _, d := range desired {
		if d.VariantID == "" {
			return a.failure(ctx, msgSyncFailed, nil)
		}
	}

	order, err := a.shop.ActiveOrder(ctx)
	if err != nil {
		return a.failure(ctx, msgSyncFailed, err)
	}

	var current []model.OrderLine
	if order != nil {
		current = order.Lines
	}
	diff := DiffLines(current, desired)

	for _, lineID := range diff.ToRemove {
		if _, err := a.shop.RemoveOrderLine(ctx, lineID); err != nil {
			return a.failure(ctx, msgSyncFailed, err)
		}
	}
	for _, adj := range diff.ToAdjust {
		if _, err := a.shop.AdjustOrderLine(ctx, adj.LineID, adj.NewQuantity); err != nil {
			return a.failure(ctx, msgSyncFailed, err)
		}
	}
	for _, add := range diff.ToAdd {
		if _, err := a.shop.AddItemToOrder(ctx, add.VariantID, add.Quantity); err != nil {
			return a.failure(ctx, msgSyncFailed, err)
		}
	}

	return a.success(ctx)
}

// success refetches the active order so the result reflects upstream truth
// rather than the mutation's snapshot.
func (a *Actions) success(ctx context.Context) Result {
	order, err := a.shop.ActiveOrder(ctx)
	if err != nil {
		a.logger.Warn("refetch after cart mutation failed", "error", err)
		return Result{Success: true}
	}
	return Result{Success: true, Order: order}
}

// failure maps an error to a customer-facing message and attaches the current
// order state when it can still be fetched.
func (a *Actions) failure(ctx context.Context, generic string, err error) Result {
	res := Result{Error: Message(err, generic)}
	if err != nil {
		a.logger.Warn("cart mutation failed", "error", err)
	}
	if order, ferr := a.shop.ActiveOrder(ctx); ferr == nil {
		res.Order = order
	}
	return res
}

// Message converts an error into the message shown to the customer.
// Insufficient-stock errors get exact stock-count phrasing, other business
// rejections pass their upstream message through, and everything else
// collapses to the per-action generic message.
func Message(err error, generic string) string {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		return generic
	}
	if domainErr.Typename == model.TypeInsufficientStock {
		return stockMessage(domainErr.QuantityAvailable)
	}
	if domainErr.Message != "" {
		return domainErr.Message
	}
	return generic
}

func stockMessage(available int) string {
	switch {
	case available <= 0:
		return "This item is out of stock"
	case available == 1:
		return "Only 1 item available in stock"
	default:
		return fmt.Sprintf("Only %d items available in stock", available)
	}
}
