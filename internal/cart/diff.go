// Package cart implements cart mutations against the shop API. Each action
// validates locally, performs the mutation, interprets the typed result, and
// refetches the active order so the caller always sees upstream truth.
package cart

import "storefront/internal/model"

// DesiredLine is one line of the desired cart state in a bulk set operation,
// keyed by product variant.
type DesiredLine struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// LineAdjust is a quantity change for an existing order line.
type LineAdjust struct {
	LineID      string
	OldQuantity int
	NewQuantity int
}

// LineDiff describes the mutations needed to reconcile the cart's lines with
// a desired state. Apply in order Remove → Adjust → Add so an adjustment
// never targets a removed line.
type LineDiff struct {
	ToAdd    []DesiredLine
	ToRemove []string // order line IDs
	ToAdjust []LineAdjust
}

// IsEmpty reports whether the cart already matches the desired state.
func (d *LineDiff) IsEmpty() bool {
	return len(d.ToAdd) == 0 && len(d.ToRemove) == 0 && len(d.ToAdjust) == 0
}

// DiffLines computes the delta between the order's current lines and a
// desired set. Matching is by product variant ID; a desired quantity of zero
// or less counts as removal.
func DiffLines(current []model.OrderLine, desired []DesiredLine) *LineDiff {
	diff := &LineDiff{}

	currentByVariant := make(map[string]model.OrderLine, len(current))
	for _, line := range current {
		currentByVariant[line.ProductVariant.ID] = line
	}

	desiredByVariant := make(map[string]DesiredLine, len(desired))
	for _, d := range desired {
		if d.Quantity > 0 {
			desiredByVariant[d.VariantID] = d
		}
	}

	for variantID, d := range desiredByVariant {
		if line, exists := currentByVariant[variantID]; exists {
			if line.Quantity != d.Quantity {
				diff.ToAdjust = append(diff.ToAdjust, LineAdjust{
					LineID:      line.ID,
					OldQuantity: line.Quantity,
					NewQuantity: d.Quantity,
				})
			}
		} else {
			diff.ToAdd = append(diff.ToAdd, d)
		}
	}

	for variantID, line := range currentByVariant {
		if _, exists := desiredByVariant[variantID]; !exists {
			diff.ToRemove = append(diff.ToRemove, line.ID)
		}
	}

	return diff
}
