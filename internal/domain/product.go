package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProductCandidate is a purchasable seller listing as seen by the
// matching engine: catalog fields joined with live inventory and any
// running discount.
type ProductCandidate struct {
	ProductID    uuid.UUID        `json:"productId"`
	SellerID     uuid.UUID        `json:"sellerId"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Unit         string           `json:"unit"` // selling unit, e.g. "kg", "piece"
	Images       []string         `json:"images,omitempty"`
	SellingPrice float64          `json:"sellingPrice"`
	CurrentStock int              `json:"currentStock"`
	Available    bool             `json:"availability"`
	Discount     *ProductDiscount `json:"productDiscount,omitempty"`
}

// ProductDiscount is a percentage discount attached to a product listing.
type ProductDiscount struct {
	Percentage float64   `json:"discountPercentage"`
	Active     bool      `json:"isActive"`
	ValidUntil time.Time `json:"validUntil"`
}

// EffectivePrice returns the per-unit price at the given instant,
// applying the discount only while it is active and unexpired.
func (p ProductCandidate) EffectivePrice(now time.Time) float64 {
	if p.Discount == nil || !p.Discount.Active || now.After(p.Discount.ValidUntil) {
		return p.SellingPrice
	}
	return p.SellingPrice * (1 - p.Discount.Percentage/100)
}
