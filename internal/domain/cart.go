package domain

import "github.com/google/uuid"

// CartLine is one add-to-cart request sent to the cart service.
type CartLine struct {
	ProductID      uuid.UUID `json:"productId"`
	Quantity       int       `json:"quantity"` // whole selling units
	IdempotencyKey string    `json:"-"`
}

// CartAddFailure records one best match the cart service did not accept.
type CartAddFailure struct {
	Ingredient string    `json:"ingredient"`
	ProductID  uuid.UUID `json:"productId"`
	Reason     string    `json:"reason"`
}

// BulkAddSummary reports the outcome of a best-effort bulk cart add.
// Added + Unavailable + len(Failures) always equals the recipe's
// ingredient count.
type BulkAddSummary struct {
	Added       int              `json:"added"`
	Unavailable int              `json:"unavailable"`
	Failures    []CartAddFailure `json:"failures"`
}
