package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Catalog defines the interface for product candidate lookups.
// nameOrTerm is matched against product name and category; category,
// when set, restricts results to that product category. A lookup that
// cannot reach the catalog returns ErrCatalogUnavailable.
type Catalog interface {
	FindCandidates(ctx context.Context, nameOrTerm, category string) ([]ProductCandidate, error)
}

// RecipeStore defines the interface for recipe retrieval.
type RecipeStore interface {
	GetRecipe(ctx context.Context, id uuid.UUID) (*Recipe, error)
}

// Cart defines the interface for the downstream cart service.
type Cart interface {
	AddItem(ctx context.Context, line CartLine) error
}

// MatchCache defines the interface for caching assembled match responses.
type MatchCache interface {
	Get(ctx context.Context, key string) (*RecipeMatchResponse, error)
	Set(ctx context.Context, key string, value *RecipeMatchResponse, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
