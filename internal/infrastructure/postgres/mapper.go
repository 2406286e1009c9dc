package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/basketrack/backend/internal/domain"
)

// candidateRow mirrors one row of the candidate query. Discount columns
// come from a LEFT JOIN and may be NULL.
type candidateRow struct {
	ID           uuid.UUID       `db:"id"`
	SellerID     uuid.UUID       `db:"seller_id"`
	Name         string          `db:"name"`
	Category     string          `db:"category"`
	Unit         string          `db:"unit"`
	Images       []byte          `db:"images"`
	SellingPrice float64         `db:"selling_price"`
	CurrentStock int             `db:"current_stock"`
	Available    bool            `db:"available"`
	Percentage   sql.NullFloat64 `db:"percentage"`
	IsActive     sql.NullBool    `db:"is_active"`
	ValidUntil   sql.NullTime    `db:"valid_until"`
}

func (r candidateRow) toDomain() (domain.ProductCandidate, error) {
	candidate := domain.ProductCandidate{
		ProductID:    r.ID,
		SellerID:     r.SellerID,
		Name:         r.Name,
		Category:     r.Category,
		Unit:         r.Unit,
		SellingPrice: r.SellingPrice,
		CurrentStock: r.CurrentStock,
		Available:    r.Available,
	}

	if len(r.Images) > 0 {
		if err := json.Unmarshal(r.Images, &candidate.Images); err != nil {
			return domain.ProductCandidate{}, fmt.Errorf("failed to unmarshal product images: %w", err)
		}
	}

	if r.Percentage.Valid {
		candidate.Discount = &domain.ProductDiscount{
			Percentage: r.Percentage.Float64,
			Active:     r.IsActive.Bool,
			ValidUntil: r.ValidUntil.Time,
		}
	}

	return candidate, nil
}

// recipeRow mirrors one row of the recipes table.
type recipeRow struct {
	ID          uuid.UUID `db:"id"`
	Title       string    `db:"title"`
	Servings    int       `db:"servings"`
	Ingredients []byte    `db:"ingredients"`
}

func (r recipeRow) toDomain() (*domain.Recipe, error) {
	recipe := &domain.Recipe{
		ID:       r.ID,
		Title:    r.Title,
		Servings: r.Servings,
	}

	if len(r.Ingredients) > 0 {
		if err := json.Unmarshal(r.Ingredients, &recipe.Ingredients); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recipe ingredients: %w", err)
		}
	}

	return recipe, nil
}
