package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/basketrack/backend/internal/domain"
)

// findLimit caps one candidate query; the retriever applies its own
// overall bound across tiers.
const findLimit = 50

// Store implements domain.Catalog and domain.RecipeStore over PostgreSQL.
type Store struct {
	db *sqlx.DB
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sellers (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		seller_id UUID NOT NULL REFERENCES sellers(id),
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		unit TEXT NOT NULL,
		images JSONB NOT NULL DEFAULT '[]',
		active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS inventory (
		product_id UUID PRIMARY KEY REFERENCES products(id),
		selling_price NUMERIC(12,2) NOT NULL,
		current_stock INTEGER NOT NULL DEFAULT 0,
		available BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS product_discounts (
		product_id UUID PRIMARY KEY REFERENCES products(id),
		percentage NUMERIC(5,2) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		valid_until TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS recipes (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		servings INTEGER NOT NULL,
		ingredients JSONB NOT NULL DEFAULT '[]'
	)`,
	`CREATE INDEX IF NOT EXISTS products_category_idx ON products (category)`,
}

// NewStore connects to PostgreSQL and ensures the schema exists.
func NewStore(dataSourceName string) (*Store, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return &Store{db: db}, nil
}

const candidateQuery = `
SELECT p.id, p.seller_id, p.name, p.category, p.unit, p.images,
       i.selling_price, i.current_stock, i.available,
       d.percentage, d.is_active, d.valid_until
FROM products p
JOIN sellers s ON s.id = p.seller_id AND s.active
JOIN inventory i ON i.product_id = p.id
LEFT JOIN product_discounts d ON d.product_id = p.id
WHERE p.active AND i.available AND i.current_stock > 0`

// FindCandidates looks purchasable listings up by name/category term or
// by exact category. Listings from inactive sellers never surface.
func (s *Store) FindCandidates(ctx context.Context, nameOrTerm, category string) ([]domain.ProductCandidate, error) {
	if nameOrTerm == "" && category == "" {
		return nil, fmt.Errorf("%w: empty candidate lookup", domain.ErrInvalidRequest)
	}

	query := candidateQuery
	var args []interface{}

	paramCount := 1
	if nameOrTerm != "" {
		query += fmt.Sprintf(" AND (p.name ILIKE $%d OR p.category ILIKE $%d)", paramCount, paramCount)
		args = append(args, "%"+nameOrTerm+"%")
		paramCount++
	}
	if category != "" {
		query += fmt.Sprintf(" AND p.category ILIKE $%d", paramCount)
		args = append(args, category)
		paramCount++
	}
	query += fmt.Sprintf(" ORDER BY p.id LIMIT $%d", paramCount)
	args = append(args, findLimit)

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer rows.Close()

	var candidates []domain.ProductCandidate
	for rows.Next() {
		var row candidateRow
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("failed to scan candidate row: %w", err)
		}
		c, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	return candidates, nil
}

// GetRecipe retrieves a recipe with its ingredient list.
func (s *Store) GetRecipe(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	var row recipeRow
	err := s.db.QueryRowxContext(ctx,
		"SELECT id, title, servings, ingredients FROM recipes WHERE id = $1", id).StructScan(&row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	return row.toDomain()
}

// SaveRecipe inserts or replaces a recipe.
func (s *Store) SaveRecipe(ctx context.Context, recipe *domain.Recipe) error {
	ingredientsJSON, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return fmt.Errorf("failed to marshal ingredients: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO recipes (id, title, servings, ingredients) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET title = $2, servings = $3, ingredients = $4`,
		recipe.ID,
		recipe.Title,
		recipe.Servings,
		ingredientsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}

	return nil
}

// Close releases the database connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
