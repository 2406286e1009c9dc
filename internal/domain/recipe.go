package domain

import "github.com/google/uuid"

// Recipe is a stored recipe whose ingredient list can be resolved
// against the marketplace catalog.
type Recipe struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Servings    int                `json:"servings"` // serving count the quantities are written for
	Ingredients []RecipeIngredient `json:"ingredients"`
}

// RecipeIngredient is a single line of a recipe's ingredient list.
type RecipeIngredient struct {
	Name        string   `json:"name"`
	Quantity    float64  `json:"quantity"`
	Unit        string   `json:"unit"`
	Category    string   `json:"category,omitempty"`
	SearchTerms []string `json:"searchTerms,omitempty"` // alternate names, e.g. "scallion" for "spring onion"
	Substitutes []string `json:"substitutes,omitempty"` // acceptable replacements, e.g. "butter" for "ghee"
	Optional    bool     `json:"optional,omitempty"`
	Notes       string   `json:"notes,omitempty"` // free text for the shopper, never matched against
}
