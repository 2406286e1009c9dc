package domain

import "github.com/google/uuid"

// MatchReason says which retrieval tier produced a candidate.
type MatchReason string

const (
	MatchExactName    MatchReason = "EXACT_NAME"
	MatchSearchTerm   MatchReason = "SEARCH_TERM"
	MatchSubstitute   MatchReason = "SUBSTITUTE"
	MatchCategoryOnly MatchReason = "CATEGORY_ONLY"
)

// ConversionOutcome says how the ingredient quantity was translated
// into the product's selling unit.
type ConversionOutcome string

const (
	// ConversionNone means ingredient and product already share a unit.
	ConversionNone ConversionOutcome = "UNCONVERTED"
	// ConversionExact means a known factor converted between units.
	ConversionExact ConversionOutcome = "CONVERTED"
	// ConversionApproximate means a heuristic bridged the units; the
	// note discloses the assumption.
	ConversionApproximate ConversionOutcome = "APPROXIMATED"
)

// ScoredMatch is one product candidate ranked against an ingredient.
type ScoredMatch struct {
	Candidate          ProductCandidate  `json:"candidate"`
	MatchScore         int               `json:"matchScore"`
	MatchReason        MatchReason       `json:"matchReason"`
	SuggestedQuantity  float64           `json:"suggestedQuantity"` // in the product's selling unit, rounded up
	Conversion         ConversionOutcome `json:"conversion"`
	UnitConversionNote string            `json:"unitConversionNote,omitempty"`
}

// IngredientMatchResult is the outcome of resolving one ingredient.
type IngredientMatchResult struct {
	Ingredient RecipeIngredient `json:"ingredient"`
	BestMatch  *ScoredMatch     `json:"bestMatch,omitempty"` // nil when the ingredient is unavailable
	Matches    []ScoredMatch    `json:"matches"`             // ranked, best first
	Available  bool             `json:"available"`
}

// RecipeMatchResponse is the assembled answer for a whole recipe.
type RecipeMatchResponse struct {
	RecipeID               uuid.UUID               `json:"recipeId"`
	ScaledServings         int                     `json:"scaledServings"`
	TotalIngredients       int                     `json:"totalIngredients"`
	AvailableIngredients   int                     `json:"availableIngredients"`
	UnavailableIngredients int                     `json:"unavailableIngredients"`
	OptionalUnavailable    int                     `json:"optionalUnavailable"`
	AvailabilityPercentage int                     `json:"availabilityPercentage"`
	EstimatedTotal         float64                 `json:"estimatedTotal"`
	IngredientMatches      []IngredientMatchResult `json:"ingredientMatches"`
}
