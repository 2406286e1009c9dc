package usecase

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/basketrack/backend/internal/domain"
)

// AssembleResponse folds per-ingredient results into the recipe-level
// shopping list summary. Discount validity is evaluated at the supplied
// instant; the estimated total is rounded to two decimals once, at the
// end.
func AssembleResponse(recipeID uuid.UUID, servings int, results []domain.IngredientMatchResult, now time.Time) *domain.RecipeMatchResponse {
	resp := &domain.RecipeMatchResponse{
		RecipeID:          recipeID,
		ScaledServings:    servings,
		TotalIngredients:  len(results),
		IngredientMatches: results,
	}

	var total float64
	for _, res := range results {
		if !res.Available || res.BestMatch == nil {
			resp.UnavailableIngredients++
			if res.Ingredient.Optional {
				resp.OptionalUnavailable++
			}
			continue
		}
		resp.AvailableIngredients++
		total += res.BestMatch.SuggestedQuantity * res.BestMatch.Candidate.EffectivePrice(now)
	}

	if resp.TotalIngredients > 0 {
		resp.AvailabilityPercentage = int(math.Round(100 * float64(resp.AvailableIngredients) / float64(resp.TotalIngredients)))
	}
	resp.EstimatedTotal = math.Round(total*100) / 100

	return resp
}
