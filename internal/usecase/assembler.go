package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/basketrack/backend/internal/domain"
)

// Assembler pushes a resolved shopping list into the cart service.
type Assembler struct {
	cart   domain.Cart
	logger *zap.Logger
}

// NewAssembler creates a cart assembler over the given cart client.
func NewAssembler(cart domain.Cart, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{cart: cart, logger: logger}
}

// AddAllToCart adds every available best match to the cart, best
// effort: items the cart refuses become recorded failures and the walk
// continues. sessionKey, when set, gives each line a deterministic
// idempotency key so a retried bulk add does not double items. A
// cancelled context stops the walk and returns the partial summary
// alongside the context error.
func (a *Assembler) AddAllToCart(ctx context.Context, resp *domain.RecipeMatchResponse, sessionKey string) (*domain.BulkAddSummary, error) {
	summary := &domain.BulkAddSummary{Failures: []domain.CartAddFailure{}}
	if resp == nil {
		return summary, nil
	}

	for i, im := range resp.IngredientMatches {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		if !im.Available || im.BestMatch == nil {
			summary.Unavailable++
			continue
		}

		line := domain.CartLine{
			ProductID: im.BestMatch.Candidate.ProductID,
			Quantity:  wholeUnits(im.BestMatch.SuggestedQuantity),
		}
		if sessionKey != "" {
			line.IdempotencyKey = bulkLineKey(sessionKey, resp.RecipeID, resp.ScaledServings, i)
		}

		if err := a.cart.AddItem(ctx, line); err != nil {
			a.logger.Warn("cart add failed",
				zap.String("ingredient", im.Ingredient.Name),
				zap.String("productId", line.ProductID.String()),
				zap.Error(err))
			summary.Failures = append(summary.Failures, domain.CartAddFailure{
				Ingredient: im.Ingredient.Name,
				ProductID:  line.ProductID,
				Reason:     err.Error(),
			})
			continue
		}
		summary.Added++
	}

	return summary, nil
}

// AddOneToCart adds a single selected match to the cart. Unlike the
// bulk path it is not best effort: the caller gets the error directly.
func (a *Assembler) AddOneToCart(ctx context.Context, match domain.ScoredMatch) error {
	if match.Candidate.ProductID == uuid.Nil || match.SuggestedQuantity <= 0 {
		return fmt.Errorf("%w: match has no purchasable quantity", domain.ErrInvalidRequest)
	}
	return a.cart.AddItem(ctx, domain.CartLine{
		ProductID: match.Candidate.ProductID,
		Quantity:  wholeUnits(match.SuggestedQuantity),
	})
}

// wholeUnits converts a suggested quantity into whole selling units.
func wholeUnits(q float64) int {
	return int(math.Ceil(q - 1e-9))
}

// bulkLineKey derives the idempotency key for one bulk line.
func bulkLineKey(sessionKey string, recipeID uuid.UUID, servings, line int) string {
	return fmt.Sprintf("%s:%s:%d:%d", sessionKey, recipeID, servings, line)
}
