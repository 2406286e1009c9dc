package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/basketrack/backend/internal/domain"
)

// Defaults applied when MatchConfig fields are unset.
const (
	defaultIngredientTimeout = 3 * time.Second
	defaultCacheTTL          = 2 * time.Minute
)

// MatchConfig holds tuning for the matching engine.
type MatchConfig struct {
	MaxCandidates     int
	IngredientTimeout time.Duration
	CacheTTL          time.Duration
}

// MatchService resolves a recipe's ingredient list against the catalog
// and assembles the shopping-list response.
type MatchService struct {
	recipes           domain.RecipeStore
	retriever         *Retriever
	cache             domain.MatchCache // nil disables caching
	ingredientTimeout time.Duration
	cacheTTL          time.Duration
	logger            *zap.Logger
}

// NewMatchService creates the matching engine with the given
// collaborators. cache may be nil to disable response caching.
func NewMatchService(recipes domain.RecipeStore, catalog domain.Catalog, cache domain.MatchCache, cfg MatchConfig, logger *zap.Logger) *MatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.IngredientTimeout
	if timeout <= 0 {
		timeout = defaultIngredientTimeout
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &MatchService{
		recipes:           recipes,
		retriever:         NewRetriever(catalog, cfg.MaxCandidates, logger),
		cache:             cache,
		ingredientTimeout: timeout,
		cacheTTL:          ttl,
		logger:            logger,
	}
}

// MatchIngredients resolves every ingredient of the recipe for the
// requested serving count. targetServings == 0 means "use the recipe's
// own serving count"; negative values are rejected. Ingredients resolve
// concurrently, and one ingredient failing or timing out only marks
// that ingredient unavailable.
func (s *MatchService) MatchIngredients(ctx context.Context, recipeID uuid.UUID, targetServings int) (*domain.RecipeMatchResponse, error) {
	if targetServings < 0 {
		return nil, fmt.Errorf("%w: requested %d servings", domain.ErrInvalidServings, targetServings)
	}

	recipe, err := s.recipes.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.Servings <= 0 {
		return nil, fmt.Errorf("%w: recipe %s declares %d servings", domain.ErrInvalidServings, recipeID, recipe.Servings)
	}

	servings := targetServings
	if servings == 0 {
		servings = recipe.Servings
	}

	cacheKey := matchCacheKey(recipeID, servings)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != nil {
			s.logger.Debug("match cache hit", zap.String("key", cacheKey))
			return cached, nil
		}
	}

	start := time.Now()

	// One goroutine per ingredient, each writing only its own slot.
	results := make([]domain.IngredientMatchResult, len(recipe.Ingredients))
	var wg sync.WaitGroup
	for i, ing := range recipe.Ingredients {
		wg.Add(1)
		go func(idx int, ing domain.RecipeIngredient) {
			defer wg.Done()
			ictx, cancel := context.WithTimeout(ctx, s.ingredientTimeout)
			defer cancel()
			results[idx] = s.matchIngredient(ictx, ing, recipe.Servings, servings)
		}(i, ing)
	}
	wg.Wait()

	resp := AssembleResponse(recipeID, servings, results, time.Now())

	s.logger.Info("recipe resolved",
		zap.String("recipeId", recipeID.String()),
		zap.Int("servings", servings),
		zap.Int("available", resp.AvailableIngredients),
		zap.Int("unavailable", resp.UnavailableIngredients),
		zap.Duration("elapsed", time.Since(start)))

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, resp, s.cacheTTL); err != nil {
			s.logger.Warn("match cache store failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return resp, nil
}

// matchIngredient runs retrieve, convert, and score for one ingredient.
// Candidates whose converted quantity is not purchasable are discarded
// before scoring.
func (s *MatchService) matchIngredient(ctx context.Context, ing domain.RecipeIngredient, baseServings, servings int) domain.IngredientMatchResult {
	result := domain.IngredientMatchResult{Ingredient: ing, Matches: []domain.ScoredMatch{}}

	scaled, err := ScaleQuantity(ing.Quantity, baseServings, servings)
	if err != nil || scaled <= 0 {
		s.logger.Warn("ingredient has no usable quantity",
			zap.String("ingredient", ing.Name),
			zap.Float64("quantity", ing.Quantity))
		return result
	}

	totalTerms := len(ing.SearchTerms)
	for _, rc := range s.retriever.Retrieve(ctx, ing) {
		conv := ConvertQuantity(scaled, ing.Unit, rc.candidate.Unit)
		if conv.Quantity <= 0 {
			continue
		}
		result.Matches = append(result.Matches, domain.ScoredMatch{
			Candidate:          rc.candidate,
			MatchScore:         scoreCandidate(rc, totalTerms),
			MatchReason:        rc.reason,
			SuggestedQuantity:  conv.Quantity,
			Conversion:         conv.Outcome,
			UnitConversionNote: conv.Note,
		})
	}

	if len(result.Matches) == 0 {
		return result
	}

	sortMatches(result.Matches)
	result.BestMatch = &result.Matches[0]
	result.Available = true
	return result
}

// matchCacheKey builds the cache key for one recipe+servings resolution.
func matchCacheKey(recipeID uuid.UUID, servings int) string {
	return fmt.Sprintf("match:%s:%d", recipeID, servings)
}
