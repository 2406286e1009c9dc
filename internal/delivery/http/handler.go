package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/basketrack/backend/internal/domain"
)

// cartSessionHeader carries the shopper's session key. Bulk adds use it
// to derive per-line idempotency keys.
const cartSessionHeader = "X-Cart-Session"

// IngredientMatcher resolves a recipe's ingredients into ranked product
// matches.
type IngredientMatcher interface {
	MatchIngredients(ctx context.Context, recipeID uuid.UUID, targetServings int) (*domain.RecipeMatchResponse, error)
}

// CartAssembler pushes resolved matches into the shopper's cart.
type CartAssembler interface {
	AddAllToCart(ctx context.Context, resp *domain.RecipeMatchResponse, sessionKey string) (*domain.BulkAddSummary, error)
	AddOneToCart(ctx context.Context, match domain.ScoredMatch) error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	matcher   IngredientMatcher
	assembler CartAssembler
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(matcher IngredientMatcher, assembler CartAssembler, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		matcher:   matcher,
		assembler: assembler,
		logger:    logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "basketrack-backend",
		"version": "1.0.0",
	})
}

// MatchRecipe resolves a recipe's ingredient list against the catalog.
// The optional servings query parameter scales quantities; when absent
// the recipe's own serving count applies.
func (h *Handler) MatchRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_RECIPE_ID", "recipe id must be a UUID")
		return
	}

	servings := 0
	if raw := c.Query("servings"); raw != "" {
		servings, err = strconv.Atoi(raw)
		if err != nil || servings <= 0 {
			respondError(c, http.StatusBadRequest, "INVALID_SERVINGS", "servings must be a positive integer")
			return
		}
	}

	resp, err := h.matcher.MatchIngredients(c.Request.Context(), recipeID, servings)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type bulkAddRequest struct {
	RecipeID uuid.UUID `json:"recipeId"`
	Servings int       `json:"servings"`
}

// BulkAddToCart resolves the recipe and pushes every available best
// match into the cart. The add is best effort: per-item failures land in
// the summary, not in the response status.
func (h *Handler) BulkAddToCart(c *gin.Context) {
	var req bulkAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be valid JSON")
		return
	}
	if req.RecipeID == uuid.Nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "recipeId is required")
		return
	}
	if req.Servings < 0 {
		respondError(c, http.StatusBadRequest, "INVALID_SERVINGS", "servings must be a positive integer")
		return
	}

	resp, err := h.matcher.MatchIngredients(c.Request.Context(), req.RecipeID, req.Servings)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	summary, err := h.assembler.AddAllToCart(c.Request.Context(), resp, c.GetHeader(cartSessionHeader))
	if err != nil {
		// The walk was cut short; the summary still reports what made
		// it in.
		h.logger.Warn("bulk add interrupted",
			zap.String("recipeId", req.RecipeID.String()),
			zap.Error(err))
	}

	c.JSON(http.StatusOK, summary)
}

type addItemRequest struct {
	Match domain.ScoredMatch `json:"match"`
}

// AddCartItem adds one selected match to the cart, for shoppers who
// pick an alternative over the best match.
func (h *Handler) AddCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be valid JSON")
		return
	}

	if err := h.assembler.AddOneToCart(c.Request.Context(), req.Match); err != nil {
		h.respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "added"})
}

// respondDomainError maps usecase errors onto HTTP statuses.
func (h *Handler) respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound):
		respondError(c, http.StatusNotFound, "RECIPE_NOT_FOUND", "recipe does not exist")
	case errors.Is(err, domain.ErrInvalidServings):
		respondError(c, http.StatusBadRequest, "INVALID_SERVINGS", "servings must be a positive integer")
	case errors.Is(err, domain.ErrInvalidRequest):
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request cannot be fulfilled")
	case errors.Is(err, domain.ErrCartRejected):
		respondError(c, http.StatusConflict, "CART_REJECTED", "cart service rejected the item")
	case errors.Is(err, domain.ErrCartUnavailable):
		respondError(c, http.StatusBadGateway, "CART_UNAVAILABLE", "cart service temporarily unavailable")
	case errors.Is(err, domain.ErrCatalogUnavailable):
		respondError(c, http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE", "catalog temporarily unavailable")
	default:
		h.logger.Error("request failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}

// respondError writes the error envelope all failure responses share.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
