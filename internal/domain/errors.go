package domain

import "errors"

var (
	// ErrRecipeNotFound is returned when no recipe exists for the requested ID
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrInvalidServings is returned when a serving count is zero or negative
	ErrInvalidServings = errors.New("invalid serving count")

	// ErrCatalogUnavailable is returned when a catalog lookup cannot be completed
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrCartUnavailable is returned when the cart service cannot be reached
	ErrCartUnavailable = errors.New("cart service unavailable")

	// ErrCartRejected is returned when the cart service refuses an item
	ErrCartRejected = errors.New("cart item rejected")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
