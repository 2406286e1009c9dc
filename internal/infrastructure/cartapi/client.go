package cartapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/basketrack/backend/internal/domain"
)

// maxErrorBodyBytes bounds how much of a rejection body ends up in
// error messages and logs.
const maxErrorBodyBytes = 256

// Client handles communication with the marketplace cart service.
type Client struct {
	http        *resty.Client
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

type cartItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// NewClient creates a new cart service client.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	// The cart service throttles clients at 20 requests per second.
	limiter := rate.NewLimiter(rate.Limit(20), 20)

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", "BasketTrack/1.0").
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})
	if apiKey != "" {
		httpClient.SetHeader("X-API-Key", apiKey)
	}

	return &Client{
		http:        httpClient,
		rateLimiter: limiter,
		logger:      logger,
	}
}

// AddItem posts one cart line to the cart service. A 4xx status means
// the service rejected the line; 5xx statuses and transport failures
// mean it could not be reached.
func (c *Client) AddItem(ctx context.Context, line domain.CartLine) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	req := c.http.R().
		SetContext(ctx).
		SetBody(cartItemRequest{ProductID: line.ProductID, Quantity: line.Quantity})
	if line.IdempotencyKey != "" {
		req.SetHeader("Idempotency-Key", line.IdempotencyKey)
	}

	resp, err := req.Post("/v1/cart/items")
	if err != nil {
		c.logger.Warn("cart request failed",
			zap.String("productId", line.ProductID.String()),
			zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrCartUnavailable, err)
	}

	status := resp.StatusCode()
	switch {
	case status >= http.StatusOK && status < http.StatusMultipleChoices:
		return nil
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		body := bodySnippet(resp.Body())
		c.logger.Warn("cart rejected line",
			zap.String("productId", line.ProductID.String()),
			zap.Int("quantity", line.Quantity),
			zap.Int("status", status),
			zap.String("body", body))
		return fmt.Errorf("%w: status %d: %s", domain.ErrCartRejected, status, body)
	default:
		c.logger.Warn("cart service error",
			zap.String("productId", line.ProductID.String()),
			zap.Int("status", status))
		return fmt.Errorf("%w: status %d", domain.ErrCartUnavailable, status)
	}
}

// bodySnippet trims a response body for inclusion in errors.
func bodySnippet(body []byte) string {
	if len(body) > maxErrorBodyBytes {
		body = body[:maxErrorBodyBytes]
	}
	return string(body)
}
