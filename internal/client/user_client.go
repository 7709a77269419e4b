package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"project-task-api/internal/metrics"
)

// subscriptionResponse is the user service's plan lookup payload
type subscriptionResponse struct {
	UserID  uuid.UUID `json:"userId"`
	Plan    string    `json:"plan"`
	Premium bool      `json:"premium"`
}

// UserClient defines the interface for user service communication
type UserClient interface {
	// IsPremium reports whether the user is on a premium plan
	IsPremium(ctx context.Context, userID uuid.UUID) (bool, error)
}

// userClient implements UserClient interface
type userClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewUserClient creates a new user service API client
func NewUserClient(baseURL string, apiKey string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) UserClient {
	return &userClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// IsPremium asks the user service for the user's subscription plan.
// A failed lookup is reported as an error so the caller decides whether
// to fail open or closed.
func (c *userClient) IsPremium(ctx context.Context, userID uuid.UUID) (bool, error) {
	url := fmt.Sprintf("%s/api/internal/users/%s/subscription", c.baseURL, userID)

	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Error("Failed to create subscription request", zap.Error(err))
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Internal-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(url, "GET", statusCode, duration, err)
	}

	if err != nil {
		c.logger.Error("Failed to fetch subscription",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Duration("duration", duration),
		)
		return false, fmt.Errorf("subscription lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("User service returned non-success status",
			zap.Int("status_code", resp.StatusCode),
			zap.String("user_id", userID.String()),
			zap.Duration("duration", duration),
		)
		return false, fmt.Errorf("subscription lookup returned status %d", resp.StatusCode)
	}

	var subscription subscriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&subscription); err != nil {
		c.logger.Error("Failed to decode subscription response",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return false, fmt.Errorf("failed to decode subscription: %w", err)
	}

	return subscription.Premium, nil
}

// NoOpUserClient treats every user as non-premium, for when the user
// service integration is disabled
type NoOpUserClient struct{}

func NewNoOpUserClient() UserClient {
	return &NoOpUserClient{}
}

func (c *NoOpUserClient) IsPremium(ctx context.Context, userID uuid.UUID) (bool, error) {
	return false, nil
}
