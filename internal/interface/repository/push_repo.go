package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"courtcast-service/internal/domain/entity"
	"courtcast-service/internal/domain/repository"
	"courtcast-service/pkg/logger"
)

// PushRelayRepository delivers notification payloads to subscriber
// endpoints through the push relay service. The relay owns the
// transport encryption; this client only speaks its JSON API.
type PushRelayRepository struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
	client      *http.Client
}

// NewPushRelayRepository creates a new push relay client
func NewPushRelayRepository(logger logger.Logger, baseURL, bearerToken string) repository.PushRepository {
	return &PushRelayRepository{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// SendNotification sends one payload to one subscriber endpoint.
// A gone endpoint maps to entity.ErrSubscriptionExpired.
func (r *PushRelayRepository) SendNotification(ctx context.Context, sub *entity.Subscription, payload *entity.NotificationPayload) error {
	body := map[string]interface{}{
		"endpoint":     sub.Endpoint,
		"notification": payload,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/push/send", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("endpoint %s: %w", sub.Endpoint, entity.ErrSubscriptionExpired)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("push relay returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		Success bool `json:"success"`
		Error   struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !response.Success {
		if response.Error.Code == "SUBSCRIPTION_EXPIRED" {
			return fmt.Errorf("endpoint %s: %w", sub.Endpoint, entity.ErrSubscriptionExpired)
		}
		return fmt.Errorf("push relay rejected delivery: %s (code: %s)", response.Error.Message, response.Error.Code)
	}

	r.logger.Info("Notification delivered",
		"endpoint", sub.Endpoint,
		"location", payload.Location,
		"alertID", payload.AlertID)

	return nil
}
