package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

type httpBillingClient struct {
	cancelURL string
	apiKey    string
	client    *http.Client
}

// NewBillingClient talks to the subscription provider's cancel endpoint.
func NewBillingClient(cancelURL, apiKey string, timeout time.Duration) BillingClient {
	return &httpBillingClient{
		cancelURL: cancelURL,
		apiKey:    apiKey,
		client:    &http.Client{Timeout: timeout},
	}
}

func (c *httpBillingClient) CancelSubscription(ctx context.Context, subscriptionID string) error {
	if c.cancelURL == "" {
		return errors.New("billing cancel endpoint is not configured")
	}

	body, err := json.Marshal(map[string]string{"subscription_id": subscriptionID})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cancelURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("billing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Message string `json:"message"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(raw, &payload) == nil && payload.Message != "" {
			return fmt.Errorf("billing error: status %d: %s", resp.StatusCode, payload.Message)
		}
		return fmt.Errorf("billing error: status %d", resp.StatusCode)
	}
	return nil
}
