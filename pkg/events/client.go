package events

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rentkit/outreach-console/environments"
	"github.com/rentkit/outreach-console/internal/domain"
	"github.com/rentkit/outreach-console/pkg/logger"
)

// Client posts mutation events to the ops webhook. Delivery is best-effort:
// callers log failures and move on.
type Client struct {
	httpClient *resty.Client
	webhookURL string
}

func NewClient(cfg environments.EventsConfig) *Client {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("x-api-key", cfg.AuthKey)

	return &Client{
		httpClient: client,
		webhookURL: cfg.WebhookURL,
	}
}

func (c *Client) Notify(ctx context.Context, event domain.ChangeEvent) error {
	startTime := time.Now()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(event).
		Post(c.webhookURL)

	duration := time.Since(startTime)

	if err != nil {
		return fmt.Errorf("failed to post event: %w", err)
	}

	logger.Debugf("Event %s posted to %s in %v (status: %d)", event.Event, c.webhookURL, duration, resp.StatusCode())

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode(), resp.String())
	}

	return nil
}

func (c *Client) GetURL() string {
	return c.webhookURL
}
