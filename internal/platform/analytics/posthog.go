// Package analytics wraps the posthog client so callers never have to check
// whether it was configured.
package analytics

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

const endpoint = "https://eu.i.posthog.com"

// Client enqueues product events. The zero value and a nil *Client drop everything.
type Client struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// New creates a Client. An empty apiKey yields a disabled client.
func New(apiKey string, logger *slog.Logger) *Client {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, analytics disabled")
		return &Client{}
	}
	pc, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to create posthog client, analytics disabled", slog.String("error", err.Error()))
		return &Client{}
	}
	logger.Info("Posthog client initialized")
	return &Client{posthogClient: pc, logger: logger}
}

// NewWithClient wraps an existing posthog client, used by tests.
func NewWithClient(pc posthog.Client, logger *slog.Logger) *Client {
	return &Client{posthogClient: pc, logger: logger}
}

func (c *Client) Enabled() bool {
	return c != nil && c.posthogClient != nil
}

// Enqueue captures one event for distinctID.
func (c *Client) Enqueue(distinctID, event string, properties map[string]any) {
	if !c.Enabled() {
		return
	}
	if c.logger != nil {
		c.logger.Debug("Enqueueing analytics event", slog.String("distinct_id", distinctID), slog.String("event", event))
	}
	err := c.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil && c.logger != nil {
		c.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

func (c *Client) Close() {
	if !c.Enabled() {
		return
	}
	_ = c.posthogClient.Close()
}
