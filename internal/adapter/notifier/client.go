package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/ashmarov/ticketgate/internal/domain/model"
)

// ScanEvent describes a completed gate scan delivered to an external system.
type ScanEvent struct {
	TicketID  string    `json:"ticketId"`
	Owner     string    `json:"owner"`
	ScannedAt time.Time `json:"scannedAt"`
}

// Client delivers scan events to an external consumer.
type Client interface {
	Notify(ctx context.Context, event ScanEvent) error
}

// HTTPClient implements Client via JSON over HTTP.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates an HTTP notifier with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse notify url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("notify url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// NewScanEvent builds an event from a used ticket.
func NewScanEvent(ticket *model.Ticket) ScanEvent {
	event := ScanEvent{TicketID: ticket.ID, Owner: ticket.OwnerEmail}
	if ticket.ScannedAt != nil {
		event.ScannedAt = *ticket.ScannedAt
	}
	return event
}

// Notify posts the scan event to the configured endpoint.
func (c *HTTPClient) Notify(ctx context.Context, event ScanEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/scans")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	c.logger.Error("scan notification rejected", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
	return fmt.Errorf("notify error: %s", resp.Status)
}

// NoopClient discards events when no consumer is configured.
type NoopClient struct{}

// Notify implements Client as a no-op.
func (NoopClient) Notify(context.Context, ScanEvent) error {
	return nil
}
