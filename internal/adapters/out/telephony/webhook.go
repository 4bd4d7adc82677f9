package telephony

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"shipping/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

var ErrProviderNotConfigured = errors.New("telephony: provider URL not configured")

// WebhookProvider places calls through a provider HTTP API. The provider
// reports progress to our webhook endpoint, which hands each callback to
// Notify.
type WebhookProvider struct {
	BaseURL     string
	APIKey      string
	CallbackURL string
	HTTPClient  *http.Client

	events chan ports.CallEvent
}

var _ ports.CallProvider = (*WebhookProvider)(nil)

func NewWebhookProvider(baseURL, apiKey, callbackURL string) *WebhookProvider {
	return &WebhookProvider{
		BaseURL:     baseURL,
		APIKey:      apiKey,
		CallbackURL: callbackURL,
		HTTPClient:  &http.Client{Timeout: defaultTimeout},
		events:      make(chan ports.CallEvent, eventBuffer),
	}
}

type placeCallRequest struct {
	CallID         string `json:"callId"`
	To             string `json:"to"`
	Reference      string `json:"reference"`
	CodAmount      int64  `json:"codAmount"`
	StatusCallback string `json:"statusCallback"`
}

func (p *WebhookProvider) PlaceCall(ctx context.Context, req ports.CallRequest) error {
	if p.BaseURL == "" {
		return ErrProviderNotConfigured
	}

	raw, err := json.Marshal(placeCallRequest{
		CallID:         req.CallID.String(),
		To:             req.PhoneNumber,
		Reference:      req.TrackingNumber,
		CodAmount:      req.CodAmount,
		StatusCallback: p.CallbackURL,
	})
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/calls", bytes.NewReader(raw))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	resp, err := p.HTTPClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telephony: place call failed status=%d body=%s", resp.StatusCode, string(b))
	}
	return nil
}

func (p *WebhookProvider) Events() <-chan ports.CallEvent {
	return p.events
}

// Notify queues a provider callback for the gate. It blocks while the queue
// is full, until ctx is done.
func (p *WebhookProvider) Notify(ctx context.Context, event ports.CallEvent) error {
	select {
	case p.events <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
