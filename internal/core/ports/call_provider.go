package ports

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/kernel"
)

// CallRequest is what a provider needs to place a verification call.
type CallRequest struct {
	CallID         kernel.CallID
	ParcelID       kernel.ParcelID
	UserID         kernel.UserID
	PhoneNumber    string
	TrackingNumber string
	CodAmount      int64
}

// CallEventKind is the progress reported by a provider.
type CallEventKind string

const (
	CallConnected CallEventKind = "connected"
	CallCompleted CallEventKind = "completed"
	CallFailed    CallEventKind = "failed"
)

// IsTerminal reports whether the event ends the attempt.
func (k CallEventKind) IsTerminal() bool {
	return k == CallCompleted || k == CallFailed
}

// CallEvent is a provider notification about a placed call.
type CallEvent struct {
	CallID       kernel.CallID
	Kind         CallEventKind
	Duration     time.Duration
	RecordingURL string
	Reason       string
	At           time.Time
}

// CallProvider places outbound verification calls. PlaceCall returns once the
// provider accepted the request; progress is reported asynchronously on
// Events, which stays open for the lifetime of the provider.
type CallProvider interface {
	PlaceCall(ctx context.Context, req CallRequest) error
	Events() <-chan CallEvent
}
