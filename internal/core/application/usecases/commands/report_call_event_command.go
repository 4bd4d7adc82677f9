package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrReportCallEventCommandIsNotConstructed = errors.New(
	"ReportCallEventCommand must be created via NewReportCallEventCommand constructor",
)

// ReportCallEventCommand carries a provider callback about a placed call.
type ReportCallEventCommand struct { //nolint:recvcheck //using for validation
	event ports.CallEvent

	guard guard.ConstructorGuard
}

// NewReportCallEventCommand validates a callback. durationSeconds and
// recordingURL are only meaningful for completed calls, reason for failed ones.
func NewReportCallEventCommand(
	callID string,
	kind string,
	durationSeconds int,
	recordingURL string,
	reason string,
) (ReportCallEventCommand, error) {
	id, idErr := kernel.CallIDFromString(strings.TrimSpace(callID))

	eventKind := ports.CallEventKind(strings.ToLower(strings.TrimSpace(kind)))
	var kindErr error
	switch eventKind {
	case ports.CallConnected, ports.CallCompleted, ports.CallFailed:
	default:
		kindErr = errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a call event", kind))
	}

	var durationErr error
	if durationSeconds < 0 {
		durationErr = errs.NewValueIsOutOfRangeError("duration", durationSeconds, 0, "unbounded")
	}

	if err := errors.Join(idErr, kindErr, durationErr); err != nil {
		return ReportCallEventCommand{}, err
	}

	return ReportCallEventCommand{
		event: ports.CallEvent{
			CallID:       id,
			Kind:         eventKind,
			Duration:     time.Duration(durationSeconds) * time.Second,
			RecordingURL: strings.TrimSpace(recordingURL),
			Reason:       strings.TrimSpace(reason),
			At:           time.Now().UTC(),
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ReportCallEventCommand) Validate() error {
	return c.guard.Validate(ErrReportCallEventCommandIsNotConstructed)
}

func (c ReportCallEventCommand) Event() ports.CallEvent {
	return c.event
}

// CallEventSink accepts provider callbacks for delivery to the gate.
type CallEventSink interface {
	Notify(ctx context.Context, event ports.CallEvent) error
}

type ReportCallEventCommandHandler struct {
	sink CallEventSink
}

func NewReportCallEventCommandHandler(sink CallEventSink) ReportCallEventCommandHandler {
	return ReportCallEventCommandHandler{
		sink: sink,
	}
}

func (h ReportCallEventCommandHandler) Handle(ctx context.Context, cmd ReportCallEventCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.sink.Notify(ctx, cmd.Event())
}
