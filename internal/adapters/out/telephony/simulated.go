// Package telephony contains the call providers used by the verification
// gate: an in-process simulation for development and an HTTP client for a
// provider that reports progress through webhooks.
package telephony

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"shipping/internal/core/ports"
)

const (
	simulatedRecordingURL = "/recordings/simulated.mp3"
	simulatedCallDuration = 45 * time.Second
	eventBuffer           = 64
)

// AnswerFunc decides how a simulated customer responds. An empty reason with
// ok=false is reported as "customer declined".
type AnswerFunc func(req ports.CallRequest) (ok bool, reason string)

// AlwaysConfirm answers every call with a confirmation.
func AlwaysConfirm(ports.CallRequest) (bool, string) {
	return true, ""
}

type SimulatedConfig struct {
	ConnectAfter  time.Duration
	CompleteAfter time.Duration
	Answer        AnswerFunc
}

// SimulatedProvider pretends to dial the customer: after ConnectAfter it
// reports the call connected and after CompleteAfter the answer.
type SimulatedProvider struct {
	cfg    SimulatedConfig
	events chan ports.CallEvent
	logger *slog.Logger

	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

var _ ports.CallProvider = (*SimulatedProvider)(nil)

func NewSimulatedProvider(cfg SimulatedConfig, logger *slog.Logger) *SimulatedProvider {
	if cfg.Answer == nil {
		cfg.Answer = AlwaysConfirm
	}
	return &SimulatedProvider{
		cfg:    cfg,
		events: make(chan ports.CallEvent, eventBuffer),
		logger: logger.With("component", "simulated-telephony"),
		quit:   make(chan struct{}),
	}
}

// PlaceCall accepts the request immediately; ctx only bounds the acceptance,
// the simulated call itself runs until Close.
func (p *SimulatedProvider) PlaceCall(ctx context.Context, req ports.CallRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.wg.Add(1)
	go p.run(req)
	return nil
}

func (p *SimulatedProvider) Events() <-chan ports.CallEvent {
	return p.events
}

// Close stops pending simulated calls and waits for them to exit.
func (p *SimulatedProvider) Close() {
	p.stopOnce.Do(func() { close(p.quit) })
	p.wg.Wait()
}

func (p *SimulatedProvider) run(req ports.CallRequest) {
	defer p.wg.Done()

	log := p.logger.With("call_id", req.CallID.String(), "parcel_id", req.ParcelID.Int64())
	log.Debug("simulating verification call")

	if !p.wait(p.cfg.ConnectAfter) {
		return
	}
	if !p.emit(ports.CallEvent{CallID: req.CallID, Kind: ports.CallConnected, At: time.Now().UTC()}) {
		return
	}

	if !p.wait(p.cfg.CompleteAfter) {
		return
	}

	ok, reason := p.cfg.Answer(req)
	event := ports.CallEvent{CallID: req.CallID, At: time.Now().UTC()}
	if ok {
		event.Kind = ports.CallCompleted
		event.Duration = simulatedCallDuration
		event.RecordingURL = simulatedRecordingURL
	} else {
		if reason == "" {
			reason = "customer declined"
		}
		event.Kind = ports.CallFailed
		event.Reason = reason
	}
	p.emit(event)
}

func (p *SimulatedProvider) wait(d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-p.quit:
		return false
	}
}

func (p *SimulatedProvider) emit(e ports.CallEvent) bool {
	select {
	case p.events <- e:
		return true
	case <-p.quit:
		return false
	}
}

// Notify injects an externally reported event, letting the webhook endpoint
// drive simulated calls during manual testing.
func (p *SimulatedProvider) Notify(ctx context.Context, event ports.CallEvent) error {
	select {
	case p.events <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.quit:
		return context.Canceled
	}
}
