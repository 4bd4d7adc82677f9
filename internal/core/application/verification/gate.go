// Package verification implements the voice verification gate: it places a
// confirmation call for a COD parcel, waits for the provider to report the
// result and records the outcome on the call record and the parcel.
package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"shipping/internal/core/domain/model/call"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

const (
	// DefaultTimeout bounds how long a caller waits for the provider.
	DefaultTimeout = 2 * time.Minute

	// maxVerifyAttempts bounds the optimistic retries when the parcel changes
	// between loading it and setting the verification flag.
	maxVerifyAttempts = 3

	// cleanupTimeout bounds the write that closes an abandoned attempt.
	cleanupTimeout = 5 * time.Second
)

// UoW is the transaction boundary the gate works in.
type UoW interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	ParcelRepository() ports.ParcelRepository
	CallRepository() ports.CallRepository
	ProfileRepository() ports.ProfileRepository
}

// UoWFactory creates a unit of work per gate operation.
type UoWFactory interface {
	Create() UoW
}

// UoWFactoryFunc adapts a function to UoWFactory.
type UoWFactoryFunc func() UoW

func (f UoWFactoryFunc) Create() UoW {
	return f()
}

// Outcome is the result of a finished attempt. A failed call is an outcome,
// not an error: the customer simply did not confirm.
type Outcome struct {
	CallID   kernel.CallID
	Verified bool
	Reason   string
}

type attempt struct {
	callID   kernel.CallID
	parcelID kernel.ParcelID
	done     chan Outcome
}

// Gate serializes voice verification per parcel. At most one attempt per
// parcel is in flight; a second request fails fast with
// errs.ErrVerificationInProgress instead of placing another call.
//
// Provider events are consumed by Run, which must be started once:
//
//	gate := verification.NewGate(uowFactory, provider, logger, verification.DefaultTimeout)
//	go gate.Run(ctx)
//	outcome, err := gate.InitiateVerification(ctx, parcelID, userID)
type Gate struct {
	uowFactory UoWFactory
	provider   ports.CallProvider
	logger     *slog.Logger
	timeout    time.Duration
	now        func() time.Time

	mu       sync.Mutex
	byParcel map[kernel.ParcelID]*attempt
	byCall   map[kernel.CallID]*attempt
}

func NewGate(uowFactory UoWFactory, provider ports.CallProvider, logger *slog.Logger, timeout time.Duration) *Gate {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Gate{
		uowFactory: uowFactory,
		provider:   provider,
		logger:     logger.With("component", "verification-gate"),
		timeout:    timeout,
		now:        func() time.Time { return time.Now().UTC() },
		byParcel:   make(map[kernel.ParcelID]*attempt),
		byCall:     make(map[kernel.CallID]*attempt),
	}
}

// InFlight reports whether an attempt for parcelID is waiting on the provider.
func (g *Gate) InFlight(parcelID kernel.ParcelID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.byParcel[parcelID]
	return ok
}

// InitiateVerification places a verification call for a parcel owned by
// userID and blocks until the provider reports the result, the gate timeout
// expires or ctx is done.
//
// Errors:
//   - errs.ObjectNotFoundError for an unknown parcel
//   - errs.ErrUnauthorized when userID does not own the parcel
//   - errs.ErrAlreadyVerified when the parcel is verified
//   - errs.InvalidTransitionError once the parcel is ready to ship
//   - errs.ErrVerificationInProgress when another attempt is in flight
//   - ctx.Err() when the caller gave up; the attempt is then marked failed
//     and any later provider event for it is ignored
func (g *Gate) InitiateVerification(ctx context.Context, parcelID kernel.ParcelID, userID kernel.UserID) (Outcome, error) {
	p, phone, err := g.loadParcel(ctx, parcelID, userID)
	if err != nil {
		return Outcome{}, err
	}

	c, err := call.NewVerificationCall(parcelID, userID, g.now())
	if err != nil {
		return Outcome{}, err
	}

	a, err := g.reserve(parcelID, c.ID())
	if err != nil {
		return Outcome{}, err
	}

	if err = c.Dial(g.now()); err != nil {
		g.release(a)
		return Outcome{}, err
	}
	if err = g.addCall(ctx, c); err != nil {
		g.release(a)
		return Outcome{}, err
	}

	log := g.logger.With("parcel_id", parcelID.Int64(), "call_id", c.ID().String())
	log.InfoContext(ctx, "placing verification call")

	err = g.provider.PlaceCall(ctx, ports.CallRequest{
		CallID:         c.ID(),
		ParcelID:       parcelID,
		UserID:         userID,
		PhoneNumber:    phone,
		TrackingNumber: p.TrackingNumber(),
		CodAmount:      p.CodAmount(),
	})
	if err != nil {
		if g.release(a) {
			g.abandon(ctx, c.ID(), fmt.Sprintf("provider rejected call: %v", err))
		}
		return Outcome{}, fmt.Errorf("place verification call: %w", err)
	}

	timer := time.NewTimer(g.timeout)
	defer timer.Stop()

	select {
	case outcome := <-a.done:
		return outcome, nil
	case <-timer.C:
		if !g.release(a) {
			return <-a.done, nil
		}
		reason := fmt.Sprintf("no answer within %s", g.timeout)
		log.WarnContext(ctx, "verification call timed out")
		g.abandon(ctx, c.ID(), reason)
		return Outcome{CallID: c.ID(), Reason: reason}, nil
	case <-ctx.Done():
		if !g.release(a) {
			// A terminal event already claimed the attempt and is being recorded.
			return <-a.done, nil
		}
		log.InfoContext(ctx, "verification abandoned by caller")
		g.abandon(ctx, c.ID(), "cancelled by caller")
		return Outcome{}, ctx.Err()
	}
}

// Run consumes provider events until ctx is done or the provider closes its
// event stream.
func (g *Gate) Run(ctx context.Context) {
	events := g.provider.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			g.HandleEvent(ctx, e)
		}
	}
}

// HandleEvent applies one provider event. Events for unknown, finished or
// abandoned attempts are discarded.
func (g *Gate) HandleEvent(ctx context.Context, e ports.CallEvent) {
	log := g.logger.With("call_id", e.CallID.String(), "event", string(e.Kind))

	a, ok := g.lookup(e.CallID, e.Kind.IsTerminal())
	if !ok {
		log.DebugContext(ctx, "discarding event for call that is not in flight")
		return
	}

	switch e.Kind {
	case ports.CallConnected:
		if err := g.changeCall(ctx, e.CallID, func(c *call.Call) error {
			return c.Connect(g.at(e))
		}); err != nil {
			log.ErrorContext(ctx, "failed to record connected call", "error", err)
		}

	case ports.CallCompleted:
		outcome := Outcome{CallID: e.CallID, Verified: true}
		if err := g.complete(ctx, a, e); err != nil {
			log.ErrorContext(ctx, "failed to record verification", "error", err)
			outcome = Outcome{CallID: e.CallID, Reason: "verification could not be recorded"}
		} else {
			log.InfoContext(ctx, "parcel voice verified", "parcel_id", a.parcelID.Int64())
		}
		g.finish(a)
		a.done <- outcome

	case ports.CallFailed:
		reason := e.Reason
		if reason == "" {
			reason = "call failed"
		}
		if err := g.changeCall(ctx, e.CallID, func(c *call.Call) error {
			return c.Fail(reason, g.at(e))
		}); err != nil {
			log.ErrorContext(ctx, "failed to record failed call", "error", err)
		}
		log.InfoContext(ctx, "verification call failed", "reason", reason)
		g.finish(a)
		a.done <- Outcome{CallID: e.CallID, Reason: reason}

	default:
		log.WarnContext(ctx, "unknown call event kind")
	}
}

func (g *Gate) loadParcel(ctx context.Context, parcelID kernel.ParcelID, userID kernel.UserID) (*parcel.Parcel, string, error) {
	uow := g.uowFactory.Create()

	p, err := uow.ParcelRepository().Get(ctx, parcelID)
	if err != nil {
		return nil, "", err
	}
	if !p.IsOwnedBy(userID) {
		return nil, "", errs.ErrUnauthorized
	}
	if err = p.ValidateVerifiable(); err != nil {
		return nil, "", err
	}

	// Attempts started by other instances are only visible in the store.
	active, err := uow.CallRepository().HasActive(ctx, parcelID)
	if err != nil {
		return nil, "", err
	}
	if active {
		return nil, "", errs.ErrVerificationInProgress
	}

	var phone string
	prof, err := uow.ProfileRepository().Get(ctx, userID)
	switch {
	case err == nil:
		phone = prof.PhoneNumber()
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, "", err
	}

	return p, phone, nil
}

func (g *Gate) reserve(parcelID kernel.ParcelID, callID kernel.CallID) (*attempt, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.byParcel[parcelID]; ok {
		return nil, errs.ErrVerificationInProgress
	}

	a := &attempt{callID: callID, parcelID: parcelID, done: make(chan Outcome, 1)}
	g.byParcel[parcelID] = a
	g.byCall[callID] = a
	return a, nil
}

// release unregisters a. It reports false when a terminal event claimed the
// attempt first, in which case its outcome is about to be delivered.
func (g *Gate) release(a *attempt) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.byCall[a.callID] != a {
		return false
	}
	delete(g.byCall, a.callID)
	g.unregisterParcel(a)
	return true
}

// lookup finds the attempt for callID. A terminal event claims it: later
// events for the call are discarded, while the parcel stays reserved until
// finish.
func (g *Gate) lookup(callID kernel.CallID, claim bool) (*attempt, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	a, ok := g.byCall[callID]
	if ok && claim {
		delete(g.byCall, callID)
	}
	return a, ok
}

// finish frees the parcel of a claimed attempt once its outcome is recorded.
func (g *Gate) finish(a *attempt) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.unregisterParcel(a)
}

func (g *Gate) unregisterParcel(a *attempt) {
	if g.byParcel[a.parcelID] == a {
		delete(g.byParcel, a.parcelID)
	}
}

func (g *Gate) abandon(ctx context.Context, callID kernel.CallID, reason string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if err := g.changeCall(ctx, callID, func(c *call.Call) error {
		return c.Fail(reason, g.now())
	}); err != nil && !errors.Is(err, errs.ErrInvalidTransition) {
		g.logger.ErrorContext(ctx, "failed to close abandoned call", "call_id", callID.String(), "error", err)
	}
}

func (g *Gate) addCall(ctx context.Context, c *call.Call) error {
	uow := g.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.CallRepository().Add(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (g *Gate) changeCall(ctx context.Context, callID kernel.CallID, change func(c *call.Call) error) error {
	uow := g.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CallRepository()
	c, err := repo.Get(ctx, callID)
	if err != nil {
		return err
	}
	if err = change(c); err != nil {
		return err
	}
	if err = repo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// complete closes the call record and sets the parcel flag in one
// transaction. Setting the flag is idempotent, so a concurrent parcel change
// is resolved by reloading and trying again.
func (g *Gate) complete(ctx context.Context, a *attempt, e ports.CallEvent) error {
	var err error
	for range maxVerifyAttempts {
		err = g.completeOnce(ctx, a, e)
		if !errors.Is(err, errs.ErrConcurrentModification) {
			return err
		}
	}
	return err
}

func (g *Gate) completeOnce(ctx context.Context, a *attempt, e ports.CallEvent) error {
	uow := g.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	calls := uow.CallRepository()
	c, err := calls.Get(ctx, a.callID)
	if err != nil {
		return err
	}
	if err = c.Complete(e.Duration, e.RecordingURL, g.at(e)); err != nil {
		return err
	}
	if err = calls.Update(ctx, c); err != nil {
		return err
	}

	parcels := uow.ParcelRepository()
	p, err := parcels.Get(ctx, a.parcelID)
	if err != nil {
		return err
	}
	err = p.MarkVoiceVerified(g.now())
	switch {
	case errors.Is(err, errs.ErrAlreadyVerified):
	case err != nil:
		return err
	default:
		if err = parcels.Update(ctx, p); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (g *Gate) at(e ports.CallEvent) time.Time {
	if e.At.IsZero() {
		return g.now()
	}
	return e.At.UTC()
}
