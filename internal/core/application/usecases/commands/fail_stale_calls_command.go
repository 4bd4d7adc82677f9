package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrFailStaleCallsCommandIsNotConstructed = errors.New(
	"FailStaleCallsCommand must be created via NewFailStaleCallsCommand constructor",
)

// FailStaleCallsCommand closes call records that were left dialing or connected,
// for example by a restart while a verification was in flight.
type FailStaleCallsCommand struct { //nolint:recvcheck //using for validation
	timeout time.Duration

	guard guard.ConstructorGuard
}

func NewFailStaleCallsCommand(timeout time.Duration) (FailStaleCallsCommand, error) {
	if timeout <= 0 {
		return FailStaleCallsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"timeout", fmt.Errorf("%s is not greater than 0", timeout))
	}
	return FailStaleCallsCommand{
		timeout: timeout,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c FailStaleCallsCommand) Validate() error {
	return c.guard.Validate(ErrFailStaleCallsCommandIsNotConstructed)
}

func (c FailStaleCallsCommand) Timeout() time.Duration {
	return c.timeout
}

// FailStaleCallsCommandHandler marks stale call attempts as failed. The parcel
// verification flag is never touched, so a reaped call simply has to be retried.
type FailStaleCallsCommandHandler struct {
	uowFactory CallUoWFactory
}

func NewFailStaleCallsCommandHandler(uowFactory CallUoWFactory) FailStaleCallsCommandHandler {
	return FailStaleCallsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the number of calls that were failed.
func (h FailStaleCallsCommandHandler) Handle(ctx context.Context, cmd FailStaleCallsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CallRepository()
	active, err := repo.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	failed := 0
	for _, c := range active {
		if !c.IsStale(now, cmd.Timeout()) {
			continue
		}
		if err = c.Fail("no provider response before timeout", now); err != nil {
			return 0, err
		}
		if err = repo.Update(ctx, c); err != nil {
			return 0, err
		}
		failed++
	}

	if failed == 0 {
		return 0, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return failed, nil
}
