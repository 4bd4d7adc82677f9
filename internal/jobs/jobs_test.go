package jobs_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"shipping/internal/adapters/out/memory"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/call"
	"shipping/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type callUoWFactory func() commands.CallUoW

func (f callUoWFactory) Create() commands.CallUoW {
	return f()
}

func TestStaleCallReaperJob_Run(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore(), nil, slog.Default())

	old := time.Now().UTC().Add(-10 * time.Minute)
	stale, err := call.NewVerificationCall(1, "demo-001", old)
	require.NoError(t, err)
	require.NoError(t, stale.Dial(old))
	fresh, err := call.NewVerificationCall(2, "demo-001", time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, fresh.Dial(time.Now().UTC()))

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.CallRepository().Add(ctx, stale))
	require.NoError(t, uow.CallRepository().Add(ctx, fresh))
	require.NoError(t, uow.Commit(ctx))

	handler := commands.NewFailStaleCallsCommandHandler(callUoWFactory(func() commands.CallUoW {
		return factory.Create()
	}))
	job := jobs.NewStaleCallReaperJob(handler, time.Minute, "", slog.Default())
	cmd, err := commands.NewFailStaleCallsCommand(time.Minute)
	require.NoError(t, err)

	job.Run(ctx, cmd)

	reaped, err := factory.Create().CallRepository().Get(ctx, stale.ID())
	require.NoError(t, err)
	assert.Equal(t, call.Failed, reaped.Status())

	active, err := factory.Create().CallRepository().ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.True(t, active[0].ID().IsEqual(fresh.ID()))
}

func TestStaleCallReaperJob_StartRejectsBadConfig(t *testing.T) {
	handler := commands.NewFailStaleCallsCommandHandler(nil)

	err := jobs.NewStaleCallReaperJob(handler, 0, "", slog.Default()).Start()
	require.Error(t, err)

	err = jobs.NewStaleCallReaperJob(handler, time.Minute, "not a schedule", slog.Default()).Start()
	require.Error(t, err)
}

type fakeJob struct {
	startErr error
	started  bool
	stopped  bool
}

func (j *fakeJob) Start() error {
	if j.startErr != nil {
		return j.startErr
	}
	j.started = true
	return nil
}

func (j *fakeJob) Stop() {
	j.stopped = true
}

func TestJobManager(t *testing.T) {
	t.Run("should start and stop every job", func(t *testing.T) {
		a, b := &fakeJob{}, &fakeJob{}
		jm := jobs.NewJobManager(a, b)

		require.NoError(t, jm.StartAll())
		assert.True(t, a.started)
		assert.True(t, b.started)

		jm.StopAll()
		assert.True(t, a.stopped)
		assert.True(t, b.stopped)
	})

	t.Run("should stop started jobs when a later job fails", func(t *testing.T) {
		a, b := &fakeJob{}, &fakeJob{startErr: errors.New("boom")}
		jm := jobs.NewJobManager(a, b)

		err := jm.StartAll()

		require.ErrorContains(t, err, "boom")
		assert.True(t, a.stopped)
		assert.False(t, b.stopped)
	})
}
