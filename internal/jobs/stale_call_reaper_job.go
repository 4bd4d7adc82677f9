package jobs

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultStaleCallSchedule runs the reaper once a minute.
const DefaultStaleCallSchedule = "@every 1m"

// StaleCallReaperJob fails verification calls that never received a final
// provider event, so that their parcels can be verified again.
type StaleCallReaperJob struct {
	handler  commands.FailStaleCallsCommandHandler
	timeout  time.Duration
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStaleCallReaperJob creates a reaper for calls older than timeout.
// schedule is a robfig/cron spec; an empty schedule means DefaultStaleCallSchedule.
func NewStaleCallReaperJob(
	handler commands.FailStaleCallsCommandHandler,
	timeout time.Duration,
	schedule string,
	logger *slog.Logger,
) *StaleCallReaperJob {
	if schedule == "" {
		schedule = DefaultStaleCallSchedule
	}
	return &StaleCallReaperJob{
		handler:  handler,
		timeout:  timeout,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "stale_call_reaper_job"),
	}
}

// Start schedules the reaper.
func (j *StaleCallReaperJob) Start() error {
	cmd, err := commands.NewFailStaleCallsCommand(j.timeout)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() { j.Run(context.Background(), cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale call reaper job started", "schedule", j.schedule, "timeout", j.timeout)
	return nil
}

// Run performs one sweep.
func (j *StaleCallReaperJob) Run(ctx context.Context, cmd commands.FailStaleCallsCommand) {
	failed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale call reaper job failed", "error", err)
		return
	}
	if failed > 0 {
		j.logger.InfoContext(ctx, "Failed stale verification calls", "count", failed)
	}
}

// Stop stops the reaper and waits for a running sweep to finish.
func (j *StaleCallReaperJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stale call reaper job stopped")
}
