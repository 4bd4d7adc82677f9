// Package jobs provides scheduled background tasks for the shipping service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. StaleCallReaperJob - fails verification calls left dialing or connected
// past the call timeout, for example after a restart interrupted the gate
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	reaper := jobs.NewStaleCallReaperJob(failStaleCallsHandler, 3*time.Minute, "@every 1m", logger)
//	jobManager := jobs.NewJobManager(reaper)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the robfig/cron syntax with an optional seconds field,
// including descriptors such as "@every 30s".
//
// # Error Handling
//
// Sweep errors are logged; a failed sweep is retried on the next tick.
// Failed job starts stop any already running jobs.
package jobs
