// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations.
//
// # Available Jobs
//
// 1. ReminderTickJob - Runs every second to evaluate the admin reminder
// scheduler and surface alerts for unconfirmed orders
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(remindStaffHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The tick job uses the cron expression "* * * * * *", running every second.
// Alert pacing (the 30 second interval, budget and cool-down) lives in the
// reminder scheduler, not in the cron schedule.
//
// # Error Handling
//
// - Tick failures are logged and the next tick proceeds normally
// - Failed job starts will stop any already running jobs
package jobs
