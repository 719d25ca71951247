package jobs

import (
	"fmt"
	"log/slog"

	"bistro/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	reminderTickJob *ReminderTickJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	remindStaffHandler commands.RemindStaffCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		reminderTickJob: NewReminderTickJob(remindStaffHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.reminderTickJob.Start(); err != nil {
		return fmt.Errorf("failed to start reminder tick job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reminderTickJob.Stop()
}
