package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"bistro/internal/core/application/usecases/commands"
)

// ReminderTickJob drives the admin reminder scheduler. It runs every second;
// the scheduler itself decides which tracked order, if any, is due an alert.
type ReminderTickJob struct {
	handler commands.RemindStaffCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewReminderTickJob creates the job around the remind staff handler.
func NewReminderTickJob(handler commands.RemindStaffCommandHandler, logger *slog.Logger) *ReminderTickJob {
	return &ReminderTickJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "reminder_tick_job"),
	}
}

// Start begins ticking the reminder scheduler every second.
func (j *ReminderTickJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewRemindStaffCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Reminder tick failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reminder tick job started (running every second)")
	return nil
}

// Stop stops the reminder tick job.
func (j *ReminderTickJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Reminder tick job stopped")
}
