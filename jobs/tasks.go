package jobs

import (
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReminderSweep is the task type for the invoice reminder sweep.
	TaskReminderSweep = "reminders:sweep"
)

// NewReminderSweepTask constructs an Asynq task. The sweep carries no
// payload; everything it needs comes from the database at run time.
func NewReminderSweepTask() *asynq.Task {
	return asynq.NewTask(TaskReminderSweep, nil)
}
