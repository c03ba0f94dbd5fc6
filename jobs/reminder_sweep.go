package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/calebo95/athlete-portal/internal/jobs"
	"github.com/calebo95/athlete-portal/internal/reminders"
)

// ReminderSweepJob runs the invoice reminder sweep from the queue.
type ReminderSweepJob struct {
	Reminders *reminders.Service
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
	clock     func() time.Time
}

// NewReminderSweepJob wires dependencies for the sweep handler.
func NewReminderSweepJob(svc *reminders.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *ReminderSweepJob {
	return &ReminderSweepJob{
		Reminders: svc,
		Logger:    logger,
		Metrics:   metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes reminder sweep tasks.
func (j *ReminderSweepJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reminders == nil {
		return errors.New("reminder sweep: handler not configured")
	}

	tracker := j.metrics().Track(TaskReminderSweep)
	report, err := j.Reminders.Run(ctx, j.now())
	if errors.Is(err, reminders.ErrRunInProgress) {
		// Another sweep holds the lease. Do not retry; the scheduler
		// will enqueue the next one.
		j.logger().Info("reminder sweep skipped, run in progress")
		tracker.End(nil)
		return nil
	}
	if err != nil {
		j.logger().Error("reminder sweep", slog.Any("error", err))
		return tracker.End(err)
	}

	j.metrics().AddReminded(report.OwnersNotified, report.InvoicesMarked)
	j.logger().Info("reminder sweep finished",
		slog.Int("processed", report.Processed),
		slog.Int("owners_notified", report.OwnersNotified),
		slog.Int("invoices_marked", report.InvoicesMarked))
	return tracker.End(nil)
}

func (j *ReminderSweepJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return jobmetrics.NewMetrics(nil)
}

func (j *ReminderSweepJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

func (j *ReminderSweepJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
