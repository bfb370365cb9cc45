package jobs

import (
	"context"
	"log/slog"
	"time"

	"labflow/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// ExpiredOrdersCounter is satisfied by queries.CountExpiredOrdersQueryHandler.
type ExpiredOrdersCounter interface {
	Handle(ctx context.Context, query queries.CountExpiredOrdersQuery) (queries.CountExpiredOrdersQueryResponse, error)
}

// ExpiredOrdersReportJob periodically logs how many active, unfinished orders are
// past their expiresAt. It only reads; orders are never modified.
type ExpiredOrdersReportJob struct {
	counter  ExpiredOrdersCounter
	schedule string
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewExpiredOrdersReportJob creates the job. schedule is a six-field cron spec
// (seconds first), e.g. "0 */5 * * * *".
func NewExpiredOrdersReportJob(
	counter ExpiredOrdersCounter,
	schedule string,
	now func() time.Time,
	logger *slog.Logger,
) *ExpiredOrdersReportJob {
	if now == nil {
		now = time.Now
	}

	return &ExpiredOrdersReportJob{
		counter:  counter,
		schedule: schedule,
		now:      now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "expired_orders_report_job"),
	}
}

// Start registers the report on its schedule and starts the scheduler.
func (j *ExpiredOrdersReportJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expired orders report job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running report to finish.
func (j *ExpiredOrdersReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Expired orders report job stopped")
}

func (j *ExpiredOrdersReportJob) run(ctx context.Context) {
	query, err := queries.NewCountExpiredOrdersQuery(j.now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Expired orders report job failed", "error", err)
		return
	}

	report, err := j.counter.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Expired orders report job failed", "error", err)
		return
	}

	if report.Count == 0 {
		j.logger.DebugContext(ctx, "No expired orders")
		return
	}

	attrs := []any{"count", report.Count}
	if report.OldestExpiresAt != nil {
		attrs = append(attrs, "oldest_expires_at", report.OldestExpiresAt.Format(time.RFC3339))
	}
	j.logger.WarnContext(ctx, "Active orders past their expiry", attrs...)
}
