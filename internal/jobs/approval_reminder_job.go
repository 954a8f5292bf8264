package jobs

import (
	"context"
	"log/slog"
	"time"

	"shipments/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// reminderAge is how long a request may sit pending before it is surfaced.
const reminderAge = time.Hour

// ApprovalReminderJob periodically surfaces approval requests that have been
// pending too long. Suspended actions wait for a human verdict; without a
// reminder a forgotten request silently blocks its shipment.
type ApprovalReminderJob struct {
	repo   ports.ApprovalRepository
	cron   *cron.Cron
	logger *slog.Logger
}

// NewApprovalReminderJob creates a job that reports stale pending approvals.
func NewApprovalReminderJob(repo ports.ApprovalRepository, logger *slog.Logger) *ApprovalReminderJob {
	return &ApprovalReminderJob{
		repo:   repo,
		cron:   cron.New(),
		logger: logger.With("component", "approval_reminder_job"),
	}
}

// Start schedules the reminder to run every 15 minutes.
func (j *ApprovalReminderJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * *", func() {
		ctx := context.Background()

		pending, listErr := j.repo.GetAllPending(ctx)
		if listErr != nil {
			j.logger.ErrorContext(ctx, "Approval reminder job failed to list pending requests", "error", listErr)
			return
		}

		cutoff := time.Now().Add(-reminderAge)
		for _, request := range pending {
			if request.CreatedAt().After(cutoff) {
				continue
			}
			j.logger.WarnContext(ctx, "Approval request still pending",
				"request_id", request.ID().String(),
				"action", request.ActionKey(),
				"context_id", request.ContextID(),
				"requested_by", request.RequestedBy(),
				"age", time.Since(request.CreatedAt()).Round(time.Minute).String(),
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Approval reminder job started (running every 15 minutes)")
	return nil
}

// Stop stops the approval reminder job.
func (j *ApprovalReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Approval reminder job stopped")
}
