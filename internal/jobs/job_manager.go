package jobs

import (
	"fmt"
	"log/slog"

	"shipments/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	approvalReminderJob *ApprovalReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(approvalRepo ports.ApprovalRepository, logger *slog.Logger) *JobManager {
	return &JobManager{
		approvalReminderJob: NewApprovalReminderJob(approvalRepo, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.approvalReminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start approval reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.approvalReminderJob.Stop()
}
