package jobs

import (
	"fmt"
	"log/slog"
)

// Job is the common lifecycle of every scheduled job.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application: one job per
// simulated robot, one per shelf, and the coordinator. Provides a unified
// interface to start and stop all background jobs.
type JobManager struct {
	jobs   []Job
	logger *slog.Logger
}

// NewJobManager creates a job manager over the given jobs. Jobs are started
// in the order provided and stopped in reverse.
func NewJobManager(logger *slog.Logger, jobs ...Job) *JobManager {
	return &JobManager{
		jobs:   jobs,
		logger: logger.With("component", "job_manager"),
	}
}

// StartAll starts all scheduled jobs.
// If any job fails to start, the already started jobs are stopped again.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			for k := i - 1; k >= 0; k-- {
				jm.jobs[k].Stop()
			}
			return fmt.Errorf("failed to start job %d of %d: %w", i+1, len(jm.jobs), err)
		}
	}

	jm.logger.Info("All jobs started", "count", len(jm.jobs))
	return nil
}

// StopAll stops all scheduled jobs gracefully, in reverse start order.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
	jm.logger.Info("All jobs stopped")
}
