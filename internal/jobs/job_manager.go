package jobs

import (
	"fmt"
	"log/slog"

	"fooddelivery/internal/metrics"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	jobs []namedJob
}

type namedJob struct {
	name string
	job  Job
}

// NewJobManager creates a job manager with the jobs of the delivery service.
func NewJobManager(statsHandler DeliveryStatsHandler, logger *slog.Logger) *JobManager {
	jm := &JobManager{}
	jm.Add("delivery stats", NewDeliveryStatsJob(statsHandler, metrics.AvailableDrivers, metrics.ActiveDeliveries, logger))
	return jm
}

// Add registers a job. Jobs start in the order they were added.
func (jm *JobManager) Add(name string, job Job) {
	jm.jobs = append(jm.jobs, namedJob{name: name, job: job})
}

// StartAll starts all scheduled jobs.
// If a job fails to start, the jobs already started are stopped again.
func (jm *JobManager) StartAll() error {
	for i, nj := range jm.jobs {
		if err := nj.job.Start(); err != nil {
			for j := i - 1; j >= 0; j-- {
				jm.jobs[j].job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", nj.name, err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs in reverse start order.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].job.Stop()
	}
}
