// Package scheduler runs the maintenance jobs of the server.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
)

// JobStatus is the state of a job after its last run.
type JobStatus string

const (
	JobStatusScheduled JobStatus = "scheduled"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// JobInfo describes a scheduled job.
type JobInfo struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Schedule   string    `json:"schedule"`
	Status     JobStatus `json:"status"`
	LastRun    time.Time `json:"lastRun"`
	NextRun    time.Time `json:"nextRun"`
	RunCount   int       `json:"runCount"`
	ErrorCount int       `json:"errorCount"`
	LastError  string    `json:"lastError,omitempty"`

	job gocron.Job
}

// JobFunc is the work of a job.
type JobFunc func(ctx context.Context) error

// Scheduler runs jobs on cron schedules.
type Scheduler struct {
	gocron gocron.Scheduler
	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.RWMutex
	jobs map[string]*JobInfo
}

// New creates a new scheduler.
func New() (*Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLogger(newLogger()))
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		gocron: s,
		ctx:    ctx,
		cancel: cancel,
		jobs:   make(map[string]*JobInfo),
	}, nil
}

// AddCronJob schedules fn on a crontab expression. Runs of the same job never overlap.
func (s *Scheduler) AddCronJob(id, name, crontab string, fn JobFunc) error {
	info := &JobInfo{
		ID:       id,
		Name:     name,
		Schedule: crontab,
		Status:   JobStatusScheduled,
	}

	job, err := s.gocron.NewJob(
		gocron.CronJob(crontab, false),
		gocron.NewTask(s.wrap(info, fn)),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create job %s: %w", id, err)
	}
	info.job = job

	s.mu.Lock()
	s.jobs[id] = info
	s.mu.Unlock()
	log.Info("Added job to scheduler", "id", id, "name", name, "schedule", crontab)
	return nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	log.Info("Starting job scheduler")
	s.gocron.Start()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, info := range s.jobs {
		if next, err := info.job.NextRun(); err == nil {
			info.NextRun = next
			log.Debug("Next run time for job", "id", id, "nextRun", next)
		}
	}
}

// Stop stops the scheduler and cancels running jobs.
func (s *Scheduler) Stop() error {
	log.Info("Stopping job scheduler")
	s.cancel()
	return s.gocron.Shutdown()
}

// RunJobNow triggers a job outside of its schedule.
func (s *Scheduler) RunJobNow(id string) error {
	s.mu.RLock()
	info, ok := s.jobs[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("job %s not found", id)
	}
	log.Info("Manually triggering job", "id", id, "name", info.Name)
	if err := info.job.RunNow(); err != nil {
		return fmt.Errorf("failed to trigger job %s: %w", id, err)
	}
	return nil
}

// Job returns a snapshot of a job.
func (s *Scheduler) Job(id string) (JobInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.jobs[id]
	if !ok {
		return JobInfo{}, false
	}
	return *info, true
}

func (s *Scheduler) wrap(info *JobInfo, fn JobFunc) func() {
	return func() {
		s.mu.Lock()
		info.Status = JobStatusRunning
		info.LastRun = time.Now()
		info.RunCount++
		s.mu.Unlock()

		log.Debug("Starting job", "id", info.ID)
		err := fn(s.ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if info.job != nil {
			if next, nerr := info.job.NextRun(); nerr == nil {
				info.NextRun = next
			}
		}
		if err != nil {
			log.Error("Job failed", "id", info.ID, "error", err)
			info.Status = JobStatusFailed
			info.ErrorCount++
			info.LastError = err.Error()
			return
		}
		log.Debug("Job completed", "id", info.ID)
		info.Status = JobStatusCompleted
		info.LastError = ""
	}
}
