package scheduler

import "context"

// PurgeViewCacheJobID identifies the job dropping cached view fragments.
const PurgeViewCacheJobID = "purge-view-cache"

// Purger drops cached data.
type Purger interface {
	Purge(ctx context.Context) error
}

// AddPurgeViewCacheJob schedules p to be purged on crontab.
func (s *Scheduler) AddPurgeViewCacheJob(crontab string, p Purger) error {
	return s.AddCronJob(PurgeViewCacheJobID, "Purge view cache", crontab, p.Purge)
}
