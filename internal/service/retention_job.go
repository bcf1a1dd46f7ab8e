package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Pruner deletes records older than a cutoff. All event repositories implement it.
type Pruner interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionJob periodically prunes the event log.
type RetentionJob struct {
	pruners map[string]Pruner
	days    int
	now     func() time.Time
	log     zerolog.Logger
	cron    *cron.Cron
}

// NewRetentionJob keeps days of history in every pruner. days <= 0 disables
// pruning.
func NewRetentionJob(pruners map[string]Pruner, days int, logger zerolog.Logger) *RetentionJob {
	return &RetentionJob{pruners: pruners, days: days, now: time.Now, log: logger}
}

// Schedule registers the job on a standard five-field cron spec, evaluated
// in UTC. It does not start the scheduler.
func (j *RetentionJob) Schedule(spec string) error {
	if j.days <= 0 {
		j.log.Info().Msg("retention: disabled")
		return nil
	}
	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		j.Run(ctx)
	}); err != nil {
		return fmt.Errorf("retention schedule %q: %w", spec, err)
	}
	j.cron = c
	return nil
}

func (j *RetentionJob) Start() {
	if j.cron != nil {
		j.cron.Start()
		j.log.Info().Int("days", j.days).Msg("retention: scheduled")
	}
}

// Stop halts the scheduler and waits for a running prune to finish.
func (j *RetentionJob) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
	}
}

// Run prunes once and returns the rows deleted per table.
func (j *RetentionJob) Run(ctx context.Context) map[string]int64 {
	deleted := make(map[string]int64, len(j.pruners))
	if j.days <= 0 {
		return deleted
	}

	cutoff := j.Cutoff()
	for name, p := range j.pruners {
		n, err := p.DeleteBefore(ctx, cutoff)
		if err != nil {
			j.log.Error().Err(err).Str("table", name).Msg("retention: prune failed")
			continue
		}
		deleted[name] = n
	}
	j.log.Info().Time("cutoff", cutoff).Interface("deleted", deleted).Msg("retention: prune complete")
	return deleted
}

// Cutoff is the start of the UTC day days ago.
func (j *RetentionJob) Cutoff() time.Time {
	return startOfDay(j.now().UTC()).AddDate(0, 0, -j.days)
}
