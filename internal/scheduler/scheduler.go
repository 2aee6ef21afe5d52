// Package scheduler runs full dedupe scans of a contact source on a cron
// schedule and keeps the most recent run in memory.
package scheduler

import (
	"context"
	"sync"

	"contact-dedupe/internal/contact"
	"contact-dedupe/internal/logger"
	"contact-dedupe/internal/report"
	"contact-dedupe/internal/service"

	"github.com/robfig/cron/v3"
)

type contactLoader interface {
	Load(ctx context.Context) ([]contact.Record, error)
}

type Scheduler struct {
	cron          *cron.Cron
	spec          string
	dedupeService *service.DedupeService
	source        contactLoader

	mu     sync.RWMutex
	latest *service.Run
}

// NewScheduler creates a scheduler for spec, which uses six fields
// (seconds first) or a descriptor such as "@every 1h".
func NewScheduler(spec string, dedupeService *service.DedupeService, source contactLoader) *Scheduler {
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cronLogger{}),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{})),
	)

	return &Scheduler{
		cron:          c,
		spec:          spec,
		dedupeService: dedupeService,
		source:        source,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if _, err := s.RunNow(context.Background()); err != nil {
			logger.Error().Err(err).Msg("scheduled scan failed")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Str("schedule", s.spec).Msg("scheduler started")

	return nil
}

// Stop stops the schedule and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Info().Msg("scheduler stopped")
}

// RunNow scans the source immediately and records the run as the latest.
func (s *Scheduler) RunNow(ctx context.Context) (service.Run, error) {
	run, err := s.dedupeService.RunFrom(ctx, s.source)
	if err != nil {
		return service.Run{}, err
	}

	report.LogTable(run.Results)

	s.mu.Lock()
	s.latest = &run
	s.mu.Unlock()

	return run, nil
}

// Latest returns the most recent successful run, if any.
func (s *Scheduler) Latest() (service.Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == nil {
		return service.Run{}, false
	}
	return *s.latest, true
}

// cronLogger routes cron's own logging through zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
