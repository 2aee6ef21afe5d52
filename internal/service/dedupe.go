package service

import (
	"context"
	"time"

	"contact-dedupe/internal/contact"
	"contact-dedupe/internal/logger"
	"contact-dedupe/internal/matching"
	"contact-dedupe/internal/metrics"
	"contact-dedupe/internal/report"

	"github.com/google/uuid"
)

// Run is the outcome of one deduplication pass.
type Run struct {
	ID       uuid.UUID
	Contacts int
	Pairs    int
	Results  []matching.MatchResult
	Duration time.Duration
}

// Document renders the run for JSON output.
func (r Run) Document() report.Document {
	return report.NewDocument(r.ID.String(), r.Contacts, r.Pairs, r.Duration, r.Results)
}

type contactLoader interface {
	Load(ctx context.Context) ([]contact.Record, error)
}

// DedupeService runs the matching engine over contact lists and records
// metrics and a summary log line per run.
type DedupeService struct {
	engine *matching.Engine
}

// NewDedupeService creates a new dedupe service.
func NewDedupeService(engine *matching.Engine) *DedupeService {
	return &DedupeService{engine: engine}
}

// Run scores every pair in contacts. The context only carries request scope
// for logging; a scan is never interrupted.
func (s *DedupeService) Run(ctx context.Context, contacts []contact.Record) Run {
	run := Run{ID: uuid.New(), Contacts: len(contacts)}

	start := time.Now()
	scan := s.engine.Scan(contacts)
	run.Duration = time.Since(start)
	run.Pairs = scan.Pairs
	run.Results = scan.Results

	summary := report.Summarize(run.Results)
	byTier := make(map[string]int, len(summary))
	for tier, count := range summary {
		byTier[tier.String()] = count
	}
	metrics.RecordRun(run.Pairs, run.Duration.Seconds(), byTier)

	logger.Info().
		Str("run_id", run.ID.String()).
		Int("contacts", run.Contacts).
		Int("pairs", run.Pairs).
		Int("matches", len(run.Results)).
		Int("high", summary[matching.TierHigh]).
		Int("medium", summary[matching.TierMedium]).
		Int("low", summary[matching.TierLow]).
		Dur("duration", run.Duration).
		Msg("dedupe run finished")

	return run
}

// RunFrom loads contacts from source and runs them.
func (s *DedupeService) RunFrom(ctx context.Context, source contactLoader) (Run, error) {
	contacts, err := source.Load(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load contacts")
		return Run{}, err
	}
	return s.Run(ctx, contacts), nil
}
