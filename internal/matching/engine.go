package matching

import (
	"contact-dedupe/internal/contact"

	"golang.org/x/sync/errgroup"
)

// MatchResult is an accepted pair. OriginID belongs to the record that comes
// first in the input.
type MatchResult struct {
	OriginID  int     `json:"origin_id"`
	MatchedID int     `json:"matched_id"`
	Tier      Tier    `json:"tier"`
	Score     float64 `json:"score"`
}

// Scan is the outcome of one pass over a contact list.
type Scan struct {
	Results []MatchResult
	Pairs   int
}

// Engine compares every unordered pair of contacts. A scan over n records
// costs n*(n-1)/2 pair evaluations; there is no blocking or early exit.
//
// With more than one worker, origin rows are scored concurrently and stitched
// back together in input order, so the output never depends on the worker count.
type Engine struct {
	workers int
}

// NewEngine creates an engine. workers below 1 are treated as 1.
func NewEngine(workers int) *Engine {
	return &Engine{workers: max(workers, 1)}
}

// FindMatches returns the accepted pairs in (i, j) enumeration order.
func (e *Engine) FindMatches(contacts []contact.Record) []MatchResult {
	return e.Scan(contacts).Results
}

// Scan scores all pairs and reports how many were evaluated.
func (e *Engine) Scan(contacts []contact.Record) Scan {
	if len(contacts) < 2 {
		return Scan{Results: []MatchResult{}}
	}

	if e.workers == 1 {
		scan := Scan{Results: []MatchResult{}}
		for i := range contacts {
			results, pairs := matchRow(contacts, i)
			scan.Results = append(scan.Results, results...)
			scan.Pairs += pairs
		}
		return scan
	}

	rows := make([][]MatchResult, len(contacts))
	counts := make([]int, len(contacts))

	var g errgroup.Group
	g.SetLimit(e.workers)
	for i := range contacts {
		i := i
		g.Go(func() error {
			rows[i], counts[i] = matchRow(contacts, i)
			return nil
		})
	}
	_ = g.Wait()

	scan := Scan{Results: []MatchResult{}}
	for i := range rows {
		scan.Results = append(scan.Results, rows[i]...)
		scan.Pairs += counts[i]
	}
	return scan
}

// matchRow scores contacts[i] against every later contact.
func matchRow(contacts []contact.Record, i int) ([]MatchResult, int) {
	var results []MatchResult
	origin := contacts[i]
	pairs := 0

	for j := i + 1; j < len(contacts); j++ {
		pairs++
		score := Score(origin, contacts[j])
		if score < AcceptanceThreshold {
			continue
		}
		results = append(results, MatchResult{
			OriginID:  origin.ID,
			MatchedID: contacts[j].ID,
			Tier:      Classify(score),
			Score:     score,
		})
	}

	return results, pairs
}

// PairCount is the number of unordered pairs among n records.
func PairCount(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}
