// Package report renders match results for people: a localized fixed-width
// table, the same table through the logger, and a JSON document.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"contact-dedupe/internal/logger"
	"contact-dedupe/internal/matching"

	"github.com/samber/lo"
)

// Header names the three table columns.
const Header = "ContactID Origen | ContactID Coincidencia | Precisión"

var labels = map[matching.Tier]string{
	matching.TierHigh:   "Alta",
	matching.TierMedium: "Media",
	matching.TierLow:    "Baja",
}

// Label returns the display label of a tier.
func Label(tier matching.Tier) string {
	if label, ok := labels[tier]; ok {
		return label
	}
	return tier.String()
}

// Line formats one result the way the table prints it.
func Line(r matching.MatchResult) string {
	return fmt.Sprintf("%-17d%-25d%s", r.OriginID, r.MatchedID, Label(r.Tier))
}

// WriteTable writes the header and one line per result.
func WriteTable(w io.Writer, results []matching.MatchResult) error {
	if _, err := fmt.Fprintln(w, Header); err != nil {
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintln(w, Line(r)); err != nil {
			return err
		}
	}
	return nil
}

// LogTable emits the table through the global logger at info level.
func LogTable(results []matching.MatchResult) {
	logger.Info().Msg(Header)
	for _, r := range results {
		logger.Info().Msg(Line(r))
	}
}

// Summarize counts results per tier. Every tier is present in the map.
func Summarize(results []matching.MatchResult) map[matching.Tier]int {
	counts := lo.CountValuesBy(results, func(r matching.MatchResult) matching.Tier {
		return r.Tier
	})
	for _, tier := range matching.Tiers() {
		if _, ok := counts[tier]; !ok {
			counts[tier] = 0
		}
	}
	return counts
}

// Row is a result as it appears in the JSON document.
type Row struct {
	OriginID  int     `json:"origin_id"`
	MatchedID int     `json:"matched_id"`
	Tier      string  `json:"tier"`
	Label     string  `json:"label"`
	Score     float64 `json:"score"`
}

// Document is the JSON rendering of a run.
type Document struct {
	RunID      string         `json:"run_id"`
	Contacts   int            `json:"contacts"`
	Pairs      int            `json:"pairs"`
	DurationMS int64          `json:"duration_ms"`
	Summary    map[string]int `json:"summary"`
	Results    []Row          `json:"results"`
}

// NewDocument builds the JSON document for a run.
func NewDocument(runID string, contacts, pairs int, duration time.Duration, results []matching.MatchResult) Document {
	summary := lo.MapKeys(Summarize(results), func(_ int, tier matching.Tier) string {
		return tier.String()
	})

	return Document{
		RunID:      runID,
		Contacts:   contacts,
		Pairs:      pairs,
		DurationMS: duration.Milliseconds(),
		Summary:    summary,
		Results:    Rows(results),
	}
}

// Rows converts results for JSON output, keeping their order.
func Rows(results []matching.MatchResult) []Row {
	return lo.Map(results, func(r matching.MatchResult, _ int) Row {
		return Row{
			OriginID:  r.OriginID,
			MatchedID: r.MatchedID,
			Tier:      r.Tier.String(),
			Label:     Label(r.Tier),
			Score:     r.Score,
		}
	})
}

// WriteJSON writes doc as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
