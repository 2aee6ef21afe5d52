package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRun(t *testing.T) {
	pairsBefore := testutil.ToFloat64(PairsEvaluatedTotal)
	highBefore := testutil.ToFloat64(MatchesTotal.WithLabelValues("high"))

	RecordRun(10, 0.25, map[string]int{"high": 2, "low": 1})

	assert.InDelta(t, pairsBefore+10, testutil.ToFloat64(PairsEvaluatedTotal), 0.0001)
	assert.InDelta(t, highBefore+2, testutil.ToFloat64(MatchesTotal.WithLabelValues("high")), 0.0001)
}

func TestRecordRowSkipped(t *testing.T) {
	before := testutil.ToFloat64(RowsSkippedTotal.WithLabelValues("csv"))

	RecordRowSkipped("csv")
	RecordRowSkipped("csv")

	assert.InDelta(t, before+2, testutil.ToFloat64(RowsSkippedTotal.WithLabelValues("csv")), 0.0001)
}
