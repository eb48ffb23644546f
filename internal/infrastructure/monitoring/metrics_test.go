package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Prometheus collectors register globally, so the test binary shares one set.
var testMetrics = NewMetrics()

func TestSnapshotCountsRequests(t *testing.T) {
	before := testMetrics.Snapshot()

	testMetrics.RecordHTTPRequest("GET", "/fs/list", "200", 5*time.Millisecond, 128)
	testMetrics.RecordHTTPRequest("GET", "/fs/list", "404", time.Millisecond, 32)

	after := testMetrics.Snapshot()
	assert.Equal(t, before.TotalRequests+2, after.TotalRequests)
	assert.Equal(t, before.TotalErrors+1, after.TotalErrors, "4xx counts as an error")
}

func TestSnapshotCountsSearches(t *testing.T) {
	before := testMetrics.Snapshot()

	testMetrics.RecordSearch(2*time.Millisecond, 7)

	after := testMetrics.Snapshot()
	assert.Equal(t, before.TotalSearches+1, after.TotalSearches)
}

func TestScanLifecycleBalance(t *testing.T) {
	before := testMetrics.Snapshot()

	testMetrics.RecordScanStarted()
	assert.Equal(t, before.ActiveScans+1, testMetrics.Snapshot().ActiveScans)

	testMetrics.RecordScanFinished("completed")
	assert.Equal(t, before.ActiveScans, testMetrics.Snapshot().ActiveScans)
}

func TestSetIndexEntries(t *testing.T) {
	testMetrics.SetIndexEntries(42)
	assert.Equal(t, int64(42), testMetrics.Snapshot().IndexEntries)
}

func TestTimerRecordsToolCall(t *testing.T) {
	timer := NewTimer(testMetrics, "explorer", "explorer.list")
	assert.NotPanics(t, func() { timer.Stop("success") })
}

func TestUptimeAdvances(t *testing.T) {
	assert.GreaterOrEqual(t, testMetrics.UptimeSeconds(), 0.0)
}
