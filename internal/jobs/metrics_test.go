package jobmetrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTrackerRecordsOutcome(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	assert.NoError(t, m.Track("mail:send").End(nil))
	boom := errors.New("boom")
	assert.ErrorIs(t, m.Track("mail:send").End(boom), boom)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("mail:send", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("mail:send", "failure")))
}

func TestEnqueuedCounter(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.Enqueued("mail:send", nil)
	m.Enqueued("mail:send", nil)
	m.Enqueued("mail:send", errors.New("redis down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.enqueued.WithLabelValues("mail:send", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.enqueued.WithLabelValues("mail:send", "failure")))
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *Metrics
	m.Enqueued("mail:send", nil)
	assert.NoError(t, m.Track("mail:send").End(nil))
}
