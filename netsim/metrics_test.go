package netsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counts(t *testing.T) {
	m := NewMetrics("test")
	m.RecordSend(100)
	m.RecordSend(200)
	m.RecordCompletion(10)

	assert.Equal(t, 2, m.MessagesSent)
	assert.Equal(t, 1, m.MessagesCompleted)
	assert.Equal(t, 300.0, m.TotalBytes)
}

func TestMetrics_Summary(t *testing.T) {
	m := NewMetrics("test")
	for _, d := range []float64{4, 1, 3, 2} {
		m.RecordCompletion(d)
	}

	s := m.Summary()
	assert.InDelta(t, 2.5, s.Mean, 1e-9)
	assert.InDelta(t, 2.0, s.P50, 1e-9)
	assert.InDelta(t, 4.0, s.Max, 1e-9)
}

func TestMetrics_SummaryEmpty(t *testing.T) {
	assert.Equal(t, DelaySummary{}, NewMetrics("empty").Summary())
}
