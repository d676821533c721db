package netsim

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// Metrics accumulates per-transfer results for one simulation run.
type Metrics struct {
	RunName string

	MessagesSent      int
	MessagesCompleted int
	TotalBytes        float64

	delays []float64
}

// NewMetrics returns an empty accumulator tagged with a run name.
func NewMetrics(runName string) *Metrics {
	return &Metrics{RunName: runName}
}

// RecordSend notes one issued transfer.
func (m *Metrics) RecordSend(messageBytes float64) {
	m.MessagesSent++
	m.TotalBytes += messageBytes
}

// RecordCompletion notes one completed transfer and its end-to-end delay.
func (m *Metrics) RecordCompletion(delay float64) {
	m.MessagesCompleted++
	m.delays = append(m.delays, delay)
}

// DelaySummary describes the distribution of completed transfer delays.
type DelaySummary struct {
	Mean float64
	P50  float64
	P95  float64
	P99  float64
	Max  float64
}

// Summary computes the delay distribution. The zero value is returned when
// no transfer has completed.
func (m *Metrics) Summary() DelaySummary {
	if len(m.delays) == 0 {
		return DelaySummary{}
	}
	sorted := make([]float64, len(m.delays))
	copy(sorted, m.delays)
	sort.Float64s(sorted)
	return DelaySummary{
		Mean: stat.Mean(sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P95:  stat.Quantile(0.95, stat.Empirical, sorted, nil),
		P99:  stat.Quantile(0.99, stat.Empirical, sorted, nil),
		Max:  sorted[len(sorted)-1],
	}
}

// Print logs the run report: message counts, byte volume, final simulated
// time, delay distribution, and wall-clock duration.
func (m *Metrics) Print(finalTime float64, wall time.Duration) {
	s := m.Summary()
	logrus.Infof("run %q: %d/%d messages completed, %.0f bytes moved",
		m.RunName, m.MessagesCompleted, m.MessagesSent, m.TotalBytes)
	logrus.Infof("run %q: simulated time %.3f, wall time %s", m.RunName, finalTime, wall)
	logrus.Infof("run %q: delay mean=%.3f p50=%.3f p95=%.3f p99=%.3f max=%.3f",
		m.RunName, s.Mean, s.P50, s.P95, s.P99, s.Max)
}
