// Package stats collects per-frame engine metrics (frame time, physics time,
// FPS) in fixed-size rolling windows and formats them for the overlay.
package stats

import (
	"fmt"
)

// windowSize is how many recent samples each metric keeps.
const windowSize = 120

// Ranking says which extreme of a metric is the interesting one: for a cost
// metric (frame time) the highest sample is, for a rate metric (FPS) the
// lowest is.
type Ranking uint8

const (
	// RankHigh reports the highest sample in the window (cost metrics).
	RankHigh Ranking = iota
	// RankLow reports the lowest sample in the window (rate metrics).
	RankLow
)

// metric is one named rolling window.
type metric struct {
	key     string
	label   string
	unit    string
	ranking Ranking
	samples []float64
	next    int
	filled  bool
}

// Stats is a registry of metrics. Not safe for concurrent use; the frame
// scheduler owns it and pushes from the coordinating thread only.
type Stats struct {
	metrics []*metric
	index   map[string]*metric
}

// New returns an empty registry.
func New() *Stats {
	return &Stats{index: make(map[string]*metric)}
}

// Add registers a metric under key with a display label and unit. Metrics
// appear in the overlay in registration order. Re-adding an existing key is
// a no-op.
func (s *Stats) Add(key, label, unit string, ranking Ranking) {
	if _, ok := s.index[key]; ok {
		return
	}
	m := &metric{
		key:     key,
		label:   label,
		unit:    unit,
		ranking: ranking,
		samples: make([]float64, windowSize),
	}
	s.metrics = append(s.metrics, m)
	s.index[key] = m
}

// Push records a sample for the metric. Unknown keys are ignored.
func (s *Stats) Push(key string, value float64) {
	m, ok := s.index[key]
	if !ok {
		return
	}
	m.samples[m.next] = value
	m.next++
	if m.next == len(m.samples) {
		m.next = 0
		m.filled = true
	}
}

// Lines formats every metric as "Label: current (avg avg, worst extreme) unit".
// Metrics with no samples yet are skipped.
func (s *Stats) Lines() []string {
	out := make([]string, 0, len(s.metrics))
	for _, m := range s.metrics {
		n := m.count()
		if n == 0 {
			continue
		}
		cur := m.samples[(m.next+len(m.samples)-1)%len(m.samples)]
		avg, extreme := m.aggregate(n)
		out = append(out, fmt.Sprintf("%s: %.2f (avg %.2f, worst %.2f) %s",
			m.label, cur, avg, extreme, m.unit))
	}
	return out
}

func (m *metric) count() int {
	if m.filled {
		return len(m.samples)
	}
	return m.next
}

func (m *metric) aggregate(n int) (avg, extreme float64) {
	sum := 0.0
	extreme = m.samples[0]
	for i := 0; i < n; i++ {
		v := m.samples[i]
		sum += v
		switch m.ranking {
		case RankHigh:
			if v > extreme {
				extreme = v
			}
		case RankLow:
			if v < extreme {
				extreme = v
			}
		}
	}
	return sum / float64(n), extreme
}
