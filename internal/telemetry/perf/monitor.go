// Package perf measures per-phase collection cost and grades the engine
// against fixed latency budgets. Budgets are enforced by measurement and
// reporting only; a slow phase is flagged, never aborted.
package perf

import (
	"log"
	"sort"
	"sync"
	"time"
)

// Score bands for average per-tick processing time.
type Score string

const (
	ScoreExcellent Score = "excellent" // <= 1ms
	ScoreGood      Score = "good"      // <= 2ms
	ScoreFair      Score = "fair"      // <= 5ms
	ScorePoor      Score = "poor"      // <= 10ms
	ScoreVeryPoor  Score = "very_poor"
)

const (
	excellentBudget = time.Millisecond
	goodBudget      = 2 * time.Millisecond
	fairBudget      = 5 * time.Millisecond
	poorBudget      = 10 * time.Millisecond
)

type phaseStats struct {
	latest time.Duration
	total  time.Duration
	count  uint64
}

type Monitor struct {
	mu     sync.Mutex
	phases map[string]*phaseStats

	tickTotal time.Duration
	tickCount uint64
	lastTick  time.Duration

	reportEvery time.Duration
	lastReport  time.Time
	logger      *log.Logger
}

func NewMonitor(reportEvery time.Duration, logger *log.Logger) *Monitor {
	return &Monitor{
		phases:      map[string]*phaseStats{},
		reportEvery: reportEvery,
		logger:      logger,
	}
}

// RecordPhase stores one phase's duration for the current tick and folds
// it into the phase's running totals.
func (m *Monitor) RecordPhase(name string, d time.Duration) {
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ps := m.phases[name]
	if ps == nil {
		ps = &phaseStats{}
		m.phases[name] = ps
	}
	ps.latest = d
	ps.total += d
	ps.count++
}

// RecordTick folds a whole tick's processing time into the moving average
// and emits a throttled report when the reporting interval has elapsed.
func (m *Monitor) RecordTick(d time.Duration) {
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	m.lastTick = d
	m.tickTotal += d
	m.tickCount++
	shouldReport := false
	now := time.Now()
	if m.logger != nil && m.reportEvery > 0 && now.Sub(m.lastReport) >= m.reportEvery {
		m.lastReport = now
		shouldReport = true
	}
	m.mu.Unlock()

	if shouldReport {
		r := m.Report()
		m.logger.Printf("perf: ticks=%d avg=%s last=%s score=%s slow_est=%d",
			r.Ticks, r.Average, r.LastTick, r.Score, r.EstimatedSlowTicks)
	}
}

// Average returns the moving-average tick processing time.
func (m *Monitor) Average() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.averageLocked()
}

func (m *Monitor) averageLocked() time.Duration {
	if m.tickCount == 0 {
		return 0
	}
	return m.tickTotal / time.Duration(m.tickCount)
}

// ScoreOf grades an average tick duration against the fixed budgets.
func ScoreOf(avg time.Duration) Score {
	switch {
	case avg <= excellentBudget:
		return ScoreExcellent
	case avg <= goodBudget:
		return ScoreGood
	case avg <= fairBudget:
		return ScoreFair
	case avg <= poorBudget:
		return ScorePoor
	default:
		return ScoreVeryPoor
	}
}

// estimateSlowTicks derives a rough slow-tick count from how far the
// average overshoots the "good" budget. An estimate by construction, not
// an exact exceedance count.
func estimateSlowTicks(avg time.Duration, ticks uint64) uint64 {
	if avg <= goodBudget || ticks == 0 {
		return 0
	}
	over := float64(avg-goodBudget) / float64(goodBudget)
	if over > 1 {
		over = 1
	}
	return uint64(over * float64(ticks))
}

type PhaseReport struct {
	Name    string        `json:"name"`
	Latest  time.Duration `json:"latest"`
	Average time.Duration `json:"average"`
	Count   uint64        `json:"count"`
}

type TickReport struct {
	Ticks              uint64        `json:"ticks"`
	LastTick           time.Duration `json:"last_tick"`
	Average            time.Duration `json:"average"`
	Score              Score         `json:"score"`
	EstimatedSlowTicks uint64        `json:"estimated_slow_ticks"`
	Phases             []PhaseReport `json:"phases"`
}

// Report assembles the current counters. Phases are sorted by name for
// stable output.
func (m *Monitor) Report() TickReport {
	m.mu.Lock()
	defer m.mu.Unlock()
	avg := m.averageLocked()
	r := TickReport{
		Ticks:              m.tickCount,
		LastTick:           m.lastTick,
		Average:            avg,
		Score:              ScoreOf(avg),
		EstimatedSlowTicks: estimateSlowTicks(avg, m.tickCount),
	}
	for name, ps := range m.phases {
		var phaseAvg time.Duration
		if ps.count > 0 {
			phaseAvg = ps.total / time.Duration(ps.count)
		}
		r.Phases = append(r.Phases, PhaseReport{
			Name:    name,
			Latest:  ps.latest,
			Average: phaseAvg,
			Count:   ps.count,
		})
	}
	sort.Slice(r.Phases, func(i, j int) bool { return r.Phases[i].Name < r.Phases[j].Name })
	return r
}

// LatestPhaseTimings returns this tick's phase durations keyed by phase
// name. The map is rebuilt per call; callers own it.
func (m *Monitor) LatestPhaseTimings() map[string]time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]time.Duration, len(m.phases))
	for name, ps := range m.phases {
		out[name] = ps.latest
	}
	return out
}
