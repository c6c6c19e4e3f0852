package perf

import (
	"testing"
	"time"
)

func TestScoreBands(t *testing.T) {
	cases := []struct {
		avg  time.Duration
		want Score
	}{
		{500 * time.Microsecond, ScoreExcellent},
		{time.Millisecond, ScoreExcellent},
		{1500 * time.Microsecond, ScoreGood},
		{3 * time.Millisecond, ScoreFair},
		{8 * time.Millisecond, ScorePoor},
		{50 * time.Millisecond, ScoreVeryPoor},
	}
	for _, c := range cases {
		if got := ScoreOf(c.avg); got != c.want {
			t.Fatalf("ScoreOf(%s) = %s, want %s", c.avg, got, c.want)
		}
	}
}

func TestMonitor_MovingAverage(t *testing.T) {
	m := NewMonitor(0, nil)
	m.RecordTick(2 * time.Millisecond)
	m.RecordTick(4 * time.Millisecond)
	if avg := m.Average(); avg != 3*time.Millisecond {
		t.Fatalf("average = %s, want 3ms", avg)
	}
}

func TestMonitor_PhaseTimings(t *testing.T) {
	m := NewMonitor(0, nil)
	m.RecordPhase("player", 100*time.Microsecond)
	m.RecordPhase("player", 300*time.Microsecond)
	m.RecordPhase("world", 50*time.Microsecond)

	latest := m.LatestPhaseTimings()
	if latest["player"] != 300*time.Microsecond {
		t.Fatalf("latest player timing = %s", latest["player"])
	}

	r := m.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phase count = %d", len(r.Phases))
	}
	if r.Phases[0].Name != "player" || r.Phases[0].Average != 200*time.Microsecond {
		t.Fatalf("phase report = %+v", r.Phases[0])
	}
}

func TestEstimatedSlowTicks(t *testing.T) {
	m := NewMonitor(0, nil)
	for i := 0; i < 10; i++ {
		m.RecordTick(time.Millisecond)
	}
	if r := m.Report(); r.EstimatedSlowTicks != 0 {
		t.Fatalf("under budget but estimated %d slow ticks", r.EstimatedSlowTicks)
	}

	m2 := NewMonitor(0, nil)
	for i := 0; i < 10; i++ {
		m2.RecordTick(3 * time.Millisecond)
	}
	r := m2.Report()
	// avg 3ms overshoots the 2ms good budget by 50% -> estimate 5 of 10.
	if r.EstimatedSlowTicks != 5 {
		t.Fatalf("estimated slow ticks = %d, want 5", r.EstimatedSlowTicks)
	}
	if r.Score != ScoreFair {
		t.Fatalf("score = %s, want fair", r.Score)
	}
}

func TestMonitor_NegativeDurationClamped(t *testing.T) {
	m := NewMonitor(0, nil)
	m.RecordTick(-time.Second)
	if avg := m.Average(); avg != 0 {
		t.Fatalf("average = %s, want 0", avg)
	}
}
