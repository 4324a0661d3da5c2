package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate a few frames
	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseDiscretize)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseSort)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.AvgFrameDuration <= 0 {
		t.Error("expected positive average frame duration")
	}

	if len(stats.PhaseAvg) == 0 {
		t.Error("expected phase averages to be populated")
	}

	if _, ok := stats.PhaseAvg[PhaseDiscretize]; !ok {
		t.Error("expected discretize phase to be tracked")
	}

	if _, ok := stats.PhaseAvg[PhaseSort]; !ok {
		t.Error("expected counting_sort phase to be tracked")
	}
}

func TestPerfCollector_WindowBound(t *testing.T) {
	pc := NewPerfCollector(3)

	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseDensity)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.AvgFrameDuration < 0 {
		t.Error("expected non-negative average after window rollover")
	}
	if stats.MinFrameDuration > stats.MaxFrameDuration {
		t.Errorf("min %v exceeds max %v", stats.MinFrameDuration, stats.MaxFrameDuration)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 4; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseForces)
		time.Sleep(50 * time.Microsecond)
		pc.StartPhase(PhaseIntegrate)
		time.Sleep(50 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	total := 0.0
	for _, pct := range stats.PhasePct {
		if pct < 0 || pct > 100 {
			t.Errorf("phase percentage out of range: %v", pct)
		}
		total += pct
	}
	if total > 100.5 {
		t.Errorf("phase percentages sum to %v, want <= 100", total)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)
	stats := pc.Stats()

	if stats.AvgFrameDuration != 0 {
		t.Error("expected zero average with no frames recorded")
	}
	if stats.FramesPerSecond != 0 {
		t.Error("expected zero frame rate with no frames recorded")
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.StartFrame()
	pc.StartPhase(PhaseSort)
	time.Sleep(100 * time.Microsecond)
	pc.EndFrame()

	row := pc.Stats().ToCSV(60)
	if row.WindowEnd != 60 {
		t.Errorf("WindowEnd = %d, want 60", row.WindowEnd)
	}
	if row.AvgFrameUS <= 0 {
		t.Error("expected positive avg_frame_us")
	}
}
