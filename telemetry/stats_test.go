package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/brine/fluid"
)

func TestCollectWindowStats_Basic(t *testing.T) {
	particles := []fluid.Particle{
		{Vel: [4]float32{3, 4, 0, 0}, Mass: 1},
		{Vel: [4]float32{0, 0, 0, 0}, Mass: 1},
	}
	spans := []fluid.CellSpan{
		{Start: 0, Length: 2},
		{Start: fluid.EmptyCell},
		{Start: fluid.EmptyCell},
	}
	densities := []float32{1.0, 3.0}

	ws := CollectWindowStats(0, 60, 1.0, particles, spans, densities)

	if ws.WindowEndFrame != 60 {
		t.Errorf("WindowEndFrame = %d, want 60", ws.WindowEndFrame)
	}
	if ws.ParticleCount != 2 {
		t.Errorf("ParticleCount = %d, want 2", ws.ParticleCount)
	}
	if ws.OccupiedCells != 1 {
		t.Errorf("OccupiedCells = %d, want 1", ws.OccupiedCells)
	}
	if ws.MaxCellRun != 2 {
		t.Errorf("MaxCellRun = %d, want 2", ws.MaxCellRun)
	}
	if math.Abs(ws.MeanCellRun-2.0) > 1e-9 {
		t.Errorf("MeanCellRun = %v, want 2", ws.MeanCellRun)
	}
	if math.Abs(ws.DensityMean-2.0) > 1e-9 {
		t.Errorf("DensityMean = %v, want 2", ws.DensityMean)
	}
	// Speeds are 5 and 0
	if math.Abs(ws.SpeedMean-2.5) > 1e-6 {
		t.Errorf("SpeedMean = %v, want 2.5", ws.SpeedMean)
	}
	if math.Abs(ws.SpeedMax-5.0) > 1e-6 {
		t.Errorf("SpeedMax = %v, want 5", ws.SpeedMax)
	}
}

func TestCollectWindowStats_Empty(t *testing.T) {
	ws := CollectWindowStats(0, 0, 0, nil, nil, nil)

	if ws.ParticleCount != 0 {
		t.Errorf("ParticleCount = %d, want 0", ws.ParticleCount)
	}
	if ws.OccupiedCells != 0 {
		t.Errorf("OccupiedCells = %d, want 0", ws.OccupiedCells)
	}
	if ws.DensityMean != 0 || ws.SpeedMax != 0 {
		t.Error("expected zero aggregates with no particles")
	}
}

func TestCollectWindowStats_DensityQuantiles(t *testing.T) {
	n := 100
	particles := make([]fluid.Particle, n)
	densities := make([]float32, n)
	for i := range densities {
		densities[i] = float32(i + 1)
	}
	spans := []fluid.CellSpan{{Start: 0, Length: int32(n)}}

	ws := CollectWindowStats(0, 1, 0, particles, spans, densities)

	if ws.DensityP10 >= ws.DensityP50 || ws.DensityP50 >= ws.DensityP90 {
		t.Errorf("quantiles not ordered: p10=%v p50=%v p90=%v",
			ws.DensityP10, ws.DensityP50, ws.DensityP90)
	}
	if math.Abs(ws.DensityMean-50.5) > 1e-6 {
		t.Errorf("DensityMean = %v, want 50.5", ws.DensityMean)
	}
}
