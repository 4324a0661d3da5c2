// Package telemetry collects frame statistics, per-phase timings, and
// structured output for simulation runs.
package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/brine/fluid"
)

// WindowStats holds aggregated statistics for a frame window, sampled at
// the window's final frame.
type WindowStats struct {
	WindowStartFrame int32   `csv:"-"`
	WindowEndFrame   int32   `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`

	// Grid occupancy
	ParticleCount int     `csv:"particles"`
	OccupiedCells int     `csv:"occupied_cells"`
	MaxCellRun    int     `csv:"max_cell_run"`
	MeanCellRun   float64 `csv:"mean_cell_run"`

	// Density distribution
	DensityMean float64 `csv:"density_mean"`
	DensityStd  float64 `csv:"density_std"`
	DensityP10  float64 `csv:"density_p10"`
	DensityP50  float64 `csv:"density_p50"`
	DensityP90  float64 `csv:"density_p90"`

	// Velocity magnitudes
	SpeedMean float64 `csv:"speed_mean"`
	SpeedMax  float64 `csv:"speed_max"`
}

// CollectWindowStats samples the sorted grid layout and the density field
// at a window boundary. spans and densities must come from the same step.
func CollectWindowStats(startFrame, endFrame int32, simTime float64, particles []fluid.Particle, spans []fluid.CellSpan, densities []float32) WindowStats {
	ws := WindowStats{
		WindowStartFrame: startFrame,
		WindowEndFrame:   endFrame,
		SimTimeSec:       simTime,
		ParticleCount:    len(particles),
	}

	var runTotal int
	for _, span := range spans {
		if span.Start == fluid.EmptyCell {
			continue
		}
		ws.OccupiedCells++
		runTotal += int(span.Length)
		if int(span.Length) > ws.MaxCellRun {
			ws.MaxCellRun = int(span.Length)
		}
	}
	if ws.OccupiedCells > 0 {
		ws.MeanCellRun = float64(runTotal) / float64(ws.OccupiedCells)
	}

	if len(densities) > 0 {
		rho := make([]float64, len(densities))
		for i, d := range densities {
			rho[i] = float64(d)
		}
		sort.Float64s(rho)
		ws.DensityMean = stat.Mean(rho, nil)
		ws.DensityStd = stat.StdDev(rho, nil)
		ws.DensityP10 = stat.Quantile(0.1, stat.Empirical, rho, nil)
		ws.DensityP50 = stat.Quantile(0.5, stat.Empirical, rho, nil)
		ws.DensityP90 = stat.Quantile(0.9, stat.Empirical, rho, nil)
	}

	for i := range particles {
		v := &particles[i].Vel
		speed := math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2]))
		ws.SpeedMean += speed
		if speed > ws.SpeedMax {
			ws.SpeedMax = speed
		}
	}
	if len(particles) > 0 {
		ws.SpeedMean /= float64(len(particles))
	}

	return ws
}

// LogStats emits the window statistics via slog.
func (ws WindowStats) LogStats() {
	slog.Info("window",
		"frame", ws.WindowEndFrame,
		"sim_time", ws.SimTimeSec,
		"particles", ws.ParticleCount,
		"occupied_cells", ws.OccupiedCells,
		"max_cell_run", ws.MaxCellRun,
		"density_mean", ws.DensityMean,
		"density_p50", ws.DensityP50,
		"speed_mean", ws.SpeedMean,
	)
}
