// Package sim drives the per-step fluid pipeline: external forces,
// integration, cell discretization, counting sort, and density estimation
// over caller-owned flat buffers.
package sim

import (
	"math/rand"

	"github.com/pthm-cable/brine/config"
	"github.com/pthm-cable/brine/fluid"
	"github.com/pthm-cable/brine/telemetry"
)

// wallDamp scales velocity on bounding box contact.
const wallDamp = 0.5

// Simulation holds the complete fluid state. All pipeline buffers are
// allocated once at construction and sized to the particle count and the
// grid cell count; Step reuses them every frame.
type Simulation struct {
	cfg *config.Config
	rng *rand.Rand

	grid   fluid.Grid
	bounds *BoundsAnimator

	particles   []fluid.Particle
	assignments []fluid.CellAssignment
	sorted      []fluid.CellAssignment
	histogram   []int32
	spans       []fluid.CellSpan
	densities   []float32

	perf *telemetry.PerfCollector

	frame   int32
	simTime float64
	seed    int64
}

// NewSimulation allocates all buffers and seeds the initial particle block.
func NewSimulation(cfg *config.Config, seed int64) *Simulation {
	d := &cfg.Derived
	n := cfg.Particles.Count
	numCells := int(d.NumCells)

	s := &Simulation{
		cfg:  cfg,
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
		grid: fluid.Grid{
			CellsX: d.CellsX,
			CellsY: d.CellsY,
			CellsZ: d.CellsZ,
			Min:    d.Min,
			Max:    d.Max,
		},
		bounds:      NewBoundsAnimator(d.Min, d.Max),
		particles:   make([]fluid.Particle, n),
		assignments: make([]fluid.CellAssignment, n),
		sorted:      make([]fluid.CellAssignment, n),
		histogram:   make([]int32, numCells),
		spans:       make([]fluid.CellSpan, numCells),
		densities:   make([]float32, n),
		perf:        telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
	}

	s.bounds.Type = ParseAnimationType(cfg.Animation.Type)
	s.bounds.Period = cfg.Animation.Period
	s.bounds.Amplitude = cfg.Animation.Amplitude
	s.bounds.BothSides = cfg.Animation.BothSides

	s.seedParticles()
	return s
}

// seedParticles fills a dam-break block against the -x wall: a box covering
// half the x extent and the lower two thirds of y, jittered so the lattice
// does not alias the grid.
func (s *Simulation) seedParticles() {
	min, max := s.bounds.Base()
	radius := float32(s.cfg.Particles.Radius)
	mass := float32(s.cfg.Particles.Mass)
	spacing := radius * 2

	blockMax := [3]float32{
		min[0] + (max[0]-min[0])*0.5,
		min[1] + (max[1]-min[1])*0.66,
		max[2],
	}

	x, y, z := min[0]+radius, min[1]+radius, min[2]+radius
	for i := range s.particles {
		jitter := func() float32 { return (s.rng.Float32() - 0.5) * radius * 0.1 }
		s.particles[i] = fluid.Particle{
			Pos:    [4]float32{x + jitter(), y + jitter(), z + jitter(), 0},
			Mass:   mass,
			Radius: radius,
		}

		x += spacing
		if x > blockMax[0] {
			x = min[0] + radius
			z += spacing
			if z > blockMax[2] {
				z = min[2] + radius
				y += spacing
				if y > blockMax[1] {
					y = min[1] + radius
				}
			}
		}
	}
}

// Step advances the simulation by one frame: applies gravity, integrates
// positions, clamps to the animated bounds, then rebuilds the spatial index
// and density field.
func (s *Simulation) Step() {
	s.StepWith(nil)
}

// StepWith is Step with a telemetry hook that runs as a timed phase of the
// frame, after the density estimate. The hook observes the post-step frame
// counter.
func (s *Simulation) StepWith(telemetryFn func()) {
	s.perf.StartFrame()

	dt := s.cfg.Derived.DT32
	gravity := float32(s.cfg.Physics.Gravity)

	s.grid.Min, s.grid.Max = s.bounds.At(s.simTime)

	s.perf.StartPhase(telemetry.PhaseForces)
	s.applyExternalForces(dt, gravity)

	s.perf.StartPhase(telemetry.PhaseIntegrate)
	s.integrate(dt)

	s.perf.StartPhase(telemetry.PhaseDiscretize)
	fluid.Discretize(s.particles, s.grid, s.assignments, s.histogram)

	s.perf.StartPhase(telemetry.PhaseSort)
	fluid.CountingSort(s.assignments, s.histogram, s.grid, s.sorted, s.spans)

	s.perf.StartPhase(telemetry.PhaseDensity)
	fluid.EstimateDensity(s.particles, s.sorted, s.spans, s.grid,
		s.cfg.Derived.SmoothingRadius32, s.densities)

	s.frame++
	s.simTime += float64(dt)

	if telemetryFn != nil {
		s.perf.StartPhase(telemetry.PhaseTelemetry)
		telemetryFn()
	}
	s.perf.EndFrame()
}

func (s *Simulation) applyExternalForces(dt, gravity float32) {
	for i := range s.particles {
		s.particles[i].Vel[1] -= gravity * dt
	}
}

// integrate advances positions and clamps them to the current bounds.
// Positions must land inside the box before discretization; contact damps
// the normal velocity component.
func (s *Simulation) integrate(dt float32) {
	min, max := s.grid.Min, s.grid.Max
	for i := range s.particles {
		p := &s.particles[i]
		for a := 0; a < 3; a++ {
			p.Pos[a] += p.Vel[a] * dt
			if p.Pos[a] < min[a] {
				p.Pos[a] = min[a]
				p.Vel[a] *= -wallDamp
			} else if p.Pos[a] > max[a] {
				p.Pos[a] = max[a]
				p.Vel[a] *= -wallDamp
			}
		}
	}
}

// Reset reseeds the particle block and restores the resting bounds.
func (s *Simulation) Reset() {
	s.rng = rand.New(rand.NewSource(s.seed))
	s.bounds.Reset()
	s.grid.Min, s.grid.Max = s.bounds.Base()
	s.frame = 0
	s.simTime = 0
	clear(s.densities)
	s.seedParticles()
}

// Frame returns the current frame counter.
func (s *Simulation) Frame() int32 { return s.frame }

// SimTime returns elapsed simulated seconds.
func (s *Simulation) SimTime() float64 { return s.simTime }

// Grid returns the spatial grid with the current animated extents.
func (s *Simulation) Grid() fluid.Grid { return s.grid }

// Bounds returns the bounds animator for UI control.
func (s *Simulation) Bounds() *BoundsAnimator { return s.bounds }

// Particles exposes the particle buffer for rendering and telemetry.
func (s *Simulation) Particles() []fluid.Particle { return s.particles }

// Densities exposes the density field from the latest Step.
func (s *Simulation) Densities() []float32 { return s.densities }

// Spans exposes the cell span table from the latest Step.
func (s *Simulation) Spans() []fluid.CellSpan { return s.spans }

// Perf returns the phase timing collector.
func (s *Simulation) Perf() *telemetry.PerfCollector { return s.perf }

// Snapshot captures the current particle state for persistence.
func (s *Simulation) Snapshot() *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Version: telemetry.SnapshotVersion,
		Frame:   s.frame,
		Grid:    s.grid,
		Parts:   make([]fluid.Particle, len(s.particles)),
	}
	copy(snap.Parts, s.particles)
	return snap
}
