// Package render draws the fluid volume: particles shaded by density, the
// animated bounding box, and an optional wireframe of the occupied grid
// cells.
package render

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/brine/camera"
	"github.com/pthm-cable/brine/fluid"
	"github.com/pthm-cable/brine/sim"
)

// sphereDetail trades sphere tessellation for draw throughput.
const (
	sphereRings  = 6
	sphereSlices = 8
)

// View renders the simulation into the current raylib frame.
type View struct {
	Camera   *camera.Orbit
	ShowGrid bool
	Debug    bool

	// refDensity anchors the color ramp; updated from the running field.
	refDensity float32
}

// NewView centers an orbit camera on the resting volume.
func NewView(min, max [3]float32) *View {
	center := [3]float32{
		(min[0] + max[0]) / 2,
		(min[1] + max[1]) / 2,
		(min[2] + max[2]) / 2,
	}
	extent := max[0] - min[0]
	if e := max[1] - min[1]; e > extent {
		extent = e
	}
	return &View{
		Camera: camera.New(center, extent*1.8),
	}
}

func (v *View) camera3D() rl.Camera3D {
	eye := v.Camera.Position()
	return rl.Camera3D{
		Position:   rl.Vector3{X: eye[0], Y: eye[1], Z: eye[2]},
		Target:     rl.Vector3{X: v.Camera.Target[0], Y: v.Camera.Target[1], Z: v.Camera.Target[2]},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

// HandleInput applies mouse orbit, pan, and wheel dolly to the camera.
func (v *View) HandleInput() {
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		d := rl.GetMouseDelta()
		v.Camera.Rotate(d.X*0.005, d.Y*0.005)
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		d := rl.GetMouseDelta()
		scale := v.Camera.Distance * 0.002
		v.Camera.Pan(-d.X*scale, d.Y*scale)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.Camera.Dolly(1 - wheel*0.1)
	}
}

// Draw renders one frame of the volume. Call between BeginDrawing and
// EndDrawing.
func (v *View) Draw(s *sim.Simulation, paused bool) {
	rl.ClearBackground(rl.Color{R: 18, G: 20, B: 26, A: 255})

	cam := v.camera3D()
	rl.BeginMode3D(cam)

	v.drawBounds(s.Grid())
	if v.ShowGrid {
		v.drawOccupiedCells(s.Grid(), s.Spans())
	}
	v.drawParticles(s.Particles(), s.Densities())

	rl.EndMode3D()

	v.drawHUD(s, paused)
}

// drawBounds outlines the current (possibly animated) volume extents.
func (v *View) drawBounds(g fluid.Grid) {
	center := rl.Vector3{
		X: (g.Min[0] + g.Max[0]) / 2,
		Y: (g.Min[1] + g.Max[1]) / 2,
		Z: (g.Min[2] + g.Max[2]) / 2,
	}
	rl.DrawCubeWires(center,
		g.Max[0]-g.Min[0], g.Max[1]-g.Min[1], g.Max[2]-g.Min[2],
		rl.Color{R: 120, G: 140, B: 170, A: 255})
}

// drawOccupiedCells outlines every grid cell that holds particles.
func (v *View) drawOccupiedCells(g fluid.Grid, spans []fluid.CellSpan) {
	cw := (g.Max[0] - g.Min[0]) / float32(g.CellsX)
	ch := (g.Max[1] - g.Min[1]) / float32(g.CellsY)
	cd := (g.Max[2] - g.Min[2]) / float32(g.CellsZ)

	wire := rl.Color{R: 70, G: 110, B: 90, A: 120}
	for key, span := range spans {
		if span.Start == fluid.EmptyCell {
			continue
		}
		i, j, k := fluid.Ind2Sub(int32(key), g.CellsX, g.CellsY)
		center := rl.Vector3{
			X: g.Min[0] + (float32(i)+0.5)*cw,
			Y: g.Min[1] + (float32(j)+0.5)*ch,
			Z: g.Min[2] + (float32(k)+0.5)*cd,
		}
		rl.DrawCubeWires(center, cw, ch, cd, wire)
	}
}

// drawParticles shades each particle by its density relative to the field
// mean: sparse regions render blue, compressed regions shade toward red.
func (v *View) drawParticles(particles []fluid.Particle, densities []float32) {
	v.updateRefDensity(densities)

	for i := range particles {
		p := &particles[i]
		t := float32(0)
		if v.refDensity > 0 && i < len(densities) {
			t = densities[i] / (2 * v.refDensity)
			if t > 1 {
				t = 1
			}
		}
		color := densityColor(t)
		center := rl.Vector3{X: p.Pos[0], Y: p.Pos[1], Z: p.Pos[2]}
		rl.DrawSphereEx(center, p.Radius, sphereRings, sphereSlices, color)
	}
}

// updateRefDensity tracks the field mean with a slow exponential follow so
// the color ramp does not flicker frame to frame.
func (v *View) updateRefDensity(densities []float32) {
	if len(densities) == 0 {
		return
	}
	var sum float64
	for _, d := range densities {
		sum += float64(d)
	}
	mean := float32(sum / float64(len(densities)))
	if v.refDensity == 0 {
		v.refDensity = mean
		return
	}
	v.refDensity += (mean - v.refDensity) * 0.05
}

// densityColor maps t in [0, 1] from deep blue through cyan to warm red.
func densityColor(t float32) rl.Color {
	lerp := func(a, b uint8) uint8 {
		return uint8(float32(a) + (float32(b)-float32(a))*t)
	}
	if t < 0.5 {
		u := t * 2
		return rl.Color{
			R: uint8(40 * u),
			G: uint8(80 + 140*u),
			B: 220,
			A: 255,
		}
	}
	return rl.Color{
		R: lerp(40, 235),
		G: lerp(220, 90),
		B: lerp(220, 60),
		A: 255,
	}
}

// drawHUD overlays run state and the hotkey reference.
func (v *View) drawHUD(s *sim.Simulation, paused bool) {
	g := s.Grid()

	rl.DrawText(fmt.Sprintf("Frame: %d  (%.1fs)", s.Frame(), s.SimTime()), 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Particles: %d", len(s.Particles())), 10, 35, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Grid: %dx%dx%d", g.CellsX, g.CellsY, g.CellsZ), 10, 60, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Bounds x: [%.1f, %.1f]", g.Min[0], g.Max[0]), 10, 85, 20, rl.White)
	rl.DrawText(fmt.Sprintf("FPS: %d", rl.GetFPS()), 10, 110, 20, rl.Gray)

	rl.DrawText("space pause | s step | r reset | g grid | d debug", 10, int32(rl.GetScreenHeight())-30, 18, rl.Gray)

	if paused {
		rl.DrawText("PAUSED", 10, 135, 20, rl.Yellow)
	}
	if v.Debug {
		v.drawDebug(s)
	}
}

// drawDebug lists the perf phase breakdown.
func (v *View) drawDebug(s *sim.Simulation) {
	stats := s.Perf().Stats()
	y := int32(165)
	rl.DrawText(fmt.Sprintf("frame avg: %dus", stats.AvgFrameDuration.Microseconds()), 10, y, 18, rl.Green)
	y += 22
	for phase, avg := range stats.PhaseAvg {
		rl.DrawText(fmt.Sprintf("%s: %dus (%.0f%%)", phase, avg.Microseconds(), stats.PhasePct[phase]), 10, y, 18, rl.Green)
		y += 22
	}
}
