// Package ui draws the bounds animation control panel.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/brine/sim"
)

const (
	panelWidth  = 270
	rowHeight   = 30
	sliderWidth = panelWidth - 80
)

// Panel is the animation control sidebar. ResetRequested is set for one
// frame when the user presses the reset button.
type Panel struct {
	X, Y           float32
	ResetRequested bool
}

// NewPanel anchors the panel at the top-right of a window of the given width.
func NewPanel(screenWidth int) *Panel {
	return &Panel{X: float32(screenWidth) - panelWidth - 10, Y: 10}
}

// Draw renders the panel and applies control changes to the animator.
// Call between BeginDrawing and EndDrawing.
func (p *Panel) Draw(b *sim.BoundsAnimator) {
	p.ResetRequested = false

	x, y := p.X, p.Y
	rl.DrawRectangle(int32(x-10), int32(y-10), panelWidth+20, 320, rl.Color{R: 24, G: 26, B: 34, A: 210})

	rl.DrawText("Bounds Animation", int32(x), int32(y), 20, rl.RayWhite)
	y += 35

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 120, Height: rowHeight}, toggleText(b.Enabled, "Stop", "Animate")) {
		b.Enabled = !b.Enabled
	}
	if gui.Button(rl.Rectangle{X: x + 130, Y: y, Width: 120, Height: rowHeight}, "Reset Bounds") {
		b.Reset()
		p.ResetRequested = true
	}
	y += 40

	// Waveform selection
	for _, kind := range []sim.AnimationType{sim.AnimationSine, sim.AnimationRamp, sim.AnimationCompress} {
		label := kind.String()
		if b.Type == kind {
			label = "> " + label
		}
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: 250, Height: rowHeight}, label) {
			b.Type = kind
		}
		y += 36
	}
	y += 8

	rl.DrawText("Period (s)", int32(x), int32(y), 14, rl.Gray)
	y += 18
	b.Period = float64(gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: sliderWidth, Height: 20},
		"0.01", "4.0",
		float32(b.Period), 0.01, 4.0,
	))
	rl.DrawText(fmt.Sprintf("%.2f", b.Period), int32(x+sliderWidth+10), int32(y+2), 16, rl.RayWhite)
	y += 30

	rl.DrawText("Amplitude", int32(x), int32(y), 14, rl.Gray)
	y += 18
	b.Amplitude = float64(gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: sliderWidth, Height: 20},
		"0", "20",
		float32(b.Amplitude), 0, 20,
	))
	rl.DrawText(fmt.Sprintf("%.1f", b.Amplitude), int32(x+sliderWidth+10), int32(y+2), 16, rl.RayWhite)
	y += 30

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 250, Height: rowHeight}, toggleText(b.BothSides, "Both Sides: on", "Both Sides: off")) {
		b.BothSides = !b.BothSides
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
