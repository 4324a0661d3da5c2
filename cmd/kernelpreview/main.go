// Kernel preview tool - interactive visualization of the SPH smoothing
// kernels with sliders.
//
// Usage: go run ./cmd/kernelpreview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/brine/fluid"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	plotSize     = 640
	panelWidth   = windowWidth - plotSize - 30
)

const (
	defaultRadius = 1.2
	defaultMass   = 1.0
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Kernel Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	radius := float32(defaultRadius)
	mass := float32(defaultMass)
	showSpiky := true

	for !rl.WindowShouldClose() {
		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawKernelPlot(radius, mass, showSpiky)

		// Peak values for reference
		peak := mass * fluid.Poly6(0, radius)
		statsY := int32(plotSize + 25)
		rl.DrawText(fmt.Sprintf("Poly6 peak: %.4f  support: %.2f", peak, radius), 15, statsY, 16, rl.DarkGray)

		// Control panel
		panelX := float32(plotSize + 20)
		panelY := float32(10)

		rl.DrawText("Kernel Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Smoothing radius h (support)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		radius = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.1", "4.0",
			radius, 0.1, 4.0,
		)
		rl.DrawText(fmt.Sprintf("%.2f", radius), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		rl.DrawText("Particle mass", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		mass = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.1", "5.0",
			mass, 0.1, 5.0,
		)
		rl.DrawText(fmt.Sprintf("%.2f", mass), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(showSpiky, "Hide Spiky", "Show Spiky")) {
			showSpiky = !showSpiky
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset") {
			radius = defaultRadius
			mass = defaultMass
		}
		panelY += 50

		rl.DrawText("blue: mass * Poly6(r, h)", int32(panelX), int32(panelY), 14, rl.Blue)
		panelY += 20
		rl.DrawText("red: |Spiky gradient|(r, h)", int32(panelX), int32(panelY), 14, rl.Red)

		rl.EndDrawing()
	}
}

// drawKernelPlot draws both kernel curves over r in [0, 1.2h], normalized
// to the plot height by each curve's own peak.
func drawKernelPlot(radius, mass float32, showSpiky bool) {
	const margin = 15
	plotW := float32(plotSize - 2*margin)
	plotH := float32(plotSize - 2*margin)

	rl.DrawRectangleLines(margin, margin, plotSize-2*margin, plotSize-2*margin, rl.LightGray)

	rMax := radius * 1.2
	poly6Peak := mass * fluid.Poly6(0, radius)
	spikyPeak := spikyMag(radius*0.01, radius)
	if poly6Peak <= 0 || rMax <= 0 {
		return
	}

	// Support radius marker
	supportX := margin + int32(radius/rMax*plotW)
	rl.DrawLine(supportX, margin, supportX, plotSize-margin, rl.LightGray)
	rl.DrawText("h", supportX+4, margin+4, 14, rl.Gray)

	var prevP, prevS rl.Vector2
	for px := 0; px <= int(plotW); px++ {
		r := float32(px) / plotW * rMax
		x := float32(margin + int32(px))

		p := mass * fluid.Poly6(r, radius) / poly6Peak
		pv := rl.Vector2{X: x, Y: float32(plotSize-margin) - p*plotH}
		if px > 0 {
			rl.DrawLineV(prevP, pv, rl.Blue)
		}
		prevP = pv

		if showSpiky && spikyPeak > 0 {
			s := spikyMag(r, radius) / spikyPeak
			sv := rl.Vector2{X: x, Y: float32(plotSize-margin) - s*plotH}
			if px > 0 {
				rl.DrawLineV(prevS, sv, rl.Red)
			}
			prevS = sv
		}
	}
}

// spikyMag evaluates the Spiky gradient magnitude along one axis.
func spikyMag(r, h float32) float32 {
	g := fluid.Spiky([3]float32{r, 0, 0}, h)
	if g[0] < 0 {
		return -g[0]
	}
	return g[0]
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
