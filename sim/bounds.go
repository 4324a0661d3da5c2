package sim

import (
	"math"
)

// AnimationType selects the waveform driving the bounds animation.
type AnimationType int

const (
	AnimationNone AnimationType = iota
	AnimationSine
	AnimationRamp
	AnimationCompress
)

// ParseAnimationType maps a config string to an AnimationType.
func ParseAnimationType(s string) AnimationType {
	switch s {
	case "sine":
		return AnimationSine
	case "ramp":
		return AnimationRamp
	case "compress":
		return AnimationCompress
	default:
		return AnimationNone
	}
}

func (a AnimationType) String() string {
	switch a {
	case AnimationSine:
		return "sine"
	case AnimationRamp:
		return "ramp"
	case AnimationCompress:
		return "compress"
	default:
		return "none"
	}
}

// BoundsAnimator moves the x extents of the simulation volume over time.
// Offsets are pure functions of the clock passed to At, so the animator
// holds no mutable state besides its settings.
type BoundsAnimator struct {
	Type      AnimationType
	Period    float64 // seconds per cycle (sine) or ramp duration
	Amplitude float64 // world units of wall travel
	BothSides bool
	Enabled   bool

	baseMin [3]float32
	baseMax [3]float32
}

// NewBoundsAnimator captures the resting volume extents.
func NewBoundsAnimator(min, max [3]float32) *BoundsAnimator {
	return &BoundsAnimator{
		Type:      AnimationSine,
		Period:    1.0,
		Amplitude: 5.0,
		baseMin:   min,
		baseMax:   max,
	}
}

// offset returns the inward wall displacement at time t. Always >= 0 for
// ramp and compress; sine swings both ways.
func (b *BoundsAnimator) offset(t float64) float64 {
	if !b.Enabled || b.Period <= 0 {
		return 0
	}
	switch b.Type {
	case AnimationSine:
		return b.Amplitude * math.Sin(2*math.Pi*t/b.Period)
	case AnimationRamp:
		// Close linearly over one period, then hold.
		u := t / b.Period
		if u > 1 {
			u = 1
		}
		return b.Amplitude * u
	case AnimationCompress:
		// Smooth ease in and out, then hold closed.
		u := t / b.Period
		if u > 1 {
			u = 1
		}
		return b.Amplitude * (1 - math.Cos(u*math.Pi)) / 2
	default:
		return 0
	}
}

// At returns the volume extents at time t. The moving wall is the +x face;
// with BothSides the -x face mirrors it. The animated extent never crosses
// the volume midpoint.
func (b *BoundsAnimator) At(t float64) (min, max [3]float32) {
	min, max = b.baseMin, b.baseMax
	off := float32(b.offset(t))
	if off == 0 {
		return min, max
	}

	mid := (b.baseMin[0] + b.baseMax[0]) / 2
	hi := b.baseMax[0] - off
	if hi <= mid {
		hi = mid + 1e-3
	}
	max[0] = hi

	if b.BothSides {
		lo := b.baseMin[0] + off
		if lo >= mid {
			lo = mid - 1e-3
		}
		min[0] = lo
	}
	return min, max
}

// Reset restores the resting extents on the next At call.
func (b *BoundsAnimator) Reset() {
	b.Enabled = false
}

// Base returns the resting extents.
func (b *BoundsAnimator) Base() (min, max [3]float32) {
	return b.baseMin, b.baseMax
}
