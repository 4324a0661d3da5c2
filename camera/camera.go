// Package camera provides an orbit camera for viewing the simulation volume.
package camera

import "math"

// Pitch stays short of the poles so the view up vector never degenerates.
const maxPitch = math.Pi/2 - 0.05

// Orbit positions the eye on a sphere around a target point.
// Yaw and pitch are radians; distance is world units.
type Orbit struct {
	Target   [3]float32
	Yaw      float32
	Pitch    float32
	Distance float32

	// Distance constraints
	MinDistance, MaxDistance float32

	home *Orbit
}

// New creates an orbit camera looking at target from the given distance,
// angled slightly above the horizon.
func New(target [3]float32, distance float32) *Orbit {
	c := &Orbit{
		Target:      target,
		Yaw:         math.Pi / 4,
		Pitch:       0.35,
		Distance:    distance,
		MinDistance: distance * 0.1,
		MaxDistance: distance * 10,
	}
	home := *c
	c.home = &home
	return c
}

// Position returns the eye point in world coordinates.
func (c *Orbit) Position() [3]float32 {
	cp := float32(math.Cos(float64(c.Pitch)))
	return [3]float32{
		c.Target[0] + c.Distance*cp*float32(math.Cos(float64(c.Yaw))),
		c.Target[1] + c.Distance*float32(math.Sin(float64(c.Pitch))),
		c.Target[2] + c.Distance*cp*float32(math.Sin(float64(c.Yaw))),
	}
}

// Rotate adjusts yaw and pitch, clamping pitch short of the poles.
func (c *Orbit) Rotate(dYaw, dPitch float32) {
	c.Yaw += dYaw
	for c.Yaw > math.Pi {
		c.Yaw -= 2 * math.Pi
	}
	for c.Yaw < -math.Pi {
		c.Yaw += 2 * math.Pi
	}
	c.Pitch = clamp(c.Pitch+dPitch, -maxPitch, maxPitch)
}

// Dolly scales the eye distance, clamped to the configured range.
func (c *Orbit) Dolly(factor float32) {
	c.Distance = clamp(c.Distance*factor, c.MinDistance, c.MaxDistance)
}

// Pan shifts the target in the horizontal plane of the current view:
// dx along the view's right axis, dz along its forward ground projection.
func (c *Orbit) Pan(dx, dz float32) {
	sy := float32(math.Sin(float64(c.Yaw)))
	cy := float32(math.Cos(float64(c.Yaw)))
	c.Target[0] += -dx*sy - dz*cy
	c.Target[2] += dx*cy - dz*sy
}

// Reset returns the camera to its construction pose.
func (c *Orbit) Reset() {
	home := c.home
	*c = *home
	c.home = home
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
