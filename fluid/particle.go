// Package fluid implements the per-step spatial pipeline of a
// position-based-fluids simulation: cell discretization, a parallel-friendly
// counting sort, bounded neighbor resolution, and SPH density estimation.
//
// All buffers are caller-allocated and sized to numParticles / numCells
// before a step begins; no stage allocates or resizes. Record layouts are
// padded by hand to 16-byte multiples because compute backends do not
// auto-pad structs the way host compilers do.
package fluid

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Byte sizes of the records shared with GPU-mapped buffers.
const (
	ParticleSize   = 64
	AssignmentSize = 16
	SpanSize       = 16
)

// Particle is one fluid particle. Position and velocity live in
// four-component slots for 16-byte alignment; the blank field pads the
// struct to exactly ParticleSize bytes. Created once at simulation init and
// mutated in place every step, never destroyed mid-run.
type Particle struct {
	Pos    [4]float32 // xyz position, w unused
	Vel    [4]float32 // xyz velocity, w unused
	Mass   float32
	Radius float32
	_      [6]float32
}

// MarshalBinary encodes the particle as ParticleSize little-endian bytes,
// the layout GPU-mapped buffers and snapshot files share.
func (p *Particle) MarshalBinary() ([]byte, error) {
	buf := make([]byte, ParticleSize)
	p.PutBinary(buf)
	return buf, nil
}

// PutBinary encodes the particle into buf, which must hold at least
// ParticleSize bytes.
func (p *Particle) PutBinary(buf []byte) {
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(p.Pos[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(p.Vel[i]))
	}
	binary.LittleEndian.PutUint32(buf[32:], math.Float32bits(p.Mass))
	binary.LittleEndian.PutUint32(buf[36:], math.Float32bits(p.Radius))
	for i := 40; i < ParticleSize; i += 4 {
		binary.LittleEndian.PutUint32(buf[i:], 0)
	}
}

// UnmarshalBinary decodes a particle from ParticleSize little-endian bytes.
func (p *Particle) UnmarshalBinary(buf []byte) error {
	if len(buf) < ParticleSize {
		return fmt.Errorf("fluid: particle record needs %d bytes, got %d", ParticleSize, len(buf))
	}
	for i := 0; i < 4; i++ {
		p.Pos[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		p.Vel[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[16+i*4:]))
	}
	p.Mass = math.Float32frombits(binary.LittleEndian.Uint32(buf[32:]))
	p.Radius = math.Float32frombits(binary.LittleEndian.Uint32(buf[36:]))
	return nil
}

// CellAssignment records which grid cell a particle landed in. A fresh
// table is produced by Discretize each step and reordered into a second
// buffer by CountingSort.
type CellAssignment struct {
	Index   int32 // particle index into the particle buffer
	I, J, K int32 // cell subscript
}

// EmptyCell marks a cell with no particles in a CellSpan.Start and an
// unused slot in a neighbor key list.
const EmptyCell = -1

// CellSpan is the (start, length) run of one cell's particles within the
// sorted assignment array. Start == EmptyCell means the cell holds no
// particles; whenever Start != EmptyCell, Length > 0 and the slice
// sorted[Start : Start+Length] contains exactly this cell's particles.
type CellSpan struct {
	Start  int32
	Length int32
	_      [2]int32
}
