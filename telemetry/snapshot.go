package telemetry

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/pthm-cable/brine/fluid"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// snapshotMagic identifies a particle snapshot file.
const snapshotMagic = 0x42524e45 // "BRNE"

// snapshotHeaderSize is the fixed byte length of the file header:
// magic, version, frame, count, cell counts, grid min, grid max.
const snapshotHeaderSize = 56

// Snapshot holds the complete particle state of one frame. Particles use
// the same 64-byte little-endian records the GPU-mapped buffers carry.
type Snapshot struct {
	Version int32
	Frame   int32
	Grid    fluid.Grid
	Parts   []fluid.Particle
}

// SaveSnapshot writes a snapshot to dir and returns the filepath where it
// was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.brine", snapshot.Frame))

	buf := make([]byte, snapshotHeaderSize+len(snapshot.Parts)*fluid.ParticleSize)
	le := binary.LittleEndian
	le.PutUint32(buf[0:], snapshotMagic)
	le.PutUint32(buf[4:], uint32(SnapshotVersion))
	le.PutUint32(buf[8:], uint32(snapshot.Frame))
	le.PutUint32(buf[12:], uint32(len(snapshot.Parts)))
	le.PutUint32(buf[16:], uint32(snapshot.Grid.CellsX))
	le.PutUint32(buf[20:], uint32(snapshot.Grid.CellsY))
	le.PutUint32(buf[24:], uint32(snapshot.Grid.CellsZ))
	for a := 0; a < 3; a++ {
		le.PutUint32(buf[28+a*4:], math.Float32bits(snapshot.Grid.Min[a]))
		le.PutUint32(buf[40+a*4:], math.Float32bits(snapshot.Grid.Max[a]))
	}

	off := snapshotHeaderSize
	for i := range snapshot.Parts {
		snapshot.Parts[i].PutBinary(buf[off:])
		off += fluid.ParticleSize
	}

	if err := os.WriteFile(path, buf, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if len(data) < snapshotHeaderSize {
		return nil, fmt.Errorf("snapshot truncated: %d bytes", len(data))
	}

	le := binary.LittleEndian
	if le.Uint32(data[0:]) != snapshotMagic {
		return nil, fmt.Errorf("not a snapshot file: bad magic")
	}
	version := int32(le.Uint32(data[4:]))
	if version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", version)
	}

	snap := &Snapshot{
		Version: version,
		Frame:   int32(le.Uint32(data[8:])),
	}
	count := int(le.Uint32(data[12:]))
	snap.Grid.CellsX = int32(le.Uint32(data[16:]))
	snap.Grid.CellsY = int32(le.Uint32(data[20:]))
	snap.Grid.CellsZ = int32(le.Uint32(data[24:]))
	for a := 0; a < 3; a++ {
		snap.Grid.Min[a] = math.Float32frombits(le.Uint32(data[28+a*4:]))
		snap.Grid.Max[a] = math.Float32frombits(le.Uint32(data[40+a*4:]))
	}

	want := snapshotHeaderSize + count*fluid.ParticleSize
	if len(data) < want {
		return nil, fmt.Errorf("snapshot truncated: have %d bytes, want %d", len(data), want)
	}

	snap.Parts = make([]fluid.Particle, count)
	off := snapshotHeaderSize
	for i := range snap.Parts {
		if err := snap.Parts[i].UnmarshalBinary(data[off:]); err != nil {
			return nil, fmt.Errorf("particle %d: %w", i, err)
		}
		off += fluid.ParticleSize
	}
	return snap, nil
}
