package store

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/julianBogado1/disksim/internal/core"
	"github.com/julianBogado1/disksim/internal/geom"
)

// Digest hashes the textual event stream as it is emitted. The engine
// is deterministic, so two runs with the same input must produce the
// same digest; a mismatch means nondeterminism leaked in.
type Digest struct {
	h *xxhash.Digest
}

func NewDigest() *Digest {
	return &Digest{h: xxhash.New()}
}

func (d *Digest) WriteSetup(particles int, l float64, segments []geom.Segment) error {
	fmt.Fprintf(d.h, "%d %.14f\n", particles, l)
	return nil
}

func (d *Digest) WriteStep(snap core.Snapshot) error {
	fmt.Fprintf(d.h, "%s\n", snap.Event)
	return nil
}

func (d *Digest) Close() error { return nil }

// Sum returns the hex digest of everything written so far.
func (d *Digest) Sum() string {
	return fmt.Sprintf("%016x", d.h.Sum64())
}
