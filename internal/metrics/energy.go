package metrics

import (
	"math"

	"github.com/julianBogado1/disksim/internal/core"
)

// EnergyDrift tracks the maximum relative drift of total kinetic energy
// from its value at the first observed snapshot. Collisions are elastic
// so any drift is numerical.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(snap core.Snapshot) {
	energy := KineticEnergy(snap.Particles)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++
	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift tracks the maximum per-component absolute drift of
// total momentum. Wall and vertex events transfer momentum to the
// container, so this only stays flat in runs without them.
type MomentumDrift struct {
	initialX, initialY float64
	maxDrift           float64
	samples            int
}

func NewMomentumDrift() *MomentumDrift { return &MomentumDrift{} }

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(snap core.Snapshot) {
	p := TotalMomentum(snap.Particles)
	if m.samples == 0 {
		m.initialX, m.initialY = p.X, p.Y
	}
	m.samples++
	drift := math.Max(math.Abs(p.X-m.initialX), math.Abs(p.Y-m.initialY))
	m.maxDrift = math.Max(m.maxDrift, drift)
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initialX, m.initialY = 0, 0
	m.maxDrift = 0
	m.samples = 0
}
