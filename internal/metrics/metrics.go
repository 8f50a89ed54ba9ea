// Package metrics provides per-frame observers over the cloth state.
package metrics

import "github.com/LucasVChaves/cloth-sim/internal/cloth"

// Metric observes the cloth once per simulated frame and reduces the
// observations to a single value.
type Metric interface {
	Name() string
	Observe(c *cloth.Cloth, dt float64)
	Value() float64
	Reset()
}

// SpringCount tracks the number of live springs after the last frame.
type SpringCount struct {
	last int
}

func NewSpringCount() *SpringCount { return &SpringCount{} }

func (m *SpringCount) Name() string { return "springs" }

func (m *SpringCount) Observe(c *cloth.Cloth, dt float64) {
	m.last = len(c.Springs)
}

func (m *SpringCount) Value() float64 { return float64(m.last) }

func (m *SpringCount) Reset() { m.last = 0 }

// TornCount tracks how many springs have been removed since the first
// observed frame. It never decreases: removal is permanent.
type TornCount struct {
	initial int
	last    int
	seen    bool
}

func NewTornCount() *TornCount { return &TornCount{} }

func (m *TornCount) Name() string { return "torn" }

func (m *TornCount) Observe(c *cloth.Cloth, dt float64) {
	if !m.seen {
		m.initial = len(c.Springs)
		m.seen = true
	}
	m.last = len(c.Springs)
}

func (m *TornCount) Value() float64 { return float64(m.initial - m.last) }

func (m *TornCount) Reset() {
	m.initial = 0
	m.last = 0
	m.seen = false
}

// MaxStrain tracks the largest strain ratio seen on the last frame.
type MaxStrain struct {
	last float64
}

func NewMaxStrain() *MaxStrain { return &MaxStrain{} }

func (m *MaxStrain) Name() string { return "max_strain" }

func (m *MaxStrain) Observe(c *cloth.Cloth, dt float64) {
	m.last = c.MaxStrain()
}

func (m *MaxStrain) Value() float64 { return m.last }

func (m *MaxStrain) Reset() { m.last = 0 }

// KineticEnergy tracks the cloth's kinetic energy on the last frame.
type KineticEnergy struct {
	last float64
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (m *KineticEnergy) Name() string { return "kinetic_energy" }

func (m *KineticEnergy) Observe(c *cloth.Cloth, dt float64) {
	m.last = c.KineticEnergy(dt)
}

func (m *KineticEnergy) Value() float64 { return m.last }

func (m *KineticEnergy) Reset() { m.last = 0 }

// Defaults returns the standard metric set recorded by headless runs.
func Defaults() []Metric {
	return []Metric{
		NewSpringCount(),
		NewTornCount(),
		NewMaxStrain(),
		NewKineticEnergy(),
	}
}
