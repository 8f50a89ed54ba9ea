// Package sim owns the live cloth instance and drives it one frame at a
// time from configuration and pointer input.
package sim

import (
	"github.com/LucasVChaves/cloth-sim/internal/cloth"
	"github.com/LucasVChaves/cloth-sim/internal/config"
	"github.com/LucasVChaves/cloth-sim/internal/geom"
)

const (
	// MaxDt bounds the integration step on slow frames. Without it a
	// single stalled frame feeds a huge dt^2 into the integrator and the
	// cloth explodes.
	MaxDt = 1.0 / 30.0

	// PickRadius is how close (in world units) the pointer must be to a
	// particle for a select press to grab it.
	PickRadius = 20.0

	pickRadiusSq = PickRadius * PickRadius

	noSelection = -1
)

// Simulator is the single owner of the cloth and its interaction state.
// It is not safe for concurrent use; the frame loop is the only caller.
type Simulator struct {
	cloth *cloth.Cloth

	// Topology inputs the current cloth was built from. A width or
	// height change in the incoming config triggers a rebuild.
	width, height int

	selected    int
	resetQueued bool
}

// New builds a simulator with a fresh cloth from cfg. cfg must already be
// validated (config.Validate).
func New(cfg *config.Config) *Simulator {
	s := &Simulator{selected: noSelection}
	s.rebuild(cfg)
	return s
}

// Cloth exposes the live cloth, mainly for metrics and tests.
func (s *Simulator) Cloth() *cloth.Cloth {
	return s.cloth
}

// Selected returns the index of the dragged particle, or -1 when idle.
func (s *Simulator) Selected() int {
	return s.selected
}

// RequestReset forces a topology rebuild on the next Update, discarding
// all particle and spring state at once.
func (s *Simulator) RequestReset() {
	s.resetQueued = true
}

func (s *Simulator) rebuild(cfg *config.Config) {
	s.cloth = cloth.New(cfg.Width, cfg.Height, cfg.Spacing, geom.V(cfg.Origin.X, cfg.Origin.Y))
	s.width = cfg.Width
	s.height = cfg.Height
	s.selected = noSelection
	s.resetQueued = false
}

// Update advances one frame. The mutation order is fixed: rebuild if
// needed, then forces, integration, and the tear/relax iterations (all
// inside cloth.Step), then cutting, then interactive drag. dt is clamped
// to MaxDt.
func (s *Simulator) Update(cfg *config.Config, ptr PointerState, dt float64) {
	if s.resetQueued || cfg.Width != s.width || cfg.Height != s.height {
		s.rebuild(cfg)
	}

	if dt > MaxDt {
		dt = MaxDt
	}

	s.cloth.Step(dt, cloth.Params{
		Gravity:       geom.V(cfg.Gravity.X, cfg.Gravity.Y),
		Stiffness:     cfg.Stiffness,
		TearThreshold: cfg.TearThreshold,
		Iterations:    cfg.Iterations,
	})

	if ptr.CutHeld {
		s.cloth.Cut(ptr.Pos, cfg.CutRadius)
	}

	s.interact(ptr)
}

// interact runs the Idle/Dragging state machine. Dragging writes the
// particle position directly, so pinned particles follow the pointer like
// any other; pin immobility only binds the integrator and the solver.
func (s *Simulator) interact(ptr PointerState) {
	if ptr.SelectPressed && !ptr.OverUI {
		s.selected = s.pick(ptr.Pos)
	}

	if ptr.SelectHeld && s.selected != noSelection {
		if s.selected >= len(s.cloth.Particles) {
			// Topology was rebuilt under an active drag.
			s.selected = noSelection
		} else {
			p := &s.cloth.Particles[s.selected]
			prev := p.Pos
			p.Pos = ptr.Pos
			// Keeping the pre-drag position as Prev means releasing
			// imparts the drag's last-frame velocity.
			p.Prev = prev
		}
	}

	if ptr.SelectReleased {
		s.selected = noSelection
	}
}

// pick returns the particle nearest pos, or -1 when none is within
// PickRadius.
func (s *Simulator) pick(pos geom.Vec2) int {
	best := noSelection
	bestDistSq := pickRadiusSq
	for i := range s.cloth.Particles {
		if d := s.cloth.Particles[i].Pos.Sub(pos).LenSq(); d < bestDistSq {
			bestDistSq = d
			best = i
		}
	}
	return best
}
