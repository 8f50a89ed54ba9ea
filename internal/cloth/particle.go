package cloth

import "github.com/LucasVChaves/cloth-sim/internal/geom"

// Particle is a single mass point of the cloth. Velocity is not stored;
// it is implied by Pos - Prev.
type Particle struct {
	Pos    geom.Vec2
	Prev   geom.Vec2
	Mass   float64
	Pinned bool

	force geom.Vec2
}

func NewParticle(pos geom.Vec2) Particle {
	return Particle{
		Pos:  pos,
		Prev: pos,
		Mass: 1.0,
	}
}

// ApplyForce accumulates f into the particle's force accumulator.
// The accumulator drains on the next Integrate call.
func (p *Particle) ApplyForce(f geom.Vec2) {
	p.force = p.force.Add(f)
}

// Integrate advances the particle one Verlet step. Pinned particles never
// move, but their accumulator is still cleared so a later unpin does not
// release stale force.
func (p *Particle) Integrate(dt float64) {
	if p.Pinned {
		p.force = geom.Vec2{}
		return
	}

	acc := p.force.Scale(1.0 / p.Mass)
	vel := p.Pos.Sub(p.Prev)
	p.Prev = p.Pos
	p.Pos = p.Pos.Add(vel).Add(acc.Scale(dt * dt))
	p.force = geom.Vec2{}
}

// Velocity reports the implicit per-step velocity.
func (p *Particle) Velocity() geom.Vec2 {
	return p.Pos.Sub(p.Prev)
}
