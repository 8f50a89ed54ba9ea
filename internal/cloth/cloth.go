package cloth

import (
	"math"

	"github.com/LucasVChaves/cloth-sim/internal/geom"
)

// Params are the per-step tuning knobs. They carry no state: each Step
// call reads whatever values it is handed, so every field is
// hot-reloadable frame to frame.
type Params struct {
	Gravity       geom.Vec2
	Stiffness     float64 // in (0,1]; below 1 under-relaxes, needing more iterations
	TearThreshold float64 // strain ratio above which a spring is discarded, > 1
	Iterations    int
}

// Cloth owns the particle store and the live spring list for one grid.
// Replacing the topology means building a new Cloth; there is no partial
// migration.
type Cloth struct {
	Particles []Particle
	Springs   []Spring

	Width   int
	Height  int
	Spacing float64
	Origin  geom.Vec2
}

// New builds a width x height particle grid anchored at origin, with every
// particle in the top row pinned, and the full structural/bending/shear
// spring set. Callers must ensure width >= 2, height >= 2, spacing > 0.
func New(width, height int, spacing float64, origin geom.Vec2) *Cloth {
	c := &Cloth{
		Particles: make([]Particle, 0, width*height),
		Width:     width,
		Height:    height,
		Spacing:   spacing,
		Origin:    origin,
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := NewParticle(origin.Add(geom.V(float64(x)*spacing, float64(y)*spacing)))
			p.Pinned = y == 0
			c.Particles = append(c.Particles, p)
		}
	}

	// Each rule fires from a unique originating cell, so no pair ever
	// receives two springs. Insertion order here is the relaxation order
	// and must stay deterministic.
	diagonal := spacing * math.Sqrt2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if x < width-1 {
				c.addSpring(i, i+1, spacing, Structural)
				if x < width-2 {
					c.addSpring(i, i+2, spacing*2, Bending)
				}
			}
			if y < height-1 {
				c.addSpring(i, i+width, spacing, Structural)
				if y < height-2 {
					c.addSpring(i, i+2*width, spacing*2, Bending)
				}
			}
			if x < width-1 && y < height-1 {
				c.addSpring(i, i+width+1, diagonal, Shear)
				c.addSpring(i+1, i+width, diagonal, Shear)
			}
		}
	}

	return c
}

// addSpring appends a spring after checking the endpoint invariant: both
// indices in range and distinct. The grid rules never violate it, but the
// relaxation pass takes two mutable references by index, so it is enforced
// here rather than assumed.
func (c *Cloth) addSpring(p1, p2 int, rest float64, kind Kind) {
	if p1 == p2 || p1 < 0 || p2 < 0 || p1 >= len(c.Particles) || p2 >= len(c.Particles) {
		return
	}
	c.Springs = append(c.Springs, Spring{P1: p1, P2: p2, Rest: rest, Kind: kind})
}

// Index returns the particle index for grid cell (x, y).
func (c *Cloth) Index(x, y int) int {
	return y*c.Width + x
}

// Step advances the simulation one frame: apply gravity to every particle,
// integrate, then run p.Iterations rounds of tearing plus constraint
// relaxation. Tearing runs inside the iteration loop on purpose, so tear
// sensitivity scales with the iteration count.
func (c *Cloth) Step(dt float64, p Params) {
	for i := range c.Particles {
		c.Particles[i].ApplyForce(p.Gravity)
	}
	for i := range c.Particles {
		c.Particles[i].Integrate(dt)
	}

	for it := 0; it < p.Iterations; it++ {
		c.tear(p.TearThreshold)
		c.relax(p.Stiffness)
	}
}

// tear drops every spring stretched to at least Rest*threshold. A torn
// spring must not take part in the relaxation pass of the same iteration,
// so the list is filtered before relax runs. The filter keeps relative
// order, which the relaxation pass relies on for reproducibility.
func (c *Cloth) tear(threshold float64) {
	kept := c.Springs[:0]
	for _, s := range c.Springs {
		dist := c.Particles[s.P1].Pos.DistanceTo(c.Particles[s.P2].Pos)
		if dist < s.Rest*threshold {
			kept = append(kept, s)
		}
	}
	c.Springs = kept
}

// relax runs one Gauss-Seidel pass over the springs in list order.
// Corrections applied for an earlier spring are visible to later springs
// in the same pass.
func (c *Cloth) relax(stiffness float64) {
	for _, s := range c.Springs {
		p1 := &c.Particles[s.P1]
		p2 := &c.Particles[s.P2]

		delta := p2.Pos.Sub(p1.Pos)
		dist := delta.Len()
		if dist == 0 {
			// Coincident endpoints: no usable direction. Skip, keep the spring.
			continue
		}

		diff := (dist - s.Rest) / dist
		correction := delta.Scale(0.5 * diff * stiffness)

		if !p1.Pinned {
			p1.Pos = p1.Pos.Add(correction)
		}
		if !p2.Pinned {
			p2.Pos = p2.Pos.Sub(correction)
		}
	}
}

// Cut permanently removes every spring whose segment passes within radius
// of center. Calling it every frame while a cut trigger is held keeps
// clearing springs that move into range.
func (c *Cloth) Cut(center geom.Vec2, radius float64) {
	kept := c.Springs[:0]
	for _, s := range c.Springs {
		d := geom.SegmentDistance(center, c.Particles[s.P1].Pos, c.Particles[s.P2].Pos)
		if d > radius {
			kept = append(kept, s)
		}
	}
	c.Springs = kept
}

// TotalSprings is the closed-form spring count the topology rules emit
// for an untorn width x height grid: horizontal and vertical structural,
// horizontal and vertical bending, and two shear diagonals per cell.
func TotalSprings(width, height int) int {
	structural := (width-1)*height + width*(height-1)
	bending := 0
	if width > 2 {
		bending += (width - 2) * height
	}
	if height > 2 {
		bending += width * (height - 2)
	}
	shear := 2 * (width - 1) * (height - 1)
	return structural + bending + shear
}

// CountByKind reports the number of live springs per kind.
func (c *Cloth) CountByKind() map[Kind]int {
	counts := make(map[Kind]int, 3)
	for _, s := range c.Springs {
		counts[s.Kind]++
	}
	return counts
}

// KineticEnergy sums 0.5*m*v^2 over all particles, with v the implicit
// per-step velocity scaled by 1/dt.
func (c *Cloth) KineticEnergy(dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	total := 0.0
	for i := range c.Particles {
		v := c.Particles[i].Velocity().Scale(1.0 / dt)
		total += 0.5 * c.Particles[i].Mass * v.LenSq()
	}
	return total
}

// MaxStrain reports the largest current strain ratio (length over rest)
// among live springs, or 0 when none remain.
func (c *Cloth) MaxStrain() float64 {
	max := 0.0
	for _, s := range c.Springs {
		dist := c.Particles[s.P1].Pos.DistanceTo(c.Particles[s.P2].Pos)
		if strain := dist / s.Rest; strain > max {
			max = strain
		}
	}
	return max
}
