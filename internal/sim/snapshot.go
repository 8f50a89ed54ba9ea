package sim

import (
	"github.com/LucasVChaves/cloth-sim/internal/cloth"
	"github.com/LucasVChaves/cloth-sim/internal/geom"
)

// Segment is one spring resolved to its endpoint positions.
type Segment struct {
	A, B geom.Vec2
	Kind cloth.Kind
}

// Point is one particle's renderable record.
type Point struct {
	Pos    geom.Vec2
	Pinned bool
}

// Snapshot is the geometry a renderer needs for one frame. Segments keep
// the spring list order; Points keep particle index order.
type Snapshot struct {
	Segments []Segment
	Points   []Point
}

// Snapshot resolves the current cloth state into renderable geometry.
func (s *Simulator) Snapshot() Snapshot {
	c := s.cloth
	snap := Snapshot{
		Segments: make([]Segment, 0, len(c.Springs)),
		Points:   make([]Point, 0, len(c.Particles)),
	}
	for _, sp := range c.Springs {
		snap.Segments = append(snap.Segments, Segment{
			A:    c.Particles[sp.P1].Pos,
			B:    c.Particles[sp.P2].Pos,
			Kind: sp.Kind,
		})
	}
	for i := range c.Particles {
		snap.Points = append(snap.Points, Point{
			Pos:    c.Particles[i].Pos,
			Pinned: c.Particles[i].Pinned,
		})
	}
	return snap
}
