package sim

import "github.com/LucasVChaves/cloth-sim/internal/geom"

// PointerState is the per-frame pointer input the simulation consumes.
// The presentation layer owns the raw device; this is the boundary type.
type PointerState struct {
	Pos geom.Vec2

	// SelectPressed is true only on the frame the select trigger went down.
	// SelectHeld is true for every frame it stays down, including that one.
	SelectPressed  bool
	SelectHeld     bool
	SelectReleased bool

	// CutHeld keeps removing springs near Pos for as long as it is true.
	CutHeld bool

	// OverUI suppresses new selections while the pointer is on the
	// config panel. An already-active drag is not interrupted.
	OverUI bool
}
