package viz

import "github.com/LucasVChaves/cloth-sim/internal/geom"

// Viewport maps world coordinates onto canvas sub-pixels, and terminal
// cells back to world coordinates for mouse input. Axes scale
// independently; braille sub-pixels are close enough to square that the
// distortion stays small.
type Viewport struct {
	WorldW, WorldH float64

	// Canvas size in cells and its top-left position on the terminal
	// (the canvas is rendered with padding, so mouse cells are offset).
	CanvasW, CanvasH   int
	CellOffX, CellOffY int
}

func NewViewport(worldW, worldH float64, canvasW, canvasH, cellOffX, cellOffY int) Viewport {
	return Viewport{
		WorldW: worldW, WorldH: worldH,
		CanvasW: canvasW, CanvasH: canvasH,
		CellOffX: cellOffX, CellOffY: cellOffY,
	}
}

func (v Viewport) scaleX() float64 { return float64(v.CanvasW*2) / v.WorldW }
func (v Viewport) scaleY() float64 { return float64(v.CanvasH*4) / v.WorldH }

// ToScreen converts a world point to canvas sub-pixel coordinates.
func (v Viewport) ToScreen(p geom.Vec2) (int, int) {
	return int(p.X * v.scaleX()), int(p.Y * v.scaleY())
}

// ToWorld converts a terminal cell (as reported by mouse events) to the
// world point at that cell's center.
func (v Viewport) ToWorld(cellX, cellY int) geom.Vec2 {
	sx := float64((cellX-v.CellOffX)*2) + 1
	sy := float64((cellY-v.CellOffY)*4) + 2
	return geom.V(sx/v.scaleX(), sy/v.scaleY())
}

// Contains reports whether a terminal cell lies on the canvas. Cells
// outside it belong to the config panel and padding, where pointer
// selection is suppressed.
func (v Viewport) Contains(cellX, cellY int) bool {
	return cellX >= v.CellOffX && cellX < v.CellOffX+v.CanvasW &&
		cellY >= v.CellOffY && cellY < v.CellOffY+v.CanvasH
}
