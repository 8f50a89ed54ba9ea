// Package export renders simulation output to SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/LucasVChaves/cloth-sim/internal/cloth"
	"github.com/LucasVChaves/cloth-sim/internal/sim"
)

var kindColors = map[cloth.Kind]string{
	cloth.Structural: "#e8e8e8",
	cloth.Bending:    "#7a7a7a",
	cloth.Shear:      "#4a6a8a",
}

// SnapshotToSVG renders one frame's geometry: springs as lines colored by
// kind, particles as dots, pinned ones highlighted.
func SnapshotToSVG(snap sim.Snapshot, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, seg := range snap.Segments {
		color, ok := kindColors[seg.Kind]
		if !ok {
			color = "#e8e8e8"
		}
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>
`, seg.A.X, seg.A.Y, seg.B.X, seg.B.Y, color))
	}

	for _, pt := range snap.Points {
		if pt.Pinned {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="#ff4040"/>
`, pt.Pos.X, pt.Pos.Y))
		} else {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2" fill="#4080ff"/>
`, pt.Pos.X, pt.Pos.Y))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasToSVG converts a braille cell grid (as produced by the TUI
// canvas) to SVG dots, used for screenshots. scale is the dot pitch in
// SVG units. Non-braille cells (markers) render as filled squares.
func CanvasToSVG(grid [][]rune, scale float64) string {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return ""
	}

	rows := len(grid)
	cols := len(grid[0])
	width := float64(cols) * scale * 2
	height := float64(rows) * scale * 4

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			r := grid[row][col]
			if r < 0x2800 || r > 0x28FF {
				if r != 0 && r != ' ' {
					sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>
`, float64(col)*scale*2, float64(row)*scale*4, scale*2, scale*4))
				}
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
