package geom

// SegmentDistance returns the distance from p to the segment ab.
// The projection parameter is clamped to [0,1] so the result is measured
// against the segment itself, not the infinite line. A degenerate segment
// (a == b) reduces to point-to-point distance.
func SegmentDistance(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	lenSq := ab.LenSq()
	if lenSq == 0 {
		return p.DistanceTo(a)
	}

	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return p.DistanceTo(a.Add(ab.Scale(t)))
}
