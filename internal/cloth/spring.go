package cloth

// Kind classifies a spring by the grid relationship it constrains.
type Kind int

const (
	Structural Kind = iota // adjacent neighbors, resists stretch
	Bending                // neighbors two cells apart, resists folding
	Shear                  // diagonal neighbors, resists skew
)

func (k Kind) String() string {
	switch k {
	case Structural:
		return "structural"
	case Bending:
		return "bending"
	case Shear:
		return "shear"
	default:
		return "unknown"
	}
}

// Spring is a distance constraint between two particles, referenced by
// index into the owning cloth's particle slice. Both indices stay valid
// for the spring's whole lifetime: particles are only destroyed by
// rebuilding the cloth, which discards the springs with them.
type Spring struct {
	P1, P2 int
	Rest   float64
	Kind   Kind
}
