package necklace

import "fmt"

// Chain is a decorated zig-zag in simplicial form: one simplex per
// bead with a chosen vertex, and one p-arrow per adjacent pair.
type Chain struct {
	Dims     []int
	Vertices []int
	Arrows   []PArrow
}

// Replacement converts a decorated chain into the canonical
// single-necklace form: a necklace whose bead dimensions are the
// simplex dimensions, with the arrow chain carried over under an
// identity re-basing. Vertex offsets are not re-based across bead
// boundaries; arrows keep the coordinates they were written in.
func Replacement(c Chain) (Necklace, []PArrow, error) {
	if len(c.Vertices) != len(c.Dims) {
		return Necklace{}, nil, fmt.Errorf("replacement: %d chosen vertices for %d simplices",
			len(c.Vertices), len(c.Dims))
	}
	if len(c.Dims) == 0 {
		return Necklace{}, nil, fmt.Errorf("replacement: empty chain")
	}
	if len(c.Arrows) != len(c.Dims)-1 {
		return Necklace{}, nil, fmt.Errorf("replacement: %d arrows for %d adjacent pairs",
			len(c.Arrows), len(c.Dims)-1)
	}
	for i, v := range c.Vertices {
		if v < 0 || v > c.Dims[i] {
			return Necklace{}, nil, fmt.Errorf("replacement: vertex %d outside simplex %d of dimension %d",
				v, i, c.Dims[i])
		}
	}

	n := Necklace{Dims: append([]int(nil), c.Dims...), Label: "replacement"}
	arrows := make([]PArrow, len(c.Arrows))
	copy(arrows, c.Arrows)
	return n, arrows, nil
}
