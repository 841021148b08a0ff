// Package necklace implements the combinatorial side of colimit
// morphisms: chains of simplex beads ("necklaces") decorated by flags
// of vertex subsets, the properness invariant relating flags to bead
// joins, and a brute-force equivalence search over p-arrow
// representations. Inputs are small and finite; every search here
// terminates by construction.
package necklace

import (
	"errors"
	"fmt"
	"sort"
)

// ErrImproper reports a decoration whose first flag level misses a
// join vertex, or whose flag length disagrees with its level.
var ErrImproper = errors.New("necklace: decoration is not proper")

// Necklace is an ordered chain of simplex beads given by their
// dimensions. Vertices are numbered 0 through the sum of dimensions;
// consecutive beads share one vertex.
type Necklace struct {
	Dims  []int
	Label string
}

// Total is the index of the last vertex.
func (n Necklace) Total() int {
	sum := 0
	for _, d := range n.Dims {
		sum += d
	}
	return sum
}

// VertexCount is the number of vertices, Total()+1.
func (n Necklace) VertexCount() int {
	return n.Total() + 1
}

// Joins returns the internal vertices where consecutive beads meet:
// the cumulative bead boundaries, excluding the two outer endpoints.
func (n Necklace) Joins() []int {
	var joins []int
	acc := 0
	for i := 0; i+1 < len(n.Dims); i++ {
		acc += n.Dims[i]
		joins = append(joins, acc)
	}
	return joins
}

// offsets returns the starting vertex of each bead.
func (n Necklace) offsets() []int {
	out := make([]int, len(n.Dims))
	acc := 0
	for i, d := range n.Dims {
		out[i] = acc
		acc += d
	}
	return out
}

// Flag is a chain of vertex subsets, one per level, each sorted
// ascending. Levels are expected to be nested by inclusion; only the
// properness checks below are enforced at runtime.
type Flag [][]int

// Clone deep-copies the flag.
func (f Flag) Clone() Flag {
	out := make(Flag, len(f))
	for i, level := range f {
		out[i] = append([]int(nil), level...)
	}
	return out
}

// Equal compares two flags level by level.
func (f Flag) Equal(g Flag) bool {
	if len(f) != len(g) {
		return false
	}
	for i := range f {
		if len(f[i]) != len(g[i]) {
			return false
		}
		for t := range f[i] {
			if f[i][t] != g[i][t] {
				return false
			}
		}
	}
	return true
}

// IsProper reports whether flag is a proper level-p decoration of n:
// the flag has p+1 levels and its first level contains every join.
func IsProper(n Necklace, p int, flag Flag) bool {
	if len(flag) != p+1 {
		return false
	}
	first := make(map[int]bool, len(flag[0]))
	for _, v := range flag[0] {
		first[v] = true
	}
	for _, j := range n.Joins() {
		if !first[j] {
			return false
		}
	}
	return true
}

// PushFlag maps every vertex of every level through vmap, then
// deduplicates and sorts each level. Used when a pointed vertex map
// acts on a decoration.
func PushFlag(vmap func(int) int, flag Flag) Flag {
	out := make(Flag, len(flag))
	for i, level := range flag {
		seen := make(map[int]bool, len(level))
		var mapped []int
		for _, v := range level {
			w := vmap(v)
			if !seen[w] {
				seen[w] = true
				mapped = append(mapped, w)
			}
		}
		sort.Ints(mapped)
		out[i] = mapped
	}
	return out
}

// ProperHoriz is a necklace with a validated proper decoration. Values
// only exist through NewProperHoriz, so the invariant holds for their
// whole lifetime.
type ProperHoriz struct {
	N    Necklace
	P    int
	Flag Flag
}

// NewProperHoriz validates and builds a proper decoration.
func NewProperHoriz(n Necklace, p int, flag Flag) (*ProperHoriz, error) {
	if !IsProper(n, p, flag) {
		return nil, fmt.Errorf("necklace %v level %d flag %v: %w", n.Dims, p, flag, ErrImproper)
	}
	return &ProperHoriz{N: n, P: p, Flag: flag.Clone()}, nil
}
