package necklace

import (
	"fmt"
	"math"
)

// PArrow is a flag-decorated necklace representing a level-p morphism
// between endpoints A and B, decorating the interval [I, J] of the
// ambient simplex.
type PArrow struct {
	A, B string
	I, J int
	N    Necklace
	Flag Flag
	P    int
}

// Valid checks the representation invariants: flag length P+1 and
// properness over the necklace.
func (a PArrow) Valid() error {
	if len(a.Flag) != a.P+1 {
		return fmt.Errorf("p-arrow: flag has %d levels, want %d", len(a.Flag), a.P+1)
	}
	if !IsProper(a.N, a.P, a.Flag) {
		return fmt.Errorf("p-arrow over %v: %w", a.N.Dims, ErrImproper)
	}
	return nil
}

// ComposeP composes two p-arrows whose intervals meet: f.J must equal
// g.I. Each flag level of the result is the set union of the
// corresponding levels, a genuine union since both intervals share
// structure at the join.
func ComposeP(p int, g, f PArrow) (PArrow, error) {
	if f.J != g.I {
		return PArrow{}, fmt.Errorf("composeP: intervals [%d,%d] and [%d,%d] do not meet",
			f.I, f.J, g.I, g.J)
	}
	if len(f.Flag) != p+1 || len(g.Flag) != p+1 {
		return PArrow{}, fmt.Errorf("composeP: flag levels %d/%d, want %d",
			len(f.Flag), len(g.Flag), p+1)
	}

	flag := make(Flag, p+1)
	for t := 0; t <= p; t++ {
		flag[t] = unionSorted(f.Flag[t], g.Flag[t])
	}
	return PArrow{A: f.A, B: g.B, I: f.I, J: g.J, N: f.N, Flag: flag, P: p}, nil
}

func unionSorted(a, b []int) []int {
	seen := make(map[int]bool, len(a)+len(b))
	var out []int
	for _, vs := range [][]int{a, b} {
		for _, v := range vs {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	// Inputs are sorted but their merge is not.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// Equiv decides whether two p-arrow representations between the same
// endpoints and level present the same morphism: some monotone
// surjection of lhs beads onto rhs beads must induce a vertex map
// fixing both outer endpoints and carrying the lhs flag onto the rhs
// flag. First match wins; no canonical minimal witness is guaranteed.
// The search is combinatorial in the bead counts and meant for small
// necklaces only.
func Equiv(lhs, rhs PArrow) bool {
	if lhs.A != rhs.A || lhs.B != rhs.B || lhs.P != rhs.P {
		return false
	}
	k := len(lhs.N.Dims) - 1
	l := len(rhs.N.Dims) - 1
	if k < 0 || l < 0 || l > k {
		return false
	}

	offN := lhs.N.offsets()
	offM := rhs.N.offsets()
	totalN := lhs.N.Total()
	totalM := rhs.N.Total()

	return monotoneSurjections(k, l, func(theta []int) bool {
		vmap := stitchVertexMap(lhs.N.Dims, rhs.N.Dims, offN, offM, theta)
		if vmap[0] != 0 || vmap[totalN] != totalM {
			return false
		}
		pushed := PushFlag(func(v int) int { return vmap[v] }, lhs.Flag)
		return pushed.Equal(rhs.Flag)
	})
}

// stitchVertexMap builds the piecewise-affine vertex function induced
// by theta: bead i of dims maps affinely onto bead theta(i) of mdims,
// rounding to the nearest integer. Pieces are stitched left to right;
// at a join the right bead's value stands.
func stitchVertexMap(dims, mdims, offN, offM, theta []int) []int {
	total := 0
	for _, d := range dims {
		total += d
	}
	vmap := make([]int, total+1)
	for i, n := range dims {
		m := mdims[theta[i]]
		for v := 0; v <= n; v++ {
			var local int
			if n == 0 {
				local = 0
			} else {
				local = int(math.Round(float64(v) * float64(m) / float64(n)))
			}
			vmap[offN[i]+v] = offM[theta[i]] + local
		}
	}
	return vmap
}

// monotoneSurjections enumerates every non-decreasing surjection theta
// from {0..k} onto {0..l} in stars-and-bars order: at each step the
// "stay" branch is tried before the "increment" branch. visit is
// called with a reusable slice; a true return stops the search and is
// propagated. There are C(k, l) such surjections, none when l > k.
func monotoneSurjections(k, l int, visit func(theta []int) bool) bool {
	if l > k || k < 0 || l < 0 {
		return false
	}
	theta := make([]int, k+1)

	var rec func(t, v int) bool
	rec = func(t, v int) bool {
		if t > k {
			return v == l && visit(theta)
		}
		// Remaining steps must still be able to reach l.
		if l-v <= k-t {
			theta[t] = v
			if rec(t+1, v) {
				return true
			}
		}
		if v < l {
			theta[t] = v + 1
			if rec(t+1, v+1) {
				return true
			}
		}
		return false
	}

	theta[0] = 0
	return rec(1, 0)
}
