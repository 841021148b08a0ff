// Package zigzag represents morphisms of a colimit category as roofs:
// chains of beads that alternately move backward and forward along
// shape arrows, each bead carrying a witnessing morphism inside one
// component category.
//
// Backward legs transport objects only. The morphism stored on a
// backward bead lives in the category at the roof's tail, where it was
// written down; no inverse-functor action on morphisms is modeled, so
// constructors validate backward-leg morphisms in that tail category
// and nothing else.
package zigzag

import (
	"errors"
	"fmt"

	"github.com/odvcencio/colim/pkg/diagram"
	"github.com/odvcencio/colim/pkg/quotient"
)

// ErrShapeMismatch reports a composition whose endpoint classes are
// not syntactically equal. Bridging endpoints that are merely
// equivalent is the colimit facade's job, one layer up.
var ErrShapeMismatch = errors.New("zigzag: endpoint representatives differ")

// Dir is the traversal direction of a leg relative to its shape arrow.
type Dir int

const (
	Bwd Dir = iota // against the arrow (target to source)
	Fwd            // along the arrow (source to target)
)

func (d Dir) String() string {
	if d == Bwd {
		return "bwd"
	}
	return "fwd"
}

// Leg is one traversal across a shape arrow. An empty Arrow marks an
// identity leg that stays at its index.
type Leg struct {
	Arrow string
	Dir   Dir
}

// IsIdentity reports whether the leg stays put.
func (l Leg) IsIdentity() bool {
	return l.Arrow == ""
}

// Bead is one link of a zig-zag: a leg together with the witnessing
// morphism, which lives in the category at Index.
type Bead struct {
	Leg   Leg
	Index string
	Mor   string
}

// ZigZag is a colimit morphism between two object classes, given as a
// bead chain. SrcRep and DstRep are quotient representative tags.
type ZigZag struct {
	SrcRep string
	DstRep string
	Beads  []Bead
}

// Roof describes a length-1 zig-zag i <- k -> j with its witnesses:
// arrows Left: k -> i and Right: k -> j, objects A in C_i, C in C_k,
// B in C_j, and morphisms F: A -> Left(C) in C_i, G: Right(C) -> B in
// C_j.
type Roof struct {
	Left  string
	Right string
	A     string
	C     string
	B     string
	F     string
	G     string
}

// RoofArrow builds the zig-zag of a roof, validating every witness
// against the diagram and resolving the endpoint classes through cls.
func RoofArrow(d *diagram.Diagram, cls *quotient.Classes, r Roof) (*ZigZag, error) {
	left, ok := d.Shape.Arrow(r.Left)
	if !ok {
		return nil, fmt.Errorf("roof arrow: unknown arrow %q", r.Left)
	}
	right, ok := d.Shape.Arrow(r.Right)
	if !ok {
		return nil, fmt.Errorf("roof arrow: unknown arrow %q", r.Right)
	}
	if left.Src != right.Src {
		return nil, fmt.Errorf("roof arrow: legs %q and %q share no apex (%q vs %q)",
			r.Left, r.Right, left.Src, right.Src)
	}
	i, k, j := left.Dst, left.Src, right.Dst

	ck, _ := d.Category(k)
	if ck == nil || !ck.HasObject(r.C) {
		return nil, fmt.Errorf("roof arrow: %q is not an object of C_%s", r.C, k)
	}
	ci, _ := d.Category(i)
	cj, _ := d.Category(j)
	if ci == nil || !ci.HasObject(r.A) {
		return nil, fmt.Errorf("roof arrow: %q is not an object of C_%s", r.A, i)
	}
	if cj == nil || !cj.HasObject(r.B) {
		return nil, fmt.Errorf("roof arrow: %q is not an object of C_%s", r.B, j)
	}

	fl, _ := d.Functor(r.Left)
	fr, _ := d.Functor(r.Right)
	if fl == nil || fr == nil {
		return nil, fmt.Errorf("roof arrow: legs %q/%q missing functors", r.Left, r.Right)
	}
	lc, ok := fl.OnObj(r.C)
	if !ok {
		return nil, fmt.Errorf("roof arrow: functor %q undefined on %q", r.Left, r.C)
	}
	rc, ok := fr.OnObj(r.C)
	if !ok {
		return nil, fmt.Errorf("roof arrow: functor %q undefined on %q", r.Right, r.C)
	}

	f, ok := ci.Morphism(r.F)
	if !ok {
		return nil, fmt.Errorf("roof arrow: unknown morphism %q in C_%s", r.F, i)
	}
	if f.Src != r.A || f.Dst != lc {
		return nil, fmt.Errorf("roof arrow: morphism %q is %s->%s, want %s->%s",
			r.F, f.Src, f.Dst, r.A, lc)
	}
	g, ok := cj.Morphism(r.G)
	if !ok {
		return nil, fmt.Errorf("roof arrow: unknown morphism %q in C_%s", r.G, j)
	}
	if g.Src != rc || g.Dst != r.B {
		return nil, fmt.Errorf("roof arrow: morphism %q is %s->%s, want %s->%s",
			r.G, g.Src, g.Dst, rc, r.B)
	}

	srcRep, ok := cls.Rep(quotient.Element{Index: i, Object: r.A})
	if !ok {
		return nil, fmt.Errorf("roof arrow: no class for %s::%s", i, r.A)
	}
	dstRep, ok := cls.Rep(quotient.Element{Index: j, Object: r.B})
	if !ok {
		return nil, fmt.Errorf("roof arrow: no class for %s::%s", j, r.B)
	}

	return &ZigZag{
		SrcRep: srcRep,
		DstRep: dstRep,
		Beads: []Bead{
			{Leg: Leg{Arrow: r.Left, Dir: Bwd}, Index: i, Mor: r.F},
			{Leg: Leg{Arrow: r.Right, Dir: Fwd}, Index: j, Mor: r.G},
		},
	}, nil
}

// Compose concatenates f then g. The precondition is syntactic:
// f.DstRep must literally equal g.SrcRep, otherwise ErrShapeMismatch.
// Inputs are never mutated.
func Compose(g, f *ZigZag) (*ZigZag, error) {
	if f.DstRep != g.SrcRep {
		return nil, fmt.Errorf("compose %s->%s after %s->%s: %w",
			g.SrcRep, g.DstRep, f.SrcRep, f.DstRep, ErrShapeMismatch)
	}
	beads := make([]Bead, 0, len(f.Beads)+len(g.Beads))
	beads = append(beads, f.Beads...)
	beads = append(beads, g.Beads...)
	return &ZigZag{SrcRep: f.SrcRep, DstRep: g.DstRep, Beads: beads}, nil
}
