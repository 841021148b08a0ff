package zigzag

import (
	"errors"
	"testing"

	"github.com/odvcencio/colim/pkg/diagram"
	"github.com/odvcencio/colim/pkg/quotient"
)

// roofDiagram is a span i <- k -> j with one morphism on each side of
// the roof so a decorated roof can be written down.
func roofDiagram() *diagram.Diagram {
	return &diagram.Diagram{
		Shape: diagram.Shape{
			Objects: []string{"k", "i", "j"},
			Arrows: []diagram.Arrow{
				{ID: "l", Src: "k", Dst: "i"},
				{ID: "r", Src: "k", Dst: "j"},
			},
		},
		Categories: map[string]*diagram.Category{
			"k": {Objects: []string{"x1"}},
			"i": {Objects: []string{"a0", "a1"}, Morphisms: []diagram.Morphism{
				{ID: "f0", Src: "a0", Dst: "a1"},
			}},
			"j": {Objects: []string{"b1", "b2"}, Morphisms: []diagram.Morphism{
				{ID: "g0", Src: "b1", Dst: "b2"},
			}},
		},
		Functors: map[string]*diagram.Functor{
			"l": {ObjMap: map[string]string{"x1": "a1"}},
			"r": {ObjMap: map[string]string{"x1": "b1"}},
		},
	}
}

func TestRoofArrow(t *testing.T) {
	d := roofDiagram()
	cls, err := quotient.Compute(d)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	z, err := RoofArrow(d, cls, Roof{
		Left: "l", Right: "r",
		A: "a0", C: "x1", B: "b2",
		F: "f0", G: "g0",
	})
	if err != nil {
		t.Fatalf("RoofArrow() error: %v", err)
	}

	if len(z.Beads) != 2 {
		t.Fatalf("got %d beads, want 2", len(z.Beads))
	}
	back, fwd := z.Beads[0], z.Beads[1]
	if back.Leg != (Leg{Arrow: "l", Dir: Bwd}) || back.Index != "i" || back.Mor != "f0" {
		t.Errorf("backward bead = %+v", back)
	}
	if fwd.Leg != (Leg{Arrow: "r", Dir: Fwd}) || fwd.Index != "j" || fwd.Mor != "g0" {
		t.Errorf("forward bead = %+v", fwd)
	}

	wantSrc, _ := cls.Rep(quotient.Element{Index: "i", Object: "a0"})
	wantDst, _ := cls.Rep(quotient.Element{Index: "j", Object: "b2"})
	if z.SrcRep != wantSrc || z.DstRep != wantDst {
		t.Errorf("reps = %q -> %q, want %q -> %q", z.SrcRep, z.DstRep, wantSrc, wantDst)
	}
	if z.SrcRep == z.DstRep {
		t.Error("a0 and b2 should land in distinct classes")
	}
}

func TestRoofArrow_Rejections(t *testing.T) {
	d := roofDiagram()
	cls, _ := quotient.Compute(d)

	cases := map[string]Roof{
		"unknown left arrow":  {Left: "zz", Right: "r", A: "a0", C: "x1", B: "b2", F: "f0", G: "g0"},
		"legs without apex":   {Left: "r", Right: "r", A: "b1", C: "x1", B: "b2", F: "g0", G: "g0"},
		"apex object missing": {Left: "l", Right: "r", A: "a0", C: "x9", B: "b2", F: "f0", G: "g0"},
		"f endpoint mismatch": {Left: "l", Right: "r", A: "a1", C: "x1", B: "b2", F: "f0", G: "g0"},
		"g endpoint mismatch": {Left: "l", Right: "r", A: "a0", C: "x1", B: "b1", F: "f0", G: "g0"},
	}
	for name, roof := range cases {
		if _, err := RoofArrow(d, cls, roof); err == nil {
			t.Errorf("%s: RoofArrow() accepted invalid roof", name)
		}
	}
}

func TestCompose_Syntactic(t *testing.T) {
	f := &ZigZag{SrcRep: "A", DstRep: "B", Beads: []Bead{
		{Leg: Leg{Arrow: "l", Dir: Bwd}, Index: "i", Mor: "f0"},
	}}
	g := &ZigZag{SrcRep: "B", DstRep: "C", Beads: []Bead{
		{Leg: Leg{Arrow: "r", Dir: Fwd}, Index: "j", Mor: "g0"},
	}}

	gf, err := Compose(g, f)
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if gf.SrcRep != "A" || gf.DstRep != "C" {
		t.Errorf("composite reps = %q -> %q", gf.SrcRep, gf.DstRep)
	}
	if len(gf.Beads) != 2 || gf.Beads[0].Mor != "f0" || gf.Beads[1].Mor != "g0" {
		t.Errorf("composite beads out of order: %+v", gf.Beads)
	}
	// Inputs stay untouched.
	if len(f.Beads) != 1 || len(g.Beads) != 1 {
		t.Error("Compose() mutated an input chain")
	}
}

func TestCompose_ShapeMismatch(t *testing.T) {
	f := &ZigZag{SrcRep: "A", DstRep: "B"}
	g := &ZigZag{SrcRep: "X", DstRep: "C"}
	_, err := Compose(g, f)
	if !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("Compose() error = %v, want ErrShapeMismatch", err)
	}
}

func TestLeg_Identity(t *testing.T) {
	if (Leg{Arrow: "l"}).IsIdentity() {
		t.Error("leg with arrow reported as identity")
	}
	if !(Leg{}).IsIdentity() {
		t.Error("empty leg not reported as identity")
	}
}
