// Package colimit glues a diagram of small categories into one
// explicit colimit category: objects are quotient classes, morphisms
// are chains of decorated zig-zag beads. Composition bridges endpoint
// witnesses that are equivalent but not equal by searching the
// category of elements; equality is decided modulo a caller-supplied
// list of two-cell generators plus local chain normalization.
//
// Everything here is synchronous and pure over an immutable diagram.
// Composition and identities inside component categories are never
// invented: the caller injects them as ComposeFunc and IdentFunc.
package colimit

import (
	"errors"
	"fmt"

	"github.com/odvcencio/colim/pkg/diagram"
	"github.com/odvcencio/colim/pkg/elements"
	"github.com/odvcencio/colim/pkg/quotient"
)

// ErrNoBridge reports that two morphisms have equivalent but
// unconnected middle endpoints: the elements graph offers no directed
// path from one witness to the other.
var ErrNoBridge = errors.New("colimit: no elements path between endpoint witnesses")

// Mor is a morphism of the colimit category between two object
// classes, carried by a non-empty chain of decorated beads.
type Mor struct {
	SrcRep string
	DstRep string
	Chain  []LR
}

// Category is the explicit colimit of a diagram. Built once per
// diagram; all derived state (quotient classes, elements graph) is
// read-only afterward.
type Category struct {
	diag *diagram.Diagram
	cls  *quotient.Classes
	els  *elements.Graph
	idIn IdentFunc
}

// New validates the diagram, computes its object quotient, and builds
// the elements graph used for bridging. idIn manufactures identity
// morphisms inside component categories on demand.
func New(d *diagram.Diagram, idIn IdentFunc) (*Category, error) {
	if idIn == nil {
		return nil, fmt.Errorf("colimit: nil identity callback")
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("colimit: %w", err)
	}
	cls, err := quotient.Compute(d)
	if err != nil {
		return nil, fmt.Errorf("colimit: %w", err)
	}
	return &Category{
		diag: d,
		cls:  cls,
		els:  elements.FromDiagram(d),
		idIn: idIn,
	}, nil
}

// Classes exposes the computed object quotient.
func (c *Category) Classes() *quotient.Classes { return c.cls }

// Diagram returns the underlying diagram.
func (c *Category) Diagram() *diagram.Diagram { return c.diag }

func (c *Category) rep(index, object string) (string, error) {
	r, ok := c.cls.Rep(quotient.Element{Index: index, Object: object})
	if !ok {
		return "", fmt.Errorf("colimit: no class for %s::%s", index, object)
	}
	return r, nil
}

// identityBead is the length-1 zig-zag staying at (index, object):
// i = k = j, both legs identity, both witnesses the identity morphism.
func (c *Category) identityBead(index, object string) LR {
	id := c.idIn(index, object)
	return LR{
		I: index, K: index, J: index,
		A: object, A1: object, B: object,
		F0: id, F1: id,
	}
}

// Id returns the identity morphism of the class of (i, a).
func (c *Category) Id(i, a string) (*Mor, error) {
	cat, ok := c.diag.Category(i)
	if !ok || !cat.HasObject(a) {
		return nil, fmt.Errorf("colimit: id: %q is not an object of C_%s", a, i)
	}
	rep, err := c.rep(i, a)
	if err != nil {
		return nil, err
	}
	return &Mor{SrcRep: rep, DstRep: rep, Chain: []LR{c.identityBead(i, a)}}, nil
}

// MkMor wraps a supplied bead chain into a colimit morphism.
// Consecutive beads must have class-equivalent endpoint witnesses;
// bridging to literal equality is Compose's job.
func (c *Category) MkMor(chain ...LR) (*Mor, error) {
	if len(chain) == 0 {
		return nil, fmt.Errorf("colimit: empty bead chain")
	}
	for t := 0; t+1 < len(chain); t++ {
		left, err := c.rep(chain[t].J, chain[t].B)
		if err != nil {
			return nil, err
		}
		right, err := c.rep(chain[t+1].I, chain[t+1].A)
		if err != nil {
			return nil, err
		}
		if left != right {
			return nil, fmt.Errorf("colimit: beads %d and %d meet in different classes (%s vs %s)",
				t, t+1, left, right)
		}
	}
	src, err := c.rep(chain[0].I, chain[0].A)
	if err != nil {
		return nil, err
	}
	dst, err := c.rep(chain[len(chain)-1].J, chain[len(chain)-1].B)
	if err != nil {
		return nil, err
	}
	out := make([]LR, len(chain))
	copy(out, chain)
	return &Mor{SrcRep: src, DstRep: dst, Chain: out}, nil
}

// MkMorFromProper wraps a chain that is already in proper form:
// consecutive beads must meet on the nose, witness for witness, not
// merely in the same class.
func (c *Category) MkMorFromProper(chain ...LR) (*Mor, error) {
	for t := 0; t+1 < len(chain); t++ {
		if chain[t].J != chain[t+1].I || chain[t].B != chain[t+1].A {
			return nil, fmt.Errorf("colimit: beads %d and %d do not meet on the nose (%s::%s vs %s::%s)",
				t, t+1, chain[t].J, chain[t].B, chain[t+1].I, chain[t+1].A)
		}
	}
	return c.MkMor(chain...)
}

// Compose returns m2 after m1. When the middle witnesses differ, a
// directed elements path between them is searched and one
// identity-decorated bead per edge is inserted; ErrNoBridge is
// returned when no such path exists.
func (c *Category) Compose(m2, m1 *Mor) (*Mor, error) {
	if len(m1.Chain) == 0 || len(m2.Chain) == 0 {
		return nil, fmt.Errorf("colimit: compose: empty chain")
	}
	if m1.DstRep != m2.SrcRep {
		return nil, fmt.Errorf("colimit: compose: middle classes differ (%s vs %s)",
			m1.DstRep, m2.SrcRep)
	}

	last := m1.Chain[len(m1.Chain)-1]
	first := m2.Chain[0]

	var bridge []LR
	if last.J != first.I || last.B != first.A {
		path, ok := c.els.Path(
			elements.Node{Index: last.J, Object: last.B},
			elements.Node{Index: first.I, Object: first.A},
		)
		if !ok {
			return nil, fmt.Errorf("colimit: compose %s::%s with %s::%s: %w",
				last.J, last.B, first.I, first.A, ErrNoBridge)
		}
		for _, step := range path {
			// Identity roof across one arrow: left leg stays at the
			// source index, right leg rides the arrow.
			bridge = append(bridge, LR{
				RightArrow: step.Arrow,
				I:          step.From.Index,
				K:          step.From.Index,
				J:          step.To.Index,
				A:          step.From.Object,
				A1:         step.From.Object,
				B:          step.To.Object,
				F0:         c.idIn(step.From.Index, step.From.Object),
				F1:         c.idIn(step.To.Index, step.To.Object),
			})
		}
	}

	chain := make([]LR, 0, len(m1.Chain)+len(bridge)+len(m2.Chain))
	chain = append(chain, m1.Chain...)
	chain = append(chain, bridge...)
	chain = append(chain, m2.Chain...)
	return &Mor{SrcRep: m1.SrcRep, DstRep: m2.DstRep, Chain: chain}, nil
}

// Normalize rewrites every bead of m with the generator string, turns
// collapsed decorations into degenerate identity-legged beads, and
// applies the local chain normalizer: trivial beads are dropped and
// consecutive identity-legged beads in the same category are merged.
// A chain that normalizes away entirely keeps one identity bead at the
// source witness so the non-empty invariant holds.
func (c *Category) Normalize(gens []Gen, compose ComposeFunc, m *Mor) (*Mor, error) {
	if len(m.Chain) == 0 {
		return nil, fmt.Errorf("colimit: normalize: empty chain")
	}

	beads := make([]LR, 0, len(m.Chain))
	for n, bead := range m.Chain {
		d, err := ActRhoConcat(bead, gens, compose)
		if err != nil {
			return nil, fmt.Errorf("colimit: normalize bead %d: %w", n, err)
		}
		switch v := d.(type) {
		case LR:
			beads = append(beads, v)
		case Trivial:
			// Degenerate bead: G carried on the left witness, identity
			// on the right.
			beads = append(beads, LR{
				I: v.K, K: v.K, J: v.K,
				A: v.A, A1: v.B, B: v.B,
				F0: v.G, F1: c.idIn(v.K, v.B),
			})
		}
	}

	beads = normalizeChain(beads, compose)
	if len(beads) == 0 {
		first := m.Chain[0]
		beads = []LR{c.identityBead(first.I, first.A)}
	}
	return &Mor{SrcRep: m.SrcRep, DstRep: m.DstRep, Chain: beads}, nil
}

// trivialBead reports a bead that stays in one category on identity
// legs with equal witnesses: exactly the shape an identity bead takes.
func trivialBead(d LR) bool {
	return d.identityLegs() && d.I == d.K && d.K == d.J && d.F0 == d.F1
}

func normalizeChain(beads []LR, compose ComposeFunc) []LR {
	for {
		dropped := beads[:0:0]
		for _, d := range beads {
			if trivialBead(d) {
				continue
			}
			dropped = append(dropped, d)
		}

		merged := make([]LR, 0, len(dropped))
		for _, d := range dropped {
			if n := len(merged); n > 0 {
				prev := merged[n-1]
				if prev.identityLegs() && d.identityLegs() &&
					prev.I == prev.K && prev.K == prev.J &&
					d.I == d.K && d.K == d.J &&
					prev.K == d.K && prev.B == d.A {
					merged[n-1] = LR{
						I: prev.I, K: prev.K, J: d.J,
						A: prev.A, A1: d.A1, B: d.B,
						F0: compose(d.F0, compose(prev.F1, prev.F0)),
						F1: d.F1,
					}
					continue
				}
			}
			merged = append(merged, d)
		}

		if len(merged) == len(beads) {
			return merged
		}
		beads = merged
	}
}

// EqualModulo decides equality of g and f relative to the supplied
// generator list and the local normalizer. Different endpoint classes
// answer false immediately. The oracle is sound only modulo its
// inputs: it is not a decision procedure for the full colimit
// equivalence.
func (c *Category) EqualModulo(gens []Gen, compose ComposeFunc, g, f *Mor) (bool, error) {
	if g.SrcRep != f.SrcRep || g.DstRep != f.DstRep {
		return false, nil
	}
	ng, err := c.Normalize(gens, compose, g)
	if err != nil {
		return false, err
	}
	nf, err := c.Normalize(gens, compose, f)
	if err != nil {
		return false, err
	}
	if len(ng.Chain) != len(nf.Chain) {
		return false, nil
	}
	for t := range ng.Chain {
		if ng.Chain[t] != nf.Chain[t] {
			return false, nil
		}
	}
	return true, nil
}

// Inclusion is the canonical functor from one component category into
// the colimit.
type Inclusion struct {
	c *Category
	i string
}

// Phi returns the inclusion functor of component i.
func (c *Category) Phi(i string) (*Inclusion, error) {
	if _, ok := c.diag.Category(i); !ok {
		return nil, fmt.Errorf("colimit: phi: unknown index %q", i)
	}
	return &Inclusion{c: c, i: i}, nil
}

// OnObj sends an object to its class representative.
func (p *Inclusion) OnObj(a string) (string, error) {
	return p.c.rep(p.i, a)
}

// OnMor sends a component morphism to its trivial zig-zag image.
func (p *Inclusion) OnMor(morID string) (*Mor, error) {
	cat, _ := p.c.diag.Category(p.i)
	m, ok := cat.Morphism(morID)
	if !ok {
		return nil, fmt.Errorf("colimit: phi: unknown morphism %q in C_%s", morID, p.i)
	}
	src, err := p.c.rep(p.i, m.Src)
	if err != nil {
		return nil, err
	}
	dst, err := p.c.rep(p.i, m.Dst)
	if err != nil {
		return nil, err
	}
	bead := LR{
		I: p.i, K: p.i, J: p.i,
		A: m.Src, A1: m.Dst, B: m.Dst,
		F0: morID, F1: p.c.idIn(p.i, m.Dst),
	}
	return &Mor{SrcRep: src, DstRep: dst, Chain: []LR{bead}}, nil
}
