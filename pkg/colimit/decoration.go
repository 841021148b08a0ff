package colimit

import "fmt"

// Functor is a caller-supplied functor action used by two-cell
// generators. Unlike diagram.Functor it is total by contract: the
// caller owns the categories a generator mentions, so a lookup miss is
// a caller bug, not a runtime condition.
type Functor interface {
	OnObj(obj string) string
	OnMor(mor string) string
}

// MapFunctor is the usual concrete Functor backed by two maps.
type MapFunctor struct {
	Obj map[string]string
	Mor map[string]string
}

func (m MapFunctor) OnObj(o string) string { return m.Obj[o] }
func (m MapFunctor) OnMor(f string) string { return m.Mor[f] }

// ComposeFunc composes two morphisms inside one caller-owned category:
// the result of f followed by g. The core never invents composition.
type ComposeFunc func(g, f string) string

// IdentFunc manufactures the identity morphism at an object of a
// caller-owned category.
type IdentFunc func(index, object string) string

// LR is a decorated length-1 zig-zag i <- k -> j: the two connecting
// arrows, the three indices, object witnesses A in C_i, A1 in C_k,
// B in C_j, and morphisms F0: A -> l(A1) in C_i, F1: r(A1) -> B in
// C_j. Empty arrow identifiers mark identity legs.
type LR struct {
	LeftArrow  string
	RightArrow string
	I, K, J    string
	A, A1, B   string
	F0, F1     string
}

// identityLegs reports whether both legs of the bead stay put.
func (d LR) identityLegs() bool {
	return d.LeftArrow == "" && d.RightArrow == ""
}

// Trivial is a decoration collapsed to a single category: one
// morphism G: A -> B in C_K. Square actions produce these; a Trivial
// is never un-collapsed.
type Trivial struct {
	K    string
	A, B string
	G    string
}

// Decoration is the tagged sum over the two decoration shapes.
type Decoration interface {
	dec()
}

func (LR) dec()      {}
func (Trivial) dec() {}

// Square is a two-cell generator witnessing a commuting square that
// collapses the roof indices {I, K, J} onto Apex. RhoI and RhoJ are
// the legs C_I -> C_Apex and C_J -> C_Apex.
type Square struct {
	I, K, J string
	Apex    string
	RhoI    Functor
	RhoJ    Functor
}

// Ladder is a two-cell generator relabeling a roof along an
// identity-shaped ladder: primed indices, primed connecting arrows,
// and the three relabeling functors.
type Ladder struct {
	IP, KP, JP string
	LeftArrow  string
	RightArrow string
	RhoI       Functor
	RhoK       Functor
	RhoJ       Functor
}

// Gen is the tagged sum of two-cell generators.
type Gen interface {
	gen()
}

func (Square) gen() {}
func (Ladder) gen() {}

// ActSquare fires a square generator on an LR decoration, collapsing
// it into the apex category. The composite is delegated to compose;
// the input is not mutated.
func ActSquare(d LR, cell Square, compose ComposeFunc) Trivial {
	f0 := cell.RhoI.OnMor(d.F0)
	f1 := cell.RhoJ.OnMor(d.F1)
	return Trivial{
		K: cell.Apex,
		A: cell.RhoI.OnObj(d.A),
		B: cell.RhoJ.OnObj(d.B),
		G: compose(f1, f0),
	}
}

// ActLadder fires a ladder generator on an LR decoration, reindexing
// every field to the primed side. The result is again an LR, so
// further generators may fire after it.
func ActLadder(d LR, cell Ladder) LR {
	return LR{
		LeftArrow:  cell.LeftArrow,
		RightArrow: cell.RightArrow,
		I:          cell.IP,
		K:          cell.KP,
		J:          cell.JP,
		A:          cell.RhoI.OnObj(d.A),
		A1:         cell.RhoK.OnObj(d.A1),
		B:          cell.RhoJ.OnObj(d.B),
		F0:         cell.RhoI.OnMor(d.F0),
		F1:         cell.RhoJ.OnMor(d.F1),
	}
}

// ActRhoConcat folds a generator string left-to-right over a starting
// decoration. Once a square collapses the decoration, a later square
// whose matching leg starts at the collapsed index relabels it further
// into the new apex, and a later ladder is a no-op. A square that
// mentions neither side of a collapsed decoration is a malformed
// generator reference and reported as an error.
func ActRhoConcat(start Decoration, gens []Gen, compose ComposeFunc) (Decoration, error) {
	cur := start
	for n, g := range gens {
		switch d := cur.(type) {
		case LR:
			switch cell := g.(type) {
			case Square:
				cur = ActSquare(d, cell, compose)
			case Ladder:
				cur = ActLadder(d, cell)
			default:
				return nil, fmt.Errorf("act: generator %d has unknown kind %T", n, g)
			}
		case Trivial:
			switch cell := g.(type) {
			case Square:
				var rho Functor
				switch d.K {
				case cell.I:
					rho = cell.RhoI
				case cell.J:
					rho = cell.RhoJ
				default:
					return nil, fmt.Errorf("act: generator %d: square %s/%s does not touch index %s",
						n, cell.I, cell.J, d.K)
				}
				cur = Trivial{
					K: cell.Apex,
					A: rho.OnObj(d.A),
					B: rho.OnObj(d.B),
					G: rho.OnMor(d.G),
				}
			case Ladder:
				// Ladders do not act on collapsed decorations.
			default:
				return nil, fmt.Errorf("act: generator %d has unknown kind %T", n, g)
			}
		default:
			return nil, fmt.Errorf("act: unknown decoration %T", cur)
		}
	}
	return cur, nil
}
