package quotient

import (
	"testing"

	"github.com/odvcencio/colim/pkg/diagram"
)

func pushout() *diagram.Diagram {
	return &diagram.Diagram{
		Shape: diagram.Shape{
			Objects: []string{"k", "i", "j"},
			Arrows: []diagram.Arrow{
				{ID: "l", Src: "k", Dst: "i"},
				{ID: "r", Src: "k", Dst: "j"},
			},
		},
		Categories: map[string]*diagram.Category{
			"k": {Name: "K", Objects: []string{"x1", "x2"}},
			"i": {Name: "A", Objects: []string{"a1", "a2"}},
			"j": {Name: "B", Objects: []string{"b1", "b2"}},
		},
		Functors: map[string]*diagram.Functor{
			"l": {ObjMap: map[string]string{"x1": "a1", "x2": "a2"}},
			"r": {ObjMap: map[string]string{"x1": "b1", "x2": "b2"}},
		},
	}
}

// ---------------------------------------------------------------------------
// Pushout end-to-end: a1 ~ b1 and a2 ~ b2, in two distinct classes.
// ---------------------------------------------------------------------------

func TestCompute_Pushout(t *testing.T) {
	cls, err := Compute(pushout())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	a1 := Element{Index: "i", Object: "a1"}
	a2 := Element{Index: "i", Object: "a2"}
	b1 := Element{Index: "j", Object: "b1"}
	b2 := Element{Index: "j", Object: "b2"}
	x1 := Element{Index: "k", Object: "x1"}

	if !cls.SameClass(a1, b1) {
		t.Error("a1 and b1 should be identified through x1")
	}
	if !cls.SameClass(a1, x1) {
		t.Error("a1 and x1 should be identified")
	}
	if !cls.SameClass(a2, b2) {
		t.Error("a2 and b2 should be identified through x2")
	}
	if cls.SameClass(a1, a2) {
		t.Error("a1 and a2 must stay in distinct classes")
	}
	if got := len(cls.Members); got != 2 {
		t.Fatalf("got %d classes, want 2", got)
	}
	for rep, members := range cls.Members {
		if len(members) != 3 {
			t.Errorf("class %s has %d members, want 3", rep, len(members))
		}
	}
}

// ---------------------------------------------------------------------------
// Quotient consistency: RepOf agrees with an independent BFS
// connected-components computation over the identification graph.
// ---------------------------------------------------------------------------

// chainDiagram merges objects along i -> j -> k with a non-injective
// second leg, so classes of size 1, 2 and 3 all occur.
func chainDiagram() *diagram.Diagram {
	return &diagram.Diagram{
		Shape: diagram.Shape{
			Objects: []string{"i", "j", "k"},
			Arrows: []diagram.Arrow{
				{ID: "u", Src: "i", Dst: "j"},
				{ID: "v", Src: "j", Dst: "k"},
			},
		},
		Categories: map[string]*diagram.Category{
			"i": {Name: "I", Objects: []string{"p", "q"}},
			"j": {Name: "J", Objects: []string{"s", "t", "w"}},
			"k": {Name: "K", Objects: []string{"z1", "z2"}},
		},
		Functors: map[string]*diagram.Functor{
			"u": {ObjMap: map[string]string{"p": "s", "q": "t"}},
			"v": {ObjMap: map[string]string{"s": "z1", "t": "z1", "w": "z2"}},
		},
	}
}

// components computes the same equivalence by BFS over the undirected
// o -- F(u)(o) graph, with no union-find involved.
func components(d *diagram.Diagram) map[Element]int {
	adj := make(map[Element][]Element)
	var all []Element
	for _, i := range d.Shape.Objects {
		c, _ := d.Category(i)
		for _, o := range c.Objects {
			all = append(all, Element{Index: i, Object: o})
		}
	}
	for _, u := range d.Shape.Arrows {
		fn, _ := d.Functor(u.ID)
		src, _ := d.Category(u.Src)
		for _, o := range src.Objects {
			img, _ := fn.OnObj(o)
			a := Element{Index: u.Src, Object: o}
			b := Element{Index: u.Dst, Object: img}
			adj[a] = append(adj[a], b)
			adj[b] = append(adj[b], a)
		}
	}

	comp := make(map[Element]int)
	next := 0
	for _, start := range all {
		if _, ok := comp[start]; ok {
			continue
		}
		queue := []Element{start}
		comp[start] = next
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range adj[cur] {
				if _, ok := comp[nb]; !ok {
					comp[nb] = next
					queue = append(queue, nb)
				}
			}
		}
		next++
	}
	return comp
}

func TestCompute_AgreesWithBFS(t *testing.T) {
	for name, d := range map[string]*diagram.Diagram{
		"pushout": pushout(),
		"chain":   chainDiagram(),
	} {
		cls, err := Compute(d)
		if err != nil {
			t.Fatalf("%s: Compute() error: %v", name, err)
		}
		comp := components(d)

		var elems []Element
		for e := range comp {
			elems = append(elems, e)
		}
		for _, a := range elems {
			for _, b := range elems {
				if got, want := cls.SameClass(a, b), comp[a] == comp[b]; got != want {
					t.Errorf("%s: SameClass(%v, %v) = %v, BFS says %v", name, a, b, got, want)
				}
			}
		}
	}
}

func TestCompute_UndefinedFunctorObject(t *testing.T) {
	d := pushout()
	delete(d.Functors["l"].ObjMap, "x2")
	if _, err := Compute(d); err == nil {
		t.Fatal("Compute() accepted a functor undefined on a source object")
	}
}

func TestCompute_Deterministic(t *testing.T) {
	first, err := Compute(chainDiagram())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	for n := 0; n < 5; n++ {
		again, err := Compute(chainDiagram())
		if err != nil {
			t.Fatalf("Compute() error: %v", err)
		}
		for e, rep := range first.RepOf {
			if again.RepOf[e] != rep {
				t.Fatalf("rep of %v changed between runs: %q vs %q", e, rep, again.RepOf[e])
			}
		}
	}
}

func TestParseTag(t *testing.T) {
	e := Element{Index: "i", Object: "a::weird"}
	back, err := ParseTag(e.Tag())
	if err != nil {
		t.Fatalf("ParseTag() error: %v", err)
	}
	if back.Index != "i" || back.Object != "a::weird" {
		t.Fatalf("ParseTag round-trip = %+v", back)
	}
	if _, err := ParseTag("noseparator"); err == nil {
		t.Fatal("ParseTag() accepted a tag without separator")
	}
}
