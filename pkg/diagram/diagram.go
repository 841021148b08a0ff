// Package diagram defines the input data model for colimit
// computations: a finite shape category J, a family of small
// categories indexed by the objects of J, and a connecting functor for
// every arrow of J.
//
// A Diagram is plain data. No composition tables are stored; where the
// colimit machinery needs to compose morphisms inside a component
// category it asks the caller for a composition callback. Diagrams are
// built once and treated as read-only by every derived computation.
package diagram

import (
	"fmt"
	"sort"
)

// Morphism is one morphism of a small category, tracked as an
// identifier together with its endpoint objects.
type Morphism struct {
	ID  string
	Src string
	Dst string
}

// Category is a finite small category: a name, an object set, and a
// morphism set. Identities and composites are not materialized.
type Category struct {
	Name      string
	Objects   []string
	Morphisms []Morphism
}

// HasObject reports whether o is an object of the category.
func (c *Category) HasObject(o string) bool {
	for _, x := range c.Objects {
		if x == o {
			return true
		}
	}
	return false
}

// Morphism looks up a morphism by identifier.
func (c *Category) Morphism(id string) (Morphism, bool) {
	for _, m := range c.Morphisms {
		if m.ID == id {
			return m, true
		}
	}
	return Morphism{}, false
}

// Arrow is one arrow of the shape category J.
type Arrow struct {
	ID  string
	Src string
	Dst string
}

// Shape is the indexing category J: finite objects and arrows. Any
// 2-cells are supplied externally as generator lists, never stored.
type Shape struct {
	Objects []string
	Arrows  []Arrow
}

// HasObject reports whether i is an object of J.
func (s *Shape) HasObject(i string) bool {
	for _, x := range s.Objects {
		if x == i {
			return true
		}
	}
	return false
}

// Arrow looks up a J-arrow by identifier.
func (s *Shape) Arrow(id string) (Arrow, bool) {
	for _, a := range s.Arrows {
		if a.ID == id {
			return a, true
		}
	}
	return Arrow{}, false
}

// Functor is the connecting functor for one arrow u: i -> j of J,
// given by an object map and a morphism map from C_i into C_j. Owned
// by its Diagram and never mutated after construction.
type Functor struct {
	ObjMap map[string]string
	MorMap map[string]string
}

// OnObj applies the object map.
func (f *Functor) OnObj(o string) (string, bool) {
	v, ok := f.ObjMap[o]
	return v, ok
}

// OnMor applies the morphism map.
func (f *Functor) OnMor(m string) (string, bool) {
	v, ok := f.MorMap[m]
	return v, ok
}

// Diagram is a shape J together with a category per J-object and a
// functor per J-arrow. Immutable input to every colimit component.
type Diagram struct {
	Shape      Shape
	Categories map[string]*Category
	Functors   map[string]*Functor
}

// Category returns the component category at J-object i.
func (d *Diagram) Category(i string) (*Category, bool) {
	c, ok := d.Categories[i]
	return c, ok
}

// Functor returns the connecting functor for J-arrow id.
func (d *Diagram) Functor(id string) (*Functor, bool) {
	f, ok := d.Functors[id]
	return f, ok
}

// Validate checks the structural invariants of the diagram: every
// morphism's endpoints belong to its category, every J-arrow connects
// declared J-objects and carries a functor, and every functor is total
// on its source objects with images inside the target category.
func (d *Diagram) Validate() error {
	for _, i := range d.Shape.Objects {
		c, ok := d.Categories[i]
		if !ok {
			return fmt.Errorf("validate: no category at index %q", i)
		}
		for _, m := range c.Morphisms {
			if !c.HasObject(m.Src) {
				return fmt.Errorf("validate: category %q: morphism %q src %q not an object", i, m.ID, m.Src)
			}
			if !c.HasObject(m.Dst) {
				return fmt.Errorf("validate: category %q: morphism %q dst %q not an object", i, m.ID, m.Dst)
			}
		}
	}

	for _, u := range d.Shape.Arrows {
		if !d.Shape.HasObject(u.Src) {
			return fmt.Errorf("validate: arrow %q src %q not a shape object", u.ID, u.Src)
		}
		if !d.Shape.HasObject(u.Dst) {
			return fmt.Errorf("validate: arrow %q dst %q not a shape object", u.ID, u.Dst)
		}
		f, ok := d.Functors[u.ID]
		if !ok {
			return fmt.Errorf("validate: arrow %q has no functor", u.ID)
		}
		src := d.Categories[u.Src]
		dst := d.Categories[u.Dst]
		if src == nil || dst == nil {
			return fmt.Errorf("validate: arrow %q endpoints missing categories", u.ID)
		}
		for _, o := range src.Objects {
			img, ok := f.ObjMap[o]
			if !ok {
				return fmt.Errorf("validate: functor %q undefined on object %q", u.ID, o)
			}
			if !dst.HasObject(img) {
				return fmt.Errorf("validate: functor %q maps %q outside category %q", u.ID, o, u.Dst)
			}
		}
		for mid, img := range f.MorMap {
			m, ok := src.Morphism(mid)
			if !ok {
				return fmt.Errorf("validate: functor %q defined on unknown morphism %q", u.ID, mid)
			}
			im, ok := dst.Morphism(img)
			if !ok {
				return fmt.Errorf("validate: functor %q maps morphism %q to unknown %q", u.ID, mid, img)
			}
			if im.Src != f.ObjMap[m.Src] || im.Dst != f.ObjMap[m.Dst] {
				return fmt.Errorf("validate: functor %q breaks endpoints of morphism %q", u.ID, mid)
			}
		}
	}

	return nil
}

// Indices returns the J-objects in declared order. Convenience for
// callers that iterate deterministically.
func (d *Diagram) Indices() []string {
	out := make([]string, len(d.Shape.Objects))
	copy(out, d.Shape.Objects)
	return out
}

// SortedFunctorArrows returns the arrow identifiers that carry
// functors, sorted. Used where output order must not depend on map
// iteration.
func (d *Diagram) SortedFunctorArrows() []string {
	out := make([]string, 0, len(d.Functors))
	for id := range d.Functors {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
