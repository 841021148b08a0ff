// Package quotient computes the object set of a colimit of categories:
// the quotient of all component objects under the relation that
// identifies an object o of C_i with F(u)(o) in C_j for every shape
// arrow u: i -> j. The quotient is computed with a disjoint-set forest
// local to each call; nothing is shared between calls.
package quotient

import (
	"fmt"
	"sort"
	"strings"

	"github.com/odvcencio/colim/pkg/diagram"
)

// Element is one object of one component category, addressed by its
// shape index and object identifier.
type Element struct {
	Index  string
	Object string
}

// Tag returns the canonical "index::object" key for the element.
func (e Element) Tag() string {
	return e.Index + "::" + e.Object
}

// ParseTag is the inverse of Tag.
func ParseTag(tag string) (Element, error) {
	idx := strings.Index(tag, "::")
	if idx < 0 {
		return Element{}, fmt.Errorf("parse tag: %q is not index::object", tag)
	}
	return Element{Index: tag[:idx], Object: tag[idx+2:]}, nil
}

// Classes is the computed object quotient. RepOf maps every element to
// its class representative tag; Members lists each class, sorted by
// tag. The representative is whichever root the forest settled on:
// callers may rely on consistency within one Classes value, never on a
// particular member being chosen.
type Classes struct {
	RepOf   map[Element]string
	Members map[string][]Element
}

// Rep returns the representative tag of e's class.
func (c *Classes) Rep(e Element) (string, bool) {
	r, ok := c.RepOf[e]
	return r, ok
}

// SameClass reports whether a and b were identified by the quotient.
func (c *Classes) SameClass(a, b Element) bool {
	ra, ok := c.RepOf[a]
	if !ok {
		return false
	}
	rb, ok := c.RepOf[b]
	return ok && ra == rb
}

// forest is a disjoint-set over element tags with path compression.
type forest struct {
	parent map[string]string
}

func newForest() *forest {
	return &forest{parent: make(map[string]string)}
}

func (f *forest) add(tag string) {
	if _, ok := f.parent[tag]; !ok {
		f.parent[tag] = tag
	}
}

func (f *forest) find(tag string) string {
	root := tag
	for f.parent[root] != root {
		root = f.parent[root]
	}
	// Compress the walked path.
	for f.parent[tag] != root {
		tag, f.parent[tag] = f.parent[tag], root
	}
	return root
}

func (f *forest) union(a, b string) {
	ra, rb := f.find(a), f.find(b)
	if ra != rb {
		f.parent[rb] = ra
	}
}

// Compute builds the object quotient of d. It walks the diagram in
// declared order (shape objects, then category objects, then shape
// arrows), so the result is deterministic for a fixed diagram. An
// arrow whose functor is undefined on some source object is reported
// as an error.
func Compute(d *diagram.Diagram) (*Classes, error) {
	f := newForest()

	for _, i := range d.Shape.Objects {
		c, ok := d.Category(i)
		if !ok {
			return nil, fmt.Errorf("quotient: no category at index %q", i)
		}
		for _, o := range c.Objects {
			f.add(Element{Index: i, Object: o}.Tag())
		}
	}

	for _, u := range d.Shape.Arrows {
		fn, ok := d.Functor(u.ID)
		if !ok {
			return nil, fmt.Errorf("quotient: arrow %q has no functor", u.ID)
		}
		src, _ := d.Category(u.Src)
		for _, o := range src.Objects {
			img, ok := fn.OnObj(o)
			if !ok {
				return nil, fmt.Errorf("quotient: functor %q undefined on %q", u.ID, o)
			}
			f.union(Element{Index: u.Src, Object: o}.Tag(),
				Element{Index: u.Dst, Object: img}.Tag())
		}
	}

	out := &Classes{
		RepOf:   make(map[Element]string),
		Members: make(map[string][]Element),
	}
	for _, i := range d.Shape.Objects {
		c, _ := d.Category(i)
		for _, o := range c.Objects {
			e := Element{Index: i, Object: o}
			root := f.find(e.Tag())
			out.RepOf[e] = root
			out.Members[root] = append(out.Members[root], e)
		}
	}
	for _, members := range out.Members {
		sort.Slice(members, func(a, b int) bool {
			return members[a].Tag() < members[b].Tag()
		})
	}

	return out, nil
}
