// Package elements searches the category of elements of the
// object-level part of a diagram: nodes are (index, object) pairs and
// each shape arrow u: i -> j contributes an edge (i, a) -> (j, F(u)(a)).
// The only operation is an unweighted FIFO breadth-first search used to
// witness that two elements are connected; it computes no metric.
package elements

import (
	"github.com/odvcencio/colim/pkg/diagram"
)

// Node is one element: an object living at a shape index.
type Node struct {
	Index  string
	Object string
}

// Step is one traversed edge of the elements graph: the shape arrow
// taken and the nodes it connects.
type Step struct {
	Arrow string
	From  Node
	To    Node
}

// Graph is the adjacency structure of the elements category. Edges
// are stored per source node in shape-arrow declaration order, which
// fixes BFS tie-breaking.
type Graph struct {
	adj map[Node][]Step
}

// FromDiagram builds the elements graph of d's object level.
func FromDiagram(d *diagram.Diagram) *Graph {
	g := &Graph{adj: make(map[Node][]Step)}
	for _, u := range d.Shape.Arrows {
		fn, ok := d.Functor(u.ID)
		if !ok {
			continue
		}
		src, ok := d.Category(u.Src)
		if !ok {
			continue
		}
		for _, o := range src.Objects {
			img, ok := fn.OnObj(o)
			if !ok {
				continue
			}
			from := Node{Index: u.Src, Object: o}
			to := Node{Index: u.Dst, Object: img}
			g.adj[from] = append(g.adj[from], Step{Arrow: u.ID, From: from, To: to})
		}
	}
	return g
}

// Path returns the first shortest directed path from src to dst, as
// the sequence of steps taken, or ok=false when dst is unreachable.
// A search from a node to itself succeeds with an empty path.
func (g *Graph) Path(src, dst Node) ([]Step, bool) {
	if src == dst {
		return []Step{}, true
	}

	prev := make(map[Node]Step)
	visited := map[Node]bool{src: true}
	queue := []Node{src}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, step := range g.adj[cur] {
			if visited[step.To] {
				continue
			}
			visited[step.To] = true
			prev[step.To] = step
			if step.To == dst {
				return g.unwind(prev, src, dst), true
			}
			queue = append(queue, step.To)
		}
	}
	return nil, false
}

func (g *Graph) unwind(prev map[Node]Step, src, dst Node) []Step {
	var rev []Step
	for cur := dst; cur != src; {
		step := prev[cur]
		rev = append(rev, step)
		cur = step.From
	}
	out := make([]Step, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		out = append(out, rev[i])
	}
	return out
}
