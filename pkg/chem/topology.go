package chem

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Graph returns the bond graph of s. Node ids are atom IDs; placeholder
// bonds are omitted.
func (s Solution) Graph() *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for _, a := range s.Atoms {
		g.AddNode(simple.Node(a.ID))
	}
	for _, b := range s.Bonds {
		if b.IsPlaceholder() {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(b.From), simple.Node(b.To)))
	}
	return g
}

// Connected reports whether every atom is reachable from every other.
func (s Solution) Connected() bool {
	return len(topo.ConnectedComponents(s.Graph())) <= 1
}

// Rings returns a cycle basis of the bond graph. Each ring lists its atoms
// in ascending ID order.
func (s Solution) Rings() [][]ID {
	cycles := topo.UndirectedCyclesIn(s.Graph())
	out := make([][]ID, 0, len(cycles))
	for _, c := range cycles {
		out = append(out, sortedIDs(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		return out[i][0] < out[j][0]
	})
	return out
}

// Skeleton describes the subgraph induced by atoms of one element as its
// sorted degree sequence, e.g. "1,1,2,2" for a four-carbon chain and
// "1,1,1,3" for its branched isomer.
func (s Solution) Skeleton(element string) string {
	g := s.Graph()
	var degrees []int
	for _, a := range s.Atoms {
		if a.Element != element {
			continue
		}
		d := 0
		nodes := g.From(int64(a.ID))
		for nodes.Next() {
			if s.Atoms[nodes.Node().ID()].Element == element {
				d++
			}
		}
		degrees = append(degrees, d)
	}
	sort.Ints(degrees)
	parts := make([]string, len(degrees))
	for i, d := range degrees {
		parts[i] = fmt.Sprint(d)
	}
	return strings.Join(parts, ",")
}

func sortedIDs(nodes []graph.Node) []ID {
	// Paton cycles repeat the first node at the end.
	seen := make(map[int64]bool, len(nodes))
	ids := make([]ID, 0, len(nodes))
	for _, n := range nodes {
		if seen[n.ID()] {
			continue
		}
		seen[n.ID()] = true
		ids = append(ids, ID(n.ID()))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
