package k2tree

import (
	"sort"
	"testing"
)

// goldEdgeSet is a simple and slow set of (line, col) edges, a golden
// reference for K2Tree, in the same spirit as the teacher's goldTable[V]
// (gold_table_test.go): a naive model checked against the fast structure.
type goldEdgeSet map[Edge]bool

func newGoldEdgeSet(edges []Edge) goldEdgeSet {
	g := make(goldEdgeSet, len(edges))
	for _, e := range edges {
		g[e] = true
	}
	return g
}

func (g goldEdgeSet) remove(e Edge) {
	delete(g, e)
}

// sorted returns the edges in ascending Morton order for the given k,
// computed independently of the tree (by decomposing each coordinate pair
// into its per-level digit path and comparing those paths lexicographically)
// so that ordering tests don't just check the tree against itself.
func (g goldEdgeSet) sorted(k, height int) []Edge {
	out := make([]Edge, 0, len(g))
	for e := range g {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		pi := mortonPath(k, height, out[i].Line, out[i].Col)
		pj := mortonPath(k, height, out[j].Line, out[j].Col)
		for d := 0; d < height; d++ {
			if pi[d] != pj[d] {
				return pi[d] < pj[d]
			}
		}
		return false
	})
	return out
}

func edgeSliceToSet(edges []Edge) map[Edge]bool {
	m := make(map[Edge]bool, len(edges))
	for _, e := range edges {
		m[e] = true
	}
	return m
}

func buildTree(t *testing.T, k int, edges []Edge) *K2Tree {
	t.Helper()
	maxCoord := 0
	for _, e := range edges {
		if e.Line > maxCoord {
			maxCoord = e.Line
		}
		if e.Col > maxCoord {
			maxCoord = e.Col
		}
	}
	h := smallestPow(k, maxCoord+1)
	b, err := NewBuilder(k, h)
	if err != nil {
		t.Fatalf("NewBuilder(%d, %d): %v", k, h, err)
	}
	for _, e := range edges {
		if _, err := b.AddEdge(e.Line, e.Col); err != nil {
			t.Fatalf("AddEdge(%d, %d): %v", e.Line, e.Col, err)
		}
	}
	return b.Build()
}
