// Package partition implements the compressed edge-partition: the shard of
// a graph owned by one worker (spec.md §3 "Partition"). It binds a K²-tree
// to an ordered edge-attribute array and a vertex-attribute map, and
// exposes the partition-level contract spec.md §6 describes for a
// Pregel-style bulk-synchronous graph engine.
package partition

import (
	"github.com/dataflowlabs/k2graph/k2tree"
)

// VertexId identifies a vertex in the global graph id space.
type VertexId = int64

// RawEdge is an unordered input edge as supplied to Build/AddEdges.
type RawEdge[E any] struct {
	Src  VertexId
	Dst  VertexId
	Attr E
}

// EdgePartition is the shard of a graph owned by one worker (spec.md §4.4).
// Partitions are immutable values: every mutating operation returns a new
// partition that may structurally share its tree and attribute array with
// its predecessor.
type EdgePartition[V, E any] struct {
	k int

	tree  *k2tree.K2Tree
	attrs []E // attrs[i] is the attribute of the i-th edge in tree order

	vattrs map[VertexId]V

	srcOffset VertexId
	dstOffset VertexId

	srcIndex *k2tree.Bitset // length tree.Size(): which local rows are occupied
	dstIndex *k2tree.Bitset // length tree.Size(): which local cols are occupied

	activeSet *k2tree.Bitset // optional, length tree.Size(); nil if unset
}

// Build constructs a partition from an unordered edge stream (spec.md §4.4
// "Build algorithm"). Multi-edges are de-duplicated; the last insertion for
// a given (src, dst) pair wins (spec.md §9 Open Question).
func Build[V, E any](k int, edges []RawEdge[E]) (*EdgePartition[V, E], error) {
	if k < 2 {
		return nil, &k2tree.ArgumentError{Msg: "k must be >= 2"}
	}
	if len(edges) == 0 {
		return &EdgePartition[V, E]{
			k:        k,
			tree:     k2tree.EmptyTree(k),
			vattrs:   make(map[VertexId]V),
			srcIndex: k2tree.NewBitset(k),
			dstIndex: k2tree.NewBitset(k),
		}, nil
	}

	startX, startY := edges[0].Src, edges[0].Dst
	endX, endY := edges[0].Src, edges[0].Dst
	for _, e := range edges[1:] {
		if e.Src < startX {
			startX = e.Src
		}
		if e.Src > endX {
			endX = e.Src
		}
		if e.Dst < startY {
			startY = e.Dst
		}
		if e.Dst > endY {
			endY = e.Dst
		}
	}

	span := endX - startX
	if d := endY - startY; d > span {
		span = d
	}
	h := smallestHeight(k, int(span)+1)

	builder, err := k2tree.NewBuilder(k, h)
	if err != nil {
		return nil, err
	}
	n := builder.Size()
	srcIndex := k2tree.NewBitset(n)
	dstIndex := k2tree.NewBitset(n)
	store := newOrderedAttrs[E](len(edges))

	for _, e := range edges {
		line := int(e.Src - startX)
		col := int(e.Dst - startY)
		if err := srcIndex.Set(line); err != nil {
			return nil, err
		}
		if err := dstIndex.Set(col); err != nil {
			return nil, err
		}
		idx, err := builder.AddEdge(line, col)
		if err != nil {
			return nil, err
		}
		store.insert(idx, e.Attr)
	}

	return &EdgePartition[V, E]{
		k:         k,
		tree:      builder.Build(),
		attrs:     store.flatten(),
		vattrs:    make(map[VertexId]V),
		srcOffset: startX,
		dstOffset: startY,
		srcIndex:  srcIndex,
		dstIndex:  dstIndex,
	}, nil
}

// smallestHeight returns the smallest h with k^h >= n, n >= 1.
func smallestHeight(k, n int) int {
	h := 0
	size := 1
	for size < n {
		size *= k
		h++
	}
	if h == 0 {
		h = 1
	}
	return h
}

// Size returns the number of edges in the partition.
func (p *EdgePartition[V, E]) Size() int { return len(p.attrs) }

// NumActives returns the cardinality of the active-vertex set, or 0 if none
// has been set.
func (p *EdgePartition[V, E]) NumActives() int {
	if p.activeSet == nil {
		return 0
	}
	return p.activeSet.Cardinality()
}

// SrcIndexSize returns the number of distinct local source rows occupied.
func (p *EdgePartition[V, E]) SrcIndexSize() int { return p.srcIndex.Cardinality() }

// DstIndexSize returns the number of distinct local destination cols occupied.
func (p *EdgePartition[V, E]) DstIndexSize() int { return p.dstIndex.Cardinality() }

// K returns the K²-tree branching parameter.
func (p *EdgePartition[V, E]) K() int { return p.k }

// Edge is a global, attributed edge yielded by Iterator.
type Edge[E any] struct {
	Src  VertexId
	Dst  VertexId
	Attr E
}

// Iterator yields every edge in stable tree order, with local coordinates
// translated to global vertex ids.
func (p *EdgePartition[V, E]) Iterator() func(yield func(Edge[E]) bool) {
	return func(yield func(Edge[E]) bool) {
		i := 0
		for e := range p.tree.All() {
			attr := p.attrs[i]
			i++
			if !yield(Edge[E]{Src: VertexId(e.Line) + p.srcOffset, Dst: VertexId(e.Col) + p.dstOffset, Attr: attr}) {
				return
			}
		}
	}
}

// UpdateVertices overlays new vertex attributes into the vertex mapping;
// the tree and edge attributes are unchanged (spec.md §4.4 updateVertices).
func (p *EdgePartition[V, E]) UpdateVertices(updates func(yield func(VertexId, V) bool)) *EdgePartition[V, E] {
	next := p.shallowCopy()
	next.vattrs = make(map[VertexId]V, len(p.vattrs))
	for id, v := range p.vattrs {
		next.vattrs[id] = v
	}
	for id, v := range updates {
		next.vattrs[id] = v
	}
	return next
}

// WithActiveSet copies active vertex ids into a length-size bitset indexed
// by vid - min(srcOffset, dstOffset) (spec.md §4.4 withActiveSet).
func (p *EdgePartition[V, E]) WithActiveSet(ids func(yield func(VertexId) bool)) *EdgePartition[V, E] {
	next := p.shallowCopy()
	base := p.srcOffset
	if p.dstOffset < base {
		base = p.dstOffset
	}
	active := k2tree.NewBitset(p.tree.Size())
	for id := range ids {
		local := int(id - base)
		if local >= 0 && local < active.Len() {
			if err := active.Set(local); err != nil {
				panic(err)
			}
		}
	}
	next.activeSet = active
	return next
}

func (p *EdgePartition[V, E]) shallowCopy() *EdgePartition[V, E] {
	cp := *p
	return &cp
}
