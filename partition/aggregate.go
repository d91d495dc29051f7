package partition

import "github.com/dataflowlabs/k2graph/k2tree"

// Activeness selects which endpoint(s) of an edge must be in the active set
// for the edge to participate in a message-aggregation scan (spec.md §4.4
// "activeness predicates").
type Activeness int

const (
	ActivenessNeither Activeness = iota
	ActivenessSrcOnly
	ActivenessDstOnly
	ActivenessBoth
	ActivenessEither
)

// isActiveVertex reports whether id is a member of the partition's active
// set. A partition with no active set considers every vertex inactive.
func (p *EdgePartition[V, E]) isActiveVertex(id VertexId) bool {
	if p.activeSet == nil {
		return false
	}
	base := p.srcOffset
	if p.dstOffset < base {
		base = p.dstOffset
	}
	local := int(id - base)
	if local < 0 || local >= p.activeSet.Len() {
		return false
	}
	set, err := p.activeSet.Get(local)
	if err != nil {
		panic(err)
	}
	return set
}

// edgeActive applies mode's activeness predicate to an edge's endpoints.
func (p *EdgePartition[V, E]) edgeActive(src, dst VertexId, mode Activeness) bool {
	switch mode {
	case ActivenessSrcOnly:
		return p.isActiveVertex(src)
	case ActivenessDstOnly:
		return p.isActiveVertex(dst)
	case ActivenessBoth:
		return p.isActiveVertex(src) && p.isActiveVertex(dst)
	case ActivenessEither:
		return p.isActiveVertex(src) || p.isActiveVertex(dst)
	default: // ActivenessNeither
		return true
	}
}

// aggregator accumulates per-vertex messages, merging same-vertex sends
// with mergeMsg (spec.md §4.4 "mergeMsg").
type aggregator[A any] struct {
	merge func(A, A) A
	vals  map[VertexId]A
	has   map[VertexId]bool
}

func newAggregator[A any](merge func(A, A) A) *aggregator[A] {
	return &aggregator[A]{merge: merge, vals: make(map[VertexId]A), has: make(map[VertexId]bool)}
}

func (g *aggregator[A]) send(id VertexId, a A) {
	if g.has[id] {
		g.vals[id] = g.merge(g.vals[id], a)
		return
	}
	g.vals[id] = a
	g.has[id] = true
}

// Iterator yields every vertex that received at least one message, paired
// with its merged value.
func (g *aggregator[A]) Iterator() func(yield func(VertexId, A) bool) {
	return func(yield func(VertexId, A) bool) {
		for id, v := range g.vals {
			if !yield(id, v) {
				return
			}
		}
	}
}

// EdgeContext is passed to sendMsg for each scanned edge; it carries the
// edge's triplet and lets the caller address messages to either endpoint
// (spec.md §4.4 AggregatingEdgeContext: "sendToSrc(A), sendToDst(A)").
type EdgeContext[V, E, A any] struct {
	Triplet Triplet[V, E]
	agg     *aggregator[A]
}

// SendToSrc queues a message for this edge's source vertex.
func (c *EdgeContext[V, E, A]) SendToSrc(a A) { c.agg.send(c.Triplet.SrcId, a) }

// SendToDst queues a message for this edge's destination vertex.
func (c *EdgeContext[V, E, A]) SendToDst(a A) { c.agg.send(c.Triplet.DstId, a) }

// AggregateMessagesEdgeScan runs sendMsg over every edge satisfying
// activeness, aggregating the results of SendToSrc/SendToDst calls with
// mergeMsg, in a full linear scan of the edge array (spec.md §4.4
// aggregateMessagesEdgeScan). A free function because it introduces the
// message type parameter A, which the partition itself doesn't carry.
func AggregateMessagesEdgeScan[V, E, A any](
	p *EdgePartition[V, E],
	sendMsg func(*EdgeContext[V, E, A]),
	mergeMsg func(A, A) A,
	includeSrc, includeDst bool,
	activeness Activeness,
) func(yield func(VertexId, A) bool) {
	agg := newAggregator(mergeMsg)
	for t := range p.TripletIterator(includeSrc, includeDst) {
		if !p.edgeActive(t.SrcId, t.DstId, activeness) {
			continue
		}
		sendMsg(&EdgeContext[V, E, A]{Triplet: t, agg: agg})
	}
	return agg.Iterator()
}

// buildIndexMap pairs every edge's local (line, col) with its attribute, for
// the restricted row/column scans below which walk the tree rather than the
// attrs array directly.
func buildIndexMap[V, E any](p *EdgePartition[V, E]) map[int64]E {
	m := make(map[int64]E, len(p.attrs))
	h := p.tree.Height()
	i := 0
	for e := range p.tree.All() {
		m[k2tree.TreeIndex(p.k, h, e.Line, e.Col)] = p.attrs[i]
		i++
	}
	return m
}

func (p *EdgePartition[V, E]) vertexAttrOrZero(id VertexId, include bool) V {
	var v V
	if include {
		v = p.vattrs[id]
	}
	return v
}

// AggregateMessagesSrcIndexScan is AggregateMessagesEdgeScan restricted to
// rows present in the partition's srcIndex: it walks the tree one occupied
// source row at a time via K2Tree.Row instead of enumerating every edge, and
// applies activeness to each edge found (spec.md §4.4
// aggregateMessagesSrcIndexScan).
func AggregateMessagesSrcIndexScan[V, E, A any](
	p *EdgePartition[V, E],
	sendMsg func(*EdgeContext[V, E, A]),
	mergeMsg func(A, A) A,
	includeSrc, includeDst bool,
	activeness Activeness,
) func(yield func(VertexId, A) bool) {
	agg := newAggregator(mergeMsg)
	h := p.tree.Height()
	idxMap := buildIndexMap(p)

	for _, line := range p.srcIndex.Iterator() {
		srcId := VertexId(line) + p.srcOffset
		for col := range p.tree.Row(line) {
			dstId := VertexId(col) + p.dstOffset
			if !p.edgeActive(srcId, dstId, activeness) {
				continue
			}
			attr := idxMap[k2tree.TreeIndex(p.k, h, line, col)]
			t := Triplet[V, E]{
				SrcId:    srcId,
				SrcAttr:  p.vertexAttrOrZero(srcId, includeSrc),
				DstId:    dstId,
				DstAttr:  p.vertexAttrOrZero(dstId, includeDst),
				EdgeAttr: attr,
			}
			sendMsg(&EdgeContext[V, E, A]{Triplet: t, agg: agg})
		}
	}
	return agg.Iterator()
}

// AggregateMessagesDstIndexScan is the column-restricted counterpart of
// AggregateMessagesSrcIndexScan, walking one occupied destination column at a
// time via K2Tree.Col (spec.md §4.4 aggregateMessagesDstIndexScan).
func AggregateMessagesDstIndexScan[V, E, A any](
	p *EdgePartition[V, E],
	sendMsg func(*EdgeContext[V, E, A]),
	mergeMsg func(A, A) A,
	includeSrc, includeDst bool,
	activeness Activeness,
) func(yield func(VertexId, A) bool) {
	agg := newAggregator(mergeMsg)
	h := p.tree.Height()
	idxMap := buildIndexMap(p)

	for _, col := range p.dstIndex.Iterator() {
		dstId := VertexId(col) + p.dstOffset
		for line := range p.tree.Col(col) {
			srcId := VertexId(line) + p.srcOffset
			if !p.edgeActive(srcId, dstId, activeness) {
				continue
			}
			attr := idxMap[k2tree.TreeIndex(p.k, h, line, col)]
			t := Triplet[V, E]{
				SrcId:    srcId,
				SrcAttr:  p.vertexAttrOrZero(srcId, includeSrc),
				DstId:    dstId,
				DstAttr:  p.vertexAttrOrZero(dstId, includeDst),
				EdgeAttr: attr,
			}
			sendMsg(&EdgeContext[V, E, A]{Triplet: t, agg: agg})
		}
	}
	return agg.Iterator()
}
