package partition

// Triplet bundles an edge with its endpoint vertex attributes (spec.md
// GLOSSARY "Triplet").
type Triplet[V, E any] struct {
	SrcId   VertexId
	SrcAttr V
	DstId   VertexId
	DstAttr V
	EdgeAttr E
}

// TripletIterator joins each edge with its src/dst vertex attributes from
// the partition's vertex mapping. includeSrc/includeDst control whether the
// corresponding attribute is looked up at all (the zero value of V is used
// when omitted), matching the "fields" flag threaded through the
// aggregation scans (spec.md §4.4).
func (p *EdgePartition[V, E]) TripletIterator(includeSrc, includeDst bool) func(yield func(Triplet[V, E]) bool) {
	return func(yield func(Triplet[V, E]) bool) {
		for e := range p.Iterator() {
			var srcAttr, dstAttr V
			if includeSrc {
				srcAttr = p.vattrs[e.Src]
			}
			if includeDst {
				dstAttr = p.vattrs[e.Dst]
			}
			t := Triplet[V, E]{SrcId: e.Src, SrcAttr: srcAttr, DstId: e.Dst, DstAttr: dstAttr, EdgeAttr: e.Attr}
			if !yield(t) {
				return
			}
		}
	}
}

// emptyVertexAttr is the vertex-attribute type used by WithoutVertexAttributes.
type emptyVertexAttr struct{}

// WithoutVertexAttributes returns a partition sharing this one's tree and
// edge attributes but with the vertex mapping dropped, for callers that
// only need edge-level data (spec.md §6 withoutVertexAttributes). A free
// function, not a method, because it changes the V type parameter.
func WithoutVertexAttributes[V, E any](p *EdgePartition[V, E]) *EdgePartition[emptyVertexAttr, E] {
	return &EdgePartition[emptyVertexAttr, E]{
		k:         p.k,
		tree:      p.tree,
		attrs:     p.attrs,
		vattrs:    make(map[VertexId]emptyVertexAttr),
		srcOffset: p.srcOffset,
		dstOffset: p.dstOffset,
		srcIndex:  p.srcIndex,
		dstIndex:  p.dstIndex,
		activeSet: p.activeSet,
	}
}
