package partition

import (
	"sort"

	"github.com/dataflowlabs/k2graph/k2tree"
)

// EdgeKey identifies an edge by its global endpoints, used by RemoveEdges.
type EdgeKey struct {
	Src VertexId
	Dst VertexId
}

// Map transforms every edge attribute with f, leaving the tree, vertex
// mapping and indexes unchanged (spec.md §4.4 map). A free function because
// it may change the attribute type parameter.
func Map[V, E, E2 any](p *EdgePartition[V, E], f func(Edge[E]) E2) *EdgePartition[V, E2] {
	newAttrs := make([]E2, len(p.attrs))
	i := 0
	for e := range p.Iterator() {
		newAttrs[i] = f(e)
		i++
	}
	return &EdgePartition[V, E2]{
		k:         p.k,
		tree:      p.tree,
		attrs:     newAttrs,
		vattrs:    p.vattrs,
		srcOffset: p.srcOffset,
		dstOffset: p.dstOffset,
		srcIndex:  p.srcIndex,
		dstIndex:  p.dstIndex,
		activeSet: p.activeSet,
	}
}

// MapIter replaces every edge attribute, one-for-one in tree order, with
// values supplied externally (spec.md §4.4 map, the iterator-driven form).
// It fails with a ShapeError if values doesn't have exactly Size() entries.
func MapIter[V, E, E2 any](p *EdgePartition[V, E], values []E2) (*EdgePartition[V, E2], error) {
	if len(values) != len(p.attrs) {
		return nil, &k2tree.ShapeError{Want: len(p.attrs), Got: len(values)}
	}
	newAttrs := make([]E2, len(values))
	copy(newAttrs, values)
	return &EdgePartition[V, E2]{
		k:         p.k,
		tree:      p.tree,
		attrs:     newAttrs,
		vattrs:    p.vattrs,
		srcOffset: p.srcOffset,
		dstOffset: p.dstOffset,
		srcIndex:  p.srcIndex,
		dstIndex:  p.dstIndex,
		activeSet: p.activeSet,
	}, nil
}

// Filter keeps only the edges that satisfy epred and whose endpoints both
// satisfy vpred, rebuilding the tree and indexes from scratch around the
// surviving edges (spec.md §4.4 filter).
func (p *EdgePartition[V, E]) Filter(epred func(Triplet[V, E]) bool, vpred func(VertexId, V) bool) *EdgePartition[V, E] {
	var kept []RawEdge[E]
	for t := range p.TripletIterator(true, true) {
		if !vpred(t.SrcId, t.SrcAttr) || !vpred(t.DstId, t.DstAttr) {
			continue
		}
		if !epred(t) {
			continue
		}
		kept = append(kept, RawEdge[E]{Src: t.SrcId, Dst: t.DstId, Attr: t.EdgeAttr})
	}

	next, err := Build[V, E](p.k, kept)
	if err != nil {
		panic(err)
	}
	next.vattrs = p.vattrs
	return next
}

// Reverse returns a new partition with every edge's (src, dst) swapped. The
// underlying tree is re-derived from the reversed-view Morton order (not
// just field-swapped in place), and the attribute array is re-paired to
// match it, since the transposed matrix's own sort order generally differs
// from the original (spec.md §4.2 Reverse, §9 "Polymorphism").
func (p *EdgePartition[V, E]) Reverse() *EdgePartition[V, E] {
	size := p.tree.Size()
	byCoord := make(map[int64]E, len(p.attrs))
	i := 0
	for e := range p.tree.All() {
		byCoord[int64(e.Line)*int64(size)+int64(e.Col)] = p.attrs[i]
		i++
	}

	reversed := p.tree.Reverse()
	builder, err := k2tree.NewBuilder(p.k, p.tree.Height())
	if err != nil {
		panic(err)
	}
	newAttrs := make([]E, 0, len(p.attrs))
	for e := range reversed.All() {
		// e is (origCol, origLine); look the attribute up by its original
		// (line, col) key before recording it under the new coordinates.
		newAttrs = append(newAttrs, byCoord[int64(e.Col)*int64(size)+int64(e.Line)])
		if _, err := builder.AddEdge(e.Line, e.Col); err != nil {
			panic(err)
		}
	}

	return &EdgePartition[V, E]{
		k:         p.k,
		tree:      builder.Build(),
		attrs:     newAttrs,
		vattrs:    p.vattrs,
		srcOffset: p.dstOffset,
		dstOffset: p.srcOffset,
		srcIndex:  p.dstIndex,
		dstIndex:  p.srcIndex,
		activeSet: p.activeSet,
	}
}

// AddEdges merges newEdges into the partition, growing the tree to cover any
// coordinates beyond its current extent (spec.md §4.4 addEdges). It fails
// with an ArgumentError if any new edge falls before the partition's
// existing origin, since shifting the origin backward isn't supported
// (spec.md §9 Open Question).
func (p *EdgePartition[V, E]) AddEdges(newEdges []RawEdge[E]) (*EdgePartition[V, E], error) {
	if len(newEdges) == 0 {
		return p, nil
	}

	newStartX, newStartY := newEdges[0].Src, newEdges[0].Dst
	newEndX, newEndY := newEdges[0].Src, newEdges[0].Dst
	for _, e := range newEdges[1:] {
		if e.Src < newStartX {
			newStartX = e.Src
		}
		if e.Src > newEndX {
			newEndX = e.Src
		}
		if e.Dst < newStartY {
			newStartY = e.Dst
		}
		if e.Dst > newEndY {
			newEndY = e.Dst
		}
	}

	if newStartX < p.srcOffset || newStartY < p.dstOffset {
		return nil, &k2tree.ArgumentError{Msg: "addEdges: new edges precede the partition's origin"}
	}

	curEndX := p.srcOffset + VertexId(p.tree.Size()) - 1
	curEndY := p.dstOffset + VertexId(p.tree.Size()) - 1
	combinedEndX, combinedEndY := curEndX, curEndY
	if newEndX > combinedEndX {
		combinedEndX = newEndX
	}
	if newEndY > combinedEndY {
		combinedEndY = newEndY
	}

	span := combinedEndX - p.srcOffset
	if d := combinedEndY - p.dstOffset; d > span {
		span = d
	}
	newSize := 1
	for newSize < int(span)+1 {
		newSize *= p.k
	}

	tree := p.tree
	if newSize > p.tree.Size() {
		grown, err := p.tree.Grow(newSize)
		if err != nil {
			return nil, err
		}
		tree = grown
	}

	builder := tree.ToBuilder()
	srcIndex := k2tree.NewBitset(tree.Size())
	dstIndex := k2tree.NewBitset(tree.Size())
	for _, pos := range p.srcIndex.Iterator() {
		if err := srcIndex.Set(pos); err != nil {
			return nil, err
		}
	}
	for _, pos := range p.dstIndex.Iterator() {
		if err := dstIndex.Set(pos); err != nil {
			return nil, err
		}
	}

	store := newOrderedAttrs[E](len(p.attrs) + len(newEdges))
	i := 0
	for e := range tree.All() {
		idx, err := builder.AddEdge(e.Line, e.Col)
		if err != nil {
			return nil, err
		}
		store.insert(idx, p.attrs[i])
		i++
	}
	for _, ne := range newEdges {
		line := int(ne.Src - p.srcOffset)
		col := int(ne.Dst - p.dstOffset)
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
		store.insert(idx, ne.Attr)
	}

	next := p.shallowCopy()
	next.tree = builder.Build()
	next.attrs = store.flatten()
	next.srcIndex = srcIndex
	next.dstIndex = dstIndex
	next.activeSet = nil
	return next, nil
}

// RemoveEdges drops the named edges, shrinking the tree and reindexing the
// surviving attributes (spec.md §4.4 removeEdges). Removing an edge that
// isn't present is a no-op for that pair. srcIndex/dstIndex are rebuilt from
// the surviving edges, so a row or column stays marked while any edge in it
// remains.
func (p *EdgePartition[V, E]) RemoveEdges(pairs []EdgeKey) *EdgePartition[V, E] {
	size := p.tree.Size()
	working := make(map[int]E, len(p.attrs))
	i := 0
	for e := range p.tree.All() {
		working[e.Line*size+e.Col] = p.attrs[i]
		i++
	}

	builder := p.tree.ToBuilder()
	srcIndex := k2tree.NewBitset(size)
	dstIndex := k2tree.NewBitset(size)

	for _, pr := range pairs {
		line := int(pr.Src - p.srcOffset)
		col := int(pr.Dst - p.dstOffset)
		if line < 0 || line >= size || col < 0 || col >= size {
			continue
		}
		if err := builder.RemoveEdge(line, col); err != nil {
			panic(err)
		}
		delete(working, line*size+col)
	}

	tree := builder.Build()
	attrs := make([]E, 0, len(working))
	for e := range tree.All() {
		attrs = append(attrs, working[e.Line*size+e.Col])
		if err := srcIndex.Set(e.Line); err != nil {
			panic(err)
		}
		if err := dstIndex.Set(e.Col); err != nil {
			panic(err)
		}
	}

	next := p.shallowCopy()
	next.tree = tree
	next.attrs = attrs
	next.srcIndex = srcIndex
	next.dstIndex = dstIndex
	return next
}

// InnerJoin merges two partitions sharing a vertex space, keeping only
// edges present in both and combining their attributes with f. The two
// partitions are converted to global-coordinate edge lists, sorted
// lexicographically, and merge-walked (spec.md §4.4 innerJoin, grounded on
// the teacher's overlaps.go merge walk). A free function because it
// combines two attribute type parameters into a third.
func InnerJoin[V, E1, E2, E3 any](p1 *EdgePartition[V, E1], p2 *EdgePartition[V, E2], f func(src, dst VertexId, a1 E1, a2 E2) E3) *EdgePartition[V, E3] {
	type joinEdge1 struct {
		src, dst VertexId
		attr     E1
	}
	type joinEdge2 struct {
		src, dst VertexId
		attr     E2
	}

	list1 := make([]joinEdge1, 0, len(p1.attrs))
	i := 0
	for e := range p1.tree.All() {
		list1 = append(list1, joinEdge1{src: VertexId(e.Line) + p1.srcOffset, dst: VertexId(e.Col) + p1.dstOffset, attr: p1.attrs[i]})
		i++
	}
	list2 := make([]joinEdge2, 0, len(p2.attrs))
	j := 0
	for e := range p2.tree.All() {
		list2 = append(list2, joinEdge2{src: VertexId(e.Line) + p2.srcOffset, dst: VertexId(e.Col) + p2.dstOffset, attr: p2.attrs[j]})
		j++
	}

	sort.Slice(list1, func(a, b int) bool {
		if list1[a].src != list1[b].src {
			return list1[a].src < list1[b].src
		}
		return list1[a].dst < list1[b].dst
	})
	sort.Slice(list2, func(a, b int) bool {
		if list2[a].src != list2[b].src {
			return list2[a].src < list2[b].src
		}
		return list2[a].dst < list2[b].dst
	})

	var joined []RawEdge[E3]
	a, b := 0, 0
	for a < len(list1) && b < len(list2) {
		ea, eb := list1[a], list2[b]
		switch {
		case ea.src < eb.src || (ea.src == eb.src && ea.dst < eb.dst):
			a++
		case eb.src < ea.src || (eb.src == ea.src && eb.dst < ea.dst):
			b++
		default:
			joined = append(joined, RawEdge[E3]{Src: ea.src, Dst: ea.dst, Attr: f(ea.src, ea.dst, ea.attr, eb.attr)})
			a++
			b++
		}
	}

	result, err := Build[V, E3](p1.k, joined)
	if err != nil {
		panic(err)
	}
	result.vattrs = p1.vattrs
	return result
}
