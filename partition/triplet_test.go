package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithoutVertexAttributesSharesTreeAndDropsVertexMap(t *testing.T) {
	edges := []RawEdge[int]{
		{Src: 0, Dst: 1, Attr: 10},
		{Src: 1, Dst: 2, Attr: 20},
	}
	p, err := Build[string, int](2, edges)
	require.NoError(t, err)
	p = p.UpdateVertices(func(yield func(VertexId, string) bool) {
		yield(0, "alice")
		yield(1, "bob")
		yield(2, "carol")
	})
	require.Len(t, p.vattrs, 3)

	stripped := WithoutVertexAttributes(p)

	require.Equal(t, p.Size(), stripped.Size())
	assert.Same(t, p.tree, stripped.tree)
	assert.Equal(t, p.attrs, stripped.attrs)
	assert.Same(t, p.srcIndex, stripped.srcIndex)
	assert.Same(t, p.dstIndex, stripped.dstIndex)
	assert.Empty(t, stripped.vattrs)

	var got []Edge[int]
	for e := range stripped.Iterator() {
		got = append(got, e)
	}
	assert.Len(t, got, len(edges))

	for tr := range stripped.TripletIterator(true, true) {
		assert.Equal(t, emptyVertexAttr{}, tr.SrcAttr)
		assert.Equal(t, emptyVertexAttr{}, tr.DstAttr)
	}
}
