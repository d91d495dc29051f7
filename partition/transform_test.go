package partition

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diagonalEdges(n int) []RawEdge[int] {
	edges := make([]RawEdge[int], n)
	for i := 0; i < n; i++ {
		edges[i] = RawEdge[int]{Src: VertexId(i), Dst: VertexId(i), Attr: i}
	}
	return edges
}

func TestMapTransformsAttributesInTreeOrder(t *testing.T) {
	p, err := Build[struct{}, int](2, diagonalEdges(10))
	require.NoError(t, err)

	mapped := Map[struct{}, int, string](p, func(e Edge[int]) string {
		if e.Attr%2 == 0 {
			return "even"
		}
		return "odd"
	})

	require.Equal(t, p.Size(), mapped.Size())
	for e := range mapped.Iterator() {
		want := "odd"
		if e.Src%2 == 0 {
			want = "even"
		}
		assert.Equal(t, want, e.Attr)
	}
}

func TestMapIterRejectsShapeMismatch(t *testing.T) {
	p, err := Build[struct{}, int](2, diagonalEdges(5))
	require.NoError(t, err)

	_, err = MapIter[struct{}, int, string](p, []string{"a", "b"})
	require.Error(t, err)
}

func TestMapIterReplacesAttrsPositionally(t *testing.T) {
	p, err := Build[struct{}, int](2, diagonalEdges(4))
	require.NoError(t, err)

	values := make([]string, p.Size())
	for i := range values {
		values[i] = "x"
	}
	mapped, err := MapIter[struct{}, int, string](p, values)
	require.NoError(t, err)
	for e := range mapped.Iterator() {
		assert.Equal(t, "x", e.Attr)
	}
}

func TestFilterKeepsOnlyMatchingEdges(t *testing.T) {
	edges := []RawEdge[int]{
		{Src: 0, Dst: 1, Attr: 10},
		{Src: 1, Dst: 2, Attr: 20},
		{Src: 2, Dst: 3, Attr: 30},
	}
	p, err := Build[struct{}, int](2, edges)
	require.NoError(t, err)

	filtered := p.Filter(
		func(t Triplet[struct{}, int]) bool { return t.EdgeAttr >= 20 },
		func(VertexId, struct{}) bool { return true },
	)

	var got []int
	for e := range filtered.Iterator() {
		got = append(got, e.Attr)
	}
	sort.Ints(got)
	assert.Equal(t, []int{20, 30}, got)
}

func TestReverseSwapsEndpointsAndRepairsAttributes(t *testing.T) {
	edges := []RawEdge[int]{
		{Src: 0, Dst: 1, Attr: 1},
		{Src: 1, Dst: 2, Attr: 2},
		{Src: 2, Dst: 0, Attr: 3},
	}
	p, err := Build[struct{}, int](2, edges)
	require.NoError(t, err)

	rev := p.Reverse()
	require.Equal(t, p.Size(), rev.Size())

	want := map[[2]VertexId]int{
		{1, 0}: 1,
		{2, 1}: 2,
		{0, 2}: 3,
	}
	got := map[[2]VertexId]int{}
	for e := range rev.Iterator() {
		got[[2]VertexId{e.Src, e.Dst}] = e.Attr
	}
	assert.Equal(t, want, got)
}

func TestAddEdgesGrowsAndPreservesExistingAttributes(t *testing.T) {
	p, err := Build[struct{}, int](2, diagonalEdges(4))
	require.NoError(t, err)

	grown, err := p.AddEdges([]RawEdge[int]{{Src: 20, Dst: 21, Attr: 99}})
	require.NoError(t, err)
	assert.Equal(t, p.Size()+1, grown.Size())

	found := map[[2]VertexId]int{}
	for e := range grown.Iterator() {
		found[[2]VertexId{e.Src, e.Dst}] = e.Attr
	}
	for i := 0; i < 4; i++ {
		assert.Equal(t, i, found[[2]VertexId{VertexId(i), VertexId(i)}])
	}
	assert.Equal(t, 99, found[[2]VertexId{20, 21}])
}

func TestAddEdgesBehindOriginFails(t *testing.T) {
	p, err := Build[struct{}, int](2, []RawEdge[int]{{Src: 10, Dst: 10, Attr: 1}})
	require.NoError(t, err)

	_, err = p.AddEdges([]RawEdge[int]{{Src: 0, Dst: 10, Attr: 2}})
	require.Error(t, err)
}

func TestRemoveEdgesDropsNamedPairsOnly(t *testing.T) {
	p, err := Build[struct{}, int](2, diagonalEdges(5))
	require.NoError(t, err)

	next := p.RemoveEdges([]EdgeKey{{Src: 1, Dst: 1}, {Src: 3, Dst: 3}})
	assert.Equal(t, p.Size()-2, next.Size())

	var remaining []VertexId
	for e := range next.Iterator() {
		remaining = append(remaining, e.Src)
	}
	sort.Slice(remaining, func(i, j int) bool { return remaining[i] < remaining[j] })
	assert.Equal(t, []VertexId{0, 2, 4}, remaining)
}

func TestRemoveEdgesNoopOnMissingPair(t *testing.T) {
	p, err := Build[struct{}, int](2, diagonalEdges(3))
	require.NoError(t, err)

	next := p.RemoveEdges([]EdgeKey{{Src: 100, Dst: 100}})
	assert.Equal(t, p.Size(), next.Size())
}

func TestAddThenRemoveIsInverse(t *testing.T) {
	p, err := Build[struct{}, int](2, diagonalEdges(4))
	require.NoError(t, err)

	added, err := p.AddEdges([]RawEdge[int]{{Src: 9, Dst: 9, Attr: 42}})
	require.NoError(t, err)
	back := added.RemoveEdges([]EdgeKey{{Src: 9, Dst: 9}})
	assert.Equal(t, p.Size(), back.Size())
}

func TestInnerJoinKeepsOnlySharedEdges(t *testing.T) {
	left, err := Build[struct{}, int](2, []RawEdge[int]{
		{Src: 0, Dst: 1, Attr: 1},
		{Src: 1, Dst: 2, Attr: 2},
		{Src: 2, Dst: 3, Attr: 3},
	})
	require.NoError(t, err)
	right, err := Build[struct{}, int](2, []RawEdge[int]{
		{Src: 1, Dst: 2, Attr: 100},
		{Src: 2, Dst: 3, Attr: 200},
		{Src: 5, Dst: 6, Attr: 300},
	})
	require.NoError(t, err)

	joined := InnerJoin[struct{}, int, int, int](left, right, func(_, _ VertexId, a, b int) int {
		return a + b
	})

	assert.Equal(t, 2, joined.Size())
	sums := map[[2]VertexId]int{}
	for e := range joined.Iterator() {
		sums[[2]VertexId{e.Src, e.Dst}] = e.Attr
	}
	assert.Equal(t, 102, sums[[2]VertexId{1, 2}])
	assert.Equal(t, 203, sums[[2]VertexId{2, 3}])
}
