package k2tree

// Builder is the mutable, dense, uncompressed intermediate form of a
// K²-tree (spec §4.3). It is allocated once for the full Σk^(2i) dense
// bitmap and is only ever transient between mutations and build().
type Builder struct {
	k      int
	size   int // N, the matrix side (power of k)
	height int // h
	bits   *Bitset
	offs   []int // offs[1..height], level start offsets into bits
}

// NewBuilder allocates a dense builder for an N×N matrix with N = k^height.
// Returns an ArgumentError if k < 2.
func NewBuilder(k, height int) (*Builder, error) {
	if k < 2 {
		return nil, &ArgumentError{Msg: "k must be >= 2"}
	}
	if height < 1 {
		height = 1
	}
	return &Builder{
		k:      k,
		size:   ipow(k, height),
		height: height,
		bits:   NewBitset(totalDenseBits(k, height)),
		offs:   offsets(k, height),
	}, nil
}

// EmptyTree returns the (minimal, single-level) tree for an edgeless
// partition with branching parameter k. Callers are expected to have already
// validated k (e.g. via partition.Build's own k < 2 check); an invalid k here
// is treated as a bug in the caller, not a recoverable input error.
func EmptyTree(k int) *K2Tree {
	b, err := NewBuilder(k, 1)
	mustNotError(err)
	return b.Build()
}

// K returns the branching parameter.
func (b *Builder) K() int { return b.k }

// Size returns the matrix side N.
func (b *Builder) Size() int { return b.size }

// Height returns h, where size = k^h.
func (b *Builder) Height() int { return b.height }

func (b *Builder) checkCoord(line, col int) error {
	if line < 0 || line >= b.size {
		return &IndexError{Index: uint64(line), Bound: uint64(b.size)}
	}
	if col < 0 || col >= b.size {
		return &IndexError{Index: uint64(col), Bound: uint64(b.size)}
	}
	return nil
}

// AddEdge sets the leaf bit for (line, col) and every unset ancestor along
// its root path, stopping the ascent as soon as an already-set ancestor is
// found (its own ancestors are then guaranteed set too). Returns the edge's
// stable K2TreeIndex; idempotent if the edge is already present. Returns an
// IndexError if (line, col) falls outside [0, size).
func (b *Builder) AddEdge(line, col int) (int64, error) {
	if err := b.checkCoord(line, col); err != nil {
		return 0, err
	}
	path := mortonPath(b.k, b.height, line, col)
	idx := int64(positionAtLevel(b.k, path, b.height))

	leafPos := b.offs[b.height] + positionAtLevel(b.k, path, b.height)
	set, err := b.bits.Get(leafPos)
	mustNotError(err)
	if set {
		return idx, nil
	}
	mustNotError(b.bits.Set(leafPos))

	for level := b.height - 1; level >= 1; level-- {
		pos := b.offs[level] + positionAtLevel(b.k, path, level)
		set, err := b.bits.Get(pos)
		mustNotError(err)
		if set {
			break
		}
		mustNotError(b.bits.Set(pos))
	}
	return idx, nil
}

// RemoveEdge unsets the leaf bit for (line, col) and ascends, unsetting any
// ancestor whose k² child block becomes entirely zero. A no-op if the edge
// isn't present. Returns an IndexError if (line, col) falls outside
// [0, size).
func (b *Builder) RemoveEdge(line, col int) error {
	if err := b.checkCoord(line, col); err != nil {
		return err
	}
	path := mortonPath(b.k, b.height, line, col)

	leafPos := b.offs[b.height] + positionAtLevel(b.k, path, b.height)
	set, err := b.bits.Get(leafPos)
	mustNotError(err)
	if !set {
		return nil
	}
	mustNotError(b.bits.Unset(leafPos))

	kk := b.k * b.k
	for level := b.height - 1; level >= 1; level-- {
		parentPos := positionAtLevel(b.k, path, level)
		blockStart := b.offs[level+1] + parentPos*kk
		count, err := b.bits.Count(blockStart, blockStart+kk-1)
		mustNotError(err)
		if count > 0 {
			break
		}
		mustNotError(b.bits.Unset(b.offs[level] + parentPos))
	}
	return nil
}

// Build compresses the dense bitmap by dropping every all-zero k²-block,
// concatenating survivors, per spec §4.2 step 3. Blocks from levels < h
// form the internal section; blocks from level h form the leaves section.
func (b *Builder) Build() *K2Tree {
	kk := b.k * b.k

	var internal, leaves []bool
	for level := 1; level <= b.height; level++ {
		start := b.offs[level]
		size := levelSize(b.k, level)
		dst := &internal
		if level == b.height {
			dst = &leaves
		}
		for blockStart := start; blockStart < start+size; blockStart += kk {
			count, err := b.bits.Count(blockStart, blockStart+kk-1)
			mustNotError(err)
			if count == 0 {
				continue
			}
			for i := 0; i < kk; i++ {
				set, err := b.bits.Get(blockStart + i)
				mustNotError(err)
				*dst = append(*dst, set)
			}
		}
	}

	compressed := NewBitset(len(internal) + len(leaves))
	for i, v := range internal {
		if v {
			mustNotError(compressed.Set(i))
		}
	}
	for i, v := range leaves {
		if v {
			mustNotError(compressed.Set(len(internal) + i))
		}
	}

	return &K2Tree{
		k:             b.k,
		size:          b.size,
		height:        b.height,
		internalCount: len(internal),
		leavesCount:   len(leaves),
		bits:          compressed,
	}
}
