package k2tree

// Level numbering convention used throughout this package: level 0 is the
// root and is never materialized (it is always conceptually "set" — the
// iterator starts from a virtual position -1, per spec §4.2). Levels 1..h
// are stored in the flat bitmap, level h being the leaf level (one bit per
// matrix cell). offsets()/levelSize() only ever address levels 1..h.

// smallestPow returns the smallest h such that k^h >= n, for k >= 2, n >= 1.
func smallestPow(k, n int) int {
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

// isPowerOf reports whether n is an exact non-negative integer power of k (k>=2).
func isPowerOf(k, n int) bool {
	if n < 1 {
		return false
	}
	for n > 1 {
		if n%k != 0 {
			return false
		}
		n /= k
	}
	return true
}

// levelSize returns k^(2*level), the number of bits in the given stored level (1..h).
func levelSize(k, level int) int {
	return ipow(k, 2*level)
}

// offsets returns offsets[1..h], the starting flat-bitmap position of each
// stored level, per spec §4.2: offsets[1] = 0, offsets[i] = sum_{j=1}^{i-1} k^(2j).
func offsets(k, h int) []int {
	off := make([]int, h+1) // 1-indexed, off[0] unused
	acc := 0
	for lvl := 1; lvl <= h; lvl++ {
		off[lvl] = acc
		acc += levelSize(k, lvl)
	}
	return off
}

// totalDenseBits returns the length of the dense uncompressed builder
// bitmap for levels 1..h (spec §4.3: "dense bits of length Σ k^(2i)").
func totalDenseBits(k, h int) int {
	total := 0
	for lvl := 1; lvl <= h; lvl++ {
		total += levelSize(k, lvl)
	}
	return total
}

func ipow(base, exp int) int {
	result := 1
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}

// mortonPath returns the per-level local Morton codes for (line, col) from
// level 1 (coarsest, child-of-root) to level h (finest, leaf), each code in
// [0, k^2). path[L-1] is the code at level L.
func mortonPath(k, h, line, col int) []int {
	path := make([]int, h)
	for level := 1; level <= h; level++ {
		m := h - level // steps up from the leaf level
		div := ipow(k, m)
		rowAtLevel := line / div
		colAtLevel := col / div
		path[level-1] = (rowAtLevel%k)*k + (colAtLevel % k)
	}
	return path
}

// positionAtLevel returns the flat-level-local index addressed by path[0:level]
// read as a base-k^2 integer — the K2TreeIndex prefix at the given level
// (spec §9: "index = Σ_{level=1..h} k^(2(h-level)) · levelIndex(level)").
func positionAtLevel(k int, path []int, level int) int {
	pos := 0
	for j := 0; j < level; j++ {
		pos = pos*k*k + path[j]
	}
	return pos
}

// K2TreeIndex is the stable per-edge key equal to its position in the
// Morton-ordered enumeration: positionAtLevel at the full height.
func k2TreeIndex(k, h, line, col int) int64 {
	path := mortonPath(k, h, line, col)
	return int64(positionAtLevel(k, path, h))
}

// TreeIndex exports k2TreeIndex for callers outside this package that need
// to re-derive an edge's stable position from (line, col) alone, e.g. to
// pair an attribute back up with a restricted row/column scan.
func TreeIndex(k, h, line, col int) int64 {
	return k2TreeIndex(k, h, line, col)
}
