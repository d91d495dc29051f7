// Package k2tree implements the K²-tree: a compressed quadtree bitmap
// encoding of a sparse N×N boolean adjacency matrix, together with the
// mutable builder used to construct and mutate it.
//
// This is a simplified, fixed-length bitset tailored to K²-tree's needs
// (dense, word-packed, range popcount) rather than a general-purpose
// auto-growing bitset.
package k2tree

import "math/bits"

const wordSize = 64

// Bitset is a dense, fixed-length, word-packed bit array. Unlike the
// sparse/auto-extending bitsets used elsewhere in the corpus, a Bitset here
// has a fixed logical length fixed at construction and every operation
// bounds-checks against it, per spec §4.1 ("Out-of-range indices fail with
// IndexError").
type Bitset struct {
	words  []uint64
	length int
}

// NewBitset allocates a Bitset of the given logical length, all bits unset.
func NewBitset(length int) *Bitset {
	if length < 0 {
		length = 0
	}
	return &Bitset{
		words:  make([]uint64, wordsNeeded(length)),
		length: length,
	}
}

func wordsNeeded(length int) int {
	return (length + wordSize - 1) / wordSize
}

// Len returns the bitset's logical length.
func (b *Bitset) Len() int { return b.length }

func (b *Bitset) checkRange(i int) error {
	if i < 0 || i >= b.length {
		return &IndexError{Index: uint64(i), Bound: uint64(b.length)}
	}
	return nil
}

// Get reports whether bit i is set. Returns an IndexError if i is out of
// range.
func (b *Bitset) Get(i int) (bool, error) {
	if err := b.checkRange(i); err != nil {
		return false, err
	}
	return b.words[i/wordSize]&(1<<(uint(i)%wordSize)) != 0, nil
}

// Set sets bit i to 1.
func (b *Bitset) Set(i int) error {
	if err := b.checkRange(i); err != nil {
		return err
	}
	b.words[i/wordSize] |= 1 << (uint(i) % wordSize)
	return nil
}

// Unset sets bit i to 0.
func (b *Bitset) Unset(i int) error {
	if err := b.checkRange(i); err != nil {
		return err
	}
	b.words[i/wordSize] &^= 1 << (uint(i) % wordSize)
	return nil
}

// Count returns the popcount over the inclusive range [lo, hi].
// O((hi-lo)/64) via per-word popcount, never materializing a bit-by-bit
// loop over the full range.
func (b *Bitset) Count(lo, hi int) (int, error) {
	if lo > hi {
		return 0, nil
	}
	if err := b.checkRange(lo); err != nil {
		return 0, err
	}
	if err := b.checkRange(hi); err != nil {
		return 0, err
	}

	loWord, loBit := lo/wordSize, uint(lo)%wordSize
	hiWord, hiBit := hi/wordSize, uint(hi)%wordSize

	if loWord == hiWord {
		mask := (^uint64(0) << loBit) & (^uint64(0) >> (wordSize - 1 - hiBit))
		return bits.OnesCount64(b.words[loWord] & mask), nil
	}

	count := bits.OnesCount64(b.words[loWord] & (^uint64(0) << loBit))
	for w := loWord + 1; w < hiWord; w++ {
		count += bits.OnesCount64(b.words[w])
	}
	count += bits.OnesCount64(b.words[hiWord] & (^uint64(0) >> (wordSize - 1 - hiBit)))
	return count, nil
}

// Cardinality returns the total number of set bits.
func (b *Bitset) Cardinality() int {
	if b.length == 0 {
		return 0
	}
	n, err := b.Count(0, b.length-1)
	mustNotError(err)
	return n
}

// Iterator returns the ascending set positions of the bitset.
func (b *Bitset) Iterator() []int {
	out := make([]int, 0, b.Cardinality())
	for w, word := range b.words {
		for word != 0 {
			tz := bits.TrailingZeros64(word)
			pos := w*wordSize + tz
			if pos >= b.length {
				break
			}
			out = append(out, pos)
			word &= word - 1
		}
	}
	return out
}

// Clone returns an independent copy of the bitset.
func (b *Bitset) Clone() *Bitset {
	words := make([]uint64, len(b.words))
	copy(words, b.words)
	return &Bitset{words: words, length: b.length}
}
