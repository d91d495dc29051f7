package k2tree

import (
	"errors"
	"math/rand"
	"testing"
)

func TestBitsetGetSetUnset(t *testing.T) {
	b := NewBitset(200)
	for _, i := range []int{0, 1, 63, 64, 65, 127, 199} {
		set, err := b.Get(i)
		if err != nil {
			t.Fatalf("Get(%d): %v", i, err)
		}
		if set {
			t.Fatalf("bit %d should start unset", i)
		}
		if err := b.Set(i); err != nil {
			t.Fatalf("Set(%d): %v", i, err)
		}
		set, err = b.Get(i)
		if err != nil {
			t.Fatalf("Get(%d): %v", i, err)
		}
		if !set {
			t.Fatalf("bit %d should be set after Set", i)
		}
	}
	if err := b.Unset(64); err != nil {
		t.Fatalf("Unset(64): %v", err)
	}
	if set, _ := b.Get(64); set {
		t.Fatal("bit 64 should be unset after Unset")
	}
	set63, _ := b.Get(63)
	set65, _ := b.Get(65)
	if !set63 || !set65 {
		t.Fatal("Unset(64) must not affect neighbors")
	}
}

func TestBitsetOutOfRangeReturnsIndexError(t *testing.T) {
	b := NewBitset(10)
	for _, i := range []int{-1, 10, 1000} {
		if _, err := b.Get(i); err == nil {
			t.Fatalf("Get(%d) should return an error", i)
		} else {
			var idxErr *IndexError
			if !errors.As(err, &idxErr) {
				t.Fatalf("Get(%d) returned %v (%T), want *IndexError", i, err, err)
			}
		}
		if err := b.Set(i); err == nil {
			t.Fatalf("Set(%d) should return an error", i)
		} else {
			var idxErr *IndexError
			if !errors.As(err, &idxErr) {
				t.Fatalf("Set(%d) returned %v (%T), want *IndexError", i, err, err)
			}
		}
		if err := b.Unset(i); err == nil {
			t.Fatalf("Unset(%d) should return an error", i)
		} else {
			var idxErr *IndexError
			if !errors.As(err, &idxErr) {
				t.Fatalf("Unset(%d) returned %v (%T), want *IndexError", i, err, err)
			}
		}
		if _, err := b.Count(i, i); err == nil {
			t.Fatalf("Count(%d,%d) should return an error", i, i)
		} else {
			var idxErr *IndexError
			if !errors.As(err, &idxErr) {
				t.Fatalf("Count(%d,%d) returned %v (%T), want *IndexError", i, i, err, err)
			}
		}
	}
}

func TestBitsetCountMatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := 500
	b := NewBitset(n)
	want := make([]bool, n)
	for i := 0; i < n; i++ {
		if rng.Intn(3) == 0 {
			if err := b.Set(i); err != nil {
				t.Fatalf("Set(%d): %v", i, err)
			}
			want[i] = true
		}
	}

	for trial := 0; trial < 200; trial++ {
		lo := rng.Intn(n)
		hi := lo + rng.Intn(n-lo)

		naive := 0
		for i := lo; i <= hi; i++ {
			if want[i] {
				naive++
			}
		}
		got, err := b.Count(lo, hi)
		if err != nil {
			t.Fatalf("Count(%d,%d): %v", lo, hi, err)
		}
		if got != naive {
			t.Fatalf("Count(%d,%d) = %d, want %d", lo, hi, got, naive)
		}
	}

	full := 0
	for _, v := range want {
		if v {
			full++
		}
	}
	if got := b.Cardinality(); got != full {
		t.Fatalf("Cardinality() = %d, want %d", got, full)
	}
}

func TestBitsetIterator(t *testing.T) {
	b := NewBitset(70)
	set := []int{0, 5, 33, 64, 69}
	for _, i := range set {
		if err := b.Set(i); err != nil {
			t.Fatalf("Set(%d): %v", i, err)
		}
	}
	got := b.Iterator()
	if len(got) != len(set) {
		t.Fatalf("Iterator() len = %d, want %d", len(got), len(set))
	}
	for i, v := range set {
		if got[i] != v {
			t.Fatalf("Iterator()[%d] = %d, want %d", i, got[i], v)
		}
	}
}

func TestBitsetClone(t *testing.T) {
	b := NewBitset(10)
	if err := b.Set(3); err != nil {
		t.Fatalf("Set(3): %v", err)
	}
	c := b.Clone()
	if err := c.Set(4); err != nil {
		t.Fatalf("Set(4): %v", err)
	}
	if bit, _ := b.Get(4); bit {
		t.Fatal("Clone must be independent of the original")
	}
	if bit, _ := c.Get(3); !bit {
		t.Fatal("Clone must preserve already-set bits")
	}
}
