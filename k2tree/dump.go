package k2tree

import (
	"fmt"
	"io"
	"strings"
)

// ##################################################
//  useful during development, debugging and testing
// ##################################################

// DumpString is a wrapper for Dump, returning the structure as a string.
func (t *K2Tree) DumpString() string {
	w := new(strings.Builder)
	t.Dump(w)
	return w.String()
}

// Dump writes a human-readable description of the tree to w: its parameters
// and section counts, then each level's dense offset and size. The bit
// contents themselves are not printed.
func (t *K2Tree) Dump(w io.Writer) {
	if t == nil {
		return
	}

	fmt.Fprintf(w, "k2tree: k=%d size=%d height=%d internalCount=%d leavesCount=%d\n",
		t.k, t.size, t.height, t.internalCount, t.leavesCount)

	off := offsets(t.k, t.height)
	for level := 1; level <= t.height; level++ {
		section := "internal"
		if level == t.height {
			section = "leaves"
		}
		fmt.Fprintf(w, "  level %d (%s) dense-offset=%d size=%d\n", level, section, off[level], levelSize(t.k, level))
	}
}
