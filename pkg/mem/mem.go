package mem

import (
	"golang.org/x/exp/constraints"
)

const (
	// PageSize is the translation granularity; mapped offsets and sizes
	// are multiples of it.
	PageSize = 4096
	PageMask = PageSize - 1

	DefaultDevicePath = "/dev/mem"
)

func AlignDown[I constraints.Integer](v, align I) I {
	return v &^ (align - 1)
}

func AlignUp[I constraints.Integer](v, align I) I {
	return (v + align - 1) &^ (align - 1)
}

// Aligned reports whether addr falls on a page boundary.
func Aligned(addr uint64) bool {
	return addr&PageMask == 0
}
