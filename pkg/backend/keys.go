package backend

import "fmt"

// pageKey renders the store key for the page at off. Fixed width hex
// keeps keys sortable by offset.
func pageKey(prefix string, off int64) string {
	if prefix == "" {
		return fmt.Sprintf("%016x", off)
	}

	return prefix + "-" + fmt.Sprintf("%016x", off)
}

func zeroFill(p []byte) {
	for i := range p {
		p[i] = 0
	}
}
