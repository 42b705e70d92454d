package pages

import "io"

// ArbitraryReadWriterAt adapts accesses of any offset and length onto a
// page-granular backend by reading and rewriting whole pages.
type ArbitraryReadWriterAt struct {
	backend  ReadWriterAt
	pageSize int64
}

func NewArbitraryReadWriterAt(
	backend ReadWriterAt,
	pageSize int64,
) *ArbitraryReadWriterAt {
	return &ArbitraryReadWriterAt{
		backend,
		pageSize,
	}
}

func (a *ArbitraryReadWriterAt) ReadAt(p []byte, off int64) (n int, err error) {
	buf := make([]byte, a.pageSize)

	for n < len(p) {
		alignedOffset := (off + int64(n)) / a.pageSize * a.pageSize
		pageOffset := (off + int64(n)) - alignedOffset

		if _, err := a.backend.ReadAt(buf, alignedOffset); err != nil {
			return n, err
		}

		n += copy(p[n:], buf[pageOffset:])
	}

	return n, nil
}

func (a *ArbitraryReadWriterAt) WriteAt(p []byte, off int64) (n int, err error) {
	buf := make([]byte, a.pageSize)

	for n < len(p) {
		alignedOffset := (off + int64(n)) / a.pageSize * a.pageSize
		pageOffset := (off + int64(n)) - alignedOffset

		todo := int64(len(p) - n)
		if max := a.pageSize - pageOffset; todo > max {
			todo = max
		}

		// Partial pages are patched in place
		if pageOffset > 0 || todo < a.pageSize {
			if _, err := a.backend.ReadAt(buf, alignedOffset); err != nil && err != io.EOF {
				return n, err
			}
		}

		copy(buf[pageOffset:pageOffset+todo], p[n:int64(n)+todo])

		if _, err := a.backend.WriteAt(buf, alignedOffset); err != nil {
			return n, err
		}

		n += int(todo)
	}

	return n, nil
}
