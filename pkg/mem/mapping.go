package mem

import (
	"errors"
	"io"
	"unsafe"

	"github.com/edsrzf/mmap-go"
)

var (
	ErrUnmapped   = errors.New("mapping already unmapped")
	ErrOutOfRange = errors.New("offset out of mapped range")
)

// Mapping is a read-only view of a mapped device region. Every access
// is bounds-checked; reads past the mapped range fail instead of
// faulting.
type Mapping struct {
	slice mmap.MMap
}

func (m *Mapping) Size() int64 {
	return int64(len(m.slice))
}

// Addr returns the base address of the mapping for diagnostics. It is
// only valid until Unmap.
func (m *Mapping) Addr() uintptr {
	if m.slice == nil {
		return 0
	}

	return uintptr(unsafe.Pointer(&m.slice[0]))
}

func (m *Mapping) ByteAt(off int64) (byte, error) {
	if m.slice == nil {
		return 0, ErrUnmapped
	}

	if off < 0 || off >= int64(len(m.slice)) {
		return 0, ErrOutOfRange
	}

	return m.slice[off], nil
}

func (m *Mapping) ReadAt(p []byte, off int64) (n int, err error) {
	if m.slice == nil {
		return 0, ErrUnmapped
	}

	if off < 0 || off > int64(len(m.slice)) {
		return 0, ErrOutOfRange
	}

	n = copy(p, m.slice[off:])
	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

// Unmap releases the mapping. A second call is a no-op so a deferred
// Unmap can follow an explicit one.
func (m *Mapping) Unmap() error {
	if m.slice == nil {
		return nil
	}

	if err := m.slice.Unmap(); err != nil {
		return err
	}

	m.slice = nil

	return nil
}
