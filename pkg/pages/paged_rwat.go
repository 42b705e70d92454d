package pages

import (
	"errors"
	"io"
)

var (
	ErrUnalignedOffset = errors.New("offset not page aligned")
	ErrNotOnePage      = errors.New("buffer must span exactly one page")
	ErrOutOfRange      = errors.New("offset beyond the page range")
)

// ReadWriterAt is the composite access interface the page wrappers
// build on.
type ReadWriterAt interface {
	io.ReaderAt
	io.WriterAt
}

// PagedReadWriterAt rejects any access that is not exactly one aligned
// page inside the configured range.
type PagedReadWriterAt struct {
	backend  ReadWriterAt
	pageSize int64
	pages    int64
}

func NewPagedReadWriterAt(
	backend ReadWriterAt,
	pageSize int64,
	pages int64,
) *PagedReadWriterAt {
	return &PagedReadWriterAt{
		backend:  backend,
		pageSize: pageSize,
		pages:    pages,
	}
}

func (p *PagedReadWriterAt) check(b []byte, off int64) error {
	if off%p.pageSize != 0 {
		return ErrUnalignedOffset
	}

	if int64(len(b)) != p.pageSize {
		return ErrNotOnePage
	}

	if off < 0 || off+p.pageSize > p.pageSize*p.pages {
		return ErrOutOfRange
	}

	return nil
}

func (p *PagedReadWriterAt) ReadAt(b []byte, off int64) (n int, err error) {
	if err := p.check(b, off); err != nil {
		return 0, err
	}

	return p.backend.ReadAt(b, off)
}

func (p *PagedReadWriterAt) WriteAt(b []byte, off int64) (n int, err error) {
	if err := p.check(b, off); err != nil {
		return 0, err
	}

	return p.backend.WriteAt(b, off)
}
