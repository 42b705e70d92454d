package backend

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// MemoryBackend keeps captured pages in a sparse offset-keyed map so a
// snapshot of a large region only allocates the pages written to it.
type MemoryBackend struct {
	pages map[int64][]byte
	size  int64
	lock  sync.Mutex

	verbose bool
}

func NewMemoryBackend(size int64, verbose bool) *MemoryBackend {
	return &MemoryBackend{
		pages: map[int64][]byte{},
		size:  size,

		verbose: verbose,
	}
}

func (b *MemoryBackend) ReadAt(p []byte, off int64) (n int, err error) {
	if b.verbose {
		log.Debug().Msgf("ReadAt(len(p) = %v, off = %v)", len(p), off)
	}

	b.lock.Lock()
	defer b.lock.Unlock()

	page, ok := b.pages[off]
	if !ok {
		zeroFill(p)

		return len(p), nil
	}

	n = copy(p, page)
	zeroFill(p[n:])

	return len(p), nil
}

func (b *MemoryBackend) WriteAt(p []byte, off int64) (n int, err error) {
	if b.verbose {
		log.Debug().Msgf("WriteAt(len(p) = %v, off = %v)", len(p), off)
	}

	b.lock.Lock()
	defer b.lock.Unlock()

	page := make([]byte, len(p))
	copy(page, p)
	b.pages[off] = page

	return len(p), nil
}

func (b *MemoryBackend) Size() (int64, error) {
	if b.verbose {
		log.Debug().Msg("Size()")
	}

	return b.size, nil
}

func (b *MemoryBackend) Sync() error {
	if b.verbose {
		log.Debug().Msg("Sync()")
	}

	return nil
}
