package backend

import (
	"github.com/lwiecaszek/pageread/pkg/pages"
	"github.com/rs/zerolog/log"
)

// ReaderAtBackend lifts a page access wrapper back into a store, with
// size and sync delegated to the underlying one.
type ReaderAtBackend struct {
	backend pages.ReadWriterAt

	size func() (int64, error)
	sync func() error

	verbose bool
}

func NewReaderAtBackend(
	backend pages.ReadWriterAt,

	size func() (int64, error),
	sync func() error,

	verbose bool,
) *ReaderAtBackend {
	return &ReaderAtBackend{
		backend,
		size,
		sync,
		verbose,
	}
}

func (b *ReaderAtBackend) ReadAt(p []byte, off int64) (n int, err error) {
	if b.verbose {
		log.Debug().Msgf("ReadAt(len(p) = %v, off = %v)", len(p), off)
	}

	return b.backend.ReadAt(p, off)
}

func (b *ReaderAtBackend) WriteAt(p []byte, off int64) (n int, err error) {
	if b.verbose {
		log.Debug().Msgf("WriteAt(len(p) = %v, off = %v)", len(p), off)
	}

	return b.backend.WriteAt(p, off)
}

func (b *ReaderAtBackend) Size() (int64, error) {
	if b.verbose {
		log.Debug().Msg("Size()")
	}

	return b.size()
}

func (b *ReaderAtBackend) Sync() error {
	if b.verbose {
		log.Debug().Msg("Sync()")
	}

	return b.sync()
}
