package backend

import (
	"github.com/gocql/gocql"
	"github.com/rs/zerolog/log"
)

// CassandraBackend stores each page as a blob row keyed by the prefixed
// hex offset; absent rows read back zero filled.
type CassandraBackend struct {
	session *gocql.Session
	table   string
	prefix  string
	size    int64

	verbose bool
}

func NewCassandraBackend(
	session *gocql.Session,
	table string,
	prefix string,
	size int64,
	verbose bool,
) *CassandraBackend {
	return &CassandraBackend{
		session: session,
		table:   table,
		prefix:  prefix,
		size:    size,

		verbose: verbose,
	}
}

func (b *CassandraBackend) ReadAt(p []byte, off int64) (n int, err error) {
	if b.verbose {
		log.Debug().Msgf("ReadAt(len(p) = %v, off = %v)", len(p), off)
	}

	var val []byte
	if err := b.session.Query(`select data from `+b.table+` where key = ? limit 1`, pageKey(b.prefix, off)).Scan(&val); err != nil {
		if err == gocql.ErrNotFound {
			zeroFill(p)

			return len(p), nil
		}

		return 0, err
	}

	n = copy(p, val)
	zeroFill(p[n:])

	return len(p), nil
}

func (b *CassandraBackend) WriteAt(p []byte, off int64) (n int, err error) {
	if b.verbose {
		log.Debug().Msgf("WriteAt(len(p) = %v, off = %v)", len(p), off)
	}

	if err := b.session.Query(`insert into `+b.table+` (key, data) values (?, ?)`, pageKey(b.prefix, off), p).Exec(); err != nil {
		return 0, err
	}

	return len(p), nil
}

func (b *CassandraBackend) Size() (int64, error) {
	if b.verbose {
		log.Debug().Msg("Size()")
	}

	return b.size, nil
}

func (b *CassandraBackend) Sync() error {
	if b.verbose {
		log.Debug().Msg("Sync()")
	}

	return nil
}
