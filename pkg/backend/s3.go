package backend

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/minio/minio-go"
	"github.com/rs/zerolog/log"
)

var (
	errNoSuchKey = errors.New("The specified key does not exist.") // Minio doesn't export errors
)

// S3Backend stores each page as an object keyed by the prefixed hex
// offset; absent objects read back zero filled.
type S3Backend struct {
	ctx context.Context

	client *minio.Client
	bucket string
	prefix string
	size   int64

	verbose bool
}

func NewS3Backend(
	ctx context.Context,
	client *minio.Client,
	bucket string,
	prefix string,
	size int64,
	verbose bool,
) *S3Backend {
	return &S3Backend{
		ctx: ctx,

		client: client,
		bucket: bucket,
		prefix: prefix,
		size:   size,

		verbose: verbose,
	}
}

func isNoSuchKey(err error) bool {
	return err.Error() == errNoSuchKey.Error()
}

func (b *S3Backend) ReadAt(p []byte, off int64) (n int, err error) {
	if b.verbose {
		log.Debug().Msgf("ReadAt(len(p) = %v, off = %v)", len(p), off)
	}

	obj, err := b.client.GetObject(b.bucket, pageKey(b.prefix, off), minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			zeroFill(p)

			return len(p), nil
		}

		return 0, err
	}

	n, err = io.ReadFull(obj, p)
	if err != nil {
		if isNoSuchKey(err) || err == io.EOF || err == io.ErrUnexpectedEOF {
			zeroFill(p[n:])

			return len(p), nil
		}

		return n, err
	}

	return n, nil
}

func (b *S3Backend) WriteAt(p []byte, off int64) (n int, err error) {
	if b.verbose {
		log.Debug().Msgf("WriteAt(len(p) = %v, off = %v)", len(p), off)
	}

	nn, err := b.client.PutObject(b.bucket, pageKey(b.prefix, off), bytes.NewReader(p), int64(len(p)), minio.PutObjectOptions{})

	return int(nn), err
}

func (b *S3Backend) Size() (int64, error) {
	if b.verbose {
		log.Debug().Msg("Size()")
	}

	return b.size, nil
}

func (b *S3Backend) Sync() error {
	if b.verbose {
		log.Debug().Msg("Sync()")
	}

	return nil
}
