package backend

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisBackend stores each page as a string value keyed by its hex
// offset; absent pages read back zero filled.
type RedisBackend struct {
	ctx context.Context

	client *redis.Client
	size   int64

	verbose bool
}

func NewRedisBackend(
	ctx context.Context,
	client *redis.Client,
	size int64,
	verbose bool,
) *RedisBackend {
	return &RedisBackend{
		ctx: ctx,

		client: client,
		size:   size,

		verbose: verbose,
	}
}

func (b *RedisBackend) ReadAt(p []byte, off int64) (n int, err error) {
	if b.verbose {
		log.Debug().Msgf("ReadAt(len(p) = %v, off = %v)", len(p), off)
	}

	val, err := b.client.Get(b.ctx, pageKey("", off)).Bytes()
	if err != nil {
		if err == redis.Nil {
			zeroFill(p)

			return len(p), nil
		}

		return 0, err
	}

	n = copy(p, val)
	zeroFill(p[n:])

	return len(p), nil
}

func (b *RedisBackend) WriteAt(p []byte, off int64) (n int, err error) {
	if b.verbose {
		log.Debug().Msgf("WriteAt(len(p) = %v, off = %v)", len(p), off)
	}

	if err := b.client.Set(b.ctx, pageKey("", off), p, 0).Err(); err != nil {
		return 0, err
	}

	return len(p), nil
}

func (b *RedisBackend) Size() (int64, error) {
	if b.verbose {
		log.Debug().Msg("Size()")
	}

	return b.size, nil
}

func (b *RedisBackend) Sync() error {
	if b.verbose {
		log.Debug().Msg("Sync()")
	}

	return nil
}
