package store

import (
	"context"
	stderrors "errors"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/tilegrid/pkg/errors"
)

// DefaultRedisPrefix namespaces every key written by RedisStore.
const DefaultRedisPrefix = "tilegrid:snapshot:"

// RedisStore keeps snapshots as plain Redis strings.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to the server at url (redis://host:port/db) and
// verifies the connection with PING.
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect redis %s", opts.Addr)
	}
	return &RedisStore{client: client, prefix: DefaultRedisPrefix}, nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Get retrieves a value from the store.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := errors.ValidateStoreKey(key); err != nil {
		return nil, false, err
	}
	var data []byte
	miss := false
	err := RetryWithBackoff(ctx, func() error {
		v, err := s.client.Get(ctx, s.prefix+key).Bytes()
		if stderrors.Is(err, redis.Nil) {
			miss = true
			return nil
		}
		if err != nil {
			return Retryable(err)
		}
		data = v
		return nil
	})
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeStore, err, "redis get %s", key)
	}
	if miss {
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores a value in the store without expiry.
func (s *RedisStore) Set(ctx context.Context, key string, data []byte) error {
	if err := errors.ValidateStoreKey(key); err != nil {
		return err
	}
	err := RetryWithBackoff(ctx, func() error {
		return Retryable(s.client.Set(ctx, s.prefix+key, data, 0).Err())
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "redis set %s", key)
	}
	return nil
}

// Delete removes a value from the store.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := errors.ValidateStoreKey(key); err != nil {
		return err
	}
	err := RetryWithBackoff(ctx, func() error {
		return Retryable(s.client.Del(ctx, s.prefix+key).Err())
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "redis delete %s", key)
	}
	return nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
