package store

import (
	"context"
	"encoding/json"
	"path"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/redis/go-redis/v9"
)

// MaxRedisRecords is the number of records kept in the Redis list.
const MaxRedisRecords = 100

// The redis store keeps records as JSON in a list, newest at the head:
// - `/<prefix>/hivemind/records`

// RedisStore is a Reader backed by a Redis list.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore returns a store using the client.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    path.Join("/", prefix, "hivemind", "records"),
	}
}

// OpenRedis connects to the Redis URL and verifies the connection.
func OpenRedis(ctx context.Context, url, prefix string) (*RedisStore, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse redis URL")
	}
	client := redis.NewClient(options)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "failed to connect to Redis")
	}
	return NewRedisStore(client, prefix), nil
}

// Add pushes a record to the head of the list.
func (s *RedisStore) Add(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "failed to marshal record")
	}

	pipe := s.client.Pipeline()
	pipe.LPush(ctx, s.key, data)
	pipe.LTrim(ctx, s.key, 0, MaxRedisRecords-1)
	if _, err = pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to store record in Redis")
	}
	return nil
}

// Recent implements Reader.
func (s *RedisStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		return nil, nil
	}

	data, err := s.client.LRange(ctx, s.key, 0, int64(limit-1)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get records from Redis")
	}

	list := make([]Record, 0, len(data))
	for _, item := range data {
		var rec Record
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			logger.ContextKV(ctx, xlog.ERROR, "reason", "unmarshal record", "err", err.Error())
			continue
		}
		list = append(list, rec)
	}
	return list, nil
}

// Close implements Reader.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Writer = (*RedisStore)(nil)
