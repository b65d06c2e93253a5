package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "portal:tab:"

// TabStore keeps each browser namespace in one Redis hash and submission
// markers in plain keys next to it.
//
//	portal:tab:<namespace>               hash of session entries
//	portal:tab:<namespace>:lock:<name>   submission marker with TTL
type TabStore struct {
	client  redis.UniversalClient
	idleTTL time.Duration
}

// NewTabStore wraps client. A positive idleTTL is refreshed on every read and
// write, so only namespaces nobody touches for that long are reclaimed.
func NewTabStore(client redis.UniversalClient, idleTTL time.Duration) *TabStore {
	return &TabStore{client: client, idleTTL: idleTTL}
}

func (s *TabStore) GetAll(ctx context.Context, ns string, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	key := s.key(ns)
	var hmget *redis.SliceCmd
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		hmget = pipe.HMGet(ctx, key, keys...)
		if s.idleTTL > 0 {
			pipe.Expire(ctx, key, s.idleTTL)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("tab store get: %w", err)
	}
	for i, v := range hmget.Val() {
		if str, ok := v.(string); ok {
			out[keys[i]] = str
		}
	}
	return out, nil
}

func (s *TabStore) SetAll(ctx context.Context, ns string, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}
	key := s.key(ns)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, entries)
		if s.idleTTL > 0 {
			pipe.Expire(ctx, key, s.idleTTL)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("tab store set: %w", err)
	}
	return nil
}

func (s *TabStore) Remove(ctx context.Context, ns string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.HDel(ctx, s.key(ns), keys...).Err(); err != nil {
		return fmt.Errorf("tab store remove: %w", err)
	}
	return nil
}

func (s *TabStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *TabStore) Acquire(ctx context.Context, ns, name string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.lockKey(ns, name), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("tab store acquire: %w", err)
	}
	return ok, nil
}

func (s *TabStore) Release(ctx context.Context, ns, name string) error {
	if err := s.client.Del(ctx, s.lockKey(ns, name)).Err(); err != nil {
		return fmt.Errorf("tab store release: %w", err)
	}
	return nil
}

func (s *TabStore) key(ns string) string {
	return keyPrefix + ns
}

func (s *TabStore) lockKey(ns, name string) string {
	return fmt.Sprintf("%s%s:lock:%s", keyPrefix, ns, name)
}
