package cache

import (
	"context"
	"sync"
	"time"

	"lyrics-corpus/pkg/music"
	"lyrics-corpus/pkg/redis"
)

const keyPrefix = "lyrics-corpus:"

var (
	_ music.Cache = (*MemoryStore)(nil)
	_ music.Cache = (*RedisStore)(nil)
)

// MemoryStore 进程内缓存，只在一次运行内有效
type MemoryStore struct {
	data sync.Map
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := s.data.Load(key)
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.data.Store(key, value)
	return nil
}

// kvClient RedisStore 用到的 Redis 操作，由 redis.Client 实现
type kvClient interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Close() error
}

var _ kvClient = (*redis.Client)(nil)

// RedisStore 基于 Redis 的缓存，跨运行保留
type RedisStore struct {
	client kvClient
	ttl    time.Duration
}

// NewRedisStore 连接 Redis，ttl 为 0 表示不过期
func NewRedisStore(addr, password string, db int, ttl time.Duration) (*RedisStore, error) {
	client, err := redis.NewClient(addr, password, db)
	if err != nil {
		return nil, err
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.client.Get(ctx, keyPrefix+key)
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.SetWithExpiration(ctx, keyPrefix+key, value, s.ttl)
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
