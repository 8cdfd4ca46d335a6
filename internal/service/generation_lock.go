package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/coursequiz/config"
	"github.com/lshigami/coursequiz/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

// GenerationLocker serializes question generation per (course, difficulty)
// so concurrent quiz requests top up the bank once instead of each inserting
// their own batch.
type GenerationLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

func GenerationKey(courseID uint, difficulty model.Difficulty) string {
	return fmt.Sprintf("coursequiz:generate:%d:%s", courseID, difficulty)
}

// NewRedisClient returns nil when REDIS_ADDR is unset.
func NewRedisClient(lc fx.Lifecycle, cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		log.Warn().Msg("REDIS_ADDR is not set. Quiz generation is serialized in-process only.")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				log.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("Error connecting to Redis")
				return err
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client
}

func NewGenerationLocker(client *redis.Client) GenerationLocker {
	if client == nil {
		return NewKeyedMutexLocker()
	}
	return NewRedisGenerationLocker(client, 2*time.Minute, 100*time.Millisecond)
}

type keyedEntry struct {
	sem  chan struct{}
	refs int
}

// KeyedMutexLocker is a per-key mutex whose entries are dropped once no
// caller holds or waits on them.
type KeyedMutexLocker struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

func NewKeyedMutexLocker() *KeyedMutexLocker {
	return &KeyedMutexLocker{locks: make(map[string]*keyedEntry)}
}

func (l *KeyedMutexLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &keyedEntry{sem: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.release(key, e)
		})
	}, nil
}

func (l *KeyedMutexLocker) release(key string, e *keyedEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisGenerationLocker holds the lock as a SET NX key with a TTL so a crashed
// holder cannot block generation forever.
type RedisGenerationLocker struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
}

func NewRedisGenerationLocker(client *redis.Client, ttl, retry time.Duration) *RedisGenerationLocker {
	return &RedisGenerationLocker{client: client, ttl: ttl, retry: retry}
}

func (l *RedisGenerationLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire generation lock %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := releaseScript.Run(context.Background(), l.client, []string{key}, token).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("Failed to release generation lock")
			}
		})
	}, nil
}
