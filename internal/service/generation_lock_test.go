package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestKeyedMutexLockerSerializesSameKey(t *testing.T) {
	l := NewKeyedMutexLocker()
	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "k")
			if err != nil {
				t.Errorf("Lock() error = %v", err)
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Errorf("max concurrent holders = %d, want 1", maxInside)
	}
	if len(l.locks) != 0 {
		t.Errorf("expected lock entries to be cleaned up, have %d", len(l.locks))
	}
}

func TestKeyedMutexLockerDifferentKeysDoNotBlock(t *testing.T) {
	l := NewKeyedMutexLocker()
	unlockA, err := l.Lock(context.Background(), "a")
	if err != nil {
		t.Fatalf("Lock(a) error = %v", err)
	}
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlockB, err := l.Lock(ctx, "b")
	if err != nil {
		t.Fatalf("Lock(b) blocked behind a: %v", err)
	}
	unlockB()
}

func TestKeyedMutexLockerHonoursContext(t *testing.T) {
	l := NewKeyedMutexLocker()
	unlock, _ := l.Lock(context.Background(), "k")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := l.Lock(ctx, "k"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Lock() err = %v, want deadline exceeded", err)
	}

	unlock()
	unlock() // second call is a no-op
	if len(l.locks) != 0 {
		t.Errorf("expected lock entries to be cleaned up, have %d", len(l.locks))
	}
}

func newTestRedisLocker(t *testing.T, ttl time.Duration) (*RedisGenerationLocker, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisGenerationLocker(client, ttl, 5*time.Millisecond), srv
}

func TestRedisGenerationLockerAcquireAndRelease(t *testing.T) {
	l, srv := newTestRedisLocker(t, time.Minute)
	key := GenerationKey(3, "easy")

	unlock, err := l.Lock(context.Background(), key)
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	if !srv.Exists(key) {
		t.Fatalf("lock key %s not set", key)
	}
	if ttl := srv.TTL(key); ttl != time.Minute {
		t.Errorf("lock ttl = %v, want %v", ttl, time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if _, err := l.Lock(ctx, key); err == nil {
		t.Fatalf("second Lock() acquired a held key")
	}

	unlock()
	unlock()
	if srv.Exists(key) {
		t.Errorf("lock key should be deleted on unlock")
	}

	unlock, err = l.Lock(context.Background(), key)
	if err != nil {
		t.Fatalf("Lock() after release error = %v", err)
	}
	unlock()
}

func TestRedisGenerationLockerWaiterAcquiresAfterRelease(t *testing.T) {
	l, _ := newTestRedisLocker(t, time.Minute)
	key := GenerationKey(1, "hard")

	unlock, err := l.Lock(context.Background(), key)
	if err != nil {
		t.Fatal(err)
	}

	acquired := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		u, err := l.Lock(ctx, key)
		if err == nil {
			u()
		}
		acquired <- err
	}()

	select {
	case err := <-acquired:
		t.Fatalf("waiter acquired while lock was held, err = %v", err)
	case <-time.After(20 * time.Millisecond):
	}
	unlock()
	if err := <-acquired; err != nil {
		t.Errorf("waiter Lock() error = %v", err)
	}
}

func TestRedisGenerationLockerKeepsForeignHolder(t *testing.T) {
	l, srv := newTestRedisLocker(t, time.Minute)
	key := GenerationKey(2, "medium")

	unlock, err := l.Lock(context.Background(), key)
	if err != nil {
		t.Fatal(err)
	}
	// The TTL lapsed and another replica took the lock.
	if err := srv.Set(key, "other-holder"); err != nil {
		t.Fatal(err)
	}
	unlock()

	if got, _ := srv.Get(key); got != "other-holder" {
		t.Errorf("lock value = %q, unlock must not delete another holder's key", got)
	}
}

func TestRedisGenerationLockerExpiresAbandonedLock(t *testing.T) {
	l, srv := newTestRedisLocker(t, time.Second)
	key := GenerationKey(4, "easy")

	if _, err := l.Lock(context.Background(), key); err != nil {
		t.Fatal(err)
	}
	srv.FastForward(2 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlock, err := l.Lock(ctx, key)
	if err != nil {
		t.Fatalf("Lock() after expiry error = %v", err)
	}
	unlock()
}

func TestNewGenerationLocker(t *testing.T) {
	if _, ok := NewGenerationLocker(nil).(*KeyedMutexLocker); !ok {
		t.Errorf("nil client should fall back to the in-process locker")
	}
	client := redis.NewClient(&redis.Options{Addr: miniredis.RunT(t).Addr()})
	defer client.Close()
	if _, ok := NewGenerationLocker(client).(*RedisGenerationLocker); !ok {
		t.Errorf("redis client should select the redis locker")
	}
}
