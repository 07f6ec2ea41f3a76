package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewRedisCache(client, "test:")
	t.Cleanup(func() { c.Close() })
	return mr, c
}

func TestRedisCache(t *testing.T) {
	_, c := newTestRedis(t)
	runCacheTests(t, c)
}

func TestRedisCachePrefixAndTTL(t *testing.T) {
	mr, c := newTestRedis(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists("test:k") {
		t.Fatal("key should be stored with prefix")
	}
	if ttl := mr.TTL("test:k"); ttl != time.Minute {
		t.Errorf("TTL = %v, want 1m", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry should expire")
	}
}

func TestRedisCacheServerDown(t *testing.T) {
	mr, c := newTestRedis(t)
	mr.Close()

	_, hit, err := c.Get(context.Background(), "k")
	if hit || err == nil {
		t.Errorf("Get with server down: hit=%v err=%v, want error", hit, err)
	}
	if errors.Is(err, redis.Nil) {
		t.Error("connection failure must not look like a miss")
	}
}

func TestDialRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	defer mr.Close()

	c, err := DialRedis(context.Background(), "redis://"+mr.Addr(), "")
	if err != nil {
		t.Fatalf("DialRedis: %v", err)
	}
	defer c.Close()

	if _, err := DialRedis(context.Background(), "not a url", ""); err == nil {
		t.Error("expected error for invalid url")
	}
}
