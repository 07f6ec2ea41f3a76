package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestSQLiteCache(t *testing.T) {
	c, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "cache.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer c.Close()
	runCacheTests(t, c)
}

func TestSQLiteCacheMemory(t *testing.T) {
	c, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer c.Close()
	runCacheTests(t, c)
}

func TestSQLiteCacheExpiryAndPrune(t *testing.T) {
	ctx := context.Background()
	c, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "a", []byte("1"), time.Minute)
	_ = c.Set(ctx, "b", []byte("2"), time.Minute)
	_ = c.Set(ctx, "c", []byte("3"), 0)

	now = now.Add(time.Hour)

	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("expired entry should miss")
	}

	n, err := c.Prune(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Prune removed %d, want 1 (a was already dropped by Get)", n)
	}
	if _, hit, _ := c.Get(ctx, "c"); !hit {
		t.Error("entry without ttl should survive")
	}
}
