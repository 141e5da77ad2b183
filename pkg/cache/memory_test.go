package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	type payload struct {
		Name string `json:"name"`
		N    int    `json:"n"`
	}

	if err := mc.Set(ctx, "k", payload{Name: "a", N: 3}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	if err := mc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "a" || got.N != 3 {
		t.Fatalf("unexpected value %+v", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var got string
	if err := mc.Get(context.Background(), "absent", &got); err != ErrCacheMiss {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", time.Nanosecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	var got string
	if err := mc.Get(ctx, "k", &got); err != ErrCacheMiss {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := mc.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var got string
	if err := mc.Get(ctx, "k", &got); err != ErrCacheMiss {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "a", 1, time.Minute)
	_ = mc.Set(ctx, "b", 2, time.Minute)
	_ = mc.Set(ctx, "c", 3, time.Minute)

	hits := 0
	for _, k := range []string{"a", "b", "c"} {
		var v int
		if err := mc.Get(ctx, k, &v); err == nil {
			hits++
		}
	}
	if hits != 2 {
		t.Fatalf("expected 2 survivors after eviction, got %d", hits)
	}
}

func TestKey(t *testing.T) {
	got := Key("render", "2024-01-01", "2024-01-02", "opening_balance")
	want := "render:2024-01-01:2024-01-02:opening_balance"
	if got != want {
		t.Fatalf("Key() = %q, want %q", got, want)
	}
}
