package engine

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestCacheKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		k1 := CacheKey("get_transcript", "dQw4w9WgXcQ")
		k2 := CacheKey("get_transcript", "dQw4w9WgXcQ")
		if k1 != k2 {
			t.Errorf("CacheKey not deterministic: %q != %q", k1, k2)
		}
	})

	t.Run("different inputs differ", func(t *testing.T) {
		k1 := CacheKey("get_transcript", "aaaaaaaaaaa")
		k2 := CacheKey("get_transcript", "bbbbbbbbbbb")
		if k1 == k2 {
			t.Errorf("different inputs produced same key: %q", k1)
		}
	})

	t.Run("has prefix", func(t *testing.T) {
		k := CacheKey("test")
		if k[:3] != "yi:" {
			t.Errorf("expected yi: prefix, got %q", k[:3])
		}
	})
}

func TestCacheGetSet(t *testing.T) {
	InitCache("", 1*time.Minute, 100, 5*time.Minute)

	ctx := context.Background()
	key := CacheKey("test", "round-trip")

	if _, ok := CacheGet(ctx, key); ok {
		t.Error("expected cache miss on empty cache")
	}

	CacheSet(ctx, key, []byte("hello"))

	got, ok := CacheGet(ctx, key)
	if !ok {
		t.Fatal("expected cache hit after set")
	}
	if string(got) != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestCacheJSONRoundTrip(t *testing.T) {
	InitCache("", 1*time.Minute, 100, 5*time.Minute)

	type payload struct {
		VideoID string `json:"video_id"`
		Count   int    `json:"count"`
	}

	ctx := context.Background()
	key := CacheKey("test", "json")

	if _, ok := CacheLoadJSON[payload](ctx, key); ok {
		t.Error("expected miss before store")
	}

	CacheStoreJSON(ctx, key, payload{VideoID: "abc123def45", Count: 3})

	got, ok := CacheLoadJSON[payload](ctx, key)
	if !ok {
		t.Fatal("expected hit after store")
	}
	if got.VideoID != "abc123def45" || got.Count != 3 {
		t.Errorf("got %+v", got)
	}
}

func TestCacheExpiration(t *testing.T) {
	InitCache("", 1*time.Millisecond, 100, 5*time.Minute)

	ctx := context.Background()
	key := CacheKey("test", "expiry")

	CacheSet(ctx, key, []byte("temp"))
	time.Sleep(5 * time.Millisecond)

	if _, ok := CacheGet(ctx, key); ok {
		t.Error("expected cache miss after TTL expiry")
	}
}

func TestCacheEviction(t *testing.T) {
	InitCache("", 1*time.Minute, 3, 5*time.Minute)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		CacheSet(ctx, CacheKey("test", fmt.Sprintf("entry-%d", i)), []byte("v"))
	}

	count := 0
	artifactCache.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count > 4 {
		t.Errorf("L1 grew past the entry limit: %d entries", count)
	}
}

func TestCacheStatsCounters(t *testing.T) {
	InitCache("", 1*time.Minute, 100, 5*time.Minute)

	ctx := context.Background()
	h0, m0 := CacheStats()

	key := CacheKey("test", "stats")
	CacheGet(ctx, key) // miss
	CacheSet(ctx, key, []byte("x"))
	CacheGet(ctx, key) // hit

	h1, m1 := CacheStats()
	if h1 != h0+1 {
		t.Errorf("hits = %d, want %d", h1, h0+1)
	}
	if m1 != m0+1 {
		t.Errorf("misses = %d, want %d", m1, m0+1)
	}
}
