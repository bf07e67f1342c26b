package cache

import (
	"testing"
	"time"
)

func TestCacheGetSet(t *testing.T) {
	c := New[string](4, time.Minute)

	if _, ok := c.Get(1); ok {
		t.Fatalf("expected miss on empty cache")
	}

	c.Set(1, "stats-v1")
	got, ok := c.Get(1)
	if !ok || got != "stats-v1" {
		t.Fatalf("Get(1) = %q, %v", got, ok)
	}

	// Overwrite under the same version.
	c.Set(1, "stats-v1b")
	if got, _ := c.Get(1); got != "stats-v1b" {
		t.Fatalf("overwrite failed, got %q", got)
	}
}

func TestCacheEvictsOldest(t *testing.T) {
	c := New[int](2, time.Minute)
	c.Set(1, 10)
	c.Set(2, 20)
	c.Set(3, 30)

	if _, ok := c.Get(1); ok {
		t.Fatalf("oldest entry should have been evicted")
	}
	if _, ok := c.Get(2); !ok {
		t.Fatalf("entry 2 should survive")
	}
	if c.Size() != 2 {
		t.Fatalf("size = %d, want 2", c.Size())
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	c := New[int](4, 10*time.Millisecond)
	c.Set(1, 10)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get(1); ok {
		t.Fatalf("expired entry returned")
	}

	c.Set(2, 20)
	time.Sleep(20 * time.Millisecond)
	if cleaned := c.CleanExpired(); cleaned != 1 {
		t.Fatalf("CleanExpired = %d, want 1", cleaned)
	}
	if c.Size() != 0 {
		t.Fatalf("size = %d, want 0", c.Size())
	}
}
