package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	mc := NewMemoryCache(10)

	mc.Set("a", "value-a", time.Minute)

	v, ok := mc.Get("a")
	if !ok || v != "value-a" {
		t.Fatalf("Get(a) = %v, %v", v, ok)
	}

	if _, ok := mc.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}
}

func TestNilValueIsAHit(t *testing.T) {
	mc := NewMemoryCache(10)

	mc.Set("no-issue", nil, time.Minute)

	v, ok := mc.Get("no-issue")
	if !ok {
		t.Fatal("stored nil should be a hit, not a miss")
	}
	if v != nil {
		t.Errorf("Get = %v, want nil", v)
	}
}

func TestLazyExpiry(t *testing.T) {
	mc := NewMemoryCache(10)

	mc.Set("short", 1, 30*time.Millisecond)

	if _, ok := mc.Get("short"); !ok {
		t.Fatal("entry should be live before TTL")
	}

	time.Sleep(50 * time.Millisecond)

	if _, ok := mc.Get("short"); ok {
		t.Error("entry should expire after TTL")
	}
	if mc.Len() != 0 {
		t.Errorf("expired entry should be dropped on read, Len = %d", mc.Len())
	}
}

func TestSetOverwritesAndRestamps(t *testing.T) {
	mc := NewMemoryCache(10)

	mc.Set("k", 1, 30*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	mc.Set("k", 2, 30*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	// 40ms after first Set, but only 20ms after the overwrite.
	v, ok := mc.Get("k")
	if !ok || v != 2 {
		t.Errorf("Get(k) = %v, %v; want 2, true", v, ok)
	}
}

func TestLRUEviction(t *testing.T) {
	mc := NewMemoryCache(2)

	mc.Set("a", 1, time.Minute)
	mc.Set("b", 2, time.Minute)
	mc.Get("a") // a becomes most recent
	mc.Set("c", 3, time.Minute)

	if _, ok := mc.Get("b"); ok {
		t.Error("least recently used entry should be evicted")
	}
	if _, ok := mc.Get("a"); !ok {
		t.Error("recently used entry should survive")
	}
	if _, ok := mc.Get("c"); !ok {
		t.Error("new entry should be present")
	}
}

func TestClear(t *testing.T) {
	mc := NewMemoryCache(10)
	mc.Set("a", 1, time.Minute)
	mc.Clear()
	if mc.Len() != 0 {
		t.Errorf("Len after Clear = %d", mc.Len())
	}
}
