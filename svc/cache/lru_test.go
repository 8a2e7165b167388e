package cache

import (
	"testing"
	"time"
)

func TestRangeLRUHitMiss(t *testing.T) {
	c, err := NewRangeLRU(4, time.Minute)
	if err != nil {
		t.Fatalf("NewRangeLRU failed: %v", err)
	}

	if _, ok := c.Get("sha1:21BD1"); ok {
		t.Error("hit on empty cache")
	}

	c.Set("sha1:21BD1", map[string]int{"SUFFIX": 3})
	got, ok := c.Get("sha1:21BD1")
	if !ok {
		t.Fatal("miss after Set")
	}
	if got["SUFFIX"] != 3 {
		t.Errorf("SUFFIX = %d, want 3", got["SUFFIX"])
	}
}

func TestRangeLRUExpiry(t *testing.T) {
	c, err := NewRangeLRU(4, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewRangeLRU failed: %v", err)
	}
	c.Set("sha1:21BD1", map[string]int{"SUFFIX": 3})

	time.Sleep(100 * time.Millisecond)

	if _, ok := c.Get("sha1:21BD1"); ok {
		t.Error("expired entry served")
	}
}

func TestRangeLRUEviction(t *testing.T) {
	c, err := NewRangeLRU(2, time.Minute)
	if err != nil {
		t.Fatalf("NewRangeLRU failed: %v", err)
	}
	c.Set("a", map[string]int{"X": 1})
	c.Set("b", map[string]int{"X": 2})
	c.Set("c", map[string]int{"X": 3})

	if _, ok := c.Get("a"); ok {
		t.Error("oldest entry survived beyond capacity")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("newest entry evicted")
	}
}

func TestRangeLRURejectsBadSize(t *testing.T) {
	if _, err := NewRangeLRU(0, time.Minute); err == nil {
		t.Error("accepted zero size")
	}
	if _, err := NewRangeLRU(-1, time.Minute); err == nil {
		t.Error("accepted negative size")
	}
	if _, err := NewRangeLRU(1000001, time.Minute); err == nil {
		t.Error("accepted oversized cache")
	}
}
