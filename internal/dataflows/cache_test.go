package dataflows

import (
	"testing"
	"time"
)

func TestCacheHitAndExpiry(t *testing.T) {
	c := NewCache(50*time.Millisecond, true)

	c.Set("k", "v")
	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Fatalf("Get = (%v, %v), want (v, true)", got, ok)
	}

	time.Sleep(60 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("expected a miss after TTL expiry")
	}
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	c := NewCache(time.Minute, true)
	if _, ok := c.Get("nope"); ok {
		t.Error("expected a miss")
	}
}

func TestCacheDisabled(t *testing.T) {
	c := NewCache(time.Minute, false)
	c.Set("k", "v")
	if _, ok := c.Get("k"); ok {
		t.Error("disabled cache must always miss")
	}
}
