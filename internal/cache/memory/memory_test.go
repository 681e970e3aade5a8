package memory

import (
	"context"
	"testing"
)

func TestCacheRoundTrip(t *testing.T) {
	c := New()
	ctx := context.Background()

	if _, ok, _ := c.Get(ctx, "missing"); ok {
		t.Fatal("get on empty cache reported a hit")
	}
	if err := c.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || got != "v1" {
		t.Fatalf("get = (%q, %v, %v), want (v1, true, nil)", got, ok, err)
	}

	// overwrite replaces the whole value
	_ = c.Set(ctx, "k", "v2")
	got, _, _ = c.Get(ctx, "k")
	if got != "v2" {
		t.Fatalf("overwrite: got %q, want v2", got)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatal("deleted key still present")
	}

	_ = c.Set(ctx, "a", "1")
	_ = c.Set(ctx, "b", "2")
	c.Reset()
	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Fatal("reset did not clear values")
	}
}
