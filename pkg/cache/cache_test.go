package cache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestFileCacheGetSet(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	ctx := context.Background()

	tests := []struct {
		name string
		key  string
		data []byte
	}{
		{"simple", "react", []byte(`{"name":"react"}`)},
		{"scoped package name", "@types/node", []byte(`{"name":"@types/node"}`)},
		{"empty payload", "empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.Set(ctx, tt.key, tt.data, time.Hour); err != nil {
				t.Fatalf("Set() error: %v", err)
			}
			got, ok, err := c.Get(ctx, tt.key)
			if err != nil {
				t.Fatalf("Get() error: %v", err)
			}
			if !ok {
				t.Fatal("Get() missed a key that was just set")
			}
			if !bytes.Equal(got, tt.data) {
				t.Errorf("Get() = %q, want %q", got, tt.data)
			}
		})
	}
}

func TestFileCacheMiss(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	_, ok, err := c.Get(context.Background(), "never-set")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ok {
		t.Error("Get() reported a hit for a missing key")
	}
}

func TestFileCacheExpiration(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	_, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ok {
		t.Error("Get() returned an expired entry")
	}
}

func TestFileCacheDelete(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	ctx := context.Background()

	_ = c.Set(ctx, "key", []byte("v"), 0)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("Get() hit after Delete()")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() of missing key: %v", err)
	}
}

func TestScopedKeysDoNotCollide(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	ctx := context.Background()

	pkgs := Scoped(c, "package:")
	search := Scoped(c, "search:")

	_ = pkgs.Set(ctx, "react", []byte("doc"), 0)
	if _, ok, _ := search.Get(ctx, "react"); ok {
		t.Error("scoped caches share keys")
	}
	if got, ok, _ := pkgs.Get(ctx, "react"); !ok || string(got) != "doc" {
		t.Errorf("scoped Get() = %q, %v; want \"doc\", true", got, ok)
	}
}

func TestNullCacheAlwaysMisses(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("NullCache reported a hit")
	}
}

func TestHashStable(t *testing.T) {
	a := Hash([]byte("@scope/name"))
	b := Hash([]byte("@scope/name"))
	if a != b {
		t.Errorf("Hash not deterministic: %s != %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("Hash length = %d, want 64", len(a))
	}
}
