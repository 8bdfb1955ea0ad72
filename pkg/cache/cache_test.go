package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNop(t *testing.T) {
	ctx := context.Background()
	c := Nop
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Nop should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func testRoundTrip(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get(k) = %q, %v, %v; want \"v\", true, nil", data, hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func testExpiry(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	testRoundTrip(t, c)
	testExpiry(t, c)
}

func TestFileCacheArtifactLayout(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	svg := []byte("<svg/>")
	key := ArtifactKey("svg", []byte("digraph {}"))
	if err := c.Set(ctx, key, svg, 0); err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(c.Dir(), "svg", Hash([]byte("digraph {}"))+".svg")
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("artifact not stored at %s: %v", want, err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("stored artifact = %q, want raw bytes", data)
	}
	if _, err := os.Stat(want + ".expires"); !os.IsNotExist(err) {
		t.Error("entry without ttl should have no expiry sidecar")
	}
}

func TestFileCacheOtherKeys(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"plain", "artifact:../x:" + Hash(nil), "artifact:svg:short"} {
		if err := c.Set(ctx, key, []byte("v"), 0); err != nil {
			t.Fatalf("Set(%q) error: %v", key, err)
		}
		if got := c.path(key); filepath.Dir(got) != filepath.Join(c.Dir(), otherDir) {
			t.Errorf("path(%q) = %s, want under %s", key, got, otherDir)
		}
		if data, hit, _ := c.Get(ctx, key); !hit || string(data) != "v" {
			t.Errorf("Get(%q) = %q, %v", key, data, hit)
		}
	}
}

func TestFileCacheBadExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("k")+".expires", []byte("soon"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("bad expiry: hit %v, err %v; want miss", hit, err)
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("entry with bad expiry should be removed")
	}
}

func TestFileCacheSetClearsExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_ = c.Set(ctx, "k", []byte("old"), time.Millisecond)
	if err := c.Set(ctx, "k", []byte("new"), 0); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)

	if data, hit, _ := c.Get(ctx, "k"); !hit || string(data) != "new" {
		t.Errorf("Get() = %q, %v; want permanent new entry", data, hit)
	}
}

func TestMemoryCache(t *testing.T) {
	testRoundTrip(t, NewMemoryCache(0))
	testExpiry(t, NewMemoryCache(0))
}

func TestMemoryCacheEviction(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2)

	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("oldest entry should be evicted")
	}
	if _, hit, _ := c.Get(ctx, "c"); !hit {
		t.Error("newest entry should be kept")
	}
}

func TestGetOrCompute(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	calls := 0
	compute := func() ([]byte, error) {
		calls++
		return []byte("svg"), nil
	}

	data, hit, err := GetOrCompute(ctx, c, "k", 0, compute)
	if err != nil || hit || string(data) != "svg" {
		t.Fatalf("first GetOrCompute = %q, %v, %v", data, hit, err)
	}
	data, hit, err = GetOrCompute(ctx, c, "k", 0, compute)
	if err != nil || !hit || string(data) != "svg" {
		t.Fatalf("second GetOrCompute = %q, %v, %v", data, hit, err)
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	if _, _, err := GetOrCompute(ctx, c, "other", 0, func() ([]byte, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Errorf("GetOrCompute error = %v, want %v", err, boom)
	}
	if _, hit, _ := c.Get(ctx, "other"); hit {
		t.Error("failed compute should not be cached")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestArtifactKey(t *testing.T) {
	dot := []byte("digraph G {}")
	if ArtifactKey("svg", dot) == ArtifactKey("png", dot) {
		t.Error("ArtifactKey should depend on format")
	}
	if ArtifactKey("svg", dot) != ArtifactKey("svg", dot) {
		t.Error("ArtifactKey should be deterministic")
	}
}
