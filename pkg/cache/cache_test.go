package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "key")
	if err != nil || hit {
		t.Fatalf("Get before Set: hit=%v err=%v", hit, err)
	}

	// Round trip
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("Get after Set: hit=%v err=%v", hit, err)
	}
	if string(data) != "value" {
		t.Errorf("Get data: got %q, want %q", data, "value")
	}

	// Delete removes
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("Get after Delete should miss")
	}

	// Deleting an absent key is fine
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// An expired entry reads as a miss.
	if err := c.Set(ctx, "key", []byte("value"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Error("expired entry should be a miss")
	}

	// Zero TTL never expires.
	if err := c.Set(ctx, "forever", []byte("value"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_, hit, _ = c.Get(ctx, "forever")
	if !hit {
		t.Error("zero-TTL entry should not expire")
	}
}

func TestFileCacheClassLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	k := NewDefaultKeyer()
	if err := c.Set(ctx, k.SchematicKey("src1"), []byte("plan"), time.Hour); err != nil {
		t.Fatalf("Set schematic: %v", err)
	}
	if err := c.Set(ctx, k.ArtifactKey("sch1", ArtifactKeyOpts{Format: "svg"}), []byte("<svg/>"), time.Hour); err != nil {
		t.Fatalf("Set artifact: %v", err)
	}

	// Schematic and artifact entries land in separate class subdirectories.
	for _, class := range []string{"schematic", "artifact"} {
		entries, err := os.ReadDir(filepath.Join(dir, class))
		if err != nil {
			t.Fatalf("ReadDir %s: %v", class, err)
		}
		if len(entries) != 1 {
			t.Errorf("%s entries: got %d, want 1", class, len(entries))
		}
	}

	// Keys without a class segment fall back to misc.
	if err := c.Set(ctx, "loose", []byte("x"), time.Hour); err != nil {
		t.Fatalf("Set loose key: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "misc")); err != nil {
		t.Errorf("misc subdirectory: %v", err)
	}

	// Round trip still works through the class layout.
	data, hit, err := c.Get(ctx, k.SchematicKey("src1"))
	if err != nil || !hit {
		t.Fatalf("Get schematic: hit=%v err=%v", hit, err)
	}
	if string(data) != "plan" {
		t.Errorf("Get schematic data: got %q", data)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// SchematicKey is deterministic and hash-sensitive
	sk1 := k.SchematicKey("hash123")
	sk2 := k.SchematicKey("hash123")
	if sk1 != sk2 {
		t.Error("SchematicKey should be deterministic")
	}
	if sk1 == k.SchematicKey("hash456") {
		t.Error("Different source hashes should produce different keys")
	}

	// ArtifactKey should include options in hash
	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png"})
	if ak1 == ak2 {
		t.Error("Different formats should produce different keys")
	}
	ak3 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Theme: "custom"})
	if ak1 == ak3 {
		t.Error("Different themes should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant:123:")

	// All keys should be prefixed
	sk := scoped.SchematicKey("hash123")
	if len(sk) < 11 || sk[:11] != "tenant:123:" {
		t.Errorf("ScopedKeyer SchematicKey should be prefixed: %s", sk)
	}
	if sk != "tenant:123:"+inner.SchematicKey("hash123") {
		t.Errorf("ScopedKeyer should wrap the inner key: %s", sk)
	}

	ak := scoped.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	if len(ak) < 11 || ak[:11] != "tenant:123:" {
		t.Errorf("ScopedKeyer ArtifactKey should be prefixed: %s", ak)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	base := errors.New("connection refused")
	err := Retryable(base)
	if !IsRetryable(err) {
		t.Error("wrapped error should be retryable")
	}
	if err.Error() != base.Error() {
		t.Errorf("message should be preserved: %s", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("wrapped error should unwrap to the cause")
	}
	if IsRetryable(base) {
		t.Error("unwrapped error should not be retryable")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("first-try success: err=%v calls=%d", err, calls)
	}

	// Non-retryable error stops immediately
	fatal := errors.New("bad key")
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return fatal
	})
	if err != fatal || calls != 1 {
		t.Errorf("non-retryable: err=%v calls=%d", err, calls)
	}

	// Retryable error triggers another attempt
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(errors.New("transient"))
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry: err=%v calls=%d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errors.New("transient"))
	})
	if err != context.Canceled {
		t.Errorf("cancelled retry: got %v", err)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.SchematicKey("hash123")
	if key != "prefix:"+NewDefaultKeyer().SchematicKey("hash123") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}
