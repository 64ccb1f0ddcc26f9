package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clock is a settable time source for expiry tests.
type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

// exerciseBackend runs the behaviour every persistent backend shares.
func exerciseBackend(t *testing.T, c Cache, advance func(time.Duration)) {
	t.Helper()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("v1"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v1" {
		t.Fatalf("Get(k) = %q, %v, %v; want v1 hit", data, hit, err)
	}

	// Overwrite.
	if err := c.Set(ctx, "k", []byte("v2"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if data, _, _ := c.Get(ctx, "k"); string(data) != "v2" {
		t.Errorf("Get(k) after overwrite = %q, want v2", data)
	}

	// Zero TTL never expires; the minute entry does.
	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if advance != nil {
		advance(2 * time.Minute)
		if _, hit, _ := c.Get(ctx, "k"); hit {
			t.Error("expired entry should be a miss")
		}
		if _, hit, _ := c.Get(ctx, "forever"); !hit {
			t.Error("entry without TTL should not expire")
		}
	}

	if err := c.Delete(ctx, "forever"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); hit {
		t.Error("deleted entry should be a miss")
	}
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete(never-set) error: %v", err)
	}

	if cl, ok := c.(Clearer); ok {
		_ = c.Set(ctx, "a", []byte("1"), 0)
		_ = c.Set(ctx, "b", []byte("2"), 0)
		if err := cl.Clear(ctx); err != nil {
			t.Fatalf("Clear error: %v", err)
		}
		for _, k := range []string{"a", "b"} {
			if _, hit, _ := c.Get(ctx, k); hit {
				t.Errorf("Get(%s) after Clear should miss", k)
			}
		}
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want nil miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	clk := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c.now = clk.now
	exerciseBackend(t, c, clk.advance)
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v; want miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestBoltCache(t *testing.T) {
	c, err := NewBoltCache(filepath.Join(t.TempDir(), "sub", "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	clk := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c.now = clk.now
	exerciseBackend(t, c, clk.advance)

	ctx := context.Background()
	_ = c.Set(ctx, "x", []byte("1"), 0)
	if n, err := c.Len(); err != nil || n != 1 {
		t.Errorf("Len() = %d, %v; want 1", n, err)
	}
}

func TestBoltCacheReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	c, err := NewBoltCache(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("kept"), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	c, err = NewBoltCache(path)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if data, hit, _ := c.Get(ctx, "k"); !hit || string(data) != "kept" {
		t.Errorf("Get after reopen = %q, %v", data, hit)
	}
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("LAYOUTKIT_TEST_REDIS_URL")
	if url == "" {
		t.Skip("LAYOUTKIT_TEST_REDIS_URL not set")
	}
	c, err := NewRedisCache(context.Background(), url)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	exerciseBackend(t, c, nil)
}

func TestMongoCache(t *testing.T) {
	url := os.Getenv("LAYOUTKIT_TEST_MONGO_URL")
	if url == "" {
		t.Skip("LAYOUTKIT_TEST_MONGO_URL not set")
	}
	c, err := NewMongoCache(context.Background(), url, "layoutkit_test", "cache")
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	exerciseBackend(t, c, nil)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{name: "default is file", cfg: Config{Dir: dir}, want: "*cache.FileCache"},
		{name: "file", cfg: Config{Backend: "FILE", Dir: dir}, want: "*cache.FileCache"},
		{name: "bolt", cfg: Config{Backend: "bolt", Dir: dir}, want: "*cache.BoltCache"},
		{name: "none", cfg: Config{Backend: "none"}, want: "cache.NullCache"},
		{name: "file without dir", cfg: Config{Backend: "file"}, wantErr: true},
		{name: "redis without url", cfg: Config{Backend: "redis"}, wantErr: true},
		{name: "mongo without url", cfg: Config{Backend: "mongo"}, wantErr: true},
		{name: "unknown", cfg: Config{Backend: "memcached"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Open(ctx, tt.cfg)
			if tt.wantErr {
				if err == nil {
					c.Close()
					t.Fatal("Open() should fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			defer c.Close()
			if got := typeName(c); got != tt.want {
				t.Errorf("Open() = %s, want %s", got, tt.want)
			}
		})
	}

	_, err := Open(ctx, Config{Backend: "memcached"})
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("unknown backend error = %v, want ErrUnknownBackend", err)
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *FileCache:
		return "*cache.FileCache"
	case *BoltCache:
		return "*cache.BoltCache"
	case NullCache:
		return "cache.NullCache"
	default:
		return "unknown"
	}
}
