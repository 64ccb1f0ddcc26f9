package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	got, err := loadConfig("", env(nil))
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if diff := cmp.Diff(defaultConfig(), got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	if err := os.MkdirAll(filepath.Join(home, appName), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(home, appName), configFile, `
[log]
level = "debug"

[cache]
backend = "Bolt"
ttl = "12h"

[server]
addr = ":9090"

[text]
char_width = 8
`)

	got, err := loadConfig("", env(nil))
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	want := defaultConfig()
	want.Log.Level = "debug"
	want.Cache.Backend = "bolt"
	want.Cache.TTL = duration{12 * time.Hour}
	want.Server.Addr = ":9090"
	want.Text.CharWidth = 8
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if got.level() != LogDebug {
		t.Errorf("level() = %v, want debug", got.level())
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[cache]\nbackend = \"bolt\"\n")

	got, err := loadConfig(path, env(map[string]string{
		envCacheBackend: "redis",
		envCacheURL:     "redis://localhost:6379/0",
	}))
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if got.Cache.Backend != "redis" || got.Cache.URL != "redis://localhost:6379/0" {
		t.Errorf("cache = %+v, want the environment to win", got.Cache)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		env     map[string]string
		want    string
	}{
		{"unknown backend", "[cache]\nbackend = \"memcached\"\n", nil, "cache.backend"},
		{"unknown backend from env", "", map[string]string{envCacheBackend: "etcd"}, "cache.backend"},
		{"bad level", "[log]\nlevel = \"loud\"\n", nil, "log.level"},
		{"bad ttl", "[cache]\nttl = \"soon\"\n", nil, "invalid duration"},
		{"negative ttl", "[cache]\nttl = \"-1h\"\n", nil, "cache.ttl"},
		{"negative metrics", "[text]\nline_height = -2\n", nil, "text metrics"},
		{"malformed toml", "[cache\n", nil, "load config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, filepath.Base(t.Name())+".toml", tt.content)
			_, err := loadConfig(path, env(tt.env))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("loadConfig() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}

	if _, err := loadConfig(filepath.Join(dir, "missing.toml"), env(nil)); err == nil {
		t.Error("loadConfig() with a missing explicit path should fail")
	}
}
