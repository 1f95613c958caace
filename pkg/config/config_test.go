package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/jarscope/pkg/errors"
	"github.com/matzehuels/jarscope/pkg/store"
	"github.com/matzehuels/jarscope/pkg/tiered"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func noEnv(string) (string, bool) { return "", false }

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Finder.Mode != tiered.LocalRemoteUpdate || cfg.Repository.Mode != tiered.LocalRemoteUpdate {
		t.Errorf("modes = %v/%v", cfg.Finder.Mode, cfg.Repository.Mode)
	}
	if cfg.HTTP.Timeout != 10*time.Second || cfg.HTTP.Retries != 0 {
		t.Errorf("http = %+v", cfg.HTTP)
	}
	if cfg.Audit.Workers != 8 {
		t.Errorf("workers = %d", cfg.Audit.Workers)
	}
	if !strings.HasSuffix(filepath.ToSlash(cfg.Repository.Local), ".m2/repository") {
		t.Errorf("local repository = %s", cfg.Repository.Local)
	}
	if !strings.HasSuffix(filepath.ToSlash(cfg.Store.Dir), "jarscope/checksums") {
		t.Errorf("store dir = %s", cfg.Store.Dir)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[finder]
mode = "local"

[repository]
mode = "remote"
url = "https://repo.example.com/maven2"
local = "/tmp/m2"

[store]
backend = "redis"
redis_url = "redis://localhost:6379/0"

[http]
timeout = "30s"
retries = 2

[audit]
workers = 3
`)
	t.Setenv("JARSCOPE_WORKERS", "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Finder.Mode != tiered.LocalOnly || cfg.Repository.Mode != tiered.RemoteOnly {
		t.Errorf("modes = %v/%v", cfg.Finder.Mode, cfg.Repository.Mode)
	}
	if cfg.Repository.URL != "https://repo.example.com/maven2" || cfg.Repository.Local != "/tmp/m2" {
		t.Errorf("repository = %+v", cfg.Repository)
	}
	if cfg.Store.Backend != store.BackendRedis || cfg.Store.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.HTTP.Timeout != 30*time.Second || cfg.HTTP.Retries != 2 {
		t.Errorf("http = %+v", cfg.HTTP)
	}
	if cfg.Audit.Workers != 3 {
		t.Errorf("workers = %d", cfg.Audit.Workers)
	}
	if cfg.Finder.URLTemplate == "" {
		t.Error("unset keys should keep defaults")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `[finder`},
		{"unknown key", "[finder]\nmood = \"local\"\n"},
		{"bad mode", "[finder]\nmode = \"sometimes\"\n"},
		{"bad backend", "[store]\nbackend = \"s3\"\n"},
		{"redis without url", "[store]\nbackend = \"redis\"\n"},
		{"template without placeholder", "[finder]\nurl_template = \"https://example.com/search\"\n"},
		{"zero workers", "[audit]\nworkers = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("err = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	if _, err := Load(""); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"JARSCOPE_FINDER_MODE":      "LOCAL_REMOTE",
		"JARSCOPE_REPOSITORY_URL":   "https://mirror.example.com/m2",
		"JARSCOPE_STORE_BACKEND":    "none",
		"JARSCOPE_HTTP_TIMEOUT":     "2s",
		"JARSCOPE_HTTP_RETRIES":     "4",
		"JARSCOPE_SINGLE_FLIGHT":    "false",
		"JARSCOPE_WORKERS":          "16",
		"JARSCOPE_LOCAL_REPOSITORY": "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	local := cfg.Repository.Local
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Finder.Mode != tiered.LocalRemote {
		t.Errorf("finder mode = %v", cfg.Finder.Mode)
	}
	if cfg.Repository.URL != "https://mirror.example.com/m2" {
		t.Errorf("repository url = %s", cfg.Repository.URL)
	}
	if cfg.Repository.Local != local {
		t.Error("empty variable should not override")
	}
	if cfg.Store.Backend != store.BackendNone {
		t.Errorf("backend = %s", cfg.Store.Backend)
	}
	if cfg.HTTP.Timeout != 2*time.Second || cfg.HTTP.Retries != 4 {
		t.Errorf("http = %+v", cfg.HTTP)
	}
	if cfg.Resolver.SingleFlight || cfg.Audit.Workers != 16 {
		t.Errorf("resolver = %+v, audit = %+v", cfg.Resolver, cfg.Audit)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	for _, kv := range [][2]string{
		{"JARSCOPE_FINDER_MODE", "never"},
		{"JARSCOPE_HTTP_TIMEOUT", "soon"},
		{"JARSCOPE_WORKERS", "many"},
		{"JARSCOPE_SINGLE_FLIGHT", "maybe"},
	} {
		lookup := func(k string) (string, bool) {
			if k == kv[0] {
				return kv[1], true
			}
			return "", false
		}
		err := Default().ApplyEnv(lookup)
		if !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("%s=%s: err = %v, want INVALID_CONFIG", kv[0], kv[1], err)
		}
	}
	if err := Default().ApplyEnv(noEnv); err != nil {
		t.Errorf("empty environment: %v", err)
	}
}

func TestEnvWinsOverFile(t *testing.T) {
	path := writeConfig(t, "[audit]\nworkers = 3\n")
	t.Setenv("JARSCOPE_WORKERS", "5")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Audit.Workers != 5 {
		t.Errorf("workers = %d, want 5", cfg.Audit.Workers)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("JARSCOPE_TEST_DOTENV=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JARSCOPE_TEST_DOTENV", "")
	os.Unsetenv("JARSCOPE_TEST_DOTENV")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("JARSCOPE_TEST_DOTENV"); got != "from-file" {
		t.Errorf("JARSCOPE_TEST_DOTENV = %q", got)
	}

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("expected error for explicit missing file")
	}
}

func TestStoreOptions(t *testing.T) {
	cfg := Default()
	cfg.Store.Backend = store.BackendMongo
	cfg.Store.MongoURI = "mongodb://localhost"
	opts := cfg.StoreOptions()
	if opts.Backend != store.BackendMongo || opts.MongoURI != "mongodb://localhost" ||
		opts.MongoDatabase != store.DefaultMongoDatabase || opts.Prefix != store.DefaultPrefix {
		t.Errorf("options = %+v", opts)
	}
}

func TestEnvNames(t *testing.T) {
	for _, n := range EnvNames() {
		if !strings.HasPrefix(n, EnvPrefix) {
			t.Errorf("%s lacks prefix", n)
		}
	}
}
