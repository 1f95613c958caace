// Package config loads jarscope settings.
//
// Values are layered, later layers winning:
//
//  1. Built-in defaults ([Default])
//  2. A TOML file ([DefaultPath] or an explicit --config path)
//  3. JARSCOPE_* environment variables, which may come from a .env file
//     in the working directory
//
// A minimal file:
//
//	[finder]
//	mode = "local-remote-update"
//
//	[repository]
//	url   = "https://repo1.maven.org/maven2"
//	local = "/home/me/.m2/repository"
//
//	[store]
//	backend   = "redis"
//	redis_url = "redis://cache:6379/0"
//
//	[http]
//	timeout = "30s"
//	retries = 2
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/jarscope/pkg/errors"
	"github.com/matzehuels/jarscope/pkg/finder"
	"github.com/matzehuels/jarscope/pkg/httputil"
	"github.com/matzehuels/jarscope/pkg/pipeline"
	"github.com/matzehuels/jarscope/pkg/repository"
	"github.com/matzehuels/jarscope/pkg/store"
	"github.com/matzehuels/jarscope/pkg/tiered"
)

const appName = "jarscope"

// Config is the complete jarscope configuration.
type Config struct {
	Finder     FinderConfig     `toml:"finder"`
	Repository RepositoryConfig `toml:"repository"`
	Store      StoreConfig      `toml:"store"`
	HTTP       HTTPConfig       `toml:"http"`
	Resolver   ResolverConfig   `toml:"resolver"`
	Audit      AuditConfig      `toml:"audit"`
	Server     ServerConfig     `toml:"server"`
}

// FinderConfig configures checksum identification.
type FinderConfig struct {
	Mode        tiered.Mode `toml:"mode"`
	URLTemplate string      `toml:"url_template"`
}

// RepositoryConfig configures POM and artifact downloads.
type RepositoryConfig struct {
	Mode  tiered.Mode `toml:"mode"`
	URL   string      `toml:"url"`
	Local string      `toml:"local"`
}

// StoreConfig selects the local tier of checksum lookups.
type StoreConfig struct {
	Backend         string `toml:"backend"`
	Dir             string `toml:"dir"`
	RedisURL        string `toml:"redis_url"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
	Prefix          string `toml:"prefix"`
}

// HTTPConfig configures remote requests.
type HTTPConfig struct {
	Timeout    time.Duration `toml:"timeout"`
	Retries    int           `toml:"retries"`
	RetryDelay time.Duration `toml:"retry_delay"`
}

// ResolverConfig configures dependency resolution.
type ResolverConfig struct {
	SingleFlight bool `toml:"single_flight"`
}

// AuditConfig configures batch audits.
type AuditConfig struct {
	Workers int `toml:"workers"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Finder: FinderConfig{
			Mode:        tiered.LocalRemoteUpdate,
			URLTemplate: finder.DefaultURLTemplate,
		},
		Repository: RepositoryConfig{
			Mode:  tiered.LocalRemoteUpdate,
			URL:   repository.DefaultBaseURL,
			Local: defaultLocalRepository(),
		},
		Store: StoreConfig{
			Backend:         store.BackendFile,
			Dir:             defaultChecksumDir(),
			MongoDatabase:   store.DefaultMongoDatabase,
			MongoCollection: store.DefaultMongoCollection,
			Prefix:          store.DefaultPrefix,
		},
		HTTP: HTTPConfig{
			Timeout:    httputil.DefaultTimeout,
			RetryDelay: time.Second,
		},
		Resolver: ResolverConfig{SingleFlight: true},
		Audit:    AuditConfig{Workers: pipeline.DefaultWorkers},
		Server:   ServerConfig{Addr: ":8080"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/jarscope/config.toml, or "" when no
// config directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, "config.toml")
}

func defaultLocalRepository() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".m2", "repository")
	}
	return filepath.Join(home, ".m2", "repository")
}

func defaultChecksumDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, appName, "checksums")
}

// Load builds a Config from defaults, the TOML file at path and the
// environment. An empty path reads [DefaultPath] if it exists; an explicit
// path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.decodeFile(path, explicit); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks modes, URLs and the store backend.
func (c *Config) Validate() error {
	if !c.Finder.Mode.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "finder.mode: invalid mode %d", c.Finder.Mode)
	}
	if !c.Repository.Mode.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "repository.mode: invalid mode %d", c.Repository.Mode)
	}
	if err := finder.ValidateTemplate(c.Finder.URLTemplate); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "finder.url_template")
	}
	if err := errors.ValidateURL(c.Repository.URL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "repository.url")
	}
	if c.Repository.Mode.UsesLocal() && c.Repository.Local == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "repository.local is required in %s mode", c.Repository.Mode)
	}

	switch strings.ToLower(c.Store.Backend) {
	case "", store.BackendFile:
		if c.Finder.Mode.UsesLocal() && c.Store.Dir == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.dir is required for the file backend")
		}
	case store.BackendRedis:
		if c.Store.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.redis_url is required for the redis backend")
		}
	case store.BackendMongo:
		if c.Store.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.mongo_uri is required for the mongo backend")
		}
	case store.BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "store.backend: unknown backend %q", c.Store.Backend)
	}

	if c.HTTP.Timeout <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "http.timeout must be positive")
	}
	if c.HTTP.Retries < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "http.retries cannot be negative")
	}
	if c.Audit.Workers < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "audit.workers must be at least 1")
	}
	return nil
}

// StoreOptions converts the store section for [store.Open].
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:         c.Store.Backend,
		Dir:             c.Store.Dir,
		RedisURL:        c.Store.RedisURL,
		MongoURI:        c.Store.MongoURI,
		MongoDatabase:   c.Store.MongoDatabase,
		MongoCollection: c.Store.MongoCollection,
		Prefix:          c.Store.Prefix,
	}
}

// HTTPClient builds the client shared by the finder and the repository.
func (c *Config) HTTPClient() *httputil.Client {
	return httputil.NewClient(c.HTTP.Timeout,
		httputil.WithRetries(c.HTTP.Retries),
		httputil.WithRetryDelay(c.HTTP.RetryDelay),
	)
}
