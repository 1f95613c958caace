package config

import (
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/matzehuels/jarscope/pkg/errors"
	"github.com/matzehuels/jarscope/pkg/tiered"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "JARSCOPE_"

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. A missing default .env is not
// an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "load env files")
	}
	return nil
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

type envVar struct {
	name  string
	apply func(c *Config, v string) error
}

func stringVar(dst func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*dst(c) = v
		return nil
	}
}

func modeVar(dst func(*Config) *tiered.Mode) func(*Config, string) error {
	return func(c *Config, v string) error {
		m, err := tiered.ParseMode(v)
		if err != nil {
			return err
		}
		*dst(c) = m
		return nil
	}
}

func intVar(dst func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*dst(c) = n
		return nil
	}
}

func durationVar(dst func(*Config) *time.Duration) func(*Config, string) error {
	return func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		*dst(c) = d
		return nil
	}
}

func boolVar(dst func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*dst(c) = b
		return nil
	}
}

var envVars = []envVar{
	{"FINDER_MODE", modeVar(func(c *Config) *tiered.Mode { return &c.Finder.Mode })},
	{"SEARCH_URL", stringVar(func(c *Config) *string { return &c.Finder.URLTemplate })},
	{"REPOSITORY_MODE", modeVar(func(c *Config) *tiered.Mode { return &c.Repository.Mode })},
	{"REPOSITORY_URL", stringVar(func(c *Config) *string { return &c.Repository.URL })},
	{"LOCAL_REPOSITORY", stringVar(func(c *Config) *string { return &c.Repository.Local })},
	{"STORE_BACKEND", stringVar(func(c *Config) *string { return &c.Store.Backend })},
	{"STORE_DIR", stringVar(func(c *Config) *string { return &c.Store.Dir })},
	{"STORE_PREFIX", stringVar(func(c *Config) *string { return &c.Store.Prefix })},
	{"REDIS_URL", stringVar(func(c *Config) *string { return &c.Store.RedisURL })},
	{"MONGO_URI", stringVar(func(c *Config) *string { return &c.Store.MongoURI })},
	{"MONGO_DATABASE", stringVar(func(c *Config) *string { return &c.Store.MongoDatabase })},
	{"MONGO_COLLECTION", stringVar(func(c *Config) *string { return &c.Store.MongoCollection })},
	{"HTTP_TIMEOUT", durationVar(func(c *Config) *time.Duration { return &c.HTTP.Timeout })},
	{"HTTP_RETRIES", intVar(func(c *Config) *int { return &c.HTTP.Retries })},
	{"HTTP_RETRY_DELAY", durationVar(func(c *Config) *time.Duration { return &c.HTTP.RetryDelay })},
	{"SINGLE_FLIGHT", boolVar(func(c *Config) *bool { return &c.Resolver.SingleFlight })},
	{"WORKERS", intVar(func(c *Config) *int { return &c.Audit.Workers })},
	{"SERVER_ADDR", stringVar(func(c *Config) *string { return &c.Server.Addr })},
}

// EnvNames lists every recognized environment variable.
func EnvNames() []string {
	names := make([]string, len(envVars))
	for i, v := range envVars {
		names[i] = EnvPrefix + v.name
	}
	return names
}

// ApplyEnv overrides c with JARSCOPE_* variables found through lookup.
// Empty values are ignored.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	for _, v := range envVars {
		name := EnvPrefix + v.name
		val, ok := lookup(name)
		if !ok || val == "" {
			continue
		}
		if err := v.apply(c, val); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s=%q", name, val)
		}
	}
	return nil
}
