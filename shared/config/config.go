package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override. Nested keys are separated
// by a double underscore: GALLERY_SERVER__PORT sets server.port.
const EnvPrefix = "GALLERY_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := c.YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// YAML marshals the configuration.
func (c *Config) YAML() ([]byte, error) {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling config: %w", err)
	}
	return data, nil
}

// Redacted returns a copy with secrets masked, for display.
func (c *Config) Redacted() *Config {
	out := *c
	if out.Webhook.Secret != "" {
		out.Webhook.Secret = "********"
	}
	if out.Cache.RedisPassword != "" {
		out.Cache.RedisPassword = "********"
	}
	return &out
}

var validCacheDrivers = map[CacheDriver]bool{
	CacheNone:   true,
	CacheSQLite: true,
	CacheRedis:  true,
}

var validLogFormats = map[string]bool{
	"console": true,
	"json":    true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if c.WordPress.BaseURL == "" {
		return fmt.Errorf("wordpress.base_url is required")
	}
	u, err := url.Parse(c.WordPress.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid wordpress.base_url %q: must be an absolute http(s) URL", c.WordPress.BaseURL)
	}

	if c.Gallery.PerPage < 1 || c.Gallery.PerPage > 100 {
		return fmt.Errorf("gallery.per_page must be between 1 and 100")
	}
	if c.Gallery.Concurrency < 1 {
		return fmt.Errorf("gallery.concurrency must be positive")
	}

	if !validCacheDrivers[c.Cache.Driver] {
		return fmt.Errorf("invalid cache.driver %q: must be one of none, sqlite, redis", c.Cache.Driver)
	}
	if c.Cache.Driver == CacheRedis && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache.redis_addr is required for the redis driver")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be non-negative")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if !validLogFormats[c.Log.Format] {
		return fmt.Errorf("invalid log.format %q: must be console or json", c.Log.Format)
	}
	return nil
}
