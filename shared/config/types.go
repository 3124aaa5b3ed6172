package config

import "time"

// CacheDriver selects where resolved media is cached.
type CacheDriver string

const (
	CacheNone   CacheDriver = "none"
	CacheSQLite CacheDriver = "sqlite"
	CacheRedis  CacheDriver = "redis"
)

// Config is the top-level site configuration, corresponding to gallery.yml.
type Config struct {
	Server    ServerConfig    `yaml:"server" koanf:"server"`
	WordPress WordPressConfig `yaml:"wordpress" koanf:"wordpress"`
	Gallery   GalleryConfig   `yaml:"gallery" koanf:"gallery"`
	Cache     CacheConfig     `yaml:"cache" koanf:"cache"`
	Database  DatabaseConfig  `yaml:"database" koanf:"database"`
	Webhook   WebhookConfig   `yaml:"webhook" koanf:"webhook"`
	Log       LogConfig       `yaml:"log" koanf:"log"`
}

type ServerConfig struct {
	Port            int           `yaml:"port" koanf:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" koanf:"shutdown_timeout"`
	// FetchTimeout bounds one gallery fetch cycle started by a request.
	FetchTimeout time.Duration `yaml:"fetch_timeout" koanf:"fetch_timeout"`
	// SessionTTL is how long an idle visitor keeps their gallery position.
	SessionTTL time.Duration `yaml:"session_ttl" koanf:"session_ttl"`
	// ContentDir overrides the built-in markdown sections when set.
	ContentDir string `yaml:"content_dir" koanf:"content_dir"`
	StaticDir  string `yaml:"static_dir" koanf:"static_dir"`
}

type WordPressConfig struct {
	BaseURL string        `yaml:"base_url" koanf:"base_url"`
	Timeout time.Duration `yaml:"timeout" koanf:"timeout"`
}

type GalleryConfig struct {
	PerPage           int    `yaml:"per_page" koanf:"per_page"`
	Concurrency       int    `yaml:"concurrency" koanf:"concurrency"`
	FallbackImage     string `yaml:"fallback_image" koanf:"fallback_image"`
	EmptyMessage      string `yaml:"empty_message" koanf:"empty_message"`
	ErrorMessage      string `yaml:"error_message" koanf:"error_message"`
	RefetchOnNavigate bool   `yaml:"refetch_on_navigate" koanf:"refetch_on_navigate"`
}

type CacheConfig struct {
	Driver        CacheDriver   `yaml:"driver" koanf:"driver"`
	TTL           time.Duration `yaml:"ttl" koanf:"ttl"`
	RedisAddr     string        `yaml:"redis_addr" koanf:"redis_addr"`
	RedisPassword string        `yaml:"redis_password" koanf:"redis_password"`
	RedisDB       int           `yaml:"redis_db" koanf:"redis_db"`
	KeyPrefix     string        `yaml:"key_prefix" koanf:"key_prefix"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" koanf:"path"`
}

type WebhookConfig struct {
	// Secret signs media purge requests. Empty disables the webhook.
	Secret string `yaml:"secret" koanf:"secret"`
}

type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}
