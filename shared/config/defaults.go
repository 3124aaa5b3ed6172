package config

import "time"

// DefaultConfig returns the settings used when neither the file nor the
// environment says otherwise.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: 5 * time.Second,
			FetchTimeout:    30 * time.Second,
			SessionTTL:      30 * time.Minute,
		},
		WordPress: WordPressConfig{
			BaseURL: "http://localhost/wordpress/wp-json/wp/v2",
			Timeout: 10 * time.Second,
		},
		Gallery: GalleryConfig{
			PerPage:       6,
			Concurrency:   6,
			FallbackImage: "/static/default-image.svg",
			EmptyMessage:  "Sin resultados",
			ErrorMessage:  "Error: Sin resultados.",
		},
		Cache: CacheConfig{
			Driver:    CacheSQLite,
			TTL:       24 * time.Hour,
			RedisAddr: "localhost:6379",
			KeyPrefix: "wpgallery:",
		},
		Database: DatabaseConfig{
			Path: "./gallery.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
