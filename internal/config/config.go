package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// Config holds the configuration for the CrudNote front and its dependencies.
type Config struct {
	// Listen is the address the CrudNote front will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// LogLevel is the default log level, the --log-level flag takes precedence.
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// SessionKey is the key used to sign the tab-scoped session cookie.
	SessionKey string `yaml:"session_key" mapstructure:"session_key"`
	// SessionMaxAge is the maximum age of a session in seconds.
	// 0 keeps the cookie for the lifetime of the browser session only.
	SessionMaxAge int `yaml:"session_max_age" mapstructure:"session_max_age"`
	// ThemeMaxAge is the lifetime in seconds of the durable theme preference cookie.
	ThemeMaxAge int `yaml:"theme_max_age" mapstructure:"theme_max_age"`
	// SecureCookies marks all cookies as Secure.
	SecureCookies bool `yaml:"secure_cookies" mapstructure:"secure_cookies"`
	// Backend holds the configuration of the REST backend.
	Backend *BackendConfig `yaml:"backend" mapstructure:"backend"`
	// Views holds the configuration of the view fragment loader.
	Views *ViewsConfig `yaml:"views" mapstructure:"views"`
	// Cache holds the cache engine configuration.
	Cache *CacheConfig `yaml:"cache" mapstructure:"cache"`
	// Gravatar holds the configuration for Gravatar profile pictures.
	Gravatar *GravatarConfig `yaml:"gravatar" mapstructure:"gravatar"`
}

// BackendConfig holds the configuration for the REST backend serving the users collection.
type BackendConfig struct {
	// URL is the base URL of the backend (e.g. a json-server instance).
	URL string `yaml:"url" mapstructure:"url"`
	// Timeout bounds every backend request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ViewsConfig holds the configuration for the view fragment loader.
type ViewsConfig struct {
	// Dir is a directory containing views/<name>.html. Empty uses the embedded views.
	Dir string `yaml:"dir" mapstructure:"dir"`
	// BaseURL fetches fragments from <base_url>/views/<name>.html instead of the filesystem.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// CacheEnabled enables caching of loaded fragments.
	CacheEnabled bool `yaml:"cache_enabled" mapstructure:"cache_enabled"`
	// CacheTTL is how long a loaded fragment stays cached.
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	// CachePurgeSchedule is the cron schedule on which the fragment cache is purged.
	CachePurgeSchedule string `yaml:"cache_purge_schedule" mapstructure:"cache_purge_schedule"`
}

// CacheConfig holds the configuration for the cache engine.
type CacheConfig struct {
	// Type is the type of cache engine to use (e.g., "memory", "redis").
	Type CacheType `yaml:"type" mapstructure:"type"`
	// RedisURL is the URL for the Redis cache if using Redis.
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`
}

// GravatarConfig holds the configuration for Gravatar profile pictures.
type GravatarConfig struct {
	// Enabled indicates whether Gravatar support is enabled.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// DefaultImage is the default image to use when no Gravatar is found.
	// Valid values: "404", "mp", "identicon", "monsterid", "wavatar", "retro", "robohash", "blank"
	DefaultImage string `yaml:"default_image" mapstructure:"default_image"`
	// Rating is the maximum rating for Gravatar images.
	// Valid values: "g", "pg", "r", "x"
	Rating string `yaml:"rating" mapstructure:"rating"`
	// Size is the size of the Gravatar image in pixels (1-2048).
	Size int `yaml:"size" mapstructure:"size"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
// A missing config file is not an error; defaults and env vars are used instead.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("CRUDNOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.crudnote")
		v.AddConfigPath("/etc/crudnote")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with the CRUDNOTE_ prefix override config file values")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	sanitizeConfig(&c)

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("session_key", "")
	v.SetDefault("session_max_age", 0)
	v.SetDefault("theme_max_age", 31536000) // 1 year
	v.SetDefault("secure_cookies", false)

	// Backend defaults, json-server listens on 3000 by default
	v.SetDefault("backend.url", "http://localhost:3000")
	v.SetDefault("backend.timeout", 10*time.Second)

	// Views defaults
	v.SetDefault("views.dir", "")
	v.SetDefault("views.base_url", "")
	v.SetDefault("views.cache_enabled", true)
	v.SetDefault("views.cache_ttl", 10*time.Minute)
	v.SetDefault("views.cache_purge_schedule", "0 * * * *") // hourly

	// Cache defaults
	v.SetDefault("cache.type", CacheTypeMemory)
	v.SetDefault("cache.redis_url", "")

	// Gravatar defaults
	v.SetDefault("gravatar.enabled", false)
	v.SetDefault("gravatar.default_image", "robohash")
	v.SetDefault("gravatar.rating", "g")
	v.SetDefault("gravatar.size", 80)
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing crudnote config")
	}

	if c.SessionKey == "" {
		return fmt.Errorf("session key is required")
	}
	if c.SessionMaxAge < 0 {
		return fmt.Errorf("session max age must not be negative")
	}

	if c.Backend == nil || c.Backend.URL == "" {
		return fmt.Errorf("backend URL is required")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend timeout must be greater than 0")
	}

	if c.Views == nil {
		c.Views = &ViewsConfig{}
	}
	if c.Views.Dir != "" && c.Views.BaseURL != "" {
		return fmt.Errorf("only one of views dir or views base URL can be configured at a time")
	}
	if c.Views.CacheEnabled && c.Views.CachePurgeSchedule != "" {
		// Basic validation for cron format (5 fields)
		if len(strings.Fields(c.Views.CachePurgeSchedule)) != 5 {
			return fmt.Errorf("views cache purge schedule must be a valid cron expression with 5 fields (minute hour day month weekday)")
		}
	}

	if c.Cache != nil {
		if c.Cache.Type == "" {
			return fmt.Errorf("cache type is required when cache is enabled")
		}
		if c.Cache.Type != CacheTypeMemory && c.Cache.Type != CacheTypeRedis {
			return fmt.Errorf("unknown cache type %q", c.Cache.Type)
		}
		if c.Cache.Type == CacheTypeRedis && c.Cache.RedisURL == "" {
			return fmt.Errorf("Redis URL is required when Redis cache is enabled") //nolint:staticcheck
		}
	} else {
		c.Cache = &CacheConfig{
			Type: CacheTypeMemory,
		}
	}

	if c.Gravatar != nil && c.Gravatar.Enabled {
		if c.Gravatar.Size < 1 || c.Gravatar.Size > 2048 {
			return fmt.Errorf("gravatar size must be between 1 and 2048")
		}
	}

	return nil
}

// sanitizeConfig sanitizes the configuration values.
func sanitizeConfig(c *Config) {
	if c == nil {
		return
	}

	c.Listen = urlSanitize(c.Listen)

	if c.Backend != nil {
		c.Backend.URL = urlSanitize(c.Backend.URL)
	}

	if c.Views != nil && c.Views.BaseURL != "" {
		c.Views.BaseURL = urlSanitize(c.Views.BaseURL)
	}
}

func urlSanitize(url string) string {
	return strings.TrimSuffix(strings.TrimSpace(url), "/")
}
