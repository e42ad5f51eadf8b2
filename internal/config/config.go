package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the server needs at startup. Values come from the
// environment, optionally overlaid on a YAML file pointed at by CONFIG_FILE.
type Config struct {
	Port string `yaml:"port"`

	// Instagram credentials. Both optional; empty means the pipeline runs
	// unauthenticated and login-walled posts come back empty.
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// StorageBackend selects "memory" or "disk".
	StorageBackend string        `yaml:"storage_backend"`
	MediaDir       string        `yaml:"media_dir"`
	MediaRetention time.Duration `yaml:"media_retention"`
	SessionFile    string        `yaml:"session_file"`

	// ProxyURL routes media downloads through a SOCKS5 or HTTP proxy.
	ProxyURL string `yaml:"proxy_url"`

	// Optional integrations. Empty disables each.
	DatabaseURL   string `yaml:"database_url"`
	JWTSecret     string `yaml:"jwt_secret"`
	TelegramToken string `yaml:"telegram_token"`

	// MaxBrowsers caps concurrent browser contexts across requests.
	MaxBrowsers int64 `yaml:"max_browsers"`

	LogLevel string `yaml:"log_level"`
}

func defaults() *Config {
	return &Config{
		Port:           "8080",
		StorageBackend: "memory",
		MediaDir:       "static/images",
		MediaRetention: time.Hour,
		SessionFile:    "instagram_session.json",
		MaxBrowsers:    4,
		LogLevel:       "info",
	}
}

// Load builds the config from an optional YAML file plus environment
// overrides. Environment always wins so deployments can tweak a shared file.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.StorageBackend != "memory" && cfg.StorageBackend != "disk" {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
	if cfg.MediaRetention <= 0 {
		return nil, fmt.Errorf("media retention must be positive, got %s", cfg.MediaRetention)
	}
	if cfg.MaxBrowsers <= 0 {
		cfg.MaxBrowsers = 1
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Port, "PORT")
	setString(&cfg.Username, "IG_USERNAME")
	setString(&cfg.Password, "IG_PASSWORD")
	setString(&cfg.StorageBackend, "STORAGE_BACKEND")
	setString(&cfg.MediaDir, "MEDIA_DIR")
	setString(&cfg.SessionFile, "SESSION_FILE")
	setString(&cfg.ProxyURL, "PROXY_URL")
	setString(&cfg.DatabaseURL, "DB_URL")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.TelegramToken, "TELEGRAM_BOTFATHER_TOKEN")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("MEDIA_RETENTION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid MEDIA_RETENTION %q: %w", v, err)
		}
		cfg.MediaRetention = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// HasCredentials reports whether login should be attempted at all.
func (c *Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}
