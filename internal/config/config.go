package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr      string        `toml:"listen_addr"`
	Port            string        `toml:"port"`
	GinMode         string        `toml:"gin_mode"`
	DatabaseDriver  string        `toml:"database_driver"`
	DatabasePath    string        `toml:"database_path"`
	DatabaseURL     string        `toml:"database_url"`
	ConnectTimeout  time.Duration `toml:"-"`
	SiteName        string        `toml:"site_name"`
	SiteDescription string        `toml:"site_description"`
	SiteBaseURL     string        `toml:"site_base_url"`
	Revalidate      time.Duration `toml:"-"`
	ListingLimit    int           `toml:"listing_limit"`
	Timezone        string        `toml:"timezone"`
	LogLevel        string        `toml:"log_level"`
	LogFormat       string        `toml:"log_format"`
}

// fileConfig mirrors AppConfig for TOML decoding; durations are plain seconds there.
type fileConfig struct {
	AppConfig
	ConnectTimeoutSeconds int  `toml:"database_connect_timeout"`
	RevalidateSeconds     *int `toml:"revalidate_seconds"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() AppConfig {
	return AppConfig{
		Port:            "8080",
		GinMode:         "release",
		DatabaseDriver:  DriverSQLite,
		DatabasePath:    "traveljournal.db",
		ConnectTimeout:  30 * time.Second,
		SiteName:        "Travel Journal",
		SiteDescription: "A clean, elegant travel blog to share your adventures.",
		Revalidate:      60 * time.Second,
		ListingLimit:    12,
		Timezone:        "UTC",
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	cfg := Defaults()
	applyEnv(&cfg)
	return cfg
}

// LoadFile decodes an optional TOML file on top of the defaults and then applies
// environment overrides. An empty path behaves like Load.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()

	path = strings.TrimSpace(path)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return AppConfig{}, fmt.Errorf("error reading config file: %w", err)
		}

		fc := fileConfig{AppConfig: cfg}
		if err := toml.Unmarshal(data, &fc); err != nil {
			return AppConfig{}, fmt.Errorf("error parsing config file: %w", err)
		}
		cfg = fc.AppConfig
		if fc.ConnectTimeoutSeconds > 0 {
			cfg.ConnectTimeout = time.Duration(fc.ConnectTimeoutSeconds) * time.Second
		}
		if fc.RevalidateSeconds != nil && *fc.RevalidateSeconds >= 0 {
			cfg.Revalidate = time.Duration(*fc.RevalidateSeconds) * time.Second
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	setString(&cfg.Port, "PORT")
	setString(&cfg.ListenAddr, "LISTEN_ADDR")
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = fmt.Sprintf(":%s", cfg.Port)
	}

	setString(&cfg.GinMode, "GIN_MODE")
	setString(&cfg.DatabaseDriver, "DATABASE_DRIVER")
	cfg.DatabaseDriver = strings.ToLower(cfg.DatabaseDriver)
	setString(&cfg.DatabasePath, "DATABASE_PATH")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.SiteName, "SITE_NAME")
	setString(&cfg.SiteDescription, "SITE_DESCRIPTION")
	setString(&cfg.SiteBaseURL, "SITE_BASE_URL")
	cfg.SiteBaseURL = strings.TrimRight(cfg.SiteBaseURL, "/")
	setString(&cfg.Timezone, "TIMEZONE")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFormat, "LOG_FORMAT")

	if seconds, ok := envInt("DATABASE_CONNECT_TIMEOUT"); ok && seconds > 0 {
		cfg.ConnectTimeout = time.Duration(seconds) * time.Second
	}
	if seconds, ok := envInt("REVALIDATE_SECONDS"); ok && seconds >= 0 {
		cfg.Revalidate = time.Duration(seconds) * time.Second
	}
	if limit, ok := envInt("LISTING_LIMIT"); ok && limit > 0 {
		cfg.ListingLimit = limit
	}
}

// Validate reports configuration that cannot start a server.
func (c AppConfig) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
		if strings.TrimSpace(c.DatabasePath) == "" {
			return errors.New("database path is required for the sqlite driver")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
	}

	if c.ListingLimit <= 0 {
		return errors.New("listing limit must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured display timezone.
func (c AppConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

func setString(dst *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*dst = value
	}
}

func envInt(key string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}
