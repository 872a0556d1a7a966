package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type Server struct {
	Port               string `json:"port" yaml:"port" toml:"port"`
	RequestTimeoutSec  int    `json:"request_timeout_sec" yaml:"request_timeout_sec" toml:"request_timeout_sec"`
	ShutdownTimeoutSec int    `json:"shutdown_timeout_sec" yaml:"shutdown_timeout_sec" toml:"shutdown_timeout_sec"`
}

type Polygon struct {
	BaseURL  string `json:"base_url" yaml:"base_url" toml:"base_url"`
	APIKey   string `json:"api_key" yaml:"api_key" toml:"api_key"`
	AuthMode string `json:"auth_mode" yaml:"auth_mode" toml:"auth_mode"`

	SearchLimit    int `json:"search_limit" yaml:"search_limit" toml:"search_limit"`
	HistoryLimit   int `json:"history_limit" yaml:"history_limit" toml:"history_limit"`
	NewsLimit      int `json:"news_limit" yaml:"news_limit" toml:"news_limit"`
	MaxConcurrency int `json:"max_concurrency" yaml:"max_concurrency" toml:"max_concurrency"`

	MaxRequestsPerMinute  int `json:"max_requests_per_minute" yaml:"max_requests_per_minute" toml:"max_requests_per_minute"`
	Burst                 int `json:"burst" yaml:"burst" toml:"burst"`
	MinRequestIntervalSec int `json:"min_request_interval_sec" yaml:"min_request_interval_sec" toml:"min_request_interval_sec"`

	LookupCacheTTLSec   int `json:"lookup_cache_ttl_sec" yaml:"lookup_cache_ttl_sec" toml:"lookup_cache_ttl_sec"`
	LookupCacheMaxItems int `json:"lookup_cache_max_items" yaml:"lookup_cache_max_items" toml:"lookup_cache_max_items"`
}

type Log struct {
	Level  string `json:"level" yaml:"level" toml:"level"`
	Format string `json:"format" yaml:"format" toml:"format"`
}

type Config struct {
	Server    Server   `json:"server" yaml:"server" toml:"server"`
	Polygon   Polygon  `json:"polygon" yaml:"polygon" toml:"polygon"`
	Log       Log      `json:"log" yaml:"log" toml:"log"`
	Favorites []string `json:"favorites" yaml:"favorites" toml:"favorites"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8080", RequestTimeoutSec: 10, ShutdownTimeoutSec: 5},
		Polygon: Polygon{
			BaseURL:             "https://api.polygon.io",
			AuthMode:            "query",
			SearchLimit:         50,
			HistoryLimit:        500,
			NewsLimit:           10,
			Burst:               1,
			LookupCacheTTLSec:   300,
			LookupCacheMaxItems: 5000,
		},
		Log: Log{Level: "info", Format: "text"},
	}
}

// candidates are probed in order when Load is given no path.
var candidates = []string{"config.yaml", "config.yml", "config.toml", "config.json"}

// Load reads the config file at path. The format follows the extension:
// .yaml/.yml, .toml or .json. ${VAR} references are expanded before
// parsing. An empty path probes the working directory; a missing file
// yields defaults. Environment variables override file values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := decode(path, []byte(os.ExpandEnv(string(b))), &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func decode(path string, b []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, cfg)
	case ".toml":
		return toml.Unmarshal(b, cfg)
	case ".json":
		return json.Unmarshal(b, cfg)
	default:
		return fmt.Errorf("unsupported config format %q (use .yaml, .toml or .json)", ext)
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	envInt("REQUEST_TIMEOUT_SEC", 1, &cfg.Server.RequestTimeoutSec)
	envInt("SHUTDOWN_TIMEOUT_SEC", 1, &cfg.Server.ShutdownTimeoutSec)

	if v := os.Getenv("POLYGON_API_KEY"); v != "" {
		cfg.Polygon.APIKey = v
	}
	if v := os.Getenv("POLYGON_BASE_URL"); v != "" {
		cfg.Polygon.BaseURL = v
	}
	if v := os.Getenv("POLYGON_AUTH_MODE"); v != "" {
		cfg.Polygon.AuthMode = strings.ToLower(v)
	}
	envInt("POLYGON_SEARCH_LIMIT", 1, &cfg.Polygon.SearchLimit)
	envInt("POLYGON_HISTORY_LIMIT", 1, &cfg.Polygon.HistoryLimit)
	envInt("POLYGON_NEWS_LIMIT", 1, &cfg.Polygon.NewsLimit)
	envInt("POLYGON_MAX_CONCURRENCY", 0, &cfg.Polygon.MaxConcurrency)
	envInt("POLYGON_MAX_RPM", 0, &cfg.Polygon.MaxRequestsPerMinute)
	envInt("POLYGON_BURST", 1, &cfg.Polygon.Burst)
	envInt("POLYGON_MIN_INTERVAL_SEC", 0, &cfg.Polygon.MinRequestIntervalSec)
	envInt("POLYGON_LOOKUP_CACHE_TTL_SEC", 0, &cfg.Polygon.LookupCacheTTLSec)
	envInt("POLYGON_LOOKUP_CACHE_MAX_ITEMS", 1, &cfg.Polygon.LookupCacheMaxItems)

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("FAVORITES"); v != "" {
		cfg.Favorites = SplitCSV(v)
	}
}

// envInt stores the integer in key into dst when it parses and is >= floor.
func envInt(key string, floor int, dst *int) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	var x int
	if _, err := fmt.Sscanf(v, "%d", &x); err == nil && x >= floor {
		*dst = x
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return errors.New("server.port is required")
	}
	if c.Server.RequestTimeoutSec <= 0 {
		return errors.New("server.request_timeout_sec must be positive")
	}
	if strings.TrimSpace(c.Polygon.APIKey) == "" {
		return errors.New("polygon.api_key is required (set POLYGON_API_KEY)")
	}
	if u, err := url.Parse(c.Polygon.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("polygon.base_url %q is not an absolute URL", c.Polygon.BaseURL)
	}
	switch c.Polygon.AuthMode {
	case "query", "bearer":
	default:
		return fmt.Errorf("polygon.auth_mode %q must be query or bearer", c.Polygon.AuthMode)
	}
	if c.Polygon.SearchLimit < 1 || c.Polygon.SearchLimit > 1000 {
		return errors.New("polygon.search_limit must be between 1 and 1000")
	}
	if c.Polygon.HistoryLimit < 1 || c.Polygon.HistoryLimit > 50000 {
		return errors.New("polygon.history_limit must be between 1 and 50000")
	}
	if c.Polygon.NewsLimit < 1 || c.Polygon.NewsLimit > 1000 {
		return errors.New("polygon.news_limit must be between 1 and 1000")
	}
	if c.Polygon.MaxConcurrency < 0 || c.Polygon.MaxRequestsPerMinute < 0 || c.Polygon.MinRequestIntervalSec < 0 || c.Polygon.LookupCacheTTLSec < 0 {
		return errors.New("polygon concurrency, pacing and cache settings cannot be negative")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q must be text or json", c.Log.Format)
	}
	return nil
}

// SplitCSV splits s on commas and drops blank entries.
func SplitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
