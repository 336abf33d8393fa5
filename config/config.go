// Package config provides configuration management for the catalog service.
//
// Values are resolved in three layers: built-in defaults, an optional YAML
// file named by CONFIG_FILE, and environment variables (highest priority).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Eviction policies accepted by CacheConfig.Eviction.
const (
	EvictionFIFO = "fifo"
	EvictionLRU  = "lru"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Cache    CacheConfig    `yaml:"cache"`
	Source   SourceConfig   `yaml:"source"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string        `yaml:"port"`
	RateLimit      int           `yaml:"rate_limit"`
	RateWindow     time.Duration `yaml:"rate_window"`
	CORSOrigins    []string      `yaml:"cors_origins"`
	SwaggerUser    string        `yaml:"swagger_user"`
	SwaggerPass    string        `yaml:"swagger_pass"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// OperatorKeys guard the cache and activity endpoints. Empty disables the guard.
	OperatorKeys    []string      `yaml:"operator_keys"`
	StreamBuffer    int           `yaml:"stream_buffer"`
	StreamHeartbeat time.Duration `yaml:"stream_heartbeat"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// CacheConfig holds content cache configuration.
type CacheConfig struct {
	Size     int           `yaml:"size"`
	TTL      time.Duration `yaml:"ttl"`
	Eviction string        `yaml:"eviction"`
}

// SourceConfig describes the remote content source.
type SourceConfig struct {
	BaseURL           string        `yaml:"base_url"`
	Timeout           time.Duration `yaml:"timeout"`
	Envelope          string        `yaml:"envelope"`
	Retries           int           `yaml:"retries"`
	Warmup            bool          `yaml:"warmup"`
	CategoriesPath    string        `yaml:"categories_path"`
	CoursesPath       string        `yaml:"courses_path"`
	HomepagePath      string        `yaml:"homepage_path"`
	StoryPath         string        `yaml:"story_path"`
	CourseContentPath string        `yaml:"course_content_path"`
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int           `yaml:"circuit_breaker_failure_threshold"`
	CircuitBreakerSuccessThreshold int           `yaml:"circuit_breaker_success_threshold"`
	CircuitBreakerTimeout          time.Duration `yaml:"circuit_breaker_timeout"`
}

// DatabaseConfig holds MongoDB configuration for the activity log store.
type DatabaseConfig struct {
	URI          string        `yaml:"uri"`
	DatabaseName string        `yaml:"database_name"`
	LogsTTL      time.Duration `yaml:"logs_ttl"`
	Enabled      bool          `yaml:"enabled"`
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int           `yaml:"circuit_breaker_failure_threshold"`
	CircuitBreakerSuccessThreshold int           `yaml:"circuit_breaker_success_threshold"`
	CircuitBreakerTimeout          time.Duration `yaml:"circuit_breaker_timeout"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8080",
			RateLimit:       100,
			RateWindow:      time.Minute,
			CORSOrigins:     defaultCORSOrigins(),
			RequestTimeout:  30 * time.Second,
			StreamBuffer:    64,
			StreamHeartbeat: 15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Size:     50,
			TTL:      5 * time.Minute,
			Eviction: EvictionFIFO,
		},
		Source: SourceConfig{
			BaseURL:                        "http://localhost:4000/content",
			Timeout:                        10 * time.Second,
			CategoriesPath:                 "categories",
			CoursesPath:                    "courses",
			HomepagePath:                   "homepage",
			StoryPath:                      "story",
			CourseContentPath:              "courses/{id}/content",
			CircuitBreakerFailureThreshold: 5,
			CircuitBreakerSuccessThreshold: 2,
			CircuitBreakerTimeout:          30 * time.Second,
		},
		Database: DatabaseConfig{
			URI:                            "mongodb://localhost:27017",
			DatabaseName:                   "catalog_service",
			LogsTTL:                        30 * 24 * time.Hour,
			CircuitBreakerFailureThreshold: 5,
			CircuitBreakerSuccessThreshold: 2,
			CircuitBreakerTimeout:          30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds a Config from defaults, the optional CONFIG_FILE and the environment.
func Load() (Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings the service cannot run with.
func (c Config) Validate() error {
	if c.Cache.Size <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", c.Cache.Size)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.Cache.TTL)
	}
	if c.Cache.Eviction != EvictionFIFO && c.Cache.Eviction != EvictionLRU {
		return fmt.Errorf("unknown cache eviction policy %q", c.Cache.Eviction)
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("source timeout must be positive, got %s", c.Source.Timeout)
	}
	if c.Source.BaseURL == "" {
		return fmt.Errorf("source base url is required")
	}
	if c.Server.StreamBuffer <= 0 {
		return fmt.Errorf("stream buffer must be positive, got %d", c.Server.StreamBuffer)
	}
	if c.Source.Retries < 0 {
		return fmt.Errorf("source retries must not be negative, got %d", c.Source.Retries)
	}
	// Requests must outlive every attempt against the source.
	if budget := c.Source.Timeout * time.Duration(c.Source.Retries+1); c.Server.RequestTimeout > 0 && c.Server.RequestTimeout <= budget {
		return fmt.Errorf("request timeout %s must exceed source timeout budget %s", c.Server.RequestTimeout, budget)
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	s := &cfg.Server
	s.Port = getEnv("PORT", s.Port)
	s.RateLimit = getEnvInt("RATE_LIMIT", s.RateLimit)
	s.RateWindow = getEnvDuration("RATE_WINDOW", s.RateWindow)
	s.CORSOrigins = parseCORSOrigins(os.Getenv("CORS_ORIGINS"), s.CORSOrigins)
	s.SwaggerUser = getEnv("SWAGGER_USER", s.SwaggerUser)
	s.SwaggerPass = getEnv("SWAGGER_PASS", s.SwaggerPass)
	s.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT", s.RequestTimeout)
	s.OperatorKeys = parseList(os.Getenv("OPERATOR_API_KEYS"), s.OperatorKeys)
	s.StreamBuffer = getEnvInt("STREAM_BUFFER", s.StreamBuffer)
	s.StreamHeartbeat = getEnvDuration("STREAM_HEARTBEAT", s.StreamHeartbeat)
	s.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", s.ShutdownTimeout)

	c := &cfg.Cache
	c.Size = getEnvInt("CACHE_SIZE", c.Size)
	c.TTL = getEnvDuration("CACHE_TTL", c.TTL)
	c.Eviction = strings.ToLower(getEnv("CACHE_EVICTION", c.Eviction))

	src := &cfg.Source
	src.BaseURL = strings.TrimRight(getEnv("SOURCE_BASE_URL", src.BaseURL), "/")
	src.Timeout = getEnvDuration("SOURCE_TIMEOUT", src.Timeout)
	src.Envelope = getEnv("SOURCE_ENVELOPE", src.Envelope)
	src.Retries = getEnvInt("SOURCE_RETRIES", src.Retries)
	src.Warmup = getEnvBool("SOURCE_WARMUP", src.Warmup)
	src.CircuitBreakerFailureThreshold = getEnvInt("SOURCE_CB_FAILURE_THRESHOLD", src.CircuitBreakerFailureThreshold)
	src.CircuitBreakerSuccessThreshold = getEnvInt("SOURCE_CB_SUCCESS_THRESHOLD", src.CircuitBreakerSuccessThreshold)
	src.CircuitBreakerTimeout = getEnvDuration("SOURCE_CB_TIMEOUT", src.CircuitBreakerTimeout)

	db := &cfg.Database
	db.URI = getEnv("MONGODB_URI", db.URI)
	db.DatabaseName = getEnv("MONGODB_DATABASE", db.DatabaseName)
	db.LogsTTL = getEnvDuration("MONGODB_LOGS_TTL", db.LogsTTL)
	db.Enabled = getEnvBool("MONGODB_ENABLED", db.Enabled)
	db.CircuitBreakerFailureThreshold = getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", db.CircuitBreakerFailureThreshold)
	db.CircuitBreakerSuccessThreshold = getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", db.CircuitBreakerSuccessThreshold)
	db.CircuitBreakerTimeout = getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", db.CircuitBreakerTimeout)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Pretty = getEnvBool("LOG_PRETTY", cfg.Log.Pretty)
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func defaultCORSOrigins() []string {
	// Default origins for local development
	return []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
}

func parseCORSOrigins(s string, current []string) []string {
	if s == "" {
		return current
	}
	parts := strings.Split(s, ",")
	defaults := defaultCORSOrigins()
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}

// parseList splits a comma separated value, keeping current when s is empty.
func parseList(s string, current []string) []string {
	if s == "" {
		return current
	}
	var result []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			result = append(result, v)
		}
	}
	return result
}
