package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Run modes
const (
	ModeDiscover = "discover"
	ModeCatalog  = "catalog"
)

// Config represents the application configuration
type Config struct {
	// Target site
	BaseURL    string
	LandingURL string

	// Run mode: discover (live form traversal) or catalog (static cross-product)
	Mode string

	// Output
	OutputPath string

	// Browser configuration
	Headless          bool
	NavigationTimeout time.Duration

	// Traversal timing
	SettleDelay     time.Duration
	SettlePolls     int
	PolitenessDelay time.Duration
	MaxRetries      int

	// Dropdown selectors, each a comma-separated preference list
	CategorySelector string
	BrandSelector    string
	ModelSelector    string
	FuelSelector     string

	// Probe guard cache
	CacheBackend  string // memcache, local or off
	MemcacheAddr  string
	ProbeGuardTTL time.Duration

	// Optional Redis record publishing
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Environment
	Environment string
	Verbose     bool
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "1"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAXLEN", "500"))
	settleMs, _ := strconv.Atoi(getEnv("SETTLE_DELAY_MS", "800"))
	settlePolls, _ := strconv.Atoi(getEnv("SETTLE_POLLS", "5"))
	politenessMs, _ := strconv.Atoi(getEnv("POLITENESS_DELAY_MS", "1500"))
	navTimeoutSec, _ := strconv.Atoi(getEnv("NAVIGATION_TIMEOUT_SECONDS", "30"))
	guardTTLSec, _ := strconv.Atoi(getEnv("PROBE_GUARD_TTL_SECONDS", "3600"))
	maxRetries, _ := strconv.Atoi(getEnv("MAX_RETRIES", "3"))

	baseURL := getEnv("TARGET_BASE_URL", "https://www.batterymela.com/battery")

	return &Config{
		BaseURL:           baseURL,
		LandingURL:        getEnv("TARGET_LANDING_URL", "https://www.batterymela.com/battery-finder"),
		Mode:              getEnv("RUN_MODE", ModeDiscover),
		OutputPath:        getEnv("OUTPUT_PATH", "data/battery_specs.csv"),
		Headless:          getEnv("HEADLESS", "true") == "true",
		NavigationTimeout: time.Duration(navTimeoutSec) * time.Second,
		SettleDelay:       time.Duration(settleMs) * time.Millisecond,
		SettlePolls:       settlePolls,
		PolitenessDelay:   time.Duration(politenessMs) * time.Millisecond,
		MaxRetries:        maxRetries,

		CategorySelector: getEnv("CATEGORY_SELECTOR", "#vehicle_category, select[name='category']"),
		BrandSelector:    getEnv("BRAND_SELECTOR", "#vehicle_brand, select[name='brand']"),
		ModelSelector:    getEnv("MODEL_SELECTOR", "#vehicle_model, select[name='model']"),
		FuelSelector:     getEnv("FUEL_SELECTOR", "#vehicle_fuel, select[name='fuel']"),

		CacheBackend:  getEnv("CACHE_BACKEND", "local"),
		MemcacheAddr:  getEnv("MEMCACHE_ADDR", "localhost:11211"),
		ProbeGuardTTL: time.Duration(guardTTLSec) * time.Second,

		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "battspec"),
		RedisStreamCount:     streamCount,
		RedisStreamMaxLength: streamMaxLen,

		Environment: getEnv("BATTSPEC_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for impossible values
func (c *Config) Validate() error {
	if c.Mode != ModeDiscover && c.Mode != ModeCatalog {
		return fmt.Errorf("invalid run mode %q: must be %q or %q", c.Mode, ModeDiscover, ModeCatalog)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("target base URL must not be empty")
	}
	if c.Mode == ModeDiscover && c.LandingURL == "" {
		return fmt.Errorf("landing URL must not be empty in discover mode")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if c.NavigationTimeout <= 0 {
		return fmt.Errorf("navigation timeout must be positive")
	}
	if c.PolitenessDelay <= 0 {
		return fmt.Errorf("politeness delay must be positive")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1")
	}
	switch c.CacheBackend {
	case "memcache", "local", "off":
	default:
		return fmt.Errorf("invalid cache backend %q", c.CacheBackend)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
