package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"bannerbot/internal/domain/entities"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	Token          string
	OwnerID        string
	AlertChannelID string
	DatabaseURL    string
	DefaultLocale  string
	AlertInterval  time.Duration

	ConversationStore string
	RedisURL          string

	// MetricsAddr is empty when the metrics server is disabled.
	MetricsAddr string

	RegionOffsets map[entities.Region]int
}

// Load reads configuration from .env (optional) and the environment, then
// validates it.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, applying defaults.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := &Config{
		Token:             get("TOKEN", ""),
		OwnerID:           get("OWNER_ID", ""),
		AlertChannelID:    get("ALERT_CHANNEL_ID", ""),
		DatabaseURL:       get("DATABASE_URL", ""),
		DefaultLocale:     get("DEFAULT_LOCALE", "ar"),
		ConversationStore: get("CONVERSATION_STORE", StoreMemory),
		RedisURL:          get("REDIS_URL", ""),
		MetricsAddr:       get("METRICS_ADDR", ":9090"),
		RegionOffsets:     map[entities.Region]int{},
	}

	interval, err := time.ParseDuration(get("ALERT_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("config: ALERT_INTERVAL: %w", err)
	}
	cfg.AlertInterval = interval

	defaults := map[entities.Region]string{
		entities.RegionAsia:    "8",
		entities.RegionEurope:  "1",
		entities.RegionAmerica: "-5",
	}
	for _, r := range entities.Regions {
		key := "REGION_OFFSET_" + strings.ToUpper(string(r))
		h, err := strconv.Atoi(get(key, defaults[r]))
		if err != nil {
			return nil, fmt.Errorf("config: %s must be a whole number of hours: %w", key, err)
		}
		cfg.RegionOffsets[r] = h
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Token == "" {
		return fmt.Errorf("config: TOKEN is required")
	}
	if err := digits("OWNER_ID", c.OwnerID); err != nil {
		return err
	}
	if err := digits("ALERT_CHANNEL_ID", c.AlertChannelID); err != nil {
		return err
	}

	if c.DatabaseURL == "" {
		c.DatabaseURL = "postgres://localhost:5432/bannerbot?sslmode=disable"
	}
	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
	}

	if c.AlertInterval <= 0 {
		return fmt.Errorf("config: ALERT_INTERVAL must be positive")
	}

	switch c.ConversationStore {
	case StoreMemory:
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: REDIS_URL is required when CONVERSATION_STORE=redis")
		}
	default:
		return fmt.Errorf("config: CONVERSATION_STORE must be %q or %q, got %q", StoreMemory, StoreRedis, c.ConversationStore)
	}

	for r, h := range c.RegionOffsets {
		if h < -12 || h > 14 {
			return fmt.Errorf("config: offset for %s out of range: %d", r, h)
		}
	}
	return nil
}

// digits checks a required Discord snowflake.
func digits(key, v string) error {
	if v == "" {
		return fmt.Errorf("config: %s is required", key)
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return fmt.Errorf("config: %s must be a Discord ID (digits only)", key)
		}
	}
	return nil
}
