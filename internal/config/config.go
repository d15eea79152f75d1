package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the scheduling engine.
type Config struct {
	AppName           string
	AppEnv            string
	DatabaseURL       string
	SQLitePath        string
	RedisURL          string
	NATSURL           string
	ApplyCutoffHour   int
	ApplyCutoffMinute int
	RolloverLockTTL   time.Duration
}

// Load reads configuration values from environment variables and an
// optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SMA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "SMA Schedule Engine")
	v.SetDefault("app.env", "development")
	v.SetDefault("sqlite.path", "schedule.db")
	v.SetDefault("apply_cutoff.hour", 20)
	v.SetDefault("apply_cutoff.minute", 40)
	v.SetDefault("rollover.lock_ttl", "10m")

	ttlString := v.GetString("rollover.lock_ttl")
	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid rollover lock ttl: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		DatabaseURL:       v.GetString("database.url"),
		SQLitePath:        v.GetString("sqlite.path"),
		RedisURL:          v.GetString("redis.url"),
		NATSURL:           v.GetString("nats.url"),
		ApplyCutoffHour:   v.GetInt("apply_cutoff.hour"),
		ApplyCutoffMinute: v.GetInt("apply_cutoff.minute"),
		RolloverLockTTL:   ttl,
	}

	if cfg.ApplyCutoffHour < 0 || cfg.ApplyCutoffHour > 23 || cfg.ApplyCutoffMinute < 0 || cfg.ApplyCutoffMinute > 59 {
		return Config{}, fmt.Errorf("invalid apply cutoff time %02d:%02d", cfg.ApplyCutoffHour, cfg.ApplyCutoffMinute)
	}

	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("redis url must be provided")
	}

	return cfg, nil
}
