// Package config resolves server settings from the environment, an optional
// .env file and an optional config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultPort     = "8001"
	DefaultModel    = "gemini-2.5-flash-lite"
	DefaultCacheTTL = 7 * 24 * time.Hour
)

// Config holds the server settings
type Config struct {
	Port           string
	GeminiAPIKey   string
	CustomEndpoint string
	DefaultModel   string
	RedisURL       string
	CacheTTL       time.Duration
	LogLevel       string
	LogFormat      string
	AllowedOrigins []string
}

// envBindings maps config keys to the environment variables that feed them.
var envBindings = map[string][]string{
	"port":            {"PORT"},
	"gemini_api_key":  {"GEMINI_API_KEY"},
	"custom_endpoint": {"CUSTOM_AI_ENDPOINT", "VITE_CUSTOM_AI_ENDPOINT"},
	"default_model":   {"DEFAULT_MODEL"},
	"redis_url":       {"REDIS_URL"},
	"cache_ttl":       {"CACHE_TTL"},
	"log_level":       {"LOG_LEVEL"},
	"log_format":      {"LOG_FORMAT"},
	"allowed_origins": {"ALLOWED_ORIGINS"},
}

// Load reads .env (when present), then the optional config file, then the
// environment. Environment variables win over the file.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("default_model", DefaultModel)
	v.SetDefault("cache_ttl", DefaultCacheTTL)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("allowed_origins", "http://localhost:3000,http://localhost:4321,http://127.0.0.1:3000")

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:           v.GetString("port"),
		GeminiAPIKey:   v.GetString("gemini_api_key"),
		CustomEndpoint: strings.TrimSpace(v.GetString("custom_endpoint")),
		DefaultModel:   v.GetString("default_model"),
		RedisURL:       strings.TrimSpace(v.GetString("redis_url")),
		CacheTTL:       v.GetDuration("cache_ttl"),
		LogLevel:       v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),
		AllowedOrigins: splitList(v.GetString("allowed_origins")),
	}
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("cache_ttl must be positive, got %s", cfg.CacheTTL)
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = DefaultModel
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
