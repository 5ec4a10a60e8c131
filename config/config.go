package config

import (
	"errors"

	"github.com/spf13/viper"
)

const DevEnv = "dev"
const ProEnv = "pro"

type Config struct {
	Env           string
	Address       string
	WhitelistHost string

	DBDriver string
	DBURL    string

	JWTSecret     string
	AdminUsername string
	AdminPassword string

	GeminiAPIKey string

	YouTubeAPIKey      string
	YouTubeChannelID   string
	YouTubeAccessToken string

	// Requests per second allowed per client IP.
	RateLimit float64
}

// Load reads configuration from the environment. Defaults are only filled in
// for the dev environment; production refuses to start without a JWT secret.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENV", ProEnv)
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("RATE_LIMIT", 20.0)

	cfg := Config{
		Env:           v.GetString("ENV"),
		Address:       v.GetString("ADDRESS_LISTEN"),
		WhitelistHost: v.GetString("WHITELIST_HOST"),

		DBDriver: v.GetString("DB_DRIVER"),
		DBURL:    v.GetString("DB_URL"),

		JWTSecret:     v.GetString("JWT_SECRET"),
		AdminUsername: v.GetString("ADMIN_USERNAME"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),

		GeminiAPIKey: v.GetString("GEMINI_API_KEY"),

		YouTubeAPIKey:      v.GetString("YOUTUBE_API_KEY"),
		YouTubeChannelID:   v.GetString("YOUTUBE_CHANNEL_ID"),
		YouTubeAccessToken: v.GetString("YOUTUBE_ACCESS_TOKEN"),

		RateLimit: v.GetFloat64("RATE_LIMIT"),
	}

	if cfg.Env == DevEnv {
		if cfg.Address == "" {
			cfg.Address = ":8080"
		}
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = "unsecure"
		}
		if cfg.AdminPassword == "" {
			cfg.AdminPassword = "admin123"
		}
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("no secret defined")
	}

	switch cfg.DBDriver {
	case "sqlite":
		if cfg.DBURL == "" {
			cfg.DBURL = "./topthought.db?_pragma=foreign_keys(1)"
		}
	case "postgres":
		if cfg.DBURL == "" {
			return Config{}, errors.New("DB_URL is required for the postgres driver")
		}
	default:
		return Config{}, errors.New("unsupported DB_DRIVER: " + cfg.DBDriver)
	}

	return cfg, nil
}
