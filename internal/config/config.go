package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config captures all runtime configuration derived from environment variables.
type Config struct {
	Port             string `koanf:"port"`
	DBDriver         string `koanf:"db_driver"`
	DBURL            string `koanf:"db_url"`
	JWTSecret        string `koanf:"jwt_secret"`
	TokenTTLSecs     int    `koanf:"token_ttl_secs"`
	BcryptCost       int    `koanf:"bcrypt_cost"`
	ReadTimeoutSecs  int    `koanf:"read_timeout_secs"`
	WriteTimeoutSecs int    `koanf:"write_timeout_secs"`
	IdleTimeoutSecs  int    `koanf:"idle_timeout_secs"`
	LogLevel         string `koanf:"log_level"`
}

func defaults() Config {
	return Config{
		Port:             "8080",
		DBDriver:         "sqlite",
		DBURL:            "reelbase.db",
		TokenTTLSecs:     3600,
		BcryptCost:       10,
		ReadTimeoutSecs:  15,
		WriteTimeoutSecs: 15,
		IdleTimeoutSecs:  60,
		LogLevel:         "info",
	}
}

// envKeys maps environment variable names to config paths. Unmapped
// variables are dropped so unrelated process environment never leaks in.
var envKeys = map[string]string{
	"PORT":                 "port",
	"DB_DRIVER":            "db_driver",
	"DB_URL":               "db_url",
	"JWT_SECRET":           "jwt_secret",
	"TOKEN_TTL_SECS":       "token_ttl_secs",
	"BCRYPT_COST":          "bcrypt_cost",
	"SERVER_READ_TIMEOUT":  "read_timeout_secs",
	"SERVER_WRITE_TIMEOUT": "write_timeout_secs",
	"SERVER_IDLE_TIMEOUT":  "idle_timeout_secs",
	"LOG_LEVEL":            "log_level",
}

// Load reads configuration from environment variables, applying defaults and validation.
func Load() (Config, error) {
	k := koanf.New(".")

	def := defaults()
	if err := k.Load(structs.Provider(def, "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	provider := env.Provider("", ".", func(key string) string {
		if mapped, ok := envKeys[strings.ToUpper(key)]; ok {
			return mapped
		}
		return ""
	})
	if err := k.Load(provider, nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.DBDriver != "sqlite" && c.DBDriver != "postgres" {
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres")
	}
	if c.DBURL == "" {
		return fmt.Errorf("DB_URL is required")
	}
	if c.TokenTTLSecs <= 0 {
		return fmt.Errorf("TOKEN_TTL_SECS must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}
	if c.ReadTimeoutSecs <= 0 || c.WriteTimeoutSecs <= 0 || c.IdleTimeoutSecs <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	return nil
}
