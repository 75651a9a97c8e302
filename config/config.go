package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	HTTP  HTTPConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string

	MaxIdleConns int
	MaxOpenConns int

	// SerializePersonIDs guards the max+1 person id allocation with a
	// transaction-scoped advisory lock.
	SerializePersonIDs bool
}

type RedisConfig struct {
	Enabled   bool
	Host      string
	Port      string
	Password  string
	DB        int
	LookupTTL time.Duration
}

type HTTPConfig struct {
	AllowedOrigin  string
	RateLimitRPS   float64
	RateLimitBurst int

	// TrustProxyHeaders keys rate limiting on X-Forwarded-For/X-Real-IP.
	// Enable only behind a reverse proxy that sets them.
	TrustProxyHeaders bool
}

func LoadConfig() (*Config, error) {
	return load(".env")
}

func load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Environment variables alone are enough to run the service.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	lookupTTL, err := time.ParseDuration(v.GetString("REDIS_LOOKUP_TTL"))
	if err != nil {
		lookupTTL = 10 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Host:               v.GetString("DB_HOST"),
			Port:               v.GetString("DB_PORT"),
			User:               v.GetString("DB_USER"),
			Password:           v.GetString("DB_PASSWORD"),
			Name:               v.GetString("DB_NAME"),
			SSLMode:            v.GetString("DB_SSLMODE"),
			TimeZone:           v.GetString("DB_TIMEZONE"),
			MaxIdleConns:       v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns:       v.GetInt("DB_MAX_OPEN_CONNS"),
			SerializePersonIDs: v.GetBool("DB_SERIALIZE_PERSON_IDS"),
		},
		Redis: RedisConfig{
			Enabled:   v.GetBool("REDIS_ENABLED"),
			Host:      v.GetString("REDIS_HOST"),
			Port:      v.GetString("REDIS_PORT"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			LookupTTL: lookupTTL,
		},
		HTTP: HTTPConfig{
			AllowedOrigin:     v.GetString("HTTP_ALLOWED_ORIGIN"),
			RateLimitRPS:      v.GetFloat64("HTTP_RATE_LIMIT_RPS"),
			RateLimitBurst:    v.GetInt("HTTP_RATE_LIMIT_BURST"),
			TrustProxyHeaders: v.GetBool("HTTP_TRUST_PROXY_HEADERS"),
		},
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "5000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "America/Sao_Paulo")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_SERIALIZE_PERSON_IDS", true)

	v.SetDefault("REDIS_ENABLED", true)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_LOOKUP_TTL", "10m")

	v.SetDefault("HTTP_ALLOWED_ORIGIN", "*")
	v.SetDefault("HTTP_RATE_LIMIT_RPS", 20)
	v.SetDefault("HTTP_RATE_LIMIT_BURST", 40)
	v.SetDefault("HTTP_TRUST_PROXY_HEADERS", false)
}
