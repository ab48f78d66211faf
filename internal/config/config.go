// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr     string // empty disables the listing cache
	RedisPassword string
	RedisDB       int

	RabbitMQURL string // empty disables event publishing
	JWTSecret   string // empty disables bearer token identity

	HoldTTL       time.Duration
	SweepInterval time.Duration
	CacheTTL      time.Duration
	HoldShards    int
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads .env from the working directory when present, then the
// environment. Variables already set in the environment win over .env.
func Load() (Config, error) {
	return LoadFile(".env")
}

func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	l := &loader{}
	cfg := Config{
		Env:  l.envStr("APP_ENV", "development"),
		Port: l.envStr("APP_PORT", "8080"),

		DBHost:     l.envStr("DB_HOST", "localhost"),
		DBPort:     l.envStr("DB_PORT", "5432"),
		DBUser:     l.envStr("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     l.envStr("DB_NAME", "seat_reservation"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       l.envInt("REDIS_DB", 0),

		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		HoldTTL:       l.envDur("HOLD_TTL", 10*time.Minute),
		SweepInterval: l.envDur("SWEEP_INTERVAL", time.Minute),
		CacheTTL:      l.envDur("CACHE_TTL", 30*time.Second),
		HoldShards:    l.envInt("HOLD_SHARDS", 32),
	}

	if l.err != nil {
		return Config{}, l.err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.HoldTTL <= 0 {
		errs = append(errs, fmt.Errorf("HOLD_TTL must be positive, got %s", c.HoldTTL))
	}
	if c.SweepInterval <= 0 {
		errs = append(errs, fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", c.SweepInterval))
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL))
	}
	if c.HoldShards <= 0 {
		errs = append(errs, fmt.Errorf("HOLD_SHARDS must be positive, got %d", c.HoldShards))
	}
	return errors.Join(errs...)
}

// loader remembers the first parse error so Load can report it once.
type loader struct {
	err error
}

func (l *loader) envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (l *loader) envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		l.fail(fmt.Errorf("invalid int for %s: %q", key, v))
		return def
	}
	return n
}

func (l *loader) envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		l.fail(fmt.Errorf("invalid duration for %s: %q", key, v))
		return def
	}
	return d
}

func (l *loader) fail(err error) {
	if l.err == nil {
		l.err = err
	}
}
