// Package config loads service configuration from defaults, an optional
// YAML file, a .env file and environment variables, in that order of precedence
// (later wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Predictor PredictorConfig `mapstructure:"predictor"`
	Chart     ChartConfig     `mapstructure:"chart"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	GinMode         string        `mapstructure:"gin_mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	DevMode bool   `mapstructure:"dev_mode"`
}

// DBConfig selects sqlite (DSN is a file path) or postgres (DSN or host/port/...).
type DBConfig struct {
	Driver         string        `mapstructure:"driver"`
	DSN            string        `mapstructure:"dsn"`
	Host           string        `mapstructure:"host"`
	Port           string        `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	Name           string        `mapstructure:"name"`
	SSLMode        string        `mapstructure:"sslmode"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	RunMigrations  bool          `mapstructure:"run_migrations"`
}

// RedisConfig is optional: an empty host disables caching.
type RedisConfig struct {
	Host           string        `mapstructure:"host"`
	Port           string        `mapstructure:"port"`
	Password       string        `mapstructure:"password"`
	DB             int           `mapstructure:"db"`
	TTL            time.Duration `mapstructure:"ttl"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// PredictorConfig is optional: an empty base URL disables live mode.
type PredictorConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ChartConfig struct {
	DefaultMode string `mapstructure:"default_mode"`
}

type RateLimitConfig struct {
	Limit    int           `mapstructure:"limit"`
	Interval time.Duration `mapstructure:"interval"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// IngestConfig configures cmd/ingest. An empty schedule runs one refresh and exits.
type IngestConfig struct {
	Schedule string        `mapstructure:"schedule"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.dev_mode", false)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "stock_dashboard.db")
	v.SetDefault("db.host", "")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "stock_dashboard")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.connect_timeout", "60s")
	v.SetDefault("db.run_migrations", true)

	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "1m")
	v.SetDefault("redis.connect_timeout", "10s")

	v.SetDefault("predictor.base_url", "")
	v.SetDefault("predictor.timeout", "10s")

	v.SetDefault("chart.default_mode", "mock")

	v.SetDefault("ratelimit.limit", 8)
	v.SetDefault("ratelimit.interval", "1m")

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173", "http://localhost:8080"})

	v.SetDefault("ingest.schedule", "")
	v.SetDefault("ingest.timeout", "5m")
}

// Load reads the configuration. path may be empty. A .env file in the working
// directory is loaded into the environment when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()

	/* ---------- 1) defaults ---------- */
	setDefaults(v)

	/* ---------- 2) env ---------- */
	// redis.host ↔ REDIS_HOST
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	/* ---------- 3) optional file ---------- */
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	/* ---------- 4) decode ---------- */
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "mapstructure",
		Result:  &cfg,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			stringToBoolHook,
		),
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create config decoder: %w", err)
	}
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	/* ---------- 5) validate ---------- */
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func stringToBoolHook(f, t reflect.Kind, data interface{}) (interface{}, error) {
	if f == reflect.String && t == reflect.Bool {
		return strconv.ParseBool(data.(string))
	}
	return data, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of [debug, info, warn, error]")
	}

	switch c.DB.Driver {
	case "sqlite":
		if c.DB.DSN == "" {
			return fmt.Errorf("db.dsn is required for sqlite")
		}
	case "postgres":
		if c.DB.DSN == "" && c.DB.Host == "" {
			return fmt.Errorf("db.dsn or db.host is required for postgres")
		}
	default:
		return fmt.Errorf("db.driver must be one of [sqlite, postgres]")
	}

	switch c.Chart.DefaultMode {
	case "mock", "live":
	default:
		return fmt.Errorf("chart.default_mode must be one of [mock, live]")
	}
	if c.Chart.DefaultMode == "live" && c.Predictor.BaseURL == "" {
		return fmt.Errorf("chart.default_mode live requires predictor.base_url")
	}

	if c.Redis.TTL <= 0 {
		return fmt.Errorf("redis.ttl must be > 0")
	}
	if c.RateLimit.Limit > 0 && c.RateLimit.Interval <= 0 {
		return fmt.Errorf("ratelimit.interval must be > 0 when ratelimit.limit is set")
	}
	return nil
}
