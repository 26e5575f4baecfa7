// Package config loads the application configuration from defaults, an optional .env file
// and environment variables, in that order of precedence.
//
// Example:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_DB=indicator
//	REDIS_HOST=localhost
//	TWELVE_DATA_API_KEY=...
//	JWT_SECRET=...
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration.
type Config struct {
	Server        ServerConfig
	Postgres      PostgresConfig
	Redis         RedisConfig
	TwelveData    TwelveDataConfig
	JWT           JWTConfig
	Log           LogConfig
	Sync          SyncConfig
	RunMigrations bool // 起動時に AutoMigrate を実行するか
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string // CORS。空なら CORS ミドルウェアを付けない
}

// PostgresConfig defines connection details for PostgreSQL.
// InstanceName が設定されている場合は Cloud SQL の Unix ソケットを使います。
type PostgresConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	InstanceName string
	ConnTimeout  time.Duration
}

// RedisConfig は Redis の接続設定です。Host が空ならキャッシュなしで動きます。
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type TwelveDataConfig struct {
	APIKey            string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int
	Country           string
}

type JWTConfig struct {
	Secret string
}

type LogConfig struct {
	Level  string
	Pretty bool
}

// SyncConfig はカタログ同期の設定です。At は Asia/Tokyo の "HH:MM" です。
type SyncConfig struct {
	At          string
	Concurrency int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("ALLOWED_ORIGINS", "")

	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "postgres")
	v.SetDefault("POSTGRES_DB", "indicator")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("INSTANCE_CONNECTION_NAME", "")
	v.SetDefault("POSTGRES_CONNECT_TIMEOUT", "30s")

	v.SetDefault("REDIS_HOST", "")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("TWELVE_DATA_API_KEY", "")
	v.SetDefault("TWELVE_DATA_BASE_URL", "https://api.twelvedata.com")
	v.SetDefault("TWELVE_DATA_TIMEOUT", "10s")
	v.SetDefault("TWELVE_DATA_REQUESTS_PER_MINUTE", 8)
	v.SetDefault("TWELVE_DATA_COUNTRY", "United States")

	v.SetDefault("JWT_SECRET", "")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)

	v.SetDefault("SYNC_AT", "08:00")
	v.SetDefault("SYNC_CONCURRENCY", 2)

	v.SetDefault("RUN_MIGRATIONS", true)
}

// Load reads the configuration. envFile may be empty; a missing file is not an error.
func Load(envFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("read %s: %w", envFile, err)
			}
		}
	}
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	cfg := Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		},
		Postgres: PostgresConfig{
			Host:         v.GetString("POSTGRES_HOST"),
			Port:         v.GetString("POSTGRES_PORT"),
			User:         v.GetString("POSTGRES_USER"),
			Password:     v.GetString("POSTGRES_PASSWORD"),
			Name:         v.GetString("POSTGRES_DB"),
			SSLMode:      v.GetString("POSTGRES_SSLMODE"),
			InstanceName: v.GetString("INSTANCE_CONNECTION_NAME"),
			ConnTimeout:  v.GetDuration("POSTGRES_CONNECT_TIMEOUT"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		TwelveData: TwelveDataConfig{
			APIKey:            v.GetString("TWELVE_DATA_API_KEY"),
			BaseURL:           v.GetString("TWELVE_DATA_BASE_URL"),
			Timeout:           v.GetDuration("TWELVE_DATA_TIMEOUT"),
			RequestsPerMinute: v.GetInt("TWELVE_DATA_REQUESTS_PER_MINUTE"),
			Country:           v.GetString("TWELVE_DATA_COUNTRY"),
		},
		JWT: JWTConfig{Secret: v.GetString("JWT_SECRET")},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Pretty: v.GetBool("LOG_PRETTY"),
		},
		Sync: SyncConfig{
			At:          v.GetString("SYNC_AT"),
			Concurrency: v.GetInt("SYNC_CONCURRENCY"),
		},
		RunMigrations: v.GetBool("RUN_MIGRATIONS"),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate collects every missing or malformed field into one error.
func (c Config) validate() error {
	var missing []string
	if c.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if c.Postgres.InstanceName == "" && c.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if c.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if c.Postgres.Name == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missing)
	}
	if _, err := time.Parse("15:04", c.Sync.At); err != nil {
		return fmt.Errorf("SYNC_AT must be HH:MM: %w", err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
