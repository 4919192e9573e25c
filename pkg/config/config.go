package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT"`
		Host    string `env:"POSTGRES_HOST"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Badger struct {
		Path     string `env:"BADGER_PATH" env-default:"./data/badger"`
		InMemory bool   `env:"BADGER_IN_MEMORY" env-default:"false"`
	}
	Cache struct {
		DefaultTTLSeconds  int `env:"CACHE_DEFAULT_TTL_SECONDS" env-default:"60"`
		TrendingTTLSeconds int `env:"CACHE_TRENDING_TTL_SECONDS" env-default:"900"`
		CounterTTLSeconds  int `env:"CACHE_COUNTER_TTL_SECONDS" env-default:"15"`
		OpTimeoutMillis    int `env:"CACHE_OP_TIMEOUT_MILLIS" env-default:"200"`
	}
	Trending struct {
		WindowHours            int `env:"TRENDING_WINDOW_HOURS" env-default:"24"`
		Limit                  int `env:"TRENDING_LIMIT" env-default:"10"`
		RefreshIntervalMinutes int `env:"TRENDING_REFRESH_INTERVAL_MINUTES" env-default:"10"`
	}
	Interest struct {
		ProfileCap        int     `env:"INTEREST_PROFILE_CAP" env-default:"100"`
		TopTags           int     `env:"INTEREST_TOP_TAGS" env-default:"5"`
		DecayHalfLifeDays float64 `env:"INTEREST_DECAY_HALF_LIFE_DAYS" env-default:"0"`
	}
	Feed struct {
		DefaultPageSize int `env:"FEED_DEFAULT_PAGE_SIZE" env-default:"10"`
		MaxPageSize     int `env:"FEED_MAX_PAGE_SIZE" env-default:"50"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// GetDSN returns the postgres connection string used by goose and the migrate tool.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode,
	)
}
