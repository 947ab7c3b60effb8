package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"

	"github.com/tot/reservations-api/internal/core/domain"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Mongo      MongoConfig
	Redis      RedisConfig
	Restaurant RestaurantConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=reservations"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// RestaurantConfig is the environment-facing form of domain.Settings.
type RestaurantConfig struct {
	OpeningTime   string `env:"OPENING_TIME,    default=19:00"`
	ClosingTime   string `env:"CLOSING_TIME,    default=23:59"`
	MaxTables     int    `env:"MAX_TABLES,      default=5"`
	SeatsPerTable int    `env:"SEATS_PER_TABLE, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// Settings converts the environment values into the restaurant profile the
// admission engine runs against.
func (c RestaurantConfig) Settings() (domain.Settings, error) {
	opening, err := domain.ParseTimeOfDay(c.OpeningTime)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("opening time: %w", err)
	}
	closing, err := domain.ParseTimeOfDay(c.ClosingTime)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("closing time: %w", err)
	}

	settings := domain.DefaultSettings()
	settings.OpeningTime = opening
	settings.ClosingTime = closing
	settings.MaxTables = c.MaxTables
	settings.SeatsPerTable = c.SeatsPerTable
	return settings, nil
}
