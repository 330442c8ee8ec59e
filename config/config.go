// Package config loads the evaluation configuration from the environment.
// Malformed values (non-positive forward days, a commission outside [0,1),
// ...) fail here, before any pipeline runs; they are never silently
// coerced.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	APIKey  string `env:"TWELVE_API_KEY"`
	BaseURL string `env:"MARKET_DATA_URL" envDefault:"https://api.twelvedata.com"`

	Instruments []string `env:"INSTRUMENTS" envSeparator:"," envDefault:"AAPL,MSFT,GOOG" validate:"min=1"`
	HistoryDays int      `env:"HISTORY_DAYS" envDefault:"500" validate:"gt=0"`

	ForwardDays    int     `env:"FORWARD_DAYS" envDefault:"10" validate:"gt=0"`
	LabelThreshold float64 `env:"LABEL_THRESHOLD" envDefault:"0.08" validate:"gt=0"`
	Commission     float64 `env:"COMMISSION" envDefault:"0.10" validate:"gte=0,lt=1"`

	TestRatio   float64 `env:"TEST_RATIO" envDefault:"0.30" validate:"gt=0,lt=1"`
	CVFolds     int     `env:"CV_FOLDS" envDefault:"3" validate:"gte=2"`
	SplitSeed   int64   `env:"SPLIT_SEED" envDefault:"42"`
	MinBars     int     `env:"MIN_BARS" envDefault:"200" validate:"gt=0"`
	MinRows     int     `env:"MIN_ROWS" envDefault:"100" validate:"gt=0"`
	MinVariance float64 `env:"MIN_VARIANCE" envDefault:"0.001" validate:"gte=0"`

	ForestTrees int `env:"FOREST_TREES" envDefault:"100" validate:"gt=0"`
	ForestDepth int `env:"FOREST_DEPTH" envDefault:"10" validate:"gt=0"`
	BoostStages int `env:"BOOST_STAGES" envDefault:"100" validate:"gt=0"`
	BoostDepth  int `env:"BOOST_DEPTH" envDefault:"6" validate:"gt=0"`

	Parallel       bool   `env:"PARALLEL" envDefault:"true"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout int    `env:"REQUEST_TIMEOUT" envDefault:"30" validate:"gt=0"` // seconds
}

// Load initializes configuration from environment variables and validates
// it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
