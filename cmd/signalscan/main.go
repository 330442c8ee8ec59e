package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/quantbyte/signalscan/config"
	"github.com/quantbyte/signalscan/internal/marketdata"
	"github.com/quantbyte/signalscan/internal/pipeline"
	"github.com/quantbyte/signalscan/internal/report"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	client := marketdata.NewClient(marketdata.ClientOptions{
		APIKey:         cfg.APIKey,
		BaseURL:        cfg.BaseURL,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
	})

	log.Info().
		Strs("instruments", cfg.Instruments).
		Int("history_days", cfg.HistoryDays).
		Bool("parallel", cfg.Parallel).
		Msg("Starting signal evaluation")

	records := pipeline.New(cfg, client).RunAll(context.Background(), cfg.Instruments)

	fmt.Print(report.Format(records))
}
