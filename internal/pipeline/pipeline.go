// Package pipeline sequences the per-instrument evaluation: indicators,
// labels, feature curation, ensemble training and signal replay.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/quantbyte/signalscan/config"
	"github.com/quantbyte/signalscan/internal/backtest"
	"github.com/quantbyte/signalscan/internal/ensemble"
	"github.com/quantbyte/signalscan/internal/features"
	"github.com/quantbyte/signalscan/internal/indicators"
	"github.com/quantbyte/signalscan/internal/labels"
	"github.com/quantbyte/signalscan/models"
)

// BarSource supplies ordered daily bars for an instrument. The production
// implementation is internal/marketdata; tests inject synthetic series.
type BarSource interface {
	DailyBars(ctx context.Context, symbol string, days int) ([]models.PriceBar, error)
}

// Pipeline evaluates instruments against the configured ensemble.
type Pipeline struct {
	cfg    *config.Config
	source BarSource
	logger zerolog.Logger
}

// New creates a pipeline over the given bar source.
func New(cfg *config.Config, source BarSource) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		source: source,
		logger: log.With().Str("component", "pipeline").Logger(),
	}
}

// EvaluateInstrument runs the full pipeline for one instrument and returns
// one record per configured algorithm. A models.ErrInsufficientData return
// means the instrument should be skipped, not that the run failed.
func (p *Pipeline) EvaluateInstrument(ctx context.Context, symbol string) ([]models.EvalRecord, error) {
	bars, err := p.source.DailyBars(ctx, symbol, p.cfg.HistoryDays)
	if err != nil {
		// A retrieval failure means no usable data for this instrument.
		return nil, fmt.Errorf("%w: %s: %v", models.ErrInsufficientData, symbol, err)
	}
	if len(bars) < p.cfg.MinBars {
		return nil, fmt.Errorf("%w: %s has %d bars, need %d",
			models.ErrInsufficientData, symbol, len(bars), p.cfg.MinBars)
	}

	rows := indicators.Compute(bars)
	labeled := labels.Generate(rows, p.cfg.ForwardDays, p.cfg.LabelThreshold)

	fs, err := features.Curate(labeled, p.cfg.MinRows, p.cfg.MinVariance)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", symbol, err)
	}

	trained, err := ensemble.Train(fs, ensemble.Options{
		TestRatio: p.cfg.TestRatio,
		CVFolds:   p.cfg.CVFolds,
		Seed:      p.cfg.SplitSeed,
		Algorithms: ensemble.DefaultAlgorithms(
			p.cfg.ForestTrees, p.cfg.ForestDepth,
			p.cfg.BoostStages, p.cfg.BoostDepth,
			p.cfg.SplitSeed,
		),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", symbol, err)
	}

	sim := backtest.New(p.cfg.Commission)
	matrix := fs.Matrix()

	records := make([]models.EvalRecord, 0, len(trained))
	for _, model := range trained {
		pred := model.Predict(matrix)
		signals := make([]models.Signal, len(pred))
		for i, v := range pred {
			signals[i] = models.Signal{Index: fs.Rows[i].Index, Value: v}
		}

		summary := sim.Run(bars, signals)
		p.logger.Info().
			Str("instrument", symbol).
			Str("algorithm", model.Algorithm).
			Float64("accuracy", model.Accuracy).
			Float64("cv_accuracy", model.CVAccuracy).
			Float64("total_return_pct", summary.TotalReturnPct).
			Int("num_trades", summary.NumTrades).
			Msg("Evaluated instrument")

		records = append(records, models.EvalRecord{
			Instrument:         symbol,
			Algorithm:          model.Algorithm,
			Accuracy:           model.Accuracy,
			CVAccuracy:         model.CVAccuracy,
			PerformanceSummary: summary,
		})
	}
	return records, nil
}

// RunAll evaluates every instrument and aggregates the records. Instruments
// are independent, so when cfg.Parallel is set each one runs in its own
// goroutine; records are appended under a collector guard and sorted for a
// stable output order. An instrument without enough data is skipped with a
// warning; the run itself never aborts.
func (p *Pipeline) RunAll(ctx context.Context, symbols []string) []models.EvalRecord {
	if p.cfg.Parallel {
		return p.runParallel(ctx, symbols)
	}

	var records []models.EvalRecord
	for _, symbol := range symbols {
		recs, err := p.EvaluateInstrument(ctx, symbol)
		if err != nil {
			p.skip(symbol, err)
			continue
		}
		records = append(records, recs...)
	}
	return sortRecords(records)
}

func (p *Pipeline) skip(symbol string, err error) {
	if errors.Is(err, models.ErrInsufficientData) {
		p.logger.Warn().Str("instrument", symbol).Err(err).Msg("Skipping instrument")
		return
	}
	p.logger.Error().Str("instrument", symbol).Err(err).Msg("Instrument evaluation failed")
}
