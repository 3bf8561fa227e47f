package runner

import (
	"context"
	"fmt"
	"time"

	"moonalyzer/internal/astro"
	"moonalyzer/internal/config"
	"moonalyzer/internal/forecast"
	"moonalyzer/internal/publisher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Generator produces a forecast from a planetary digest.
type Generator interface {
	Generate(ctx context.Context, digest string) (*forecast.Forecast, error)
}

// Runner executes one forecast generation end to end.
type Runner struct {
	ephemeris     astro.LongitudeSource
	generator     Generator
	store         *forecast.Store
	publisher     publisher.Publisher
	digestPlanets int
	digestAspects int
}

// New wires a runner. pub may be nil.
func New(eph astro.LongitudeSource, gen Generator, store *forecast.Store, pub publisher.Publisher, cfg config.ForecastConfig) *Runner {
	return &Runner{
		ephemeris:     eph,
		generator:     gen,
		store:         store,
		publisher:     pub,
		digestPlanets: cfg.DigestPlanets,
		digestAspects: cfg.DigestAspects,
	}
}

type Result struct {
	RunID    string
	Chart    *astro.Chart
	Digest   string
	Forecast *forecast.Forecast
	Snapshot string
	Latest   string
}

// ChartInstant is the moment the chart is cast for: 00:00 UTC of now's UTC day.
func ChartInstant(now time.Time) time.Time {
	u := now.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Run casts today's chart, asks for a forecast and persists it.
func (r *Runner) Run(ctx context.Context, now time.Time) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}
	logger := log.With().Str("run_id", res.RunID).Logger()
	ctx = logger.WithContext(ctx)

	at := ChartInstant(now)
	chart, err := astro.BuildChart(r.ephemeris, at, astro.Bodies)
	if err != nil {
		return nil, fmt.Errorf("build chart for %s: %w", at.Format(forecast.DateLayout), err)
	}
	res.Chart = chart
	res.Digest = chart.Digest(r.digestPlanets, r.digestAspects)

	logger.Info().
		Time("chart_at", at).
		Int("aspects", len(chart.Aspects)).
		Str("digest", res.Digest).
		Msg("🔭 Planetary digest ready")

	f, err := r.generator.Generate(ctx, res.Digest)
	if err != nil {
		return nil, fmt.Errorf("generate forecast: %w", err)
	}

	res.Snapshot, res.Latest, err = r.store.Save(f, now)
	if err != nil {
		return nil, fmt.Errorf("save forecast: %w", err)
	}
	res.Forecast = f

	logger.Info().
		Str("snapshot", res.Snapshot).
		Str("latest", res.Latest).
		Str("bias", f.Bias()).
		Msg("✅ Forecast saved")

	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, f); err != nil {
			logger.Error().Err(err).Msg("❌ Error publishing forecast")
		}
	}

	return res, nil
}
