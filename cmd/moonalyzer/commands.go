package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moonalyzer/internal/analyzer"
	"moonalyzer/internal/astro"
	"moonalyzer/internal/config"
	"moonalyzer/internal/ephemeris"
	"moonalyzer/internal/forecast"
	"moonalyzer/internal/logger"
	"moonalyzer/internal/publisher"
	"moonalyzer/internal/runner"
	"moonalyzer/internal/server"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type app struct {
	configPath string
	dotenvErr  error
	cfg        *config.Config
}

func newRootCmd(dotenvErr error) *cobra.Command {
	a := &app{dotenvErr: dotenvErr}

	rootCmd := &cobra.Command{
		Use:   "moonalyzer",
		Short: "Moonalyzer - planetary transits in, crypto market mood out",
		Long: `Moonalyzer casts a daily geocentric chart (signs, Mercury/Venus retrogrades and
aspects), asks an LLM to read it as a crypto market forecast, writes the forecast to
data/<DDMMYYYYHH>.json and data/latest.json, and can serve the results over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")

	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newScheduleCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newChartCmd(a))

	return rootCmd
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if _, err := logger.Setup(cfg.Log.Level, cfg.Log.Format, os.Stderr); err != nil {
		return err
	}
	if a.dotenvErr != nil {
		log.Debug().Msg("No .env file found, using system environment variables")
	}
	a.cfg = cfg
	return nil
}

func (a *app) newEphemeris() (*ephemeris.Geocentric, error) {
	eph, err := ephemeris.New(a.cfg.Ephemeris.VSOP87Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load ephemeris: %w", err)
	}
	log.Debug().Str("theory", eph.Name()).Msg("Ephemeris ready")
	return eph, nil
}

func (a *app) newRunner() (*runner.Runner, error) {
	if err := a.cfg.RequireAPIKey(); err != nil {
		return nil, err
	}

	eph, err := a.newEphemeris()
	if err != nil {
		return nil, err
	}

	var pub publisher.Publisher
	if a.cfg.Telegram.Enabled() {
		tg, err := publisher.NewTelegram(a.cfg.Telegram.Token, a.cfg.Telegram.ChatID)
		if err != nil {
			return nil, err
		}
		pub = tg
	}

	return runner.New(
		eph,
		analyzer.NewForecastAnalyzer(a.cfg.OpenAI),
		forecast.NewStore(a.cfg.Forecast.OutputDir),
		pub,
		a.cfg.Forecast,
	), nil
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func newGenerateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate today's forecast once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.newRunner()
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd)
			defer stop()

			res, err := r.Run(ctx, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved forecast to %s and %s\n", res.Snapshot, res.Latest)
			return nil
		},
	}
}

func newScheduleCmd(a *app) *cobra.Command {
	var runNow bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate forecasts on a cron schedule (UTC)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.newRunner()
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd)
			defer stop()

			job := func() {
				log.Info().Msg("🔍 Casting today's chart...")
				if _, err := r.Run(ctx, time.Now()); err != nil {
					log.Error().Err(err).Msg("❌ Error generating forecast")
				}
			}

			cl := cronLogger{}
			c := cron.New(
				cron.WithLocation(time.UTC),
				cron.WithLogger(cl),
				cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
			)
			if _, err := c.AddFunc(a.cfg.Schedule.Cron, job); err != nil {
				return fmt.Errorf("invalid schedule %q: %w", a.cfg.Schedule.Cron, err)
			}

			log.Info().Str("schedule", a.cfg.Schedule.Cron).Msg("⏰ Forecast schedule set up")
			if runNow {
				job()
			}

			c.Start()
			log.Info().Msg("✅ Moonalyzer is running. Press Ctrl+C to stop.")

			<-ctx.Done()
			<-c.Stop().Done()
			log.Info().Msg("👋 Scheduler stopped")
			return nil
		},
	}

	cmd.Flags().BoolVar(&runNow, "run-now", false, "Generate once immediately before waiting for the schedule")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the working directory (forecasts included) over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd)
			defer stop()

			srv := server.New(a.cfg.Server.Root, a.cfg.ServerAddr(), a.cfg.Server.ShutdownTimeout)
			return srv.Run(ctx)
		},
	}
}

func newChartCmd(a *app) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the chart and prompt digest for a day without calling the LLM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at := time.Now()
			if date != "" {
				parsed, err := time.Parse(forecast.DateLayout, date)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", date, err)
				}
				at = parsed
			}

			eph, err := a.newEphemeris()
			if err != nil {
				return err
			}

			chart, err := astro.BuildChart(eph, runner.ChartInstant(at), astro.Bodies)
			if err != nil {
				return err
			}

			digest := chart.Digest(a.cfg.Forecast.DigestPlanets, a.cfg.Forecast.DigestAspects)
			fmt.Fprintln(cmd.OutOrStdout(), renderChart(chart, digest))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Chart date in YYYY-MM-DD format (today if not provided)")
	return cmd
}
