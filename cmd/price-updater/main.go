// The price-updater job loads the symbol universe from CSV and refreshes
// reference prices from the market-data provider. It runs once by
// default; with a configured schedule it keeps running on a cron cadence.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/ksharma/stockpilot/internal/app"
	"github.com/ksharma/stockpilot/internal/services/ingest"
)

func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("STOCKPILOT_CONFIG")
	if configPath == "" {
		configPath = "config/stockpilot.toml"
	}

	a, err := app.NewApp(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if a.Ingest == nil {
		a.Logger.Fatal().Msg("Price updater requires an EODHD API key")
	}

	tickers, err := ingest.LoadUniverse(a.Config.Ingest.UniverseCSV)
	if err != nil {
		a.Logger.Fatal().Err(err).Str("path", a.Config.Ingest.UniverseCSV).Msg("Failed to load symbol universe")
	}
	if len(tickers) == 0 {
		a.Logger.Fatal().Str("path", a.Config.Ingest.UniverseCSV).Msg("Symbol universe is empty")
	}

	a.Logger.Info().Int("symbols", len(tickers)).Msg("Symbol universe loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		a.Logger.Info().Msg("Shutdown signal received")
		cancel()
	}()

	schedule := a.Config.Ingest.Schedule
	if schedule == "" {
		if _, err := a.Ingest.RefreshUniverse(ctx, tickers); err != nil {
			a.Logger.Error().Err(err).Msg("Price refresh did not complete")
			os.Exit(1)
		}
		return
	}

	// Recurring mode: run on the cron schedule until interrupted.
	c := cron.New()
	_, err = c.AddFunc(schedule, func() {
		if _, err := a.Ingest.RefreshUniverse(ctx, tickers); err != nil {
			a.Logger.Error().Err(err).Msg("Scheduled price refresh did not complete")
		}
	})
	if err != nil {
		a.Logger.Fatal().Err(err).Str("schedule", schedule).Msg("Invalid cron schedule")
	}

	a.Logger.Info().Str("schedule", schedule).Msg("Price updater running on schedule")
	c.Start()

	<-ctx.Done()
	c.Stop()
	a.Logger.Info().Msg("Price updater stopped")
}
