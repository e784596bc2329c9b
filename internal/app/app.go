// Package app wires configuration, storage, clients, and services into
// a runnable application core shared by the server and the updater job.
package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/ksharma/stockpilot/internal/clients/eodhd"
	"github.com/ksharma/stockpilot/internal/common"
	"github.com/ksharma/stockpilot/internal/interfaces"
	"github.com/ksharma/stockpilot/internal/services/ingest"
	"github.com/ksharma/stockpilot/internal/services/ledger"
	"github.com/ksharma/stockpilot/internal/services/pricing"
	"github.com/ksharma/stockpilot/internal/services/suggestion"
	"github.com/ksharma/stockpilot/internal/services/valuation"
	"github.com/ksharma/stockpilot/internal/storage"
)

// App holds all initialized services and clients. The process entry
// point owns its lifecycle — services receive dependencies explicitly,
// never through package-level state.
type App struct {
	Config       *common.Config
	Logger       *common.Logger
	Storage      interfaces.StorageManager
	MarketClient interfaces.MarketDataClient
	Ledger       interfaces.LedgerService
	Resolver     interfaces.PriceResolver
	Valuation    interfaces.ValuationService
	Suggestions  interfaces.SuggestionService
	Ingest       *ingest.Service
	StartupTime  time.Time

	schedulerCancel context.CancelFunc
}

// NewApp initializes storage, clients, and services from config.
func NewApp(configPath string) (*App, error) {
	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var marketClient interfaces.MarketDataClient
	if config.Clients.EODHD.APIKey != "" {
		marketClient = eodhd.NewClient(config.Clients.EODHD.APIKey,
			eodhd.WithBaseURL(config.Clients.EODHD.BaseURL),
			eodhd.WithLogger(logger),
			eodhd.WithRateLimit(config.Clients.EODHD.RateLimit),
			eodhd.WithTimeout(config.Clients.EODHD.GetTimeout()),
		)
	}

	resolver, err := buildResolver(config, storageManager, marketClient, logger)
	if err != nil {
		storageManager.Close()
		return nil, err
	}

	holdings := storageManager.HoldingStore()
	prices := storageManager.PriceStore()

	a := &App{
		Config:       config,
		Logger:       logger,
		Storage:      storageManager,
		MarketClient: marketClient,
		Ledger:       ledger.NewService(holdings, logger),
		Resolver:     resolver,
		Valuation:    valuation.NewService(holdings, resolver, logger),
		Suggestions:  suggestion.NewService(holdings, prices, resolver, logger),
		StartupTime:  time.Now(),
	}

	if marketClient != nil {
		a.Ingest = ingest.NewService(marketClient, prices, logger)
	}

	return a, nil
}

// buildResolver selects the configured price strategy. Simulated mode
// seeds its own randomness; tests construct resolvers with fixed seeds.
func buildResolver(config *common.Config, storageManager interfaces.StorageManager, marketClient interfaces.MarketDataClient, logger *common.Logger) (interfaces.PriceResolver, error) {
	if config.IsLivePricing() {
		if marketClient == nil {
			return nil, fmt.Errorf("live pricing mode requires an EODHD API key")
		}
		logger.Info().Msg("Price resolution: live feed")
		return pricing.NewLiveResolver(marketClient, logger), nil
	}

	logger.Info().Msg("Price resolution: simulated")
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return pricing.NewSimulatedResolver(storageManager.PriceStore(), logger, rng), nil
}

// StartPriceScheduler launches the background reference-price refresh
// loop when an interval is configured and a market client is available.
func (a *App) StartPriceScheduler() {
	interval := a.Config.Pricing.GetRefreshInterval()
	if interval <= 0 || a.Ingest == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.schedulerCancel = cancel
	go startPriceScheduler(ctx, a.Ingest, a.Storage.PriceStore(), a.Logger, interval)
}

// Close stops background work and releases storage.
func (a *App) Close() {
	if a.schedulerCancel != nil {
		a.schedulerCancel()
	}
	if err := a.Storage.Close(); err != nil {
		a.Logger.Error().Err(err).Msg("Storage close failed")
	}
}
