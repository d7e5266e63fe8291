// Package app initializes and wires the advisor's services and clients.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bobmcallan/advisor/internal/ai"
	"github.com/bobmcallan/advisor/internal/clients/eodhd"
	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/interfaces"
	"github.com/bobmcallan/advisor/internal/services/advisor"
	"github.com/bobmcallan/advisor/internal/services/enrich"
	"github.com/bobmcallan/advisor/internal/storage/badger"
)

// App holds all initialized services, clients and storage. It is the shared
// core used by cmd/advisor-server and cmd/advisor-admin.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Storage     interfaces.StorageManager
	Market      interfaces.MarketDataClient
	Advisor     interfaces.AdvisorService
	StartupTime time.Time

	scheduler *cron.Cron
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// loadConfig resolves and loads the configuration file.
func loadConfig(configPath string) (*common.Config, error) {
	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("ADVISOR_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "advisor.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/advisor.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	return config, nil
}

// NewStorageApp initializes config, logging and storage only. Used by the
// admin CLI, which must work without any provider API keys configured.
func NewStorageApp(configPath string) (*App, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := badger.NewManager(config.Storage.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return &App{
		Config:      config,
		Logger:      logger,
		Storage:     storageManager,
		StartupTime: time.Now(),
	}, nil
}

// NewApp initializes configuration, storage, clients and services.
// configPath may be empty, in which case the default resolution is used.
func NewApp(configPath string) (*App, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := badger.NewManager(config.Storage.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if config.Clients.EODHD.APIKey == "" {
		logger.Warn().Msg("EODHD API key not configured - portfolio enrichment will be degraded")
	}

	marketClient := eodhd.NewClient(config.Clients.EODHD.APIKey,
		eodhd.WithBaseURL(config.Clients.EODHD.BaseURL),
		eodhd.WithRateLimit(config.Clients.EODHD.RateLimit),
		eodhd.WithTimeout(config.Clients.EODHD.GetTimeout()),
		eodhd.WithLogger(logger),
	)

	ctx := context.Background()
	analysisProvider, err := ai.CreateProvider(ctx, config.Clients.AI, ai.EndpointAnalysis, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis provider: %w", err)
	}
	recommendationsProvider, err := ai.CreateProvider(ctx, config.Clients.AI, ai.EndpointRecommendations, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create recommendations provider: %w", err)
	}
	chatProvider, err := ai.CreateProvider(ctx, config.Clients.AI, ai.EndpointChat, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat provider: %w", err)
	}

	enricher := enrich.NewEnricher(marketClient,
		enrich.WithWorkers(config.Clients.EODHD.Workers),
		enrich.WithLogger(logger),
	)

	advisorService := advisor.NewService(advisor.Options{
		Enricher:        enricher,
		Market:          marketClient,
		Analysis:        analysisProvider,
		Recommendations: recommendationsProvider,
		Chat:            chatProvider,
		Conversations:   storageManager.Conversations(),
		Logger:          logger,
		Debug:           config.Clients.AI.Debug,
	})

	logger.Info().
		Str("version", common.GetVersion()).
		Str("environment", config.Environment).
		Str("analysis_provider", analysisProvider.ProviderName()).
		Str("recommendations_provider", recommendationsProvider.ProviderName()).
		Str("chat_provider", chatProvider.ProviderName()).
		Msg("Advisor initialized")

	return &App{
		Config:      config,
		Logger:      logger,
		Storage:     storageManager,
		Market:      marketClient,
		Advisor:     advisorService,
		StartupTime: time.Now(),
	}, nil
}

// StartConversationPruner schedules periodic deletion of conversations that
// have not been touched within the retention window.
func (a *App) StartConversationPruner() error {
	retention := a.Config.Conversations.GetRetention()
	schedule := a.Config.Conversations.PruneSchedule

	a.scheduler = cron.New()
	_, err := a.scheduler.AddFunc(schedule, func() {
		cutoff := time.Now().UTC().Add(-retention)
		pruned, err := a.Storage.Conversations().PruneInactive(context.Background(), cutoff)
		if err != nil {
			a.Logger.Warn().Err(err).Msg("Conversation prune run failed")
			return
		}
		if pruned > 0 {
			a.Logger.Info().Int("pruned", pruned).Msg("Conversation prune run completed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule conversation pruner: %w", err)
	}

	a.scheduler.Start()
	a.Logger.Info().Str("schedule", schedule).Dur("retention", retention).Msg("Conversation pruner started")
	return nil
}

// Close stops background work and releases resources.
func (a *App) Close() {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Storage close failed")
		}
	}
}
