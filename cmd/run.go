package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"

	"grower/api"
	"grower/bot"
	"grower/config"
	"grower/database"
	"grower/events"
	"grower/repository"
	"grower/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := configureLogging(log.StandardLogger(), cfg, os.Stderr); err != nil {
		return err
	}
	log.Info("Starting grower bot...")

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully")

	if err := database.RunMigrationsWithURL(cfg.GetDatabaseURL()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize event bus and unit of work factory
	eventBus := events.NewBus()
	events.SubscribeAuditLog(eventBus, log.StandardLogger().WithField("component", "audit"))
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	clock := service.NewSystemClock(nil)
	rng := service.NewRandom()
	questService := service.NewQuestService(uowFactory, clock)
	services := bot.Services{
		Ledger:    service.NewLedgerService(uowFactory, questService, clock, rng, cfg),
		Challenge: service.NewChallengeService(uowFactory, questService, clock, rng, cfg),
		Quest:     questService,
		Settings:  service.NewGroupSettingsService(uowFactory),
	}
	log.Info("Services initialized successfully")

	// Start the health server
	var wg sync.WaitGroup
	healthServer := api.NewHealthServer(cfg.Port)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := healthServer.Run(ctx); err != nil {
			log.Errorf("Health server stopped: %v", err)
		}
	}()

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	discordBot, err := bot.New(bot.Config{
		Token:                  cfg.DiscordToken,
		LeaderboardLimit:       cfg.LeaderboardLimit,
		MinChallengeAmount:     cfg.MinChallengeAmount,
		MaxChallengeAmount:     cfg.MaxChallengeAmount,
		DefaultChallengeAmount: cfg.DefaultChallengeAmount,
	}, services, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}
	wg.Wait()
	log.Info("Shutdown completed")

	return nil
}
