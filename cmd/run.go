package cmd

import (
	"context"
	"fmt"
	"time"

	"staffbot/adminapi"
	"staffbot/bot"
	"staffbot/config"
	"staffbot/events"
	"staffbot/metrics"
	"staffbot/service"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context, cfg *config.Config) error {
	log.Info("Starting staff bot...")

	if err := cfg.ValidateForBot(); err != nil {
		return err
	}

	// Initialize guild config store
	repo, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// Initialize event bus and its subscribers
	eventBus := events.NewBus()
	botMetrics := metrics.New()
	botMetrics.Subscribe(eventBus)
	bot.SubscribeAudit(eventBus)

	// Initialize services
	configService := service.NewGuildConfigService(repo, eventBus, botMetrics)
	staffService := service.NewStaffService(eventBus)
	log.Info("Services initialized successfully")

	// Admin API
	var api *adminapi.Server
	if cfg.AdminAPIAddr != "" {
		api = adminapi.New(cfg.AdminAPIAddr, configService, botMetrics.Registry())
		api.Start()
	}

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	discordBot, err := bot.New(bot.Config{
		Token:        cfg.DiscordToken,
		AppID:        cfg.AppID,
		SetupTimeout: cfg.SetupTimeout,
		EmbedFooter:  cfg.EmbedFooter,
	}, configService, staffService, botMetrics)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	if api != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := api.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Error shutting down admin API: %v", err)
		}
	}

	log.Info("Shutdown completed")
	return nil
}
