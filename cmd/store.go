package cmd

import (
	"context"
	"fmt"

	"staffbot/config"
	"staffbot/database"
	"staffbot/repository"
	"staffbot/service"

	log "github.com/sirupsen/logrus"
)

// OpenStore builds the guild config repository for the configured backend. The returned
// close function releases any connection the store holds.
func OpenStore(ctx context.Context, cfg *config.Config) (service.GuildConfigRepository, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreBackendFile:
		repo, err := repository.NewFileGuildConfigRepository(cfg.GuildConfigPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open guild config file: %w", err)
		}
		log.WithField("path", cfg.GuildConfigPath).Info("Using file guild config store")
		return repo, func() {}, nil

	case config.StoreBackendMemory:
		log.Warn("Using in-memory guild config store; changes are lost on restart")
		return repository.NewMemoryGuildConfigRepository(), func() {}, nil

	case config.StoreBackendPostgres:
		databaseURL := cfg.GetDatabaseURL()

		log.Info("Running database migrations...")
		if err := database.MigrateUp(databaseURL); err != nil {
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		log.Info("Connecting to database...")
		db, err := database.NewConnection(ctx, databaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info("Database connection established successfully")
		return repository.NewPostgresGuildConfigRepository(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
