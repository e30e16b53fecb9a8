package service

import (
	"context"
	"fmt"

	"staffbot/events"
	"staffbot/models"

	log "github.com/sirupsen/logrus"
)

// guildConfigService implements the GuildConfigService interface
type guildConfigService struct {
	repo      GuildConfigRepository
	publisher EventPublisher
	observer  StoreObserver
}

// NewGuildConfigService creates a new guild config service.
// publisher and observer may be nil.
func NewGuildConfigService(repo GuildConfigRepository, publisher EventPublisher, observer StoreObserver) GuildConfigService {
	return &guildConfigService{
		repo:      repo,
		publisher: publisher,
		observer:  observer,
	}
}

// Load returns the guild's config or the default entry, nil when neither can be read
func (s *guildConfigService) Load(ctx context.Context, guildID string) *models.GuildConfig {
	if guildID == "" {
		guildID = models.DefaultGuildKey
	}

	cfg, err := s.repo.Get(ctx, guildID)
	s.observe("load", err)
	if err != nil {
		log.WithError(err).WithField("guild_id", guildID).Error("Failed to load guild config")
		return nil
	}
	if cfg != nil {
		return cfg
	}

	if guildID != models.DefaultGuildKey {
		cfg, err = s.repo.Get(ctx, models.DefaultGuildKey)
		if err != nil {
			log.WithError(err).WithField("guild_id", guildID).Error("Failed to load default guild config")
			return nil
		}
		if cfg != nil {
			log.WithField("guild_id", guildID).Debug("Using default guild config")
			return cfg
		}
	}

	log.WithField("guild_id", guildID).Warn("No guild config or default entry found")
	return nil
}

// Save validates and persists a guild config
func (s *guildConfigService) Save(ctx context.Context, guildID string, cfg *models.GuildConfig) error {
	if cfg == nil {
		return fmt.Errorf("cannot save nil guild config for guild %s", guildID)
	}
	if guildID == "" {
		guildID = models.DefaultGuildKey
	}

	if err := ValidateStaffRanks(cfg.StaffRanks); err != nil {
		return err
	}

	err := s.repo.Put(ctx, guildID, cfg)
	s.observe("save", err)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guild_id": guildID,
			"revision": cfg.Revision,
		}).Error("Failed to save guild config")
		return fmt.Errorf("failed to save guild config for guild %s: %w", guildID, err)
	}

	log.WithFields(log.Fields{
		"guild_id": guildID,
		"revision": cfg.Revision,
	}).Info("Saved guild config")

	if s.publisher != nil {
		s.publisher.Emit(ctx, events.GuildConfigSavedEvent{GuildID: guildID, Revision: cfg.Revision})
	}
	return nil
}

// UpdateStaffRanks replaces the rank order for a guild
func (s *guildConfigService) UpdateStaffRanks(ctx context.Context, guildID string, ranks []string) (*models.GuildConfig, error) {
	if err := ValidateStaffRanks(ranks); err != nil {
		return nil, err
	}

	current := s.Load(ctx, guildID)
	if current == nil {
		return nil, ErrConfigNotFound
	}

	updated := current.Clone()
	updated.StaffRanks = append([]string(nil), ranks...)

	if err := s.Save(ctx, guildID, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// ListGuilds returns the guild ids with a stored config
func (s *guildConfigService) ListGuilds(ctx context.Context) ([]string, error) {
	ids, err := s.repo.List(ctx)
	s.observe("list", err)
	if err != nil {
		return nil, fmt.Errorf("failed to list guild configs: %w", err)
	}
	return ids, nil
}

func (s *guildConfigService) observe(operation string, err error) {
	if s.observer != nil {
		s.observer.ObserveStoreOperation(operation, err)
	}
}
