package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"staffbot/models"
	"staffbot/service"
)

// MemoryGuildConfigRepository keeps guild configs in process memory
type MemoryGuildConfigRepository struct {
	mu      sync.RWMutex
	configs map[string]*models.GuildConfig
}

// NewMemoryGuildConfigRepository creates a store holding an empty default entry
func NewMemoryGuildConfigRepository() *MemoryGuildConfigRepository {
	return &MemoryGuildConfigRepository{
		configs: models.NewConfigDocument().Guilds,
	}
}

func (r *MemoryGuildConfigRepository) Get(ctx context.Context, guildID string) (*models.GuildConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.configs[guildID].Clone(), nil
}

func (r *MemoryGuildConfigRepository) Put(ctx context.Context, guildID string, cfg *models.GuildConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := int64(1)
	if existing, ok := r.configs[guildID]; ok {
		if existing.Revision != cfg.Revision {
			return fmt.Errorf("%w: guild %s is at revision %d, write carried %d",
				service.ErrRevisionConflict, guildID, existing.Revision, cfg.Revision)
		}
		next = existing.Revision + 1
	}

	stored := cfg.Clone()
	stored.Revision = next
	r.configs[guildID] = stored
	cfg.Revision = next
	return nil
}

func (r *MemoryGuildConfigRepository) List(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.configs))
	for id := range r.configs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
