package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"staffbot/models"
	"staffbot/service"

	log "github.com/sirupsen/logrus"
)

// FileGuildConfigRepository stores every guild config in a single JSON document
type FileGuildConfigRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileGuildConfigRepository opens the config document at path, creating it with
// an empty default entry when it does not exist yet
func NewFileGuildConfigRepository(path string) (*FileGuildConfigRepository, error) {
	r := &FileGuildConfigRepository{path: path}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := r.write(models.NewConfigDocument()); err != nil {
			return nil, err
		}
		log.WithField("path", path).Info("Created guild config file")
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat guild config file: %w", err)
	}

	return r, nil
}

// Get retrieves the config stored under guildID
func (r *FileGuildConfigRepository) Get(ctx context.Context, guildID string) (*models.GuildConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return nil, err
	}
	return doc.Guilds[guildID].Clone(), nil
}

// Put replaces the config stored under guildID and rewrites the whole document
func (r *FileGuildConfigRepository) Put(ctx context.Context, guildID string, cfg *models.GuildConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return err
	}

	next := int64(1)
	if existing, ok := doc.Guilds[guildID]; ok && existing != nil {
		if existing.Revision != cfg.Revision {
			return fmt.Errorf("%w: guild %s is at revision %d, write carried %d",
				service.ErrRevisionConflict, guildID, existing.Revision, cfg.Revision)
		}
		next = existing.Revision + 1
	}

	stored := cfg.Clone()
	stored.Revision = next
	doc.Guilds[guildID] = stored

	if err := r.write(doc); err != nil {
		return err
	}

	cfg.Revision = next
	return nil
}

// List returns the stored guild keys in sorted order
func (r *FileGuildConfigRepository) List(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(doc.Guilds))
	for id := range doc.Guilds {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (r *FileGuildConfigRepository) read() (*models.ConfigDocument, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read guild config file %s: %w", r.path, err)
	}

	var doc models.ConfigDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse guild config file %s: %w", r.path, err)
	}
	if doc.Guilds == nil {
		doc.Guilds = make(map[string]*models.GuildConfig)
	}
	return &doc, nil
}

func (r *FileGuildConfigRepository) write(doc *models.ConfigDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode guild config file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp config file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp config file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace guild config file: %w", err)
	}
	return nil
}
