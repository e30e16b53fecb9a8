package cmd

import (
	"context"
	"fmt"
	"io"

	"staffbot/models"
	"staffbot/service"
)

// ExportConfig writes the stored entry for guildID in the given format
func ExportConfig(ctx context.Context, repo service.GuildConfigRepository, guildID string, format models.Format, w io.Writer) error {
	cfg, err := repo.Get(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to read guild %s: %w", guildID, err)
	}
	if cfg == nil {
		return fmt.Errorf("guild %s: %w", guildID, service.ErrConfigNotFound)
	}

	data, err := models.EncodeGuildConfig(cfg, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// ImportConfig replaces the entry for guildID with a decoded document. The write is
// based on the revision currently stored, so a concurrent change still conflicts.
func ImportConfig(ctx context.Context, repo service.GuildConfigRepository, configs service.GuildConfigService, guildID string, data []byte, format models.Format) (*models.GuildConfig, error) {
	cfg, err := models.DecodeGuildConfig(data, format)
	if err != nil {
		return nil, err
	}

	current, err := repo.Get(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to read guild %s: %w", guildID, err)
	}
	cfg.Revision = 0
	if current != nil {
		cfg.Revision = current.Revision
	}

	if err := configs.Save(ctx, guildID, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
