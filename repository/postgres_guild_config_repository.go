package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"staffbot/database"
	"staffbot/models"
	"staffbot/service"

	"github.com/jackc/pgx/v5"
)

// PostgresGuildConfigRepository stores one jsonb row per guild
type PostgresGuildConfigRepository struct {
	db *database.DB
}

// NewPostgresGuildConfigRepository creates a new Postgres-backed guild config repository
func NewPostgresGuildConfigRepository(db *database.DB) *PostgresGuildConfigRepository {
	return &PostgresGuildConfigRepository{db: db}
}

// Get retrieves the config for a guild, nil when the guild has no row
func (r *PostgresGuildConfigRepository) Get(ctx context.Context, guildID string) (*models.GuildConfig, error) {
	query := `
		SELECT config, revision
		FROM guild_configs
		WHERE guild_id = $1
	`

	var raw []byte
	var revision int64
	err := r.db.QueryRow(ctx, query, guildID).Scan(&raw, &revision)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config for guild %s: %w", guildID, err)
	}

	cfg, err := decodeConfigRow(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode guild config for guild %s: %w", guildID, err)
	}
	cfg.Revision = revision
	return cfg, nil
}

// Put writes the config for a guild, rejecting writes made against a stale revision
func (r *PostgresGuildConfigRepository) Put(ctx context.Context, guildID string, cfg *models.GuildConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode guild config for guild %s: %w", guildID, err)
	}

	var next int64
	err = r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		var current int64
		err := tx.QueryRow(ctx,
			`SELECT revision FROM guild_configs WHERE guild_id = $1 FOR UPDATE`,
			guildID,
		).Scan(&current)

		switch {
		case errors.Is(err, pgx.ErrNoRows):
			tag, err := tx.Exec(ctx, `
				INSERT INTO guild_configs (guild_id, config, revision, updated_at)
				VALUES ($1, $2, 1, NOW())
				ON CONFLICT (guild_id) DO NOTHING
			`, guildID, raw)
			if err != nil {
				return fmt.Errorf("failed to insert guild config: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("%w: guild %s was created concurrently", service.ErrRevisionConflict, guildID)
			}
			next = 1
			return nil
		case err != nil:
			return fmt.Errorf("failed to lock guild config row: %w", err)
		}

		if current != cfg.Revision {
			return fmt.Errorf("%w: guild %s is at revision %d, write carried %d",
				service.ErrRevisionConflict, guildID, current, cfg.Revision)
		}

		err = tx.QueryRow(ctx, `
			UPDATE guild_configs
			SET config = $2, revision = revision + 1, updated_at = NOW()
			WHERE guild_id = $1 AND revision = $3
			RETURNING revision
		`, guildID, raw, cfg.Revision).Scan(&next)
		if err != nil {
			return fmt.Errorf("failed to update guild config: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cfg.Revision = next
	return nil
}

// List returns every guild id with a stored row
func (r *PostgresGuildConfigRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT guild_id FROM guild_configs ORDER BY guild_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list guild configs: %w", err)
	}
	defer rows.Close()

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan guild ids: %w", err)
	}
	return ids, nil
}

func decodeConfigRow(raw []byte) (*models.GuildConfig, error) {
	cfg := models.NewGuildConfig()
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, err
	}
	if cfg.AdminRoles == nil {
		cfg.AdminRoles = make(map[models.Action][]string)
	}
	if cfg.StaffRanks == nil {
		cfg.StaffRanks = []string{}
	}
	return cfg, nil
}
