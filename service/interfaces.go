package service

import (
	"context"
	"time"

	"staffbot/events"
	"staffbot/models"
)

// GuildConfigRepository defines the interface for guild configuration storage
type GuildConfigRepository interface {
	// Get returns the stored config for a guild, or nil if the guild has no entry
	Get(ctx context.Context, guildID string) (*models.GuildConfig, error)

	// Put replaces the config for a guild. The write is rejected with ErrRevisionConflict
	// when an entry exists and its revision differs from cfg.Revision. On success
	// cfg.Revision is set to the stored revision.
	Put(ctx context.Context, guildID string, cfg *models.GuildConfig) error

	// List returns the keys of every stored entry, including the default entry
	List(ctx context.Context) ([]string, error)
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Emit(ctx context.Context, event events.Event)
}

// StoreObserver records the outcome of store operations
type StoreObserver interface {
	ObserveStoreOperation(operation string, err error)
}

// GuildConfigService defines the interface for guild configuration operations
type GuildConfigService interface {
	// Load returns the config for a guild, falling back to the default entry.
	// It returns nil when no config can be read; the failure is logged.
	Load(ctx context.Context, guildID string) *models.GuildConfig

	// Save validates and persists the config for a guild. Failures are logged and returned.
	Save(ctx context.Context, guildID string, cfg *models.GuildConfig) error

	// UpdateStaffRanks replaces the ordered rank list for a guild
	UpdateStaffRanks(ctx context.Context, guildID string, ranks []string) (*models.GuildConfig, error)

	// ListGuilds returns the guild ids that have a stored config
	ListGuilds(ctx context.Context) ([]string, error)
}

// InfractionInput carries the raw command options for an infraction
type InfractionInput struct {
	GuildID  string
	IssuerID string
	TargetID string
	Type     string
	Reason   string
	NewRank  string
}

// PromotionInput carries the raw command options for a promotion
type PromotionInput struct {
	GuildID     string
	IssuerID    string
	TargetID    string
	IssuerRank  string
	CurrentRank string
	NewRank     string
	Reason      string
}

// LOAInput carries the raw command options for a leave of absence request
type LOAInput struct {
	GuildID     string
	RequesterID string
	Start       string
	End         string
	Reason      string
}

// StatusInput carries the raw command options for a server status change
type StatusInput struct {
	GuildID  string
	IssuerID string
	Status   string
	Reason   string
}

// StaffService validates staff actions and announces them as events
type StaffService interface {
	// IssueInfraction validates an infraction against the guild config
	IssueInfraction(ctx context.Context, cfg *models.GuildConfig, input InfractionInput) (*models.Infraction, error)

	// Promote validates a promotion against the guild's rank order
	Promote(ctx context.Context, cfg *models.GuildConfig, input PromotionInput) (*models.Promotion, error)

	// RequestLOA validates a leave of absence request
	RequestLOA(ctx context.Context, input LOAInput) (*models.LOARequest, error)

	// DecideLOA records the approval or denial of a pending request
	DecideLOA(ctx context.Context, guildID, messageID, deciderID string, approve bool) models.LOAStatus

	// PrepareStatusChange validates a status change without announcing it
	PrepareStatusChange(input StatusInput) (*models.StatusChange, error)

	// AnnounceStatusChange records that a status change has been published
	AnnounceStatusChange(ctx context.Context, change *models.StatusChange)
}

// Clock returns the current time
type Clock func() time.Time
