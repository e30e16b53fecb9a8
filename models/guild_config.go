package models

import (
	"slices"
	"time"
)

// DefaultGuildKey is the entry used when a guild has no configuration of its own
const DefaultGuildKey = "default"

// Action names a privileged operation gated by adminRoles
type Action string

const (
	ActionInfraction   Action = "infraction"
	ActionPromotion    Action = "promotion"
	ActionServerStatus Action = "serverStatus"
	ActionLOA          Action = "loa"
)

// GuildConfig represents the per-guild staff configuration
type GuildConfig struct {
	AdminRoles           map[Action][]string `json:"adminRoles" yaml:"adminRoles"`
	StaffRanks           []string            `json:"staffRanks" yaml:"staffRanks"`
	InfractionLogChannel string              `json:"infractionLogChannel,omitempty" yaml:"infractionLogChannel,omitempty"`
	PromotionLogChannel  string              `json:"promotionLogChannel,omitempty" yaml:"promotionLogChannel,omitempty"`
	LOALogChannel        string              `json:"loaLogChannel,omitempty" yaml:"loaLogChannel,omitempty"`
	ServerStatusChannel  string              `json:"serverStatusChannel,omitempty" yaml:"serverStatusChannel,omitempty"`
	SetupUser            string              `json:"setupUser,omitempty" yaml:"setupUser,omitempty"`
	SetupDate            *time.Time          `json:"setupDate,omitempty" yaml:"setupDate,omitempty"`

	// Revision is maintained by the store; a save must carry the revision it was loaded at
	Revision int64 `json:"revision" yaml:"revision"`
}

// NewGuildConfig returns an empty configuration that denies every action
func NewGuildConfig() *GuildConfig {
	return &GuildConfig{
		AdminRoles: make(map[Action][]string),
		StaffRanks: []string{},
	}
}

// RolesFor returns the role IDs authorized for an action (empty when unset)
func (c *GuildConfig) RolesFor(action Action) []string {
	if c == nil || c.AdminRoles == nil {
		return nil
	}
	return c.AdminRoles[action]
}

// SetRoles replaces the role set for an action
func (c *GuildConfig) SetRoles(action Action, roleIDs []string) {
	if c.AdminRoles == nil {
		c.AdminRoles = make(map[Action][]string)
	}
	c.AdminRoles[action] = slices.Clone(roleIDs)
}

// HasRank reports whether rank is one of the configured staff ranks
func (c *GuildConfig) HasRank(rank string) bool {
	return c != nil && slices.Contains(c.StaffRanks, rank)
}

// Clone returns a deep copy of the configuration
func (c *GuildConfig) Clone() *GuildConfig {
	if c == nil {
		return nil
	}

	clone := *c
	clone.AdminRoles = make(map[Action][]string, len(c.AdminRoles))
	for action, roles := range c.AdminRoles {
		clone.AdminRoles[action] = slices.Clone(roles)
	}
	clone.StaffRanks = slices.Clone(c.StaffRanks)
	if c.SetupDate != nil {
		date := *c.SetupDate
		clone.SetupDate = &date
	}
	return &clone
}

// ConfigDocument is the on-disk shape of the guild configuration file
type ConfigDocument struct {
	Guilds map[string]*GuildConfig `json:"guilds" yaml:"guilds"`
}

// NewConfigDocument creates a document holding only an empty default entry
func NewConfigDocument() *ConfigDocument {
	return &ConfigDocument{
		Guilds: map[string]*GuildConfig{
			DefaultGuildKey: NewGuildConfig(),
		},
	}
}
