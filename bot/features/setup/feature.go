package setup

import (
	"strings"
	"time"

	"staffbot/bot/common"
	"staffbot/service"

	"github.com/bwmarrin/discordgo"
)

// Feature runs the interactive /setup wizard
type Feature struct {
	configs  service.GuildConfigService
	sessions *SessionStore
	footer   string
	now      service.Clock
}

// New creates a new setup feature instance
func New(configs service.GuildConfigService, timeout time.Duration, gauge SessionGauge, footer string) *Feature {
	return &Feature{
		configs:  configs,
		sessions: NewSessionStore(timeout, gauge),
		footer:   footer,
		now:      time.Now,
	}
}

// Command returns the slash command definition
func Command() *discordgo.ApplicationCommand {
	adminPermission := int64(discordgo.PermissionAdministrator)
	return &discordgo.ApplicationCommand{
		Name:                     "setup",
		Description:              "Configure the bot for this server",
		DefaultMemberPermissions: &adminPermission,
	}
}

// HandleCommand handles the /setup command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return f.handleStart(s, i)
}

// HandleInteraction handles the wizard's select menus and buttons
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return f.handleComponent(s, i)
}

// Handles reports whether customID belongs to this feature
func Handles(customID string) bool {
	return strings.HasPrefix(customID, common.SetupPrefix)
}
