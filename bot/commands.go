package bot

import (
	"fmt"

	"staffbot/bot/features/infraction"
	"staffbot/bot/features/loa"
	"staffbot/bot/features/promotion"
	"staffbot/bot/features/serverstatus"
	"staffbot/bot/features/settings"
	"staffbot/bot/features/setup"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Commands returns every slash command the bot serves
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		infraction.Command(),
		promotion.Command(),
		loa.Command(),
		serverstatus.Command(),
		setup.Command(),
		settings.Command(),
	}
}

// CommandRegistrar is the part of *discordgo.Session used to publish commands
type CommandRegistrar interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// DeployCommands replaces the application's commands. An empty guildID deploys them globally.
func DeployCommands(s CommandRegistrar, appID, guildID string) error {
	if appID == "" {
		return fmt.Errorf("application id is required")
	}

	created, err := s.ApplicationCommandBulkOverwrite(appID, guildID, Commands())
	if err != nil {
		scope := "global"
		if guildID != "" {
			scope = "guild " + guildID
		}
		return fmt.Errorf("cannot deploy %s commands: %w", scope, err)
	}

	log.WithFields(log.Fields{
		"guild_id": guildID,
		"count":    len(created),
	}).Info("Successfully reloaded application (/) commands")
	return nil
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	appID := b.config.AppID
	if appID == "" {
		appID = b.session.State.User.ID
	}
	return DeployCommands(b.session, appID, "")
}
