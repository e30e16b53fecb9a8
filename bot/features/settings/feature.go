package settings

import (
	"staffbot/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles guild configuration management
type Feature struct {
	configs service.GuildConfigService
	footer  string
}

// New creates a new settings feature instance
func New(configs service.GuildConfigService, footer string) *Feature {
	return &Feature{
		configs: configs,
		footer:  footer,
	}
}

// Command returns the slash command definition
func Command() *discordgo.ApplicationCommand {
	adminPermission := int64(discordgo.PermissionAdministrator)
	return &discordgo.ApplicationCommand{
		Name:                     "config",
		Description:              "View or change the bot configuration",
		DefaultMemberPermissions: &adminPermission,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "view",
				Description: "Show the current configuration",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "ranks",
				Description: "Set the staff ranks, lowest first",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "ranks",
						Description: "Comma separated rank names, lowest first",
						Required:    true,
					},
				},
			},
		},
	}
}

// HandleCommand routes config subcommands to appropriate handlers
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return nil
	}

	switch options[0].Name {
	case "view":
		return f.handleView(s, i)
	case "ranks":
		return f.handleRanks(s, i, options[0].Options)
	}
	return nil
}
