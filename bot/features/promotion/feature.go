package promotion

import (
	"staffbot/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles the /promote command
type Feature struct {
	configs service.GuildConfigService
	staff   service.StaffService
	footer  string
}

// New creates a new promotion feature instance
func New(configs service.GuildConfigService, staff service.StaffService, footer string) *Feature {
	return &Feature{
		configs: configs,
		staff:   staff,
		footer:  footer,
	}
}

// Command returns the slash command definition
func Command() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "promote",
		Description: "Promote a staff member to a higher rank",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "staffmember",
				Description: "The staff member to promote",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "newrank",
				Description: "The new rank for the staff member",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "Reason for the promotion",
				Required:    true,
			},
		},
	}
}

// HandleCommand handles the /promote command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return f.handlePromote(s, i)
}
