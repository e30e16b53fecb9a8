package infraction

import (
	"staffbot/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles the /infraction command
type Feature struct {
	configs service.GuildConfigService
	staff   service.StaffService
	footer  string
}

// New creates a new infraction feature instance
func New(configs service.GuildConfigService, staff service.StaffService, footer string) *Feature {
	return &Feature{
		configs: configs,
		staff:   staff,
		footer:  footer,
	}
}

// Command returns the slash command definition
func Command() *discordgo.ApplicationCommand {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, 4)
	for _, name := range []string{"Warning", "Suspension", "Demotion", "Termination"} {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name})
	}

	return &discordgo.ApplicationCommand{
		Name:        "infraction",
		Description: "Issue an infraction to a staff member",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "staffmember",
				Description: "The staff member to issue infraction to",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "type",
				Description: "Type of infraction",
				Required:    true,
				Choices:     choices,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "Reason for infraction",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "newrank",
				Description: "New rank (required for Demotion)",
				Required:    false,
			},
		},
	}
}

// HandleCommand handles the /infraction command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return f.handleInfraction(s, i)
}
