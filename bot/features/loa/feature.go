package loa

import (
	"strings"

	"staffbot/bot/common"
	"staffbot/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles leave of absence requests and their approval buttons
type Feature struct {
	configs service.GuildConfigService
	staff   service.StaffService
	footer  string
}

// New creates a new LOA feature instance
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
		Name:        "loa",
		Description: "Request a leave of absence",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "start",
				Description: "Start date (YYYY-MM-DD)",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "end",
				Description: "End date (YYYY-MM-DD)",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "Reason for leave of absence",
				Required:    true,
			},
		},
	}
}

// HandleCommand handles the /loa command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return f.handleRequest(s, i)
}

// HandleInteraction handles the approve and deny buttons
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID
	switch {
	case strings.HasPrefix(customID, common.LOAApprovePrefix):
		return f.handleDecision(s, i, true)
	case strings.HasPrefix(customID, common.LOADenyPrefix):
		return f.handleDecision(s, i, false)
	}
	return nil
}

// Handles reports whether customID belongs to this feature
func Handles(customID string) bool {
	return strings.HasPrefix(customID, common.LOAApprovePrefix) || strings.HasPrefix(customID, common.LOADenyPrefix)
}
