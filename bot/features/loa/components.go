package loa

import (
	"staffbot/bot/common"

	"github.com/bwmarrin/discordgo"
)

// BuildDecisionComponents creates the approve/deny buttons for a pending request
func BuildDecisionComponents(requestID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Approve",
					Style:    discordgo.SuccessButton,
					CustomID: common.LOAApprovePrefix + requestID,
				},
				discordgo.Button{
					Label:    "Deny",
					Style:    discordgo.DangerButton,
					CustomID: common.LOADenyPrefix + requestID,
				},
			},
		},
	}
}
