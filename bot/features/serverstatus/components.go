package serverstatus

import (
	"fmt"
	"strings"

	"staffbot/bot/common"
	"staffbot/models"

	"github.com/bwmarrin/discordgo"
)

// BuildConfirmComponents creates the confirm/cancel buttons for a status that needs confirmation
func BuildConfirmComponents(status models.ServerStatus, requestID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Confirm",
					Style:    discordgo.DangerButton,
					CustomID: fmt.Sprintf("%s%s_%s", common.ConfirmPrefix, status, requestID),
				},
				discordgo.Button{
					Label:    "Cancel",
					Style:    discordgo.SecondaryButton,
					CustomID: common.CancelPrefix + requestID,
				},
			},
		},
	}
}

// ParseConfirmID splits confirm_<status>_<requestID>
func ParseConfirmID(customID string) (models.ServerStatus, string, bool) {
	rest, ok := strings.CutPrefix(customID, common.ConfirmPrefix)
	if !ok {
		return "", "", false
	}
	status, requestID, ok := strings.Cut(rest, "_")
	if !ok || status == "" || requestID == "" {
		return "", "", false
	}
	return models.ServerStatus(status), requestID, true
}

// ConfirmationPrompt is the ephemeral prompt shown before a confirmed status is announced
func ConfirmationPrompt(status models.ServerStatus, reason string) string {
	return fmt.Sprintf("⚠️ **Confirmation Required**: Set server to **%s**?\n**Reason**: %s", status, reason)
}
