package serverstatus

import (
	"time"

	"staffbot/bot/common"
	"staffbot/models"

	"github.com/bwmarrin/discordgo"
)

var statusEmojis = map[models.ServerStatus]string{
	models.StatusSSU:      "🔧",
	models.StatusOpen:     "🟢",
	models.StatusLockdown: "🔴",
	models.StatusClosed:   "⚫",
	models.StatusSST:      "⚙️",
}

var statusColors = map[models.ServerStatus]int{
	models.StatusSSU:      common.ColorOrange,
	models.StatusOpen:     common.ColorSuccess,
	models.StatusLockdown: common.ColorDanger,
	models.StatusClosed:   common.ColorBlack,
	models.StatusSST:      common.ColorWarning,
}

// BuildStatusEmbed creates the announcement posted to the server status channel
func BuildStatusEmbed(change *models.StatusChange, issuer *discordgo.User, footer string, now time.Time) *discordgo.MessageEmbed {
	emoji, ok := statusEmojis[change.Status]
	if !ok {
		emoji = "❓"
	}
	color, ok := statusColors[change.Status]
	if !ok {
		color = common.ColorGrey
	}

	return &discordgo.MessageEmbed{
		Title: emoji + " Server Status Update",
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Status", Value: string(change.Status), Inline: true},
			{Name: "Reason", Value: change.Reason, Inline: false},
			{Name: "Issued By", Value: common.UserTag(issuer), Inline: true},
		},
		Timestamp: now.UTC().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: footer,
		},
	}
}
