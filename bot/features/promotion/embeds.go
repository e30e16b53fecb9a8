package promotion

import (
	"fmt"
	"time"

	"staffbot/bot/common"
	"staffbot/models"

	"github.com/bwmarrin/discordgo"
)

// BuildLogEmbed creates the embed posted to the promotion log channel
func BuildLogEmbed(p *models.Promotion, issuer, target *discordgo.User, footer string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🎖️ Staff Promotion",
		Color: common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Member", Value: fmt.Sprintf("%s (%s)", common.UserTag(target), p.TargetID), Inline: true},
			{Name: "Issuer", Value: common.UserTag(issuer), Inline: true},
			{Name: "Previous Rank", Value: common.OrNone(p.OldRank), Inline: true},
			{Name: "New Rank", Value: p.NewRank, Inline: true},
			{Name: "Reason", Value: p.Reason, Inline: false},
		},
		Timestamp: p.IssuedAt.Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: footer + " Staff System",
		},
	}
}
