package infraction

import (
	"encoding/json"
	"fmt"
	"time"

	"staffbot/bot/common"
	"staffbot/models"

	"github.com/bwmarrin/discordgo"
)

var typeColors = map[models.InfractionType]int{
	models.InfractionWarning:     common.ColorWarning,
	models.InfractionSuspension:  common.ColorOrange,
	models.InfractionDemotion:    0xFF6600,
	models.InfractionTermination: common.ColorDanger,
}

type infractionDetails struct {
	Type     models.InfractionType `json:"type"`
	NewRank  string                `json:"newRank"`
	IssuedAt string                `json:"issuedAt"`
}

// BuildLogEmbed creates the embed posted to the infraction log channel
func BuildLogEmbed(inf *models.Infraction, issuer, target *discordgo.User, footer string) *discordgo.MessageEmbed {
	color, ok := typeColors[inf.Type]
	if !ok {
		color = common.ColorDanger
	}

	newRank := inf.NewRank
	if newRank == "" {
		newRank = "N/A"
	}
	details, _ := json.MarshalIndent(infractionDetails{
		Type:     inf.Type,
		NewRank:  newRank,
		IssuedAt: inf.IssuedAt.Format(time.RFC3339),
	}, "", "  ")

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("⚠️ Staff Infraction - %s", inf.Type),
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Member", Value: fmt.Sprintf("%s (%s)", common.UserTag(target), inf.TargetID), Inline: true},
			{Name: "Issuer", Value: common.UserTag(issuer), Inline: true},
			{Name: "Type", Value: string(inf.Type), Inline: true},
			{Name: "Reason", Value: inf.Reason, Inline: false},
			{Name: "Details", Value: "```json\n" + string(details) + "\n```", Inline: false},
		},
		Timestamp: inf.IssuedAt.Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: footer + " Staff System",
		},
	}
}
