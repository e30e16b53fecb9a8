package loa

import (
	"fmt"
	"time"

	"staffbot/bot/common"
	"staffbot/models"
	"staffbot/service"

	"github.com/bwmarrin/discordgo"
)

const statusFieldName = "Status"

var statusLabels = map[models.LOAStatus]string{
	models.LOAPending:  "⏳ Pending Approval",
	models.LOAApproved: "✅ Approved",
	models.LOADenied:   "❌ Denied",
}

// BuildRequestEmbed creates the pending request embed posted to the LOA log channel
func BuildRequestEmbed(req *models.LOARequest, requester *discordgo.User, footer string, now time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "📅 Leave of Absence Request",
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Requester", Value: fmt.Sprintf("%s (%s)", common.UserTag(requester), req.RequesterID), Inline: true},
			{Name: "Start Date", Value: req.Start.Format(service.LOADateLayout), Inline: true},
			{Name: "End Date", Value: req.End.Format(service.LOADateLayout), Inline: true},
			{Name: "Reason", Value: req.Reason, Inline: false},
			{Name: statusFieldName, Value: statusLabels[models.LOAPending], Inline: true},
		},
		Timestamp: now.UTC().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: footer + " LOA System",
		},
	}
}

// ApplyDecision returns a copy of a request embed showing the decided status
func ApplyDecision(original *discordgo.MessageEmbed, status models.LOAStatus) *discordgo.MessageEmbed {
	updated := *original
	updated.Fields = make([]*discordgo.MessageEmbedField, 0, len(original.Fields)+1)

	replaced := false
	for _, field := range original.Fields {
		if field.Name == statusFieldName {
			updated.Fields = append(updated.Fields, &discordgo.MessageEmbedField{
				Name:   statusFieldName,
				Value:  statusLabels[status],
				Inline: true,
			})
			replaced = true
			continue
		}
		copied := *field
		updated.Fields = append(updated.Fields, &copied)
	}
	if !replaced {
		updated.Fields = append(updated.Fields, &discordgo.MessageEmbedField{
			Name:   statusFieldName,
			Value:  statusLabels[status],
			Inline: true,
		})
	}

	if status == models.LOAApproved {
		updated.Color = common.ColorSuccess
	} else {
		updated.Color = common.ColorDanger
	}
	return &updated
}
