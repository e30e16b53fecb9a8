package setup

import (
	"fmt"

	"staffbot/bot/common"
	"staffbot/models"
	"staffbot/service"

	"github.com/bwmarrin/discordgo"
)

// TimeoutMessage replaces the wizard when its session expires
const TimeoutMessage = "⏰ Setup session timed out. Please run `/setup` again."

// BuildStepEmbed renders the current wizard page
func BuildStepEmbed(w *service.SetupWizard, footer string) *discordgo.MessageEmbed {
	step := w.Step()

	return &discordgo.MessageEmbed{
		Title:       "🤖 Bot Configuration Setup",
		Description: "Use the menu below to choose a value for this setting, then press **Next**. Press **Complete** at any time to save.",
		Color:       common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Progress", Value: fmt.Sprintf("%d/%d - %s", w.Current+1, len(service.SetupSteps), step.Name)},
			{Name: "Current Settings", Value: renderValue(step, step.Current(w.Draft))},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: footer},
	}
}

// BuildCompleteEmbed summarises the saved configuration
func BuildCompleteEmbed(cfg *models.GuildConfig, footer string) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(service.SetupSteps))
	for _, step := range service.SetupSteps {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   step.Name,
			Value:  renderValue(step, step.Current(cfg)),
			Inline: true,
		})
	}

	return &discordgo.MessageEmbed{
		Title:       "✅ Bot Configuration Complete!",
		Description: "The configuration has been saved.",
		Color:       common.ColorSuccess,
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: footer},
	}
}

func renderValue(step service.SetupStep, values []string) string {
	if step.Kind == service.SetupStepChannel {
		if len(values) == 0 {
			return common.NotSet
		}
		return common.ChannelMention(values[0])
	}
	return common.RoleMentions(values)
}
