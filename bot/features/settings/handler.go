package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"staffbot/bot/common"
	"staffbot/models"
	"staffbot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleView handles the /config view command
func (f *Feature) handleView(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !common.IsAdministrator(i) {
		return common.RespondUserError(s, i, common.MsgAdminRequired, "config view requires administrator")
	}

	cfg := f.configs.Load(context.Background(), i.GuildID)
	if cfg == nil {
		return common.RespondUserError(s, i, common.MsgConfigNotFound, "guild config missing")
	}

	if err := common.RespondWithEmbed(s, i, BuildConfigEmbed(cfg, f.footer), nil, true); err != nil {
		return common.NewSystemError(err, "failed to show config")
	}
	return nil
}

// handleRanks handles the /config ranks command
func (f *Feature) handleRanks(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	if !common.IsAdministrator(i) {
		return common.RespondUserError(s, i, common.MsgAdminRequired, "config ranks requires administrator")
	}

	ranks, err := service.ParseStaffRanks(common.ParseOptions(options).String("ranks"))
	if err != nil {
		return common.RespondUserError(s, i, "Rank names must be unique and non-empty.", err.Error())
	}

	cfg, err := f.configs.UpdateStaffRanks(context.Background(), i.GuildID, ranks)
	if err != nil {
		return common.RespondUserError(s, i, userMessage(err), err.Error())
	}

	log.WithFields(log.Fields{
		"guild_id": i.GuildID,
		"user_id":  common.InteractionUserID(i),
		"ranks":    ranks,
	}).Info("Staff ranks updated")

	message := fmt.Sprintf("Staff ranks updated: %s", strings.Join(cfg.StaffRanks, " → "))
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		return common.NewSystemError(err, "failed to respond to config ranks")
	}
	return nil
}

// BuildConfigEmbed renders a guild configuration
func BuildConfigEmbed(cfg *models.GuildConfig, footer string) *discordgo.MessageEmbed {
	ranks := common.NotSet
	if len(cfg.StaffRanks) > 0 {
		ranks = strings.Join(cfg.StaffRanks, " → ")
	}

	setup := "Never"
	if cfg.SetupDate != nil {
		setup = fmt.Sprintf("%s by %s", common.FormatDiscordTimestamp(*cfg.SetupDate, "f"), common.UserMention(cfg.SetupUser))
	}

	return &discordgo.MessageEmbed{
		Title: "⚙️ Bot Configuration",
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Staff Ranks", Value: ranks},
			{Name: "Infraction Roles", Value: common.RoleMentions(cfg.RolesFor(models.ActionInfraction)), Inline: true},
			{Name: "Promotion Roles", Value: common.RoleMentions(cfg.RolesFor(models.ActionPromotion)), Inline: true},
			{Name: "Server Status Roles", Value: common.RoleMentions(cfg.RolesFor(models.ActionServerStatus)), Inline: true},
			{Name: "LOA Approver Roles", Value: common.RoleMentions(cfg.RolesFor(models.ActionLOA)), Inline: true},
			{Name: "Infraction Log", Value: common.ChannelMention(cfg.InfractionLogChannel), Inline: true},
			{Name: "Promotion Log", Value: common.ChannelMention(cfg.PromotionLogChannel), Inline: true},
			{Name: "LOA Log", Value: common.ChannelMention(cfg.LOALogChannel), Inline: true},
			{Name: "Server Status", Value: common.ChannelMention(cfg.ServerStatusChannel), Inline: true},
			{Name: "Last Setup", Value: setup},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s • revision %d", footer, cfg.Revision),
		},
	}
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrConfigNotFound):
		return common.MsgConfigNotFound
	case errors.Is(err, service.ErrRevisionConflict):
		return "The configuration was changed by someone else. Please try again."
	default:
		return "Failed to save configuration."
	}
}
