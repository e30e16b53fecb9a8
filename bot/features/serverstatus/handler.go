package serverstatus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staffbot/bot/common"
	"staffbot/models"
	"staffbot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// fallbackReason is used when a confirmation outlived its pending entry
const fallbackReason = "(Confirmed via button)"

func (f *Feature) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	cfg := f.configs.Load(ctx, i.GuildID)
	if cfg == nil {
		return common.RespondUserError(s, i, common.MsgConfigNotFound, "guild config missing")
	}

	if !service.HasPermission(common.ToMember(i.Member), models.ActionServerStatus, cfg) {
		return common.RespondUserError(s, i, "You do not have permission to change server status.", "server status permission denied")
	}

	opts := common.ParseOptions(i.ApplicationCommandData().Options)
	change, err := f.staff.PrepareStatusChange(service.StatusInput{
		GuildID:  i.GuildID,
		IssuerID: common.InteractionUserID(i),
		Status:   opts.String("status"),
		Reason:   opts.String("reason"),
	})
	if err != nil {
		return common.RespondUserError(s, i, userMessage(err), err.Error())
	}

	if change.Status.RequiresConfirmation() {
		f.hold(i.ID, change)
		err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content:    ConfirmationPrompt(change.Status, change.Reason),
				Components: BuildConfirmComponents(change.Status, i.ID),
				Flags:      discordgo.MessageFlagsEphemeral,
			},
		})
		if err != nil {
			f.take(i.ID)
			return common.NewSystemError(err, "failed to send status confirmation")
		}
		return nil
	}

	f.publish(ctx, s, cfg, change, common.InteractionUser(i))

	if err := common.RespondWithContent(s, i, SetMessage(change.Status), false); err != nil {
		return common.NewSystemError(err, "failed to respond to server status command")
	}
	return nil
}

func (f *Feature) handleConfirm(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) error {
	ctx := context.Background()

	status, requestID, ok := ParseConfirmID(customID)
	if !ok {
		return common.RespondUserError(s, i, "Invalid confirmation.", "malformed confirm id "+customID)
	}

	cfg := f.configs.Load(ctx, i.GuildID)
	if cfg == nil {
		return common.RespondUserError(s, i, common.MsgConfigNotFound, "guild config missing")
	}

	if !service.HasPermission(common.ToMember(i.Member), models.ActionServerStatus, cfg) {
		return common.RespondUserError(s, i, "You do not have permission to change server status.", "server status permission denied")
	}

	change := f.take(requestID)
	if change == nil || change.Status != status {
		change, _ = f.staff.PrepareStatusChange(service.StatusInput{
			GuildID:  i.GuildID,
			IssuerID: common.InteractionUserID(i),
			Status:   string(status),
			Reason:   fallbackReason,
		})
		if change == nil {
			return common.RespondUserError(s, i, "Invalid server status.", "unknown status in confirm id "+customID)
		}
	}

	f.publish(ctx, s, cfg, change, common.InteractionUser(i))

	err := common.UpdateComponentMessage(s, i, &discordgo.InteractionResponseData{
		Content: SetMessage(change.Status),
	})
	if err != nil {
		return common.NewSystemError(err, "failed to update status confirmation")
	}
	return nil
}

func (f *Feature) handleCancel(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) error {
	requestID := customID[len(common.CancelPrefix):]
	f.take(requestID)

	err := common.UpdateComponentMessage(s, i, &discordgo.InteractionResponseData{
		Content: "❌ Cancelled.",
	})
	if err != nil {
		return common.NewSystemError(err, "failed to cancel status confirmation")
	}
	return nil
}

// publish posts the status embed and records the announcement. A send failure is logged only.
func (f *Feature) publish(ctx context.Context, s *discordgo.Session, cfg *models.GuildConfig, change *models.StatusChange, issuer *discordgo.User) {
	embed := BuildStatusEmbed(change, issuer, f.footer, time.Now())
	if _, err := common.SendLogEmbed(s, cfg.ServerStatusChannel, embed, nil); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guild_id":   change.GuildID,
			"channel_id": cfg.ServerStatusChannel,
		}).Error("Failed to post server status")
		return
	}
	f.staff.AnnounceStatusChange(ctx, change)
}

// SetMessage is the acknowledgement once a status is published
func SetMessage(status models.ServerStatus) string {
	return fmt.Sprintf("✅ Server status set to **%s**.", status)
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidServerStatus):
		return "Invalid server status."
	case errors.Is(err, service.ErrMissingReason):
		return "A reason is required."
	default:
		return "Failed to update server status."
	}
}
