package loa

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

func (f *Feature) handleRequest(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	cfg := f.configs.Load(ctx, i.GuildID)
	if cfg == nil {
		return common.RespondUserError(s, i, common.MsgConfigNotFound, "guild config missing")
	}

	opts := common.ParseOptions(i.ApplicationCommandData().Options)
	requester := common.InteractionUser(i)

	req, err := f.staff.RequestLOA(ctx, service.LOAInput{
		GuildID:     i.GuildID,
		RequesterID: requester.ID,
		Start:       opts.String("start"),
		End:         opts.String("end"),
		Reason:      opts.String("reason"),
	})
	if err != nil {
		return common.RespondUserError(s, i, userMessage(err), err.Error())
	}

	embed := BuildRequestEmbed(req, requester, f.footer, time.Now())
	msg, err := common.SendLogEmbed(s, cfg.LOALogChannel, embed, BuildDecisionComponents(i.ID))
	if err != nil {
		log.WithError(err).WithField("channel_id", cfg.LOALogChannel).Error("Failed to post LOA request")
	} else if msg != nil {
		log.WithFields(log.Fields{
			"guild_id":   i.GuildID,
			"message_id": msg.ID,
		}).Info("LOA request posted")
	}

	content := "✅ LOA request submitted. It has been sent to the management team for approval."
	if err := common.RespondWithContent(s, i, content, true); err != nil {
		return common.NewSystemError(err, "failed to respond to LOA request")
	}
	return nil
}

func (f *Feature) handleDecision(s *discordgo.Session, i *discordgo.InteractionCreate, approve bool) error {
	ctx := context.Background()

	cfg := f.configs.Load(ctx, i.GuildID)
	if cfg == nil {
		return common.RespondUserError(s, i, common.MsgConfigNotFound, "guild config missing")
	}

	if !service.HasPermission(common.ToMember(i.Member), models.ActionLOA, cfg) {
		return common.RespondUserError(s, i, "You do not have permission to review LOA requests.", "loa permission denied")
	}

	if i.Message == nil || len(i.Message.Embeds) == 0 {
		return common.RespondUserError(s, i, "This LOA request can no longer be updated.", "loa message has no embed")
	}

	decider := common.InteractionUser(i)
	status := f.staff.DecideLOA(ctx, i.GuildID, i.Message.ID, decider.ID, approve)

	err := common.UpdateComponentMessage(s, i, &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{ApplyDecision(i.Message.Embeds[0], status)},
	})
	if err != nil {
		return common.NewSystemError(err, "failed to update LOA request message")
	}

	common.FollowUp(s, i, DecisionMessage(status, common.UserTag(decider)), false)
	return nil
}

// DecisionMessage is the public follow-up announcing a decision
func DecisionMessage(status models.LOAStatus, decider string) string {
	if status == models.LOAApproved {
		return fmt.Sprintf("✅ LOA request approved by %s.", decider)
	}
	return fmt.Sprintf("❌ LOA request denied by %s.", decider)
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidDateFormat):
		return "Invalid date format. Use YYYY-MM-DD."
	case errors.Is(err, service.ErrEndNotAfterStart):
		return "End date must be after start date."
	case errors.Is(err, service.ErrMissingReason):
		return "A reason is required."
	default:
		return "Failed to submit LOA request."
	}
}
