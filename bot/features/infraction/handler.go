package infraction

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

func (f *Feature) handleInfraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	cfg := f.configs.Load(ctx, i.GuildID)
	if cfg == nil {
		return common.RespondUserError(s, i, common.MsgConfigNotFound, "guild config missing")
	}

	if !service.HasPermission(common.ToMember(i.Member), models.ActionInfraction, cfg) {
		return common.RespondUserError(s, i, "You do not have permission to issue infractions.", "infraction permission denied")
	}

	opts := common.ParseOptions(i.ApplicationCommandData().Options)
	target := common.ResolveMember(s, i.GuildID, opts.UserID("staffmember"))
	if target == nil || target.User == nil {
		return common.RespondUserError(s, i, common.MsgMemberNotFound, "infraction target not found")
	}

	issuer := common.InteractionUser(i)
	inf, err := f.staff.IssueInfraction(ctx, cfg, service.InfractionInput{
		GuildID:  i.GuildID,
		IssuerID: issuer.ID,
		TargetID: target.User.ID,
		Type:     opts.String("type"),
		Reason:   opts.String("reason"),
		NewRank:  strings.TrimSpace(opts.String("newrank")),
	})
	if err != nil {
		return common.RespondUserError(s, i, userMessage(err, cfg), err.Error())
	}

	embed := BuildLogEmbed(inf, issuer, target.User, f.footer)
	if _, err := common.SendLogEmbed(s, cfg.InfractionLogChannel, embed, nil); err != nil {
		log.WithError(err).WithField("channel_id", cfg.InfractionLogChannel).Error("Failed to post infraction log")
	}

	var roleErr error
	switch inf.Type {
	case models.InfractionTermination:
		roles := append(append([]string(nil), cfg.RolesFor(models.ActionInfraction)...), cfg.RolesFor(models.ActionPromotion)...)
		if failures := common.RemoveRoles(s, i.GuildID, target, roles); failures > 0 {
			roleErr = fmt.Errorf("failed to remove %d roles", failures)
		}
	case models.InfractionDemotion:
		guildRoles, err := common.GuildRoles(s, i.GuildID)
		if err != nil {
			log.WithError(err).WithField("guild_id", i.GuildID).Error("Failed to list guild roles")
			roleErr = err
		} else {
			roleErr = common.SwapRankRoles(s, i.GuildID, target, guildRoles, cfg, inf.NewRank)
		}
	}

	content := fmt.Sprintf("✅ %s infraction issued to %s.", inf.Type, common.UserTag(target.User))
	content = common.WithRoleSyncNote(content, roleErr)
	if err := common.RespondWithContent(s, i, content, false); err != nil {
		return common.NewSystemError(err, "failed to respond to infraction")
	}
	return nil
}

func userMessage(err error, cfg *models.GuildConfig) string {
	switch {
	case errors.Is(err, service.ErrDemotionRequiresRank):
		return "Demotion requires a new rank."
	case errors.Is(err, service.ErrInvalidRank):
		return "Invalid rank. Available ranks: " + strings.Join(cfg.StaffRanks, ", ")
	case errors.Is(err, service.ErrInvalidInfractionType):
		return "Invalid infraction type."
	case errors.Is(err, service.ErrMissingReason):
		return "A reason is required."
	default:
		return "Failed to issue infraction."
	}
}
