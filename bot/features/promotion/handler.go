package promotion

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

func (f *Feature) handlePromote(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	cfg := f.configs.Load(ctx, i.GuildID)
	if cfg == nil {
		return common.RespondUserError(s, i, common.MsgConfigNotFound, "guild config missing")
	}

	if !service.HasPermission(common.ToMember(i.Member), models.ActionPromotion, cfg) {
		return common.RespondUserError(s, i, "You do not have permission to promote staff members.", "promotion permission denied")
	}

	opts := common.ParseOptions(i.ApplicationCommandData().Options)
	target := common.ResolveMember(s, i.GuildID, opts.UserID("staffmember"))
	if target == nil || target.User == nil {
		return common.RespondUserError(s, i, common.MsgMemberNotFound, "promotion target not found")
	}

	guildRoles, err := common.GuildRoles(s, i.GuildID)
	if err != nil {
		botErr := common.NewSystemError(err, "failed to list guild roles")
		common.RespondWithError(s, i, botErr.UserMessage)
		return botErr
	}

	issuer := common.InteractionUser(i)
	promotion, err := f.staff.Promote(ctx, cfg, service.PromotionInput{
		GuildID:     i.GuildID,
		IssuerID:    issuer.ID,
		TargetID:    target.User.ID,
		IssuerRank:  common.MemberRank(i.Member, guildRoles, cfg),
		CurrentRank: common.MemberRank(target, guildRoles, cfg),
		NewRank:     strings.TrimSpace(opts.String("newrank")),
		Reason:      opts.String("reason"),
	})
	if err != nil {
		return common.RespondUserError(s, i, userMessage(err, cfg), err.Error())
	}

	embed := BuildLogEmbed(promotion, issuer, target.User, f.footer)
	if _, err := common.SendLogEmbed(s, cfg.PromotionLogChannel, embed, nil); err != nil {
		log.WithError(err).WithField("channel_id", cfg.PromotionLogChannel).Error("Failed to post promotion log")
	}

	roleErr := common.SwapRankRoles(s, i.GuildID, target, guildRoles, cfg, promotion.NewRank)

	content := fmt.Sprintf("✅ Successfully promoted %s to %s.", common.UserTag(target.User), promotion.NewRank)
	content = common.WithRoleSyncNote(content, roleErr)
	if err := common.RespondWithContent(s, i, content, false); err != nil {
		return common.NewSystemError(err, "failed to respond to promotion")
	}
	return nil
}

func userMessage(err error, cfg *models.GuildConfig) string {
	switch {
	case errors.Is(err, service.ErrInvalidRank):
		return "Invalid rank. Available ranks: " + strings.Join(cfg.StaffRanks, ", ")
	case errors.Is(err, service.ErrRankNotHigher):
		return "New rank must be higher than current rank."
	case errors.Is(err, service.ErrIssuerRankTooLow):
		return "You cannot promote to a rank equal to or higher than your own."
	case errors.Is(err, service.ErrMissingReason):
		return "A reason is required."
	default:
		return "Failed to process promotion."
	}
}
