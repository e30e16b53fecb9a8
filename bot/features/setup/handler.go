package setup

import (
	"context"
	"errors"

	"staffbot/bot/common"
	"staffbot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !common.IsAdministrator(i) {
		return common.RespondUserError(s, i, common.MsgAdminRequired, "setup requires administrator")
	}

	ctx := context.Background()
	userID := common.InteractionUserID(i)

	// A missing config starts the wizard from an empty draft
	base := f.configs.Load(ctx, i.GuildID)

	sess := f.sessions.Start(i.GuildID, userID, base, i.Interaction, f.now(), func(expired *Session) {
		f.expire(s, expired)
	})

	sess.mu.Lock()
	embed, components := BuildStepEmbed(sess.Wizard, f.footer), BuildStepComponents(sess.Wizard)
	sess.mu.Unlock()

	err := common.RespondWithEmbed(s, i, embed, components, true)
	if err != nil {
		f.sessions.Finish(i.GuildID, userID)
		return common.NewSystemError(err, "failed to open setup wizard")
	}

	log.WithFields(log.Fields{
		"guild_id": i.GuildID,
		"user_id":  userID,
	}).Info("Setup wizard started")
	return nil
}

func (f *Feature) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	userID := common.InteractionUserID(i)
	sess := f.sessions.Acquire(i.GuildID, userID)
	if sess == nil {
		return common.RespondUserError(s, i, "No active setup session. Please run `/setup` again.", "setup session missing")
	}
	defer sess.Unlock()

	data := i.MessageComponentData()
	wizard := sess.Wizard

	switch data.CustomID {
	case PreviousID:
		wizard.Previous()
	case SkipID:
		wizard.Skip()
	case NextID:
		wizard.Next()
	case CompleteID:
		return f.handleComplete(s, i, sess)
	default:
		step, ok := ParseSelectID(data.CustomID)
		if !ok {
			return common.RespondUserError(s, i, "Unknown setup action.", "unknown setup component "+data.CustomID)
		}
		if err := wizard.Select(step, data.Values); err != nil {
			return common.RespondUserError(s, i, "Unknown setup step.", err.Error())
		}
	}

	err := common.UpdateComponentMessage(s, i, &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{BuildStepEmbed(wizard, f.footer)},
		Components: BuildStepComponents(wizard),
	})
	if err != nil {
		return common.NewSystemError(err, "failed to update setup wizard")
	}
	return nil
}

// handleComplete runs with the session lock held
func (f *Feature) handleComplete(s *discordgo.Session, i *discordgo.InteractionCreate, sess *Session) error {
	ctx := context.Background()

	cfg := sess.Wizard.Complete(f.now())
	if err := f.configs.Save(ctx, i.GuildID, cfg); err != nil {
		message := "Failed to save configuration."
		if errors.Is(err, service.ErrRevisionConflict) {
			message = "The configuration was changed by someone else. Please run `/setup` again."
			f.sessions.Finish(i.GuildID, sess.Wizard.UserID)
		}
		return common.RespondUserError(s, i, message, err.Error())
	}

	f.sessions.Finish(i.GuildID, sess.Wizard.UserID)

	err := common.UpdateComponentMessage(s, i, &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{BuildCompleteEmbed(cfg, f.footer)},
	})
	if err != nil {
		return common.NewSystemError(err, "failed to show setup summary")
	}

	log.WithFields(log.Fields{
		"guild_id": i.GuildID,
		"user_id":  sess.Wizard.UserID,
		"revision": cfg.Revision,
	}).Info("Setup completed")
	return nil
}

func (f *Feature) expire(s *discordgo.Session, sess *Session) {
	if err := common.EditOriginal(s, sess.Interaction, TimeoutMessage, nil, nil); err != nil {
		log.WithError(err).WithField("guild_id", sess.Wizard.GuildID).Warn("Failed to mark setup session as timed out")
	}
}
