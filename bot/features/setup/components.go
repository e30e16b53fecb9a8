package setup

import (
	"fmt"
	"strconv"
	"strings"

	"staffbot/bot/common"
	"staffbot/service"

	"github.com/bwmarrin/discordgo"
)

// Button custom ids
const (
	PreviousID = common.SetupPrefix + "previous"
	SkipID     = common.SetupPrefix + "skip"
	NextID     = common.SetupPrefix + "next"
	CompleteID = common.SetupPrefix + "complete"

	rolePrefix    = common.SetupPrefix + "role_"
	channelPrefix = common.SetupPrefix + "channel_"
)

// BuildStepComponents creates the select menu and navigation buttons for the current step
func BuildStepComponents(w *service.SetupWizard) []discordgo.MessageComponent {
	step := w.Step()
	minValues := 0

	menu := discordgo.SelectMenu{
		MinValues: &minValues,
	}
	if step.Kind == service.SetupStepChannel {
		menu.MenuType = discordgo.ChannelSelectMenu
		menu.CustomID = fmt.Sprintf("%s%d", channelPrefix, w.Current)
		menu.Placeholder = "Select a channel"
		menu.ChannelTypes = []discordgo.ChannelType{discordgo.ChannelTypeGuildText}
		menu.MaxValues = 1
	} else {
		menu.MenuType = discordgo.RoleSelectMenu
		menu.CustomID = fmt.Sprintf("%s%d", rolePrefix, w.Current)
		menu.Placeholder = "Select roles"
		menu.MaxValues = 25
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{menu}},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Previous",
					Style:    discordgo.SecondaryButton,
					CustomID: PreviousID,
					Disabled: w.IsFirstStep(),
				},
				discordgo.Button{
					Label:    "Skip",
					Style:    discordgo.SecondaryButton,
					CustomID: SkipID,
					Disabled: w.IsLastStep(),
				},
				discordgo.Button{
					Label:    "Next",
					Style:    discordgo.PrimaryButton,
					CustomID: NextID,
					Disabled: w.IsLastStep(),
				},
				discordgo.Button{
					Label:    "Complete",
					Style:    discordgo.SuccessButton,
					CustomID: CompleteID,
				},
			},
		},
	}
}

// ParseSelectID returns the step index encoded in a select menu custom id
func ParseSelectID(customID string) (int, bool) {
	rest, ok := strings.CutPrefix(customID, rolePrefix)
	if !ok {
		rest, ok = strings.CutPrefix(customID, channelPrefix)
	}
	if !ok {
		return 0, false
	}
	step, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return step, true
}
