package serverstatus

import (
	"strings"
	"sync"
	"time"

	"staffbot/bot/common"
	"staffbot/models"
	"staffbot/service"

	"github.com/bwmarrin/discordgo"
)

// confirmationTTL matches the lifetime of a Discord interaction token
const confirmationTTL = 15 * time.Minute

// Feature handles /server and its confirmation buttons
type Feature struct {
	configs service.GuildConfigService
	staff   service.StaffService
	footer  string

	mu      sync.Mutex
	pending map[string]*models.StatusChange
}

// New creates a new server status feature instance
func New(configs service.GuildConfigService, staff service.StaffService, footer string) *Feature {
	return &Feature{
		configs: configs,
		staff:   staff,
		footer:  footer,
		pending: make(map[string]*models.StatusChange),
	}
}

// Command returns the slash command definition
func Command() *discordgo.ApplicationCommand {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.ServerStatuses))
	for _, status := range models.ServerStatuses {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: string(status), Value: string(status)})
	}

	return &discordgo.ApplicationCommand{
		Name:        "server",
		Description: "Set server status",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "status",
				Description: "Server status",
				Required:    true,
				Choices:     choices,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "Reason for status change",
				Required:    true,
			},
		},
	}
}

// HandleCommand handles the /server command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return f.handleStatus(s, i)
}

// HandleInteraction handles the confirm and cancel buttons
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID
	switch {
	case strings.HasPrefix(customID, common.ConfirmPrefix):
		return f.handleConfirm(s, i, customID)
	case strings.HasPrefix(customID, common.CancelPrefix):
		return f.handleCancel(s, i, customID)
	}
	return nil
}

// Handles reports whether customID belongs to this feature
func Handles(customID string) bool {
	return strings.HasPrefix(customID, common.ConfirmPrefix) || strings.HasPrefix(customID, common.CancelPrefix)
}

// hold parks a change awaiting confirmation until it is taken or expires
func (f *Feature) hold(id string, change *models.StatusChange) {
	f.mu.Lock()
	f.pending[id] = change
	f.mu.Unlock()

	time.AfterFunc(confirmationTTL, func() {
		f.take(id)
	})
}

// take removes and returns a pending change
func (f *Feature) take(id string) *models.StatusChange {
	f.mu.Lock()
	defer f.mu.Unlock()

	change := f.pending[id]
	delete(f.pending, id)
	return change
}
