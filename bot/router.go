package bot

import (
	"errors"

	"staffbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// CommandHandler handles one slash command. Handlers respond to the interaction themselves
// and return an error only to report the outcome.
type CommandHandler interface {
	HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) error
}

// ComponentHandler handles button and select menu interactions
type ComponentHandler interface {
	HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error
}

// Recorder receives routing outcomes
type Recorder interface {
	ObserveCommand(command string, err error)
	ObserveInteraction(prefix string)
}

type componentRoute struct {
	prefix  string
	handles func(customID string) bool
	handler ComponentHandler
}

// Router dispatches interactions to features by command name or custom id
type Router struct {
	commands   map[string]CommandHandler
	components []componentRoute
	recorder   Recorder
}

// NewRouter creates an empty router. recorder may be nil.
func NewRouter(recorder Recorder) *Router {
	return &Router{
		commands: make(map[string]CommandHandler),
		recorder: recorder,
	}
}

// Command routes a slash command name to handler
func (r *Router) Command(name string, handler CommandHandler) {
	r.commands[name] = handler
}

// Component routes custom ids accepted by handles to handler. prefix labels the route in metrics.
func (r *Router) Component(prefix string, handles func(customID string) bool, handler ComponentHandler) {
	r.components = append(r.components, componentRoute{prefix: prefix, handles: handles, handler: handler})
}

// Dispatch is registered as the session's interaction handler
func (r *Router) Dispatch(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		r.dispatchCommand(s, i)
	case discordgo.InteractionMessageComponent:
		r.dispatchComponent(s, i)
	}
}

func (r *Router) dispatchCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	handler, ok := r.commands[name]
	if !ok {
		log.WithField("command", name).Warn("Unknown command")
		return
	}

	err := handler.HandleCommand(s, i)
	if r.recorder != nil {
		r.recorder.ObserveCommand(name, err)
	}
	logOutcome(i, log.Fields{"command": name}, err)
}

func (r *Router) dispatchComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	for _, route := range r.components {
		if !route.handles(customID) {
			continue
		}

		if r.recorder != nil {
			r.recorder.ObserveInteraction(route.prefix)
		}
		err := route.handler.HandleInteraction(s, i)
		logOutcome(i, log.Fields{"custom_id": customID}, err)
		return
	}

	log.WithField("custom_id", customID).Debug("No handler for component interaction")
}

func logOutcome(i *discordgo.InteractionCreate, fields log.Fields, err error) {
	if err == nil {
		return
	}

	fields["guild_id"] = i.GuildID
	fields["user_id"] = common.InteractionUserID(i)

	var botErr *common.BotError
	if errors.As(err, &botErr) && botErr.Err == nil {
		log.WithFields(fields).Info(botErr.LogMessage)
		return
	}
	log.WithFields(fields).WithError(err).Error("Interaction failed")
}
