package events

import (
	"context"
	"sync"

	"staffbot/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeInfractionIssued    EventType = "infraction_issued"
	EventTypePromotionIssued     EventType = "promotion_issued"
	EventTypeLOARequested        EventType = "loa_requested"
	EventTypeLOADecided          EventType = "loa_decided"
	EventTypeServerStatusChanged EventType = "server_status_changed"
	EventTypeGuildConfigSaved    EventType = "guild_config_saved"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// InfractionIssuedEvent is emitted once an infraction passes validation
type InfractionIssuedEvent struct {
	Infraction models.Infraction
}

func (e InfractionIssuedEvent) Type() EventType {
	return EventTypeInfractionIssued
}

// PromotionIssuedEvent is emitted once a promotion passes validation
type PromotionIssuedEvent struct {
	Promotion models.Promotion
}

func (e PromotionIssuedEvent) Type() EventType {
	return EventTypePromotionIssued
}

// LOARequestedEvent is emitted when a leave of absence request is submitted
type LOARequestedEvent struct {
	Request models.LOARequest
}

func (e LOARequestedEvent) Type() EventType {
	return EventTypeLOARequested
}

// LOADecidedEvent is emitted when a pending LOA request is approved or denied
type LOADecidedEvent struct {
	GuildID   string
	MessageID string
	DecidedBy string
	Status    models.LOAStatus
}

func (e LOADecidedEvent) Type() EventType {
	return EventTypeLOADecided
}

// ServerStatusChangedEvent is emitted when a status announcement is made
type ServerStatusChangedEvent struct {
	Change models.StatusChange
}

func (e ServerStatusChangedEvent) Type() EventType {
	return EventTypeServerStatusChanged
}

// GuildConfigSavedEvent is emitted after a guild config has been persisted
type GuildConfigSavedEvent struct {
	GuildID  string
	Revision int64
}

func (e GuildConfigSavedEvent) Type() EventType {
	return EventTypeGuildConfigSaved
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// SubscribeAll adds a handler for every known event type
func (b *Bus) SubscribeAll(handler Handler) {
	for _, eventType := range []EventType{
		EventTypeInfractionIssued,
		EventTypePromotionIssued,
		EventTypeLOARequested,
		EventTypeLOADecided,
		EventTypeServerStatusChanged,
		EventTypeGuildConfigSaved,
	} {
		b.Subscribe(eventType, handler)
	}
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

	// Handlers run asynchronously
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}
