package metrics

import (
	"context"

	"staffbot/events"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the bot's Prometheus collectors
type Metrics struct {
	registry *prometheus.Registry

	commands        *prometheus.CounterVec
	interactions    *prometheus.CounterVec
	storeOperations *prometheus.CounterVec
	domainEvents    *prometheus.CounterVec
	setupSessions   prometheus.Gauge
}

// New creates the collectors and registers them on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "staffbot",
			Name:      "commands_total",
			Help:      "Slash commands received, by command name and outcome.",
		}, []string{"command", "outcome"}),
		interactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "staffbot",
			Name:      "component_interactions_total",
			Help:      "Button and select menu interactions, by custom id prefix.",
		}, []string{"prefix"}),
		storeOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "staffbot",
			Name:      "guild_config_store_operations_total",
			Help:      "Guild config store operations, by operation and result.",
		}, []string{"operation", "result"}),
		domainEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "staffbot",
			Name:      "events_total",
			Help:      "Domain events emitted on the event bus.",
		}, []string{"type"}),
		setupSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "staffbot",
			Name:      "setup_sessions_active",
			Help:      "Setup wizard sessions currently open.",
		}),
	}

	m.registry.MustRegister(
		m.commands,
		m.interactions,
		m.storeOperations,
		m.domainEvents,
		m.setupSessions,
	)
	return m
}

// Registry exposes the registry for the /metrics handler
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveCommand counts a slash command by name and outcome ("ok" or "error")
func (m *Metrics) ObserveCommand(command string, err error) {
	m.commands.WithLabelValues(command, outcome(err)).Inc()
}

// ObserveInteraction counts a component interaction by its custom id prefix
func (m *Metrics) ObserveInteraction(prefix string) {
	m.interactions.WithLabelValues(prefix).Inc()
}

// ObserveStoreOperation implements service.StoreObserver
func (m *Metrics) ObserveStoreOperation(operation string, err error) {
	m.storeOperations.WithLabelValues(operation, outcome(err)).Inc()
}

// SetActiveSetupSessions records the number of open setup wizards
func (m *Metrics) SetActiveSetupSessions(n int) {
	m.setupSessions.Set(float64(n))
}

// Subscribe counts every domain event emitted on bus
func (m *Metrics) Subscribe(bus *events.Bus) {
	bus.SubscribeAll(func(ctx context.Context, event events.Event) {
		m.domainEvents.WithLabelValues(string(event.Type())).Inc()
	})
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
