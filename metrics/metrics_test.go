package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"staffbot/events"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveCommand("promote", nil)
	m.ObserveCommand("promote", errors.New("boom"))
	m.ObserveCommand("promote", nil)
	m.ObserveInteraction("loa_approve")
	m.ObserveStoreOperation("save", nil)
	m.ObserveStoreOperation("load", errors.New("parse error"))
	m.SetActiveSetupSessions(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.commands.WithLabelValues("promote", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commands.WithLabelValues("promote", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.interactions.WithLabelValues("loa_approve")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeOperations.WithLabelValues("load", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.setupSessions))
}

func TestMetrics_SubscribeCountsEvents(t *testing.T) {
	m := New()
	bus := events.NewBus()
	m.Subscribe(bus)

	bus.Emit(context.Background(), events.GuildConfigSavedEvent{GuildID: "1", Revision: 2})

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(m.domainEvents.WithLabelValues(string(events.EventTypeGuildConfigSaved))) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestMetrics_RegistryGathers(t *testing.T) {
	m := New()
	m.ObserveCommand("loa", nil)

	families, err := m.Registry().Gather()
	assert.NoError(t, err)
	assert.NotEmpty(t, families)
}
