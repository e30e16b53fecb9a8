package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"staffbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_EmitDeliversToSubscribers(t *testing.T) {
	bus := NewBus()

	received := make(chan PromotionIssuedEvent, 1)
	bus.Subscribe(EventTypePromotionIssued, func(ctx context.Context, event Event) {
		if promotion, ok := event.(PromotionIssuedEvent); ok {
			received <- promotion
		}
	})

	want := PromotionIssuedEvent{Promotion: models.Promotion{GuildID: "1", NewRank: "Officer"}}
	bus.Emit(context.Background(), want)

	select {
	case got := <-received:
		assert.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for event delivery")
	}
}

func TestBus_EmitIgnoresOtherTypes(t *testing.T) {
	bus := NewBus()

	called := make(chan struct{}, 1)
	bus.Subscribe(EventTypeLOARequested, func(ctx context.Context, event Event) {
		called <- struct{}{}
	})

	bus.Emit(context.Background(), GuildConfigSavedEvent{GuildID: "1", Revision: 2})

	select {
	case <-called:
		t.Fatal("Handler for a different event type was invoked")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_SubscribeAll(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[EventType]int)

	bus.SubscribeAll(func(ctx context.Context, event Event) {
		defer wg.Done()
		mu.Lock()
		seen[event.Type()]++
		mu.Unlock()
	})

	emitted := []Event{
		InfractionIssuedEvent{},
		PromotionIssuedEvent{},
		LOARequestedEvent{},
		LOADecidedEvent{},
		ServerStatusChangedEvent{},
		GuildConfigSavedEvent{},
	}
	wg.Add(len(emitted))
	for _, event := range emitted {
		bus.Emit(context.Background(), event)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for all events")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, len(emitted))
	for _, event := range emitted {
		assert.Equal(t, 1, seen[event.Type()])
	}
}

func TestBus_HandlerPanicIsRecovered(t *testing.T) {
	bus := NewBus()

	done := make(chan struct{})
	bus.Subscribe(EventTypeGuildConfigSaved, func(ctx context.Context, event Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeGuildConfigSaved, func(ctx context.Context, event Event) {
		close(done)
	})

	bus.Emit(context.Background(), GuildConfigSavedEvent{GuildID: "1"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Second handler did not run after first panicked")
	}
}
