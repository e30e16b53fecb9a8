package service

import (
	"context"

	"staffbot/events"
	"staffbot/models"

	"github.com/stretchr/testify/mock"
)

// MockGuildConfigRepository is a mock implementation of GuildConfigRepository
type MockGuildConfigRepository struct {
	mock.Mock
}

func (m *MockGuildConfigRepository) Get(ctx context.Context, guildID string) (*models.GuildConfig, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildConfig), args.Error(1)
}

func (m *MockGuildConfigRepository) Put(ctx context.Context, guildID string, cfg *models.GuildConfig) error {
	args := m.Called(ctx, guildID, cfg)
	return args.Error(0)
}

func (m *MockGuildConfigRepository) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Emit(ctx context.Context, event events.Event) {
	m.Called(ctx, event)
}

// MockStoreObserver is a mock implementation of StoreObserver
type MockStoreObserver struct {
	mock.Mock
}

func (m *MockStoreObserver) ObserveStoreOperation(operation string, err error) {
	m.Called(operation, err)
}
