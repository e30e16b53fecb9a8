package service

import (
	"context"
	"errors"
	"testing"

	"staffbot/events"
	"staffbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGuildConfigService_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored guild entry", func(t *testing.T) {
		repo := new(MockGuildConfigRepository)
		observer := new(MockStoreObserver)
		svc := NewGuildConfigService(repo, nil, observer)

		stored := rankedConfig("Recruit", "Officer")
		repo.On("Get", ctx, "123").Return(stored, nil)
		observer.On("ObserveStoreOperation", "load", nil).Return()

		cfg := svc.Load(ctx, "123")

		assert.Same(t, stored, cfg)
		repo.AssertExpectations(t)
		observer.AssertExpectations(t)
	})

	t.Run("falls back to default entry", func(t *testing.T) {
		repo := new(MockGuildConfigRepository)
		svc := NewGuildConfigService(repo, nil, nil)

		fallback := rankedConfig("Cadet")
		repo.On("Get", ctx, "999").Return(nil, nil)
		repo.On("Get", ctx, models.DefaultGuildKey).Return(fallback, nil)

		cfg := svc.Load(ctx, "999")

		assert.Same(t, fallback, cfg)
		repo.AssertExpectations(t)
	})

	t.Run("empty guild id reads default entry", func(t *testing.T) {
		repo := new(MockGuildConfigRepository)
		svc := NewGuildConfigService(repo, nil, nil)

		fallback := rankedConfig("Cadet")
		repo.On("Get", ctx, models.DefaultGuildKey).Return(fallback, nil).Once()

		assert.Same(t, fallback, svc.Load(ctx, ""))
		repo.AssertExpectations(t)
	})

	t.Run("absent when neither entry exists", func(t *testing.T) {
		repo := new(MockGuildConfigRepository)
		svc := NewGuildConfigService(repo, nil, nil)

		repo.On("Get", ctx, "999").Return(nil, nil)
		repo.On("Get", ctx, models.DefaultGuildKey).Return(nil, nil)

		assert.Nil(t, svc.Load(ctx, "999"))
		repo.AssertExpectations(t)
	})

	t.Run("absent when the store fails", func(t *testing.T) {
		repo := new(MockGuildConfigRepository)
		observer := new(MockStoreObserver)
		svc := NewGuildConfigService(repo, nil, observer)

		storeErr := errors.New("unexpected end of JSON input")
		repo.On("Get", ctx, "123").Return(nil, storeErr)
		observer.On("ObserveStoreOperation", "load", storeErr).Return()

		assert.Nil(t, svc.Load(ctx, "123"))
		repo.AssertNotCalled(t, "Get", ctx, models.DefaultGuildKey)
		observer.AssertExpectations(t)
	})
}

func TestGuildConfigService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and announces", func(t *testing.T) {
		repo := new(MockGuildConfigRepository)
		publisher := new(MockEventPublisher)
		observer := new(MockStoreObserver)
		svc := NewGuildConfigService(repo, publisher, observer)

		cfg := rankedConfig("Recruit", "Officer")
		repo.On("Put", ctx, "123", cfg).Run(func(args mock.Arguments) {
			args.Get(2).(*models.GuildConfig).Revision = 4
		}).Return(nil)
		observer.On("ObserveStoreOperation", "save", nil).Return()
		publisher.On("Emit", ctx, events.GuildConfigSavedEvent{GuildID: "123", Revision: 4}).Return()

		require.NoError(t, svc.Save(ctx, "123", cfg))
		assert.Equal(t, int64(4), cfg.Revision)

		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
		observer.AssertExpectations(t)
	})

	t.Run("revision conflict is reported", func(t *testing.T) {
		repo := new(MockGuildConfigRepository)
		publisher := new(MockEventPublisher)
		svc := NewGuildConfigService(repo, publisher, nil)

		cfg := rankedConfig("Recruit")
		repo.On("Put", ctx, "123", cfg).Return(ErrRevisionConflict)

		err := svc.Save(ctx, "123", cfg)

		assert.ErrorIs(t, err, ErrRevisionConflict)
		assert.Contains(t, err.Error(), "guild 123")
		publisher.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything)
	})

	t.Run("duplicate ranks are rejected before writing", func(t *testing.T) {
		repo := new(MockGuildConfigRepository)
		svc := NewGuildConfigService(repo, nil, nil)

		err := svc.Save(ctx, "123", rankedConfig("Recruit", "Recruit"))

		assert.ErrorIs(t, err, ErrInvalidRankList)
		repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("nil config", func(t *testing.T) {
		svc := NewGuildConfigService(new(MockGuildConfigRepository), nil, nil)
		assert.Error(t, svc.Save(ctx, "123", nil))
	})
}

func TestGuildConfigService_UpdateStaffRanks(t *testing.T) {
	ctx := context.Background()

	repo := new(MockGuildConfigRepository)
	svc := NewGuildConfigService(repo, nil, nil)

	stored := rankedConfig("Recruit")
	stored.Revision = 2
	repo.On("Get", ctx, "123").Return(stored, nil)
	repo.On("Put", ctx, "123", mock.MatchedBy(func(cfg *models.GuildConfig) bool {
		return cfg.Revision == 2 && len(cfg.StaffRanks) == 3
	})).Return(nil)

	updated, err := svc.UpdateStaffRanks(ctx, "123", []string{"Recruit", "Officer", "Manager"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Recruit", "Officer", "Manager"}, updated.StaffRanks)
	assert.Equal(t, []string{"Recruit"}, stored.StaffRanks, "stored config must not be mutated")
	repo.AssertExpectations(t)
}

func TestGuildConfigService_UpdateStaffRanks_NoConfig(t *testing.T) {
	ctx := context.Background()

	repo := new(MockGuildConfigRepository)
	svc := NewGuildConfigService(repo, nil, nil)

	repo.On("Get", ctx, "123").Return(nil, nil)
	repo.On("Get", ctx, models.DefaultGuildKey).Return(nil, nil)

	_, err := svc.UpdateStaffRanks(ctx, "123", []string{"Recruit"})
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestGuildConfigService_ListGuilds(t *testing.T) {
	ctx := context.Background()

	repo := new(MockGuildConfigRepository)
	svc := NewGuildConfigService(repo, nil, nil)

	repo.On("List", ctx).Return([]string{"123", "default"}, nil).Once()
	repo.On("List", ctx).Return(nil, errors.New("connection refused")).Once()

	ids, err := svc.ListGuilds(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"123", "default"}, ids)

	_, err = svc.ListGuilds(ctx)
	assert.Error(t, err)
}
