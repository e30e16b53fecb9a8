package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"staffbot/models"
	"staffbot/repository/testutil"
	"staffbot/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testGuildConfigRepository exercises the behaviour every backend must share
func testGuildConfigRepository(t *testing.T, repo service.GuildConfigRepository) {
	ctx := context.Background()

	t.Run("default entry is seeded", func(t *testing.T) {
		cfg, err := repo.Get(ctx, models.DefaultGuildKey)
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Empty(t, cfg.StaffRanks)
	})

	t.Run("unknown guild is absent", func(t *testing.T) {
		cfg, err := repo.Get(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("round trip", func(t *testing.T) {
		original := testutil.CreateTestGuildConfigWithSetup("42", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

		require.NoError(t, repo.Put(ctx, "1001", original))
		assert.Equal(t, int64(1), original.Revision)

		loaded, err := repo.Get(ctx, "1001")
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, original.StaffRanks, loaded.StaffRanks)
		assert.Equal(t, original.AdminRoles, loaded.AdminRoles)
		assert.Equal(t, original.InfractionLogChannel, loaded.InfractionLogChannel)
		assert.Equal(t, original.SetupUser, loaded.SetupUser)
		require.NotNil(t, loaded.SetupDate)
		assert.True(t, original.SetupDate.Equal(*loaded.SetupDate))
		assert.Equal(t, original.Revision, loaded.Revision)
	})

	t.Run("returned config is a copy", func(t *testing.T) {
		cfg := testutil.CreateTestGuildConfig()
		require.NoError(t, repo.Put(ctx, "1002", cfg))

		loaded, err := repo.Get(ctx, "1002")
		require.NoError(t, err)
		loaded.StaffRanks[0] = "Changed"

		again, err := repo.Get(ctx, "1002")
		require.NoError(t, err)
		assert.Equal(t, "Recruit", again.StaffRanks[0])
	})

	t.Run("stale revision is rejected", func(t *testing.T) {
		require.NoError(t, repo.Put(ctx, "1003", testutil.CreateTestGuildConfig()))

		first, err := repo.Get(ctx, "1003")
		require.NoError(t, err)
		second, err := repo.Get(ctx, "1003")
		require.NoError(t, err)

		first.StaffRanks = []string{"Cadet", "Deputy"}
		require.NoError(t, repo.Put(ctx, "1003", first))
		assert.Equal(t, int64(2), first.Revision)

		second.StaffRanks = []string{"Trooper"}
		err = repo.Put(ctx, "1003", second)
		assert.ErrorIs(t, err, service.ErrRevisionConflict)

		stored, err := repo.Get(ctx, "1003")
		require.NoError(t, err)
		assert.Equal(t, []string{"Cadet", "Deputy"}, stored.StaffRanks)
	})

	t.Run("concurrent writers at the same revision", func(t *testing.T) {
		require.NoError(t, repo.Put(ctx, "1004", testutil.CreateTestGuildConfig()))

		const writers = 5
		var wg sync.WaitGroup
		results := make(chan error, writers)
		for i := 0; i < writers; i++ {
			cfg, err := repo.Get(ctx, "1004")
			require.NoError(t, err)

			wg.Add(1)
			go func(cfg *models.GuildConfig) {
				defer wg.Done()
				results <- repo.Put(ctx, "1004", cfg)
			}(cfg)
		}
		wg.Wait()
		close(results)

		succeeded := 0
		for err := range results {
			if err == nil {
				succeeded++
			} else {
				assert.ErrorIs(t, err, service.ErrRevisionConflict)
			}
		}
		assert.Equal(t, 1, succeeded)
	})

	t.Run("list includes default and saved guilds", func(t *testing.T) {
		ids, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, models.DefaultGuildKey)
		assert.Contains(t, ids, "1001")
		assert.IsNonDecreasing(t, ids)
	})
}

func TestMemoryGuildConfigRepository(t *testing.T) {
	testGuildConfigRepository(t, NewMemoryGuildConfigRepository())
}

func TestFileGuildConfigRepository(t *testing.T) {
	repo, err := NewFileGuildConfigRepository(t.TempDir() + "/config/guildConfig.json")
	require.NoError(t, err)
	testGuildConfigRepository(t, repo)
}

func TestPostgresGuildConfigRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	testGuildConfigRepository(t, NewPostgresGuildConfigRepository(testDB.DB))
}
