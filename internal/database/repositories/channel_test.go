package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/leirbagxis/ChannelGate/internal/database"
	"github.com/leirbagxis/ChannelGate/internal/database/models"
	"github.com/leirbagxis/ChannelGate/internal/database/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelUpsertAndSearch(t *testing.T) {
	db := database.InitTestDB()
	repo := repositories.NewChannelRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.Channel{ID: 1, SessionID: "search", Title: "Tech News"}))
	require.NoError(t, repo.Upsert(ctx, &models.Channel{ID: 2, SessionID: "search", Title: "Daily Recipes"}))
	// Second upsert of the same channel updates instead of duplicating.
	require.NoError(t, repo.Upsert(ctx, &models.Channel{ID: 1, SessionID: "search", Title: "Tech News HQ"}))

	channels, err := repo.List(ctx, "search")
	require.NoError(t, err)
	require.Len(t, channels, 2)

	found, err := repo.Search(ctx, "search", "tech", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Tech News HQ", found[0].Title)

	none, err := repo.Search(ctx, "other-session", "tech", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestChannelSharedAcrossSessions(t *testing.T) {
	db := database.InitTestDB()
	repo := repositories.NewChannelRepository(db)
	ctx := context.Background()

	// The key is (id, session_id): the same network channel may be
	// registered by several sessions independently.
	require.NoError(t, repo.Upsert(ctx, &models.Channel{ID: 7, SessionID: "alpha", Title: "Shared"}))
	require.NoError(t, repo.Upsert(ctx, &models.Channel{ID: 7, SessionID: "beta", Title: "Shared"}))

	alpha, err := repo.List(ctx, "alpha")
	require.NoError(t, err)
	require.Len(t, alpha, 1)

	beta, err := repo.List(ctx, "beta")
	require.NoError(t, err)
	require.Len(t, beta, 1)

	require.NoError(t, repo.Delete(ctx, "alpha", 7))

	beta, err = repo.List(ctx, "beta")
	require.NoError(t, err)
	assert.Len(t, beta, 1)
}

func TestChannelFlags(t *testing.T) {
	db := database.InitTestDB()
	repo := repositories.NewChannelRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.Channel{ID: 5, SessionID: "flags", Title: "Quiet"}))

	require.NoError(t, repo.SetMuted(ctx, "flags", 5, true))
	require.NoError(t, repo.SetReactionSetting(ctx, "flags", 5, "none"))

	channel, err := repo.GetByID(ctx, "flags", 5)
	require.NoError(t, err)
	require.NotNil(t, channel)
	assert.True(t, channel.Muted)
	assert.Equal(t, "none", channel.ReactionSetting)

	missing, err := repo.GetByID(ctx, "flags", 404)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMessageLog(t *testing.T) {
	db := database.InitTestDB()
	repo := repositories.NewMessageRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, &models.ChannelMessage{
			MessageID: i + 1,
			ChannelID: 9,
			SessionID: "log",
			Content:   "post",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	messages, err := repo.Fetch(ctx, "log", 9, 3, time.Time{})
	require.NoError(t, err)
	require.Len(t, messages, 3)
	// Newest first.
	assert.Equal(t, 5, messages[0].MessageID)

	older, err := repo.Fetch(ctx, "log", 9, 0, base.Add(2*time.Minute))
	require.NoError(t, err)
	require.Len(t, older, 2)

	require.NoError(t, repo.DeleteByChannel(ctx, "log", 9))
	empty, err := repo.Fetch(ctx, "log", 9, 0, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, empty)
}
