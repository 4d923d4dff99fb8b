package repo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noura-assistant/server/internal/agent/model"
	"github.com/noura-assistant/server/internal/agent/repo"
)

func setupHistory(t *testing.T, maxTurns int) (*miniredis.Miniredis, *repo.RedisHistoryRepository) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})

	history := repo.NewRedisHistoryRepository(rdb, model.HistoryConfig{
		TTL:      24 * time.Hour,
		MaxTurns: maxTurns,
	})
	return mr, history
}

func TestHistoryRepository_AddAndLoad(t *testing.T) {
	_, history := setupHistory(t, 50)
	ctx := context.Background()

	require.NoError(t, history.AddMessage(ctx, "u1", model.UserMessage("hola")))
	require.NoError(t, history.AddMessage(ctx, "u1", model.AssistantMessage("¡Hola!")))

	got, err := history.LoadHistory(ctx, "u1")

	require.NoError(t, err)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, model.RoleUser, got.Messages[0].Role)
	assert.Equal(t, "hola", got.Messages[0].Content)
	assert.Equal(t, model.RoleAssistant, got.Messages[1].Role)
}

func TestHistoryRepository_EmptyHistory(t *testing.T) {
	_, history := setupHistory(t, 50)

	got, err := history.LoadHistory(context.Background(), "nobody")

	require.NoError(t, err)
	assert.Empty(t, got.Messages)
}

func TestHistoryRepository_TrimsToMaxTurns(t *testing.T) {
	_, history := setupHistory(t, 4)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, history.AddMessage(ctx, "u1", model.UserMessage(fmt.Sprintf("mensaje %d", i))))
	}

	got, err := history.LoadHistory(ctx, "u1")

	require.NoError(t, err)
	require.Len(t, got.Messages, 4)
	// the oldest messages are dropped first
	assert.Equal(t, "mensaje 6", got.Messages[0].Content)
	assert.Equal(t, "mensaje 9", got.Messages[3].Content)
}

func TestHistoryRepository_CountAndClear(t *testing.T) {
	_, history := setupHistory(t, 50)
	ctx := context.Background()

	require.NoError(t, history.AddMessage(ctx, "u1", model.UserMessage("hola")))
	require.NoError(t, history.AddMessage(ctx, "u1", model.AssistantMessage("¡Hola!")))

	n, err := history.GetMessageCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, history.ClearHistory(ctx, "u1"))

	n, err = history.GetMessageCount(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestHistoryRepository_TTLRefreshedOnTouch(t *testing.T) {
	mr, history := setupHistory(t, 50)
	ctx := context.Background()

	require.NoError(t, history.AddMessage(ctx, "u1", model.UserMessage("hola")))

	mr.FastForward(12 * time.Hour)
	require.NoError(t, history.AddMessage(ctx, "u1", model.UserMessage("sigo aquí")))

	// the second write pushed the expiry back to a full day
	assert.Greater(t, mr.TTL("noura:history:u1"), 23*time.Hour)
}
