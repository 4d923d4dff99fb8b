package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/noura-assistant/server/internal/agent/model"
	errx "github.com/noura-assistant/server/internal/core/error"
	logx "github.com/noura-assistant/server/pkg/logger"
)

// RedisHistoryRepository keeps the recent turns of a conversation in a Redis
// list, trimmed to the configured maximum.
type RedisHistoryRepository struct {
	rdb redis.Cmdable
	cfg model.HistoryConfig
}

func NewRedisHistoryRepository(rdb redis.Cmdable, cfg model.HistoryConfig) *RedisHistoryRepository {
	return &RedisHistoryRepository{rdb: rdb, cfg: cfg}
}

func (r *RedisHistoryRepository) historyKey(userID string) string {
	return fmt.Sprintf("noura:history:%s", userID)
}

func (r *RedisHistoryRepository) AddMessage(ctx context.Context, userID string, message model.Message) error {
	b, err := json.Marshal(message)
	if err != nil {
		logx.Error().Err(err).Str("userID", userID).Msg("failed to marshal message")
		return fmt.Errorf("marshal message: %w", err)
	}
	key := r.historyKey(userID)

	// append message
	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push message to redis")
		return errx.WrapRedis(err)
	}
	// keep only the most recent turns
	if r.cfg.MaxTurns > 0 {
		if err := r.rdb.LTrim(ctx, key, int64(-r.cfg.MaxTurns), -1).Err(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to trim history")
			return errx.WrapRedis(err)
		}
	}
	// extend TTL on touch
	if r.cfg.TTL > 0 {
		if ok, err := r.rdb.Expire(ctx, key, r.cfg.TTL).Result(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
			return errx.WrapRedis(err)
		} else if !ok {
			logx.Warn().Str("key", key).Dur("ttl", r.cfg.TTL).Msg("failed to set TTL on history key")
		}
	}
	return nil
}

func (r *RedisHistoryRepository) LoadHistory(ctx context.Context, userID string) (*model.ConversationHistory, error) {
	key := r.historyKey(userID)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return &model.ConversationHistory{UserID: userID, Messages: []model.Message{}}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load conversation history from redis")
		return nil, errx.WrapRedis(err)
	}

	msgs := make([]model.Message, 0, len(rows))
	for i, s := range rows {
		var m model.Message
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			logx.Error().Err(err).Str("userID", userID).Int("index", i).Msg("failed to unmarshal message")
			return nil, fmt.Errorf("unmarshal message at index %d: %w", i, err)
		}
		msgs = append(msgs, m)
	}
	return &model.ConversationHistory{UserID: userID, Messages: msgs}, nil
}

func (r *RedisHistoryRepository) ClearHistory(ctx context.Context, userID string) error {
	key := r.historyKey(userID)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete conversation history from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisHistoryRepository) GetMessageCount(ctx context.Context, userID string) (int, error) {
	key := r.historyKey(userID)
	n, err := r.rdb.LLen(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to get message count from redis")
		return 0, errx.WrapRedis(err)
	}
	return int(n), nil
}

var _ model.HistoryRepository = (*RedisHistoryRepository)(nil)
