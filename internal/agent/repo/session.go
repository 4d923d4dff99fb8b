package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noura-assistant/server/internal/agent/model"
	errx "github.com/noura-assistant/server/internal/core/error"
	logx "github.com/noura-assistant/server/pkg/logger"
)

// RedisSessionRepository persists sessions across three keys with
// independent TTLs: state (24h), country (7d) and last analysis (1h).
// Expiry is enforced by Redis; an expired field simply comes back absent.
type RedisSessionRepository struct {
	rdb redis.Cmdable
	cfg model.SessionConfig
}

// NewRedisSessionRepository builds the repository.
func NewRedisSessionRepository(rdb redis.Cmdable, cfg model.SessionConfig) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, cfg: cfg}
}

func (r *RedisSessionRepository) stateKey(userID string) string {
	return fmt.Sprintf("noura:session:%s", userID)
}

func (r *RedisSessionRepository) countryKey(userID string) string {
	return fmt.Sprintf("noura:country:%s", userID)
}

func (r *RedisSessionRepository) analysisKey(userID string) string {
	return fmt.Sprintf("noura:analysis:%s", userID)
}

func (r *RedisSessionRepository) traceKey(userID string) string {
	return fmt.Sprintf("noura:trace:%s", userID)
}

type stateRecord struct {
	State          model.State `json:"state"`
	LastActivityAt time.Time   `json:"last_activity_at"`
	Language       string      `json:"language,omitempty"`
}

// LoadSession assembles the session from its keys. Returns nil when no state
// is stored (new user or expired session).
func (r *RedisSessionRepository) LoadSession(ctx context.Context, userID string) (*model.Session, error) {
	raw, err := r.rdb.Get(ctx, r.stateKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logx.Error().Err(err).Str("userID", userID).Msg("failed to load session state")
		return nil, errx.WrapRedis(err)
	}

	var rec stateRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		// corrupted entry: drop it and treat the user as new
		logx.Warn().Err(err).Str("userID", userID).Msg("dropping corrupted session record")
		_ = r.rdb.Del(ctx, r.stateKey(userID)).Err()
		return nil, nil
	}

	session := &model.Session{
		UserID:         userID,
		State:          rec.State,
		LastActivityAt: rec.LastActivityAt,
		Language:       rec.Language,
	}

	country, err := r.rdb.Get(ctx, r.countryKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		logx.Error().Err(err).Str("userID", userID).Msg("failed to load country")
		return nil, errx.WrapRedis(err)
	}
	session.Country = country

	return session, nil
}

// SaveState persists the session state under the state TTL.
func (r *RedisSessionRepository) SaveState(ctx context.Context, session *model.Session) error {
	rec := stateRecord{
		State:          session.State,
		LastActivityAt: session.LastActivityAt,
		Language:       session.Language,
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	if err := r.rdb.Set(ctx, r.stateKey(session.UserID), b, r.cfg.StateTTL).Err(); err != nil {
		logx.Error().Err(err).Str("userID", session.UserID).Msg("failed to save session state")
		return errx.WrapRedis(err)
	}
	return nil
}

// SaveCountry persists the country under its own longer TTL.
func (r *RedisSessionRepository) SaveCountry(ctx context.Context, userID, country string) error {
	if err := r.rdb.Set(ctx, r.countryKey(userID), country, r.cfg.CountryTTL).Err(); err != nil {
		logx.Error().Err(err).Str("userID", userID).Msg("failed to save country")
		return errx.WrapRedis(err)
	}
	return nil
}

// LoadAnalysis returns the cached last analysis, or nil when absent.
func (r *RedisSessionRepository) LoadAnalysis(ctx context.Context, userID string) (*model.Analysis, error) {
	raw, err := r.rdb.Get(ctx, r.analysisKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logx.Error().Err(err).Str("userID", userID).Msg("failed to load cached analysis")
		return nil, errx.WrapRedis(err)
	}

	var a model.Analysis
	if err := json.Unmarshal(raw, &a); err != nil {
		logx.Warn().Err(err).Str("userID", userID).Msg("dropping corrupted analysis cache")
		_ = r.rdb.Del(ctx, r.analysisKey(userID)).Err()
		return nil, nil
	}
	return &a, nil
}

// SaveAnalysis caches the analysis snapshot under the analysis TTL.
func (r *RedisSessionRepository) SaveAnalysis(ctx context.Context, userID string, analysis *model.Analysis) error {
	b, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	if err := r.rdb.Set(ctx, r.analysisKey(userID), b, r.cfg.AnalysisTTL).Err(); err != nil {
		logx.Error().Err(err).Str("userID", userID).Msg("failed to cache analysis")
		return errx.WrapRedis(err)
	}
	return nil
}

// AppendTrace records an audit entry in the per-user trace list.
func (r *RedisSessionRepository) AppendTrace(ctx context.Context, userID string, entry model.TraceEntry) error {
	b, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal trace entry: %w", err)
	}
	key := r.traceKey(userID)
	if err := r.rdb.LPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push trace entry")
		return errx.WrapRedis(err)
	}
	if err := r.rdb.Expire(ctx, key, r.cfg.TraceTTL).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to set trace TTL")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.SessionRepository = (*RedisSessionRepository)(nil)
