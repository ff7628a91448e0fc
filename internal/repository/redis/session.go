package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	goredis "github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionRepository stores each session under its own key and lets Redis
// expire it together with the access token.
type SessionRepository struct {
	rdb    *goredis.Client
	prefix string
	now    func() time.Time
}

func NewSessionRepository(rdb *goredis.Client, prefix string) *SessionRepository {
	return &SessionRepository{rdb: rdb, prefix: prefix, now: time.Now}
}

func (r *SessionRepository) key(id string) string {
	return r.prefix + sessionKeyPrefix + id
}

func (r *SessionRepository) Save(ctx context.Context, s auth.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	var ttl time.Duration
	if !s.ExpiresAt.IsZero() {
		ttl = s.ExpiresAt.Sub(r.now())
		if ttl <= 0 {
			return auth.ErrSessionNotFound
		}
	}
	if err := r.rdb.Set(ctx, r.key(s.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (auth.Session, error) {
	data, err := r.rdb.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return auth.Session{}, auth.ErrSessionNotFound
	}
	if err != nil {
		return auth.Session{}, fmt.Errorf("failed to load session: %w", err)
	}
	var s auth.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return auth.Session{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
