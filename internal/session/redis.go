package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/autocompany-server/internal/model"
)

const (
	keyPrefix         = "session:"
	maxUpdateAttempts = 16
)

var _ model.SessionStore = (*RedisStore)(nil)

// RedisStore keeps sessions as JSON values under session:<id>.
// With a positive idle TTL every write sets the expiry and every read refreshes it.
type RedisStore struct {
	client  redis.UniversalClient
	idleTTL time.Duration
	now     func() time.Time
}

func NewRedisStore(client redis.UniversalClient, idleTTL time.Duration) *RedisStore {
	return &RedisStore{client: client, idleTTL: idleTTL, now: time.Now}
}

func key(id string) string {
	return keyPrefix + id
}

func (s *RedisStore) Get(ctx context.Context, id string) (model.Session, error) {
	var (
		raw []byte
		err error
	)
	if s.idleTTL > 0 {
		raw, err = s.client.GetEx(ctx, key(id), s.idleTTL).Bytes()
	} else {
		raw, err = s.client.Get(ctx, key(id)).Bytes()
	}
	if errors.Is(err, redis.Nil) {
		return model.Session{}, model.ErrNotFound
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	var sess model.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return model.Session{}, fmt.Errorf("failed to decode session: %w", err)
	}

	return sess, nil
}

func (s *RedisStore) Set(ctx context.Context, id string, sess model.Session) error {
	sess.LastSeen = s.now()

	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	// zero expiration keeps the key forever
	if err := s.client.Set(ctx, key(id), raw, s.idleTTL).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}

// Update reads and rewrites the session inside WATCH/MULTI and retries when
// another writer touched the key in between. fn may run more than once.
func (s *RedisStore) Update(ctx context.Context, id string, fn func(*model.Session)) error {
	k := key(id)

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			return model.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get session: %w", err)
		}

		var sess model.Session
		if err := json.Unmarshal(raw, &sess); err != nil {
			return fmt.Errorf("failed to decode session: %w", err)
		}

		fn(&sess)
		sess.LastSeen = s.now()

		raw, err = json.Marshal(sess)
		if err != nil {
			return fmt.Errorf("failed to encode session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, raw, s.idleTTL)
			return nil
		})
		return err
	}

	for range maxUpdateAttempts {
		err := s.client.Watch(ctx, txf, k)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("failed to update session: %w", err)
		}
		return err
	}

	return fmt.Errorf("failed to update session: %w", redis.TxFailedErr)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
