package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-member-portal/internal/domain/apperror"
	"github.com/oksasatya/go-member-portal/internal/domain/entity"
	"github.com/oksasatya/go-member-portal/internal/domain/repository"
	"github.com/oksasatya/go-member-portal/pkg/helpers"
)

const expiryIndexKey = "session:expiry"

func sessionKey(id string) string {
	return "session:" + id
}

// SessionStore keeps sealed session payloads in Redis. Each payload carries
// a key TTL matching its expiry, and a sorted set indexes expiries so the
// sweeper can remove stale sessions without scanning the keyspace.
type SessionStore struct {
	rdb    *redis.Client
	sealer *helpers.Sealer
}

func NewSessionStore(rdb *redis.Client, sealer *helpers.Sealer) *SessionStore {
	return &SessionStore{rdb: rdb, sealer: sealer}
}

// refreshScript rewrites the payload and expiry index only while the
// session key still exists.
var refreshScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
redis.call('ZADD', KEYS[2], ARGV[3], ARGV[4])
return 1
`)

func (s *SessionStore) seal(sess *entity.Session) ([]byte, error) {
	b, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	sealed, err := s.sealer.Seal(b)
	if err != nil {
		return nil, fmt.Errorf("seal session: %w", err)
	}
	return sealed, nil
}

func (s *SessionStore) Save(ctx context.Context, sess *entity.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, sess.ID)
	}
	sealed, err := s.seal(sess)
	if err != nil {
		return err
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(sess.ID), sealed, ttl)
		pipe.ZAdd(ctx, expiryIndexKey, redis.Z{Score: float64(sess.ExpiresAt.UnixMilli()), Member: sess.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Refresh(ctx context.Context, sess *entity.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, sess.ID)
	}
	sealed, err := s.seal(sess)
	if err != nil {
		return err
	}
	n, err := refreshScript.Run(ctx, s.rdb,
		[]string{sessionKey(sess.ID), expiryIndexKey},
		sealed, ttl.Milliseconds(), sess.ExpiresAt.UnixMilli(), sess.ID,
	).Int()
	if err != nil {
		return fmt.Errorf("refresh session: %w", err)
	}
	if n == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	plain, err := s.sealer.Open(raw)
	if err != nil {
		// Undecryptable payloads (rotated secret) are treated as absent
		return nil, apperror.ErrNotFound
	}
	sess := &entity.Session{}
	if err := json.Unmarshal(plain, sess); err != nil {
		return nil, apperror.ErrNotFound
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionKey(id))
		pipe.ZRem(ctx, expiryIndexKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	ids, err := s.rdb.ZRangeByScore(ctx, expiryIndexKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("scan expired sessions: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}
	keys := make([]string, len(ids))
	members := make([]any, len(ids))
	for i, id := range ids {
		keys[i] = sessionKey(id)
		members[i] = id
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		pipe.ZRem(ctx, expiryIndexKey, members...)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return len(ids), nil
}

var _ repository.SessionStore = (*SessionStore)(nil)
