package infra

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshKeyPrefix = "refresh:"

// TokenStore keeps issued refresh tokens in Redis so rotation can revoke them.
// Keys are the SHA-256 of the token (raw JWTs never touch Redis) and carry a
// TTL equal to the refresh lifetime, so expired tokens clean themselves up.
// Absence of a key means the token was rotated, revoked, or expired.
type TokenStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTokenStore(rdb *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{rdb: rdb, ttl: ttl}
}

func (s *TokenStore) Save(ctx context.Context, token, userID string) error {
	return s.rdb.Set(ctx, refreshKeyPrefix+hashToken(token), userID, s.ttl).Err()
}

func (s *TokenStore) Exists(ctx context.Context, token string) (bool, error) {
	n, err := s.rdb.Exists(ctx, refreshKeyPrefix+hashToken(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, refreshKeyPrefix+hashToken(token)).Err()
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
