package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoker keeps signed-out token ids until the tokens would have expired anyway.
type Revoker struct {
	Client *redis.Client
}

func NewRevoker(client *redis.Client) *Revoker {
	return &Revoker{Client: client}
}

func revokedKey(jti string) string { return "revoked:" + jti }

func (r *Revoker) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.Client.Set(ctx, revokedKey(jti), 1, ttl).Err()
}

func (r *Revoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.Client.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
