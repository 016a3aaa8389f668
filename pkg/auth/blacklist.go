package auth

import (
	"context"
	"errors"
	"time"

	"github.com/shashiranjanraj/vastra/pkg/cache"
)

// Blacklist records refresh token ids that have been rotated or
// explicitly revoked. Entries expire with the token itself, so the
// store never grows past one TTL window.
type Blacklist struct {
	store cache.Store
}

func NewBlacklist(store cache.Store) *Blacklist {
	return &Blacklist{store: store}
}

func (b *Blacklist) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		// Already expired, nothing to record.
		return nil
	}
	return b.store.Set(ctx, "blacklist:"+jti, "1", ttl)
}

func (b *Blacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, err := b.store.Get(ctx, "blacklist:"+jti)
	if errors.Is(err, cache.ErrMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
