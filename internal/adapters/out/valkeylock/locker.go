// Package valkeylock implements the dispatch order lease on top of Valkey.
//
// A lease is a single key ("dispatch:order:<id>") holding a random token,
// written with SET NX PX. Release compares the token server-side via a Lua
// script so an expired lease reacquired by another worker cannot be deleted
// by the previous holder.
package valkeylock

import (
	"context"
	"fmt"
	"time"

	"geodispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

const keyPrefix = "dispatch:order:"

var releaseScript = valkey.NewLuaScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker implements ports.OrderLocker using a Valkey instance shared by all
// dispatch workers.
type Locker struct {
	client valkey.Client
}

// NewLocker connects to Valkey at the given address.
func NewLocker(addr string) (*Locker, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	return &Locker{client: client}, nil
}

// Acquire tries to take the lease for the order without blocking.
func (l *Locker) Acquire(
	ctx context.Context,
	orderID kernel.UUID,
	ttl time.Duration,
) (string, bool, error) {
	token := uuid.NewString()

	cmd := l.client.Do(ctx,
		l.client.B().Set().Key(leaseKey(orderID)).Value(token).Nx().Px(ttl).Build(),
	)
	if err := cmd.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("acquire order lease: %w", err)
	}

	return token, true, nil
}

// Release frees the lease if the token still matches the holder.
func (l *Locker) Release(ctx context.Context, orderID kernel.UUID, token string) error {
	res := releaseScript.Exec(ctx, l.client, []string{leaseKey(orderID)}, []string{token})
	if err := res.Error(); err != nil {
		return fmt.Errorf("release order lease: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (l *Locker) Close() {
	l.client.Close()
}

func leaseKey(orderID kernel.UUID) string {
	return keyPrefix + orderID.String()
}
