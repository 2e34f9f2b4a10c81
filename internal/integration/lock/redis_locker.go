// Package lock claims batch units across scheduler replicas with redis.
package lock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/property-ledger/backend/internal/application/adapter"
)

// keyPrefix namespaces ledger unit keys.
const keyPrefix = "ledger:unit:"

// releaseScript deletes the key only while it still holds our token.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

var (
	errEmptyKey    = errors.New("lock key is empty")
	errNonPositive = errors.New("lock ttl must be positive")
)

// RedisLocker implements adapter.UnitLocker with SET NX and a
// compare-and-delete release.
type RedisLocker struct {
	client *redis.Client
	script *redis.Script
}

var _ adapter.UnitLocker = (*RedisLocker)(nil)

// NewRedisLocker creates a locker on client.
func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{
		client: client,
		script: redis.NewScript(releaseScript),
	}
}

// TryLock claims key for ttl and returns the token needed to release it.
func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if key == "" {
		return "", false, errEmptyKey
	}
	if ttl <= 0 {
		return "", false, errNonPositive
	}

	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, keyPrefix+key, token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release frees key when token still owns it. Releasing a lost or expired
// claim is not an error.
func (l *RedisLocker) Release(ctx context.Context, key, token string) error {
	if key == "" || token == "" {
		return nil
	}
	return l.script.Run(ctx, l.client, []string{keyPrefix + key}, token).Err()
}
