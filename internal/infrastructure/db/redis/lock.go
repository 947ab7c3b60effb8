package redis

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	lockTTL       = 5 * time.Second
	retryInterval = 25 * time.Millisecond
	acquireBudget = 3 * time.Second
)

// DateLocker serializes admission checks per reservation date using a Redis
// SET NX lease. Key format: lock:reservations:<date>
type DateLocker struct {
	client *redis.Client
}

// NewDateLocker creates a DateLocker wrapping the given Redis client.
func NewDateLocker(client *redis.Client) *DateLocker {
	return &DateLocker{client: client}
}

// releaseScript deletes the lease only when it still carries our token, so a
// holder whose lease expired cannot release a lease acquired by someone else.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Lock acquires the lease for date, retrying until acquireBudget elapses or
// ctx is cancelled. The lease expires after lockTTL as a crash fallback.
func (l *DateLocker) Lock(ctx context.Context, date string) (func(), error) {
	key := "lock:reservations:" + date
	token := lockToken()
	deadline := time.Now().Add(acquireBudget)

	for {
		acquired, err := l.client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire date lock: %w", err)
		}
		if acquired {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("acquire date lock: lease for %s still held", date)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
	}
	return release, nil
}

func lockToken() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%x", b)
}
