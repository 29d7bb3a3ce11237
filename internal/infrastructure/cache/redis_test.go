package cache

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bimakw/wallet-console/internal/config"
)

// newTestRedisStore connects to REDIS_TEST_HOST:REDIS_TEST_PORT and skips
// the test when no server is configured
func newTestRedisStore(t *testing.T, ttl time.Duration) *RedisSessionStore {
	t.Helper()

	host := os.Getenv("REDIS_TEST_HOST")
	if host == "" {
		t.Skip("REDIS_TEST_HOST not set, skipping Redis session store test")
	}
	port := 6379
	if p := os.Getenv("REDIS_TEST_PORT"); p != "" {
		var err error
		port, err = strconv.Atoi(p)
		require.NoError(t, err)
	}

	store, err := NewRedisSessionStore(config.RedisConfig{Host: host, Port: port}, ttl, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "wallet-console:session:abc", sessionKey("abc"))
}

func TestNewRedisSessionStore_Unreachable(t *testing.T) {
	_, err := NewRedisSessionStore(config.RedisConfig{Host: "127.0.0.1", Port: 1}, time.Minute, zap.NewNop())
	assert.Error(t, err)
}

func TestRedisSessionStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t, time.Minute)
	id := "test-" + strconv.FormatInt(time.Now().UnixNano(), 36)

	require.NoError(t, store.Save(ctx, testSessionState(id)))

	got, err := store.Load(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, testSessionState(id), *got)

	require.NoError(t, store.Delete(ctx, id))

	got, err = store.Load(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, store.HealthCheck(ctx))
}
