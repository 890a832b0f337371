package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/comitanigiacomo/kanso-diet/internal/config"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestOptions(t *testing.T) {
	opts := Options(config.RedisConfig{Host: "cache", Port: "6380", Password: "pw", DB: 3})

	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 3, opts.DB)
	assert.Positive(t, opts.PoolSize)
	assert.LessOrEqual(t, opts.DialTimeout, pingTimeout)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	_, err := NewRedisClient(context.Background(), config.RedisConfig{Host: "127.0.0.1", Port: "1"}, zap.New(core))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
	assert.Zero(t, logs.FilterMessage("redis connected").Len())
}

func TestNewRedisClient_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRedisClient(ctx, config.RedisConfig{Host: "localhost", Port: "6379"}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRedisClient_Integration(t *testing.T) {
	_ = godotenv.Load("../../../.env")

	core, logs := observer.New(zap.InfoLevel)
	rdb, err := NewRedisClient(context.Background(), config.RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", "secret_redis_pass_local"),
		DB:       1,
	}, zap.New(core))
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	defer rdb.Close()

	ctx := context.Background()
	require.NoError(t, rdb.FlushDB(ctx).Err(), "Failed to flush test DB")

	assert.Equal(t, 1, logs.FilterMessage("redis connected").Len())

	t.Run("Stores JSON documents as bytes", func(t *testing.T) {
		doc := []byte(`{"date":"2024-07-24","meals":[]}`)
		require.NoError(t, rdb.Set(ctx, "state:todaysLog", doc, time.Minute).Err())

		got, err := rdb.Get(ctx, "state:todaysLog").Bytes()
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("Missing key is redis.Nil", func(t *testing.T) {
		_, err := rdb.Get(ctx, "state:missing").Result()
		assert.ErrorIs(t, err, redis.Nil)
	})
}
