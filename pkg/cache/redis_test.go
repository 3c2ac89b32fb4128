package cache

import (
	"context"
	"os"
	"testing"

	"github.com/ghuser/propstack/pkg/config"
)

func redisConfig(url string) *config.Config {
	return &config.Config{RedisURL: url}
}

func TestNewRedisClient_BadInput(t *testing.T) {
	t.Run("unparseable URL", func(t *testing.T) {
		if _, err := NewRedisClient(redisConfig("not-a-valid-url")); err == nil {
			t.Fatal("expected error for invalid URL, got nil")
		}
	})

	t.Run("unreachable host", func(t *testing.T) {
		if _, err := NewRedisClient(redisConfig("redis://localhost:19999")); err == nil {
			t.Fatal("expected error when Redis is unreachable, got nil")
		}
	})
}

// Integration coverage needs a live server; set REDIS_URL to enable it.
func TestRedisIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	connect := func(t *testing.T) *RedisClient {
		t.Helper()
		rc, err := NewRedisClient(redisConfig(redisURL))
		if err != nil {
			t.Fatalf("connect: %v", err)
		}
		return rc
	}

	t.Run("connects and pings", func(t *testing.T) {
		rc := connect(t)
		defer rc.Close() //nolint:errcheck

		if err := rc.Ping(context.Background()); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
	})

	t.Run("exposes the raw client", func(t *testing.T) {
		rc := connect(t)
		defer rc.Close() //nolint:errcheck

		if rc.Client() == nil {
			t.Fatal("expected non-nil underlying client")
		}
	})

	t.Run("closes cleanly", func(t *testing.T) {
		rc := connect(t)
		if err := rc.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	})
}
