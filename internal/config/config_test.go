package config

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/question-authoring-service/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("DRAFT_CACHE_TTL", "")
	t.Setenv("EVENTS_ENABLED", "")
	t.Setenv("AUTH_ENABLED", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, 30*time.Minute, cfg.DraftCacheTTL)
	assert.True(t, cfg.Events.Enabled)
	assert.Equal(t, "question-authoring", cfg.Events.AuthoringTopic)
	assert.False(t, cfg.Auth.Enabled)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("DRAFT_CACHE_TTL", "5m")
	t.Setenv("EVENTS_ENABLED", "false")
	t.Setenv("AUTH_ENABLED", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, 5*time.Minute, cfg.DraftCacheTTL)
	assert.False(t, cfg.Events.Enabled)
}

func TestLoadConfig_Rejects(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DRAFT_CACHE_TTL", "")
	t.Setenv("AUTH_ENABLED", "")

	t.Setenv("STORAGE_DRIVER", "sqlite")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("CASDOOR_ENDPOINT", "")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestEventConfig(t *testing.T) {
	cfg := EventConfig{KafkaBrokers: "a:9092, b:9092,", Publisher: "mock", Enabled: true}
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.GetKafkaBrokers())

	pub, err := cfg.CreateEventPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.IsType(t, &events.MockEventPublisher{}, pub)
}
