package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_PopulatesNestedFields(t *testing.T) {
	t.Setenv("SERVER_BASE_URL", "https://reckot.example.com")
	t.Setenv("SERVER_TOKEN", "secret-token")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "20s")
	t.Setenv("STORAGE_DB_PATH", "/var/lib/station.db")
	t.Setenv("SYNC_INTERVAL", "2m")
	t.Setenv("SYNC_PROBE_INTERVAL", "5s")
	t.Setenv("EVENT_ORG_SLUG", "acme")
	t.Setenv("EVENT_EVENT_SLUG", "gophercon-2026")

	cfg := &StationConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "https://reckot.example.com", cfg.Server.BaseURL)
	assert.Equal(t, "secret-token", cfg.Server.Token)
	assert.Equal(t, 20*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "/var/lib/station.db", cfg.Storage.DB.Path)
	assert.Equal(t, 2*time.Minute, cfg.Sync.Interval)
	assert.Equal(t, 5*time.Second, cfg.Sync.ProbeInterval)
	assert.Equal(t, "acme", cfg.Event.OrgSlug)
	assert.Equal(t, "gophercon-2026", cfg.Event.EventSlug)
}

func TestParseEnv_InvalidDuration_Fails(t *testing.T) {
	t.Setenv("SYNC_INTERVAL", "not-a-duration")

	cfg := &StationConfig{}
	err := parseEnv(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func TestParseEnv_EmptyEnvironment_LeavesZeroValues(t *testing.T) {
	cfg := &StationConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Empty(t, cfg.Server.BaseURL)
	assert.Zero(t, cfg.Sync.Interval)
}
