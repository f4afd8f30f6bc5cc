package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSONConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON_FullConfig(t *testing.T) {
	path := writeJSONConfig(t, `{
		"server": {
			"base_url": "https://reckot.example.com",
			"token": "json-token",
			"request_timeout": "20s"
		},
		"storage": {"db": {"path": "/var/lib/station.db"}},
		"sync": {"interval": "2m", "probe_interval": "5s"},
		"event": {"org_slug": "acme", "event_slug": "gophercon-2026"}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "https://reckot.example.com", cfg.Server.BaseURL)
	assert.Equal(t, "json-token", cfg.Server.Token)
	assert.Equal(t, 20*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "/var/lib/station.db", cfg.Storage.DB.Path)
	assert.Equal(t, 2*time.Minute, cfg.Sync.Interval)
	assert.Equal(t, 5*time.Second, cfg.Sync.ProbeInterval)
	assert.Equal(t, "acme", cfg.Event.OrgSlug)
	assert.Equal(t, "gophercon-2026", cfg.Event.EventSlug)
}

func TestParseJSON_NumericDuration(t *testing.T) {
	path := writeJSONConfig(t, `{"sync": {"interval": 60000000000}}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.Sync.Interval)
}

func TestParseJSON_InvalidDuration_Fails(t *testing.T) {
	path := writeJSONConfig(t, `{"sync": {"interval": "soon"}}`)

	_, err := parseJSON(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing duration")
}

func TestParseJSON_MissingFile_Fails(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
