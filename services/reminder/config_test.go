package reminder

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Offsets = nil
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Offsets = []Offset{{Days: -1, Label: "yesterday"}}
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.FireAt = "7am"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Timezone = "Mars/Olympus_Mons"
	assert.Error(t, cfg.Validate())
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `reminder:
  offsets:
    - days: 2
      label: "in 2 days"
  fire_at: "06:30"
  timezone: "UTC"
  fallback_recipient: "admin-id"
  call_timeout: 5s
  cycle_timeout: 2m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []Offset{{Days: 2, Label: "in 2 days"}}, cfg.Offsets)
	assert.Equal(t, "06:30", cfg.FireAt)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "admin-id", cfg.FallbackRecipient)
	assert.Equal(t, 5*time.Second, cfg.CallTimeout)
	assert.Equal(t, 2*time.Minute, cfg.CycleTimeout)
}

func TestLoadConfigFallsBackToDefaultOffsets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reminder:\n  fire_at: \"08:00\"\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Offsets, cfg.Offsets)
	assert.Equal(t, "08:00", cfg.FireAt)
}
