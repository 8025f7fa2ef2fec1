package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, []string{"http://localhost:8091/pools"}, cfg.ControlPlane.Endpoints)
	assert.Equal(t, 5*time.Second, cfg.ControlPlane.FetchTimeout())
	assert.Equal(t, 30*time.Second, cfg.ControlPlane.BreakerOpenTimeout())
	assert.Equal(t, 500*time.Millisecond, cfg.Stream.ReconnectMin())
	assert.Equal(t, 30*time.Second, cfg.Stream.ReconnectMax())
	assert.Equal(t, "default", cfg.Client.Bucket)
	assert.Equal(t, "direct", cfg.Client.PreferredPort)
	assert.Equal(t, 2*time.Second, cfg.Client.DialTimeout())
	assert.Zero(t, cfg.Client.RetireGrace())
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
