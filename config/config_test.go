package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/clarion-insurance/claims-orchestrator/config"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.Default().SupervisorModelDeployment, cfg.SupervisorModelDeployment)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoadYAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "claims.yaml")
	require.NoError(t, os.WriteFile(path, []byte("supervisor_model_deployment: gpt-4o-mini\nrun_timeout: 90s\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "gpt-4o-mini", cfg.SupervisorModelDeployment)
	require.Equal(t, 90*time.Second, cfg.RunTimeout)
}

func TestEnvironmentOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "claims.yaml")
	require.NoError(t, os.WriteFile(path, []byte("supervisor_model_deployment: gpt-4o-mini\n"), 0o600))

	t.Setenv("CLAIMS_SUPERVISOR_MODEL", "gpt-4o")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "gpt-4o", cfg.SupervisorModelDeployment)
}
