package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func loadFrom(t *testing.T, yaml string) (*Config, error) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})

	return Load()
}

func TestLoadFillsDefaults(t *testing.T) {
	cfg, err := loadFrom(t, `
telegram:
  token: "1234567890:TEST"
predictor:
  url: "http://localhost:8501/v1/models/prices:predict"
`)
	require.NoError(t, err)

	require.Equal(t, "serving_default", cfg.Predictor.SignatureName)
	require.Equal(t, "fractional", cfg.Predictor.Rounding)
	require.Equal(t, 3, *cfg.Predictor.MaxRetries)
	require.Equal(t, 10, cfg.Predictor.TimeoutSeconds)
	require.Equal(t, 500, cfg.Predictor.BackoffMillis)
	require.Equal(t, 30, *cfg.Dialog.IdleTTLMinutes)
	require.Equal(t, ":8080", cfg.Telegram.WebhookAddr)
}

func TestLoadKeepsExplicitZeroes(t *testing.T) {
	cfg, err := loadFrom(t, `
telegram:
  token: "1234567890:TEST"
predictor:
  url: "http://localhost:8501/v1/models/prices:predict"
  max_retries: 0
dialog:
  idle_ttl_minutes: 0
`)
	require.NoError(t, err)

	// an explicit 0 is a meaningful setting, not an absent key
	require.Equal(t, 0, *cfg.Predictor.MaxRetries, "no retries")
	require.Equal(t, 0, *cfg.Dialog.IdleTTLMinutes, "sweep disabled")
}

func TestLoadRejectsNegativeValues(t *testing.T) {
	_, err := loadFrom(t, `
telegram:
  token: "1234567890:TEST"
predictor:
  url: "http://localhost:8501/v1/models/prices:predict"
  max_retries: -1
`)
	require.Error(t, err)
}

func TestLoadRejectsMissingToken(t *testing.T) {
	_, err := loadFrom(t, `
predictor:
  url: "http://localhost:8501/v1/models/prices:predict"
`)
	require.Error(t, err)
}

func TestLoadRejectsBadRounding(t *testing.T) {
	_, err := loadFrom(t, `
telegram:
  token: "1234567890:TEST"
predictor:
  url: "http://localhost:8501/v1/models/prices:predict"
  rounding: "ceil"
`)
	require.Error(t, err)
}
