package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"car-damage-bot/internal/infrastructure/roboflow"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ROBOFLOW_URL", "")
	t.Setenv("ROBOFLOW_MODEL", "")
	t.Setenv("DETECTOR_MAX_SIDE", "")
	t.Setenv("DETECTOR_ATTEMPTS", "")
	t.Setenv("DEFAULT_CAR_TYPE", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, roboflow.DefaultURL, cfg.DetectorURL)
	require.Equal(t, roboflow.DefaultModel, cfg.DetectorModel)
	require.Equal(t, 1024, cfg.DetectorMaxSide)
	require.Equal(t, 3, cfg.DetectorTries)
	require.Equal(t, "sedan", cfg.DefaultCarType)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "tok")
	t.Setenv("ROBOFLOW_API_KEY", "key")
	t.Setenv("DETECTOR_MAX_SIDE", "640")
	t.Setenv("DETECTOR_ATTEMPTS", "not-a-number")
	t.Setenv("DETECTOR_TIMEOUT_SECONDS", "5")
	t.Setenv("OUTPUT_DIR", "/srv/out")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "tok", cfg.TelegramToken)
	require.Equal(t, "/srv/out", cfg.OutputDir)

	opts := cfg.DetectorOptions()
	require.Equal(t, "key", opts.APIKey)
	require.Equal(t, 640, opts.MaxSide)
	require.Equal(t, 3, opts.Attempts)
	require.Equal(t, 5*time.Second, opts.Timeout)
}
