package gridvalidate_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gridvalidate"
	"github.com/dmitrymomot/gridvalidate/pkg/config"
	"github.com/dmitrymomot/gridvalidate/pkg/logger"
)

func loadConfig(t *testing.T, vars map[string]string) gridvalidate.Config {
	t.Helper()

	var cfg gridvalidate.Config
	require.NoError(t, config.Load(&cfg, config.WithPrefix("GRIDVALIDATE_"), config.WithEnvironment(vars)))
	return cfg
}

func TestConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := loadConfig(t, map[string]string{})
	assert.Equal(t, "en", cfg.Language)
	assert.True(t, cfg.StrictValidatorTypes)
	assert.Zero(t, cfg.AsyncTimeout)
	assert.Equal(t, "production", cfg.Environment)
	assert.Empty(t, cfg.LogLevel)
	assert.Empty(t, cfg.LogFormat)
}

func TestNewServiceFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("language and lenient types", func(t *testing.T) {
		cfg := loadConfig(t, map[string]string{
			"GRIDVALIDATE_LANGUAGE":               "de",
			"GRIDVALIDATE_STRICT_VALIDATOR_TYPES": "false",
			"GRIDVALIDATE_ASYNC_TIMEOUT":          "250ms",
			"GRIDVALIDATE_LOG_LEVEL":              "error",
		})
		assert.Equal(t, 250*time.Millisecond, cfg.AsyncTimeout)

		svc, err := gridvalidate.NewServiceFromConfig(context.Background(), cfg, prometheus.NewRegistry())
		require.NoError(t, err)

		col := newColumn(t, svc, "name", map[string]any{"notNull": true, "unknown": 1})
		row := gridvalidate.NewRow(nil)
		_, err = svc.RunValidators(context.Background(), row, col, "", "x")
		require.NoError(t, err)

		title, ok := svc.GetTitleFormattedErrors(row, col)
		require.True(t, ok)
		assert.Equal(t, "Fehler:\nEin Wert wird benötigt.\n", title)
	})

	t.Run("translations directory overrides bundled messages", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "en.yaml"), []byte(`
en:
  validate:
    notNull: "Required."
`), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{"en": {"validate": {"error": "Problems:"}}}`), 0o600))

		cfg := loadConfig(t, map[string]string{
			"GRIDVALIDATE_TRANSLATIONS_DIR": dir,
			"GRIDVALIDATE_LOG_LEVEL":        "error",
		})
		svc, err := gridvalidate.NewServiceFromConfig(context.Background(), cfg, nil)
		require.NoError(t, err)

		col := newColumn(t, svc, "name", map[string]any{"notNull": true, "minLength": 2})
		row := gridvalidate.NewRow(nil)
		_, err = svc.RunValidators(context.Background(), row, col, "", nil)
		require.NoError(t, err)

		title, _ := svc.GetTitleFormattedErrors(row, col)
		assert.Equal(t, "Problems:\nValue should be at least 2 characters long.\nRequired.\n", title)
	})

	t.Run("missing translations directory", func(t *testing.T) {
		cfg := loadConfig(t, map[string]string{
			"GRIDVALIDATE_TRANSLATIONS_DIR": filepath.Join(t.TempDir(), "missing"),
		})
		_, err := gridvalidate.NewServiceFromConfig(context.Background(), cfg, nil)
		assert.Error(t, err)
	})

	t.Run("invalid log level", func(t *testing.T) {
		cfg := loadConfig(t, map[string]string{"GRIDVALIDATE_LOG_LEVEL": "loud"})
		_, err := gridvalidate.NewServiceFromConfig(context.Background(), cfg, nil)
		assert.Error(t, err)
	})
}

func TestConfig_Logger(t *testing.T) {
	t.Parallel()

	_, err := gridvalidate.Config{LogLevel: "debug", LogFormat: "xml"}.Logger()
	assert.Error(t, err)
	_, err = gridvalidate.Config{LogLevel: "loud"}.Logger()
	assert.Error(t, err)

	log, err := gridvalidate.Config{LogLevel: "debug", LogFormat: "text"}.Logger()
	require.NoError(t, err)
	assert.True(t, log.Enabled(context.Background(), slog.LevelDebug))

	log, err = gridvalidate.Config{Environment: "production"}.Logger()
	require.NoError(t, err)
	assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))

	log, err = gridvalidate.Config{Environment: "development"}.Logger()
	require.NoError(t, err)
	assert.True(t, log.Enabled(context.Background(), slog.LevelDebug))
}

func TestConfig_LogOptions(t *testing.T) {
	t.Parallel()

	cfg := loadConfig(t, map[string]string{
		"GRIDVALIDATE_ENVIRONMENT": "staging",
		"GRIDVALIDATE_LANGUAGE":    "de",
	})
	opts, err := cfg.LogOptions()
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	log := logger.New(append(opts, logger.WithOutput(buf))...)
	log.Debug("hidden")
	log.Info("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "gridvalidate", entry["service"])
	assert.Equal(t, "staging", entry["env"])
	assert.Equal(t, "de", entry["language"])
}

func TestNewServiceFromConfig_OverlayLanguage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.yaml"), []byte("en:\n  validate:\n    error: \"Oops:\"\n"), 0o600))

	cfg := loadConfig(t, map[string]string{
		"GRIDVALIDATE_LANGUAGE":         "de",
		"GRIDVALIDATE_TRANSLATIONS_DIR": dir,
		"GRIDVALIDATE_LOG_LEVEL":        "error",
	})
	svc, err := gridvalidate.NewServiceFromConfig(context.Background(), cfg, nil)
	require.NoError(t, err)

	col := newColumn(t, svc, "name", map[string]any{"notNull": true})
	row := gridvalidate.NewRow(nil)
	_, err = svc.RunValidators(context.Background(), row, col, "", nil)
	require.NoError(t, err)

	title, _ := svc.GetTitleFormattedErrors(row, col)
	assert.Equal(t, "Fehler:\nEin Wert wird benötigt.\n", title, "an English-only overlay does not replace German messages")
}
