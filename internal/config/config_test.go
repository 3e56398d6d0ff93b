package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "HOST", "TRANSLATIONS_PATH", "LOADER_MAX_OPEN_FILES", "LOADER_TIMEOUT",
		"LOG_LEVEL", "APP_ENV", "CORS_ENABLED", "CORS_ORIGIN", "METRICS_ENABLED",
		"CORPUS_WATCH_ENABLED", "CORPUS_WATCH_SCHEDULE", "SHUTDOWN_TIMEOUT_IN_SECONDS",
	} {
		t.Setenv(key, "")
	}

	cfg := NewConfig()

	assert.Equal(t, int32(3000), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, DefaultTranslationsPath, cfg.Corpus.TranslationsPath)
	assert.Equal(t, 64, cfg.Loader.MaxOpenFiles)
	assert.Zero(t, cfg.Loader.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.IsProduction())
	assert.True(t, cfg.CORS.Enabled)
	assert.Empty(t, cfg.CORS.Origin)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.CorpusWatch.Enabled)
	assert.Equal(t, "*/15 * * * *", cfg.CorpusWatch.Schedule)
	assert.Equal(t, 2*time.Second, cfg.Global.ShutdownTimeout())
}

func TestNewConfig_Environment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("TRANSLATIONS_PATH", "/srv/translations")
	t.Setenv("LOADER_MAX_OPEN_FILES", "8")
	t.Setenv("LOADER_TIMEOUT", "30s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ENABLED", "false")
	t.Setenv("CORS_ORIGIN", "https://example.org")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("CORPUS_WATCH_ENABLED", "true")
	t.Setenv("CORPUS_WATCH_SCHEDULE", "@hourly")
	t.Setenv("SHUTDOWN_TIMEOUT_IN_SECONDS", "10")

	cfg := NewConfig()

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	assert.Equal(t, "/srv/translations", cfg.Corpus.TranslationsPath)
	assert.Equal(t, 8, cfg.Loader.MaxOpenFiles)
	assert.Equal(t, 30*time.Second, cfg.Loader.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.IsProduction())
	assert.False(t, cfg.CORS.Enabled)
	assert.Equal(t, "https://example.org", cfg.CORS.Origin)
	assert.False(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.CorpusWatch.Enabled)
	assert.Equal(t, "@hourly", cfg.CorpusWatch.Schedule)
	assert.Equal(t, 10*time.Second, cfg.Global.ShutdownTimeout())
}
