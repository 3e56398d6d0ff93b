package logging

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mrlokans/openbible/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("development debug", func(t *testing.T) {
		logger, err := New(config.Log{Level: "debug", Env: config.EnvDevelopment})
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("production warn", func(t *testing.T) {
		logger, err := New(config.Log{Level: "warn", Env: config.EnvProduction})
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("empty level means info", func(t *testing.T) {
		logger, err := New(config.Log{})
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := New(config.Log{Level: "loud"})
		assert.Error(t, err)
	})
}

func setupRouter(logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinMiddleware(logger))
	router.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, RequestID(c))
	})
	router.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	router.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})
	return router
}

func TestGinMiddleware(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	router := setupRouter(zap.New(core))

	t.Run("generates request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/ok", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("honours incoming request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", w.Body.String())
	})

	t.Run("level follows status", func(t *testing.T) {
		logs.TakeAll()
		for _, path := range []string{"/ok", "/missing", "/boom"} {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, path, nil)
			router.ServeHTTP(w, req)
		}

		entries := logs.TakeAll()
		require.Len(t, entries, 3)
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		assert.Contains(t, entries[0].Message, "GET /ok 200 (")
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
		assert.Contains(t, entries[1].Message, "GET /missing 404")
		assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	})
}
