package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMonitor struct {
	status  string
	drifted bool
}

func (m fakeMonitor) CorpusStatus() string { return m.status }
func (m fakeMonitor) Drifted() bool        { return m.drifted }

func TestHealthController_Status(t *testing.T) {
	cat := loadSampleCatalog(t)

	serve := func(controller *HealthController) (*httptest.ResponseRecorder, HealthResponse) {
		router := gin.New()
		router.GET("/health", controller.Status)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/health", nil)
		router.ServeHTTP(w, req)

		var response HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		return w, response
	}

	t.Run("returns healthy with catalog stats", func(t *testing.T) {
		w, response := serve(NewHealthController(cat, nil, "1.0.0"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["catalog"])
		assert.Equal(t, "not watched", response.Checks["corpus"])
		assert.Equal(t, cat.Stats(), response.Catalog)
		assert.NotEmpty(t, response.Time)
	})

	t.Run("reports watched corpus", func(t *testing.T) {
		_, response := serve(NewHealthController(cat, fakeMonitor{status: "unchanged"}, "1.0.0"))

		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "unchanged", response.Checks["corpus"])
	})

	t.Run("returns degraded when the corpus drifted", func(t *testing.T) {
		w, response := serve(NewHealthController(cat, fakeMonitor{status: "changed on disk; restart to reload", drifted: true}, "1.0.0"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "degraded", response.Status)
		assert.Equal(t, "changed on disk; restart to reload", response.Checks["corpus"])
	})
}
