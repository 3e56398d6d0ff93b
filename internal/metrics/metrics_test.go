package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/openbible/internal/catalog"
)

func setupRouter(rec *Recorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(rec.Middleware())
	router.GET("/api/languages/:language", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/metrics", rec.Handler())
	return router
}

func TestMiddleware(t *testing.T) {
	rec := NewRecorder()
	router := setupRouter(rec)

	for _, path := range []string{"/api/languages/en", "/api/languages/de", "/nowhere"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)
	}

	t.Run("labels by route template", func(t *testing.T) {
		got := testutil.ToFloat64(rec.requests.WithLabelValues(http.MethodGet, "/api/languages/:language", "200"))
		assert.Equal(t, 2.0, got)
	})

	t.Run("unmatched routes share a label", func(t *testing.T) {
		got := testutil.ToFloat64(rec.requests.WithLabelValues(http.MethodGet, unmatchedRoute, "404"))
		assert.Equal(t, 1.0, got)
	})
}

func TestObserveCatalog(t *testing.T) {
	rec := NewRecorder()
	rec.ObserveCatalog(catalog.Stats{Languages: 2, Translations: 3, Books: 4, Chapters: 55, Verses: 207}, 1500*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.catalogEntries.WithLabelValues("languages")))
	assert.Equal(t, 207.0, testutil.ToFloat64(rec.catalogEntries.WithLabelValues("verses")))
	assert.Equal(t, 1.5, testutil.ToFloat64(rec.loadDuration))
}

func TestObserveWatchCheck(t *testing.T) {
	rec := NewRecorder()
	rec.ObserveWatchCheck("unchanged")
	rec.ObserveWatchCheck("unchanged")
	rec.ObserveWatchCheck("changed")

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.watchChecks.WithLabelValues("unchanged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.watchChecks.WithLabelValues("changed")))
}

func TestHandler(t *testing.T) {
	rec := NewRecorder()
	rec.ObserveCatalog(catalog.Stats{Languages: 1}, time.Second)
	router := setupRouter(rec)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `openbible_catalog_entries{level="languages"} 1`)
	assert.Contains(t, body, "openbible_catalog_load_duration_seconds 1")
	assert.Contains(t, body, "go_goroutines")
}
