package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/openbible/internal/catalog"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
	Catalog catalog.Stats     `json:"catalog"`
}

type HealthController struct {
	catalog *catalog.Catalog
	monitor CorpusMonitor
	version string
}

func NewHealthController(cat *catalog.Catalog, monitor CorpusMonitor, version string) *HealthController {
	return &HealthController{
		catalog: cat,
		monitor: monitor,
		version: version,
	}
}

// Status always answers 200: the catalog is immutable once loaded, so a
// drifted corpus still serves consistent data and only degrades freshness.
func (h *HealthController) Status(c *gin.Context) {
	checks := map[string]string{"catalog": "ok"}
	status := statusHealthy

	if h.monitor != nil {
		checks["corpus"] = h.monitor.CorpusStatus()
		if h.monitor.Drifted() {
			status = statusDegraded
		}
	} else {
		checks["corpus"] = "not watched"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
		Catalog: h.catalog.Stats(),
	}

	c.IndentedJSON(http.StatusOK, health)
}
