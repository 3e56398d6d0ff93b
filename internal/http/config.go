package http

import (
	"go.uber.org/zap"

	"github.com/mrlokans/openbible/internal/catalog"
	"github.com/mrlokans/openbible/internal/config"
	"github.com/mrlokans/openbible/internal/metrics"
	"github.com/mrlokans/openbible/internal/openapi"
)

// CorpusMonitor reports whether the corpus on disk still matches the
// loaded catalog.
type CorpusMonitor interface {
	CorpusStatus() string
	Drifted() bool
}

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Catalog *catalog.Catalog
	Logger  *zap.Logger

	// Optional: /metrics is only served when set
	Metrics *metrics.Recorder

	// Optional: health reports "not watched" when nil
	CorpusMonitor CorpusMonitor

	// API documentation served under /api-docs
	OpenAPI *openapi.Document

	CORS config.CORS

	// Application info
	Version string
}
