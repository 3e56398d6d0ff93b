package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/openbible/internal/logging"
	"github.com/mrlokans/openbible/internal/openapi"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	document := cfg.OpenAPI
	if document == nil {
		document = openapi.New(cfg.Version)
	}

	router := gin.New()
	router.Use(logging.GinMiddleware(logger))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("Recovered from panic", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}))

	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
	}

	// Apply security headers to all responses
	router.Use(SecurityHeadersMiddleware())

	// CORS headers are only sent when an origin is configured
	if cfg.CORS.Enabled && cfg.CORS.Origin != "" {
		router.Use(CORSMiddleware(cfg.CORS.Origin))
	}

	health := NewHealthController(cfg.Catalog, cfg.CorpusMonitor, cfg.Version)
	languages := NewLanguagesController(cfg.Catalog, logger)
	books := NewBooksController(cfg.Catalog, logger)
	verses := NewVersesController(cfg.Catalog, logger)
	docs := NewDocsController(document, logger)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	if cfg.Metrics != nil {
		router.GET("/metrics", cfg.Metrics.Handler())
	}

	// API documentation
	router.GET("/api-docs/", docs.SwaggerUI)
	router.GET("/api-docs/openapi.json", docs.JSON)
	router.GET("/api-docs/openapi.yaml", docs.YAML)

	// Catalog endpoints
	api := router.Group("/api/languages")
	api.Use(ETagMiddleware(cfg.Catalog.Fingerprint()))
	api.GET("", languages.ListLanguages)
	api.GET("/:language/translations", languages.ListTranslations)
	api.GET("/:language/translations/:translation/books", books.ListBooks)
	api.GET("/:language/translations/:translation/books/:book/chapters", books.CountChapters)
	api.GET("/:language/translations/:translation/books/:book/chapters/:chapter/verses", verses.CountVerses)
	api.GET("/:language/translations/:translation/books/:book/chapters/:chapter/verses/:verse", verses.GetVerses)

	router.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "404 Not Found")
	})

	return router
}
