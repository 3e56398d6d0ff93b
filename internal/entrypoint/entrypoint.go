package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/openbible/internal/catalog"
	"github.com/mrlokans/openbible/internal/config"
	http_controllers "github.com/mrlokans/openbible/internal/http"
	"github.com/mrlokans/openbible/internal/loader"
	"github.com/mrlokans/openbible/internal/metrics"
	"github.com/mrlokans/openbible/internal/openapi"
	"github.com/mrlokans/openbible/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until ctx is cancelled or the process receives
// SIGINT/SIGTERM, then shuts it down within the configured timeout.
func Serve(ctx context.Context, handler http.Handler, cfg *config.Config, logger *zap.Logger, onShutdown ShutdownFunc) error {
	return serve(ctx, handler, cfg, logger, onShutdown, nil)
}

// serve reports the bound address on ready once the listener is open.
func serve(ctx context.Context, handler http.Handler, cfg *config.Config, logger *zap.Logger, onShutdown ShutdownFunc, ready chan<- string) error {
	timeout := cfg.Global.ShutdownTimeout()

	addr := net.JoinHostPort(cfg.HTTP.Host, strconv.Itoa(int(cfg.HTTP.Port)))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("addr", listener.Addr().String()))
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	if ready != nil {
		ready <- listener.Addr().String()
	}

	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		logger.Info("Received signal", zap.String("signal", sig.String()))
	case <-ctx.Done():
	}

	logger.Info("Shutdown server", zap.Duration("timeout", timeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the corpus watcher)
	if onShutdown != nil {
		onShutdown(shutdownCtx)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("Server exiting")
	return nil
}

// LoadCatalog loads the corpus configured in cfg, honouring the loader
// timeout. The load duration and entity counts go to recorder when set.
func LoadCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger, recorder *metrics.Recorder) (*catalog.Catalog, error) {
	if cfg.Loader.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Loader.Timeout)
		defer cancel()
	}

	start := time.Now()
	cat, err := loader.LoadDir(ctx, cfg.Corpus.TranslationsPath,
		loader.WithLogger(logger),
		loader.WithMaxOpenFiles(cfg.Loader.MaxOpenFiles),
	)
	if err != nil {
		return nil, err
	}

	if recorder != nil {
		recorder.ObserveCatalog(cat.Stats(), time.Since(start))
	}
	return cat, nil
}

// Run loads the catalog, starts the optional corpus watcher and serves the
// API until ctx is cancelled or a shutdown signal arrives.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger, version string) error {
	return run(ctx, cfg, logger, version, nil)
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, version string, ready chan<- string) error {
	logger.Info("Starting Open Bible API", zap.String("version", version))

	var recorder *metrics.Recorder
	if cfg.Metrics.Enabled {
		recorder = metrics.NewRecorder()
	}

	cat, err := LoadCatalog(ctx, cfg, logger, recorder)
	if err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}

	routerConfig := http_controllers.RouterConfig{
		Catalog: cat,
		Logger:  logger,
		Metrics: recorder,
		OpenAPI: openapi.New(version),
		CORS:    cfg.CORS,
		Version: version,
	}

	var watcher *scheduler.CorpusWatchScheduler
	if cfg.CorpusWatch.Enabled {
		opts := []scheduler.WatchOption{scheduler.WithLogger(logger)}
		if recorder != nil {
			opts = append(opts, scheduler.WithObserver(recorder))
		}
		watcher = scheduler.NewCorpusWatchScheduler(os.DirFS(cfg.Corpus.TranslationsPath), cfg.CorpusWatch, opts...)
		if err := watcher.Baseline(ctx); err != nil {
			return fmt.Errorf("failed to snapshot translations: %w", err)
		}
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("failed to start corpus watcher: %w", err)
		}
		defer watcher.Stop()
		routerConfig.CorpusMonitor = watcher
	}

	if cfg.Log.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := http_controllers.NewRouter(routerConfig)

	return serve(ctx, router, cfg, logger, func(shutdownCtx context.Context) {
		if watcher == nil {
			return
		}
		if err := watcher.StopContext(shutdownCtx); err != nil {
			logger.Warn("Corpus watcher did not stop before the shutdown deadline", zap.Error(err))
		}
	}, ready)
}
