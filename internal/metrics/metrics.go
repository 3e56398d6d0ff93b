// Package metrics exposes Prometheus collectors for the HTTP API, the
// catalog load and the corpus drift watcher. Each Recorder owns its own
// registry so that several can coexist in one process.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mrlokans/openbible/internal/catalog"
)

const namespace = "openbible"

// unmatchedRoute labels requests that hit no registered route, keeping
// label cardinality bounded.
const unmatchedRoute = "unmatched"

type Recorder struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	catalogEntries  *prometheus.GaugeVec
	loadDuration    prometheus.Gauge
	watchChecks     *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"method", "route"}),
		catalogEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "entries",
			Help:      "Number of loaded catalog entries per level.",
		}, []string{"level"}),
		loadDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "load_duration_seconds",
			Help:      "Wall time of the startup corpus load.",
		}),
		watchChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "corpus_watch",
			Name:      "checks_total",
			Help:      "Corpus drift checks by result (unchanged, changed, error).",
		}, []string{"result"}),
	}

	r.registry.MustRegister(
		r.requests,
		r.requestDuration,
		r.catalogEntries,
		r.loadDuration,
		r.watchChecks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Registry returns the registry backing the recorder.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveCatalog publishes the size of a loaded catalog and how long the load took.
func (r *Recorder) ObserveCatalog(stats catalog.Stats, elapsed time.Duration) {
	r.catalogEntries.WithLabelValues("languages").Set(float64(stats.Languages))
	r.catalogEntries.WithLabelValues("translations").Set(float64(stats.Translations))
	r.catalogEntries.WithLabelValues("books").Set(float64(stats.Books))
	r.catalogEntries.WithLabelValues("chapters").Set(float64(stats.Chapters))
	r.catalogEntries.WithLabelValues("verses").Set(float64(stats.Verses))
	r.loadDuration.Set(elapsed.Seconds())
}

// ObserveWatchCheck counts one drift check outcome.
func (r *Recorder) ObserveWatchCheck(result string) {
	r.watchChecks.WithLabelValues(result).Inc()
}

// Middleware records request counts and latency keyed by the matched route
// template rather than the raw path.
func (r *Recorder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		method := c.Request.Method
		r.requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		r.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
	return gin.WrapH(h)
}
