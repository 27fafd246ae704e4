// Package metrics provides Prometheus instrumentation: the standard HTTP
// metrics plus the inventory gauges the nightly sweep keeps fresh.
//
// Wire once at boot:
//
//	r.Use(metrics.Middleware())
//	r.Get("/metrics", "metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, route path, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bhandar",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bhandar",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bhandar",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// StoreQueryDuration tracks product/user store query latency.
	StoreQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bhandar",
			Subsystem: "store",
			Name:      "query_duration_seconds",
			Help:      "Duration of store queries in seconds.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .5, 1},
		},
		[]string{"operation"},
	)

	// Inventory gauges, refreshed by the scheduled sweep and on demand.
	ProductsTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bhandar",
		Subsystem: "inventory",
		Name:      "products_total",
		Help:      "Total number of products in the catalog.",
	})
	LowStockItems = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bhandar",
		Subsystem: "inventory",
		Name:      "low_stock_items",
		Help:      "Products at or below the low-stock threshold.",
	})
	OutOfStockItems = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bhandar",
		Subsystem: "inventory",
		Name:      "out_of_stock_items",
		Help:      "Products with zero quantity on hand.",
	})
	ExpiringSoonItems = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bhandar",
		Subsystem: "inventory",
		Name:      "expiring_soon_items",
		Help:      "Products expiring within the look-ahead window.",
	})

	// CSVRowsImported counts bulk-upload rows by outcome.
	CSVRowsImported = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bhandar",
			Subsystem: "csv",
			Name:      "rows_imported_total",
			Help:      "CSV bulk-upload rows processed.",
		},
		[]string{"status"}, // "ok" | "rejected"
	)

	// CacheHits / CacheMisses track summary-cache effectiveness.
	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bhandar",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total cache hits.",
		},
		[]string{"key"},
	)
	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bhandar",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total cache misses.",
		},
		[]string{"key"},
	)
)

// DefaultRegistry is the Prometheus registry used by the app.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		StoreQueryDuration,
		ProductsTotal,
		LowStockItems,
		OutOfStockItems,
		ExpiringSoonItems,
		CSVRowsImported,
		CacheHits,
		CacheMisses,
	)
}

// Register adds a prometheus.Collector to the app registry.
func Register(c prometheus.Collector) error {
	return DefaultRegistry.Register(c)
}

// MustRegister panics if registration fails.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

// responseRecorder wraps http.ResponseWriter to capture the status code.
type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records duration, total and in-flight metrics for every request.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			status := strconv.Itoa(rr.status)
			RequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
			RequestTotal.WithLabelValues(r.Method, path, status).Inc()
		})
	}
}

// Handler exposes the Prometheus metrics page. Mount on GET /metrics.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}

// ObserveStoreQuery records a store query duration with a simple timer:
//
//	defer metrics.ObserveStoreQuery("find", time.Now())
func ObserveStoreQuery(operation string, start time.Time) {
	StoreQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// SetInventoryGauges publishes a summary snapshot.
func SetInventoryGauges(total, lowStock, outOfStock, expiringSoon int) {
	ProductsTotal.Set(float64(total))
	LowStockItems.Set(float64(lowStock))
	OutOfStockItems.Set(float64(outOfStock))
	ExpiringSoonItems.Set(float64(expiringSoon))
}
