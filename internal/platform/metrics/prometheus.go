package metrics

import (
	"net/http"

	"github.com/propview/estate-service/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsManager holds the service's custom Prometheus metrics.
type MetricsManager struct {
	Registry               *prometheus.Registry
	ListingsPublishedTotal prometheus.Counter
	ListingDeletesTotal    prometheus.Counter
	FavouriteTogglesTotal  prometheus.Counter
	APIErrorsTotal         *prometheus.CounterVec
	APILatency             *prometheus.HistogramVec
}

// NewMetricsManager initializes and registers the custom metrics on a
// dedicated registry.
func NewMetricsManager(serviceName string) *MetricsManager {
	registry := prometheus.NewRegistry()

	listingsPublishedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listings_published_total",
		Help:      "Total number of listings published from drafts.",
	})
	listingDeletesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listing_deletes_total",
		Help:      "Total number of listings deleted by their owners.",
	})
	favouriteTogglesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "favourite_toggles_total",
		Help:      "Total number of favourite toggle operations.",
	})
	apiErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "api_errors_total",
		Help:      "Total number of API errors by route.",
	}, []string{"route", "error_type"})
	apiLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "api_request_latency_seconds",
		Help:      "Latency of API requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	registry.MustRegister(
		listingsPublishedTotal,
		listingDeletesTotal,
		favouriteTogglesTotal,
		apiErrorsTotal,
		apiLatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:               registry,
		ListingsPublishedTotal: listingsPublishedTotal,
		ListingDeletesTotal:    listingDeletesTotal,
		FavouriteTogglesTotal:  favouriteTogglesTotal,
		APIErrorsTotal:         apiErrorsTotal,
		APILatency:             apiLatency,
	}
}

// StartMetricsServer exposes the registry on its own HTTP port. Blocks, so
// run it in a goroutine.
func StartMetricsServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	appLogger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}
	return server.ListenAndServe()
}
