// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Registering the same collector twice panics.
	once sync.Once

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route pattern and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency distributions.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPInflightRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	SharedCollectionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shared_collections_created_total",
			Help: "Shared collections successfully created.",
		},
	)

	// SlugCollisions counts inserts rejected by the slug unique constraint.
	SlugCollisions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shared_collection_slug_collisions_total",
			Help: "Slug collisions encountered while creating shared collections.",
		},
	)

	// SharedCollectionResolutions is labelled by outcome:
	// ok, not_found, expired, invalid, error.
	SharedCollectionResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shared_collection_resolutions_total",
			Help: "Shared collection resolve attempts by outcome.",
		},
		[]string{"outcome"},
	)

	// EnrichmentDegraded counts secondary lookups that failed and were skipped.
	EnrichmentDegraded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_enrichment_degraded_total",
			Help: "Vendor or media lookups that failed during product enrichment.",
		},
		[]string{"source"},
	)

	CacheOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shared_collection_cache_operations_total",
			Help: "Shared collection cache lookups by result: hit, miss, error.",
		},
		[]string{"result"},
	)
)

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			HTTPInflightRequests,
			SharedCollectionsCreated,
			SlugCollisions,
			SharedCollectionResolutions,
			EnrichmentDegraded,
			CacheOperations,
		)
	})
}
