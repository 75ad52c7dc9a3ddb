package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "omdb_upstream_requests_total",
		Help: "Total number of requests sent to the catalog API",
	}, []string{"endpoint", "outcome"})

	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "omdb_upstream_request_duration_seconds",
		Help:    "Duration of catalog API requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	StaleResponsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "omdb_stale_responses_total",
		Help: "Responses dropped because a newer request superseded them",
	}, []string{"session"})

	FavoritesStoreErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "omdb_favorites_store_errors_total",
		Help: "Favorites persistence failures that were recovered locally",
	}, []string{"op"})

	FavoritesCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "omdb_favorites",
		Help: "Number of records in the favorites list",
	})
)
