package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Aggregation and pipeline metrics
var (
	ProviderCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_calls_total",
			Help: "Total number of provider operations, by outcome.",
		},
		[]string{"provider", "operation", "status"},
	)

	ProviderItemsScrapedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_items_scraped_total",
			Help: "Total number of items returned by providers.",
		},
		[]string{"provider"},
	)

	CatalogLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_lookups_total",
			Help: "Total number of catalog lookups, by query kind and outcome.",
		},
		[]string{"kind", "status"},
	)

	PipelineItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_items_total",
			Help: "Total number of items processed by the content pipeline, by final match status.",
		},
		[]string{"status"},
	)

	PipelineBatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_batch_duration_seconds",
			Help:    "Wall-clock duration of pipeline batch runs.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
	)
)

func init() {
	prometheus.MustRegister(
		ProviderCallsTotal,
		ProviderItemsScrapedTotal,
		CatalogLookupsTotal,
		PipelineItemsTotal,
		PipelineBatchDuration,
	)
}
