package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Cache-level Prometheus metrics. Every metric carries a "cache" label equal
// to the Group set in Options, so multiple cache instances stay
// distinguishable in dashboards.
var (
	HitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits.",
		},
		[]string{"cache"},
	)

	MissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses.",
		},
		[]string{"cache"},
	)
)

func init() {
	prometheus.MustRegister(
		HitsTotal,
		MissesTotal,
	)
}

// entriesCollector lazily reports the current entry count for one cache group
// by calling lenFunc at scrape time.
type entriesCollector struct {
	desc    *prometheus.Desc
	lenFunc func() int
}

func (c *entriesCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *entriesCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.lenFunc()))
}

var (
	collectorsMu sync.Mutex
	collectors   = make(map[string]*entriesCollector)

	// collectorReg is the registerer used for entries collectors. A variable
	// so tests can substitute an isolated registry.
	collectorReg prometheus.Registerer = prometheus.DefaultRegisterer
)

func registerEntriesCollector(group string, lenFunc func() int) {
	collectorsMu.Lock()
	defer collectorsMu.Unlock()

	if _, exists := collectors[group]; exists {
		return
	}

	c := &entriesCollector{
		desc: prometheus.NewDesc(
			"cache_entries",
			"Current number of entries in the cache.",
			nil,
			prometheus.Labels{"cache": group},
		),
		lenFunc: lenFunc,
	}

	if err := collectorReg.Register(c); err != nil {
		return
	}
	collectors[group] = c
}

func unregisterEntriesCollector(group string) {
	collectorsMu.Lock()
	defer collectorsMu.Unlock()

	c, exists := collectors[group]
	if !exists {
		return
	}
	collectorReg.Unregister(c)
	delete(collectors, group)
}
