package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collectors holds the prometheus vectors snapvault updates while
// reading a repository. A nil *Collectors is never passed around;
// callers that don't want instrumentation simply don't construct one,
// and pkg/store.Instrument/NewCache treat a nil recorder as a no-op.
type Collectors struct {
	storeFetchTotal      *prometheus.CounterVec
	storeFetchBytesTotal *prometheus.CounterVec
	cacheHitTotal        prometheus.Counter
	cacheMissTotal       prometheus.Counter
	packObjectsLoaded    prometheus.Counter
}

// NewCollectors builds and registers the collectors against reg. Pass
// prometheus.DefaultRegisterer from the CLI entry point.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		storeFetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "snapvault_store_fetch_total",
			Help: "Total number of Store.Get calls by driver.",
		}, []string{"driver"}),
		storeFetchBytesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "snapvault_store_fetch_bytes_total",
			Help: "Total bytes returned by Store.Get calls by driver.",
		}, []string{"driver"}),
		cacheHitTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snapvault_cache_hit_total",
			Help: "Total number of local disk cache hits.",
		}),
		cacheMissTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snapvault_cache_miss_total",
			Help: "Total number of local disk cache misses.",
		}),
		packObjectsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snapvault_pack_objects_loaded_total",
			Help: "Total number of objects loaded out of pack bodies.",
		}),
	}

	reg.MustRegister(
		c.storeFetchTotal,
		c.storeFetchBytesTotal,
		c.cacheHitTotal,
		c.cacheMissTotal,
		c.packObjectsLoaded,
	)
	return c
}

// RecordFetch implements pkg/store.FetchRecorder.
func (c *Collectors) RecordFetch(driver string, bytes int) {
	c.storeFetchTotal.WithLabelValues(driver).Inc()
	c.storeFetchBytesTotal.WithLabelValues(driver).Add(float64(bytes))
}

// RecordCacheHit is passed as pkg/store.Cache's onHit callback.
func (c *Collectors) RecordCacheHit() {
	c.cacheHitTotal.Inc()
}

// RecordCacheMiss is passed as pkg/store.Cache's onMiss callback.
func (c *Collectors) RecordCacheMiss() {
	c.cacheMissTotal.Inc()
}

// RecordPackObjectLoaded is called once per object pkg/packset.Load
// resolves out of a pack body.
func (c *Collectors) RecordPackObjectLoaded() {
	c.packObjectsLoaded.Inc()
}

// Handler returns the Prometheus HTTP handler for a --metrics-addr
// server to mount.
func Handler() http.Handler {
	return promhttp.Handler()
}
