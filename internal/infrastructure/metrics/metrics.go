package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the settings core.
type Metrics struct {
	VersionsCreated    prometheus.Counter
	Publishes          prometheus.Counter
	PublishRejections  prometheus.Counter
	Rollbacks          prometheus.Counter
	Imports            prometheus.Counter
	OperationDuration  *prometheus.HistogramVec
	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
}

// New registers and returns the settings metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		VersionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "settings_versions_created_total",
			Help: "Number of settings versions created (drafts and imports).",
		}),
		Publishes: factory.NewCounter(prometheus.CounterOpts{
			Name: "settings_publishes_total",
			Help: "Number of successful settings publishes, rollbacks included.",
		}),
		PublishRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "settings_publish_rejections_total",
			Help: "Number of publishes blocked by error-severity validation issues.",
		}),
		Rollbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "settings_rollbacks_total",
			Help: "Number of rollback operations.",
		}),
		Imports: factory.NewCounter(prometheus.CounterOpts{
			Name: "settings_imports_total",
			Help: "Number of imported settings documents.",
		}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "settings_operation_duration_seconds",
			Help:    "Duration of settings service operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "settings_cache_hits_total",
			Help: "Published-document cache hits.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "settings_cache_misses_total",
			Help: "Published-document cache misses.",
		}),
	}
}
