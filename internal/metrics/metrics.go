// Package metrics exposes Prometheus collectors for lookups, generation runs,
// the pending-context slot and the HTTP API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "streamfinder"

// Registry is the registry served on /metrics.
var Registry = prometheus.NewRegistry()

// LookupsTotal counts identifier lookups by outcome (found|not_found|failed).
var LookupsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookups_total",
		Help:      "Total number of player identifier lookups",
	},
	[]string{"outcome"},
)

// GenerationsTotal counts generation runs by result.
// result: ok|invalid_base_config|empty_input|no_players_resolved|error
var GenerationsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generations_total",
		Help:      "Total number of config generation runs",
	},
	[]string{"result"},
)

// GenerationDuration records wall time of a generation run, lookups included.
var GenerationDuration = promauto.With(Registry).NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "generation_duration_seconds",
		Help:      "Config generation latency in seconds",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	},
)

// PlayersAdded records how many priority items a successful run prepended.
var PlayersAdded = promauto.With(Registry).NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "players_added",
		Help:      "Number of players added per successful generation",
		Buckets:   []float64{1, 2, 4, 6, 8, 12, 16, 24},
	},
)

// ContextEvents counts pending-context slot transitions.
// event: set|taken|missing|cleared|expired
var ContextEvents = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "context_events_total",
		Help:      "Pending base config slot transitions",
	},
	[]string{"event"},
)

// Init registers the Go runtime and process collectors.
func Init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}
