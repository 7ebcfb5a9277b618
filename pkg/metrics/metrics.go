package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "f1ac"

const (
	OutcomeSuccess   = "success"
	OutcomeEmptyJoin = "empty_join"
	OutcomeError     = "error"
)

var (
	Comparisons = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comparisons_total",
		Help:      "Lap time comparisons computed, by outcome.",
	}, []string{"outcome"})

	ComparedCircuits = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "compared_circuits",
		Help:      "Circuits in the last comparison.",
	})

	TableLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "table_loads_total",
		Help:      "Tables loaded from the data source, by table and result.",
	}, []string{"table", "result"})

	ImageFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "circuit_image_failures_total",
		Help:      "Circuit image fetches that were not rendered.",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
