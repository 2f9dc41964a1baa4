package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"kinship-engine/internal/model"
)

var (
	buildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kinship",
		Name:      "tree_builds_total",
		Help:      "Household trees built, by builder path and outcome.",
	}, []string{"path", "outcome"})

	buildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "kinship",
		Name:      "tree_build_duration_seconds",
		Help:      "Time spent building one household tree.",
		Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .05},
	}, []string{"path"})

	virtualAncestorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "kinship",
		Name:      "virtual_ancestors_total",
		Help:      "Placeholder ancestors synthesized for unresolved relatives.",
	})

	messagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kinship",
		Name:      "build_messages_total",
		Help:      "Non-fatal build messages, by code.",
	}, []string{"code"})

	batchInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "kinship",
		Name:      "batch_households_in_flight",
		Help:      "Households currently being built by batch workers.",
	})
)

func observe(path, outcome string, elapsed time.Duration, stats model.TreeStats, msgs []model.Message) {
	buildsTotal.WithLabelValues(path, outcome).Inc()
	buildDuration.WithLabelValues(path).Observe(elapsed.Seconds())
	virtualAncestorsTotal.Add(float64(stats.Virtual))
	for _, m := range msgs {
		messagesTotal.WithLabelValues(m.Code).Inc()
	}
}
