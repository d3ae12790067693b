package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	summariesServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "qbrdash",
		Name:      "summaries_served_total",
		Help:      "Summaries served, by mode and presentation variant.",
	}, []string{"mode", "variant"})

	summarizeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "qbrdash",
		Name:      "summarize_duration_seconds",
		Help:      "Time spent aggregating a selection.",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
	}, []string{"mode"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "qbrdash",
		Name:      "summary_cache_lookups_total",
		Help:      "Summary cache lookups by result (hit, miss, error).",
	}, []string{"result"})
)
