package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "siteline_analyses_total",
			Help: "Total number of site analyses, by outcome",
		},
		[]string{"outcome"},
	)

	analysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "siteline_analysis_duration_seconds",
			Help: "End to end duration of a site analysis",
		},
	)

	scoresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "siteline_scores_total",
			Help: "Total number of single-business scoring requests",
		},
		[]string{"business"},
	)

	simulationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "siteline_simulations_total",
			Help: "Total number of Monte Carlo simulation runs",
		},
	)
)
