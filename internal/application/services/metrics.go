package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_fetch_failures_total",
			Help: "Total number of failed wallet data fetches",
		},
		[]string{"kind"},
	)

	fetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wallet_fetch_duration_seconds",
			Help:    "Duration of a full wallet fetch cycle",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	trackerCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_tracker_cycles_total",
			Help: "Total number of wallet tracker fetch cycles by outcome",
		},
		[]string{"outcome"},
	)

	sessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "console_sessions_active",
			Help: "Number of live console sessions",
		},
	)
)
