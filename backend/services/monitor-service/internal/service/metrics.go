package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	readingsIngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "power_readings_ingested_total",
			Help: "Readings accepted into the in-memory history, by ingestion source.",
		},
		[]string{"source"},
	)
	lastPowerKW = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "power_last_reading_kw",
			Help: "Power of the most recently ingested reading in kW.",
		},
	)
	costCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_cost_calculations_total",
			Help: "Cost calculations by outcome.",
		},
		[]string{"outcome"},
	)
	billedEnergyKWh = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "billing_window_energy_kwh",
			Help:    "Energy integrated per cost calculation window.",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		},
	)
	pricingUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_schedule_updates_total",
			Help: "Pricing schedule update attempts by outcome.",
		},
		[]string{"outcome"},
	)
)
