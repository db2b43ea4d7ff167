package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// challenge simulation service.
type Metrics struct {
	ChallengesRun        *prometheus.CounterVec // labels: challenge_type={historical_verification,near_term_forecast}
	PredictionsGenerated prometheus.Counter
	VerdictsGenerated    prometheus.Counter
	DemoRuns             *prometheus.CounterVec // labels: scenario
	TempoCycles          prometheus.Counter
	TaoDistributed       prometheus.Counter

	FinalScores       prometheus.Histogram
	ChallengeDuration prometheus.Histogram

	// Registry population gauges, refreshed after seed and registration.
	RegisteredMiners     prometheus.Gauge
	RegisteredValidators prometheus.Gauge
}

// NewMetrics creates and registers all simulation metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.ChallengesRun,
		m.PredictionsGenerated,
		m.VerdictsGenerated,
		m.DemoRuns,
		m.TempoCycles,
		m.TaoDistributed,
		m.FinalScores,
		m.ChallengeDuration,
		m.RegisteredMiners,
		m.RegisteredValidators,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ChallengesRun: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_oracle",
			Name:      "challenges_run_total",
			Help:      "Total challenge cycles executed by challenge type.",
		}, []string{"challenge_type"}),
		PredictionsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_oracle",
			Name:      "predictions_generated_total",
			Help:      "Total miner predictions synthesized.",
		}),
		VerdictsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_oracle",
			Name:      "verdicts_generated_total",
			Help:      "Total validator verdicts synthesized.",
		}),
		DemoRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_oracle",
			Name:      "demo_runs_total",
			Help:      "Demo scenario executions by scenario key.",
		}, []string{"scenario"}),
		TempoCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_oracle",
			Name:      "tempo_cycles_total",
			Help:      "Total tempo cycles completed.",
		}),
		TaoDistributed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_oracle",
			Name:      "tao_distributed_total",
			Help:      "Cumulative TAO allocated to miners across challenges.",
		}),
		FinalScores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_oracle",
			Name:      "final_score",
			Help:      "Distribution of final weighted miner scores.",
			Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 0.95, 1.0},
		}),
		ChallengeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_oracle",
			Name:      "challenge_duration_seconds",
			Help:      "Wall time of a complete challenge dispatch-score-reward cycle.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		RegisteredMiners: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate_oracle",
			Name:      "registered_miners",
			Help:      "Number of miners currently registered on the subnet.",
		}),
		RegisteredValidators: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate_oracle",
			Name:      "registered_validators",
			Help:      "Number of validators currently registered on the subnet.",
		}),
	}
}
