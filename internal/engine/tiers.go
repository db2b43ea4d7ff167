package engine

import "github.com/skyquorum/climate-oracle/internal/domain"

// tierParams bundles every distribution parameter that varies by miner tier.
// Keeping them in one table avoids tier branching scattered across call sites.
type tierParams struct {
	TempSigma   float64 // °C noise
	PrecipSigma float64 // mm noise
	RiskSigma   float64 // risk index noise

	ScoreMin, ScoreMax     float64 // demo quality score range
	LatencyMinS, LatencyMaxS float64 // demo response time, seconds

	DemoConfMin, DemoConfMax float64 // demo confidence range
	ConfMin, ConfMax         float64 // single-prediction confidence range

	LatencyMinMS, LatencyMaxMS float64 // single-prediction latency, milliseconds
	SourcesMin, SourcesMax     int     // simulated data source count
}

var tierTable = map[domain.Tier]tierParams{
	domain.TierHigh: {
		TempSigma: 0.5, PrecipSigma: 12.0, RiskSigma: 0.04,
		ScoreMin: 0.82, ScoreMax: 0.97,
		LatencyMinS: 0.3, LatencyMaxS: 1.2,
		DemoConfMin: 0.6, DemoConfMax: 0.95,
		ConfMin: 0.82, ConfMax: 0.96,
		LatencyMinMS: 200, LatencyMaxMS: 800,
		SourcesMin: 8, SourcesMax: 15,
	},
	domain.TierMid: {
		TempSigma: 1.2, PrecipSigma: 25.0, RiskSigma: 0.08,
		ScoreMin: 0.62, ScoreMax: 0.82,
		LatencyMinS: 0.8, LatencyMaxS: 2.2,
		DemoConfMin: 0.6, DemoConfMax: 0.95,
		ConfMin: 0.65, ConfMax: 0.82,
		LatencyMinMS: 500, LatencyMaxMS: 2000,
		SourcesMin: 4, SourcesMax: 9,
	},
	domain.TierEntry: {
		TempSigma: 2.5, PrecipSigma: 45.0, RiskSigma: 0.15,
		ScoreMin: 0.40, ScoreMax: 0.62,
		LatencyMinS: 1.5, LatencyMaxS: 3.5,
		DemoConfMin: 0.4, DemoConfMax: 0.65,
		ConfMin: 0.40, ConfMax: 0.65,
		LatencyMinMS: 1500, LatencyMaxMS: 4000,
		SourcesMin: 1, SourcesMax: 5,
	},
}

// topMinerParams override the nominal tier for the miner at pool position 0,
// guaranteeing a visible top performer in every demo run.
var topMinerParams = tierParams{
	TempSigma: 0.2, PrecipSigma: 5.0, RiskSigma: 0.02,
	ScoreMin: 0.93, ScoreMax: 0.99,
	LatencyMinS: 0.2, LatencyMaxS: 0.6,
	DemoConfMin: 0.6, DemoConfMax: 0.95,
	ConfMin: 0.82, ConfMax: 0.96,
	LatencyMinMS: 200, LatencyMaxMS: 800,
	SourcesMin: 8, SourcesMax: 15,
}

// paramsFor resolves distribution parameters for a miner by tier, defaulting
// unknown tiers to entry-level quality.
func paramsFor(tier domain.Tier) tierParams {
	if p, ok := tierTable[tier]; ok {
		return p
	}
	return tierTable[domain.TierEntry]
}
