package engine

import (
	"math"
	"math/rand/v2"

	"github.com/skyquorum/climate-oracle/internal/domain"
)

// Scoring weights. Accuracy components dominate; latency and consistency are
// small stabilizers.
const (
	weightTemp        = 0.40
	weightPrecip      = 0.25
	weightRisk        = 0.15
	weightLatency     = 0.10
	weightConsistency = 0.10

	// extremeEventMultiplier rewards a correctly anticipated extreme event.
	extremeEventMultiplier = 1.5

	// extremeRiskThreshold is the predicted risk above which a miner is
	// considered to have called an extreme event.
	extremeRiskThreshold = 0.6
)

// ScoringWeights reports the component weights of the final score, keyed by
// the breakdown's JSON field names.
func ScoringWeights() map[string]float64 {
	return map[string]float64{
		"temp_accuracy":   weightTemp,
		"precip_accuracy": weightPrecip,
		"risk_accuracy":   weightRisk,
		"latency_score":   weightLatency,
		"consistency":     weightConsistency,
	}
}

// ScorePrediction computes the weighted accuracy of one prediction against a
// known ground truth. Component accuracies decay linearly with absolute error
// (5°C, 200mm, and 0.5 risk for a zero score), latency decays over 10s, and
// consistency simulates an accuracy EMA over past rounds with a draw seeded by
// the miner's hotkey so it is stable across challenges.
func ScorePrediction(p domain.MinerPrediction, gt domain.GroundTruth) domain.ScoreBreakdown {
	b := domain.ScoreBreakdown{
		TempAccuracy:   domain.Round(max(0, 1.0-math.Abs(p.PredictedTempCelsius-gt.ActualTempCelsius)/5.0), 4),
		PrecipAccuracy: domain.Round(max(0, 1.0-math.Abs(p.PredictedPrecipMM-gt.ActualPrecipMM)/200.0), 4),
		RiskAccuracy:   domain.Round(max(0, 1.0-math.Abs(p.RiskIndex-gt.ActualRiskIndex)/0.5), 4),
		LatencyScore:   domain.Round(max(0, 1.0-p.ResponseTimeMS/10000), 4),
		Consistency:    consistencyFor(p.MinerHotkey),
	}
	b.ExtremeEventBonus = p.RiskIndex > extremeRiskThreshold && gt.HadExtremeEvent

	final := weightedSum(b)
	if b.ExtremeEventBonus {
		final *= extremeEventMultiplier
	}
	b.FinalScore = domain.Round(math.Min(1.0, final), 4)
	return b
}

// EstimateScore is the fallback for near-term challenges with no ground truth:
// each component is drawn from a fixed uniform range on the provided
// generator, with no extreme-event bonus path.
func EstimateScore(r *rand.Rand) domain.ScoreBreakdown {
	b := domain.ScoreBreakdown{
		TempAccuracy:   domain.Round(uniform(r, 0.5, 0.95), 4),
		PrecipAccuracy: domain.Round(uniform(r, 0.3, 0.9), 4),
		RiskAccuracy:   domain.Round(uniform(r, 0.4, 0.85), 4),
		LatencyScore:   domain.Round(uniform(r, 0.7, 0.99), 4),
		Consistency:    domain.Round(uniform(r, 0.6, 0.92), 4),
	}
	b.FinalScore = domain.Round(weightedSum(b), 4)
	return b
}

func weightedSum(b domain.ScoreBreakdown) float64 {
	return weightTemp*b.TempAccuracy +
		weightPrecip*b.PrecipAccuracy +
		weightRisk*b.RiskAccuracy +
		weightLatency*b.LatencyScore +
		weightConsistency*b.Consistency
}

// consistencyFor draws the simulated historical consistency for a miner,
// uniform in [0.65, 0.95], seeded by a stable hash of its hotkey.
func consistencyFor(hotkey string) float64 {
	r := domain.NewRand(domain.HashSeed(hotkey))
	return domain.Round(uniform(r, 0.65, 0.95), 4)
}
