package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyquorum/climate-oracle/internal/domain"
)

func perfectPrediction(gt domain.GroundTruth) domain.MinerPrediction {
	return domain.MinerPrediction{
		MinerHotkey:          "5TestHotkeyScoring",
		PredictedTempCelsius: gt.ActualTempCelsius,
		PredictedPrecipMM:    gt.ActualPrecipMM,
		RiskIndex:            gt.ActualRiskIndex,
		ResponseTimeMS:       0,
	}
}

func TestScorePredictionPerfectAccuracy(t *testing.T) {
	gt := domain.GroundTruth{ActualTempCelsius: 29.4, ActualPrecipMM: 185.0, ActualRiskIndex: 0.55}
	b := ScorePrediction(perfectPrediction(gt), gt)

	assert.Equal(t, 1.0, b.TempAccuracy)
	assert.Equal(t, 1.0, b.PrecipAccuracy)
	assert.Equal(t, 1.0, b.RiskAccuracy)
	assert.Equal(t, 1.0, b.LatencyScore)
	assert.GreaterOrEqual(t, b.Consistency, 0.65)
	assert.LessOrEqual(t, b.Consistency, 0.95)
	assert.False(t, b.ExtremeEventBonus)
	assert.Equal(t, domain.Round(weightedSum(b), 4), b.FinalScore)
}

func TestScorePredictionAccuracyDecay(t *testing.T) {
	gt := domain.GroundTruth{ActualTempCelsius: 30.0, ActualPrecipMM: 100.0, ActualRiskIndex: 0.5}

	p := perfectPrediction(gt)
	p.PredictedTempCelsius = 32.5 // 2.5°C off: half accuracy
	b := ScorePrediction(p, gt)
	assert.Equal(t, 0.5, b.TempAccuracy)

	p.PredictedTempCelsius = 40.0 // beyond the 5°C window: zero
	b = ScorePrediction(p, gt)
	assert.Equal(t, 0.0, b.TempAccuracy)

	p = perfectPrediction(gt)
	p.PredictedPrecipMM = 200.0 // 100mm off over a 200mm window
	b = ScorePrediction(p, gt)
	assert.Equal(t, 0.5, b.PrecipAccuracy)

	p = perfectPrediction(gt)
	p.RiskIndex = 0.75 // 0.25 off over a 0.5 window
	b = ScorePrediction(p, gt)
	assert.Equal(t, 0.5, b.RiskAccuracy)
}

func TestScorePredictionLatencyDecay(t *testing.T) {
	gt := domain.GroundTruth{ActualTempCelsius: 30.0, ActualPrecipMM: 100.0, ActualRiskIndex: 0.5}

	p := perfectPrediction(gt)
	p.ResponseTimeMS = 5000
	b := ScorePrediction(p, gt)
	assert.Equal(t, 0.5, b.LatencyScore)

	p.ResponseTimeMS = 20000
	b = ScorePrediction(p, gt)
	assert.Equal(t, 0.0, b.LatencyScore)
}

func TestScorePredictionExtremeEventBonus(t *testing.T) {
	gt := domain.GroundTruth{ActualTempCelsius: 30.0, ActualPrecipMM: 100.0, ActualRiskIndex: 0.7}

	p := perfectPrediction(gt)
	p.RiskIndex = 0.7 // above the 0.6 threshold

	plain := ScorePrediction(p, gt)
	assert.False(t, plain.ExtremeEventBonus)

	gt.HadExtremeEvent = true
	boosted := ScorePrediction(p, gt)
	assert.True(t, boosted.ExtremeEventBonus)

	// Components are identical; only the bonus multiplier differs, capped at 1.
	assert.Equal(t, plain.TempAccuracy, boosted.TempAccuracy)
	assert.Equal(t, plain.Consistency, boosted.Consistency)
	want := domain.Round(math.Min(1.0, weightedSum(boosted)*1.5), 4)
	assert.Equal(t, want, boosted.FinalScore)
	assert.GreaterOrEqual(t, boosted.FinalScore, plain.FinalScore)
}

func TestScorePredictionNoBonusBelowRiskThreshold(t *testing.T) {
	gt := domain.GroundTruth{
		ActualTempCelsius: 30.0,
		ActualPrecipMM:    100.0,
		ActualRiskIndex:   0.5,
		HadExtremeEvent:   true,
	}

	p := perfectPrediction(gt)
	p.RiskIndex = 0.5 // extreme event happened but the miner did not call it
	b := ScorePrediction(p, gt)
	assert.False(t, b.ExtremeEventBonus)
}

func TestScorePredictionFinalScoreClamped(t *testing.T) {
	gt := domain.GroundTruth{
		ActualTempCelsius: 30.0,
		ActualPrecipMM:    100.0,
		ActualRiskIndex:   0.9,
		HadExtremeEvent:   true,
	}
	p := perfectPrediction(gt)
	p.RiskIndex = 0.9

	b := ScorePrediction(p, gt)
	require.True(t, b.ExtremeEventBonus)
	assert.LessOrEqual(t, b.FinalScore, 1.0)
}

func TestScorePredictionConsistencyStablePerHotkey(t *testing.T) {
	gt := domain.GroundTruth{ActualTempCelsius: 30.0, ActualPrecipMM: 100.0, ActualRiskIndex: 0.5}

	a := ScorePrediction(perfectPrediction(gt), gt)
	b := ScorePrediction(perfectPrediction(gt), gt)
	assert.Equal(t, a.Consistency, b.Consistency)

	other := perfectPrediction(gt)
	other.MinerHotkey = "5DifferentHotkey"
	c := ScorePrediction(other, gt)
	assert.NotEqual(t, a.Consistency, c.Consistency)
}

func TestEstimateScoreRangesAndDeterminism(t *testing.T) {
	first := EstimateScore(domain.NewRand(555))
	second := EstimateScore(domain.NewRand(555))
	assert.Equal(t, first, second)

	for seed := uint64(1); seed <= 50; seed++ {
		b := EstimateScore(domain.NewRand(seed))

		assert.GreaterOrEqual(t, b.TempAccuracy, 0.5)
		assert.LessOrEqual(t, b.TempAccuracy, 0.95)
		assert.GreaterOrEqual(t, b.PrecipAccuracy, 0.3)
		assert.LessOrEqual(t, b.PrecipAccuracy, 0.9)
		assert.GreaterOrEqual(t, b.RiskAccuracy, 0.4)
		assert.LessOrEqual(t, b.RiskAccuracy, 0.85)
		assert.GreaterOrEqual(t, b.LatencyScore, 0.7)
		assert.LessOrEqual(t, b.LatencyScore, 0.99)
		assert.GreaterOrEqual(t, b.Consistency, 0.6)
		assert.LessOrEqual(t, b.Consistency, 0.92)
		assert.False(t, b.ExtremeEventBonus)
		assert.Equal(t, domain.Round(weightedSum(b), 4), b.FinalScore)
	}
}
