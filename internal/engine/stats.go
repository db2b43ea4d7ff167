package engine

import (
	"github.com/montanaflynn/stats"

	"github.com/skyquorum/climate-oracle/internal/domain"
)

// ComparisonAnalysis summarizes a batch of predictions for the same challenge:
// central values per variable, the temperature disagreement spread, and the
// stand-out miners.
type ComparisonAnalysis struct {
	AvgTemp              float64 `json:"avg_temp"`
	AvgPrecip            float64 `json:"avg_precip"`
	AvgRisk              float64 `json:"avg_risk"`
	TempSpread           float64 `json:"temp_spread"`
	HighestConfidenceUID int     `json:"highest_confidence_miner"`
	FastestUID           int     `json:"fastest_miner"`
}

// AnalyzeComparisons computes aggregate statistics over a prediction batch.
// Returns the zero analysis for an empty batch.
func AnalyzeComparisons(preds []domain.MinerPrediction) ComparisonAnalysis {
	if len(preds) == 0 {
		return ComparisonAnalysis{}
	}

	temps := make([]float64, len(preds))
	precips := make([]float64, len(preds))
	risks := make([]float64, len(preds))
	for i, p := range preds {
		temps[i] = p.PredictedTempCelsius
		precips[i] = p.PredictedPrecipMM
		risks[i] = p.RiskIndex
	}

	// stats errors only on empty input, which is excluded above.
	avgTemp, _ := stats.Mean(temps)
	avgPrecip, _ := stats.Mean(precips)
	avgRisk, _ := stats.Mean(risks)
	maxTemp, _ := stats.Max(temps)
	minTemp, _ := stats.Min(temps)

	a := ComparisonAnalysis{
		AvgTemp:    domain.Round(avgTemp, 1),
		AvgPrecip:  domain.Round(avgPrecip, 1),
		AvgRisk:    domain.Round(avgRisk, 2),
		TempSpread: domain.Round(maxTemp-minTemp, 1),
	}

	best, fastest := 0, 0
	for i, p := range preds {
		if p.Confidence > preds[best].Confidence {
			best = i
		}
		if p.ResponseTimeMS < preds[fastest].ResponseTimeMS {
			fastest = i
		}
	}
	a.HighestConfidenceUID = preds[best].MinerUID
	a.FastestUID = preds[fastest].MinerUID
	return a
}
