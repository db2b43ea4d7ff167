package engine

import (
	"sort"

	"github.com/skyquorum/climate-oracle/internal/catalog"
	"github.com/skyquorum/climate-oracle/internal/domain"
)

// reference holds the "actual" climate values predictions are perturbed
// around: ground truth when known, otherwise baseline adjusted by the
// season and ENSO regime modifiers.
type reference struct {
	Temp   float64
	Precip float64
	Risk   float64
}

// resolveReference composes baseline, season modifier, and ENSO modifier for
// the challenge conditions, preferring ground-truth values when present.
func (e *Engine) resolveReference(syn domain.Synapse, gt *domain.GroundTruth) (catalog.Baseline, reference) {
	baseline := e.cat.BaselineFor(syn.Location)
	season := e.cat.SeasonFor(syn.Conditions.Season)
	enso := e.cat.ENSOFor(syn.Conditions.ENSOState)

	ref := reference{
		Temp:   baseline.BaseTemp + season.TempDelta,
		Precip: baseline.BasePrecipMM * season.PrecipMult * enso.PrecipMult,
		Risk:   domain.Clamp(baseline.RiskBaseline+season.RiskIncrease+enso.RiskIncrease, 0, 1),
	}
	if gt != nil {
		ref.Temp = gt.ActualTempCelsius
		ref.Precip = gt.ActualPrecipMM
		ref.Risk = gt.ActualRiskIndex
	}
	return baseline, ref
}

// GeneratePredictions produces one response per simulated miner for a demo
// challenge. The first min(count, pool size) miners of the task type's
// specialist pool respond; selection is positional, never random. Each miner
// draws from its own generator (base seed + position*7), in a fixed order:
// temperature, precipitation, and risk noise, then quality score, response
// time, humidity, wind, and confidence. Results are sorted by descending
// score with dense ranks 1..N; ties keep generation order.
func (e *Engine) GeneratePredictions(task domain.TaskType, syn domain.Synapse, gt *domain.GroundTruth, count int) []domain.MinerResponse {
	pool := e.cat.PoolFor(task)
	if count > len(pool.Miners) {
		count = len(pool.Miners)
	}

	baseline, ref := e.resolveReference(syn, gt)
	baseSeed := domain.ChallengeSeed(syn)

	responses := make([]domain.MinerResponse, 0, count)
	for i := 0; i < count; i++ {
		spec := pool.Miners[i]
		r := domain.NewRand(domain.MinerSeed(baseSeed, i))

		params := paramsFor(spec.Tier)
		if i == 0 {
			params = topMinerParams
		}

		tempErr := gauss(r, params.TempSigma)
		precipErr := gauss(r, params.PrecipSigma)
		riskErr := gauss(r, params.RiskSigma)
		score := domain.Round(uniform(r, params.ScoreMin, params.ScoreMax), 4)
		responseTime := domain.Round(uniform(r, params.LatencyMinS, params.LatencyMaxS), 2)

		analysis := pool.Analyses[len(pool.Analyses)-1]
		if i < len(pool.Analyses) {
			analysis = pool.Analyses[i]
		}

		responses = append(responses, domain.MinerResponse{
			UID:                  i + 1,
			Hotkey:               domain.MaskHotkey(spec.Hotkey),
			Name:                 spec.Name,
			Tier:                 spec.Tier,
			Specialty:            spec.Specialty,
			PredictedTempCelsius: domain.Round(ref.Temp+tempErr, 1),
			PredictedPrecipMM:    domain.Round(max(0, ref.Precip+precipErr), 1),
			PredictedRiskIndex:   domain.Round(domain.Clamp(ref.Risk+riskErr, 0, 1), 2),
			PredictedHumidityPct: domain.Round(domain.Clamp(baseline.BaseHumidity+gauss(r, 5), 10, 100), 1),
			PredictedWindKmh:     domain.Round(max(0, baseline.BaseWindKmh+gauss(r, 4)), 1),
			Confidence:           domain.Round(uniform(r, params.DemoConfMin, params.DemoConfMax), 2),
			Score:                score,
			ResponseTimeSec:      responseTime,
			Analysis:             analysis,
		})
	}

	sort.SliceStable(responses, func(a, b int) bool {
		return responses[a].Score > responses[b].Score
	})
	for i := range responses {
		responses[i].Rank = i + 1
	}
	return responses
}

// SimulatePrediction produces a single miner's challenge-cycle prediction for
// a synapse, with quality set by the miner's tier. The seed must already be
// derived for this miner (see domain.MinerSeed) so miners answering the same
// challenge do not share a random stream.
func (e *Engine) SimulatePrediction(syn domain.Synapse, tier domain.Tier, seed uint64) domain.MinerPrediction {
	baseline := e.cat.BaselineFor(syn.Location)
	season := e.cat.SeasonFor(syn.Conditions.Season)
	enso := e.cat.ENSOFor(syn.Conditions.ENSOState)

	r := domain.NewRand(seed)
	params := paramsFor(tier)

	noiseTemp := gauss(r, params.TempSigma)
	noisePrecip := gauss(r, params.PrecipSigma)
	confidence := domain.Round(uniform(r, params.ConfMin, params.ConfMax), 2)
	latency := domain.Round(uniform(r, params.LatencyMinMS, params.LatencyMaxMS), 0)
	dataSources := intBetween(r, params.SourcesMin, params.SourcesMax)

	predictedTemp := domain.Round(baseline.BaseTemp+season.TempDelta+noiseTemp, 1)
	predictedPrecip := domain.Round(max(0, baseline.BasePrecipMM*season.PrecipMult*enso.PrecipMult+noisePrecip), 1)
	predictedHumidity := domain.Round(domain.Clamp(baseline.BaseHumidity+gauss(r, 5), 10, 100), 1)
	predictedWind := domain.Round(max(0, baseline.BaseWindKmh+gauss(r, 4)), 1)
	riskIndex := domain.Round(domain.Clamp(baseline.RiskBaseline+season.RiskIncrease+enso.RiskIncrease+gauss(r, 0.05), 0, 1), 2)

	return domain.MinerPrediction{
		PredictedTempCelsius: predictedTemp,
		PredictedPrecipMM:    predictedPrecip,
		PredictedHumidityPct: predictedHumidity,
		PredictedWindKmh:     predictedWind,
		RiskIndex:            riskIndex,
		Confidence:           confidence,
		RiskFactors:          riskFactors(syn.Conditions, season, enso),
		ResponseTimeMS:       latency,
		DataSources:          dataSources,
	}
}

// riskFactors lists the regime contributions that materially raise risk.
func riskFactors(cond domain.Conditions, season catalog.SeasonModifier, enso catalog.ENSOModifier) []domain.RiskFactor {
	var factors []domain.RiskFactor
	if season.RiskIncrease > 0.1 {
		factors = append(factors, domain.RiskFactor{
			Factor:      titleCase(cond.Season),
			Severity:    domain.Round(season.RiskIncrease*5, 1),
			Description: "Seasonal pattern increases climate risk",
		})
	}
	if enso.RiskIncrease > 0 {
		factors = append(factors, domain.RiskFactor{
			Factor:      titleCase(cond.ENSOState),
			Severity:    domain.Round(enso.RiskIncrease*5, 1),
			Description: "ENSO state modifying regional patterns",
		})
	}
	return factors
}
