package subnet

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/skyquorum/climate-oracle/internal/domain"
	"github.com/skyquorum/climate-oracle/internal/engine"
)

var horizonsByTask = map[domain.TaskType][]int{
	domain.TaskShortTermForecast: {3, 5, 7},
	domain.TaskRiskIndex:         {3, 5},
	domain.TaskLongRangeTrend:    {30, 60, 90},
}

var challengeVariables = []string{"temperature", "precipitation", "risk_index"}

var extremeEventTypes = []string{"tropical_storm", "urban_flooding", "heatwave"}

// GenerateChallenge synthesizes a fresh challenge specification: a random
// location, regime, and horizon for the task type, with an explicit random
// seed so the challenge replays identically wherever it is dispatched.
func (o *Orchestrator) GenerateChallenge(validatorUID int, task domain.TaskType) (domain.Synapse, error) {
	if !task.Valid() {
		return domain.Synapse{}, fmt.Errorf("task %q: %w", task, ErrInvalidTask)
	}
	if _, err := o.reg.Validator(validatorUID); err != nil {
		return domain.Synapse{}, fmt.Errorf("validator %d: %w", validatorUID, err)
	}
	return o.newSynapse(task), nil
}

func (o *Orchestrator) newSynapse(task domain.TaskType) domain.Synapse {
	cat := o.eng.Catalog()
	locations := cat.Locations()
	seasons := cat.SeasonNames()
	ensoStates := cat.ENSONames()
	horizons := horizonsByTask[task]

	o.synMu.Lock()
	r := o.synRand
	location := locations[r.IntN(len(locations))]
	season := seasons[r.IntN(len(seasons))]
	enso := ensoStates[r.IntN(len(ensoStates))]
	horizon := horizons[r.IntN(len(horizons))]
	seed := int64(10_000_000 + r.IntN(90_000_000))
	o.synMu.Unlock()

	return domain.Synapse{
		TaskType:            task,
		Location:            location,
		TargetDate:          domain.Now().AddDate(0, 0, horizon).Format("2006-01-02"),
		ForecastHorizonDays: horizon,
		Variables:           challengeVariables,
		Conditions: domain.Conditions{
			Season:    season,
			ENSOState: enso,
		},
		RandomSeed: seed,
	}
}

// RunChallenge executes one full challenge cycle on behalf of a validator:
// dispatch to every active miner, score, rank, reward, and record. When syn is
// nil a fresh challenge is synthesized for the task. The challenge type is
// drawn from the challenge's own seed, so a given synapse always resolves to
// the same type and, for historical challenges, the same ground truth.
func (o *Orchestrator) RunChallenge(ctx context.Context, validatorUID int, task domain.TaskType, syn *domain.Synapse) (domain.ChallengeResult, error) {
	if !task.Valid() {
		return domain.ChallengeResult{}, fmt.Errorf("task %q: %w", task, ErrInvalidTask)
	}
	val, err := o.reg.Validator(validatorUID)
	if err != nil {
		return domain.ChallengeResult{}, fmt.Errorf("validator %d: %w", validatorUID, err)
	}

	var s domain.Synapse
	if syn != nil {
		s = *syn
		s.TaskType = task
	} else {
		s = o.newSynapse(task)
	}

	emission := o.reg.State().TotalEmissionPerTempo * minerEmissionShare
	return o.runCycle(ctx, val.UID, s, nil, emission)
}

// runCycle is the shared challenge execution path. forced pins the challenge
// type; when nil the type is drawn from the challenge seed with the
// historical/near-term split.
func (o *Orchestrator) runCycle(ctx context.Context, validatorUID int, syn domain.Synapse, forced *domain.ChallengeType, emission float64) (domain.ChallengeResult, error) {
	miners := o.reg.ActiveMiners()
	if len(miners) == 0 {
		return domain.ChallengeResult{}, ErrNoMiners
	}

	start := domain.Now()
	baseSeed := domain.ChallengeSeed(syn)
	cr := domain.NewRand(baseSeed)

	challengeType := domain.ChallengeHistorical
	if cr.Float64() >= historicalRatio {
		challengeType = domain.ChallengeNearTerm
	}
	if forced != nil {
		challengeType = *forced
	}

	var gt *domain.GroundTruth
	if challengeType == domain.ChallengeHistorical {
		truth := domain.GroundTruth{
			ActualTempCelsius: domain.Round(20+cr.Float64()*18, 1),
			ActualPrecipMM:    domain.Round(10+cr.Float64()*240, 1),
			ActualRiskIndex:   domain.Round(0.1+cr.Float64()*0.8, 2),
		}
		if cr.Float64() < 0.3 {
			truth.HadExtremeEvent = true
			truth.ExtremeEventType = extremeEventTypes[cr.IntN(len(extremeEventTypes))]
		}
		gt = &truth
	}

	predictions := make([]domain.MinerPrediction, 0, len(miners))
	scores := make([]domain.MinerScore, 0, len(miners))
	for i, m := range miners {
		pred := o.eng.SimulatePrediction(syn, m.Tier, domain.MinerSeed(baseSeed, i))
		pred.MinerUID = m.UID
		pred.MinerHotkey = m.Hotkey
		predictions = append(predictions, pred)

		var breakdown domain.ScoreBreakdown
		if gt != nil {
			breakdown = engine.ScorePrediction(pred, *gt)
		} else {
			breakdown = engine.EstimateScore(cr)
		}
		scores = append(scores, domain.MinerScore{
			MinerUID:    m.UID,
			MinerHotkey: m.Hotkey,
			Score:       breakdown,
		})
	}

	rankScores(scores)

	entries := make([]engine.RewardEntry, len(scores))
	for i, sc := range scores {
		entries[i] = engine.RewardEntry{UID: sc.MinerUID, Score: sc.Score.FinalScore}
	}
	rewards := engine.Allocate(entries, emission)

	var distributed float64
	for i := range scores {
		reward := rewards[scores[i].MinerUID]
		scores[i].TauEarned = reward
		distributed += reward
		if err := o.reg.UpdateMinerScore(scores[i].MinerUID, scores[i].Score.FinalScore, reward); err != nil {
			return domain.ChallengeResult{}, fmt.Errorf("update miner %d: %w", scores[i].MinerUID, err)
		}
		o.metrics.FinalScores.Observe(scores[i].Score.FinalScore)
	}

	state := o.reg.State()
	if err := o.reg.RecordValidatorActivity(validatorUID, 1, state.BlockHeight); err != nil {
		return domain.ChallengeResult{}, fmt.Errorf("record validator %d: %w", validatorUID, err)
	}
	o.reg.AdvanceBlock(int64(1 + cr.IntN(5)))

	result := domain.ChallengeResult{
		ChallengeID:   uuid.NewString()[:8],
		Synapse:       syn,
		ChallengeType: challengeType,
		GroundTruth:   gt,
		Predictions:   predictions,
		Scores:        scores,
		Timestamp:     domain.Now(),
		Tempo:         state.CurrentTempo,
	}
	o.reg.AddChallenge(result)

	o.metrics.ChallengesRun.WithLabelValues(string(challengeType)).Inc()
	o.metrics.PredictionsGenerated.Add(float64(len(predictions)))
	o.metrics.TaoDistributed.Add(distributed)
	o.metrics.ChallengeDuration.Observe(domain.Now().Sub(start).Seconds())

	if o.sink != nil {
		if err := o.sink.Publish(ctx, result); err != nil {
			o.logger.Warn("publish challenge result", "challenge_id", result.ChallengeID, "error", err)
		}
	}

	o.logger.Info("challenge completed",
		"challenge_id", result.ChallengeID,
		"task_type", syn.TaskType,
		"challenge_type", challengeType,
		"location", syn.Location,
		"miners", len(predictions),
		"tao_distributed", domain.Round(distributed, 6))

	return result, nil
}

// rankScores sorts scores by descending final score and assigns dense ranks
// starting at 1. Ties keep their existing order.
func rankScores(scores []domain.MinerScore) {
	sort.SliceStable(scores, func(a, b int) bool {
		return scores[a].Score.FinalScore > scores[b].Score.FinalScore
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}
}
