package subnet

import (
	"context"

	"github.com/skyquorum/climate-oracle/internal/domain"
	"github.com/skyquorum/climate-oracle/internal/registry"
)

// TempoCycle is the record of one completed tempo: the challenges run, the
// emission distributed, and the resulting standings.
type TempoCycle struct {
	TempoCompleted      int64                    `json:"tempo_completed"`
	NewTempo            int64                    `json:"new_tempo"`
	BlockHeight         int64                    `json:"block_height"`
	LeadValidatorUID    int                      `json:"lead_validator_uid"`
	ChallengesRun       int                      `json:"challenges_run"`
	TotalTaoDistributed float64                  `json:"total_tao_distributed"`
	Challenges          []domain.ChallengeResult `json:"challenges"`
	Leaderboard         []registry.MinerRecord   `json:"updated_leaderboard"`
}

// tempoTasks is the fixed task rotation of one tempo. The first two
// challenges verify against synthesized outcomes; the last is an active
// forecast scored with the estimated fallback.
var tempoTasks = [challengesPerTempo]struct {
	task domain.TaskType
	typ  domain.ChallengeType
}{
	{domain.TaskShortTermForecast, domain.ChallengeHistorical},
	{domain.TaskRiskIndex, domain.ChallengeHistorical},
	{domain.TaskLongRangeTrend, domain.ChallengeNearTerm},
}

// RunTempoCycle runs one full tempo: the highest-staked active validator
// leads three challenges across the task rotation, each allocating an equal
// third of the miners' emission share, then the tempo counter advances.
// Returns ErrNoValidators when nobody can lead.
func (o *Orchestrator) RunTempoCycle(ctx context.Context) (TempoCycle, error) {
	validators := o.reg.ActiveValidators()
	if len(validators) == 0 {
		return TempoCycle{}, ErrNoValidators
	}
	lead := validators[0]
	for _, v := range validators[1:] {
		if v.Stake > lead.Stake {
			lead = v
		}
	}

	startState := o.reg.State()
	emissionPerChallenge := startState.TotalEmissionPerTempo * minerEmissionShare / challengesPerTempo

	cycle := TempoCycle{
		TempoCompleted:   startState.CurrentTempo,
		LeadValidatorUID: lead.UID,
	}

	for _, step := range tempoTasks {
		syn := o.newSynapse(step.task)
		typ := step.typ
		result, err := o.runCycle(ctx, lead.UID, syn, &typ, emissionPerChallenge)
		if err != nil {
			return TempoCycle{}, err
		}
		cycle.Challenges = append(cycle.Challenges, result)
		for _, sc := range result.Scores {
			cycle.TotalTaoDistributed += sc.TauEarned
		}
	}
	cycle.TotalTaoDistributed = domain.Round(cycle.TotalTaoDistributed, 6)

	endState := o.reg.AdvanceTempo()
	cycle.NewTempo = endState.CurrentTempo
	cycle.BlockHeight = endState.BlockHeight
	cycle.ChallengesRun = len(cycle.Challenges)
	cycle.Leaderboard = o.reg.Leaderboard()

	o.metrics.TempoCycles.Inc()
	o.logger.Info("tempo cycle completed",
		"tempo", cycle.TempoCompleted,
		"new_tempo", cycle.NewTempo,
		"lead_validator", lead.UID,
		"tao_distributed", cycle.TotalTaoDistributed)

	return cycle, nil
}
