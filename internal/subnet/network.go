package subnet

import (
	"math"

	"github.com/skyquorum/climate-oracle/internal/domain"
	"github.com/skyquorum/climate-oracle/internal/engine"
	"github.com/skyquorum/climate-oracle/internal/registry"
)

// Hyperparameters are the fixed governance parameters of the simulated
// subnet. They never change at runtime.
type Hyperparameters struct {
	MaxUIDs           int     `json:"max_uids"`
	ImmunityPeriod    int     `json:"immunity_period"`
	MinAllowedWeights int     `json:"min_allowed_weights"`
	TempoBlocks       int     `json:"tempo_blocks"`
	OwnerShare        float64 `json:"owner_share"`
	MinerShare        float64 `json:"miner_share"`
	ValidatorShare    float64 `json:"validator_share"`
}

// DefaultHyperparameters returns the subnet's governance parameters.
func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{
		MaxUIDs:           256,
		ImmunityPeriod:    5000,
		MinAllowedWeights: 8,
		TempoBlocks:       registry.TempoBlocks,
		OwnerShare:        0.18,
		MinerShare:        minerEmissionShare,
		ValidatorShare:    0.41,
	}
}

// SubnetInfo is the static metadata of the subnet: what it scores, how it
// splits emission, and which tasks it dispatches.
type SubnetInfo struct {
	Name           string             `json:"name"`
	Version        string             `json:"version"`
	ScoringWeights map[string]float64 `json:"scoring_weights"`
	EmissionSplit  map[string]float64 `json:"emission_split"`
	ChallengeTasks []domain.TaskType  `json:"challenge_tasks"`
	TempoBlocks    int                `json:"tempo_blocks"`
}

// Info reports the subnet's static metadata.
func (o *Orchestrator) Info() SubnetInfo {
	hp := DefaultHyperparameters()
	return SubnetInfo{
		Name:           "climate-oracle",
		Version:        subnetVersion,
		ScoringWeights: engine.ScoringWeights(),
		EmissionSplit: map[string]float64{
			"owner":      hp.OwnerShare,
			"miners":     hp.MinerShare,
			"validators": hp.ValidatorShare,
		},
		ChallengeTasks: []domain.TaskType{
			domain.TaskShortTermForecast,
			domain.TaskRiskIndex,
			domain.TaskLongRangeTrend,
		},
		TempoBlocks: hp.TempoBlocks,
	}
}

// NetworkStatus is the operational summary of the subnet.
type NetworkStatus struct {
	State            registry.NetworkState `json:"network_state"`
	MinersTotal      int                   `json:"miners_total"`
	MinersActive     int                   `json:"miners_active"`
	ValidatorsTotal  int                   `json:"validators_total"`
	ValidatorsActive int                   `json:"validators_active"`
	TotalStakeTao    float64               `json:"total_stake_tao"`
	ChallengesStored int                   `json:"challenges_stored"`
	SubnetVersion    string                `json:"subnet_version"`
	Hyperparameters  Hyperparameters       `json:"hyperparameters"`
}

// NetworkStatus reports the current network summary.
func (o *Orchestrator) NetworkStatus() NetworkStatus {
	return NetworkStatus{
		State:            o.reg.State(),
		MinersTotal:      len(o.reg.Miners()),
		MinersActive:     len(o.reg.ActiveMiners()),
		ValidatorsTotal:  len(o.reg.Validators()),
		ValidatorsActive: len(o.reg.ActiveValidators()),
		TotalStakeTao:    domain.Round(o.reg.TotalStake(), 2),
		ChallengesStored: len(o.reg.Challenges(0)),
		SubnetVersion:    subnetVersion,
		Hyperparameters:  DefaultHyperparameters(),
	}
}

// LeaderboardEntry is one ranked miner with simulated per-variable accuracy
// and streak columns. Accuracy columns derive from a fixed-seed draw scaled
// by the miner's running average, so the board is stable between challenges.
type LeaderboardEntry struct {
	Rank              int         `json:"rank"`
	UID               int         `json:"uid"`
	Hotkey            string      `json:"hotkey"`
	Name              string      `json:"name"`
	Tier              domain.Tier `json:"tier"`
	AvgScore          float64     `json:"avg_score"`
	TotalChallenges   int         `json:"total_challenges"`
	TotalTauEarned    float64     `json:"total_tau_earned"`
	TempAccuracyAvg   float64     `json:"temp_accuracy_avg"`
	PrecipAccuracyAvg float64     `json:"precip_accuracy_avg"`
	WinStreak         int         `json:"win_streak"`
}

// Leaderboard returns all miners ranked by running average score.
func (o *Orchestrator) Leaderboard() []LeaderboardEntry {
	miners := o.reg.Leaderboard()
	r := domain.NewRand(demoPoolSeed)

	entries := make([]LeaderboardEntry, 0, len(miners))
	for i, m := range miners {
		tempAcc := math.Min(1, m.AvgScore*(0.92+r.Float64()*0.08))
		precipAcc := math.Min(1, m.AvgScore*(0.85+r.Float64()*0.13))
		entries = append(entries, LeaderboardEntry{
			Rank:              i + 1,
			UID:               m.UID,
			Hotkey:            domain.MaskHotkey(m.Hotkey),
			Name:              m.Name,
			Tier:              m.Tier,
			AvgScore:          m.AvgScore,
			TotalChallenges:   m.TotalChallenges,
			TotalTauEarned:    m.TotalTauEarned,
			TempAccuracyAvg:   domain.Round(tempAcc, 4),
			PrecipAccuracyAvg: domain.Round(precipAcc, 4),
			WinStreak:         r.IntN(13),
		})
	}
	return entries
}

// MinerEmission is one miner's projected share of the next tempo's emission.
type MinerEmission struct {
	UID          int     `json:"uid"`
	Hotkey       string  `json:"hotkey"`
	AvgScore     float64 `json:"avg_score"`
	TaoPerTempo  float64 `json:"tao_per_tempo"`
	SharePercent float64 `json:"share_percent"`
}

// EmissionView is the projected emission split for the next tempo, assuming
// standings hold.
type EmissionView struct {
	TotalPerTempo  float64         `json:"total_emission_per_tempo"`
	OwnerShare     float64         `json:"owner_share"`
	MinerShare     float64         `json:"miner_share"`
	ValidatorShare float64         `json:"validator_share"`
	Miners         []MinerEmission `json:"miners"`
}

// EmissionDistribution projects each active miner's slice of the miners'
// emission share, proportional to running average scores.
func (o *Orchestrator) EmissionDistribution() EmissionView {
	state := o.reg.State()
	hp := DefaultHyperparameters()
	view := EmissionView{
		TotalPerTempo:  state.TotalEmissionPerTempo,
		OwnerShare:     hp.OwnerShare,
		MinerShare:     hp.MinerShare,
		ValidatorShare: hp.ValidatorShare,
	}

	miners := o.reg.ActiveMiners()
	if len(miners) == 0 {
		return view
	}

	entries := make([]engine.RewardEntry, len(miners))
	var totalScore float64
	for i, m := range miners {
		entries[i] = engine.RewardEntry{UID: m.UID, Score: m.AvgScore}
		totalScore += m.AvgScore
	}
	rewards := engine.Allocate(entries, state.TotalEmissionPerTempo*hp.MinerShare)

	for _, m := range miners {
		share := 0.0
		if totalScore > 0 {
			share = domain.Round(m.AvgScore/totalScore*100, 2)
		}
		view.Miners = append(view.Miners, MinerEmission{
			UID:          m.UID,
			Hotkey:       domain.MaskHotkey(m.Hotkey),
			AvgScore:     m.AvgScore,
			TaoPerTempo:  rewards[m.UID],
			SharePercent: share,
		})
	}
	return view
}
