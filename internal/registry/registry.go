// Package registry is the in-memory store of subnet participants and network
// state: miners, validators, the bounded challenge history, and block/tempo
// counters. It is the only mutable state the simulation touches; every method
// holds the registry mutex, so callers can run challenge cycles concurrently.
package registry

import (
	"errors"
	"sort"
	"sync"

	"github.com/skyquorum/climate-oracle/internal/domain"
)

var (
	// ErrNotFound signals an unknown miner or validator uid.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateHotkey signals a registration whose hotkey is taken.
	ErrDuplicateHotkey = errors.New("hotkey already registered")
)

// MinerRecord is a registered miner with its running performance stats.
type MinerRecord struct {
	UID             int         `json:"uid"`
	Hotkey          string      `json:"hotkey"`
	Coldkey         string      `json:"coldkey,omitempty"`
	Name            string      `json:"name"`
	ModelName       string      `json:"model_name,omitempty"`
	Tier            domain.Tier `json:"tier"`
	Specialty       string      `json:"specialty,omitempty"`
	Stake           float64     `json:"stake"`
	IsActive        bool        `json:"is_active"`
	AvgScore        float64     `json:"avg_score"`
	TotalChallenges int         `json:"total_challenges"`
	TotalTauEarned  float64     `json:"total_tau_earned"`
	RegisteredBlock int64       `json:"registered_block"`
}

// ValidatorRecord is a registered validator.
type ValidatorRecord struct {
	UID             int     `json:"uid"`
	Hotkey          string  `json:"hotkey"`
	Name            string  `json:"name"`
	Specialty       string  `json:"specialty,omitempty"`
	Stake           float64 `json:"stake"`
	VTrust          float64 `json:"vtrust"`
	IsActive        bool    `json:"is_active"`
	ChallengesSent  int     `json:"challenges_sent"`
	LastWeightBlock int64   `json:"last_weight_block"`
}

// NetworkState holds the chain-like counters of the simulated subnet.
type NetworkState struct {
	BlockHeight           int64   `json:"block_height"`
	CurrentTempo          int64   `json:"current_tempo"`
	TotalEmissionPerTempo float64 `json:"total_emission_per_tempo"`
}

// TempoBlocks is the number of blocks per tempo cycle.
const TempoBlocks = 360

// Registry is the synchronized in-memory store.
type Registry struct {
	mu sync.Mutex

	miners     map[int]MinerRecord
	validators map[int]ValidatorRecord

	// challenges holds results most recent first, bounded by historyLimit.
	challenges   []domain.ChallengeResult
	historyLimit int

	nextMinerUID     int
	nextValidatorUID int
	state            NetworkState
}

// New creates an empty registry with the given emission budget per tempo and
// bound on retained challenge history.
func New(emissionPerTempo float64, historyLimit int) *Registry {
	return &Registry{
		miners:           make(map[int]MinerRecord),
		validators:       make(map[int]ValidatorRecord),
		historyLimit:     historyLimit,
		nextMinerUID:     1,
		nextValidatorUID: 1,
		state: NetworkState{
			BlockHeight:           2_840_000,
			CurrentTempo:          7_942,
			TotalEmissionPerTempo: emissionPerTempo,
		},
	}
}

// AddMiner registers a miner, assigning the next uid. The hotkey must be
// unique among miners; duplicates return ErrDuplicateHotkey.
func (r *Registry) AddMiner(rec MinerRecord) (MinerRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.miners {
		if m.Hotkey == rec.Hotkey {
			return MinerRecord{}, ErrDuplicateHotkey
		}
	}

	rec.UID = r.nextMinerUID
	r.nextMinerUID++
	rec.RegisteredBlock = r.state.BlockHeight
	r.miners[rec.UID] = rec
	return rec, nil
}

// Miner returns the miner with the given uid.
func (r *Registry) Miner(uid int) (MinerRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.miners[uid]
	if !ok {
		return MinerRecord{}, ErrNotFound
	}
	return m, nil
}

// Miners returns all miners ordered by uid.
func (r *Registry) Miners() []MinerRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedMiners(r.miners)
}

// ActiveMiners returns miners marked active, ordered by uid.
func (r *Registry) ActiveMiners() []MinerRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	var active []MinerRecord
	for _, m := range sortedMiners(r.miners) {
		if m.IsActive {
			active = append(active, m)
		}
	}
	return active
}

// AddValidator registers a validator, assigning the next uid. Duplicate
// hotkeys return ErrDuplicateHotkey.
func (r *Registry) AddValidator(rec ValidatorRecord) (ValidatorRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, v := range r.validators {
		if v.Hotkey == rec.Hotkey {
			return ValidatorRecord{}, ErrDuplicateHotkey
		}
	}

	rec.UID = r.nextValidatorUID
	r.nextValidatorUID++
	r.validators[rec.UID] = rec
	return rec, nil
}

// Validator returns the validator with the given uid.
func (r *Registry) Validator(uid int) (ValidatorRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.validators[uid]
	if !ok {
		return ValidatorRecord{}, ErrNotFound
	}
	return v, nil
}

// Validators returns all validators ordered by uid.
func (r *Registry) Validators() []ValidatorRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedValidators(r.validators)
}

// ActiveValidators returns validators marked active, ordered by uid.
func (r *Registry) ActiveValidators() []ValidatorRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	var active []ValidatorRecord
	for _, v := range sortedValidators(r.validators) {
		if v.IsActive {
			active = append(active, v)
		}
	}
	return active
}

// UpdateMinerScore folds one challenge score into a miner's running average
// and adds the earned reward to its cumulative total.
func (r *Registry) UpdateMinerScore(uid int, score, reward float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.miners[uid]
	if !ok {
		return ErrNotFound
	}

	total := float64(m.TotalChallenges)
	m.AvgScore = domain.Round((m.AvgScore*total+score)/(total+1), 4)
	m.TotalChallenges++
	m.TotalTauEarned = domain.Round(m.TotalTauEarned+reward, 6)
	r.miners[uid] = m
	return nil
}

// RecordValidatorActivity bumps a validator's dispatched-challenge count and
// records the block at which it last set weights.
func (r *Registry) RecordValidatorActivity(uid, challenges int, block int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.validators[uid]
	if !ok {
		return ErrNotFound
	}
	v.ChallengesSent += challenges
	v.LastWeightBlock = block
	r.validators[uid] = v
	return nil
}

// State returns the current network counters.
func (r *Registry) State() NetworkState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// AdvanceBlock advances the block height by n.
func (r *Registry) AdvanceBlock(n int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.BlockHeight += n
}

// AdvanceTempo completes the current tempo: the tempo counter increments and
// the block height jumps by a full tempo of blocks. Returns the new state.
func (r *Registry) AdvanceTempo() NetworkState {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.CurrentTempo++
	r.state.BlockHeight += TempoBlocks
	return r.state
}

// AddChallenge appends a result to the history, evicting the oldest entries
// beyond the configured bound.
func (r *Registry) AddChallenge(result domain.ChallengeResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.challenges = append([]domain.ChallengeResult{result}, r.challenges...)
	if r.historyLimit > 0 && len(r.challenges) > r.historyLimit {
		r.challenges = r.challenges[:r.historyLimit]
	}
}

// Challenges returns up to limit results, most recent first. A non-positive
// limit returns the full retained history.
func (r *Registry) Challenges(limit int) []domain.ChallengeResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.challenges)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.ChallengeResult, n)
	copy(out, r.challenges[:n])
	return out
}

// Leaderboard returns all miners sorted by descending average score, ties
// broken by uid.
func (r *Registry) Leaderboard() []MinerRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	miners := sortedMiners(r.miners)
	sort.SliceStable(miners, func(a, b int) bool {
		return miners[a].AvgScore > miners[b].AvgScore
	})
	return miners
}

// TotalStake sums the stake of every registered miner and validator.
func (r *Registry) TotalStake() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	var total float64
	for _, m := range r.miners {
		total += m.Stake
	}
	for _, v := range r.validators {
		total += v.Stake
	}
	return domain.Round(total, 2)
}

func sortedMiners(m map[int]MinerRecord) []MinerRecord {
	out := make([]MinerRecord, 0, len(m))
	for _, rec := range m {
		out = append(out, rec)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].UID < out[b].UID })
	return out
}

func sortedValidators(m map[int]ValidatorRecord) []ValidatorRecord {
	out := make([]ValidatorRecord, 0, len(m))
	for _, rec := range m {
		out = append(out, rec)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].UID < out[b].UID })
	return out
}
