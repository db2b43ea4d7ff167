package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyquorum/climate-oracle/internal/catalog"
	"github.com/skyquorum/climate-oracle/internal/domain"
)

func TestAddMinerAssignsSequentialUIDs(t *testing.T) {
	r := New(1.0, 10)

	a, err := r.AddMiner(MinerRecord{Hotkey: "hk-a", Tier: domain.TierHigh, IsActive: true})
	require.NoError(t, err)
	b, err := r.AddMiner(MinerRecord{Hotkey: "hk-b", Tier: domain.TierMid, IsActive: true})
	require.NoError(t, err)

	assert.Equal(t, 1, a.UID)
	assert.Equal(t, 2, b.UID)
	assert.Equal(t, int64(2_840_000), a.RegisteredBlock)
}

func TestAddMinerRejectsDuplicateHotkey(t *testing.T) {
	r := New(1.0, 10)

	_, err := r.AddMiner(MinerRecord{Hotkey: "hk-dup"})
	require.NoError(t, err)

	_, err = r.AddMiner(MinerRecord{Hotkey: "hk-dup"})
	assert.ErrorIs(t, err, ErrDuplicateHotkey)
}

func TestMinerNotFound(t *testing.T) {
	r := New(1.0, 10)
	_, err := r.Miner(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActiveMinersFiltersInactive(t *testing.T) {
	r := New(1.0, 10)

	_, err := r.AddMiner(MinerRecord{Hotkey: "hk-on", IsActive: true})
	require.NoError(t, err)
	_, err = r.AddMiner(MinerRecord{Hotkey: "hk-off", IsActive: false})
	require.NoError(t, err)

	active := r.ActiveMiners()
	require.Len(t, active, 1)
	assert.Equal(t, "hk-on", active[0].Hotkey)
	assert.Len(t, r.Miners(), 2)
}

func TestUpdateMinerScoreRunningAverage(t *testing.T) {
	r := New(1.0, 10)
	rec, err := r.AddMiner(MinerRecord{Hotkey: "hk-avg", IsActive: true})
	require.NoError(t, err)

	require.NoError(t, r.UpdateMinerScore(rec.UID, 0.8, 0.1))
	m, err := r.Miner(rec.UID)
	require.NoError(t, err)
	assert.Equal(t, 0.8, m.AvgScore)
	assert.Equal(t, 1, m.TotalChallenges)
	assert.Equal(t, 0.1, m.TotalTauEarned)

	require.NoError(t, r.UpdateMinerScore(rec.UID, 0.6, 0.05))
	m, err = r.Miner(rec.UID)
	require.NoError(t, err)
	assert.Equal(t, 0.7, m.AvgScore)
	assert.Equal(t, 2, m.TotalChallenges)
	assert.Equal(t, 0.15, m.TotalTauEarned)
}

func TestUpdateMinerScoreUnknownUID(t *testing.T) {
	r := New(1.0, 10)
	assert.ErrorIs(t, r.UpdateMinerScore(99, 0.5, 0), ErrNotFound)
}

func TestAddValidatorAndActivity(t *testing.T) {
	r := New(1.0, 10)

	v, err := r.AddValidator(ValidatorRecord{Hotkey: "vk-1", Stake: 9000, IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, 1, v.UID)

	require.NoError(t, r.RecordValidatorActivity(v.UID, 3, 2_840_100))
	got, err := r.Validator(v.UID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.ChallengesSent)
	assert.Equal(t, int64(2_840_100), got.LastWeightBlock)

	assert.ErrorIs(t, r.RecordValidatorActivity(99, 1, 0), ErrNotFound)
}

func TestChallengeHistoryBounded(t *testing.T) {
	r := New(1.0, 2)

	for i := 0; i < 3; i++ {
		r.AddChallenge(domain.ChallengeResult{ChallengeID: string(rune('a' + i))})
	}

	history := r.Challenges(0)
	require.Len(t, history, 2)
	// Most recent first; the oldest was evicted.
	assert.Equal(t, "c", history[0].ChallengeID)
	assert.Equal(t, "b", history[1].ChallengeID)

	limited := r.Challenges(1)
	require.Len(t, limited, 1)
	assert.Equal(t, "c", limited[0].ChallengeID)
}

func TestAdvanceBlockAndTempo(t *testing.T) {
	r := New(2.5, 10)

	start := r.State()
	assert.Equal(t, int64(2_840_000), start.BlockHeight)
	assert.Equal(t, int64(7_942), start.CurrentTempo)
	assert.Equal(t, 2.5, start.TotalEmissionPerTempo)

	r.AdvanceBlock(3)
	assert.Equal(t, int64(2_840_003), r.State().BlockHeight)

	next := r.AdvanceTempo()
	assert.Equal(t, int64(7_943), next.CurrentTempo)
	assert.Equal(t, int64(2_840_003+TempoBlocks), next.BlockHeight)
}

func TestLeaderboardOrdering(t *testing.T) {
	r := New(1.0, 10)

	low, _ := r.AddMiner(MinerRecord{Hotkey: "hk-low", IsActive: true})
	high, _ := r.AddMiner(MinerRecord{Hotkey: "hk-high", IsActive: true})

	require.NoError(t, r.UpdateMinerScore(low.UID, 0.4, 0))
	require.NoError(t, r.UpdateMinerScore(high.UID, 0.9, 0))

	board := r.Leaderboard()
	require.Len(t, board, 2)
	assert.Equal(t, high.UID, board[0].UID)
	assert.Equal(t, low.UID, board[1].UID)
}

func TestTotalStake(t *testing.T) {
	r := New(1.0, 10)

	_, err := r.AddMiner(MinerRecord{Hotkey: "hk-1", Stake: 100.5})
	require.NoError(t, err)
	_, err = r.AddValidator(ValidatorRecord{Hotkey: "vk-1", Stake: 9000})
	require.NoError(t, err)

	assert.Equal(t, 9100.5, r.TotalStake())
}

func TestSeedPopulatesAllPools(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	r := New(1.0, 100)
	require.NoError(t, Seed(r, cat))

	miners := r.Miners()
	assert.Len(t, miners, 18) // 3 task pools x 6 specialists
	assert.NotEmpty(t, r.Validators())

	for _, m := range miners {
		assert.True(t, m.IsActive, "seeded miner %d inactive", m.UID)
		assert.GreaterOrEqual(t, m.Stake, 100.0)
		assert.LessOrEqual(t, m.Stake, 1000.0)
		assert.Positive(t, m.AvgScore)
		assert.LessOrEqual(t, m.AvgScore, 0.92)
	}
	for _, v := range r.Validators() {
		assert.True(t, v.IsActive)
		assert.GreaterOrEqual(t, v.Stake, 5000.0)
		assert.LessOrEqual(t, v.Stake, 18000.0)
		assert.GreaterOrEqual(t, v.VTrust, 0.88)
		assert.LessOrEqual(t, v.VTrust, 0.99)
	}
}

func TestSeedIsReproducible(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	a := New(1.0, 100)
	require.NoError(t, Seed(a, cat))
	b := New(1.0, 100)
	require.NoError(t, Seed(b, cat))

	assert.Equal(t, a.Miners(), b.Miners())
	assert.Equal(t, a.Validators(), b.Validators())
}
