package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyquorum/climate-oracle/internal/domain"
)

func TestAllocateProportional(t *testing.T) {
	entries := []RewardEntry{
		{UID: 1, Score: 0.8},
		{UID: 2, Score: 0.4},
	}
	shares := Allocate(entries, 0.3)

	require.Len(t, shares, 2)
	assert.InDelta(t, 0.2, shares[1], 1e-6)
	assert.InDelta(t, 0.1, shares[2], 1e-6)
}

func TestAllocateConservesPool(t *testing.T) {
	r := domain.NewRand(31337)
	entries := make([]RewardEntry, 17)
	for i := range entries {
		entries[i] = RewardEntry{UID: i + 1, Score: r.Float64()}
	}

	const pool = 0.41
	shares := Allocate(entries, pool)

	var total float64
	for _, share := range shares {
		assert.GreaterOrEqual(t, share, 0.0)
		total += share
	}
	assert.InDelta(t, pool, total, 1e-6)
}

func TestAllocateResidueGoesToHighestScore(t *testing.T) {
	// 0.1 over three equal claims rounds to 0.033333 each, leaving a
	// 0.000001 residue for the earliest highest-scored entry.
	entries := []RewardEntry{
		{UID: 1, Score: 1.0},
		{UID: 2, Score: 1.0},
		{UID: 3, Score: 1.0},
	}
	shares := Allocate(entries, 0.1)

	assert.Equal(t, 0.033334, shares[1])
	assert.Equal(t, 0.033333, shares[2])
	assert.Equal(t, 0.033333, shares[3])
}

func TestAllocateZeroTotalScore(t *testing.T) {
	entries := []RewardEntry{
		{UID: 1, Score: 0},
		{UID: 2, Score: 0},
	}
	shares := Allocate(entries, 1.0)

	require.Len(t, shares, 2)
	assert.Zero(t, shares[1])
	assert.Zero(t, shares[2])
}

func TestAllocateEmpty(t *testing.T) {
	shares := Allocate(nil, 1.0)
	assert.Empty(t, shares)
}
