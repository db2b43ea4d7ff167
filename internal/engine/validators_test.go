package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyquorum/climate-oracle/internal/domain"
)

func TestGenerateVerdictsDeterministic(t *testing.T) {
	e := newTestEngine(t)

	first := e.GenerateVerdicts(domain.TaskShortTermForecast, 3)
	second := e.GenerateVerdicts(domain.TaskShortTermForecast, 3)
	assert.Equal(t, first, second)
}

func TestGenerateVerdictsFields(t *testing.T) {
	e := newTestEngine(t)
	pool := e.Catalog().PoolFor(domain.TaskShortTermForecast)

	verdicts := e.GenerateVerdicts(domain.TaskShortTermForecast, 3)
	require.Len(t, verdicts, 3)

	for j, v := range verdicts {
		assert.Equal(t, j+1, v.UID)
		assert.Equal(t, pool.Validators[j].Name, v.Name)
		assert.Contains(t, v.Hotkey, "...")

		assert.GreaterOrEqual(t, v.StakeTao, 5000.0)
		assert.LessOrEqual(t, v.StakeTao, 18000.0)
		assert.GreaterOrEqual(t, v.VTrust, 0.88)
		assert.LessOrEqual(t, v.VTrust, 0.99)

		assert.Equal(t, len(pool.CheckLabels), v.ChecksTotal)
		assert.Len(t, v.CheckDetails, len(pool.CheckLabels))

		passed := 0
		for _, ok := range v.CheckDetails {
			if ok {
				passed++
			}
		}
		assert.Equal(t, passed, v.ChecksPassed)

		if v.ChecksPassed >= v.ChecksTotal/2+1 {
			assert.Equal(t, domain.ConsensusApproved, v.Consensus)
		} else {
			assert.Equal(t, domain.ConsensusDisputed, v.Consensus)
		}
	}
}

func TestGenerateVerdictsCountCappedAtPool(t *testing.T) {
	e := newTestEngine(t)
	pool := e.Catalog().PoolFor(domain.TaskRiskIndex)

	verdicts := e.GenerateVerdicts(domain.TaskRiskIndex, 99)
	assert.Len(t, verdicts, len(pool.Validators))
}

func TestConsensusThreshold(t *testing.T) {
	assert.Equal(t, 2, consensusThreshold(3))
	assert.Equal(t, 3, consensusThreshold(4))
	assert.Equal(t, 3, consensusThreshold(5))
	assert.Equal(t, 1, consensusThreshold(1))
}
