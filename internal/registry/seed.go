package registry

import (
	"fmt"
	"math/rand/v2"

	"github.com/skyquorum/climate-oracle/internal/catalog"
	"github.com/skyquorum/climate-oracle/internal/domain"
)

// Seed populates an empty registry with the catalog's specialist miners and
// validators so demos and challenge cycles work on a fresh process. Initial
// stats are drawn from generators seeded by each participant's hotkey hash,
// so seeding is reproducible.
func Seed(r *Registry, cat *catalog.Catalog) error {
	tasks := []domain.TaskType{
		domain.TaskShortTermForecast,
		domain.TaskRiskIndex,
		domain.TaskLongRangeTrend,
	}

	for _, task := range tasks {
		pool := cat.PoolFor(task)

		for _, m := range pool.Miners {
			rng := domain.NewRand(domain.HashSeed(m.Hotkey))
			rec := MinerRecord{
				Hotkey:    m.Hotkey,
				Name:      m.Name,
				ModelName: m.Name,
				Tier:      m.Tier,
				Specialty: m.Specialty,
				Stake:     domain.Round(100+rng.Float64()*900, 2),
				IsActive:  true,
				AvgScore:  seedScore(m.Tier, rng),
			}
			if _, err := r.AddMiner(rec); err != nil {
				return fmt.Errorf("seed miner %s: %w", m.Name, err)
			}
		}

		for _, v := range pool.Validators {
			rng := domain.NewRand(domain.HashSeed(v.Hotkey))
			rec := ValidatorRecord{
				Hotkey:    v.Hotkey,
				Name:      v.Name,
				Specialty: v.Specialty,
				Stake:     domain.Round(5000+rng.Float64()*13000, 2),
				VTrust:    domain.Round(0.88+rng.Float64()*0.11, 4),
				IsActive:  true,
			}
			if _, err := r.AddValidator(rec); err != nil {
				return fmt.Errorf("seed validator %s: %w", v.Name, err)
			}
		}
	}
	return nil
}

// seedScore gives a fresh miner a plausible starting average for its tier.
func seedScore(tier domain.Tier, rng *rand.Rand) float64 {
	var lo, hi float64
	switch tier {
	case domain.TierHigh:
		lo, hi = 0.80, 0.92
	case domain.TierMid:
		lo, hi = 0.60, 0.80
	default:
		lo, hi = 0.40, 0.60
	}
	return domain.Round(lo+rng.Float64()*(hi-lo), 4)
}
