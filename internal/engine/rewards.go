package engine

import "github.com/skyquorum/climate-oracle/internal/domain"

// RewardEntry is one miner's claim on the emission pool.
type RewardEntry struct {
	UID   int
	Score float64
}

// Allocate distributes a pool across miners in proportion to score. Shares
// are rounded to 6 decimal places; the rounding residue is assigned to the
// highest-scored miner (earliest on ties) so the shares sum to the pool
// within 1e-6. A zero or negative total score yields all-zero shares.
func Allocate(entries []RewardEntry, pool float64) map[int]float64 {
	shares := make(map[int]float64, len(entries))

	var total float64
	for _, e := range entries {
		total += e.Score
	}
	if total <= 0 {
		for _, e := range entries {
			shares[e.UID] = 0
		}
		return shares
	}

	best := -1
	var allocated float64
	for i, e := range entries {
		share := domain.Round(pool*(e.Score/total), 6)
		shares[e.UID] = share
		allocated += share
		if best < 0 || e.Score > entries[best].Score {
			best = i
		}
	}

	residue := domain.Round(pool-allocated, 6)
	if residue != 0 {
		shares[entries[best].UID] = domain.Round(shares[entries[best].UID]+residue, 6)
	}
	return shares
}
