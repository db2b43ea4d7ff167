package subnet

import (
	"fmt"
	"sort"
	"time"

	"github.com/skyquorum/climate-oracle/internal/domain"
	"github.com/skyquorum/climate-oracle/internal/engine"
)

// ComparisonRow is one miner's prediction annotated with its registry
// identity.
type ComparisonRow struct {
	domain.MinerPrediction
	Name  string      `json:"name"`
	Tier  domain.Tier `json:"tier"`
	Model string      `json:"model_name,omitempty"`
}

// Comparison is a side-by-side prediction run across every active miner for a
// single synapse, with aggregate statistics.
type Comparison struct {
	Synapse   domain.Synapse            `json:"synapse"`
	Miners    []ComparisonRow           `json:"miners"`
	Analysis  engine.ComparisonAnalysis `json:"analysis"`
	Timestamp time.Time                 `json:"timestamp"`
}

// CompareMiners dispatches the synapse to every active miner without scoring
// or rewards, returning the predictions ordered by descending confidence.
// Useful for inspecting how tiers disagree about the same challenge.
func (o *Orchestrator) CompareMiners(syn domain.Synapse) (Comparison, error) {
	if !syn.TaskType.Valid() {
		return Comparison{}, fmt.Errorf("task %q: %w", syn.TaskType, ErrInvalidTask)
	}
	miners := o.reg.ActiveMiners()
	if len(miners) == 0 {
		return Comparison{}, ErrNoMiners
	}

	baseSeed := domain.ChallengeSeed(syn)
	rows := make([]ComparisonRow, 0, len(miners))
	for i, m := range miners {
		pred := o.eng.SimulatePrediction(syn, m.Tier, domain.MinerSeed(baseSeed, i))
		pred.MinerUID = m.UID
		pred.MinerHotkey = domain.MaskHotkey(m.Hotkey)
		rows = append(rows, ComparisonRow{
			MinerPrediction: pred,
			Name:            m.Name,
			Tier:            m.Tier,
			Model:           m.ModelName,
		})
	}

	preds := make([]domain.MinerPrediction, len(rows))
	for i, row := range rows {
		preds[i] = row.MinerPrediction
	}
	analysis := engine.AnalyzeComparisons(preds)

	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].Confidence > rows[b].Confidence
	})

	o.metrics.PredictionsGenerated.Add(float64(len(rows)))

	return Comparison{
		Synapse:   syn,
		Miners:    rows,
		Analysis:  analysis,
		Timestamp: domain.Now(),
	}, nil
}
