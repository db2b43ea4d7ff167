// Package engine implements the deterministic prediction-and-scoring
// simulation: miner response generation, validator verdict generation,
// weighted accuracy scoring, and proportional reward allocation. All
// randomness is derived from explicit seeds (see the domain package), so
// every function here is a pure function of its inputs.
package engine

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/skyquorum/climate-oracle/internal/catalog"
)

// Engine generates simulated miner and validator behavior from the static
// catalog tables. Safe for concurrent use; it holds no mutable state.
type Engine struct {
	cat *catalog.Catalog
}

// New creates an Engine over the given catalog.
func New(cat *catalog.Catalog) *Engine {
	return &Engine{cat: cat}
}

// Catalog exposes the engine's static tables.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// gauss draws one sample from a zero-mean normal with the given sigma,
// consuming the shared generator stream.
func gauss(r *rand.Rand, sigma float64) float64 {
	return distuv.Normal{Mu: 0, Sigma: sigma, Src: r}.Rand()
}

// uniform draws one sample from [lo, hi).
func uniform(r *rand.Rand, lo, hi float64) float64 {
	return distuv.Uniform{Min: lo, Max: hi, Src: r}.Rand()
}

// intBetween draws an integer uniformly from [lo, hi].
func intBetween(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}
