// Package domain models the data types and deterministic primitives of the
// climate oracle subnet simulation.
//
// # Simulation Model
//
// The subnet simulates a decentralized climate-forecasting marketplace: miners
// produce weather and risk predictions for a dispatched challenge (a Synapse),
// validators score those predictions against a ground truth, and a fixed TAO
// emission pool is distributed in proportion to score. No real inference,
// network I/O, or chain consensus takes place — every miner and validator
// behavior is drawn from seeded pseudo-random distributions layered on static
// lookup tables.
//
// # Determinism
//
// Reproducibility is the load-bearing contract of the engine. Every random
// draw flows from a seed derived by [ChallengeSeed]:
//
//   - An explicit Synapse.RandomSeed is used as-is.
//   - Without one, the seed is the first 8 hex digits of
//     SHA-256(location + ":" + date) interpreted as a 32-bit integer, so the
//     same (location, date) pair reproduces the same sequence across processes.
//
// Within one challenge, the miner at pool position i draws from an independent
// generator seeded with seed + i*7 (see [MinerSeed]); validators at position j
// use 42 + j*13 (see [ValidatorSeed]). Sources are PCG generators from
// math/rand/v2, which have a specified algorithm, so identical seeds yield
// bit-identical streams on any platform.
//
// # Tiers
//
// Miners belong to a discrete quality tier (entry, mid, high) that selects the
// noise magnitude and score range of their simulated predictions. The miner at
// position 0 of a specialist pool always receives a privileged narrow-noise
// draw regardless of tier, guaranteeing a visible top performer in demo runs.
//
// # Scoring Formula
//
//	final = 0.40·temp + 0.25·precip + 0.15·risk + 0.10·latency + 0.10·consistency
//
// multiplied by 1.5 when an extreme event was both predicted (risk > 0.6) and
// observed, clamped to 1.0 and rounded to 4 decimals.
//
// # Hotkey Masking
//
// Hotkeys are shown in a masked display form: the raw key followed by "..."
// and a 6-hex-digit SHA-256 suffix. This is display formatting only, not a
// cryptographic identity. See [MaskHotkey].
package domain
