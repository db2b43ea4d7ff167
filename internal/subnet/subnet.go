// Package subnet orchestrates full simulation cycles over the engine and the
// registry: canned demo scenarios, freeform challenge cycles, tempo cycles,
// and the read-model views served by the API. All entry points are safe for
// concurrent use; registry mutation is serialized by the registry itself and
// synapse synthesis by the orchestrator's own generator lock.
package subnet

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/skyquorum/climate-oracle/internal/domain"
	"github.com/skyquorum/climate-oracle/internal/engine"
	"github.com/skyquorum/climate-oracle/internal/observability"
	"github.com/skyquorum/climate-oracle/internal/registry"
)

var (
	// ErrScenarioNotFound signals an unknown demo scenario key.
	ErrScenarioNotFound = errors.New("demo scenario not found")

	// ErrInvalidTask signals an unknown task type on a challenge request.
	ErrInvalidTask = errors.New("unknown task type")

	// ErrNoValidators signals a tempo cycle with no active validator to lead it.
	ErrNoValidators = errors.New("no active validators registered")

	// ErrNoMiners signals a challenge with nobody to answer it.
	ErrNoMiners = errors.New("no active miners registered")
)

const (
	// minerEmissionShare is the fraction of emission allocated to miners;
	// the rest goes to validators and the subnet owner.
	minerEmissionShare = 0.41

	// historicalRatio is the probability that an unforced challenge is
	// scored against a synthesized known outcome rather than estimated.
	historicalRatio = 0.7

	// challengesPerTempo is the number of challenges a lead validator
	// dispatches in one tempo cycle.
	challengesPerTempo = 3

	subnetVersion = "1.0.0-beta"
)

// ResultSink receives completed challenge results, e.g. a Kafka publisher.
// Publish failures are logged and never fail the cycle.
type ResultSink interface {
	Publish(ctx context.Context, result domain.ChallengeResult) error
}

// Orchestrator composes the prediction engine with the participant registry
// and drives complete challenge lifecycles.
type Orchestrator struct {
	eng     *engine.Engine
	reg     *registry.Registry
	logger  *slog.Logger
	metrics *observability.Metrics
	sink    ResultSink

	// synMu guards synRand, the generator behind freeform synapse synthesis.
	synMu   sync.Mutex
	synRand *rand.Rand
}

// New creates an orchestrator. sink may be nil when result publishing is
// disabled.
func New(eng *engine.Engine, reg *registry.Registry, logger *slog.Logger, metrics *observability.Metrics, sink ResultSink) *Orchestrator {
	return &Orchestrator{
		eng:     eng,
		reg:     reg,
		logger:  logger,
		metrics: metrics,
		sink:    sink,
		synRand: domain.NewRand(uint64(domain.Now().UnixNano())),
	}
}

// CheckReadiness reports whether the orchestrator can serve traffic. It is
// ready once the registry holds at least one active miner.
func (o *Orchestrator) CheckReadiness(_ context.Context) error {
	if len(o.reg.ActiveMiners()) == 0 {
		return ErrNoMiners
	}
	return nil
}

func (o *Orchestrator) refreshPopulationGauges() {
	o.metrics.RegisteredMiners.Set(float64(len(o.reg.Miners())))
	o.metrics.RegisteredValidators.Set(float64(len(o.reg.Validators())))
}

// RegisterMiner adds a miner to the registry and refreshes population gauges.
func (o *Orchestrator) RegisterMiner(rec registry.MinerRecord) (registry.MinerRecord, error) {
	added, err := o.reg.AddMiner(rec)
	if err != nil {
		return registry.MinerRecord{}, err
	}
	o.refreshPopulationGauges()
	o.logger.Info("miner registered", "uid", added.UID, "tier", added.Tier)
	return added, nil
}

// RegisterValidator adds a validator to the registry and refreshes gauges.
func (o *Orchestrator) RegisterValidator(rec registry.ValidatorRecord) (registry.ValidatorRecord, error) {
	added, err := o.reg.AddValidator(rec)
	if err != nil {
		return registry.ValidatorRecord{}, err
	}
	o.refreshPopulationGauges()
	o.logger.Info("validator registered", "uid", added.UID, "stake", added.Stake)
	return added, nil
}

// Registry exposes the underlying participant store for read handlers.
func (o *Orchestrator) Registry() *registry.Registry {
	return o.reg
}

// Engine exposes the prediction engine for read handlers.
func (o *Orchestrator) Engine() *engine.Engine {
	return o.eng
}
