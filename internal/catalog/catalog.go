// Package catalog holds the static simulation tables: location baselines,
// seasonal and ENSO regime modifiers, specialist miner/validator pools, and
// pre-authored demo scenarios. Tables are parsed once from embedded YAML and
// passed explicitly into the engine; nothing here mutates after Load.
package catalog

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/skyquorum/climate-oracle/internal/domain"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Baseline is the nominal climate record for one location.
type Baseline struct {
	BaseTemp     float64 `yaml:"base_temp"`
	BasePrecipMM float64 `yaml:"base_precip_mm"`
	BaseHumidity float64 `yaml:"base_humidity"`
	BaseWindKmh  float64 `yaml:"base_wind_kmh"`
	RiskBaseline float64 `yaml:"risk_baseline"`
}

// SeasonModifier adjusts a baseline for a named season.
type SeasonModifier struct {
	TempDelta    float64 `yaml:"temp_delta"`
	PrecipMult   float64 `yaml:"precip_mult"`
	RiskIncrease float64 `yaml:"risk_increase"`
}

// ENSOModifier adjusts a baseline for a named ENSO/teleconnection state.
type ENSOModifier struct {
	PrecipMult   float64 `yaml:"precip_mult"`
	RiskIncrease float64 `yaml:"risk_increase"`
}

// MinerSpec describes one specialist miner in a task-type pool.
type MinerSpec struct {
	Name      string      `yaml:"name"`
	Hotkey    string      `yaml:"hotkey"`
	Tier      domain.Tier `yaml:"tier"`
	Specialty string      `yaml:"specialty"`
}

// ValidatorSpec describes one specialist validator in a task-type pool.
type ValidatorSpec struct {
	Name      string `yaml:"name"`
	Hotkey    string `yaml:"hotkey"`
	Specialty string `yaml:"specialty"`
}

// TaskPool is the fixed, ordered specialist roster for one task type.
type TaskPool struct {
	Miners      []MinerSpec     `yaml:"miners"`
	Validators  []ValidatorSpec `yaml:"validators"`
	CheckLabels []string        `yaml:"check_labels"`
	Analyses    []string        `yaml:"analyses"`
}

// Scenario is one pre-authored demo run: a fixed synapse with a known outcome.
type Scenario struct {
	Title       string
	Subtitle    string
	TaskType    domain.TaskType
	Synapse     domain.Synapse
	GroundTruth domain.GroundTruth
}

// Catalog bundles every static table the engine consumes.
type Catalog struct {
	baselines map[string]Baseline
	seasons   map[string]SeasonModifier
	enso      map[string]ENSOModifier
	pools     map[domain.TaskType]TaskPool
	scenarios map[string]Scenario
}

// DefaultBaseline is returned for locations absent from the table.
var DefaultBaseline = Baseline{
	BaseTemp:     25.0,
	BasePrecipMM: 100.0,
	BaseHumidity: 70.0,
	BaseWindKmh:  15.0,
	RiskBaseline: 0.25,
}

// Neutral modifiers returned for unrecognized season / ENSO keys.
var (
	NeutralSeason = SeasonModifier{TempDelta: 0, PrecipMult: 1.0, RiskIncrease: 0}
	NeutralENSO   = ENSOModifier{PrecipMult: 1.0, RiskIncrease: 0}
)

// yamlBaselines mirrors data/baselines.yaml.
type yamlBaselines struct {
	Locations  map[string]Baseline       `yaml:"locations"`
	Seasons    map[string]SeasonModifier `yaml:"seasons"`
	ENSOStates map[string]ENSOModifier   `yaml:"enso_states"`
}

// yamlScenario mirrors one entry of data/scenarios.yaml.
type yamlScenario struct {
	Title    string          `yaml:"title"`
	Subtitle string          `yaml:"subtitle"`
	TaskType domain.TaskType `yaml:"task_type"`
	Synapse  struct {
		TaskType            domain.TaskType `yaml:"task_type"`
		Location            string          `yaml:"location"`
		TargetDate          string          `yaml:"target_date"`
		ForecastHorizonDays int             `yaml:"forecast_horizon_days"`
		Variables           []string        `yaml:"variables"`
		Conditions          struct {
			Season     string `yaml:"season"`
			ENSOState  string `yaml:"enso_state"`
			MJOPhase   string `yaml:"mjo_phase"`
			SSTAnomaly string `yaml:"sst_anomaly"`
			IODState   string `yaml:"iod_state"`
		} `yaml:"conditions"`
		RandomSeed int64 `yaml:"random_seed"`
	} `yaml:"synapse"`
	GroundTruth struct {
		ActualTempCelsius float64 `yaml:"actual_temp_celsius"`
		ActualPrecipMM    float64 `yaml:"actual_precip_mm"`
		ActualRiskIndex   float64 `yaml:"actual_risk_index"`
		HadExtremeEvent   bool    `yaml:"had_extreme_event"`
		ExtremeEventType  string  `yaml:"extreme_event_type"`
	} `yaml:"ground_truth"`
}

// Load parses the embedded YAML tables into an immutable Catalog.
func Load() (*Catalog, error) {
	var base yamlBaselines
	if err := unmarshalFile("data/baselines.yaml", &base); err != nil {
		return nil, err
	}

	rawPools := map[domain.TaskType]TaskPool{}
	if err := unmarshalFile("data/specialists.yaml", &rawPools); err != nil {
		return nil, err
	}

	rawScenarios := map[string]yamlScenario{}
	if err := unmarshalFile("data/scenarios.yaml", &rawScenarios); err != nil {
		return nil, err
	}

	c := &Catalog{
		baselines: base.Locations,
		seasons:   base.Seasons,
		enso:      base.ENSOStates,
		pools:     rawPools,
		scenarios: make(map[string]Scenario, len(rawScenarios)),
	}

	for key, s := range rawScenarios {
		c.scenarios[key] = Scenario{
			Title:    s.Title,
			Subtitle: s.Subtitle,
			TaskType: s.TaskType,
			Synapse: domain.Synapse{
				TaskType:            s.Synapse.TaskType,
				Location:            s.Synapse.Location,
				TargetDate:          s.Synapse.TargetDate,
				ForecastHorizonDays: s.Synapse.ForecastHorizonDays,
				Variables:           s.Synapse.Variables,
				Conditions: domain.Conditions{
					Season:     s.Synapse.Conditions.Season,
					ENSOState:  s.Synapse.Conditions.ENSOState,
					MJOPhase:   s.Synapse.Conditions.MJOPhase,
					SSTAnomaly: s.Synapse.Conditions.SSTAnomaly,
					IODState:   s.Synapse.Conditions.IODState,
				},
				RandomSeed: s.Synapse.RandomSeed,
			},
			GroundTruth: domain.GroundTruth{
				ActualTempCelsius: s.GroundTruth.ActualTempCelsius,
				ActualPrecipMM:    s.GroundTruth.ActualPrecipMM,
				ActualRiskIndex:   s.GroundTruth.ActualRiskIndex,
				HadExtremeEvent:   s.GroundTruth.HadExtremeEvent,
				ExtremeEventType:  s.GroundTruth.ExtremeEventType,
			},
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func unmarshalFile(name string, out any) error {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read catalog file %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse catalog file %s: %w", name, err)
	}
	return nil
}

func (c *Catalog) validate() error {
	if _, ok := c.pools[domain.TaskShortTermForecast]; !ok {
		return fmt.Errorf("catalog: missing %s pool", domain.TaskShortTermForecast)
	}
	for task, pool := range c.pools {
		if !task.Valid() {
			return fmt.Errorf("catalog: unknown task type %q", task)
		}
		if len(pool.Miners) == 0 || len(pool.Validators) == 0 {
			return fmt.Errorf("catalog: %s pool has an empty roster", task)
		}
		if len(pool.CheckLabels) == 0 {
			return fmt.Errorf("catalog: %s pool has no check labels", task)
		}
		if len(pool.Analyses) == 0 {
			return fmt.Errorf("catalog: %s pool has no analysis texts", task)
		}
	}
	for key, s := range c.scenarios {
		if !s.TaskType.Valid() {
			return fmt.Errorf("catalog: scenario %s has unknown task type %q", key, s.TaskType)
		}
	}
	return nil
}

// BaselineFor returns the baseline record for a location, or DefaultBaseline
// when the location is not in the table.
func (c *Catalog) BaselineFor(location string) Baseline {
	if b, ok := c.baselines[location]; ok {
		return b
	}
	return DefaultBaseline
}

// SeasonFor returns the modifier for a named season, or the neutral modifier
// for unrecognized keys.
func (c *Catalog) SeasonFor(season string) SeasonModifier {
	if m, ok := c.seasons[season]; ok {
		return m
	}
	return NeutralSeason
}

// ENSOFor returns the modifier for a named ENSO state, or the neutral modifier
// for unrecognized keys.
func (c *Catalog) ENSOFor(state string) ENSOModifier {
	if m, ok := c.enso[state]; ok {
		return m
	}
	return NeutralENSO
}

// PoolFor returns the specialist pool for a task type, falling back to the
// short-term forecast pool for unknown task types.
func (c *Catalog) PoolFor(task domain.TaskType) TaskPool {
	if p, ok := c.pools[task]; ok {
		return p
	}
	return c.pools[domain.TaskShortTermForecast]
}

// Scenario returns the demo scenario for a key.
func (c *Catalog) Scenario(key string) (Scenario, bool) {
	s, ok := c.scenarios[key]
	return s, ok
}

// ScenarioKeys returns all demo scenario keys in sorted order.
func (c *Catalog) ScenarioKeys() []string {
	keys := make([]string, 0, len(c.scenarios))
	for k := range c.scenarios {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Locations returns the known location names in sorted order.
func (c *Catalog) Locations() []string {
	names := make([]string, 0, len(c.baselines))
	for n := range c.baselines {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SeasonNames returns the known season keys in sorted order.
func (c *Catalog) SeasonNames() []string {
	names := make([]string, 0, len(c.seasons))
	for n := range c.seasons {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ENSONames returns the known ENSO state keys in sorted order.
func (c *Catalog) ENSONames() []string {
	names := make([]string, 0, len(c.enso))
	for n := range c.enso {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
