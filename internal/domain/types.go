package domain

import "time"

// TaskType identifies the kind of challenge dispatched to miners.
type TaskType string

const (
	TaskShortTermForecast TaskType = "short_term_forecast"
	TaskRiskIndex         TaskType = "risk_index"
	TaskLongRangeTrend    TaskType = "long_range_trend"
)

// Valid reports whether the task type is one of the known values.
func (t TaskType) Valid() bool {
	switch t {
	case TaskShortTermForecast, TaskRiskIndex, TaskLongRangeTrend:
		return true
	}
	return false
}

// Tier is the discrete quality class of a miner. It governs noise magnitude
// and score range of the miner's simulated predictions.
type Tier string

const (
	TierEntry Tier = "entry"
	TierMid   Tier = "mid"
	TierHigh  Tier = "high"
)

// ChallengeType distinguishes challenges scored against a known outcome from
// active forecasts scored with the estimated fallback.
type ChallengeType string

const (
	ChallengeHistorical ChallengeType = "historical"
	ChallengeNearTerm   ChallengeType = "near_term"
)

// Conditions captures the seasonal and teleconnection regime of a challenge.
// Season and ENSOState select regime modifiers from the catalog; the remaining
// fields are descriptive context carried through to results.
type Conditions struct {
	Season     string `json:"season"`
	ENSOState  string `json:"enso_state"`
	MJOPhase   string `json:"mjo_phase,omitempty"`
	SSTAnomaly string `json:"sst_anomaly,omitempty"`
	IODState   string `json:"iod_state,omitempty"`
}

// Synapse is the challenge specification dispatched to miners. Immutable once
// dispatched.
type Synapse struct {
	TaskType            TaskType   `json:"task_type"`
	Location            string     `json:"location"`
	TargetDate          string     `json:"target_date"`
	ForecastHorizonDays int        `json:"forecast_horizon_days"`
	Variables           []string   `json:"variables"`
	Conditions          Conditions `json:"conditions"`
	RandomSeed          int64      `json:"random_seed,omitempty"`
}

// GroundTruth is the reference outcome used to score historical challenges.
// Near-term challenges have none and fall back to estimated scoring.
type GroundTruth struct {
	ActualTempCelsius float64 `json:"actual_temp_celsius"`
	ActualPrecipMM    float64 `json:"actual_precip_mm"`
	ActualRiskIndex   float64 `json:"actual_risk_index"`
	HadExtremeEvent   bool    `json:"had_extreme_event"`
	ExtremeEventType  string  `json:"extreme_event_type,omitempty"`
}

// MinerResponse is the full demo-scenario form of a miner's answer: prediction
// values plus identity, quality score, and natural-language analysis. Produced
// once per (miner, challenge) pair and never mutated.
type MinerResponse struct {
	UID                  int     `json:"uid"`
	Hotkey               string  `json:"hotkey"` // masked display form
	Name                 string  `json:"name"`
	Tier                 Tier    `json:"tier"`
	Specialty            string  `json:"specialty"`
	PredictedTempCelsius float64 `json:"predicted_temp_celsius"`
	PredictedPrecipMM    float64 `json:"predicted_precip_mm"`
	PredictedRiskIndex   float64 `json:"predicted_risk_index"`
	PredictedHumidityPct float64 `json:"predicted_humidity_pct"`
	PredictedWindKmh     float64 `json:"predicted_wind_kmh"`
	Confidence           float64 `json:"confidence"`
	Score                float64 `json:"score"`
	ResponseTimeSec      float64 `json:"response_time_s"`
	Analysis             string  `json:"analysis"`
	Rank                 int     `json:"rank"`
	TaoEarned            float64 `json:"tao_earned"`
}

// RiskFactor describes one contributor to a prediction's risk index.
type RiskFactor struct {
	Factor      string  `json:"factor"`
	Severity    float64 `json:"severity"`
	Description string  `json:"description"`
}

// MinerPrediction is the challenge-cycle form of a miner's answer, with
// millisecond latency and data-source counts instead of a demo quality score.
type MinerPrediction struct {
	MinerUID             int          `json:"miner_uid"`
	MinerHotkey          string       `json:"miner_hotkey"`
	PredictedTempCelsius float64      `json:"predicted_temp_celsius"`
	PredictedPrecipMM    float64      `json:"predicted_precip_mm"`
	PredictedHumidityPct float64      `json:"predicted_humidity_pct"`
	PredictedWindKmh     float64      `json:"predicted_wind_kmh"`
	RiskIndex            float64      `json:"risk_index"`
	Confidence           float64      `json:"confidence"`
	RiskFactors          []RiskFactor `json:"risk_factors,omitempty"`
	ResponseTimeMS       float64      `json:"response_time_ms"`
	DataSources          int          `json:"data_sources"`
}

// ScoreBreakdown is the weighted accuracy decomposition of one prediction
// against one ground truth. All component fields lie in [0,1]; FinalScore is
// clamped to 1.0 after the extreme-event multiplier.
type ScoreBreakdown struct {
	TempAccuracy      float64 `json:"temp_accuracy"`
	PrecipAccuracy    float64 `json:"precip_accuracy"`
	RiskAccuracy      float64 `json:"risk_accuracy"`
	LatencyScore      float64 `json:"latency_score"`
	Consistency       float64 `json:"consistency"`
	ExtremeEventBonus bool    `json:"extreme_event_bonus"`
	FinalScore        float64 `json:"final_score"`
}

// MinerScore pairs a scored miner with its rank and reward for one challenge.
type MinerScore struct {
	MinerUID    int            `json:"miner_uid"`
	MinerHotkey string         `json:"miner_hotkey"`
	Score       ScoreBreakdown `json:"score"`
	Rank        int            `json:"rank"`
	TauEarned   float64        `json:"tau_earned"`
}

// ValidatorVerdict is one validator's verification result for a challenge.
// Independent of miner predictions.
type ValidatorVerdict struct {
	UID          int             `json:"uid"`
	Hotkey       string          `json:"hotkey"` // masked display form
	Name         string          `json:"name"`
	Specialty    string          `json:"specialty"`
	StakeTao     float64         `json:"stake_tao"`
	VTrust       float64         `json:"vtrust"`
	ChecksPassed int             `json:"checks_passed"`
	ChecksTotal  int             `json:"checks_total"`
	CheckDetails map[string]bool `json:"check_details"`
	Consensus    string          `json:"consensus"` // "Approved" or "Disputed"
}

const (
	ConsensusApproved = "Approved"
	ConsensusDisputed = "Disputed"
)

// ChallengeResult is the aggregate record of one executed challenge cycle.
// Created once, appended to the bounded history, never mutated afterward.
type ChallengeResult struct {
	ChallengeID   string            `json:"challenge_id"`
	Synapse       Synapse           `json:"synapse"`
	ChallengeType ChallengeType     `json:"challenge_type"`
	GroundTruth   *GroundTruth      `json:"ground_truth,omitempty"`
	Predictions   []MinerPrediction `json:"miner_predictions"`
	Scores        []MinerScore      `json:"scores"`
	Timestamp     time.Time         `json:"timestamp"`
	Tempo         int64             `json:"tempo"`
}

// DemoResult is the fully-populated output of one canned demo scenario run.
type DemoResult struct {
	Scenario                string             `json:"scenario"`
	Title                   string             `json:"title"`
	Subtitle                string             `json:"subtitle"`
	TaskType                TaskType           `json:"task_type"`
	Synapse                 Synapse            `json:"synapse"`
	GroundTruth             GroundTruth        `json:"ground_truth"`
	MinerResponses          []MinerResponse    `json:"miner_responses"`
	MinerNodesConsulted     int                `json:"miner_nodes_consulted"`
	ValidatorResults        []ValidatorVerdict `json:"validator_results"`
	ValidatorNodesConsulted int                `json:"validator_nodes_consulted"`
	TaoRewardPool           float64            `json:"tao_reward_pool"`
	ConsensusReached        bool               `json:"consensus_reached"`
	BlockNumber             int64              `json:"block_number"`
	Tempo                   int64              `json:"tempo"`
	Timestamp               time.Time          `json:"timestamp"`
	SubnetVersion           string             `json:"subnet_version"`
}
