package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/skyquorum/climate-oracle/internal/domain"
	"github.com/skyquorum/climate-oracle/internal/registry"
	"github.com/skyquorum/climate-oracle/internal/subnet"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain error sentinels onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, registry.ErrNotFound), errors.Is(err, subnet.ErrScenarioNotFound):
		status = http.StatusNotFound
	case errors.Is(err, registry.ErrDuplicateHotkey):
		status = http.StatusConflict
	case errors.Is(err, subnet.ErrInvalidTask):
		status = http.StatusBadRequest
	case errors.Is(err, subnet.ErrNoValidators), errors.Is(err, subnet.ErrNoMiners):
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func uidParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "uid"))
}

func (s *Server) handleNetworkStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.orch.NetworkStatus())
}

func (s *Server) handleEmission(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.orch.EmissionDistribution())
}

func (s *Server) handleSubnetInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.orch.Info())
}

func (s *Server) handleListMiners(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.orch.Registry().Miners())
}

func (s *Server) handleGetMiner(w http.ResponseWriter, r *http.Request) {
	uid, err := uidParam(r)
	if err != nil {
		s.writeBadRequest(w, "invalid uid")
		return
	}
	rec, err := s.orch.Registry().Miner(uid)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type registerMinerRequest struct {
	Hotkey    string      `json:"hotkey"`
	Name      string      `json:"name"`
	ModelName string      `json:"model_name"`
	Tier      domain.Tier `json:"tier"`
	Specialty string      `json:"specialty"`
	Stake     float64     `json:"stake"`
}

func (s *Server) handleRegisterMiner(w http.ResponseWriter, r *http.Request) {
	var req registerMinerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}
	if req.Hotkey == "" {
		s.writeBadRequest(w, "hotkey is required")
		return
	}
	tier := req.Tier
	if tier == "" {
		tier = domain.TierEntry
	}

	rec, err := s.orch.RegisterMiner(registry.MinerRecord{
		Hotkey:    req.Hotkey,
		Name:      req.Name,
		ModelName: req.ModelName,
		Tier:      tier,
		Specialty: req.Specialty,
		Stake:     req.Stake,
		IsActive:  true,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.orch.Leaderboard())
}

func (s *Server) handleMinerPredict(w http.ResponseWriter, r *http.Request) {
	uid, err := uidParam(r)
	if err != nil {
		s.writeBadRequest(w, "invalid uid")
		return
	}
	rec, err := s.orch.Registry().Miner(uid)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var syn domain.Synapse
	if err := json.NewDecoder(r.Body).Decode(&syn); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}
	if !syn.TaskType.Valid() {
		s.writeError(w, subnet.ErrInvalidTask)
		return
	}

	seed := domain.MinerSeed(domain.ChallengeSeed(syn), rec.UID)
	pred := s.orch.Engine().SimulatePrediction(syn, rec.Tier, seed)
	pred.MinerUID = rec.UID
	pred.MinerHotkey = domain.MaskHotkey(rec.Hotkey)
	writeJSON(w, http.StatusOK, pred)
}

func (s *Server) handleListValidators(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.orch.Registry().Validators())
}

func (s *Server) handleGetValidator(w http.ResponseWriter, r *http.Request) {
	uid, err := uidParam(r)
	if err != nil {
		s.writeBadRequest(w, "invalid uid")
		return
	}
	rec, err := s.orch.Registry().Validator(uid)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type registerValidatorRequest struct {
	Hotkey    string  `json:"hotkey"`
	Name      string  `json:"name"`
	Specialty string  `json:"specialty"`
	Stake     float64 `json:"stake"`
	VTrust    float64 `json:"vtrust"`
}

func (s *Server) handleRegisterValidator(w http.ResponseWriter, r *http.Request) {
	var req registerValidatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}
	if req.Hotkey == "" {
		s.writeBadRequest(w, "hotkey is required")
		return
	}

	rec, err := s.orch.RegisterValidator(registry.ValidatorRecord{
		Hotkey:    req.Hotkey,
		Name:      req.Name,
		Specialty: req.Specialty,
		Stake:     req.Stake,
		VTrust:    req.VTrust,
		IsActive:  true,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListScenarios(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.orch.Scenarios())
}

func (s *Server) handleRunDemo(w http.ResponseWriter, r *http.Request) {
	result, err := s.orch.RunDemoScenario(chi.URLParam(r, "key"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListChallenges(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeBadRequest(w, "invalid limit")
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, s.orch.Registry().Challenges(limit))
}

type challengeRequest struct {
	ValidatorUID int             `json:"validator_uid"`
	TaskType     domain.TaskType `json:"task_type"`
	Synapse      *domain.Synapse `json:"synapse,omitempty"`
}

func (s *Server) handleRunChallenge(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}

	result, err := s.orch.RunChallenge(r.Context(), req.ValidatorUID, req.TaskType, req.Synapse)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGenerateChallenge(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}

	syn, err := s.orch.GenerateChallenge(req.ValidatorUID, req.TaskType)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, syn)
}

func (s *Server) handleRunTempo(w http.ResponseWriter, r *http.Request) {
	cycle, err := s.orch.RunTempoCycle(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cycle)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var syn domain.Synapse
	if err := json.NewDecoder(r.Body).Decode(&syn); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}

	comparison, err := s.orch.CompareMiners(syn)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}
