package gateway

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type poolFeeResponse struct {
	Pool    string `json:"pool"`
	RateBps uint32 `json:"rateBps"`
}

type governanceResponse struct {
	Manager            string `json:"manager"`
	Guardian           string `json:"guardian"`
	PendingManager     string `json:"pendingManager,omitempty"`
	PendingEffectiveAt int64  `json:"pendingEffectiveAtUnix,omitempty"`
	Paused             bool   `json:"paused"`
}

type pausedResponse struct {
	Paused bool `json:"paused"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePoolFee(w http.ResponseWriter, r *http.Request) {
	poolID, err := parsePoolID(chi.URLParam(r, "poolID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid pool id")
		return
	}
	rate, err := s.gov.PoolRate(poolID)
	if err != nil {
		s.logger.Error("pool rate lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, poolFeeResponse{
		Pool:    hex.EncodeToString(poolID[:]),
		RateBps: rate,
	})
}

func (s *Server) handleGovernance(w http.ResponseWriter, _ *http.Request) {
	manager, err := s.gov.Manager()
	if err != nil {
		s.logger.Error("governance lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	guardian, err := s.gov.Guardian()
	if err != nil {
		s.logger.Error("governance lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	paused, err := s.gov.IsPaused()
	if err != nil {
		s.logger.Error("pause lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	resp := governanceResponse{
		Manager:  hex.EncodeToString(manager[:]),
		Guardian: hex.EncodeToString(guardian[:]),
		Paused:   paused,
	}
	if pending, ok, err := s.gov.Pending(); err != nil {
		s.logger.Error("pending lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	} else if ok {
		resp.PendingManager = hex.EncodeToString(pending.Candidate[:])
		resp.PendingEffectiveAt = pending.EffectiveAt.Unix()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePaused(w http.ResponseWriter, _ *http.Request) {
	paused, err := s.gov.IsPaused()
	if err != nil {
		s.logger.Error("pause lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, pausedResponse{Paused: paused})
}

func parsePoolID(raw string) ([32]byte, error) {
	var poolID [32]byte
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	decoded, err := hex.DecodeString(trimmed)
	if err != nil {
		return poolID, err
	}
	if len(decoded) != len(poolID) {
		return poolID, hex.ErrLength
	}
	copy(poolID[:], decoded)
	return poolID, nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
