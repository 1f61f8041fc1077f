package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/scoutlabs/nichepulse/internal/app"
	"github.com/scoutlabs/nichepulse/internal/risingstar"
)

const missingNicheMsg = "Please provide a niche"

// nicheParam extracts and normalizes the niche query parameter. The
// empty-niche error goes out as HTTP 200 for front-end compatibility.
func nicheParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	niche := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("niche")))
	if niche == "" {
		writeJSON(w, http.StatusOK, errorBody(missingNicheMsg))
		return "", false
	}
	return niche, true
}

func (s *Server) minDurationParam(r *http.Request) int {
	raw := r.URL.Query().Get("min_duration")
	if raw == "" {
		return s.app.Config.Analysis.MinDurationMinutes
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return s.app.Config.Analysis.MinDurationMinutes
	}
	return v
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	niche, ok := nicheParam(w, r)
	if !ok {
		return
	}

	result, err := s.app.Orchestrator.Analyze(r.Context(), niche, s.minDurationParam(r))
	if err != nil {
		if result == nil {
			writeJSON(w, http.StatusInternalServerError, errorBody("analysis failed"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, failedAnalysis{
			Error:    "analysis failed",
			Analysis: result,
		})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// failedAnalysis carries whatever sections the pipeline completed before
// the fatal error, with their unavailable markers, into the error body.
type failedAnalysis struct {
	Error string `json:"error"`
	*app.Analysis
}

func (s *Server) handleChannels(w http.ResponseWriter, r *http.Request) {
	niche, ok := nicheParam(w, r)
	if !ok {
		return
	}

	report, err := s.app.Discovery.Discover(r.Context(), niche,
		risingstar.DefaultMaxResults, s.minDurationParam(r))
	if err != nil {
		if errors.Is(err, risingstar.ErrNoResults) {
			writeJSON(w, http.StatusOK, errorBody("no channels found for this niche"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorBody("channel discovery failed"))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleCompetitors(w http.ResponseWriter, r *http.Request) {
	niche, ok := nicheParam(w, r)
	if !ok {
		return
	}

	report, err := s.app.Competitors.Analyze(r.Context(), niche)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("competitor analysis failed"))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	picks := pickSuggestions(s.rng)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{"suggestions": picks})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Stats())
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	stats := s.app.Stats()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"version":        s.version,
		"caching":        "enabled",
		"uptime_seconds": stats.UptimeSeconds,
	})
}
