package httpapi

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/scoutlabs/nichepulse/internal/app"
)

// Server is the HTTP surface over the analysis pipeline.
type Server struct {
	app     *app.App
	router  *mux.Router
	version string

	mu  sync.Mutex
	rng *rand.Rand
}

// NewServer builds the router and handlers around an assembled app.
func NewServer(a *app.App, version string) *Server {
	s := &Server{
		app:     a,
		router:  mux.NewRouter(),
		version: version,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.Use(s.instrument)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/analyze", s.handleAnalyze).Methods(http.MethodGet)
	api.HandleFunc("/channels", s.handleChannels).Methods(http.MethodGet)
	api.HandleFunc("/competitors", s.handleCompetitors).Methods(http.MethodGet)
	api.HandleFunc("/suggestions", s.handleSuggestions).Methods(http.MethodGet)
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)

	s.router.Handle("/metrics", promhttp.HandlerFor(
		s.app.Metrics.Registry(), promhttp.HandlerOpts{})).Methods(http.MethodGet)

	s.router.NotFoundHandler = s.instrument(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	}))
}

// statusRecorder captures the response code for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument stamps a request id, opens CORS, and records the request
// in the log and the metrics collector.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		w.Header().Set("X-Request-ID", requestID)
		w.Header().Set("Access-Control-Allow-Origin", "*")

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		s.app.Metrics.ObserveRequest(routeLabel(r), rec.status, elapsed)
		log.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", elapsed).
			Msg("request served")
	})
}

// routeLabel returns the matched route template for metric labels.
// Unmatched requests collapse into one label so scanned URLs cannot
// mint unbounded series.
func routeLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("response encode failed")
	}
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}
