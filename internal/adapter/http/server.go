package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/kumorigo/amedas-etl/internal/observability"
	"github.com/kumorigo/amedas-etl/weathercode"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes health, readiness, metrics, and the weather-code lookup
// endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and the
// /v1/codes routes.
func NewServer(addr string, ready ReadinessChecker, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:  logger,
		metrics: metrics,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /v1/codes", s.handleListCodes)
	mux.HandleFunc("GET /v1/codes/{code}", s.handleGetCode)
	mux.HandleFunc("GET /v1/codes/{code}/icon", s.handleGetIcon)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// codeResponse is the JSON shape of a single weather-code entry.
type codeResponse struct {
	Code          int               `json:"code"`
	Description   string            `json:"description"`
	DescriptionEN string            `json:"description_en"`
	Defined       bool              `json:"defined"`
	Icons         map[string]string `json:"icons,omitempty"`
}

func toCodeResponse(entry weathercode.Entry) codeResponse {
	resp := codeResponse{
		Code:          entry.Code,
		Description:   entry.Description,
		DescriptionEN: entry.DescriptionEN,
		Defined:       entry.Defined(),
	}
	if icons := entry.IconURLs(); len(icons) > 0 {
		resp.Icons = make(map[string]string, len(icons))
		for set, u := range icons {
			resp.Icons[string(set)] = u
		}
	}
	return resp
}

func (s *Server) handleListCodes(w http.ResponseWriter, _ *http.Request) {
	entries := weathercode.All()
	resp := make([]codeResponse, len(entries))
	for i, entry := range entries {
		resp[i] = toCodeResponse(entry)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCode(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(r.PathValue("code"))
	if err != nil {
		s.metrics.CodeLookups.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "code must be an integer"})
		return
	}

	entry, err := weathercode.Lookup(code)
	if err != nil {
		s.metrics.CodeLookups.WithLabelValues("not_found").Inc()
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	s.metrics.CodeLookups.WithLabelValues("hit").Inc()
	writeJSON(w, http.StatusOK, toCodeResponse(entry))
}

func (s *Server) handleGetIcon(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(r.PathValue("code"))
	if err != nil {
		s.metrics.CodeLookups.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "code must be an integer"})
		return
	}

	set := weathercode.IconSet(r.URL.Query().Get("set"))
	if set == "" {
		set = weathercode.IconSetSymbol
	}

	url, err := weathercode.IconURL(code, set)
	if err != nil {
		// Unknown codes, icon-less codes, and unknown sets all report not found.
		s.metrics.CodeLookups.WithLabelValues("not_found").Inc()
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	s.metrics.CodeLookups.WithLabelValues("hit").Inc()
	writeJSON(w, http.StatusOK, map[string]string{
		"code": strconv.Itoa(code),
		"set":  string(set),
		"url":  url,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
