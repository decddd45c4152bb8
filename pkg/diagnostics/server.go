// Package diagnostics serves the screen's state over HTTP for inspection
// while the screen is running.
package diagnostics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/go-drift/memlab/pkg/display"
	"github.com/go-drift/memlab/pkg/logging"
	"github.com/go-drift/memlab/pkg/memory"
	"github.com/go-drift/memlab/pkg/render"
	"github.com/go-drift/memlab/pkg/screen"
)

// Server is the HTTP debug server.
type Server struct {
	controller *screen.Controller
	history    *memory.History

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// New returns a server over controller. history may be nil, in which case
// /runtime reports 503.
func New(controller *screen.Controller, history *memory.History) *Server {
	return &Server{controller: controller, history: history}
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	r.HandleFunc("/runtime", s.handleRuntime).Methods(http.MethodGet)
	r.HandleFunc("/heap", handleHeap).Methods(http.MethodGet)
	r.HandleFunc("/gc", s.handleGC).Methods(http.MethodPost)
	return r
}

// Start listens on port and serves in the background. It returns the bound
// port, which differs from port when port is 0. Starting a running server
// returns its current port.
func (s *Server) Start(port int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return s.listener.Addr().(*net.TCPAddr).Port, nil
	}

	// Bind first to fail fast on port conflicts
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return 0, fmt.Errorf("diagnostics server listen: %w", err)
	}

	server := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	s.server = server
	s.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			// Clear state so the server can be restarted
			s.mu.Lock()
			if s.server == server {
				s.server = nil
				s.listener = nil
			}
			s.mu.Unlock()
			logging.L().Error("diagnostics server stopped", zap.Error(err))
		}
	}()

	actual := listener.Addr().(*net.TCPAddr).Port
	logging.L().Info("diagnostics server listening", zap.Int("port", actual))
	return actual, nil
}

// Stop shuts the server down. Stopping a stopped server does nothing.
func (s *Server) Stop() {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()

	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.L().Warn("diagnostics server shutdown", zap.Error(err))
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// StateResponse is the /state payload.
type StateResponse struct {
	Platform string          `json:"platform"`
	State    screen.State    `json:"state"`
	Dirty    bool            `json:"dirty"`
	Summary  display.Summary `json:"summary"`
	Host     render.Stats    `json:"host"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if s.controller == nil {
		http.Error(w, "no screen", http.StatusServiceUnavailable)
		return
	}
	state := s.controller.State()
	writeJSON(w, StateResponse{
		Platform: display.Platform(),
		State:    state,
		Dirty:    state.Dirty(),
		Summary:  display.Summarize(state),
		Host:     s.controller.Host().Stats(),
	})
}

func (s *Server) handleRuntime(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.Error(w, "reading history disabled", http.StatusServiceUnavailable)
		return
	}

	resp := struct {
		IntervalMs int64          `json:"intervalMs"`
		Points     []memory.Point `json:"points"`
	}{
		IntervalMs: s.history.Interval().Milliseconds(),
		Points:     applyRuntimeFilters(r, s.history.Snapshot(), time.Now()),
	}
	writeJSON(w, resp)
}

func (s *Server) handleGC(w http.ResponseWriter, r *http.Request) {
	if s.controller == nil {
		http.Error(w, "no screen", http.StatusServiceUnavailable)
		return
	}
	if err := s.controller.TriggerGC(); err != nil {
		http.Error(w, err.Error(), http.StatusNotImplemented)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func applyRuntimeFilters(r *http.Request, points []memory.Point, now time.Time) []memory.Point {
	if windowSeconds := parseFloatQuery(r, "window"); windowSeconds > 0 {
		cutoff := now.Add(-time.Duration(windowSeconds * float64(time.Second))).UnixMilli()
		filtered := make([]memory.Point, 0, len(points))
		for _, p := range points {
			if p.Timestamp >= cutoff {
				filtered = append(filtered, p)
			}
		}
		points = filtered
	}

	if limit := parseIntQuery(r, "limit"); limit > 0 && len(points) > limit {
		points = points[len(points)-limit:]
	}
	return points
}

func parseFloatQuery(r *http.Request, key string) float64 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed <= 0 {
		return 0
	}
	return parsed
}

func parseIntQuery(r *http.Request, key string) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0
	}
	return parsed
}

// writeJSON encodes to a buffer first so encoding errors become a 500.
func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
