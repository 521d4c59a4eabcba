package ui

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fxticker/internal/chart"
	"fxticker/pkg/forex"

	"go.uber.org/zap"
)

// Server exposes the chart buffers to the display layer: JSON endpoints
// for the current state, pause/resume actions, and a WebSocket feed that
// pushes a redraw frame per pair on every tick.
type Server struct {
	store  *chart.Store
	logger *zap.Logger
	httpd  *http.Server
	hub    *hub
}

// ChartInfo describes one chart for the listing endpoint.
type ChartInfo struct {
	Pair    string  `json:"pair"`
	Paused  bool    `json:"paused"`
	Samples int     `json:"samples"`
	Rate    float64 `json:"rate,omitempty"` // most recent rate, if any
}

// ChartFrame is one redraw unit: everything the display needs to repaint
// a single chart.
type ChartFrame struct {
	Pair    string         `json:"pair"`
	Paused  bool           `json:"paused"`
	Samples []chart.Sample `json:"samples"`
}

// PauseState is the response to a pause/resume action.
type PauseState struct {
	Pair   string `json:"pair"`
	Paused bool   `json:"paused"`
}

func NewServer(addr string, redrawInterval time.Duration, store *chart.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		store:  store,
		logger: logger,
		hub:    newHub(store, redrawInterval, logger),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/charts", s.handleListCharts)
	mux.HandleFunc("GET /api/charts/{base}/{quote}/samples", s.handleGetSamples)
	mux.HandleFunc("POST /api/charts/{base}/{quote}/pause", s.handlePause)
	mux.HandleFunc("POST /api/charts/{base}/{quote}/resume", s.handleResume)
	mux.HandleFunc("GET /ws", s.hub.handleWS)

	s.httpd = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpd.Handler
}

// Start begins serving in the background. The returned channel yields the
// listener error if serving fails.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)
	s.hub.start()

	go func() {
		s.logger.Info("ui server listening", zap.String("addr", s.httpd.Addr))
		if err := s.httpd.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// Shutdown stops the redraw feed and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.stop()
	return s.httpd.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListCharts(w http.ResponseWriter, r *http.Request) {
	buffers := s.store.Buffers()
	infos := make([]ChartInfo, 0, len(buffers))
	for _, buf := range buffers {
		info := ChartInfo{
			Pair:    buf.Pair().String(),
			Paused:  buf.Paused(),
			Samples: buf.Len(),
		}
		if last, ok := buf.Last(); ok {
			info.Rate = last.Rate
		}
		infos = append(infos, info)
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleGetSamples(w http.ResponseWriter, r *http.Request) {
	buf := s.lookupBuffer(w, r)
	if buf == nil {
		return
	}
	writeJSON(w, http.StatusOK, ChartFrame{
		Pair:    buf.Pair().String(),
		Paused:  buf.Paused(),
		Samples: buf.Snapshot(),
	})
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	buf := s.lookupBuffer(w, r)
	if buf == nil {
		return
	}
	buf.Pause()
	s.logger.Info("chart paused", zap.String("pair", buf.Pair().String()))
	writeJSON(w, http.StatusOK, PauseState{Pair: buf.Pair().String(), Paused: true})
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	buf := s.lookupBuffer(w, r)
	if buf == nil {
		return
	}
	buf.Resume()
	s.logger.Info("chart resumed", zap.String("pair", buf.Pair().String()))
	writeJSON(w, http.StatusOK, PauseState{Pair: buf.Pair().String(), Paused: false})
}

// lookupBuffer resolves the {base}/{quote} path values to a tracked buffer,
// writing the error response itself when the pair is unknown.
func (s *Server) lookupBuffer(w http.ResponseWriter, r *http.Request) *chart.Buffer {
	pair, err := forex.ParsePair(r.PathValue("base") + "/" + r.PathValue("quote"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil
	}
	buf := s.store.Get(pair)
	if buf == nil {
		writeError(w, http.StatusNotFound, "unknown pair "+pair.String())
		return nil
	}
	return buf
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
