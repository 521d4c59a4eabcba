package ui

import (
	"net/http"
	"sync"
	"time"

	"fxticker/internal/chart"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeTimeout = 5 * time.Second

// hub fans chart frames out to WebSocket subscribers. A single redraw
// ticker drives all connections; a subscriber that cannot keep up is
// dropped rather than allowed to stall the feed.
type hub struct {
	store    *chart.Store
	interval time.Duration
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu     sync.Mutex
	conns  map[string]*websocket.Conn
	closed bool

	done chan struct{}
	once sync.Once
}

func newHub(store *chart.Store, interval time.Duration, logger *zap.Logger) *hub {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &hub{
		store:    store,
		interval: interval,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The feed is same-host display plumbing, not a public API
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[string]*websocket.Conn),
		done:  make(chan struct{}),
	}
}

// start launches the redraw broadcaster.
func (h *hub) start() {
	go func() {
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()

		for {
			select {
			case <-h.done:
				return
			case <-ticker.C:
				h.broadcast()
			}
		}
	}()
}

// stop ends the broadcaster and closes all subscriber connections.
func (h *hub) stop() {
	h.once.Do(func() { close(h.done) })

	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, conn := range h.conns {
		_ = conn.Close()
		delete(h.conns, id)
	}
}

// handleWS upgrades the request and registers the subscriber. The first
// set of frames is sent immediately so a fresh display is not blank until
// the next tick.
func (h *hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	id := uuid.NewString()

	// The initial frames go out before the conn is registered: a gorilla
	// conn allows only one concurrent writer, and once registered the
	// redraw broadcaster owns all data-frame writes.
	if err := h.sendFrames(conn); err != nil {
		_ = conn.Close()
		h.logger.Warn("initial frames failed", zap.String("conn_id", id), zap.Error(err))
		return
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.conns[id] = conn
	h.mu.Unlock()

	h.logger.Info("display subscribed",
		zap.String("conn_id", id),
		zap.String("remote", r.RemoteAddr),
	)

	// Reader loop: the display never sends data frames, but reading is
	// what surfaces close frames and connection loss.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(id, conn, err)
				return
			}
		}
	}()
}

// broadcast pushes the current frame of every chart to every subscriber.
func (h *hub) broadcast() {
	h.mu.Lock()
	subs := make(map[string]*websocket.Conn, len(h.conns))
	for id, conn := range h.conns {
		subs[id] = conn
	}
	h.mu.Unlock()

	if len(subs) == 0 {
		return
	}

	for id, conn := range subs {
		if err := h.sendFrames(conn); err != nil {
			h.drop(id, conn, err)
		}
	}
}

// sendFrames writes one frame per tracked chart to a single connection.
func (h *hub) sendFrames(conn *websocket.Conn) error {
	for _, buf := range h.store.Buffers() {
		frame := ChartFrame{
			Pair:    buf.Pair().String(),
			Paused:  buf.Paused(),
			Samples: buf.Snapshot(),
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(frame); err != nil {
			return err
		}
	}
	return nil
}

func (h *hub) drop(id string, conn *websocket.Conn, err error) {
	h.mu.Lock()
	_, present := h.conns[id]
	delete(h.conns, id)
	h.mu.Unlock()

	_ = conn.Close()
	if present {
		h.logger.Info("display unsubscribed",
			zap.String("conn_id", id),
			zap.Error(err),
		)
	}
}
