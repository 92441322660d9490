// Package api provides the armhost status API: REST endpoints for session
// state and move requests, and a WebSocket pose stream a rendering
// front-end can subscribe to.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"armhost/pkg/arm"
	"armhost/pkg/errors"
	"armhost/pkg/log"
)

// ArmInterface is the narrow session surface the API server needs.
type ArmInterface interface {
	// Status returns the session state for status queries.
	Status() map[string]interface{}

	// Pose returns the solved pose for the current position.
	Pose() arm.Pose

	// Move drives a full move to target.
	Move(ctx context.Context, target arm.Point) error
}

// Server serves the armhost status API.
type Server struct {
	arm  ArmInterface
	addr string

	httpServer *http.Server

	wsUpgrader websocket.Upgrader
	wsClients  map[int64]*wsClient
	wsClientMu sync.RWMutex
	nextWSID   int64

	running atomic.Bool
	logger  *log.Logger
}

// Config holds server configuration.
type Config struct {
	// Addr is the HTTP address to listen on (e.g., ":7460").
	Addr string

	// Arm is the session the server exposes.
	Arm ArmInterface
}

// New creates a new API server.
func New(cfg Config) *Server {
	s := &Server{
		arm:       cfg.Arm,
		addr:      cfg.Addr,
		wsClients: make(map[int64]*wsClient),
		logger:    log.GetLogger("api"),
	}
	s.wsUpgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true // Front-ends connect from arbitrary origins
		},
	}
	return s
}

// Start begins serving; it blocks until the server stops.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/arm/info", s.handleInfo)
	mux.HandleFunc("/arm/status", s.handleStatus)
	mux.HandleFunc("/arm/move", s.handleMove)
	mux.HandleFunc("/websocket", s.handleWebSocket)

	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	s.running.Store(true)
	s.logger.Info("status API listening on %s", s.addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop stops the server and disconnects all WebSocket clients.
func (s *Server) Stop() error {
	s.running.Store(false)

	s.wsClientMu.Lock()
	for _, client := range s.wsClients {
		client.close()
	}
	s.wsClients = make(map[int64]*wsClient)
	s.wsClientMu.Unlock()

	if s.httpServer != nil {
		return s.httpServer.Close()
	}
	return nil
}

// EmitPose broadcasts a waypoint pose to all WebSocket clients. It
// implements the session's pose sink.
func (s *Server) EmitPose(pose arm.Pose) {
	msg := poseMessage{Event: "pose", Pose: pose, Time: time.Now().UnixMilli()}

	s.wsClientMu.RLock()
	defer s.wsClientMu.RUnlock()
	for _, client := range s.wsClients {
		client.send(msg)
	}
}

type poseMessage struct {
	Event string   `json:"event"`
	Pose  arm.Pose `json:"pose"`
	Time  int64    `json:"time"`
}

type moveRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type moveResponse struct {
	Result   string   `json:"result"`
	Position arm.Point `json:"position"`
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	status := s.arm.Status()
	s.writeJSON(w, map[string]interface{}{
		"name":         "armhost",
		"session_id":   status["session_id"],
		"link1_length": status["link1_length"],
		"link2_length": status["link2_length"],
		"left_handed":  status["left_handed"],
		"min_reach":    status["min_reach"],
		"max_reach":    status["max_reach"],
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, map[string]interface{}{
		"status": s.arm.Status(),
		"pose":   s.arm.Pose(),
	})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest,
			errors.MalformedInputError("body", "expected JSON {\"x\": .., \"y\": ..}"))
		return
	}

	if err := s.arm.Move(r.Context(), arm.Point{X: req.X, Y: req.Y}); err != nil {
		status := http.StatusInternalServerError
		if errors.IsRejection(err) {
			status = http.StatusConflict
		}
		s.writeJSONError(w, status, err)
		return
	}

	s.writeJSON(w, moveResponse{Result: "ok", Position: arm.Point{X: req.X, Y: req.Y}})
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	code := errors.ErrRuntime
	if armErr, ok := err.(*errors.ArmError); ok {
		code = armErr.Code
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"code":    string(code),
			"message": err.Error(),
		},
	})
}
