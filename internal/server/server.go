// Package server is a websocket embedding of the room engine: clients create
// and join rooms over a JSON protocol and receive the engine's events as
// they happen.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-engine/room"
)

const shutdownTimeout = 5 * time.Second

// Server accepts websocket clients and routes their requests onto rooms.
// One Session per room serializes engine access.
type Server struct {
	addr           string
	logger         *log.Logger
	clock          quartz.Clock
	store          room.Store
	baseBet        int
	defaultBalance int
	upgrader       websocket.Upgrader

	mu       sync.RWMutex
	sessions map[string]*Session
}

// New builds a server from its configuration. The clock drives connection
// keepalive pings; tests pass a mock to control time.
func New(cfg *Config, store room.Store, logger *log.Logger, clock quartz.Clock) *Server {
	return &Server{
		addr:           cfg.Server.Address,
		logger:         logger.WithPrefix("server"),
		clock:          clock,
		store:          store,
		baseBet:        cfg.Game.StartingBaseBet,
		defaultBalance: cfg.Game.DefaultBalance,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		sessions: make(map[string]*Session),
	}
}

// Handler returns the http routes: /ws for the game protocol, /health for
// liveness probes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Run serves until ctx is cancelled, then drains with a bounded shutdown
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{Addr: s.addr, Handler: s.Handler()}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Listening", "addr", s.addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// CreateRoom makes a new room with a generated id. A zero baseBet uses the
// configured default.
func (s *Server) CreateRoom(ctx context.Context, baseBet int) (*Session, error) {
	if baseBet == 0 {
		baseBet = s.baseBet
	}

	id := uuid.NewString()
	r, err := room.Create(ctx, room.Config{
		Store:           s.store,
		StartingBaseBet: baseBet,
		Logger:          s.logger,
	}, id)
	if err != nil {
		return nil, err
	}

	session := newSession(id, r, s.logger)

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	s.logger.Info("Room created", "room", id, "baseBet", baseBet)
	return session, nil
}

// Session finds the session for a room id
func (s *Server) Session(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("room %s: %w", id, room.ErrNotFound)
	}
	return session, nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	c := newConnection(conn, s)
	s.logger.Debug("Client connected", "remote", conn.RemoteAddr())
	c.start()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK")
}
