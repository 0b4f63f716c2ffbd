package server

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/DaveMajstro/osadnici-z-katanu/internal/config"
	"github.com/DaveMajstro/osadnici-z-katanu/internal/game/room"
	"github.com/DaveMajstro/osadnici-z-katanu/internal/logger"
	"github.com/DaveMajstro/osadnici-z-katanu/internal/protocol"
	"github.com/DaveMajstro/osadnici-z-katanu/internal/storage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// eventKind distinguishes dispatch-loop events.
type eventKind int

const (
	eventMessage eventKind = iota
	eventDisconnect
)

type event struct {
	kind   eventKind
	client *Client
	msg    *protocol.Message
}

// Server accepts WebSocket connections and funnels every decoded intent
// into a single dispatch goroutine. That loop is the only code that
// touches rooms and sessions, so every mutation is atomic with respect
// to every other intent, across all rooms, without locks.
type Server struct {
	config      *config.Config
	rooms       *room.Manager
	handler     *Handler
	redis       *redis.Client
	leaderboard *storage.Leaderboard

	clients   map[string]*Client
	clientsMu sync.RWMutex

	events chan event
	done   chan struct{}
}

// NewServer wires the server. The leaderboard is optional: with Redis
// disabled in the config the game runs without stats.
func NewServer(cfg *config.Config) (*Server, error) {
	s := &Server{
		config:  cfg,
		clients: make(map[string]*Client),
		events:  make(chan event, 256),
		done:    make(chan struct{}),
	}

	if !cfg.Redis.Disabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		s.redis = rdb
		s.leaderboard = storage.NewLeaderboard(rdb)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	s.rooms = room.NewManager(cfg.Game.MaxSeats, rng)
	s.handler = NewHandler(s)

	return s, nil
}

// Start runs the dispatch loop and the HTTP listener. Blocks until the
// listener fails.
func (s *Server) Start() error {
	go s.dispatchLoop()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	logger.LogInfo("server listening on ws://%s/ws", addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// dispatchLoop is the single logical thread of the game: it applies one
// event at a time. No handler blocks or yields mid-mutation.
func (s *Server) dispatchLoop() {
	for {
		select {
		case ev := <-s.events:
			switch ev.kind {
			case eventMessage:
				s.handler.Handle(ev.client, ev.msg)
			case eventDisconnect:
				s.handler.HandleDisconnect(ev.client)
			}
		case <-s.done:
			return
		}
	}
}

func (s *Server) enqueueMessage(c *Client, msg *protocol.Message) {
	select {
	case s.events <- event{kind: eventMessage, client: c, msg: msg}:
	case <-s.done:
	}
}

func (s *Server) enqueueDisconnect(c *Client) {
	select {
	case s.events <- event{kind: eventDisconnect, client: c}:
	case <-s.done:
	}
}

// handleWebSocket upgrades the connection, assigns an identity and
// starts the pumps.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.LogError("websocket upgrade failed: %v", err)
		return
	}

	client := NewClient(s, conn)
	s.registerClient(client)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		PlayerID:   client.ID,
		PlayerName: client.GetName(),
	}))

	logger.LogInfo("client %s connected", client.ID)

	go client.ReadPump()
	go client.WritePump()
}

// handleHealth is a liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) registerClient(c *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[c.ID] = c
}

func (s *Server) unregisterClient(id string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, id)
}

// OnlineCount returns the number of connected clients.
func (s *Server) OnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// Shutdown stops the dispatch loop and closes all connections.
func (s *Server) Shutdown() {
	close(s.done)

	s.clientsMu.Lock()
	for _, c := range s.clients {
		c.Close()
	}
	s.clientsMu.Unlock()

	if s.redis != nil {
		_ = s.redis.Close()
	}
	logger.LogInfo("server stopped")
}
