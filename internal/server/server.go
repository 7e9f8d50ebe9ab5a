package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/gravitas-games/hexgrid/internal/config"
	"github.com/gravitas-games/hexgrid/pkg/models"
)

// Server serves one shared grid session over WebSocket
type Server struct {
	config       *config.Config
	session      *Session
	upgrader     websocket.Upgrader
	httpSrv      *http.Server
	jwtValidator *JWTValidator
	redis        *redis.Client

	// Connection tracking
	connections map[*Connection]bool
	connMu      sync.RWMutex

	// Shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new server instance. Authentication, and with it Redis,
// is only set up when a JWT public key URL is configured.
func New(cfg *config.Config) (*Server, error) {
	log.Println("Initializing server...")

	ctx, cancel := context.WithCancel(context.Background())

	srv := &Server{
		config:      cfg,
		connections: make(map[*Connection]bool),
		ctx:         ctx,
		cancel:      cancel,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Subprotocols:    []string{"access_token"},
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	if cfg.JWT.PublicKeyURL != "" {
		if cfg.Redis.Address != "" {
			redisClient := redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Address,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			if err := redisClient.Ping(ctx).Err(); err != nil {
				cancel()
				return nil, fmt.Errorf("failed to connect to Redis: %w", err)
			}
			log.Println("Connected to Redis")
			srv.redis = redisClient
		}

		jwtValidator, err := NewJWTValidator(ctx, cfg, srv.redis)
		if err != nil {
			srv.closeRedis()
			cancel()
			return nil, fmt.Errorf("failed to initialize JWT validator: %w", err)
		}
		srv.jwtValidator = jwtValidator
	} else {
		log.Println("Authentication disabled, players join anonymously")
	}

	// Initialize session
	session, err := NewSession("main", cfg)
	if err != nil {
		srv.closeRedis()
		cancel()
		return nil, err
	}
	srv.session = session

	log.Println("Server initialized successfully")
	return srv, nil
}

// Handler returns the HTTP routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start begins listening for connections
func (s *Server) Start(addr string) error {
	log.Printf("Starting WebSocket server on %s", addr)

	// Create HTTP server
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	log.Printf("WebSocket endpoint: ws://%s/ws", addr)
	log.Printf("Health endpoint: http://%s/health", addr)

	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	log.Println("Shutting down server...")

	// Cancel context to signal shutdown
	s.cancel()

	// Shutdown HTTP server with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.httpSrv != nil {
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}

	// Close all WebSocket connections
	s.connMu.RLock()
	conns := make([]*Connection, 0, len(s.connections))
	for conn := range s.connections {
		conns = append(conns, conn)
	}
	s.connMu.RUnlock()
	for _, conn := range conns {
		conn.Close()
	}

	s.session.Close()
	s.closeRedis()

	log.Println("Server shutdown complete")
	return nil
}

func (s *Server) closeRedis() {
	if s.redis == nil {
		return
	}
	if err := s.redis.Close(); err != nil {
		log.Printf("Redis close error: %v", err)
	}
}

// authenticate resolves the player for a connection request
func (s *Server) authenticate(r *http.Request) (*models.Player, error) {
	if s.jwtValidator == nil {
		id := uuid.NewString()
		return &models.Player{
			ID:          id,
			Username:    "guest-" + id[:8],
			Permissions: models.AllPermissions,
			Anonymous:   true,
		}, nil
	}

	tokenString := extractTokenFromHeader(r)
	if tokenString == "" {
		return nil, fmt.Errorf("missing authentication token")
	}
	return s.jwtValidator.ValidateToken(tokenString)
}

// handleWebSocket handles WebSocket connection requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	player, err := s.authenticate(r)
	if err != nil {
		log.Printf("Rejected connection from %s: %v", r.RemoteAddr, err)
		http.Error(w, fmt.Sprintf("Unauthorized: %v", err), http.StatusUnauthorized)
		return
	}

	log.Printf("Authenticated user: %s (%s) from %s", player.Username, player.ID, r.RemoteAddr)

	// Upgrade HTTP connection to WebSocket
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	// Create connection with authenticated player
	conn := NewConnection(ws, s)
	conn.player = player
	conn.authenticated = true

	// Register connection
	s.connMu.Lock()
	s.connections[conn] = true
	s.connMu.Unlock()

	// Handle connection (blocking)
	conn.Handle()

	// Unregister connection when done
	s.connMu.Lock()
	delete(s.connections, conn)
	s.connMu.Unlock()

	log.Printf("WebSocket connection closed: %s (%s)", player.Username, r.RemoteAddr)
}

// handleHealth reports liveness and the session status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"session": s.session.GetStatus(),
	})
}
