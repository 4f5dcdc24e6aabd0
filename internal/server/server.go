package server

import (
	"net/http"
	"sync"
	"time"

	"prompt-party/internal/config"

	"gorm.io/gorm"
)

// Server holds the in-memory store, the optional gorm mirror, the
// websocket hub, and the per-room phase timers.
type Server struct {
	store  *Store
	db     *gorm.DB
	ws     *wsHub
	cfg    config.Config
	images imageGenerator

	timersMu sync.Mutex
	timers   map[string]*time.Timer
}

// New builds a server. conn may be nil; the game runs entirely from
// memory then and the persistence mirror is skipped.
func New(conn *gorm.DB, cfg config.Config) *Server {
	return &Server{
		store:  NewStore(),
		db:     conn,
		ws:     newWSHub(),
		cfg:    cfg,
		images: newImageClient(cfg),
		timers: make(map[string]*time.Timer),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /games", s.handleCreateGame)
	mux.HandleFunc("GET /games/", s.handleGameSubroutes)
	mux.HandleFunc("POST /games/", s.handleGameSubroutes)
	mux.HandleFunc("GET /players/", s.handlePlayerGames)
	mux.HandleFunc("GET /ws/games/", s.handleWebsocket)
	return mux
}
