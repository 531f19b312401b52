package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"seastrike/db/query"
	mb "seastrike/models/battleship"
	mc "seastrike/models/connection"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

var (
	defaultPort = 8000

	// allowedOrigins = map[string]bool{
	// 	"https://www.allowed_url.com": true,
	// }
	upgrader = websocket.Upgrader{
		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		// probably more than enough but this is a good average size
		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
)

type Server struct {
	port       int
	stage      string
	defaultCfg mb.GameConfig

	SessionManager mc.SessionManager
	GameManager    mb.GameManager

	rp RequestProcessor
}

type Option func(*Server) error

func NewServer(sessionManager mc.SessionManager, gameManager mb.GameManager, q query.Querier, optFuncs ...Option) *Server {
	server := Server{defaultCfg: mb.DefaultGameConfig()}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			panic(err)
		}
	}
	if server.port == 0 {
		server.port = defaultPort
	}

	server.SessionManager = sessionManager
	server.GameManager = gameManager
	server.rp = NewRequestProcessor(sessionManager, gameManager, q, server.defaultCfg)

	return &server
}

func WithPort(port int) Option {
	return func(s *Server) error {
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != StageProd && stage != StageDev {
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		s.stage = stage
		return nil
	}
}

// WithDefaultGameConfig sets the config used when a create-game
// request carries no grid size or roster of its own.
func WithDefaultGameConfig(cfg mb.GameConfig) Option {
	return func(s *Server) error {
		s.defaultCfg = cfg
		return nil
	}
}

func (s *Server) Port() int {
	return s.port
}

func (s *Server) HandleWs(w http.ResponseWriter, r *http.Request) {
	s.rp.ServeHTTP(w, r)
}
