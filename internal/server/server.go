package server

import (
	"log/slog"
	"net/http"
	"time"

	"ctchen222/Tic-Tac-Toe-Page/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
)

const sessionCookie = "ttt_session"

var tracer = otel.Tracer("server")

// Server serves the game page and applies clicks to the caller's game.
type Server struct {
	store    *session.Store
	engine   *gin.Engine
	upgrader websocket.Upgrader
}

// NewServer builds the gin engine and registers every route.
func NewServer(store *session.Store) *Server {
	s := &Server{
		store:  store,
		engine: gin.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	s.engine.Use(gin.Recovery(), requestLogger())
	s.RegisterHandlers()
	return s
}

// Engine exposes the underlying handler.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterHandlers() {
	s.engine.GET("/", s.handlePage)
	s.engine.POST("/move", s.handleFormMove)
	s.engine.POST("/reset", s.handleFormReset)
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/ws", s.handleWebSocket)

	api := s.engine.Group("/api")
	api.GET("/state", s.handleAPIState)
	api.POST("/move", s.handleAPIMove)
	api.POST("/reset", s.handleAPIReset)
}

// session returns the caller's session, creating one and setting the cookie
// when the request does not carry a known id.
func (s *Server) session(c *gin.Context) *session.Session {
	return s.resolveSession(c, s.store.GetOrCreate)
}

func (s *Server) resolveSession(c *gin.Context, lookup func(id string) (*session.Session, bool)) *session.Session {
	id, _ := c.Cookie(sessionCookie)
	sess, created := lookup(id)
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, sess.ID, 0, "/", "", false, true)
		slog.DebugContext(c.Request.Context(), "Created session", "session.id", sess.ID)
	}
	return sess
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.InfoContext(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
