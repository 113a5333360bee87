// README: HTTP server; builds the gin engine and registers routes.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chichat/internal/http/handlers"
	"chichat/internal/http/middleware"
)

type ServerDeps struct {
	Chat        handlers.Replier
	Limiter     middleware.Limiter
	CORSOrigins []string
}

type Server struct {
	chat        handlers.Replier
	limiter     middleware.Limiter
	corsOrigins []string
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		chat:        deps.Chat,
		limiter:     deps.Limiter,
		corsOrigins: deps.CORSOrigins,
	}
}

// Routes builds the engine. Rate limiting applies to /api/chat only and is skipped
// when no limiter is configured.
func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery(), middleware.CORS(s.corsOrigins))

	chatHandler := handlers.NewChatHandler(s.chat)
	chat := []gin.HandlerFunc{chatHandler.Chat}
	if s.limiter != nil {
		chat = append([]gin.HandlerFunc{middleware.RateLimit(s.limiter)}, chat...)
	}
	r.POST("/api/chat", chat...)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
