package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server is the storefront API listener.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// New builds a Server with every storefront route.
func New(addr string, logger *zap.Logger, deps Deps) (*Server, error) {
	router, err := buildRouter(logger, deps)
	if err != nil {
		return nil, err
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          zap.NewStdLog(logger.Named("http")),
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.logger.Info("listening", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readyHandler reports ready once the session backend answers a ping. The
// body also carries the catalog size so a misconfigured CATALOG_FILE shows up.
func readyHandler(storage pinger, products catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if storage == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "session storage not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := storage.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "session storage not reachable"})
			return
		}
		body := gin.H{"status": "ready"}
		if products != nil {
			body["products"] = products.Stats().Total
		}
		c.JSON(http.StatusOK, body)
	}
}
