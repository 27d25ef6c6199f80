// Package api provides the HTTP surface of the booksmcp server.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/booksmcp/booksmcp/internal/service/tools"
	"github.com/booksmcp/booksmcp/internal/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const (
	AppTitle       = "MCP Server for Books API"
	AppDescription = "Model Context Protocol server that exposes a Books API for use by AI assistants"

	// shutdownTimeout is how long in-flight requests get to finish once the server is asked to stop.
	shutdownTimeout = 10 * time.Second
)

type ServerOptions struct {
	// Addr is the host:port address to bind the server to
	Addr string

	// Dispatcher executes the tool calls received over both REST and MCP.
	Dispatcher *tools.Dispatcher

	// MCPServer exposes the tool catalog over the Model Context Protocol at /mcp.
	// If nil, the /mcp endpoint is not served.
	MCPServer *server.MCPServer

	OtelProviders *telemetry.Providers
	Logger        *zap.Logger
}

// Server is the booksmcp HTTP server
type Server struct {
	addr   string
	router *gin.Engine

	dispatcher *tools.Dispatcher
	mcpServer  *server.MCPServer

	otelProviders *telemetry.Providers
	logger        *zap.Logger
}

// NewServer initializes a new Gin server for the tool API and the MCP endpoint
func NewServer(opts *ServerOptions) (*Server, error) {
	if opts == nil || opts.Dispatcher == nil {
		return nil, fmt.Errorf("dispatcher must not be nil")
	}

	s := &Server{
		addr:          opts.Addr,
		dispatcher:    opts.Dispatcher,
		mcpServer:     opts.MCPServer,
		otelProviders: opts.OtelProviders,
		logger:        opts.Logger,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	s.router = s.setupRouter()
	return s, nil
}

// Handler returns the HTTP handler serving all endpoints.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server until ctx is cancelled, then shuts it down gracefully.
// It returns nil after a clean shutdown.
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to run the server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down the server: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}

// setupRouter sets up the Gin router with the tool API and the MCP endpoint.
func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), accessLog(s.logger), gin.Recovery())

	// if otel is enabled, setup prometheus metrics endpoint
	if s.otelProviders.IsEnabled() {
		r.Use(otelgin.Middleware(s.otelProviders.ServiceName()))
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.GET("/", s.rootHandler())
	r.GET("/health", s.healthHandler())

	r.GET("/tools", s.listToolsHandler())
	r.GET("/tools/:name", s.getToolHandler())
	r.POST("/tool-calls", s.callToolsHandler())

	if s.mcpServer != nil {
		streamableHTTPServer := server.NewStreamableHTTPServer(s.mcpServer)
		r.Any("/mcp", gin.WrapH(streamableHTTPServer))
	}

	return r
}
