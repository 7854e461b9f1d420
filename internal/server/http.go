package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/nextcloud-mcp/internal/auth"
)

// HTTPServer exposes the MCP server over streamable HTTP at /mcp, together
// with health endpoints. The middleware chain depends on the deployment
// mode: session mode extracts per-request credentials from query
// parameters, OAuth mode authenticates every request with a bearer token.
type HTTPServer struct {
	mcpServer     *mcpserver.MCPServer
	serverContext *ServerContext
	verifier      *auth.Verifier // OAuth mode only
	health        *HealthChecker
	baseURL       string
	httpServer    *http.Server
}

// NewHTTPServer creates the HTTP transport for the given MCP server.
// The verifier is required in OAuth mode and must be nil otherwise.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, sc *ServerContext, verifier *auth.Verifier, baseURL string) (*HTTPServer, error) {
	mode := sc.Lifespan().Mode()
	if mode == auth.ModeOAuth && verifier == nil {
		return nil, fmt.Errorf("OAuth mode requires a token verifier")
	}
	if mode != auth.ModeOAuth && verifier != nil {
		return nil, fmt.Errorf("token verifier is only valid in OAuth mode")
	}

	return &HTTPServer{
		mcpServer:     mcpServer,
		serverContext: sc,
		verifier:      verifier,
		health:        NewHealthChecker(sc),
		baseURL:       baseURL,
	}, nil
}

// Health returns the health checker so the serve command can flip
// readiness during shutdown.
func (s *HTTPServer) Health() *HealthChecker {
	return s.health
}

// Handler builds the full HTTP handler: /mcp with the mode-specific
// middleware chain plus health endpoints.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	s.health.RegisterHealthEndpoints(mux)

	streamable := mcpserver.NewStreamableHTTPServer(s.mcpServer,
		mcpserver.WithEndpointPath("/mcp"),
	)

	var handler http.Handler = streamable
	switch s.serverContext.Lifespan().Mode() {
	case auth.ModeSession:
		handler = SessionConfigMiddleware(handler)
	case auth.ModeOAuth:
		handler = s.verifier.Middleware(handler)
	}
	handler = s.metricsMiddleware(handler)
	handler = corsMiddleware(handler)

	mux.Handle("/mcp", handler)
	return mux
}

// Start starts the HTTP server in a blocking manner.
func (s *HTTPServer) Start(addr string) error {
	// OAuth 2.1 forbids sending bearer tokens over plaintext HTTP, with a
	// loopback exception for development
	if s.serverContext.Lifespan().Mode() == auth.ModeOAuth {
		if err := validateHTTPSRequirement(s.baseURL); err != nil {
			return err
		}
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.health.SetReady(false)
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// corsMiddleware answers preflight requests and marks every response as
// cross-origin accessible. Hosting platforms embed the /mcp endpoint from
// arbitrary origins; authentication happens per request, so a permissive
// policy does not widen access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Mcp-Session-Id, Mcp-Protocol-Version")
		w.Header().Set("Access-Control-Expose-Headers", "Mcp-Session-Id")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *HTTPServer) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		s.serverContext.Metrics().RecordHTTPRequest(
			r.Context(), r.Method, r.URL.Path, recorder.status, time.Since(start))
	})
}

// validateHTTPSRequirement ensures OAuth 2.1 HTTPS compliance.
// Allows HTTP only for loopback addresses (localhost, 127.0.0.1, ::1).
func validateHTTPSRequirement(baseURL string) error {
	if baseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	if u.Scheme == "http" {
		host := u.Hostname()
		if host != "localhost" && host != "127.0.0.1" && host != "::1" {
			return fmt.Errorf("OAuth 2.1 requires HTTPS for production (got: %s). Use HTTPS or localhost for development", baseURL)
		}
	} else if u.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: %s. Must be http (localhost only) or https", u.Scheme)
	}

	return nil
}
