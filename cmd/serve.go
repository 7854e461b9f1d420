package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/nextcloud-mcp/internal/auth"
	"github.com/teemow/nextcloud-mcp/internal/config"
	"github.com/teemow/nextcloud-mcp/internal/instrumentation"
	"github.com/teemow/nextcloud-mcp/internal/nextcloud"
	"github.com/teemow/nextcloud-mcp/internal/resources"
	"github.com/teemow/nextcloud-mcp/internal/server"
	"github.com/teemow/nextcloud-mcp/internal/tools/calendar_tools"
	"github.com/teemow/nextcloud-mcp/internal/tools/contacts_tools"
	"github.com/teemow/nextcloud-mcp/internal/tools/cookbook_tools"
	"github.com/teemow/nextcloud-mcp/internal/tools/deck_tools"
	"github.com/teemow/nextcloud-mcp/internal/tools/notes_tools"
	"github.com/teemow/nextcloud-mcp/internal/tools/sharing_tools"
	"github.com/teemow/nextcloud-mcp/internal/tools/tables_tools"
	"github.com/teemow/nextcloud-mcp/internal/tools/webdav_tools"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

func newServeCmd() *cobra.Command {
	var (
		debugMode bool
		transport string
		httpAddr  string
		authMode  string
		yolo      bool
		baseURL   string
		// Metrics server configuration
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server to provide Nextcloud
integration tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport

Authentication Modes:
  static (default):
    A shared client is built at startup from NEXTCLOUD_HOST,
    NEXTCLOUD_USERNAME, and NEXTCLOUD_PASSWORD. All requests act as that
    user. This is the only mode available over stdio.

  session:
    Each request carries nextcloud_host, username, and password query
    parameters supplied by a hosting platform. A fresh client is built
    per request. Requires streamable-http transport.

  oauth:
    Each request carries a bearer token verified against OIDC_ISSUER and
    OIDC_AUDIENCE. With ENABLE_TOKEN_EXCHANGE=true the token is exchanged
    (RFC 8693) for one scoped to Nextcloud before use. Requires
    streamable-http transport and NEXTCLOUD_HOST.

Safety Mode:
  By default, the server operates in read-only mode, providing only safe
  operations. Use --yolo to enable write operations (note deletion, file
  writes, share creation, etc.)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			metricsConfig := MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			}
			return runServe(transport, debugMode, httpAddr, authMode, yolo, baseURL, metricsConfig)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", "", "HTTP server address (for streamable-http transport). Defaults to HOST:PORT env vars (0.0.0.0:8081).")
	cmd.Flags().StringVar(&authMode, "auth-mode", "static", "Authentication mode: static, session, or oauth")
	cmd.Flags().BoolVar(&yolo, "yolo", false, "Enable write operations (note deletion, file writes, share creation, etc.). Default is read-only mode.")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Public base URL of this server (for OAuth HTTPS validation). Can also use MCP_BASE_URL env var.")

	// Metrics server flags
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(transport string, debugMode bool, httpAddr, authMode string, yolo bool, baseURL string, metricsConfig MetricsConfig) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Logs go to stderr so they never corrupt the stdio transport
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	settings, err := config.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if httpAddr == "" {
		httpAddr = settings.ListenAddr()
	}

	// Load metrics config from environment if not set via flags
	if metricsConfig.Addr == "" || metricsConfig.Addr == ":9090" {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			metricsConfig.Addr = addr
		}
	}
	if os.Getenv("METRICS_ENABLED") == "false" {
		metricsConfig.Enabled = false
	}

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Error("instrumentation shutdown failed", "error", err)
		}
	}()

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if transport != "stdio" && metricsConfig.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("metrics server shutdown failed", "error", err)
			}
		}()
	}

	// Build the deployment mode and its supporting auth components
	lifespan, verifier, exchanger, err := buildLifespan(shutdownCtx, authMode, transport, settings, logger)
	if err != nil {
		return err
	}

	resolver := auth.NewResolver(settings, exchanger, logger)

	var (
		metrics *instrumentation.Metrics
		audit   *instrumentation.AuditLogger
	)
	if provider.Enabled() {
		metrics = provider.Metrics()
		audit = instrumentation.NewAuditLoggerWithConfig(logger, instrConfig.AuditLogging)
	}

	serverContext := server.NewServerContext(shutdownCtx, lifespan, settings, resolver, metrics, audit)
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			logger.Error("server context shutdown failed", "error", err)
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("nextcloud-mcp", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
	)

	// readOnly is the inverse of yolo
	readOnly := !yolo

	// Log the mode for visibility (only for non-stdio transports)
	if transport != "stdio" {
		if readOnly {
			log.Println("Starting server in READ-ONLY mode (use --yolo to enable write operations)")
		} else {
			log.Println("Starting server with WRITE operations enabled (--yolo flag is set)")
		}
	}

	// Register all tools and resources
	if err := registerAllTools(mcpSrv, serverContext, readOnly); err != nil {
		return err
	}

	// Start the appropriate server based on transport type
	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, serverContext, verifier, httpAddr, baseURL, metricsConfig, logger)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", transport)
	}
}

// buildLifespan constructs the deployment mode from the --auth-mode flag and
// the settings it requires. OAuth mode also returns the token verifier and,
// when token exchange is enabled, the exchanger.
func buildLifespan(ctx context.Context, authMode, transport string, settings *config.Settings, logger *slog.Logger) (*auth.Lifespan, *auth.Verifier, auth.TokenExchanger, error) {
	switch authMode {
	case "static":
		client, err := nextcloud.FromEnv()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("static mode requires NEXTCLOUD_HOST, NEXTCLOUD_USERNAME, and NEXTCLOUD_PASSWORD: %w", err)
		}
		return auth.StaticLifespan(client), nil, nil, nil

	case "session":
		if transport == "stdio" {
			return nil, nil, nil, fmt.Errorf("session mode requires the streamable-http transport")
		}
		return auth.SessionLifespan(), nil, nil, nil

	case "oauth":
		if transport == "stdio" {
			return nil, nil, nil, fmt.Errorf("oauth mode requires the streamable-http transport")
		}
		if settings.NextcloudHost == "" {
			return nil, nil, nil, fmt.Errorf("oauth mode requires NEXTCLOUD_HOST")
		}

		verifier, err := auth.NewVerifier(ctx, settings.OIDCIssuer, settings.OIDCAudience, logger)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create token verifier: %w", err)
		}

		var exchanger auth.TokenExchanger
		if settings.EnableTokenExchange {
			ex, err := auth.NewExchanger(settings)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("failed to create token exchanger: %w", err)
			}
			exchanger = ex
		}

		return auth.OAuthLifespan(settings.NextcloudHost), verifier, exchanger, nil

	default:
		return nil, nil, nil, fmt.Errorf("unsupported auth mode: %s (supported: static, session, oauth)", authMode)
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

// registerAllTools registers all MCP tools and resources
func registerAllTools(mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Define all tool registrations
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Notes",
			register: func() error {
				return notes_tools.RegisterNotesTools(mcpSrv, sc, readOnly)
			},
		},
		{
			name: "Files",
			register: func() error {
				return webdav_tools.RegisterFilesTools(mcpSrv, sc, readOnly)
			},
		},
		{
			name: "Calendar",
			register: func() error {
				return calendar_tools.RegisterCalendarTools(mcpSrv, sc, readOnly)
			},
		},
		{
			name: "Contacts",
			register: func() error {
				return contacts_tools.RegisterContactsTools(mcpSrv, sc, readOnly)
			},
		},
		{
			name: "Deck",
			register: func() error {
				return deck_tools.RegisterDeckTools(mcpSrv, sc, readOnly)
			},
		},
		{
			name: "Tables",
			register: func() error {
				return tables_tools.RegisterTablesTools(mcpSrv, sc, readOnly)
			},
		},
		{
			name: "Cookbook",
			register: func() error {
				return cookbook_tools.RegisterCookbookTools(mcpSrv, sc, readOnly)
			},
		},
		{
			name: "Sharing",
			register: func() error {
				return sharing_tools.RegisterSharingTools(mcpSrv, sc, readOnly)
			},
		},
		{
			name: "Capabilities Resource",
			register: func() error {
				return resources.RegisterCapabilitiesResource(mcpSrv, sc)
			},
		},
	}

	// Register all tools
	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, verifier *auth.Verifier, addr, baseURL string, metricsConfig MetricsConfig, logger *slog.Logger) error {
	// Determine base URL from flag, environment variable, or auto-detection
	if baseURL == "" {
		baseURL = os.Getenv("MCP_BASE_URL")
	}
	if baseURL == "" {
		// Fall back to auto-detection for local development
		baseURL = fmt.Sprintf("http://%s", addr)
		if addr[0] == ':' {
			baseURL = fmt.Sprintf("http://localhost%s", addr)
		}
		log.Printf("No base URL configured, using auto-detected: %s", baseURL)
		log.Printf("For deployed instances, set --base-url flag or MCP_BASE_URL env var")
	} else {
		log.Printf("Using configured base URL: %s", baseURL)
	}

	httpServer, err := server.NewHTTPServer(mcpSrv, sc, verifier, baseURL)
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	fmt.Printf("Streamable HTTP server starting on %s (auth mode: %s)\n", addr, sc.Lifespan().Mode())
	fmt.Printf("  HTTP endpoint: /mcp\n")
	fmt.Printf("  Health endpoints: /healthz, /readyz\n")
	if metricsConfig.Enabled {
		fmt.Printf("  Metrics endpoint: %s/metrics\n", metricsConfig.Addr)
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.Start(addr); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Println("Shutdown signal received, stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
		fmt.Println("HTTP server stopped normally")
	}

	fmt.Println("HTTP server gracefully stopped")
	return nil
}
