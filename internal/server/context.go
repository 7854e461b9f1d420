package server

import (
	"context"
	"sync"

	"github.com/teemow/nextcloud-mcp/internal/auth"
	"github.com/teemow/nextcloud-mcp/internal/config"
	"github.com/teemow/nextcloud-mcp/internal/instrumentation"
	"github.com/teemow/nextcloud-mcp/internal/nextcloud"
)

// ServerContext holds the server-lifetime state visible to every request
// handler: the deployment mode (lifespan), the resolver that maps requests
// to Nextcloud clients, and the observability plumbing.
type ServerContext struct {
	ctx      context.Context
	cancel   context.CancelFunc
	lifespan *auth.Lifespan
	settings *config.Settings
	resolver *auth.Resolver
	metrics  *instrumentation.Metrics
	audit    *instrumentation.AuditLogger

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context for the given deployment
// mode. The metrics recorder and audit logger may be nil; no-op
// replacements are installed.
func NewServerContext(ctx context.Context, lifespan *auth.Lifespan, settings *config.Settings, resolver *auth.Resolver, metrics *instrumentation.Metrics, audit *instrumentation.AuditLogger) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}
	if audit == nil {
		audit = instrumentation.NewAuditLogger(nil)
	}

	return &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		lifespan: lifespan,
		settings: settings,
		resolver: resolver,
		metrics:  metrics,
		audit:    audit,
	}
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Lifespan returns the deployment mode of this server.
func (sc *ServerContext) Lifespan() *auth.Lifespan {
	return sc.lifespan
}

// Settings returns the process settings.
func (sc *ServerContext) Settings() *config.Settings {
	return sc.settings
}

// Metrics returns the metrics recorder.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// Audit returns the audit logger.
func (sc *ServerContext) Audit() *instrumentation.AuditLogger {
	return sc.audit
}

// ResolveClient resolves the Nextcloud client for the current request and
// records the resolution outcome. The returned release function must be
// called when the request is done with the client.
func (sc *ServerContext) ResolveClient(ctx context.Context) (*nextcloud.Client, func(), error) {
	client, release, err := sc.resolver.Resolve(ctx, sc.lifespan, nil)

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	sc.metrics.RecordAuthResolution(ctx, sc.lifespan.Mode().String(), status)

	return client, release, err
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context. In static mode the shared client
// is closed.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()

	if client := sc.lifespan.SharedClient(); client != nil {
		client.Close()
	}
	return nil
}
