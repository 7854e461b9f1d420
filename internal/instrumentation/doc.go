// Package instrumentation provides OpenTelemetry instrumentation for the
// nextcloud-mcp server.
//
// # Metrics
//
// Server/HTTP metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//   - active_sessions: Gauge of active MCP sessions
//
// Nextcloud API metrics:
//   - nextcloud_api_operations_total: Counter of Nextcloud API operations by app, operation, status
//   - nextcloud_api_operation_duration_seconds: Histogram of operation durations
//
// Authentication metrics:
//   - auth_resolutions_total: Counter of client resolutions by deployment mode and result
//   - token_exchanges_total: Counter of RFC 8693 token exchange attempts by result
//
// MCP tool metrics:
//   - mcp_tool_invocations_total: Counter of tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of tool execution durations
//
// # Tracing
//
// Spans are created for MCP tool invocations (tool.<name>) and Nextcloud
// API calls (nextcloud.<app>.<operation>).
//
// # Configuration
//
// Instrumentation is configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: nextcloud-mcp)
package instrumentation
