// Package logging provides structured logging utilities for the
// nextcloud-mcp server.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - PII sanitization (username anonymization)
//   - Credential and token masking
//   - Consistent attribute naming across the codebase
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithApp(slog.Default(), "notes")
//	logger.Info("listing notes", logging.Status("success"))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("session client created",
//	    logging.UserHash(username))
//
// # Security Considerations
//
// Usernames are hashed to prevent PII leakage while allowing correlation.
// Tokens and passwords are never logged directly.
package logging
