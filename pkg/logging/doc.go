// Package logging provides structured logging configuration for serverify.
//
// This package wraps log/slog to provide consistent logging across all
// serverify components. It supports configurable log levels and output
// formats, plus an access-log middleware for the HTTP server.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  slog.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("server started", "addr", ":4000")
//
// # Output Formats
//
//   - Text: Human-readable format for local runs
//   - JSON: Structured format for CI log collectors
//
// # Integration
//
// Components accept a *slog.Logger in their constructor or via a setter.
// If no logger is provided they fall back to logging.Nop().
package logging
