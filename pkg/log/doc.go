// Package log provides structured event capture for the bag firmware.
//
// This package defines the Logger interface and Event types for recording
// link frames, connection lifecycle, pairing decisions and storage faults.
// It is separate from operational logging (slog): event capture provides a
// complete machine-readable trace of every access-control decision.
//
// # Basic Usage
//
// Components accept a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.EventLogger = log.NewSlogAdapter(slog.Default())
//
//	// On the device: write to binary file
//	cfg.EventLogger, _ = log.NewFileLogger("/data/bag/events.blog")
//
//	// Both: use MultiLogger
//	cfg.EventLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are captured at three layers:
//   - Link: raw frames (FrameEvent) and connection state changes
//   - Pairing: decisions (DecisionEvent) and pairing state changes
//   - Storage: trust store faults (ErrorEventData)
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with the .blog extension.
// The bag-log CLI tool views and summarizes them.
package log
