// Package logging provides structured logging for the mideair tools.
//
// This package wraps zap with convenience functions for the logging
// patterns used throughout the transmitter: transmission lifecycle events,
// encoded frame dumps, and control-server connection events.
//
// # Log Levels
//
//   - Debug: frame hex dumps, compiled pulse details
//   - Info: transmissions, server connections, state changes
//   - Warn: non-fatal issues (rejected busy sends, dropped connections)
//   - Error: startup failures, hardware access errors
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// When the level argument is empty the MIDEAIR_LOG_LEVEL environment
// variable is consulted; if that is also unset, logging is silent. The
// silent default keeps CLI output clean for scripting.
//
// All logging functions are safe for concurrent use.
package logging
