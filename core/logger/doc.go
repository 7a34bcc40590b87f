// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) for a command line tool that reports merge
// progress both to humans and to log collectors.
//
// # Run Correlation
//
// Each invocation of the tool processes many file groups concurrently, so all
// log lines belonging to one run are tagged with a short random run ID. The
// WithRunID helper attaches that field once, right after the logger is built.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log = logger.WithRunID(log)
//	log.Info("merge started")
package logger
