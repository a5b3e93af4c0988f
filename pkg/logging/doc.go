// Package logging provides the structured logging used across opsharness.
//
// It is a thin layer over Go's slog package: every entry carries a subsystem
// tag so that output from the dispatcher, the workload generator and the
// garbage collector can be told apart when they interleave.
//
// # Log Levels
//   - **Debug**: per-event detail (queue activity, translated watch events)
//   - **Info**: lifecycle banners and start/stop messages
//   - **Warn**: store errors that were swallowed by design
//   - **Error**: failures, including reconciler faults
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stdout)
//
//	logging.Info("Generator", "Created %s", name)
//	logging.Warn("Collector", "Skipping rest of cycle: %v", err)
//	logging.Error("Bootstrap", err, "Failed to register schema")
//
// # Exceptions
//
// Exception reports a fault together with its dynamic type and a stack trace.
// The dispatcher uses it for errors and panics raised by reconciler handlers:
//
//	logging.Exception("Dispatcher", err, stack)
//
// # Controller-Runtime Integration
//
// InitForCLI also installs a logr bridge as the controller-runtime logger so
// informer and cache output goes through the same handler.
package logging
