// Package app provides application bootstrap and lifecycle management for
// opsharness.
//
// # Architecture Overview
//
//  1. **Configuration (`config.go`)**: runtime settings from the command line
//  2. **Services (`services.go`)**: store, controller, dispatcher, workload and event recorder construction
//  3. **Bootstrap (`bootstrap.go`)**: logging, configuration loading, cluster preparation
//  4. **Modes (`modes.go`)**: supervision of the concurrent activities of a run
//  5. **Metrics (`metrics.go`)**: optional Prometheus endpoint
//
// # Run Sequence
//
//  1. Load config.yaml from the configuration directory, falling back to defaults
//  2. Build the store: Kubernetes through controller-runtime, or in memory
//  3. Register the CRD unless present and wait for it to be Established
//  4. Delete resources left over from a previous run
//  5. Run the dispatcher, the generator and, in the status modes, the
//     garbage collector until the context is cancelled
//
// Step 3 is skipped for the in-memory store, which has no schema.
//
// Example usage:
//
//	cfg := app.NewConfig(reconciler.ModeCreateModifyStatus, false, true, false, "")
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	return application.Run(ctx)
package app
