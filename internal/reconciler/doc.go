// Package reconciler implements the event dispatcher and the controller under
// test.
//
// # Overview
//
// The Manager consumes a store watch, translates every notification into a
// LifecycleEvent and hands it to a Reconciler:
//
//   - Added, and Modified with a new generation: Reconcile
//   - Modified with only a status change: StatusModified
//   - Modified touching only metadata: dropped
//   - Deleted: Deleted
//
// # Ordering
//
// Events for one resource are processed by at most one worker at a time, in
// the order they were observed. Different resources are processed in
// parallel by a fixed pool of workers.
//
// # Requeue
//
// A Reconcile returning a positive Result.RequeueAfter schedules a synthetic
// Reconcile of the last observed object. A Deleted event arriving first
// cancels it.
//
// # Faults
//
// Errors and panics raised by a handler are logged with their type, message
// and stack trace. They never stop the workers and are not retried.
//
// Example usage:
//
//	ctrl := reconciler.NewController(s, reconciler.ControllerConfig{Requeue: true})
//	r, err := ctrl.For(reconciler.ModeCreateModifyStatus)
//	if err != nil {
//	    return err
//	}
//	manager := reconciler.NewManager(s, r, reconciler.ManagerConfig{})
//	if err := manager.Start(ctx); err != nil {
//	    return fmt.Errorf("failed to start dispatcher: %w", err)
//	}
//	defer manager.Stop()
package reconciler
