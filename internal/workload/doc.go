// Package workload drives load against the reconciler under test.
//
// The Generator creates one KubeOpsTest per tick after a warm-up pause. The
// Collector periodically deletes resources older than a fixed lifespan, in
// batches, racing the controller on purpose.
//
// Both loops log store failures and carry on; they only stop when their
// context is cancelled.
package workload
