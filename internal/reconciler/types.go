package reconciler

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"k8s.io/utils/clock"

	"opsharness/pkg/apis/neonforge/v1alpha1"
)

// EventType is the kind of lifecycle event delivered to a Reconciler.
type EventType string

const (
	// EventReconcile is delivered on add, on spec changes and on requeue.
	EventReconcile EventType = "Reconcile"

	// EventStatusModified is delivered when only the status subresource changed.
	EventStatusModified EventType = "StatusModified"

	// EventDeleted is delivered once the resource is gone.
	EventDeleted EventType = "Deleted"
)

// LifecycleEvent is a translated watch notification for one resource.
type LifecycleEvent struct {
	// Type selects the Reconciler method that handles the event.
	Type EventType

	// Name is the resource name and the ordering key.
	Name string

	// Object is the resource state carried by the event.
	Object *v1alpha1.KubeOpsTest

	// Timestamp is when the event entered the dispatcher.
	Timestamp time.Time

	// Requeued marks a synthetic Reconcile produced by a requeue directive.
	Requeued bool
}

// Result is the requeue directive returned by Reconcile.
// The zero value means no requeue.
type Result struct {
	// RequeueAfter schedules another Reconcile after the delay when positive.
	RequeueAfter time.Duration
}

// IsZero reports whether r requests no requeue.
func (r Result) IsZero() bool {
	return r.RequeueAfter <= 0
}

// Reconciler reacts to lifecycle events of KubeOpsTest resources.
//
// Calls for the same resource are never concurrent and arrive in the order the
// events were observed. Calls for different resources may run in parallel.
type Reconciler interface {
	// Reconcile is called on add, on spec change and on requeue. It must be
	// idempotent: the same resource may be delivered more than once.
	Reconcile(ctx context.Context, obj *v1alpha1.KubeOpsTest) (Result, error)

	// Deleted is called once after the resource has been removed.
	Deleted(ctx context.Context, obj *v1alpha1.KubeOpsTest) error

	// StatusModified is called when only the status subresource changed.
	StatusModified(ctx context.Context, obj *v1alpha1.KubeOpsTest) error
}

// ManagerConfig holds configuration for the Manager.
type ManagerConfig struct {
	// WorkerCount is the number of concurrent dispatch workers.
	// Defaults to 4 if not specified.
	WorkerCount int

	// Registerer receives the dispatcher metrics.
	// Defaults to the controller-runtime metrics registry.
	Registerer prometheus.Registerer

	// Clock stamps events and statuses. Defaults to the real clock.
	Clock clock.PassiveClock

	// OnFault, if set, is called after a handler failed with the object it was given.
	OnFault func(ctx context.Context, obj *v1alpha1.KubeOpsTest, event EventType, err error)
}

// ResourceState is the position of a resource in the per-resource state machine.
// A deleted resource is no longer tracked.
type ResourceState string

const (
	// StateReconciling means a Reconcile call is in progress.
	StateReconciling ResourceState = "Reconciling"

	// StateIdle means the last Reconcile returned no requeue.
	StateIdle ResourceState = "Idle"

	// StateRequeueScheduled means a synthetic Reconcile is pending.
	StateRequeueScheduled ResourceState = "RequeueScheduled"
)

// ReconcileStatus is the dispatcher's view of a single resource.
type ReconcileStatus struct {
	// Name is the name of the resource.
	Name string

	// State describes the current position in the state machine.
	State ResourceState

	// LastReconcileTime is when Reconcile last returned.
	LastReconcileTime *time.Time

	// ReconcileCount is the number of Reconcile calls, requeues included.
	ReconcileCount int

	// StatusModifiedCount is the number of StatusModified calls.
	StatusModifiedCount int

	// LastError is the most recent handler failure, if any.
	LastError string
}
