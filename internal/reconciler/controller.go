package reconciler

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/utils/clock"

	"opsharness/internal/patch"
	"opsharness/internal/store"
	"opsharness/pkg/apis/neonforge/v1alpha1"
	"opsharness/pkg/logging"
)

// TestMode selects the controller behaviour for a run.
type TestMode string

const (
	// ModeCreateAndDelete deletes every resource on its first reconcile.
	ModeCreateAndDelete TestMode = "createanddelete"

	// ModeCreateModifyStatus sets status.phase to Created once per resource.
	ModeCreateModifyStatus TestMode = "createmodifystatus"

	// ModeCreateModifyStatusException behaves like ModeCreateModifyStatus and
	// raises a fault on every status change.
	ModeCreateModifyStatusException TestMode = "createmodifystatusexception"
)

// DefaultRequeueDelay is the delay returned by Reconcile when requeue is enabled.
const DefaultRequeueDelay = 5 * time.Second

// TestModes lists the supported modes.
func TestModes() []TestMode {
	return []TestMode{ModeCreateAndDelete, ModeCreateModifyStatus, ModeCreateModifyStatusException}
}

// ParseTestMode resolves a mode name case-insensitively.
func ParseTestMode(name string) (TestMode, error) {
	normalized := TestMode(strings.ToLower(strings.TrimSpace(name)))
	for _, mode := range TestModes() {
		if mode == normalized {
			return mode, nil
		}
	}
	return "", fmt.Errorf("unknown test mode %q", name)
}

// CollectsGarbage reports whether the garbage collector runs in this mode.
func (m TestMode) CollectsGarbage() bool {
	return m == ModeCreateModifyStatus || m == ModeCreateModifyStatusException
}

// ControllerConfig configures a Controller.
type ControllerConfig struct {
	// Requeue makes every Reconcile return a delayed requeue.
	Requeue bool

	// RequeueDelay defaults to DefaultRequeueDelay.
	RequeueDelay time.Duration

	// Clock defaults to the real clock.
	Clock clock.PassiveClock
}

// Controller holds what the mode-specific reconcilers share.
type Controller struct {
	store        store.Store
	requeue      bool
	requeueDelay time.Duration
	clock        clock.PassiveClock

	firstReconcile atomic.Pointer[time.Time]
}

// NewController creates a Controller writing through s.
func NewController(s store.Store, cfg ControllerConfig) *Controller {
	if cfg.RequeueDelay <= 0 {
		cfg.RequeueDelay = DefaultRequeueDelay
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.RealClock{}
	}
	return &Controller{
		store:        s,
		requeue:      cfg.Requeue,
		requeueDelay: cfg.RequeueDelay,
		clock:        cfg.Clock,
	}
}

// FirstReconcileTime returns when Reconcile was first called, if it has been.
func (c *Controller) FirstReconcileTime() (time.Time, bool) {
	t := c.firstReconcile.Load()
	if t == nil {
		return time.Time{}, false
	}
	return *t, true
}

func (c *Controller) recordFirstReconcile() {
	now := c.clock.Now()
	c.firstReconcile.CompareAndSwap(nil, &now)
}

func (c *Controller) result() Result {
	if c.requeue {
		return Result{RequeueAfter: c.requeueDelay}
	}
	return Result{}
}

// For returns the Reconciler implementing mode.
func (c *Controller) For(mode TestMode) (Reconciler, error) {
	switch mode {
	case ModeCreateAndDelete:
		return &createAndDelete{Controller: c}, nil
	case ModeCreateModifyStatus:
		return &modifyStatus{Controller: c}, nil
	case ModeCreateModifyStatusException:
		return &modifyStatusException{modifyStatus: modifyStatus{Controller: c}}, nil
	default:
		return nil, fmt.Errorf("unknown test mode %q", mode)
	}
}

func banner(event EventType, name string) {
	var label string
	switch event {
	case EventReconcile:
		label = "RECONCILE"
	case EventDeleted:
		label = "DELETED"
	case EventStatusModified:
		label = "STATUS-MODIFIED"
	}
	logging.Info("Controller", "%s: %s", label, name)
}

// observer implements the handlers that only log.
type observer struct{}

func (observer) Deleted(_ context.Context, obj *v1alpha1.KubeOpsTest) error {
	banner(EventDeleted, obj.Name)
	return nil
}

func (observer) StatusModified(_ context.Context, obj *v1alpha1.KubeOpsTest) error {
	banner(EventStatusModified, obj.Name)
	return nil
}

// createAndDelete removes each resource as soon as it is reconciled.
type createAndDelete struct {
	*Controller
	observer
}

func (r *createAndDelete) Reconcile(ctx context.Context, obj *v1alpha1.KubeOpsTest) (Result, error) {
	banner(EventReconcile, obj.Name)
	r.recordFirstReconcile()

	if err := r.store.Delete(ctx, obj.Name); err != nil {
		if apierrors.IsNotFound(err) {
			logging.Debug("Controller", "Resource %s already deleted", obj.Name)
		} else {
			logging.Error("Controller", err, "Failed to delete %s", obj.Name)
		}
	}

	return r.result(), nil
}

// modifyStatus drives status.phase to Created.
type modifyStatus struct {
	*Controller
	observer
}

func (r *modifyStatus) Reconcile(ctx context.Context, obj *v1alpha1.KubeOpsTest) (Result, error) {
	banner(EventReconcile, obj.Name)
	r.recordFirstReconcile()

	if obj.IsCreated() {
		return r.result(), nil
	}

	ops := patch.StatusPhase(v1alpha1.PhaseCreated).Operations()
	if err := r.store.PatchStatus(ctx, obj.Name, ops); err != nil {
		logging.Error("Controller", err, "Failed to patch status of %s", obj.Name)
	}

	return r.result(), nil
}

// modifyStatusException fails every status change with a fault.
type modifyStatusException struct {
	modifyStatus
}

func (r *modifyStatusException) StatusModified(_ context.Context, obj *v1alpha1.KubeOpsTest) error {
	banner(EventStatusModified, obj.Name)
	return NewFault("TEST EXCEPTION")
}
