package reconciler

import (
	"k8s.io/apimachinery/pkg/api/equality"

	"opsharness/internal/store"
)

// Translate maps a store watch notification onto a lifecycle event.
//
// Modified notifications become Reconcile when the generation changed and
// StatusModified when only the status changed. Metadata-only updates are
// dropped and reported with ok == false.
func Translate(we store.WatchEvent) (LifecycleEvent, bool) {
	if we.Object == nil {
		return LifecycleEvent{}, false
	}

	ev := LifecycleEvent{
		Name:   we.Object.Name,
		Object: we.Object,
	}

	switch we.Type {
	case store.EventAdded:
		ev.Type = EventReconcile
	case store.EventDeleted:
		ev.Type = EventDeleted
	case store.EventModified:
		old := we.OldObject
		switch {
		case old == nil || old.Generation != we.Object.Generation:
			ev.Type = EventReconcile
		case !equality.Semantic.DeepEqual(old.Status, we.Object.Status):
			ev.Type = EventStatusModified
		default:
			return LifecycleEvent{}, false
		}
	default:
		return LifecycleEvent{}, false
	}

	return ev, true
}
