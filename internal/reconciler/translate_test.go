package reconciler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"opsharness/internal/store"
	"opsharness/pkg/apis/neonforge/v1alpha1"
)

func testObject(name string, generation int64, phase string) *v1alpha1.KubeOpsTest {
	obj := v1alpha1.NewKubeOpsTest(name, v1alpha1.DefaultMessage)
	obj.Generation = generation
	obj.Status.Phase = phase
	return obj
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		event    store.WatchEvent
		wantType EventType
		wantOK   bool
	}{
		{
			name:     "added becomes reconcile",
			event:    store.WatchEvent{Type: store.EventAdded, Object: testObject("a", 1, "")},
			wantType: EventReconcile,
			wantOK:   true,
		},
		{
			name:     "deleted becomes deleted",
			event:    store.WatchEvent{Type: store.EventDeleted, Object: testObject("a", 1, "")},
			wantType: EventDeleted,
			wantOK:   true,
		},
		{
			name: "generation change becomes reconcile",
			event: store.WatchEvent{
				Type:      store.EventModified,
				OldObject: testObject("a", 1, ""),
				Object:    testObject("a", 2, ""),
			},
			wantType: EventReconcile,
			wantOK:   true,
		},
		{
			name: "status change becomes status modified",
			event: store.WatchEvent{
				Type:      store.EventModified,
				OldObject: testObject("a", 1, ""),
				Object:    testObject("a", 1, v1alpha1.PhaseCreated),
			},
			wantType: EventStatusModified,
			wantOK:   true,
		},
		{
			name: "metadata only change is dropped",
			event: store.WatchEvent{
				Type:      store.EventModified,
				OldObject: testObject("a", 1, v1alpha1.PhaseCreated),
				Object: func() *v1alpha1.KubeOpsTest {
					obj := testObject("a", 1, v1alpha1.PhaseCreated)
					obj.Labels = map[string]string{"touched": "true"}
					return obj
				}(),
			},
			wantOK: false,
		},
		{
			name:     "modified without old object becomes reconcile",
			event:    store.WatchEvent{Type: store.EventModified, Object: testObject("a", 1, "")},
			wantType: EventReconcile,
			wantOK:   true,
		},
		{
			name:   "missing object is dropped",
			event:  store.WatchEvent{Type: store.EventAdded},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := Translate(tt.event)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantType, ev.Type)
			assert.Equal(t, "a", ev.Name)
			assert.Same(t, tt.event.Object, ev.Object)
		})
	}
}
