package store

import (
	"context"
	"sync"

	jsonpatch "gomodules.xyz/jsonpatch/v2"

	"opsharness/pkg/apis/neonforge/v1alpha1"
)

// EventType is the kind of a watch notification.
type EventType string

const (
	// EventAdded is sent for new resources and for every resource present when a watch starts.
	EventAdded EventType = "Added"

	// EventModified is sent for any change to an existing resource.
	EventModified EventType = "Modified"

	// EventDeleted is sent once a resource is gone.
	EventDeleted EventType = "Deleted"
)

// WatchEvent is a single watch notification.
type WatchEvent struct {
	Type EventType

	// Object is the current state (the last known state for EventDeleted).
	Object *v1alpha1.KubeOpsTest

	// OldObject is the previous state; only set for EventModified.
	OldObject *v1alpha1.KubeOpsTest
}

// Name returns the name of the resource the event is about.
func (e WatchEvent) Name() string {
	if e.Object == nil {
		return ""
	}
	return e.Object.Name
}

// Store is the CRUD and watch surface over cluster-scoped KubeOpsTest resources.
type Store interface {
	// Create stores obj and fills in server-assigned metadata on it.
	Create(ctx context.Context, obj *v1alpha1.KubeOpsTest) error

	// Get returns the resource called name.
	Get(ctx context.Context, name string) (*v1alpha1.KubeOpsTest, error)

	// List returns every resource, unpaginated.
	List(ctx context.Context) ([]v1alpha1.KubeOpsTest, error)

	// Delete removes the resource called name.
	Delete(ctx context.Context, name string) error

	// PatchStatus applies ops to the status subresource in a single request.
	PatchStatus(ctx context.Context, name string, ops []jsonpatch.JsonPatchOperation) error

	// Watch streams notifications until ctx is cancelled, then closes the channel.
	Watch(ctx context.Context) (<-chan WatchEvent, error)
}

// eventSink decouples producers from a slow consumer. push never blocks, the
// pump goroutine delivers in push order and is the only closer of ch.
type eventSink struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []WatchEvent
	closed  bool
	ch      chan WatchEvent
}

func newEventSink(ctx context.Context) *eventSink {
	s := &eventSink{
		ch: make(chan WatchEvent, 64),
	}
	s.cond = sync.NewCond(&s.mu)

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		s.closed = true
		s.cond.Broadcast()
		s.mu.Unlock()
	}()
	go s.pump(ctx)

	return s
}

func (s *eventSink) push(ev WatchEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.pending = append(s.pending, ev)
	s.cond.Signal()
}

func (s *eventSink) pump(ctx context.Context) {
	defer close(s.ch)

	for {
		s.mu.Lock()
		for len(s.pending) == 0 && !s.closed {
			s.cond.Wait()
		}
		if s.closed {
			s.mu.Unlock()
			return
		}
		ev := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()

		select {
		case s.ch <- ev:
		case <-ctx.Done():
			return
		}
	}
}
