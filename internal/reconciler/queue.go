package reconciler

import (
	"context"
	"sync"
	"time"
)

// workQueue holds lifecycle events awaiting dispatch, in per-resource FIFO order.
//
// Events for one resource are handed out one at a time: while a resource is
// being processed its later events wait in pending, and Done makes the
// resource ready again. Different resources are independent.
type workQueue struct {
	mu sync.Mutex

	// ready holds resource names with pending events, in FIFO order
	ready []string

	// pending holds undelivered events per resource, in arrival order
	pending map[string][]LifecycleEvent

	// processing tracks resources currently being processed
	processing map[string]bool

	// cond is used for blocking Get operations
	cond *sync.Cond

	// shuttingDown indicates the queue is stopping
	shuttingDown bool
}

func newWorkQueue() *workQueue {
	q := &workQueue{
		ready:      make([]string, 0),
		pending:    make(map[string][]LifecycleEvent),
		processing: make(map[string]bool),
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Add appends ev to its resource's pending events.
func (q *workQueue) Add(ev LifecycleEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.shuttingDown {
		return
	}

	q.pending[ev.Name] = append(q.pending[ev.Name], ev)

	// A resource is listed in ready at most once and never while processing
	if len(q.pending[ev.Name]) == 1 && !q.processing[ev.Name] {
		q.ready = append(q.ready, ev.Name)
		q.cond.Signal()
	}
}

// Get retrieves the oldest event of the next ready resource, blocking if necessary.
// It returns false after Shutdown or once ctx is done, even if events are pending.
func (q *workQueue) Get(ctx context.Context) (LifecycleEvent, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.ready) == 0 && !q.shuttingDown {
		select {
		case <-ctx.Done():
			return LifecycleEvent{}, false
		default:
		}

		// Wake the cond wait if the context is cancelled. Closing done makes
		// the helper goroutine exit after a normal wakeup.
		done := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
				q.mu.Lock()
				q.cond.Broadcast()
				q.mu.Unlock()
			case <-done:
			}
		}()

		q.cond.Wait()
		close(done)

		select {
		case <-ctx.Done():
			return LifecycleEvent{}, false
		default:
		}
	}

	// Undelivered events are abandoned once the queue stops
	if q.shuttingDown || ctx.Err() != nil {
		return LifecycleEvent{}, false
	}

	name := q.ready[0]
	q.ready = q.ready[1:]

	events := q.pending[name]
	ev := events[0]
	if len(events) == 1 {
		delete(q.pending, name)
	} else {
		q.pending[name] = events[1:]
	}

	q.processing[name] = true
	return ev, true
}

// Done marks the resource of ev as no longer processing.
func (q *workQueue) Done(ev LifecycleEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.processing, ev.Name)

	if len(q.pending[ev.Name]) > 0 {
		q.ready = append(q.ready, ev.Name)
		q.cond.Signal()
	}
}

// Len returns the number of pending events across all resources.
func (q *workQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	for _, events := range q.pending {
		n += len(events)
	}
	return n
}

// Shutdown stops the queue.
func (q *workQueue) Shutdown() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.shuttingDown = true
	q.cond.Broadcast()
}

// AdmitFunc decides at fire time whether a delayed event is still wanted and
// may replace it with a fresher one. It is responsible for adding the event
// to the queue so that the decision and the add are atomic for the caller.
type AdmitFunc func(ev LifecycleEvent)

// delayedEntry is a pending timer; seq identifies it across replacements.
type delayedEntry struct {
	timer *time.Timer
	seq   uint64
}

// delayedQueue wraps a queue with cancellable delayed delivery.
type delayedQueue struct {
	*workQueue

	mu      sync.Mutex
	timers  map[string]delayedEntry
	seq     uint64
	stopped bool
	admit   AdmitFunc
}

// NewDelayedQueue creates a queue that supports delayed requeuing.
// A nil admit adds delayed events unconditionally.
func NewDelayedQueue(admit AdmitFunc) *delayedQueue {
	d := &delayedQueue{
		workQueue: newWorkQueue(),
		timers:    make(map[string]delayedEntry),
	}
	if admit == nil {
		admit = d.workQueue.Add
	}
	d.admit = admit
	return d
}

// AddAfter schedules ev after delay, replacing any timer pending for the same resource.
func (d *delayedQueue) AddAfter(ev LifecycleEvent, delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if existing, ok := d.timers[ev.Name]; ok {
		existing.timer.Stop()
	}

	d.seq++
	seq := d.seq
	d.timers[ev.Name] = delayedEntry{
		seq: seq,
		timer: time.AfterFunc(delay, func() {
			d.mu.Lock()
			current, ok := d.timers[ev.Name]
			if !ok || current.seq != seq || d.stopped {
				d.mu.Unlock()
				return
			}
			delete(d.timers, ev.Name)
			d.mu.Unlock()

			d.admit(ev)
		}),
	}
}

// Forget cancels the pending timer for name, if any.
// It reports whether a timer was cancelled.
func (d *delayedQueue) Forget(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	entry, ok := d.timers[name]
	if !ok {
		return false
	}
	entry.timer.Stop()
	delete(d.timers, name)
	return true
}

// Pending returns the number of scheduled timers.
func (d *delayedQueue) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.timers)
}

// Shutdown stops the queue and cancels pending timers.
func (d *delayedQueue) Shutdown() {
	d.mu.Lock()
	d.stopped = true
	for _, entry := range d.timers {
		entry.timer.Stop()
	}
	d.timers = make(map[string]delayedEntry)
	d.mu.Unlock()

	d.workQueue.Shutdown()
}
