package reconciler

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"k8s.io/utils/clock"
	ctrlmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"

	"opsharness/internal/store"
	"opsharness/pkg/apis/neonforge/v1alpha1"
	"opsharness/pkg/logging"
)

// Manager dispatches lifecycle events from a store watch to a Reconciler.
//
// It manages:
//   - Translation of watch notifications into lifecycle events
//   - A per-resource FIFO queue and a worker pool
//   - Delayed requeues, cancelled when the resource is deleted
//   - Fault isolation and per-resource status tracking
type Manager struct {
	mu sync.RWMutex

	config ManagerConfig

	// source provides the watch stream
	source store.Store

	// reconciler handles every event
	reconciler Reconciler

	// queue is the work queue for lifecycle events
	queue *delayedQueue

	// objects holds the last observed state of every live resource
	objects map[string]*v1alpha1.KubeOpsTest

	// statusTracker tracks dispatch status for each resource
	statusTracker map[string]*ReconcileStatus

	metrics *Metrics
	clock   clock.PassiveClock

	// ctx is the manager's context
	ctx context.Context

	// cancelFunc cancels the manager's context
	cancelFunc context.CancelFunc

	// wg tracks running workers
	wg sync.WaitGroup

	// running indicates if the manager is active
	running bool
}

// NewManager creates a manager feeding events from source to r.
func NewManager(source store.Store, r Reconciler, config ManagerConfig) *Manager {
	// Apply defaults
	if config.WorkerCount <= 0 {
		config.WorkerCount = 4
	}
	if config.Registerer == nil {
		config.Registerer = ctrlmetrics.Registry
	}
	if config.Clock == nil {
		config.Clock = clock.RealClock{}
	}

	m := &Manager{
		config:        config,
		source:        source,
		reconciler:    r,
		objects:       make(map[string]*v1alpha1.KubeOpsTest),
		statusTracker: make(map[string]*ReconcileStatus),
		metrics:       NewMetrics(config.Registerer),
		clock:         config.Clock,
	}
	m.queue = NewDelayedQueue(m.admitRequeue)
	return m
}

// Start opens the watch and begins dispatching.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return nil
	}
	m.ctx, m.cancelFunc = context.WithCancel(ctx)
	m.running = true
	m.mu.Unlock()

	events, err := m.source.Watch(m.ctx)
	if err != nil {
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
		m.cancelFunc()
		return fmt.Errorf("failed to start watch: %w", err)
	}

	// Start event processor
	m.wg.Add(1)
	go m.processWatchEvents(events)

	// Start workers
	for i := 0; i < m.config.WorkerCount; i++ {
		m.wg.Add(1)
		go m.worker(i)
	}

	logging.Info("Dispatcher", "Started with %d workers", m.config.WorkerCount)
	return nil
}

// Run starts the manager and blocks until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) error {
	if err := m.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return m.Stop()
}

// processWatchEvents consumes the watch channel until it closes.
func (m *Manager) processWatchEvents(events <-chan store.WatchEvent) {
	defer m.wg.Done()

	for {
		select {
		case <-m.ctx.Done():
			return

		case we, ok := <-events:
			if !ok {
				return
			}
			m.handleWatchEvent(we)
		}
	}
}

// handleWatchEvent translates and enqueues a single watch notification.
func (m *Manager) handleWatchEvent(we store.WatchEvent) {
	ev, ok := Translate(we)
	if !ok {
		logging.Debug("Dispatcher", "Dropping metadata-only change for %s", we.Name())
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if ev.Type == EventDeleted {
		delete(m.objects, ev.Name)
		if m.queue.Forget(ev.Name) {
			logging.Debug("Dispatcher", "Cancelled pending requeue for %s", ev.Name)
		}
	} else {
		m.objects[ev.Name] = ev.Object
	}

	ev.Timestamp = m.clock.Now()
	m.queue.Add(ev)
}

// admitRequeue turns a fired requeue timer into a Reconcile of the latest
// observed object, unless the resource has been deleted since.
func (m *Manager) admitRequeue(ev LifecycleEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.objects[ev.Name]
	if !ok {
		m.metrics.RecordDroppedRequeue()
		logging.Debug("Dispatcher", "Dropping requeue for deleted resource %s", ev.Name)
		return
	}

	m.queue.workQueue.Add(LifecycleEvent{
		Type:      EventReconcile,
		Name:      ev.Name,
		Object:    obj,
		Timestamp: m.clock.Now(),
		Requeued:  true,
	})
}

// worker processes lifecycle events from the queue.
func (m *Manager) worker(id int) {
	defer m.wg.Done()

	logging.Debug("Dispatcher", "Worker %d started", id)

	for {
		ev, ok := m.queue.Get(m.ctx)
		if !ok {
			logging.Debug("Dispatcher", "Worker %d shutting down", id)
			return
		}

		m.processEvent(ev)
		m.queue.Done(ev)
	}
}

// processEvent calls the handler matching ev. Handler failures are logged and
// never stop the worker.
func (m *Manager) processEvent(ev LifecycleEvent) {
	// Handlers may keep what they are given; the cache keeps its own copy.
	obj := ev.Object.DeepCopy()

	var err error
	switch ev.Type {
	case EventReconcile:
		if ev.Requeued {
			logging.Debug("Dispatcher", "Reconciling %s from requeue", ev.Name)
		}
		m.updateStatus(ev.Name, func(s *ReconcileStatus) {
			s.State = StateReconciling
		})

		var result Result
		err = safeCall(func() error {
			var rerr error
			result, rerr = m.reconciler.Reconcile(m.ctx, obj)
			return rerr
		})

		now := m.clock.Now()
		requeue := err == nil && !result.IsZero()
		m.updateStatus(ev.Name, func(s *ReconcileStatus) {
			s.ReconcileCount++
			s.LastReconcileTime = &now
			if requeue {
				s.State = StateRequeueScheduled
			} else {
				s.State = StateIdle
			}
		})

		if requeue {
			m.queue.AddAfter(LifecycleEvent{Type: EventReconcile, Name: ev.Name}, result.RequeueAfter)
			m.metrics.RecordRequeue()
			logging.Debug("Dispatcher", "Requeuing %s after %v", ev.Name, result.RequeueAfter)
		}

	case EventStatusModified:
		err = safeCall(func() error {
			return m.reconciler.StatusModified(m.ctx, obj)
		})
		m.updateStatus(ev.Name, func(s *ReconcileStatus) {
			s.StatusModifiedCount++
		})

	case EventDeleted:
		err = safeCall(func() error {
			return m.reconciler.Deleted(m.ctx, obj)
		})
		// Deleted is the last event of a resource
		defer m.dropStatus(ev.Name)

	default:
		logging.Warn("Dispatcher", "Unknown event type %q for %s", ev.Type, ev.Name)
		return
	}

	if err != nil {
		m.metrics.RecordFailed(ev.Type)
		m.updateStatus(ev.Name, func(s *ReconcileStatus) {
			s.LastError = err.Error()
		})
		logging.Warn("Dispatcher", "%s handler failed for %s", ev.Type, ev.Name)
		logging.Exception("Dispatcher", err, stackOf(err))
		if m.config.OnFault != nil {
			m.config.OnFault(m.ctx, obj, ev.Type, err)
		}
		return
	}

	m.metrics.RecordHandled(ev.Type)
}

// dropStatus stops tracking name.
func (m *Manager) dropStatus(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.statusTracker, name)
}

// updateStatus applies fn to the tracked status of name.
func (m *Manager) updateStatus(name string, fn func(*ReconcileStatus)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status, ok := m.statusTracker[name]
	if !ok {
		status = &ReconcileStatus{Name: name}
		m.statusTracker[name] = status
	}
	fn(status)
}

// Stop gracefully shuts down the manager.
func (m *Manager) Stop() error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = false
	m.mu.Unlock()

	logging.Info("Dispatcher", "Stopping dispatcher with %d events queued and %d requeues pending",
		m.GetQueueLength(), m.PendingRequeues())

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	m.queue.Shutdown()
	m.wg.Wait()

	logging.Info("Dispatcher", "Dispatcher stopped")
	return nil
}

// GetAllStatuses returns the dispatch status of every live resource, sorted by name.
func (m *Manager) GetAllStatuses() []ReconcileStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	statuses := make([]ReconcileStatus, 0, len(m.statusTracker))
	for _, status := range m.statusTracker {
		statuses = append(statuses, *status)
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Name < statuses[j].Name
	})
	return statuses
}

// GetQueueLength returns the number of events waiting for a worker.
func (m *Manager) GetQueueLength() int {
	return m.queue.Len()
}

// PendingRequeues returns the number of scheduled requeues.
func (m *Manager) PendingRequeues() int {
	return m.queue.Pending()
}

// Metrics returns the dispatcher counters.
func (m *Manager) Metrics() *Metrics {
	return m.metrics
}
