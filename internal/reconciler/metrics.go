package reconciler

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"opsharness/pkg/logging"
)

const (
	outcomeHandled = "handled"
	outcomeFailed  = "failed"
)

// Metrics tracks dispatch outcomes as Prometheus counters.
type Metrics struct {
	events          *prometheus.CounterVec
	requeues        prometheus.Counter
	droppedRequeues prometheus.Counter
}

// MetricsSummary is a point-in-time copy of the counters.
type MetricsSummary struct {
	Handled         map[EventType]int64
	Failed          map[EventType]int64
	Requeues        int64
	DroppedRequeues int64
}

// NewMetrics creates the counters and registers them on reg. Counters that are
// already registered on reg are reused.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "opsharness",
			Subsystem: "dispatcher",
			Name:      "events_total",
			Help:      "Lifecycle events dispatched to the reconciler, by event and outcome.",
		}, []string{"event", "outcome"}),
		requeues: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "opsharness",
			Subsystem: "dispatcher",
			Name:      "requeues_total",
			Help:      "Requeue directives scheduled.",
		}),
		droppedRequeues: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "opsharness",
			Subsystem: "dispatcher",
			Name:      "requeues_dropped_total",
			Help:      "Requeues dropped because the resource was deleted first.",
		}),
	}

	if reg != nil {
		m.events = register(reg, m.events).(*prometheus.CounterVec)
		m.requeues = register(reg, m.requeues).(prometheus.Counter)
		m.droppedRequeues = register(reg, m.droppedRequeues).(prometheus.Counter)
	}

	return m
}

func register(reg prometheus.Registerer, c prometheus.Collector) prometheus.Collector {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector
		}
		logging.Warn("DispatcherMetrics", "Failed to register collector: %v", err)
	}
	return c
}

// RecordHandled counts a handler call that returned without error.
func (m *Metrics) RecordHandled(event EventType) {
	m.events.WithLabelValues(string(event), outcomeHandled).Inc()
}

// RecordFailed counts a handler call that returned an error or panicked.
func (m *Metrics) RecordFailed(event EventType) {
	m.events.WithLabelValues(string(event), outcomeFailed).Inc()
}

// RecordRequeue counts a scheduled requeue.
func (m *Metrics) RecordRequeue() {
	m.requeues.Inc()
}

// RecordDroppedRequeue counts a requeue that fired after its resource was deleted.
func (m *Metrics) RecordDroppedRequeue() {
	m.droppedRequeues.Inc()
}

// Summary reads the current counter values.
func (m *Metrics) Summary() MetricsSummary {
	s := MetricsSummary{
		Handled:         make(map[EventType]int64),
		Failed:          make(map[EventType]int64),
		Requeues:        counterValue(m.requeues),
		DroppedRequeues: counterValue(m.droppedRequeues),
	}

	for _, event := range []EventType{EventReconcile, EventStatusModified, EventDeleted} {
		s.Handled[event] = counterValue(m.events.WithLabelValues(string(event), outcomeHandled))
		s.Failed[event] = counterValue(m.events.WithLabelValues(string(event), outcomeFailed))
	}

	return s
}

func counterValue(c prometheus.Counter) int64 {
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		return 0
	}
	return int64(metric.GetCounter().GetValue())
}
