package reconciler

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordHandled(EventReconcile)
	m.RecordHandled(EventReconcile)
	m.RecordFailed(EventStatusModified)
	m.RecordRequeue()
	m.RecordDroppedRequeue()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.events.WithLabelValues("Reconcile", "handled")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.events.WithLabelValues("StatusModified", "failed")))

	s := m.Summary()
	assert.Equal(t, int64(2), s.Handled[EventReconcile])
	assert.Equal(t, int64(1), s.Failed[EventStatusModified])
	assert.Equal(t, int64(0), s.Handled[EventDeleted])
	assert.Equal(t, int64(1), s.Requeues)
	assert.Equal(t, int64(1), s.DroppedRequeues)
}

func TestMetrics_RegisteredOnRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.RecordRequeue()

	n, err := testutil.GatherAndCount(reg, "opsharness_dispatcher_requeues_total")
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMetrics_ReusesAlreadyRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewMetrics(reg)
	second := NewMetrics(reg)

	first.RecordRequeue()
	assert.Equal(t, int64(1), second.Summary().Requeues)
}
