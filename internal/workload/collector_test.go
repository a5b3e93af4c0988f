package workload

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	clocktesting "k8s.io/utils/clock/testing"

	"opsharness/internal/store"
	"opsharness/pkg/apis/neonforge/v1alpha1"
)

func create(t *testing.T, s store.Store, name string) {
	t.Helper()
	require.NoError(t, s.Create(context.Background(), v1alpha1.NewKubeOpsTest(name, v1alpha1.DefaultMessage)))
}

func names(t *testing.T, s store.Store) []string {
	t.Helper()
	items, err := s.List(context.Background())
	require.NoError(t, err)
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestCollector_DeletesOnlyExpiredResources(t *testing.T) {
	fc := clocktesting.NewFakeClock(start)
	s := store.NewMemoryStore(fc)
	c := NewCollector(s, CollectorConfig{Lifespan: 10 * time.Second, Clock: fc})

	create(t, s, "old")
	fc.Step(5 * time.Second)
	create(t, s, "young")
	fc.Step(5 * time.Second)

	n, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"young"}, names(t, s))

	// One second short of the lifespan is still too young
	fc.Step(4 * time.Second)
	n, err = c.Collect(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	fc.Step(time.Second)
	n, err = c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Empty(t, names(t, s))
	assert.Equal(t, int64(2), c.Deleted())
	assert.Equal(t, int64(3), c.Cycles())
}

func TestCollector_NotFoundCountsAsSuccess(t *testing.T) {
	fc := clocktesting.NewFakeClock(start)
	s := store.NewMemoryStore(fc)
	c := NewCollector(s, CollectorConfig{Lifespan: time.Second, Clock: fc})

	create(t, s, "a")
	create(t, s, "b")
	fc.Step(time.Minute)

	s.SetReactor(func(verb store.Verb, name string) error {
		if verb == store.VerbDelete && name == "a" {
			return apierrors.NewNotFound(v1alpha1.GroupVersionResource.GroupResource(), name)
		}
		return nil
	})

	n, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"a"}, names(t, s))
}

func TestCollector_FirstErrorAbortsCycle(t *testing.T) {
	fc := clocktesting.NewFakeClock(start)
	s := store.NewMemoryStore(fc)
	c := NewCollector(s, CollectorConfig{Lifespan: time.Second, Clock: fc})

	create(t, s, "a")
	create(t, s, "b")
	fc.Step(time.Minute)

	s.SetReactor(func(verb store.Verb, name string) error {
		if verb == store.VerbDelete && name == "a" {
			return apierrors.NewConflict(v1alpha1.GroupVersionResource.GroupResource(), name, nil)
		}
		return nil
	})

	n, err := c.Collect(context.Background())
	require.Error(t, err)
	assert.True(t, apierrors.IsConflict(err))
	assert.Zero(t, n)
	assert.Equal(t, []string{"a", "b"}, names(t, s))

	// The next cycle retries
	s.SetReactor(nil)
	n, err = c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCollector_ListErrorAbortsCycle(t *testing.T) {
	s := store.NewMemoryStore(nil)
	s.SetReactor(func(verb store.Verb, _ string) error {
		if verb == store.VerbList {
			return apierrors.NewServiceUnavailable("down")
		}
		return nil
	})

	_, err := NewCollector(s, CollectorConfig{}).Collect(context.Background())
	require.Error(t, err)
	assert.True(t, apierrors.IsServiceUnavailable(err))
}

func TestCollector_RunsEveryInterval(t *testing.T) {
	fc := clocktesting.NewFakeClock(start)
	s := store.NewMemoryStore(fc)
	c := NewCollector(s, CollectorConfig{Lifespan: 10 * time.Second, Interval: 30 * time.Second, Clock: fc})

	create(t, s, "a")
	runInBackground(t, c.Run)

	require.Eventually(t, fc.HasWaiters, waitFor, tick)
	fc.Step(30 * time.Second)
	require.Eventually(t, func() bool { return c.Deleted() == 1 }, waitFor, tick)

	create(t, s, "b")
	fc.Step(30 * time.Second)
	require.Eventually(t, func() bool { return c.Cycles() == 2 && c.Deleted() == 2 }, waitFor, tick)
}

func TestNewCollector_Defaults(t *testing.T) {
	c := NewCollector(store.NewMemoryStore(nil), CollectorConfig{})

	assert.Equal(t, DefaultLifespan, c.config.Lifespan)
	assert.Equal(t, DefaultCollectInterval, c.config.Interval)
}

func TestCollector_ReportsCollectedResources(t *testing.T) {
	fc := clocktesting.NewFakeClock(start)
	s := store.NewMemoryStore(fc)

	var collected []string
	c := NewCollector(s, CollectorConfig{
		Lifespan: time.Second,
		Clock:    fc,
		OnCollected: func(_ context.Context, obj *v1alpha1.KubeOpsTest) {
			collected = append(collected, obj.Name)
		},
	})

	create(t, s, "a")
	fc.Step(2 * time.Second)
	create(t, s, "b")

	_, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, collected)
}
