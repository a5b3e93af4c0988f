package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	clocktesting "k8s.io/utils/clock/testing"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/client/interceptor"

	"opsharness/internal/store"
	"opsharness/pkg/apis/neonforge/v1alpha1"
)

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestResource(name string) *v1alpha1.KubeOpsTest {
	obj := v1alpha1.NewKubeOpsTest(name, v1alpha1.DefaultMessage)
	obj.UID = "uid-1234"
	obj.CreationTimestamp = metav1.NewTime(testNow.Add(-12 * time.Second))
	return obj
}

func listEvents(t *testing.T, c client.Client) []corev1.Event {
	t.Helper()
	var list corev1.EventList
	require.NoError(t, c.List(context.Background(), &list))
	return list.Items
}

func TestHandlerFailedCreatesWarning(t *testing.T) {
	c := fake.NewClientBuilder().WithScheme(store.NewScheme()).Build()
	g := NewEventGenerator(c, "", clocktesting.NewFakePassiveClock(testNow))

	g.HandlerFailed(context.Background(), newTestResource("first"), "statusmodified", errors.New("TEST EXCEPTION"))

	events := listEvents(t, c)
	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, DefaultNamespace, ev.Namespace)
	assert.Equal(t, string(EventTypeWarning), ev.Type)
	assert.Equal(t, string(ReasonHandlerFailed), ev.Reason)
	assert.Equal(t, "KubeOpsTest first statusmodified handler failed: TEST EXCEPTION", ev.Message)
	assert.Equal(t, v1alpha1.Kind, ev.InvolvedObject.Kind)
	assert.Equal(t, "first", ev.InvolvedObject.Name)
	assert.Equal(t, Component, ev.Source.Component)
	assert.Equal(t, int32(1), ev.Count)
}

func TestCollectedCreatesNormalEvent(t *testing.T) {
	c := fake.NewClientBuilder().WithScheme(store.NewScheme()).Build()
	g := NewEventGenerator(c, "harness", clocktesting.NewFakePassiveClock(testNow))

	g.Collected(context.Background(), newTestResource("old"))

	events := listEvents(t, c)
	require.Len(t, events, 1)
	assert.Equal(t, "harness", events[0].Namespace)
	assert.Equal(t, string(EventTypeNormal), events[0].Type)
	assert.Equal(t, "KubeOpsTest old deleted at age 12s", events[0].Message)
}

func TestRecordingFailureIsNotFatal(t *testing.T) {
	c := fake.NewClientBuilder().
		WithScheme(store.NewScheme()).
		WithInterceptorFuncs(interceptor.Funcs{
			Create: func(ctx context.Context, c client.WithWatch, obj client.Object, opts ...client.CreateOption) error {
				return errors.New("forbidden")
			},
		}).
		Build()
	g := NewEventGenerator(c, "", nil)

	err := g.ResourceEvent(context.Background(), newTestResource("x"), ReasonCollected, EventData{})
	assert.ErrorContains(t, err, "forbidden")

	// Logged only
	g.HandlerFailed(context.Background(), newTestResource("x"), "reconcile", errors.New("boom"))
}

func TestTemplates(t *testing.T) {
	engine := NewMessageTemplateEngine()

	tests := []struct {
		name     string
		reason   EventReason
		data     EventData
		expected string
	}{
		{
			name:     "failure with error",
			reason:   ReasonHandlerFailed,
			data:     EventData{Name: "a", Operation: "reconcile", Error: "boom"},
			expected: "KubeOpsTest a reconcile handler failed: boom",
		},
		{
			name:     "failure without error",
			reason:   ReasonHandlerFailed,
			data:     EventData{Name: "a", Operation: "deleted"},
			expected: "KubeOpsTest a deleted handler failed",
		},
		{
			name:     "collected without age",
			reason:   ReasonCollected,
			data:     EventData{Name: "b"},
			expected: "KubeOpsTest b deleted",
		},
		{
			name:     "unknown reason",
			reason:   EventReason("Other"),
			data:     EventData{Name: "c"},
			expected: "Event: Other for c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := engine.Render(tt.reason, tt.data); got != tt.expected {
				t.Errorf("Render() = %q, want %q", got, tt.expected)
			}
		})
	}
}
