package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	toolscache "k8s.io/client-go/tools/cache"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	"opsharness/internal/patch"
	"opsharness/pkg/apis/neonforge/v1alpha1"
)

func newFakeKubernetesStore(t *testing.T, objs ...*v1alpha1.KubeOpsTest) Store {
	t.Helper()

	builder := fake.NewClientBuilder().
		WithScheme(NewScheme()).
		WithStatusSubresource(&v1alpha1.KubeOpsTest{})
	for _, obj := range objs {
		builder = builder.WithObjects(obj)
	}
	return NewKubernetesStore(builder.Build(), nil)
}

func TestKubernetesStore_CRUD(t *testing.T) {
	s := newFakeKubernetesStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, v1alpha1.NewKubeOpsTest("r1", v1alpha1.DefaultMessage)))

	got, err := s.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, v1alpha1.DefaultMessage, got.Spec.Message)

	items, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, s.Delete(ctx, "r1"))
	_, err = s.Get(ctx, "r1")
	assert.True(t, apierrors.IsNotFound(err), "expected wrapped NotFound, got %v", err)
}

func TestKubernetesStore_CreateDuplicateSurfacesAlreadyExists(t *testing.T) {
	s := newFakeKubernetesStore(t, v1alpha1.NewKubeOpsTest("r1", "m"))

	err := s.Create(context.Background(), v1alpha1.NewKubeOpsTest("r1", "m"))
	assert.True(t, apierrors.IsAlreadyExists(err), "expected AlreadyExists, got %v", err)
}

func TestKubernetesStore_PatchStatus(t *testing.T) {
	s := newFakeKubernetesStore(t, v1alpha1.NewKubeOpsTest("r2", "m"))
	ctx := context.Background()

	require.NoError(t, s.PatchStatus(ctx, "r2", patch.StatusPhase(v1alpha1.PhaseCreated).Operations()))

	got, err := s.Get(ctx, "r2")
	require.NoError(t, err)
	assert.Equal(t, v1alpha1.PhaseCreated, got.Status.Phase)
}

func TestKubernetesStore_WatchRequiresRestConfig(t *testing.T) {
	s := newFakeKubernetesStore(t)

	_, err := s.Watch(context.Background())
	assert.Error(t, err)
}

func TestEventHandler_TranslatesInformerCallbacks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := newEventSink(ctx)
	handler := newEventHandler(sink)

	oldObj := v1alpha1.NewKubeOpsTest("r1", "m")
	newObj := oldObj.DeepCopy()
	newObj.Status.Phase = v1alpha1.PhaseCreated

	handler.OnAdd(oldObj, false)
	handler.OnUpdate(oldObj, newObj)
	handler.OnDelete(toolscache.DeletedFinalStateUnknown{Key: "r1", Obj: newObj})
	handler.OnAdd("not an object", false)

	ev := receive(t, sink.ch)
	assert.Equal(t, EventAdded, ev.Type)

	ev = receive(t, sink.ch)
	assert.Equal(t, EventModified, ev.Type)
	assert.Equal(t, v1alpha1.PhaseCreated, ev.Object.Status.Phase)
	assert.Empty(t, ev.OldObject.Status.Phase)

	ev = receive(t, sink.ch)
	assert.Equal(t, EventDeleted, ev.Type)
	assert.Equal(t, "r1", ev.Name())

	select {
	case ev := <-sink.ch:
		t.Fatalf("unexpected extra event %+v", ev)
	default:
	}
}
