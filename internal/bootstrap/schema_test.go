package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	"opsharness/internal/store"
	"opsharness/pkg/apis/neonforge/v1alpha1"
)

var fastPoll = SchemaOptions{PollInterval: 10 * time.Millisecond, Timeout: 2 * time.Second}

func establishedCRD(t *testing.T) *apiextensionsv1.CustomResourceDefinition {
	t.Helper()
	crd, err := CRD()
	require.NoError(t, err)
	crd.Status.Conditions = []apiextensionsv1.CustomResourceDefinitionCondition{
		{Type: apiextensionsv1.Established, Status: apiextensionsv1.ConditionTrue},
	}
	return crd
}

func TestCRD_MatchesResourceType(t *testing.T) {
	crd, err := CRD()
	require.NoError(t, err)

	assert.Equal(t, v1alpha1.CRDName(), crd.Name)
	assert.Equal(t, v1alpha1.Group, crd.Spec.Group)
	assert.Equal(t, v1alpha1.Kind, crd.Spec.Names.Kind)
	assert.Equal(t, v1alpha1.Plural, crd.Spec.Names.Plural)
	assert.Equal(t, apiextensionsv1.ClusterScoped, crd.Spec.Scope)

	require.Len(t, crd.Spec.Versions, 1)
	version := crd.Spec.Versions[0]
	assert.Equal(t, v1alpha1.Version, version.Name)
	assert.True(t, version.Served)
	assert.True(t, version.Storage)
	require.NotNil(t, version.Subresources)
	assert.NotNil(t, version.Subresources.Status)

	props := version.Schema.OpenAPIV3Schema.Properties
	assert.Equal(t, "string", props["spec"].Properties["message"].Type)
	assert.Equal(t, "string", props["status"].Properties["phase"].Type)
}

func TestEnsureSchema_AlreadyRegistered(t *testing.T) {
	c := fake.NewClientBuilder().
		WithScheme(store.NewScheme()).
		WithObjects(establishedCRD(t)).
		Build()

	require.NoError(t, EnsureSchema(context.Background(), c, fastPoll))
}

func TestEnsureSchema_CreatesAndWaitsForEstablished(t *testing.T) {
	ctx := context.Background()
	c := fake.NewClientBuilder().WithScheme(store.NewScheme()).Build()

	done := make(chan error, 1)
	go func() { done <- EnsureSchema(ctx, c, fastPoll) }()

	crd := &apiextensionsv1.CustomResourceDefinition{}
	require.Eventually(t, func() bool {
		return c.Get(ctx, client.ObjectKey{Name: v1alpha1.CRDName()}, crd) == nil
	}, time.Second, 5*time.Millisecond)

	select {
	case err := <-done:
		t.Fatalf("EnsureSchema returned before the CRD was established: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	crd.Status.Conditions = []apiextensionsv1.CustomResourceDefinitionCondition{
		{Type: apiextensionsv1.Established, Status: apiextensionsv1.ConditionTrue},
	}
	require.NoError(t, c.Update(ctx, crd))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("EnsureSchema did not return after the CRD was established")
	}
}

func TestEnsureSchema_TimesOut(t *testing.T) {
	c := fake.NewClientBuilder().WithScheme(store.NewScheme()).Build()

	err := EnsureSchema(context.Background(), c, SchemaOptions{
		PollInterval: 10 * time.Millisecond,
		Timeout:      50 * time.Millisecond,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not established")
}

func TestIsEstablished(t *testing.T) {
	crd := &apiextensionsv1.CustomResourceDefinition{}
	assert.False(t, IsEstablished(crd))

	crd.Status.Conditions = []apiextensionsv1.CustomResourceDefinitionCondition{
		{Type: apiextensionsv1.NamesAccepted, Status: apiextensionsv1.ConditionTrue},
		{Type: apiextensionsv1.Established, Status: apiextensionsv1.ConditionFalse},
	}
	assert.False(t, IsEstablished(crd))

	crd.Status.Conditions[1].Status = apiextensionsv1.ConditionTrue
	assert.True(t, IsEstablished(crd))
}

func TestPurge(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore(nil)
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, s.Create(ctx, v1alpha1.NewKubeOpsTest(name, v1alpha1.DefaultMessage)))
	}

	s.SetReactor(func(verb store.Verb, name string) error {
		if verb == store.VerbDelete && name == "b" {
			return apierrors.NewNotFound(v1alpha1.GroupVersionResource.GroupResource(), name)
		}
		return nil
	})

	n, err := Purge(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPurge_ListFailure(t *testing.T) {
	s := store.NewMemoryStore(nil)
	s.SetReactor(func(verb store.Verb, _ string) error {
		if verb == store.VerbList {
			return apierrors.NewServiceUnavailable("down")
		}
		return nil
	})

	_, err := Purge(context.Background(), s)
	assert.Error(t, err)
}
