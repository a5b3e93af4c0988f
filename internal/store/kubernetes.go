package store

import (
	"context"
	"encoding/json"
	"fmt"

	jsonpatch "gomodules.xyz/jsonpatch/v2"
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	toolscache "k8s.io/client-go/tools/cache"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/cache"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"opsharness/pkg/apis/neonforge/v1alpha1"
	"opsharness/pkg/logging"
)

// NewScheme returns a scheme with the core types, CRDs and KubeOpsTest registered.
func NewScheme() *runtime.Scheme {
	scheme := runtime.NewScheme()
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(apiextensionsv1.AddToScheme(scheme))
	utilruntime.Must(v1alpha1.AddToScheme(scheme))
	return scheme
}

// GetRestConfig returns the REST config from kubeconfig or the in-cluster environment.
func GetRestConfig() (*rest.Config, error) {
	return ctrl.GetConfig()
}

// NewClient creates a controller-runtime client using NewScheme.
func NewClient(restConfig *rest.Config) (client.Client, error) {
	c, err := client.New(restConfig, client.Options{
		Scheme: NewScheme(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes client: %w", err)
	}
	return c, nil
}

// kubernetesStore implements Store against the Kubernetes API.
type kubernetesStore struct {
	client     client.Client
	restConfig *rest.Config
	scheme     *runtime.Scheme
}

// NewKubernetesStore creates a Store backed by c. restConfig is only needed
// for Watch, which builds its own informer cache; it may be nil otherwise.
func NewKubernetesStore(c client.Client, restConfig *rest.Config) Store {
	return &kubernetesStore{
		client:     c,
		restConfig: restConfig,
		scheme:     c.Scheme(),
	}
}

// Create creates a new KubeOpsTest resource.
func (k *kubernetesStore) Create(ctx context.Context, obj *v1alpha1.KubeOpsTest) error {
	if err := k.client.Create(ctx, obj); err != nil {
		return fmt.Errorf("failed to create %s %s: %w", v1alpha1.Kind, obj.Name, err)
	}
	return nil
}

// Get retrieves a specific KubeOpsTest resource.
func (k *kubernetesStore) Get(ctx context.Context, name string) (*v1alpha1.KubeOpsTest, error) {
	obj := &v1alpha1.KubeOpsTest{}
	if err := k.client.Get(ctx, client.ObjectKey{Name: name}, obj); err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", v1alpha1.Kind, name, err)
	}
	return obj, nil
}

// List lists all KubeOpsTest resources in the cluster.
func (k *kubernetesStore) List(ctx context.Context) ([]v1alpha1.KubeOpsTest, error) {
	list := &v1alpha1.KubeOpsTestList{}
	if err := k.client.List(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", v1alpha1.Plural, err)
	}
	return list.Items, nil
}

// Delete deletes a KubeOpsTest resource.
func (k *kubernetesStore) Delete(ctx context.Context, name string) error {
	obj := &v1alpha1.KubeOpsTest{
		ObjectMeta: metav1.ObjectMeta{
			Name: name,
		},
	}
	if err := k.client.Delete(ctx, obj); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", v1alpha1.Kind, name, err)
	}
	return nil
}

// PatchStatus sends ops as one JSON patch against the status subresource.
func (k *kubernetesStore) PatchStatus(ctx context.Context, name string, ops []jsonpatch.JsonPatchOperation) error {
	data, err := json.Marshal(ops)
	if err != nil {
		return fmt.Errorf("failed to encode status patch for %s: %w", name, err)
	}

	obj := &v1alpha1.KubeOpsTest{
		ObjectMeta: metav1.ObjectMeta{
			Name: name,
		},
	}
	if err := k.client.Status().Patch(ctx, obj, client.RawPatch(types.JSONPatchType, data)); err != nil {
		return fmt.Errorf("failed to patch status of %s %s: %w", v1alpha1.Kind, name, err)
	}
	return nil
}

// Watch starts an informer for KubeOpsTest and streams its notifications.
// The informer lists existing resources first, so every live resource is
// reported as EventAdded when the watch starts.
func (k *kubernetesStore) Watch(ctx context.Context) (<-chan WatchEvent, error) {
	if k.restConfig == nil {
		return nil, fmt.Errorf("watch requires a REST config")
	}

	c, err := cache.New(k.restConfig, cache.Options{
		Scheme: k.scheme,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	informer, err := c.GetInformer(ctx, &v1alpha1.KubeOpsTest{})
	if err != nil {
		return nil, fmt.Errorf("failed to get informer for %s: %w", v1alpha1.Kind, err)
	}

	sink := newEventSink(ctx)
	if _, err := informer.AddEventHandler(newEventHandler(sink)); err != nil {
		return nil, fmt.Errorf("failed to add event handler for %s: %w", v1alpha1.Kind, err)
	}

	go func() {
		if err := c.Start(ctx); err != nil {
			logging.Error("KubernetesStore", err, "Cache stopped with error")
		}
	}()

	if !c.WaitForCacheSync(ctx) {
		return nil, fmt.Errorf("failed to sync cache")
	}

	logging.Info("KubernetesStore", "Watching %s", v1alpha1.GroupVersionResource.String())
	return sink.ch, nil
}

// newEventHandler converts informer callbacks into WatchEvents.
func newEventHandler(sink *eventSink) toolscache.ResourceEventHandler {
	return toolscache.ResourceEventHandlerFuncs{
		AddFunc: func(obj interface{}) {
			if o, ok := asKubeOpsTest(obj); ok {
				sink.push(WatchEvent{Type: EventAdded, Object: o})
			}
		},
		UpdateFunc: func(oldObj, newObj interface{}) {
			oldT, okOld := asKubeOpsTest(oldObj)
			newT, okNew := asKubeOpsTest(newObj)
			if okOld && okNew {
				sink.push(WatchEvent{Type: EventModified, Object: newT, OldObject: oldT})
			}
		},
		DeleteFunc: func(obj interface{}) {
			// Handle DeletedFinalStateUnknown for objects deleted while the watch was down
			if tombstone, ok := obj.(toolscache.DeletedFinalStateUnknown); ok {
				obj = tombstone.Obj
			}
			if o, ok := asKubeOpsTest(obj); ok {
				sink.push(WatchEvent{Type: EventDeleted, Object: o})
			}
		},
	}
}

func asKubeOpsTest(obj interface{}) (*v1alpha1.KubeOpsTest, bool) {
	o, ok := obj.(*v1alpha1.KubeOpsTest)
	if !ok {
		logging.Warn("KubernetesStore", "Ignoring watch object of type %T", obj)
		return nil, false
	}
	// Informer objects are shared with the cache.
	return o.DeepCopy(), true
}
