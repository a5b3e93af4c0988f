package app

import (
	"context"
	"fmt"

	"k8s.io/utils/clock"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"opsharness/internal/config"
	"opsharness/internal/events"
	"opsharness/internal/reconciler"
	"opsharness/internal/store"
	"opsharness/internal/workload"
	"opsharness/pkg/apis/neonforge/v1alpha1"
	"opsharness/pkg/logging"
)

// Services holds every component of a run.
//
// Field descriptions:
//   - Store: resource store shared by all activities
//   - Client: controller-runtime client, nil for the in-memory store
//   - Controller: shared controller state, including the first reconcile time
//   - Manager: dispatcher feeding watch events to the selected reconciler
//   - Generator: creates one resource per interval
//   - Collector: deletes expired resources; nil when the mode does not collect
//   - Events: records Kubernetes Events; nil for the in-memory store or when disabled
type Services struct {
	Store      store.Store
	Client     client.Client
	Controller *reconciler.Controller
	Manager    *reconciler.Manager
	Generator  *workload.Generator
	Collector  *workload.Collector
	Events     *events.EventGenerator
}

// newKubernetesStore is replaced in tests.
var newKubernetesStore = func() (store.Store, client.Client, error) {
	restConfig, err := store.GetRestConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get Kubernetes config: %w", err)
	}

	c, err := store.NewClient(restConfig)
	if err != nil {
		return nil, nil, err
	}

	return store.NewKubernetesStore(c, restConfig), c, nil
}

// InitializeServices builds the components for cfg.
func InitializeServices(cfg *Config) (*Services, error) {
	harness := cfg.HarnessConfig
	if harness == nil {
		defaults := config.GetDefaultConfig()
		harness = &defaults
	}

	services := &Services{}

	if cfg.InMemory {
		logging.Info("Services", "Using the in-memory store")
		services.Store = store.NewMemoryStore(clock.RealClock{})
	} else {
		s, c, err := newKubernetesStore()
		if err != nil {
			return nil, err
		}
		services.Store = s
		services.Client = c
	}

	services.Controller = reconciler.NewController(services.Store, reconciler.ControllerConfig{
		Requeue:      cfg.Requeue,
		RequeueDelay: harness.Dispatcher.RequeueDelay,
	})

	r, err := services.Controller.For(cfg.Mode)
	if err != nil {
		return nil, err
	}

	managerConfig := reconciler.ManagerConfig{
		WorkerCount: harness.Dispatcher.Workers,
	}
	collectorConfig := workload.CollectorConfig{
		Lifespan: harness.Workload.Lifespan,
		Interval: harness.Workload.CollectInterval,
	}

	if services.Client != nil && !harness.Events.Disabled {
		services.Events = events.NewEventGenerator(services.Client, harness.Events.Namespace, clock.RealClock{})
		managerConfig.OnFault = func(ctx context.Context, obj *v1alpha1.KubeOpsTest, event reconciler.EventType, err error) {
			services.Events.HandlerFailed(ctx, obj, string(event), err)
		}
		collectorConfig.OnCollected = services.Events.Collected
	}

	services.Manager = reconciler.NewManager(services.Store, r, managerConfig)

	services.Generator = workload.NewGenerator(services.Store, workload.GeneratorConfig{
		Warmup:   harness.Workload.Warmup,
		Interval: harness.Workload.CreateInterval,
	})

	if cfg.Mode.CollectsGarbage() {
		services.Collector = workload.NewCollector(services.Store, collectorConfig)
	}

	logging.Debug("Services", "Initialized services for mode %s (requeue=%t)", cfg.Mode, cfg.Requeue)
	return services, nil
}
