package config

import "time"

const (
	DefaultWarmup          = 5 * time.Second
	DefaultCreateInterval  = time.Second
	DefaultLifespan        = 10 * time.Second
	DefaultCollectInterval = 30 * time.Second
	DefaultWorkers         = 4
	DefaultRequeueDelay    = 5 * time.Second
	DefaultPollInterval    = 500 * time.Millisecond
	DefaultSchemaTimeout   = 30 * time.Second
	DefaultEventsNamespace = "default"
)

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() HarnessConfig {
	return HarnessConfig{
		Workload: WorkloadConfig{
			Warmup:          DefaultWarmup,
			CreateInterval:  DefaultCreateInterval,
			Lifespan:        DefaultLifespan,
			CollectInterval: DefaultCollectInterval,
		},
		Dispatcher: DispatcherConfig{
			Workers:      DefaultWorkers,
			RequeueDelay: DefaultRequeueDelay,
		},
		Bootstrap: BootstrapConfig{
			PollInterval:  DefaultPollInterval,
			SchemaTimeout: DefaultSchemaTimeout,
		},
		Events: EventsConfig{
			Namespace: DefaultEventsNamespace,
		},
	}
}
