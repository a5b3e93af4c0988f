package config

import "time"

// HarnessConfig is the top-level configuration structure for opsharness.
type HarnessConfig struct {
	Workload   WorkloadConfig   `yaml:"workload"`
	Dispatcher DispatcherConfig `yaml:"dispatcher"`
	Bootstrap  BootstrapConfig  `yaml:"bootstrap"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Events     EventsConfig     `yaml:"events"`
}

// WorkloadConfig controls the generator and the garbage collector.
type WorkloadConfig struct {
	Warmup          time.Duration `yaml:"warmup,omitempty"`          // Pause before the first creation (default: 5s)
	CreateInterval  time.Duration `yaml:"createInterval,omitempty"`  // Time between creations (default: 1s)
	Lifespan        time.Duration `yaml:"lifespan,omitempty"`        // Minimum age before collection (default: 10s)
	CollectInterval time.Duration `yaml:"collectInterval,omitempty"` // Time between collection cycles (default: 30s)
}

// DispatcherConfig controls event dispatch to the controller.
type DispatcherConfig struct {
	Workers      int           `yaml:"workers,omitempty"`      // Concurrent dispatch workers (default: 4)
	RequeueDelay time.Duration `yaml:"requeueDelay,omitempty"` // Delay returned with --requeue (default: 5s)
}

// BootstrapConfig controls schema registration.
type BootstrapConfig struct {
	PollInterval  time.Duration `yaml:"pollInterval,omitempty"`  // Established condition polling (default: 500ms)
	SchemaTimeout time.Duration `yaml:"schemaTimeout,omitempty"` // Wait for the CRD to become Established (default: 30s)
	SkipPurge     bool          `yaml:"skipPurge,omitempty"`     // Keep resources from previous runs
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Address string `yaml:"address,omitempty"` // Listen address for /metrics; empty disables it
}

// EventsConfig controls the Kubernetes Events recorded for faults and collections.
type EventsConfig struct {
	Disabled  bool   `yaml:"disabled,omitempty"`  // Do not record Events
	Namespace string `yaml:"namespace,omitempty"` // Namespace receiving the Events (default: default)
}
