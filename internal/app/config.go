package app

import (
	"io"

	"opsharness/internal/config"
	"opsharness/internal/reconciler"
)

// Config holds the application configuration
type Config struct {
	// Mode selects the controller behaviour
	Mode reconciler.TestMode

	// Debug settings
	Debug bool

	// Requeue makes every reconcile ask for a delayed requeue
	Requeue bool

	// InMemory replaces the cluster with an in-process store
	InMemory bool

	// Custom configuration path (optional)
	ConfigPath string

	// LogOutput defaults to stdout
	LogOutput io.Writer

	// Harness settings, filled in by NewApplication
	HarnessConfig *config.HarnessConfig
}

// NewConfig creates a new application configuration
func NewConfig(mode reconciler.TestMode, debug, requeue, inMemory bool, configPath string) *Config {
	return &Config{
		Mode:       mode,
		Debug:      debug,
		Requeue:    requeue,
		InMemory:   inMemory,
		ConfigPath: configPath,
	}
}
