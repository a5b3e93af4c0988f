package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"opsharness/internal/bootstrap"
	"opsharness/internal/config"
	"opsharness/pkg/logging"
)

// Application represents the main application structure that bootstraps and
// runs a test.
//
// The Application follows a two-phase initialization pattern:
//  1. Bootstrap phase: Load configuration, initialize logging, build services
//  2. Execution phase: Prepare the cluster and run the workload
//
// Example usage:
//
//	cfg := app.NewConfig(reconciler.ModeCreateAndDelete, true, false, false, "")
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	return application.Run(ctx)
type Application struct {
	config   *Config
	services *Services
}

// NewApplication creates and initializes a new application instance with the
// provided configuration.
//
//  1. Configures logging based on the debug flag
//  2. Loads config.yaml from cfg.ConfigPath, or the default directory
//  3. Builds the store, the controller and the workload
func NewApplication(cfg *Config) (*Application, error) {
	// Configure logging based on debug flag
	appLogLevel := logging.LevelInfo
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.LogOutput != nil {
		logOutput = cfg.LogOutput
	}
	logging.InitForCLI(appLogLevel, logOutput)

	if cfg.HarnessConfig == nil {
		configPath := cfg.ConfigPath
		if configPath == "" {
			configPath = config.GetDefaultConfigPathOrPanic()
		}

		harnessCfg, err := config.LoadConfig(configPath)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load configuration from path: %s", configPath)
			return nil, fmt.Errorf("failed to load configuration from path %s: %w", configPath, err)
		}
		cfg.HarnessConfig = &harnessCfg
	}

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// Services exposes the components of the run.
func (a *Application) Services() *Services {
	return a.services
}

// Run prepares the cluster and executes the test until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if err := a.prepare(ctx); err != nil {
		return err
	}
	return runHarness(ctx, a.config, a.services)
}

// prepare registers the schema and removes resources from earlier runs.
func (a *Application) prepare(ctx context.Context) error {
	harness := a.config.HarnessConfig

	if a.services.Client != nil {
		err := bootstrap.EnsureSchema(ctx, a.services.Client, bootstrap.SchemaOptions{
			PollInterval: harness.Bootstrap.PollInterval,
			Timeout:      harness.Bootstrap.SchemaTimeout,
		})
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to register the test schema")
			return fmt.Errorf("failed to register schema: %w", err)
		}
	}

	if harness.Bootstrap.SkipPurge {
		logging.Info("Bootstrap", "Keeping resources from previous runs")
		return nil
	}

	if _, err := bootstrap.Purge(ctx, a.services.Store); err != nil {
		logging.Error("Bootstrap", err, "Failed to remove resources from previous runs")
		return fmt.Errorf("failed to purge resources: %w", err)
	}
	return nil
}
