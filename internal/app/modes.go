package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"opsharness/internal/reconciler"
	"opsharness/pkg/logging"
)

// runHarness runs the dispatcher, the generator and, when the mode collects
// garbage, the collector until ctx is cancelled.
//
// The activities share nothing but the store and the controller. A failure
// of one of them cancels the others and is returned.
func runHarness(ctx context.Context, config *Config, services *Services) error {
	logging.Info("Harness", "Starting test %s (requeue=%t)", config.Mode, config.Requeue)
	started := time.Now()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return services.Manager.Run(gctx)
	})

	g.Go(func() error {
		return services.Generator.Run(gctx)
	})

	if services.Collector != nil {
		g.Go(func() error {
			return services.Collector.Run(gctx)
		})
	}

	if addr := config.HarnessConfig.Metrics.Address; addr != "" {
		g.Go(func() error {
			return serveMetrics(gctx, addr)
		})
	}

	err := g.Wait()

	reportSummary(services, started)

	if err != nil {
		logging.Error("Harness", err, "Test %s failed", config.Mode)
		return err
	}
	logging.Info("Harness", "Test %s stopped", config.Mode)
	return nil
}

// reportSummary logs what the run achieved.
func reportSummary(services *Services, started time.Time) {
	if first, ok := services.Controller.FirstReconcileTime(); ok {
		logging.Info("Harness", "First reconcile %v after start", first.Sub(started).Round(time.Millisecond))
	} else {
		logging.Info("Harness", "No resource was reconciled")
	}

	summary := services.Manager.Metrics().Summary()
	logging.Info("Harness", "Created %d resources (%d failed)", services.Generator.Created(), services.Generator.Failed())
	for _, event := range []reconciler.EventType{reconciler.EventReconcile, reconciler.EventStatusModified, reconciler.EventDeleted} {
		logging.Info("Harness", "%s: %d handled, %d failed", event, summary.Handled[event], summary.Failed[event])
	}
	logging.Info("Harness", "Requeued %d times (%d dropped after delete)", summary.Requeues, summary.DroppedRequeues)

	states := make(map[reconciler.ResourceState]int)
	failing := 0
	statuses := services.Manager.GetAllStatuses()
	for _, status := range statuses {
		states[status.State]++
		if status.LastError != "" {
			failing++
		}
	}
	logging.Info("Harness", "%d live resources tracked: %d idle, %d requeue scheduled, %d reconciling, %d with a handler error",
		len(statuses), states[reconciler.StateIdle], states[reconciler.StateRequeueScheduled], states[reconciler.StateReconciling], failing)

	if services.Collector != nil {
		logging.Info("Harness", "Collected %d resources in %d cycles", services.Collector.Deleted(), services.Collector.Cycles())
	}
}
