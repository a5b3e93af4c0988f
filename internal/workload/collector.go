package workload

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/utils/clock"

	"opsharness/internal/store"
	"opsharness/pkg/apis/neonforge/v1alpha1"
	"opsharness/pkg/logging"
)

const (
	// DefaultLifespan is the minimum age of a collected resource.
	DefaultLifespan = 10 * time.Second

	// DefaultCollectInterval is the time between two collection cycles.
	DefaultCollectInterval = 30 * time.Second
)

// CollectorConfig configures a Collector.
type CollectorConfig struct {
	Lifespan time.Duration
	Interval time.Duration

	// Clock defaults to the real clock.
	Clock clock.WithTicker

	// OnCollected, if set, is called for every resource deleted.
	OnCollected func(ctx context.Context, obj *v1alpha1.KubeOpsTest)
}

// Collector deletes resources that outlived their lifespan, in batches.
type Collector struct {
	store  store.Store
	config CollectorConfig

	deleted atomic.Int64
	cycles  atomic.Int64
}

// NewCollector creates a collector deleting from s.
func NewCollector(s store.Store, config CollectorConfig) *Collector {
	if config.Lifespan <= 0 {
		config.Lifespan = DefaultLifespan
	}
	if config.Interval <= 0 {
		config.Interval = DefaultCollectInterval
	}
	if config.Clock == nil {
		config.Clock = clock.RealClock{}
	}

	return &Collector{store: s, config: config}
}

// Run collects on every interval until ctx is cancelled.
func (c *Collector) Run(ctx context.Context) error {
	ticker := c.config.Clock.NewTicker(c.config.Interval)
	defer ticker.Stop()

	logging.Info("Collector", "Deleting resources older than %v every %v", c.config.Lifespan, c.config.Interval)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C():
			n, err := c.Collect(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logging.Error("Collector", err, "Collection cycle aborted after %d deletions", n)
				continue
			}
			logging.Debug("Collector", "Collection cycle deleted %d resources", n)
		}
	}
}

// Collect runs a single cycle and returns the number of resources deleted.
// The first list or delete failure ends the cycle.
func (c *Collector) Collect(ctx context.Context) (int, error) {
	c.cycles.Add(1)

	items, err := c.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list resources: %w", err)
	}

	now := c.config.Clock.Now()
	deleted := 0

	for i := range items {
		item := &items[i]
		if now.Sub(item.CreationTimestamp.Time) < c.config.Lifespan {
			continue
		}

		if err := c.store.Delete(ctx, item.Name); err != nil {
			if apierrors.IsNotFound(err) {
				continue
			}
			return deleted, fmt.Errorf("failed to delete %s: %w", item.Name, err)
		}

		deleted++
		c.deleted.Add(1)
		if c.config.OnCollected != nil {
			c.config.OnCollected(ctx, item)
		}
	}

	return deleted, nil
}

// Deleted returns the total number of resources deleted.
func (c *Collector) Deleted() int64 {
	return c.deleted.Load()
}

// Cycles returns the number of collection cycles started.
func (c *Collector) Cycles() int64 {
	return c.cycles.Load()
}
