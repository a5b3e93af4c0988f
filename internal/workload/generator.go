package workload

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"k8s.io/utils/clock"

	"opsharness/internal/store"
	"opsharness/pkg/apis/neonforge/v1alpha1"
	"opsharness/pkg/logging"
)

const (
	// DefaultWarmup is the pause before the first resource is created.
	DefaultWarmup = 5 * time.Second

	// DefaultCreateInterval is the time between two creations.
	DefaultCreateInterval = time.Second
)

// GeneratorConfig configures a Generator.
type GeneratorConfig struct {
	Warmup   time.Duration
	Interval time.Duration

	// Message is written to spec.message. Defaults to v1alpha1.DefaultMessage.
	Message string

	// Clock defaults to the real clock.
	Clock clock.WithTicker

	// NameFunc defaults to random UUIDs.
	NameFunc func() string
}

// Generator creates a fresh resource on every tick.
type Generator struct {
	store  store.Store
	config GeneratorConfig

	created atomic.Int64
	failed  atomic.Int64
}

// NewGenerator creates a generator writing to s.
func NewGenerator(s store.Store, config GeneratorConfig) *Generator {
	if config.Warmup < 0 {
		config.Warmup = 0
	}
	if config.Interval <= 0 {
		config.Interval = DefaultCreateInterval
	}
	if config.Message == "" {
		config.Message = v1alpha1.DefaultMessage
	}
	if config.Clock == nil {
		config.Clock = clock.RealClock{}
	}
	if config.NameFunc == nil {
		config.NameFunc = func() string { return uuid.New().String() }
	}

	return &Generator{store: s, config: config}
}

// Run blocks until ctx is cancelled.
func (g *Generator) Run(ctx context.Context) error {
	if g.config.Warmup > 0 {
		logging.Info("Generator", "Waiting %v before creating resources", g.config.Warmup)

		timer := g.config.Clock.NewTimer(g.config.Warmup)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C():
		}
	}

	ticker := g.config.Clock.NewTicker(g.config.Interval)
	defer ticker.Stop()

	logging.Info("Generator", "Creating a resource every %v", g.config.Interval)

	for {
		select {
		case <-ctx.Done():
			logging.Info("Generator", "Stopped after creating %d resources", g.created.Load())
			return nil
		case <-ticker.C():
			g.createOne(ctx)
		}
	}
}

func (g *Generator) createOne(ctx context.Context) {
	obj := v1alpha1.NewKubeOpsTest(g.config.NameFunc(), g.config.Message)

	if err := g.store.Create(ctx, obj); err != nil {
		if ctx.Err() != nil {
			return
		}
		g.failed.Add(1)
		logging.Error("Generator", err, "Failed to create %s", obj.Name)
		return
	}

	g.created.Add(1)
	logging.Debug("Generator", "Created %s", obj.Name)
}

// Created returns the number of successful creations.
func (g *Generator) Created() int64 {
	return g.created.Load()
}

// Failed returns the number of failed creations.
func (g *Generator) Failed() int64 {
	return g.failed.Load()
}
