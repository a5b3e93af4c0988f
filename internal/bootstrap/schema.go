package bootstrap

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/util/wait"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/yaml"

	"opsharness/internal/store"
	"opsharness/pkg/apis/neonforge/v1alpha1"
	"opsharness/pkg/logging"
)

//go:embed manifests/kubeopstests.neonforge.io.yaml
var crdManifest []byte

const (
	// DefaultPollInterval is how often EnsureSchema checks the CRD conditions.
	DefaultPollInterval = 500 * time.Millisecond

	// DefaultSchemaTimeout bounds the wait for the CRD to become Established.
	DefaultSchemaTimeout = 30 * time.Second
)

// SchemaOptions tunes EnsureSchema.
type SchemaOptions struct {
	PollInterval time.Duration
	Timeout      time.Duration
}

// CRD decodes the embedded CustomResourceDefinition.
func CRD() (*apiextensionsv1.CustomResourceDefinition, error) {
	crd := &apiextensionsv1.CustomResourceDefinition{}
	if err := yaml.UnmarshalStrict(crdManifest, crd); err != nil {
		return nil, fmt.Errorf("failed to decode CRD manifest: %w", err)
	}
	return crd, nil
}

// EnsureSchema creates the CRD unless it exists and waits until it is Established.
func EnsureSchema(ctx context.Context, c client.Client, opts SchemaOptions) error {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultSchemaTimeout
	}

	crd, err := CRD()
	if err != nil {
		return err
	}

	if err := c.Create(ctx, crd); err != nil {
		if !apierrors.IsAlreadyExists(err) {
			return fmt.Errorf("failed to create CRD %s: %w", crd.Name, err)
		}
		logging.Debug("Bootstrap", "CRD %s already registered", crd.Name)
	} else {
		logging.Info("Bootstrap", "Registered CRD %s", crd.Name)
	}

	err = wait.PollUntilContextTimeout(ctx, opts.PollInterval, opts.Timeout, true, func(ctx context.Context) (bool, error) {
		current := &apiextensionsv1.CustomResourceDefinition{}
		if err := c.Get(ctx, client.ObjectKey{Name: crd.Name}, current); err != nil {
			if apierrors.IsNotFound(err) {
				return false, nil
			}
			return false, err
		}
		return IsEstablished(current), nil
	})
	if err != nil {
		return fmt.Errorf("CRD %s not established: %w", crd.Name, err)
	}

	return nil
}

// IsEstablished reports whether the Established condition of crd is true.
func IsEstablished(crd *apiextensionsv1.CustomResourceDefinition) bool {
	for _, cond := range crd.Status.Conditions {
		if cond.Type == apiextensionsv1.Established {
			return cond.Status == apiextensionsv1.ConditionTrue
		}
	}
	return false
}

// Purge deletes every existing KubeOpsTest and returns how many were removed.
func Purge(ctx context.Context, s store.Store) (int, error) {
	items, err := s.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list %s: %w", v1alpha1.Plural, err)
	}

	deleted := 0
	for _, item := range items {
		if err := s.Delete(ctx, item.Name); err != nil {
			if apierrors.IsNotFound(err) {
				continue
			}
			return deleted, fmt.Errorf("failed to delete %s: %w", item.Name, err)
		}
		deleted++
	}

	if deleted > 0 {
		logging.Info("Bootstrap", "Removed %d resources from a previous run", deleted)
	}
	return deleted, nil
}
