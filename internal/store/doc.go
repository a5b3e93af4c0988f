// Package store provides access to KubeOpsTest resources.
//
// Two implementations of Store exist:
//
//   - NewKubernetesStore talks to a cluster through a controller-runtime client
//     and watches through a controller-runtime informer cache.
//   - NewMemoryStore keeps resources in process. It applies JSON patches the
//     same way the API server does, assigns creation timestamps from an
//     injectable clock and fans watch events out to every subscriber. It backs
//     the unit tests and the --in-memory mode of the CLI.
//
// Neither implementation retries. Conflict, not-found and already-exists
// failures are returned as k8s.io/apimachinery status errors so callers can
// classify them with apierrors.IsConflict and friends and decide whether to
// refetch.
package store
