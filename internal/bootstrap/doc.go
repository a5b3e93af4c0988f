// Package bootstrap prepares a cluster for a test run.
//
// EnsureSchema registers the KubeOpsTest CustomResourceDefinition and waits
// for the API server to report it Established. Purge removes resources left
// over from a previous run. WriteManifests renders the CRD and the
// ClusterRole the harness needs, without touching a cluster.
package bootstrap
