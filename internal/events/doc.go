// Package events records Kubernetes Events against KubeOpsTest resources.
//
// The harness emits an Event when a controller handler fails and when the
// collector deletes an expired resource, so a run can be followed with
// kubectl get events next to the harness log.
//
// KubeOpsTest is cluster scoped. Its Events are written to a configurable
// namespace, "default" unless set otherwise, which is where kubectl looks
// for Events of cluster-scoped objects.
package events
