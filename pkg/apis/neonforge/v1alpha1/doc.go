// Package v1alpha1 contains API Schema definitions for the neonforge.io v1alpha1 API group.
//
// # API Group: neonforge.io/v1alpha1
//
// ## KubeOpsTest
//
// KubeOpsTest is a cluster-scoped resource used only to drive the reconciliation
// harness. The workload generator creates one per tick and the controller moves
// its status to the Created phase (or deletes it, depending on the test mode).
//
// Example:
//
//	apiVersion: neonforge.io/v1alpha1
//	kind: KubeOpsTest
//	metadata:
//	  name: 3f0c2c6e-7d0e-4a4f-9d39-8f2f1d0c5b1a
//	spec:
//	  message: Hello World!
//	status:
//	  phase: Created
//
// +kubebuilder:object:generate=true
// +groupName=neonforge.io
package v1alpha1
