package v1alpha1

import (
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/scheme"
)

const (
	// Group is the API group of the test resource.
	Group = "neonforge.io"

	// Version is the served and stored API version.
	Version = "v1alpha1"

	// Kind is the resource kind.
	Kind = "KubeOpsTest"

	// ListKind is the kind of the list type.
	ListKind = "KubeOpsTestList"

	// Plural is the REST resource name.
	Plural = "kubeopstests"

	// Singular is the singular resource name.
	Singular = "kubeopstest"
)

var (
	// GroupVersion is group version used to register these objects.
	GroupVersion = schema.GroupVersion{Group: Group, Version: Version}

	// GroupVersionResource identifies the resource for dynamic and RBAC use.
	GroupVersionResource = GroupVersion.WithResource(Plural)

	// SchemeBuilder is used to add go types to the GroupVersionKind scheme.
	SchemeBuilder = &scheme.Builder{GroupVersion: GroupVersion}

	// AddToScheme adds the types in this group-version to the given scheme.
	AddToScheme = SchemeBuilder.AddToScheme
)

// CRDName returns the name of the CustomResourceDefinition for the test resource.
func CRDName() string {
	return Plural + "." + Group
}
