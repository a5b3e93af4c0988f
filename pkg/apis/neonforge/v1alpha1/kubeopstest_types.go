package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// PhaseCreated marks a resource the controller has observed and acknowledged.
	PhaseCreated = "Created"

	// DefaultMessage is the .spec.message the workload generator writes.
	DefaultMessage = "Hello World!"
)

// KubeOpsTestSpec defines the desired state of KubeOpsTest
type KubeOpsTestSpec struct {
	// Message is an arbitrary payload; the controller never reads it.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// KubeOpsTestStatus defines the observed state of KubeOpsTest
type KubeOpsTestStatus struct {
	// Phase is empty until the controller reconciles the resource, then Created.
	// +kubebuilder:validation:Enum=Created
	Phase string `json:"phase,omitempty" yaml:"phase,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:scope=Cluster
// +kubebuilder:printcolumn:name="Message",type="string",JSONPath=".spec.message"
// +kubebuilder:printcolumn:name="Phase",type="string",JSONPath=".status.phase"
// +kubebuilder:printcolumn:name="Age",type="date",JSONPath=".metadata.creationTimestamp"

// KubeOpsTest is the Schema for the kubeopstests API
type KubeOpsTest struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   KubeOpsTestSpec   `json:"spec,omitempty"`
	Status KubeOpsTestStatus `json:"status,omitempty"`
}

// IsCreated reports whether the controller already moved the resource to PhaseCreated.
func (t *KubeOpsTest) IsCreated() bool {
	return t.Status.Phase == PhaseCreated
}

// +kubebuilder:object:root=true

// KubeOpsTestList contains a list of KubeOpsTest
type KubeOpsTestList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []KubeOpsTest `json:"items"`
}

// NewKubeOpsTest returns a resource with type metadata filled in.
func NewKubeOpsTest(name, message string) *KubeOpsTest {
	return &KubeOpsTest{
		TypeMeta: metav1.TypeMeta{
			APIVersion: GroupVersion.String(),
			Kind:       Kind,
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: name,
		},
		Spec: KubeOpsTestSpec{
			Message: message,
		},
	}
}

func init() {
	SchemeBuilder.Register(&KubeOpsTest{}, &KubeOpsTestList{})
}
