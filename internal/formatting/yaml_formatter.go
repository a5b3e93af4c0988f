package formatting

import (
	"io"

	"sigs.k8s.io/yaml"

	"opsharness/pkg/apis/neonforge/v1alpha1"
)

// YAMLFormatter provides YAML output formatting
type YAMLFormatter struct{}

// FormatResources writes the resources as a YAML list object.
func (f *YAMLFormatter) FormatResources(w io.Writer, items []v1alpha1.KubeOpsTest) error {
	data, err := yaml.Marshal(asList(items))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
