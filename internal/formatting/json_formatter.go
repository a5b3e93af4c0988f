package formatting

import (
	"encoding/json"
	"io"

	"opsharness/pkg/apis/neonforge/v1alpha1"
)

// JSONFormatter provides structured JSON output formatting
type JSONFormatter struct{}

// FormatResources writes the resources as a JSON list object.
func (f *JSONFormatter) FormatResources(w io.Writer, items []v1alpha1.KubeOpsTest) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(asList(items))
}

func asList(items []v1alpha1.KubeOpsTest) *v1alpha1.KubeOpsTestList {
	list := &v1alpha1.KubeOpsTestList{Items: items}
	list.APIVersion = v1alpha1.GroupVersion.String()
	list.Kind = v1alpha1.ListKind
	if list.Items == nil {
		list.Items = []v1alpha1.KubeOpsTest{}
	}
	return list
}
