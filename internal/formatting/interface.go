// Package formatting renders KubeOpsTest resources for the command line in
// table, JSON or YAML form.
package formatting

import (
	"fmt"
	"io"
	"strings"
	"time"

	"opsharness/pkg/apis/neonforge/v1alpha1"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"  // JSON output
	FormatYAML  OutputFormat = "yaml"  // YAML output
	FormatTable OutputFormat = "table" // Rich table output
)

// ParseOutputFormat resolves a --output value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatTable:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table, json or yaml)", s)
	}
}

// Options configures the formatter behavior
type Options struct {
	Format OutputFormat
	Color  bool // Enable colored output

	// Now is used to compute ages. Defaults to time.Now.
	Now func() time.Time
}

// Formatter writes resource lists.
type Formatter interface {
	FormatResources(w io.Writer, items []v1alpha1.KubeOpsTest) error
}

// New creates the formatter for options.Format.
func New(options Options) Formatter {
	if options.Now == nil {
		options.Now = time.Now
	}
	switch options.Format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{options: options}
	}
}

// Row is the flattened view of a resource used by every format.
type Row struct {
	Name    string `json:"name"`
	Phase   string `json:"phase"`
	Message string `json:"message"`
	Created string `json:"created"`
	Age     string `json:"age,omitempty"`
}

func toRows(items []v1alpha1.KubeOpsTest, now time.Time) []Row {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		phase := item.Status.Phase
		if phase == "" {
			phase = "-"
		}
		row := Row{
			Name:    item.Name,
			Phase:   phase,
			Message: item.Spec.Message,
			Created: item.CreationTimestamp.UTC().Format(time.RFC3339),
		}
		if !now.IsZero() {
			row.Age = FormatAge(now.Sub(item.CreationTimestamp.Time))
		}
		rows = append(rows, row)
	}
	return rows
}
