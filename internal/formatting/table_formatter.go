package formatting

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"opsharness/pkg/apis/neonforge/v1alpha1"
	pkgstrings "opsharness/pkg/strings"
)

// TableFormatter provides rich table output
type TableFormatter struct {
	options Options
}

// FormatResources renders items as a table followed by a total line.
func (f *TableFormatter) FormatResources(w io.Writer, items []v1alpha1.KubeOpsTest) error {
	if len(items) == 0 {
		_, err := fmt.Fprintf(w, "%s\n", f.color(text.FgYellow, "No resources found"))
		return err
	}

	t := f.createTable(w)
	t.AppendHeader(table.Row{
		f.color(text.FgHiCyan, "NAME"),
		f.color(text.FgHiCyan, "PHASE"),
		f.color(text.FgHiCyan, "MESSAGE"),
		f.color(text.FgHiCyan, "AGE"),
	})

	for _, row := range toRows(items, f.options.Now()) {
		phase := row.Phase
		if phase == v1alpha1.PhaseCreated {
			phase = f.color(text.FgGreen, phase)
		}
		t.AppendRow(table.Row{row.Name, phase, pkgstrings.SingleLine(row.Message, pkgstrings.DefaultCellMaxLen), row.Age})
	}

	t.Render()

	_, err := fmt.Fprintf(w, "\n%s %s %s\n",
		f.color(text.FgHiBlue, "Total:"),
		f.color(text.FgHiWhite, fmt.Sprint(len(items))),
		f.color(text.FgHiBlue, "resources"))
	return err
}

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

func (f *TableFormatter) color(c text.Color, s string) string {
	if !f.options.Color {
		return s
	}
	return c.Sprint(s)
}
