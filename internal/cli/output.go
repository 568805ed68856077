package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/wanderoffski/acxbatch/internal/format"
	"github.com/wanderoffski/acxbatch/internal/pipeline"
)

// writeReport renders the produced files as a table in emission order.
// Sizes come from sizeOf; a lookup failure shows "-" rather than failing a
// run that already completed.
func writeReport(w io.Writer, report pipeline.Report, sizeOf func(string) (int64, error)) {
	if len(report.Outputs) == 0 {
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "File", "Size"})

	for _, out := range report.Outputs {
		size := "-"
		if n, err := sizeOf(out.Path); err == nil {
			size = format.Size(n)
		}
		tw.AppendRow(table.Row{out.Index, filepath.Base(out.Path), size})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	fmt.Fprintln(w, tw.Render())
}
