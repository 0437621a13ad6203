package render

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/idlab-discover/drivescore-cli/internal/classify"
)

// PreviewRows is the number of leading result rows shown in the table.
const PreviewRows = 5

// previewCells returns the first PreviewRows rows as table cells, in input order.
func previewCells(rows []classify.Row) [][]string {
	n := len(rows)
	if n > PreviewRows {
		n = PreviewRows
	}
	cells := make([][]string, 0, n)
	for _, r := range rows[:n] {
		cells = append(cells, r.Columns())
	}
	return cells
}

// writeTable renders header and cells with the project's table styling.
func writeTable(w io.Writer, header []string, cells [][]string) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.Off,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					BetweenColumns: tw.On,
				},
			},
		}),
	)

	table.Header(header)
	if err := table.Bulk(cells); err != nil {
		return err
	}
	return table.Render()
}
