package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// problemColors paints rows whose status is a problem status.
var problemColors = text.Colors{text.FgRed, text.Bold}

// tableRow is one rendered row. Problem rows are painted with problemColors.
type tableRow struct {
	cells   []string
	problem bool
}

// shipmentTable describes a table of shipment data: headers plus the columns that
// hold numbers and read better right aligned.
type shipmentTable struct {
	headers      []string
	rightAligned []int
}

func (st shipmentTable) render(rows []tableRow) string {
	columns := len(st.headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(cellsToRow(st.headers, columns))

	problemRows := make(map[int]bool, len(rows))
	for i, row := range rows {
		tw.AppendRow(cellsToRow(row.cells, columns))
		if row.problem {
			problemRows[i+1] = true
		}
	}
	tw.SetRowPainter(table.RowPainterWithAttributes(func(_ table.Row, attr table.RowAttributes) text.Colors {
		if problemRows[attr.Number] {
			return problemColors
		}
		return nil
	}))

	configs := make([]table.ColumnConfig, columns)
	for i := range configs {
		configs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft}
	}
	for _, col := range st.rightAligned {
		if col >= 0 && col < columns {
			configs[col].Align = text.AlignRight
		}
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// cellsToRow pads or truncates cells to exactly columns entries.
func cellsToRow(cells []string, columns int) table.Row {
	row := make(table.Row, columns)
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	return row
}
