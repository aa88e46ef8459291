package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/agentstation/massfill"
	"github.com/agentstation/massfill/pkg/columns"
)

// SummaryData lays a run summary out as a property table.
func SummaryData(s massfill.Summary, wide bool) Data {
	rows := [][]string{
		{"Data rows", strconv.Itoa(s.DataRows)},
		{"Cell writes", strconv.Itoa(s.Writes)},
		{"Matched", fmt.Sprintf("%d / %d", s.Matched, s.Total)},
		{"Match rate", fmt.Sprintf("%.2f%%", s.MatchRate*100)},
		{"Unmatched", strconv.Itoa(s.Unmatched)},
		{"Absent keys", strconv.Itoa(s.AbsentKeys)},
		{"Product image rows", strconv.Itoa(s.ProductImageRows)},
	}
	if wide {
		rows = append(rows,
			[]string{"Media slots", strconv.Itoa(s.Media.Slots)},
			[]string{"Media extracted", strconv.Itoa(s.Media.Extracted)},
			[]string{"Media non-numeric ids", strconv.Itoa(s.Media.NonNumeric)},
			[]string{"Media duplicates", strconv.Itoa(s.Media.Duplicates)},
			[]string{"Media records", strconv.Itoa(s.MediaRecords)},
		)
	}
	for _, w := range s.Warnings {
		rows = append(rows, []string{"Warning", w})
	}
	for _, o := range s.Outputs {
		rows = append(rows, []string{"Output", o})
	}
	return Data{
		Headers:         []string{"Property", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft},
	}
}

// ColumnsData lists sheet columns with their detected roles. With
// rolesOnly, columns without a role are skipped.
func ColumnsData(cols []columns.Column, rolesOnly bool) Data {
	d := Data{
		Headers:         []string{"#", "Label", "Name", "Role", "Slot"},
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignRight},
	}
	for _, c := range cols {
		if c.Role == columns.RoleNone && rolesOnly {
			continue
		}
		slot := ""
		if c.Slot > 0 {
			slot = strconv.Itoa(c.Slot)
		}
		role := string(c.Role)
		if role == "" {
			role = "-"
		}
		d.Rows = append(d.Rows, []string{strconv.Itoa(c.Position + 1), c.Label, c.Name, role, slot})
	}
	return d
}

// Write renders data in format. Table formats use table when given, the
// raw value otherwise.
func Write(w io.Writer, format Format, raw any, table *Data) error {
	if format.IsTable() && table != nil {
		return NewFormatter(format).Format(w, *table)
	}
	return NewFormatter(format).Format(w, raw)
}
