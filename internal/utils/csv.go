package utils

import "strings"

// BuildCSV renders header + rows with every field quoted and internal quotes
// doubled. The dashboards' export format quotes unconditionally, so
// encoding/csv (which quotes only when needed) would change the byte shape.
func BuildCSV(header []string, rows [][]string) []byte {
	var b strings.Builder
	writeCSVRow(&b, header)
	for _, row := range rows {
		writeCSVRow(&b, row)
	}
	return []byte(b.String())
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
