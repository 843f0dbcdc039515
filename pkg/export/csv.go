package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVRenderer writes tables as RFC 4180 CSV. BOM prefixes the output with a
// UTF-8 byte order mark so spreadsheet tools detect the encoding.
type CSVRenderer struct {
	BOM bool
}

// Render writes the header row followed by every data row.
func (r *CSVRenderer) Render(w io.Writer, table Table) error {
	if len(table.Columns) == 0 {
		return ErrNoColumns
	}
	if r.BOM {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("write csv bom: %w", err)
		}
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(table.Headers()); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}
	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i := range record {
			record[i] = table.cell(row, i)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
