package tabular

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXReader handles XLSX workbooks via excelize. Only the first sheet is
// read. Row outline (grouping) levels are captured because structure-list
// exports sometimes encode the hierarchy as Excel groups instead of a level
// column.
type XLSXReader struct{}

func (p *XLSXReader) Read(r io.Reader, filename string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{Name: baseName(filename)}, nil
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	t := &Table{Name: baseName(filename)}
	if len(rows) == 0 {
		return t, nil
	}
	t.Headers = rows[0]
	t.Rows = dropEmptyTail(rows[1:])

	// GetRows trims trailing empty cells; pad so column indexes resolved
	// from the header row stay valid.
	for i, row := range t.Rows {
		for len(row) < len(t.Headers) {
			row = append(row, "")
		}
		t.Rows[i] = row
	}

	levels := make([]int, len(t.Rows))
	any := false
	for i := range t.Rows {
		// Data rows start at Excel row 2.
		lvl, err := f.GetRowOutlineLevel(sheet, i+2)
		if err != nil {
			continue
		}
		levels[i] = int(lvl)
		if lvl > 0 {
			any = true
		}
	}
	if any {
		t.OutlineLevels = levels
	}
	return t, nil
}
