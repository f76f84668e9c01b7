// Package parse extracts normalized, order-preserving record sequences from
// classified tables. Missing required columns reject the whole file; a cell
// that fails coercion drops only its row, with a recorded warning.
package parse

import (
	"fmt"
	"strings"
)

// MissingColumnError rejects a file whose required columns are absent.
type MissingColumnError struct {
	File    string
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.File, strings.Join(e.Columns, ", "))
}

// cell returns the trimmed value at idx, or "" for ragged rows.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
