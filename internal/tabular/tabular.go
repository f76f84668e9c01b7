package tabular

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Table is one raw tabular file: a header row plus data rows, in source
// order. Rows may be ragged; readers do not pad or truncate.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string

	// OutlineLevels carries the Excel row grouping level per data row,
	// parallel to Rows. Nil when the container has no outline information.
	OutlineLevels []int
}

// Reader converts raw file bytes into a Table.
type Reader interface {
	Read(r io.Reader, filename string) (*Table, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".csv":      true,
	".xlsx":     true,
	".html":     true,
	".htm":      true,
	".md":       true,
	".markdown": true,
}

// ForFile returns the appropriate reader for a filename.
func ForFile(filename string) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return &CSVReader{}, nil
	case ".xlsx":
		return &XLSXReader{}, nil
	case ".html", ".htm":
		return &HTMLReader{}, nil
	case ".md", ".markdown":
		return &MarkdownReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// baseName strips the extension for use as the table name.
func baseName(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// dropEmptyTail removes trailing rows whose cells are all blank. Excel
// exports routinely carry them.
func dropEmptyTail(rows [][]string) [][]string {
	for len(rows) > 0 {
		last := rows[len(rows)-1]
		empty := true
		for _, c := range last {
			if strings.TrimSpace(c) != "" {
				empty = false
				break
			}
		}
		if !empty {
			break
		}
		rows = rows[:len(rows)-1]
	}
	return rows
}
