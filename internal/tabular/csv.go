package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVReader handles CSV files. Swedish ERP exports commonly use semicolon
// delimiters, so the delimiter is sniffed from the header line.
type CSVReader struct{}

func (p *CSVReader) Read(r io.Reader, filename string) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")) // UTF-8 BOM

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	t := &Table{Name: baseName(filename)}
	if len(records) == 0 {
		return t, nil
	}
	t.Headers = records[0]
	t.Rows = dropEmptyTail(records[1:])
	return t, nil
}

// sniffDelimiter picks the rune occurring most often in the first line.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	s := string(line)
	best, bestCount := ',', strings.Count(s, ",")
	for _, cand := range []rune{';', '\t'} {
		if n := strings.Count(s, string(cand)); n > bestCount {
			best, bestCount = cand, n
		}
	}
	return best
}
