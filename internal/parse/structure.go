package parse

import (
	"fmt"

	"github.com/jskoglund/lottrace/internal/bom"
	"github.com/jskoglund/lottrace/internal/format"
	"github.com/jskoglund/lottrace/internal/tabular"
)

// StructureRow is one normalized structure-list record. SourceRow is the
// 1-based data row it came from.
type StructureRow struct {
	Level       int
	Article     string
	Description string
	Quantity    float64
	SourceRow   int
}

// Structure parses a classified structure-list table. Output order matches
// source row order; the hierarchy rebuild depends on it.
func Structure(t *tabular.Table) ([]StructureRow, []bom.Warning, error) {
	cols := format.Resolve(t.Headers)

	var missing []string
	for _, c := range []format.Column{format.ColArticle, format.ColDescription, format.ColQuantity} {
		if _, ok := cols[c]; !ok {
			missing = append(missing, string(c))
		}
	}
	_, hasLevel := cols[format.ColLevel]
	if !hasLevel && t.OutlineLevels == nil {
		missing = append(missing, string(format.ColLevel))
	}
	if len(missing) > 0 {
		return nil, nil, &MissingColumnError{File: t.Name, Columns: missing}
	}

	var warnings []bom.Warning
	if !hasLevel {
		warnings = append(warnings, bom.Warning{
			Kind:    bom.WarnOutlineFallback,
			File:    t.Name,
			Message: "no level column; using Excel row grouping levels",
		})
	}

	var rows []StructureRow
	for i, raw := range t.Rows {
		article := cell(raw, cols[format.ColArticle])
		if article == "" {
			continue
		}

		var level int
		if hasLevel {
			var err error
			level, err = Int(cell(raw, cols[format.ColLevel]))
			if err != nil {
				warnings = append(warnings, bom.Warning{
					Kind:    bom.WarnInvalidNumber,
					File:    t.Name,
					Row:     i + 1,
					Message: fmt.Sprintf("level: %v", err),
				})
				continue
			}
		} else if i < len(t.OutlineLevels) {
			level = t.OutlineLevels[i]
		}

		qty := 0.0
		if q := cell(raw, cols[format.ColQuantity]); q != "" {
			var err error
			qty, err = Number(q)
			if err != nil {
				warnings = append(warnings, bom.Warning{
					Kind:    bom.WarnInvalidNumber,
					File:    t.Name,
					Row:     i + 1,
					Message: fmt.Sprintf("quantity: %v", err),
				})
				continue
			}
		}

		rows = append(rows, StructureRow{
			Level:       level,
			Article:     article,
			Description: cell(raw, cols[format.ColDescription]),
			Quantity:    qty,
			SourceRow:   i + 1,
		})
	}

	return rows, warnings, nil
}
