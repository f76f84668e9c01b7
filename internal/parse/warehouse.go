package parse

import (
	"fmt"

	"github.com/jskoglund/lottrace/internal/bom"
	"github.com/jskoglund/lottrace/internal/format"
	"github.com/jskoglund/lottrace/internal/tabular"
)

// WarehouseLog parses a classified warehouse-log table into batch records,
// preserving source row order. A row carrying both a batch number and a
// charge number yields one record per lot identifier. The returned map
// holds article descriptions when the log has a description column; the
// structure list may lack them for purchased parts.
func WarehouseLog(t *tabular.Table) ([]*bom.BatchRecord, map[string]string, []bom.Warning, error) {
	cols := format.Resolve(t.Headers)

	var missing []string
	for _, c := range []format.Column{format.ColArticle, format.ColQuantity, format.ColDate, format.ColTxType} {
		if _, ok := cols[c]; !ok {
			missing = append(missing, string(c))
		}
	}
	batchIdx, hasBatch := cols[format.ColBatch]
	chargeIdx, hasCharge := cols[format.ColCharge]
	if !hasBatch && !hasCharge {
		missing = append(missing, string(format.ColBatch))
	}
	if len(missing) > 0 {
		return nil, nil, nil, &MissingColumnError{File: t.Name, Columns: missing}
	}

	var records []*bom.BatchRecord
	var warnings []bom.Warning
	descs := make(map[string]string)
	descIdx, hasDesc := cols[format.ColDescription]

	for i, raw := range t.Rows {
		article := cell(raw, cols[format.ColArticle])
		if article == "" {
			continue
		}
		if hasDesc {
			if d := cell(raw, descIdx); d != "" {
				if _, ok := descs[article]; !ok {
					descs[article] = d
				}
			}
		}

		var lots []string
		if hasBatch {
			if b := cell(raw, batchIdx); b != "" {
				lots = append(lots, b)
			}
		}
		if hasCharge {
			if c := cell(raw, chargeIdx); c != "" && (len(lots) == 0 || c != lots[0]) {
				lots = append(lots, c)
			}
		}
		if len(lots) == 0 {
			continue
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

		ts, err := Date(cell(raw, cols[format.ColDate]))
		if err != nil {
			warnings = append(warnings, bom.Warning{
				Kind:    bom.WarnInvalidDate,
				File:    t.Name,
				Row:     i + 1,
				Message: fmt.Sprintf("transaction date: %v", err),
			})
			continue
		}

		txType := cell(raw, cols[format.ColTxType])
		for _, lot := range lots {
			records = append(records, &bom.BatchRecord{
				Batch:     lot,
				Article:   article,
				Quantity:  qty,
				TxType:    txType,
				Timestamp: ts,
				Source:    bom.SourceWarehouseLog,
			})
		}
	}

	return records, descs, warnings, nil
}
