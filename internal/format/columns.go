package format

import "strings"

// Column is a canonical column key resolved from raw headers.
type Column string

const (
	ColArticle     Column = "article"
	ColDescription Column = "description"
	ColLevel       Column = "level"
	ColQuantity    Column = "quantity"
	ColBatch       Column = "batch"
	ColCharge      Column = "charge"
	ColDate        Column = "date"
	ColTxType      Column = "tx_type"
	ColQuery       Column = "query"
	ColPath        Column = "path"
	ColOrder       Column = "order"
)

// synonyms maps each canonical column to accepted header spellings, Swedish
// first since that is what the known ERP exports use. Order matters: earlier
// entries win.
var synonyms = map[Column][]string{
	ColArticle:     {"artikelnummer", "artikel/operation", "art.nr", "artikel", "article number", "article", "item number"},
	ColDescription: {"artikelbenämning", "benämning", "beskrivning", "description"},
	ColLevel:       {"nivå", "level", "indent", "indentering"},
	ColQuantity:    {"kvantitet", "antal", "quantity", "qty"},
	ColBatch:       {"serienummer/batchnummer", "batchnummer", "batchnr", "serienummer", "batch", "lot"},
	ColCharge:      {"chargenummer", "chargenr", "charge"},
	ColDate:        {"transaktionsdatum", "datum", "transaction date", "date"},
	ColTxType:      {"transaktionstyp", "transaction type", "type"},
	ColQuery:       {"sökterm", "sökt batch", "query", "search term"},
	ColPath:        {"struktursökväg", "sökväg", "matched path", "path"},
	ColOrder:       {"ordernummer", "ordernr", "order"},
}

// resolveOrder fixes the iteration order so resolution is deterministic.
var resolveOrder = []Column{
	ColArticle, ColDescription, ColLevel, ColQuantity,
	ColBatch, ColCharge, ColDate, ColTxType,
	ColQuery, ColPath, ColOrder,
}

// Resolve maps canonical columns to indexes in the raw header row. Exact
// (case-insensitive) matches are tried for every column before any
// substring match, and a header claimed by an exact match is never reused,
// so "Artikelbenämning" cannot shadow "Artikelnummer".
func Resolve(headers []string) map[Column]int {
	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
	}

	out := make(map[Column]int)
	claimed := make(map[int]bool)

	for _, col := range resolveOrder {
		for _, term := range synonyms[col] {
			for i, h := range lower {
				if !claimed[i] && h == term {
					out[col] = i
					claimed[i] = true
					break
				}
			}
			if _, ok := out[col]; ok {
				break
			}
		}
	}

	for _, col := range resolveOrder {
		if _, ok := out[col]; ok {
			continue
		}
		for _, term := range synonyms[col] {
			for i, h := range lower {
				if !claimed[i] && h != "" && strings.Contains(h, term) {
					out[col] = i
					claimed[i] = true
					break
				}
			}
			if _, ok := out[col]; ok {
				break
			}
		}
	}

	return out
}
