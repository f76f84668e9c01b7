// Package format classifies raw tables into the known export schemas by
// matching the header set against required-column signatures.
package format

// Kind is the closed set of recognized table schemas.
type Kind int

const (
	Unknown Kind = iota
	StructureList
	WarehouseLog
	TraceabilitySearch
)

func (k Kind) String() string {
	switch k {
	case StructureList:
		return "structure_list"
	case WarehouseLog:
		return "warehouse_log"
	case TraceabilitySearch:
		return "traceability_search"
	default:
		return "unknown"
	}
}

// Detect classifies a header row. Signatures are checked in fixed order —
// StructureList, WarehouseLog, TraceabilitySearch — and the first match
// wins, which guards the ambiguous overlaps (all three carry an article
// column). Pure function of the header set.
func Detect(headers []string) Kind {
	cols := Resolve(headers)

	if has(cols, ColArticle, ColDescription, ColLevel, ColQuantity) {
		return StructureList
	}
	if has(cols, ColArticle, ColQuantity, ColDate, ColTxType) && hasAny(cols, ColBatch, ColCharge) {
		return WarehouseLog
	}
	if has(cols, ColQuery, ColPath, ColArticle) {
		return TraceabilitySearch
	}
	return Unknown
}

// DetectWithOutline additionally accepts a structure list whose level
// column is replaced by Excel row grouping. Exports made with "group rows"
// instead of a level column are common enough to warrant it.
func DetectWithOutline(headers []string, hasOutline bool) Kind {
	if k := Detect(headers); k != Unknown {
		return k
	}
	if hasOutline {
		cols := Resolve(headers)
		if has(cols, ColArticle, ColDescription, ColQuantity) {
			return StructureList
		}
	}
	return Unknown
}

func has(cols map[Column]int, want ...Column) bool {
	for _, c := range want {
		if _, ok := cols[c]; !ok {
			return false
		}
	}
	return true
}

func hasAny(cols map[Column]int, want ...Column) bool {
	for _, c := range want {
		if _, ok := cols[c]; ok {
			return true
		}
	}
	return false
}
