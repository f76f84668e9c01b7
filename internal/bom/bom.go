package bom

import "time"

// Node is one position in the product structure tree. The same article
// number may appear at several positions (shared components); identity is
// the article number plus the path from the root.
type Node struct {
	Article     string  `json:"article"`
	Description string  `json:"description,omitempty"`
	Level       int     `json:"level"`
	Quantity    float64 `json:"quantity,omitempty"`

	// Synthetic marks the container root created when the input has more
	// than one level-0 row.
	Synthetic bool `json:"synthetic,omitempty"`

	Parent   *Node   `json:"-"`
	Children []*Node `json:"children,omitempty"`

	// Batches is the node's own batch set, ascending by timestamp.
	Batches []*BatchRecord `json:"batches,omitempty"`

	// Subtree is the union of Batches with all descendants' aggregates.
	Subtree []*BatchRecord `json:"-"`

	SubtreeBatches int `json:"subtree_batches,omitempty"`
}

// RecordSource identifies which input schema a batch record came from.
type RecordSource string

const (
	SourceWarehouseLog RecordSource = "warehouse_log"
	SourceTraceSearch  RecordSource = "trace_search"
)

// BatchRecord is one lot transaction for an article. Records are shared by
// reference between tree nodes and the index; no node owns one exclusively.
type BatchRecord struct {
	Batch     string       `json:"batch"`
	Article   string       `json:"article"`
	Quantity  float64      `json:"quantity,omitempty"`
	TxType    string       `json:"tx_type,omitempty"`
	Timestamp time.Time    `json:"timestamp,omitzero"`
	Source    RecordSource `json:"source"`
}

// Key is the deduplication identity of a record.
func (r *BatchRecord) Key() string {
	return r.Article + "\x00" + r.Batch + "\x00" + r.TxType + "\x00" + r.Timestamp.Format(time.RFC3339)
}

// SearchResult is one row of a traceability search export: supplementary
// evidence that the queried batch touched the matched article.
type SearchResult struct {
	Query   string `json:"query"`
	Article string `json:"article"`
	Path    string `json:"path,omitempty"`
}

// WarningKind classifies recoverable anomalies found during a build.
type WarningKind string

const (
	WarnUnknownFormat   WarningKind = "unknown_format"
	WarnMissingColumn   WarningKind = "missing_column"
	WarnInvalidNumber   WarningKind = "invalid_number"
	WarnInvalidDate     WarningKind = "invalid_date"
	WarnLevelJump       WarningKind = "level_jump"
	WarnMultiRoot       WarningKind = "multiple_roots"
	WarnOutlineFallback WarningKind = "outline_fallback"
	WarnNoTraceSource   WarningKind = "no_trace_source"
)

// Warning is a recoverable anomaly recorded against the final model. Row is
// the 1-based source row, 0 for file-level warnings.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	File    string      `json:"file,omitempty"`
	Row     int         `json:"row,omitempty"`
	Message string      `json:"message"`
}
