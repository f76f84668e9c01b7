package trace

import (
	"testing"
	"time"

	"github.com/jskoglund/lottrace/internal/bom"
)

func logRec(article, batch, txType string, day int) *bom.BatchRecord {
	return &bom.BatchRecord{
		Batch:     batch,
		Article:   article,
		TxType:    txType,
		Timestamp: time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		Source:    bom.SourceWarehouseLog,
	}
}

func TestIndexBidirectional(t *testing.T) {
	ix := NewIndex([]*bom.BatchRecord{
		logRec("A121", "B55", "Uttag", 10),
		logRec("A110", "B55", "Uttag", 11),
		logRec("A121", "B60", "Inleverans", 12),
	}, nil)

	// Every record's article must resolve its batch and vice versa.
	batches := ix.ArticleBatches("A121")
	if len(batches) != 2 {
		t.Fatalf("expected 2 batches for A121, got %d", len(batches))
	}
	if batches[0].Batch != "B55" || batches[1].Batch != "B60" {
		t.Errorf("expected timestamp order B55,B60, got %s,%s", batches[0].Batch, batches[1].Batch)
	}

	arts := ix.BatchArticles("B55")
	if len(arts) != 2 || arts[0] != "A110" || arts[1] != "A121" {
		t.Fatalf("expected sorted articles [A110 A121], got %v", arts)
	}

	if ix.BatchCount() != 2 {
		t.Errorf("expected 2 distinct batches, got %d", ix.BatchCount())
	}
}

func TestIndexDeduplicatesIdenticalLogRecords(t *testing.T) {
	ix := NewIndex([]*bom.BatchRecord{
		logRec("A121", "B55", "Uttag", 10),
		logRec("A121", "B55", "Uttag", 10),
	}, nil)
	if n := len(ix.ArticleBatches("A121")); n != 1 {
		t.Fatalf("expected 1 record after dedup, got %d", n)
	}
}

func TestIndexKeepsDistinctTransactions(t *testing.T) {
	// Same article and batch but different type or timestamp are distinct.
	ix := NewIndex([]*bom.BatchRecord{
		logRec("A121", "B55", "Inleverans", 10),
		logRec("A121", "B55", "Uttag", 10),
		logRec("A121", "B55", "Uttag", 11),
	}, nil)
	if n := len(ix.ArticleBatches("A121")); n != 3 {
		t.Fatalf("expected 3 records, got %d", n)
	}
}

func TestIndexLogAuthoritativeOverSearch(t *testing.T) {
	ix := NewIndex(
		[]*bom.BatchRecord{logRec("A121", "B55", "Uttag", 10)},
		[]bom.SearchResult{
			{Query: "B55", Article: "A121", Path: "A100/A120/A121"}, // covered by the log, discarded
			{Query: "B77", Article: "A130", Path: "A100/A130"},      // only in the search export
		},
	)

	recs := ix.ArticleBatches("A121")
	if len(recs) != 1 || recs[0].Source != bom.SourceWarehouseLog {
		t.Fatalf("expected the single log record to win, got %+v", recs)
	}

	recs = ix.ArticleBatches("A130")
	if len(recs) != 1 || recs[0].Source != bom.SourceTraceSearch || recs[0].Batch != "B77" {
		t.Fatalf("expected search-derived B77 record, got %+v", recs)
	}
}

func TestIndexSkipsSelfReferentialSearchRows(t *testing.T) {
	ix := NewIndex(nil, []bom.SearchResult{{Query: "A100", Article: "A100"}})
	if n := len(ix.ArticleBatches("A100")); n != 0 {
		t.Fatalf("expected self-referential row skipped, got %d records", n)
	}
}

func TestIndexUnknownLookupsReturnEmpty(t *testing.T) {
	ix := NewIndex(nil, nil)
	if ix.ArticleBatches("nope") != nil {
		t.Error("expected nil for unknown article")
	}
	if ix.BatchArticles("nope") != nil {
		t.Error("expected nil for unknown batch")
	}
}
