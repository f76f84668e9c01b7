// Package trace builds the bidirectional article-batch lookup maps from
// warehouse-log and traceability-search records.
package trace

import (
	"sort"

	"github.com/jskoglund/lottrace/internal/bom"
)

// Index is the bidirectional article-batch lookup. Immutable once built.
type Index struct {
	articleToBatches map[string][]*bom.BatchRecord
	batchToArticles  map[string]map[string]struct{}
}

// NewIndex builds both maps in one pass. Records are deduplicated on
// (article, batch, transaction type, timestamp). Log records are inserted
// first and are authoritative: a search result whose (article, batch) pair
// the log already covers is discarded, so search exports only supply
// relations absent from the log.
func NewIndex(logs []*bom.BatchRecord, searches []bom.SearchResult) *Index {
	ix := &Index{
		articleToBatches: make(map[string][]*bom.BatchRecord),
		batchToArticles:  make(map[string]map[string]struct{}),
	}

	seen := make(map[string]struct{})
	pairs := make(map[string]struct{})

	for _, rec := range logs {
		key := rec.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		pairs[rec.Article+"\x00"+rec.Batch] = struct{}{}
		ix.add(rec)
	}

	for _, res := range searches {
		if res.Query == res.Article {
			continue
		}
		pair := res.Article + "\x00" + res.Query
		if _, covered := pairs[pair]; covered {
			continue
		}
		pairs[pair] = struct{}{}
		ix.add(&bom.BatchRecord{
			Batch:   res.Query,
			Article: res.Article,
			Source:  bom.SourceTraceSearch,
		})
	}

	for article := range ix.articleToBatches {
		recs := ix.articleToBatches[article]
		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].Timestamp.Before(recs[j].Timestamp)
		})
	}

	return ix
}

func (ix *Index) add(rec *bom.BatchRecord) {
	ix.articleToBatches[rec.Article] = append(ix.articleToBatches[rec.Article], rec)
	arts, ok := ix.batchToArticles[rec.Batch]
	if !ok {
		arts = make(map[string]struct{})
		ix.batchToArticles[rec.Batch] = arts
	}
	arts[rec.Article] = struct{}{}
}

// ArticleBatches returns the article's batch records ascending by
// timestamp. The returned slice is shared; callers must not mutate it.
func (ix *Index) ArticleBatches(article string) []*bom.BatchRecord {
	return ix.articleToBatches[article]
}

// BatchArticles returns the sorted article numbers touched by a batch.
func (ix *Index) BatchArticles(batch string) []string {
	set, ok := ix.batchToArticles[batch]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// BatchCount returns the number of distinct batches.
func (ix *Index) BatchCount() int {
	return len(ix.batchToArticles)
}
