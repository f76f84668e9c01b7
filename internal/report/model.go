// Package report merges the rebuilt hierarchy with the traceability index
// into the read-only model served to the rendering collaborator.
package report

import (
	"github.com/jskoglund/lottrace/internal/bom"
	"github.com/jskoglund/lottrace/internal/trace"
)

// FileInfo describes one classified input file.
type FileInfo struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	Rows   int    `json:"rows"`
}

// Stats is the model's summary counters.
type Stats struct {
	Articles int        `json:"articles"`
	Batches  int        `json:"batches"`
	Warnings int        `json:"warnings"`
	Files    []FileInfo `json:"files"`
	Project  string     `json:"project,omitempty"`
}

// Model is the finished traceability report. Read-only once built; a new
// input set requires a fresh build replacing the instance wholesale.
type Model struct {
	root     *bom.Node
	index    *trace.Index
	warnings []bom.Warning
	stats    Stats
}

// newModel annotates the tree with batch sets and computes the stats.
func newModel(root *bom.Node, index *trace.Index, warnings []bom.Warning, files []FileInfo, project string) *Model {
	articles := annotate(root, index)
	return &Model{
		root:     root,
		index:    index,
		warnings: warnings,
		stats: Stats{
			Articles: articles,
			Batches:  index.BatchCount(),
			Warnings: len(warnings),
			Files:    files,
			Project:  project,
		},
	}
}

// annotate walks the tree post-order. Each node's own batch set is its
// article's index lookup; its subtree aggregate is the union of that set
// with the children's aggregates, computed once per node. Returns the
// article node count, synthesized root excluded.
func annotate(root *bom.Node, index *trace.Index) int {
	if root == nil {
		return 0
	}
	count := 0
	var walk func(n *bom.Node)
	walk = func(n *bom.Node) {
		for _, c := range n.Children {
			walk(c)
		}
		if !n.Synthetic {
			count++
			n.Batches = index.ArticleBatches(n.Article)
		}

		seen := make(map[string]struct{}, len(n.Batches))
		n.Subtree = append(n.Subtree, n.Batches...)
		for _, r := range n.Batches {
			seen[r.Key()] = struct{}{}
		}
		for _, c := range n.Children {
			for _, r := range c.Subtree {
				if _, dup := seen[r.Key()]; dup {
					continue
				}
				seen[r.Key()] = struct{}{}
				n.Subtree = append(n.Subtree, r)
			}
		}
		n.SubtreeBatches = distinctBatches(n.Subtree)
	}
	walk(root)
	return count
}

func distinctBatches(recs []*bom.BatchRecord) int {
	set := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		set[r.Batch] = struct{}{}
	}
	return len(set)
}

// Tree returns the root of the built hierarchy.
func (m *Model) Tree() *bom.Node { return m.root }

// Stats returns the summary counters.
func (m *Model) Stats() Stats { return m.stats }

// Warnings returns the warnings accumulated during the build.
func (m *Model) Warnings() []bom.Warning { return m.warnings }

// BatchLookup returns the ordered article numbers touched by a batch.
func (m *Model) BatchLookup(batch string) []string {
	return m.index.BatchArticles(batch)
}

// ArticleLookup returns the ordered batch records for an article.
func (m *Model) ArticleLookup(article string) []*bom.BatchRecord {
	return m.index.ArticleBatches(article)
}
