package parse

import (
	"github.com/jskoglund/lottrace/internal/bom"
	"github.com/jskoglund/lottrace/internal/format"
	"github.com/jskoglund/lottrace/internal/tabular"
)

// Search parses a classified traceability-search export. Every row is
// supplementary evidence that the queried batch touched the matched
// article; no cell coercion is needed so rows are never dropped.
func Search(t *tabular.Table) ([]bom.SearchResult, []bom.Warning, error) {
	cols := format.Resolve(t.Headers)

	var missing []string
	for _, c := range []format.Column{format.ColQuery, format.ColPath, format.ColArticle} {
		if _, ok := cols[c]; !ok {
			missing = append(missing, string(c))
		}
	}
	if len(missing) > 0 {
		return nil, nil, &MissingColumnError{File: t.Name, Columns: missing}
	}

	var results []bom.SearchResult
	for _, raw := range t.Rows {
		article := cell(raw, cols[format.ColArticle])
		query := cell(raw, cols[format.ColQuery])
		if article == "" || query == "" {
			continue
		}
		results = append(results, bom.SearchResult{
			Query:   query,
			Article: article,
			Path:    cell(raw, cols[format.ColPath]),
		})
	}

	return results, nil, nil
}
