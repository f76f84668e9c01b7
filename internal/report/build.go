package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/jskoglund/lottrace/internal/bom"
	"github.com/jskoglund/lottrace/internal/format"
	"github.com/jskoglund/lottrace/internal/hierarchy"
	"github.com/jskoglund/lottrace/internal/parse"
	"github.com/jskoglund/lottrace/internal/tabular"
	"github.com/jskoglund/lottrace/internal/trace"
)

// ErrNoStructure is the one fatal build outcome: no valid structure list
// remained after classifying every input file, so there is no tree to hang
// batches on.
var ErrNoStructure = errors.New("no valid structure list in input files")

// InputFile is one uploaded table, already read into memory.
type InputFile struct {
	Name string
	Data []byte
}

// projectRe extracts a project reference like P51959 from file names.
var projectRe = regexp.MustCompile(`[Pp]-?(\d{5})`)

// Builder runs the full build: classify each file, parse it with the
// schema-specific parser, rebuild the hierarchy, index the transactions and
// merge. Synchronous and single-threaded; it runs to completion or fails.
type Builder struct {
	log *slog.Logger
}

func NewBuilder(log *slog.Logger) *Builder {
	return &Builder{log: log}
}

// Build produces a complete model from a fixed input snapshot. Unknown
// formats and missing-column rejections exclude single files; cell-level
// failures drop single rows. All of it lands in the model's warnings.
func (b *Builder) Build(ctx context.Context, files []InputFile) (*Model, error) {
	var (
		structRows []parse.StructureRow
		structFile string
		logs       []*bom.BatchRecord
		logDescs   = make(map[string]string)
		searches   []bom.SearchResult
		warnings   []bom.Warning
		infos      []FileInfo
		project    string
	)

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if project == "" {
			if m := projectRe.FindStringSubmatch(f.Name); m != nil {
				project = "P" + m[1]
			}
		}

		table, err := b.readTable(f)
		if err != nil {
			warnings = append(warnings, bom.Warning{
				Kind:    bom.WarnUnknownFormat,
				File:    f.Name,
				Message: err.Error(),
			})
			continue
		}

		kind := format.DetectWithOutline(table.Headers, table.OutlineLevels != nil)
		infos = append(infos, FileInfo{Name: f.Name, Format: kind.String(), Rows: len(table.Rows)})

		switch kind {
		case format.StructureList:
			rows, warns, err := parse.Structure(table)
			if err != nil {
				warnings = append(warnings, missingColumnWarning(f.Name, err))
				continue
			}
			warnings = append(warnings, warns...)
			if len(structRows) == 0 {
				structFile = table.Name
			}
			structRows = append(structRows, rows...)

		case format.WarehouseLog:
			recs, descs, warns, err := parse.WarehouseLog(table)
			if err != nil {
				warnings = append(warnings, missingColumnWarning(f.Name, err))
				continue
			}
			warnings = append(warnings, warns...)
			logs = append(logs, recs...)
			for article, d := range descs {
				if _, ok := logDescs[article]; !ok {
					logDescs[article] = d
				}
			}

		case format.TraceabilitySearch:
			results, warns, err := parse.Search(table)
			if err != nil {
				warnings = append(warnings, missingColumnWarning(f.Name, err))
				continue
			}
			warnings = append(warnings, warns...)
			searches = append(searches, results...)

		default:
			warnings = append(warnings, bom.Warning{
				Kind:    bom.WarnUnknownFormat,
				File:    f.Name,
				Message: "headers match no known schema",
			})
		}
	}

	if len(structRows) == 0 {
		return nil, ErrNoStructure
	}
	if len(logs) == 0 && len(searches) == 0 {
		warnings = append(warnings, bom.Warning{
			Kind:    bom.WarnNoTraceSource,
			Message: "no warehouse log or traceability search supplied; report has no batch annotations",
		})
	}

	root, structWarns := hierarchy.Build(structRows, structFile)
	warnings = append(warnings, structWarns...)
	fillDescriptions(root, logDescs)

	index := trace.NewIndex(logs, searches)
	model := newModel(root, index, warnings, infos, project)

	b.log.Info("report built",
		"files", len(files),
		"articles", model.stats.Articles,
		"batches", model.stats.Batches,
		"warnings", len(warnings),
	)
	return model, nil
}

// fillDescriptions backfills node descriptions from the warehouse log for
// articles the structure list left blank.
func fillDescriptions(root *bom.Node, descs map[string]string) {
	if root == nil || len(descs) == 0 {
		return
	}
	var walk func(n *bom.Node)
	walk = func(n *bom.Node) {
		if n.Description == "" {
			n.Description = descs[n.Article]
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
}

// readTable picks a container reader by extension and runs it.
func (b *Builder) readTable(f InputFile) (*tabular.Table, error) {
	reader, err := tabular.ForFile(f.Name)
	if err != nil {
		return nil, err
	}
	table, err := reader.Read(bytes.NewReader(f.Data), f.Name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	return table, nil
}

func missingColumnWarning(file string, err error) bom.Warning {
	return bom.Warning{
		Kind:    bom.WarnMissingColumn,
		File:    file,
		Message: err.Error(),
	}
}
