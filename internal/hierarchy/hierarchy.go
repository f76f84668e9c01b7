// Package hierarchy rebuilds the product structure tree from the ordered
// structure-list rows, which encode the tree as a pre-order depth-first
// flattening with indentation levels.
package hierarchy

import (
	"fmt"

	"github.com/jskoglund/lottrace/internal/bom"
	"github.com/jskoglund/lottrace/internal/parse"
)

// Build converts ordered structure rows into a single tree in one linear
// pass over an explicit ancestor stack. A record's parent is the nearest
// preceding node with a strictly smaller level; level jumps greater than
// one are accepted with a structural warning. When more than one level-0
// row exists all of them become children of a synthesized root container,
// so exactly one root always comes out.
func Build(rows []parse.StructureRow, file string) (*bom.Node, []bom.Warning) {
	if len(rows) == 0 {
		return nil, nil
	}

	root := &bom.Node{Level: -1, Synthetic: true}
	stack := []*bom.Node{root}
	var warnings []bom.Warning

	for _, row := range rows {
		for len(stack) > 1 && stack[len(stack)-1].Level >= row.Level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]

		if row.Level > parent.Level+1 {
			warnings = append(warnings, bom.Warning{
				Kind: bom.WarnLevelJump,
				File: file,
				Row:  row.SourceRow,
				Message: fmt.Sprintf("article %s jumps from level %d to %d",
					row.Article, parent.Level, row.Level),
			})
		}

		node := &bom.Node{
			Article:     row.Article,
			Description: row.Description,
			Level:       row.Level,
			Quantity:    row.Quantity,
			Parent:      parent,
		}
		parent.Children = append(parent.Children, node)
		stack = append(stack, node)
	}

	if len(root.Children) == 1 {
		top := root.Children[0]
		top.Parent = nil
		return top, warnings
	}

	warnings = append(warnings, bom.Warning{
		Kind: bom.WarnMultiRoot,
		File: file,
		Message: fmt.Sprintf("%d top-level articles; attached under a synthesized root",
			len(root.Children)),
	})
	return root, warnings
}

// Flatten re-emits the tree in pre-order as (level, article) pairs, the
// inverse of Build for inputs without level jumps.
func Flatten(root *bom.Node) []parse.StructureRow {
	var out []parse.StructureRow
	var walk func(n *bom.Node)
	walk = func(n *bom.Node) {
		if !n.Synthetic {
			out = append(out, parse.StructureRow{
				Level:       n.Level,
				Article:     n.Article,
				Description: n.Description,
				Quantity:    n.Quantity,
			})
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}
