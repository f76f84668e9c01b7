package hierarchy

import (
	"testing"

	"github.com/jskoglund/lottrace/internal/bom"
	"github.com/jskoglund/lottrace/internal/parse"
)

func rows(pairs ...any) []parse.StructureRow {
	var out []parse.StructureRow
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, parse.StructureRow{
			Level:     pairs[i].(int),
			Article:   pairs[i+1].(string),
			SourceRow: i/2 + 1,
		})
	}
	return out
}

func TestBuildSingleRoot(t *testing.T) {
	root, warns := Build(rows(0, "A100", 1, "A110", 1, "A120", 2, "A121"), "nivålista")
	if len(warns) != 0 {
		t.Fatalf("expected no warnings, got %v", warns)
	}
	if root == nil || root.Article != "A100" || root.Synthetic {
		t.Fatalf("expected root A100, got %+v", root)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}
	if root.Children[0].Article != "A110" || root.Children[1].Article != "A120" {
		t.Errorf("unexpected children: %s, %s", root.Children[0].Article, root.Children[1].Article)
	}

	a120 := root.Children[1]
	if len(a120.Children) != 1 || a120.Children[0].Article != "A121" {
		t.Fatalf("expected A121 under A120, got %+v", a120.Children)
	}
	if a120.Children[0].Parent != a120 {
		t.Error("child's parent back-reference not set")
	}
}

func TestBuildEveryChildDeeperThanParent(t *testing.T) {
	root, _ := Build(rows(0, "A", 1, "B", 3, "C", 1, "D", 2, "E"), "f")
	var check func(n *bom.Node)
	check = func(n *bom.Node) {
		for _, c := range n.Children {
			if c.Level <= n.Level {
				t.Errorf("child %s level %d not greater than parent %s level %d", c.Article, c.Level, n.Article, n.Level)
			}
			check(c)
		}
	}
	check(root)
}

func TestBuildLevelJumpAttachesToNearestAncestor(t *testing.T) {
	root, warns := Build(rows(0, "A100", 1, "A110", 3, "A111"), "nivålista")
	if len(warns) != 1 || warns[0].Kind != bom.WarnLevelJump {
		t.Fatalf("expected one level_jump warning, got %v", warns)
	}
	a110 := root.Children[0]
	if len(a110.Children) != 1 || a110.Children[0].Article != "A111" {
		t.Fatalf("expected A111 attached to A110, got %+v", a110.Children)
	}
}

func TestBuildMultiRootSynthesizesContainer(t *testing.T) {
	root, warns := Build(rows(0, "A100", 0, "B200"), "nivålista")
	if !root.Synthetic {
		t.Fatal("expected synthesized root container")
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children under container, got %d", len(root.Children))
	}

	found := false
	for _, w := range warns {
		if w.Kind == bom.WarnMultiRoot {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected multiple_roots warning, got %v", warns)
	}
}

func TestBuildFirstRowAboveLevelZero(t *testing.T) {
	// Input starting at level 1 still yields exactly one root.
	root, warns := Build(rows(1, "A110", 2, "A111"), "nivålista")
	if root == nil {
		t.Fatal("expected a tree")
	}
	if root.Synthetic {
		t.Fatalf("single top-level article should be promoted, got synthetic root: %+v", root)
	}
	if root.Article != "A110" {
		t.Fatalf("expected root A110, got %s", root.Article)
	}
	// The attach itself jumps from the virtual root, so a warning is due.
	if len(warns) == 0 {
		t.Fatal("expected a level_jump warning for level-1 start")
	}
}

func TestFlattenRoundTrip(t *testing.T) {
	in := rows(0, "A100", 1, "A110", 1, "A120", 2, "A121", 1, "A130")
	root, _ := Build(in, "f")
	out := Flatten(root)
	if len(out) != len(in) {
		t.Fatalf("expected %d rows, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].Level != in[i].Level || out[i].Article != in[i].Article {
			t.Errorf("row %d: got (%d,%s), want (%d,%s)", i, out[i].Level, out[i].Article, in[i].Level, in[i].Article)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	root, warns := Build(nil, "f")
	if root != nil || warns != nil {
		t.Fatalf("expected nil tree for empty input, got %+v %v", root, warns)
	}
}
