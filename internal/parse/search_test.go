package parse

import (
	"testing"

	"github.com/jskoglund/lottrace/internal/tabular"
)

func TestSearchBasic(t *testing.T) {
	table := &tabular.Table{
		Name:    "sök i spårbarhet",
		Headers: []string{"Sökterm", "Struktursökväg", "Artikelnummer"},
		Rows: [][]string{
			{"B55", "A100/A120/A121", "A121"},
			{"B55", "A100/A110", "A110"},
			{"", "A100", "A100"},
		},
	}

	results, warns, err := Search(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warns) != 0 {
		t.Fatalf("expected no warnings, got %v", warns)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results (blank query skipped), got %d", len(results))
	}
	if results[0].Query != "B55" || results[0].Article != "A121" || results[0].Path != "A100/A120/A121" {
		t.Errorf("unexpected result: %+v", results[0])
	}
}

func TestSearchMissingColumns(t *testing.T) {
	table := &tabular.Table{
		Name:    "sök i spårbarhet",
		Headers: []string{"Sökterm", "Artikelnummer"},
	}
	_, _, err := Search(table)
	if err == nil {
		t.Fatal("expected MissingColumnError")
	}
}
