package parse

import (
	"testing"
	"time"
)

func TestNumberFormats(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"10", 10},
		{"2,5", 2.5},
		{"1 250,75", 1250.75},
		{"1,250.75", 1250.75},
		{"-3", -3},
	}
	for _, c := range cases {
		got, err := Number(c.in)
		if err != nil {
			t.Errorf("Number(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Number(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	if _, err := Number("tio"); err == nil {
		t.Error("expected error for non-numeric input")
	}
	if _, err := Number(""); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestDateFormats(t *testing.T) {
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-03-15", "15.03.2024", "15/03/2024", "20240315"} {
		got, err := Date(in)
		if err != nil {
			t.Errorf("Date(%q): unexpected error: %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("Date(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDateTwoDigitYearPivot(t *testing.T) {
	// Far-future two-digit years roll back a century.
	got, err := Date("15.03.96")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year() != 1996 {
		t.Errorf("expected 1996, got %d", got.Year())
	}

	got, err = Date("15.03.24")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year() != 2024 {
		t.Errorf("expected 2024, got %d", got.Year())
	}
}

func TestDateRejectsGarbage(t *testing.T) {
	if _, err := Date("not-a-date"); err == nil {
		t.Error("expected error for garbage date")
	}
}
