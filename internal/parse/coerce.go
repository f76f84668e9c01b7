package parse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Number coerces a cell to a float. Swedish exports use a decimal comma and
// space (or NBSP) thousands separators.
func Number(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	return strconv.ParseFloat(s, 64)
}

// Date layouts split by year format so 2-digit years get pivot handling.
var (
	fourDigitYearLayouts = []string{
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
		"2006/01/02",
		"02.01.2006 15:04",
		"02.01.2006",
		"2.1.2006",
		"02/01/2006",
		"02-01-2006",
		"20060102",
	}
	twoDigitYearLayouts = []string{
		"02.01.06",
		"02/01/06",
		"2/1/06",
	}
)

// twoDigitYearPivot controls 2-digit year interpretation: parsed dates more
// than this many years in the future roll back a century.
const twoDigitYearPivot = 20

// Date coerces a cell to a timestamp, trying ISO and common Swedish
// day-first layouts.
func Date(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range fourDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range twoDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() > time.Now().Year()+twoDigitYearPivot {
			t = t.AddDate(-100, 0, 0)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %q", s)
}

// Int coerces a cell to an integer via Number so "2,0" style levels work.
func Int(s string) (int, error) {
	f, err := Number(s)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
