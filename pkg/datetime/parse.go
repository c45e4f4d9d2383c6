// Package datetime provides date and time utility functions.
package datetime

import (
	"strings"
	"time"

	"github.com/iwvelando/nav-landing/pkg/constants"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// DateTimeLayout is the format expected in parameter documents and is
	// also the output date format.
	DateTimeLayout = constants.DateTimeLayout
)

var frenchMonths = [...]string{
	"jan", "fév", "mar", "avr", "mai", "jun",
	"jul", "aoû", "sep", "oct", "nov", "déc",
}

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a DD/MM/YYYY string into a UTC midnight time.Time.
// Surrounding whitespace is ignored.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateTimeLayout, strings.TrimSpace(date))
}

// FormatDate renders a date in the DD/MM/YYYY layout.
func FormatDate(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// Date builds a UTC midnight time.Time for the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SemesterEnds returns June 30 and December 31 of the given year.
func SemesterEnds(year int) (time.Time, time.Time) {
	return Date(year, constants.FirstSemesterEndMonth, constants.FirstSemesterEndDay),
		Date(year, constants.SecondSemesterEndMonth, constants.SecondSemesterEndDay)
}

// IsSemesterEnd reports whether t falls on June 30 or December 31.
func IsSemesterEnd(t time.Time) bool {
	june, december := SemesterEnds(t.Year())
	return SameDay(t, june) || SameDay(t, december)
}

// SameDay reports whether both times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ChartLabel returns the short month-year tick label used on charts,
// e.g. "Déc-24".
func ChartLabel(t time.Time) string {
	month := cases.Title(language.French).String(frenchMonths[t.Month()-1])
	return month + "-" + t.Format("06")
}
