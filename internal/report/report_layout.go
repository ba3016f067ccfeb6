package report

import (
	"go-grafik/internal/calendar"
)

// Color is an RGB fill used by the renderer.
type Color struct {
	R, G, B int
}

var (
	White     = Color{255, 255, 255}
	Red       = Color{255, 0, 0}
	Green     = Color{0, 128, 0}
	LightGrey = Color{211, 211, 211}
	Yellow    = Color{255, 255, 0}
)

// DayFill colors a calendar column: Sunday or holiday red, Saturday green.
func DayFill(year, month, day int) Color {
	switch {
	case calendar.IsSundayOrHoliday(calendar.ReportHolidays, year, month, day):
		return Red
	case calendar.Weekday(year, month, day) == calendar.Saturday:
		return Green
	}
	return White
}

type period struct {
	month string
	year  int
	num   int
	days  int
}

// resolvePeriod validates the month name and year of a document. Unlike the
// HTTP layer it does not accept month numbers: documents always carry names.
func resolvePeriod(month, year string) (period, error) {
	m, err := calendar.MonthNumber(month)
	if err != nil {
		return period{}, err
	}
	y, err := calendar.ParseYear(year)
	if err != nil {
		return period{}, err
	}
	return period{month: month, year: y, num: m, days: calendar.DaysIn(y, m)}, nil
}

// orderedNames lists the document rows, roster order first.
func orderedNames(present []string, order []string) []string {
	seen := make(map[string]struct{}, len(present))
	in := make(map[string]struct{}, len(present))
	for _, n := range present {
		in[n] = struct{}{}
	}

	out := make([]string, 0, len(present))
	for _, n := range order {
		if _, ok := in[n]; !ok {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	for _, n := range present {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
