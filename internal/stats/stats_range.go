package stats

import (
	"go-grafik/internal/calendar"
)

// MonthYear is one month of a statistics range.
type MonthYear struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
}

// MonthsBetween walks forward from the first month to the last, both
// included. A reversed range is empty.
func MonthsBetween(fromMonth, fromYear, toMonth, toYear string) ([]MonthYear, error) {
	fm, err := calendar.MonthNumber(fromMonth)
	if err != nil {
		return nil, err
	}
	fy, err := calendar.ParseYear(fromYear)
	if err != nil {
		return nil, err
	}
	tm, err := calendar.MonthNumber(toMonth)
	if err != nil {
		return nil, err
	}
	ty, err := calendar.ParseYear(toYear)
	if err != nil {
		return nil, err
	}

	var out []MonthYear
	for y, m := fy, fm; y < ty || (y == ty && m <= tm); {
		out = append(out, MonthYear{Month: calendar.Months[m-1], Year: y})
		m++
		if m > 12 {
			m = 1
			y++
		}
	}
	return out, nil
}
