package stats

import (
	"go-grafik/internal/attendance"
	"go-grafik/internal/calendar"
)

// Counts are the per-employee totals over a range.
type Counts struct {
	SundaysHolidaysWorked int `json:"sundays_holidays_worked"`
	SickDays              int `json:"sick_days"`
	Workdays              int `json:"workdays"`
}

// MonthGrid is one loaded month of attendance.
type MonthGrid struct {
	Period MonthYear
	Rows   attendance.Rows
}

// Compute tallies shifts and sick days for every listed employee. Shifts on
// a Sunday or holiday (statistics calendar) count separately; Saturday is a
// workday.
func Compute(employees []string, months []MonthGrid) (map[string]Counts, error) {
	out := make(map[string]Counts, len(employees))
	for _, name := range employees {
		out[name] = Counts{}
	}

	for _, mg := range months {
		m, err := calendar.MonthNumber(mg.Period.Month)
		if err != nil {
			return nil, err
		}
		y := mg.Period.Year
		days := calendar.DaysIn(y, m)

		for _, name := range employees {
			c := out[name]
			for d := 1; d <= days; d++ {
				tok := attendance.ParseToken(mg.Rows.Cell(name, d))
				if tok.IsSick() {
					c.SickDays++
				}
				if !tok.IsWorked() {
					continue
				}
				if calendar.IsSundayOrHoliday(calendar.StatisticsCalendar, y, m, d) {
					c.SundaysHolidaysWorked++
				} else {
					c.Workdays++
				}
			}
			out[name] = c
		}
	}
	return out, nil
}
