package calendar

import "time"

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysInMonth returns the Gregorian day count of a month given by its Polish name.
func DaysInMonth(monthName, year string) (int, error) {
	m, err := MonthNumber(monthName)
	if err != nil {
		return 0, err
	}
	y, err := ParseYear(year)
	if err != nil {
		return 0, err
	}
	return daysIn(y, m), nil
}

// DaysIn is DaysInMonth for already resolved numbers.
func DaysIn(year, month int) int {
	return daysIn(year, month)
}

// Weekday returns 0 for Monday through 6 for Sunday.
func Weekday(year, month, day int) int {
	wd := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(wd) + 6) % 7
}

const (
	Saturday = 5
	Sunday   = 6
)

// EasterSunday uses the anonymous Gregorian (Meeus/Jones/Butcher) algorithm.
// All divisions are integer floor divisions on non-negative values.
func EasterSunday(year int) (month, day int) {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month = (h + l - 7*m + 114) / 31
	day = (h+l-7*m+114)%31 + 1
	return month, day
}

// easterOffset returns Easter Sunday shifted by n days.
func easterOffset(year, n int) (month, day int) {
	em, ed := EasterSunday(year)
	t := time.Date(year, time.Month(em), ed, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return int(t.Month()), t.Day()
}
