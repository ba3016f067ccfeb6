package calendar

// Calendar answers whether a date is a public holiday. Several calendars
// exist because reports, cards and statistics historically disagree about
// which dates count; they are kept apart on purpose.
type Calendar interface {
	IsHoliday(year, month, day int) bool
}

type monthDay struct {
	month, day int
}

type fixedCalendar map[monthDay]struct{}

func newFixed(dates ...monthDay) fixedCalendar {
	c := make(fixedCalendar, len(dates))
	for _, d := range dates {
		c[d] = struct{}{}
	}
	return c
}

func (c fixedCalendar) IsHoliday(_, month, day int) bool {
	_, ok := c[monthDay{month, day}]
	return ok
}

var (
	// ReportHolidays colors report day columns and drives the card holiday-hours branch.
	ReportHolidays Calendar = newFixed(
		monthDay{1, 1}, monthDay{1, 6}, monthDay{4, 21}, monthDay{5, 1}, monthDay{5, 3},
		monthDay{6, 19}, monthDay{8, 15}, monthDay{11, 1}, monthDay{11, 11},
		monthDay{12, 25}, monthDay{12, 26},
	)

	// FixedHolidays has no movable feasts.
	FixedHolidays Calendar = newFixed(
		monthDay{1, 1}, monthDay{1, 6}, monthDay{5, 1}, monthDay{5, 3}, monthDay{8, 15},
		monthDay{11, 1}, monthDay{11, 11}, monthDay{12, 25}, monthDay{12, 26},
	)

	// StatisticsCalendar is FixedHolidays plus Easter Monday and Corpus Christi.
	StatisticsCalendar Calendar = statisticsCalendar{}

	// SixteenHourHolidays are the days paid at 16 hours on work cards.
	SixteenHourHolidays Calendar = sixteenHourCalendar{}
)

type statisticsCalendar struct{}

func (statisticsCalendar) IsHoliday(year, month, day int) bool {
	if FixedHolidays.IsHoliday(year, month, day) {
		return true
	}
	if m, d := easterOffset(year, 1); m == month && d == day {
		return true
	}
	m, d := easterOffset(year, 60)
	return m == month && d == day
}

type sixteenHourCalendar struct{}

func (sixteenHourCalendar) IsHoliday(year, month, day int) bool {
	switch (monthDay{month, day}) {
	case monthDay{1, 1}, monthDay{12, 25}, monthDay{12, 26}:
		return true
	}
	m, d := EasterSunday(year)
	return m == month && d == day
}

// IsSundayOrHoliday is the usual "red day" check.
func IsSundayOrHoliday(cal Calendar, year, month, day int) bool {
	return Weekday(year, month, day) == Sunday || cal.IsHoliday(year, month, day)
}
