package calendar_test

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"go-grafik/internal/calendar"
	calendarerrors "go-grafik/internal/calendar/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysInMonth_MatchesGregorian(t *testing.T) {
	for year := 1900; year <= 2100; year++ {
		for i, name := range calendar.Months {
			got, err := calendar.DaysInMonth(name, strconv.Itoa(year))
			require.NoError(t, err)

			want := time.Date(year, time.Month(i+2), 0, 0, 0, 0, 0, time.UTC).Day()
			if got != want {
				t.Fatalf("%s %d: got %d want %d", name, year, got, want)
			}
		}
	}
}

func TestDaysInMonth_LeapFebruary(t *testing.T) {
	cases := map[string]int{"2024": 29, "2023": 28, "1900": 28, "2000": 29}
	for year, want := range cases {
		got, err := calendar.DaysInMonth("Luty", year)
		assert.NoError(t, err)
		assert.Equal(t, want, got, year)
	}
}

func TestDaysInMonth_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		month string
		year  string
	}{
		{"unknown month", "January", "2024"},
		{"lower case month", "styczeń", "2024"},
		{"year not a number", "Maj", "abc"},
		{"year zero", "Maj", "0"},
		{"empty year", "Maj", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calendar.DaysInMonth(tt.month, tt.year)
			assert.True(t, errors.Is(err, calendarerrors.ErrInvalidCalendarInput))
		})
	}
}

func TestResolveMonth(t *testing.T) {
	got, err := calendar.ResolveMonth("3")
	assert.NoError(t, err)
	assert.Equal(t, "Marzec", got)

	got, err = calendar.ResolveMonth(" Październik ")
	assert.NoError(t, err)
	assert.Equal(t, "Październik", got)

	_, err = calendar.ResolveMonth("13")
	assert.ErrorIs(t, err, calendarerrors.ErrInvalidCalendarInput)
}

func TestWeekday(t *testing.T) {
	assert.Equal(t, 0, calendar.Weekday(2024, 1, 1)) // Monday
	assert.Equal(t, calendar.Saturday, calendar.Weekday(2024, 3, 30))
	assert.Equal(t, calendar.Sunday, calendar.Weekday(2024, 3, 31))
}

func TestEasterSunday(t *testing.T) {
	known := map[int][2]int{
		2000: {4, 23},
		2019: {4, 21},
		2024: {3, 31},
		2025: {4, 20},
		2026: {4, 5},
		2038: {4, 25},
		1954: {4, 18},
	}
	for year, want := range known {
		m, d := calendar.EasterSunday(year)
		assert.Equal(t, want, [2]int{m, d}, year)
	}
}

func TestHolidayCalendars(t *testing.T) {
	// 21-04 and 19-06 are only on the report list
	assert.True(t, calendar.ReportHolidays.IsHoliday(2024, 4, 21))
	assert.True(t, calendar.ReportHolidays.IsHoliday(2024, 6, 19))
	assert.False(t, calendar.FixedHolidays.IsHoliday(2024, 4, 21))

	// 2025: Easter Monday 21-04, Corpus Christi 19-06
	assert.True(t, calendar.StatisticsCalendar.IsHoliday(2025, 4, 21))
	assert.True(t, calendar.StatisticsCalendar.IsHoliday(2025, 6, 19))
	// 2024: Easter Monday 01-04, Corpus Christi 30-05
	assert.True(t, calendar.StatisticsCalendar.IsHoliday(2024, 4, 1))
	assert.True(t, calendar.StatisticsCalendar.IsHoliday(2024, 5, 30))
	assert.False(t, calendar.StatisticsCalendar.IsHoliday(2024, 4, 21))
	assert.True(t, calendar.StatisticsCalendar.IsHoliday(2024, 11, 11))

	assert.True(t, calendar.SixteenHourHolidays.IsHoliday(2024, 3, 31))
	assert.True(t, calendar.SixteenHourHolidays.IsHoliday(2024, 12, 26))
	assert.False(t, calendar.SixteenHourHolidays.IsHoliday(2024, 11, 1))
}

func TestIsSundayOrHoliday(t *testing.T) {
	assert.True(t, calendar.IsSundayOrHoliday(calendar.ReportHolidays, 2024, 3, 3))
	assert.True(t, calendar.IsSundayOrHoliday(calendar.ReportHolidays, 2024, 5, 1))
	assert.False(t, calendar.IsSundayOrHoliday(calendar.ReportHolidays, 2024, 3, 2))
}
