package calendar

import (
	"fmt"
	"strconv"
	"strings"

	calendarerrors "go-grafik/internal/calendar/errors"
)

// Months lists the Polish month names in calendar order.
var Months = [12]string{
	"Styczeń", "Luty", "Marzec", "Kwiecień", "Maj", "Czerwiec",
	"Lipiec", "Sierpień", "Wrzesień", "Październik", "Listopad", "Grudzień",
}

var monthNumbers = func() map[string]int {
	m := make(map[string]int, len(Months))
	for i, name := range Months {
		m[name] = i + 1
	}
	return m
}()

// MonthNumber resolves a Polish month name to 1..12.
func MonthNumber(name string) (int, error) {
	n, ok := monthNumbers[strings.TrimSpace(name)]
	if !ok {
		return 0, fmt.Errorf("%w: month %q", calendarerrors.ErrInvalidCalendarInput, name)
	}
	return n, nil
}

func MonthName(n int) (string, error) {
	if n < 1 || n > 12 {
		return "", fmt.Errorf("%w: month number %d", calendarerrors.ErrInvalidCalendarInput, n)
	}
	return Months[n-1], nil
}

// ResolveMonth accepts either a month name or its number ("3", "03") and
// returns the canonical name.
func ResolveMonth(value string) (string, error) {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		return MonthName(n)
	}
	if _, err := MonthNumber(value); err != nil {
		return "", err
	}
	return value, nil
}

// ParseYear accepts a decimal year in 1..9999.
func ParseYear(value string) (int, error) {
	y, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || y < 1 || y > 9999 {
		return 0, fmt.Errorf("%w: year %q", calendarerrors.ErrInvalidCalendarInput, value)
	}
	return y, nil
}
