package report

import (
	"fmt"
	"strconv"
	"strings"

	"go-grafik/internal/attendance"
	"go-grafik/internal/calendar"
	reporterrors "go-grafik/internal/report/errors"
)

// Card columns after the date.
const (
	ColWork = iota
	ColHolidays
	ColNight
	ColVacation
	ColSick
	ColOccasional
	ColChildcare
	ColOther
	CardColumns
)

const (
	CardSignature   = "Podpis wystawiającego: ____________________"
	CardColumnWidth = 1.94
	CardRowHeight   = 0.5
	CardFontSize    = 10
	hoursPerDay     = "8"
	noColumn        = -1
)

var CardHeaders = []string{
	"Data",
	"Liczba\ngodzin pracy",
	"Święta",
	"Praca nocna",
	"Urlop\nwypoczynkowy",
	"Chorobowe",
	"Urlop\nokolicznościowy",
	"Opieka\nnad dzieckiem",
	"Inne",
}

type leaveRule struct {
	work   string
	column int
}

// leaveRules decodes named leave codes, one entry per code the token parser
// classifies as leave. Codes without a column only show up in the work-hours
// cell.
var leaveRules = map[string]leaveRule{
	attendance.CodeVacation:     {attendance.CodeVacation, ColVacation},
	attendance.CodeSick:         {attendance.CodeSick, ColSick},
	attendance.CodeCompensation: {"8z", noColumn},
	attendance.CodeUP:           {attendance.CodeUP, ColOther},
	attendance.CodeOccasional:   {attendance.CodeOccasional, ColOccasional},
	attendance.CodeChildcare:    {attendance.CodeChildcare, ColChildcare},
	attendance.CodeDE:           {attendance.CodeDE, ColOther},
	attendance.CodeNU:           {attendance.CodeNU, noColumn},
	attendance.CodeMO:           {attendance.CodeMO, ColOther},
	attendance.CodeUB:           {attendance.CodeUB, noColumn},
	attendance.CodeWZ:           {attendance.CodeWZ, ColVacation},
	attendance.CodeSZ:           {attendance.CodeSZ, ColOther},
	attendance.CodeWS:           {attendance.CodeWS, ColOther},
}

// CardRow is one day of a work card.
type CardRow struct {
	Day   int
	Fill  Color
	Cells [CardColumns]string
}

type Card struct {
	Employee string
	Title    string
	Subtitle string
	Rows     []CardRow
	Totals   [CardColumns]string
}

// CardLayout holds one card per employee, each printed on its own page.
type CardLayout struct {
	Group string
	Month string
	Year  string
	Cards []Card
}

func (l CardLayout) FileName() string {
	return fmt.Sprintf("karta_%s_%s_%s.pdf", l.Group, l.Month, l.Year)
}

// workHours maps shift codes 1..3 to a full day; other integers are kept.
// Zero prints as an empty cell.
func workHours(t attendance.Token) string {
	n, ok := t.Int()
	if !ok {
		return t.Trimmed()
	}
	if n >= 1 && n <= 3 {
		return hoursPerDay
	}
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// holidayHours fills the "Święta" column. Sick days never count here.
func holidayHours(t attendance.Token, year, month, day int) string {
	shift := t.IsShiftValue()

	if calendar.Weekday(year, month, day) == calendar.Sunday {
		if shift {
			return hoursPerDay
		}
		return ""
	}
	if !calendar.ReportHolidays.IsHoliday(year, month, day) {
		return ""
	}

	switch {
	case shift && calendar.SixteenHourHolidays.IsHoliday(year, month, day):
		return "16"
	case shift:
		return hoursPerDay
	case t.IsBlank(), t.Code() == attendance.CodeCompensation, t.IsSick():
		return ""
	}
	return "X"
}

// DecodeDay allocates one grid cell to the card columns.
func DecodeDay(raw string, year, month, day int) CardRow {
	t := attendance.ParseToken(raw)
	row := CardRow{Day: day, Fill: DayFill(year, month, day)}

	if t.IsLeave() {
		rule := leaveRules[t.Code()]
		row.Cells[ColWork] = rule.work
		if rule.column != noColumn {
			row.Cells[rule.column] = hoursPerDay
		}
	} else {
		row.Cells[ColWork] = workHours(t)
	}

	row.Cells[ColHolidays] = holidayHours(t, year, month, day)
	if t.ShiftValue() == attendance.ShiftNight {
		row.Cells[ColNight] = hoursPerDay
	}
	return row
}

// workValue reads a work-hours cell for the totals; "8z" counts as 8 and
// anything else non-numeric as 0.
func workValue(cell string) int {
	if n, err := strconv.Atoi(cell); err == nil {
		return n
	}
	if strings.HasSuffix(cell, "z") {
		if n, err := strconv.Atoi(strings.ReplaceAll(cell, "z", "")); err == nil {
			return n
		}
	}
	return 0
}

// cardTotals sums every column. Work hours are always printed, the other
// totals only when non-zero.
func cardTotals(rows []CardRow) [CardColumns]string {
	var sums [CardColumns]int
	for _, r := range rows {
		sums[ColWork] += workValue(r.Cells[ColWork])
		for c := ColHolidays; c < CardColumns; c++ {
			if n, err := strconv.Atoi(r.Cells[c]); err == nil {
				sums[c] += n
			}
		}
	}

	var out [CardColumns]string
	out[ColWork] = strconv.Itoa(sums[ColWork])
	for c := ColHolidays; c < CardColumns; c++ {
		if sums[c] != 0 {
			out[c] = strconv.Itoa(sums[c])
		}
	}
	return out
}

// BuildCards decodes every employee row of a month into a work card.
func BuildCards(doc attendance.GridDocument, order []string) (CardLayout, error) {
	p, err := resolvePeriod(doc.Month, doc.Year)
	if err != nil {
		return CardLayout{}, err
	}

	names := orderedNames(doc.Data.Names(), order)
	if len(names) == 0 {
		return CardLayout{}, reporterrors.ErrNoEmployees
	}

	title := "MIESIĘCZNA KARTA PRACY " + strings.ReplaceAll(doc.Group, "_users", "")
	layout := CardLayout{Group: doc.Group, Month: doc.Month, Year: doc.Year}
	for _, name := range names {
		card := Card{
			Employee: name,
			Title:    title,
			Subtitle: fmt.Sprintf("Nazwisko i Imię: %s | Miesiąc: %s %s", name, doc.Month, doc.Year),
			Rows:     make([]CardRow, 0, p.days),
		}
		for d := 1; d <= p.days; d++ {
			card.Rows = append(card.Rows, DecodeDay(doc.Data.Cell(name, d), p.year, p.num, d))
		}
		card.Totals = cardTotals(card.Rows)
		layout.Cards = append(layout.Cards, card)
	}
	return layout, nil
}
