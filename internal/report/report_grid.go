package report

import (
	"fmt"
	"strconv"
	"strings"

	"go-grafik/internal/attendance"
)

const (
	RowsPerPage = 20
	GridFooter  = "Nd - ilość przepracowanych niedziel lub świąt w poprzednim miesiącu"

	// Heights in centimetres.
	GridTitleHeight  = 0.5
	GridHeaderHeight = 0.6
	GridBodyHeight   = 0.35
	GridFooterHeight = 0.5
	GridFontSize     = 6
)

// GridColumn describes one printed column. Day columns carry their calendar
// fill in both header and body.
type GridColumn struct {
	Header     string
	Width      float64
	HeaderFill Color
	BodyFill   Color

	// Spans marks columns merged over the two physical rows of an entry.
	Spans bool
	Left  bool
}

// GridRow is one logical row: a data line and a blank spacer line.
type GridRow struct {
	Number int
	Name   string
	Days   []string
}

type GridPage struct {
	Rows []GridRow
}

// GridLayout is the full "grafik" document before rendering.
type GridLayout struct {
	Group   string
	Month   string
	Year    string
	Title   string
	Columns []GridColumn
	Days    int
	Pages   []GridPage
	Footer  string
}

func (l GridLayout) FileName() string {
	return fmt.Sprintf("grafik_%s_%s_%s.pdf", strings.ReplaceAll(l.Group, " ", "_"), l.Month, l.Year)
}

// Width is the sum of all column widths.
func (l GridLayout) Width() float64 {
	var w float64
	for _, c := range l.Columns {
		w += c.Width
	}
	return w
}

// Cells returns the printed values of a row, one per column.
func (l GridLayout) Cells(r GridRow) []string {
	out := make([]string, 0, len(l.Columns))
	out = append(out, strconv.Itoa(r.Number), r.Name, "", "", "")
	for d := 0; d < l.Days; d++ {
		if d < len(r.Days) {
			out = append(out, r.Days[d])
		} else {
			out = append(out, "")
		}
	}
	return append(out, "", "")
}

func gridColumns(p period) []GridColumn {
	cols := []GridColumn{
		{Header: "Lp.", Width: 0.6, HeaderFill: White, BodyFill: White, Spans: true},
		{Header: "Nazwisko i imię", Width: 3.5, HeaderFill: White, BodyFill: White, Spans: true, Left: true},
		{Header: "Xz", Width: 0.6, HeaderFill: LightGrey, BodyFill: White, Spans: true},
		{Header: "Wz", Width: 0.6, HeaderFill: LightGrey, BodyFill: White, Spans: true},
		{Header: "Nd", Width: 0.6, HeaderFill: Yellow, BodyFill: White, Spans: true},
	}
	for d := 1; d <= p.days; d++ {
		fill := DayFill(p.year, p.num, d)
		cols = append(cols, GridColumn{Header: strconv.Itoa(d), Width: 0.7, HeaderFill: fill, BodyFill: fill})
	}
	return append(cols,
		GridColumn{Header: "Wyk.\nXz", Width: 0.8, HeaderFill: White, BodyFill: LightGrey, Spans: true},
		GridColumn{Header: "Wyk.\nWz/W", Width: 0.8, HeaderFill: White, BodyFill: LightGrey, Spans: true},
	)
}

// BuildGrid lays out the monthly grid in pages of RowsPerPage entries. Short
// pages are padded with numbered blank rows, and an empty document still
// yields one page.
func BuildGrid(doc attendance.GridDocument, order []string) (GridLayout, error) {
	p, err := resolvePeriod(doc.Month, doc.Year)
	if err != nil {
		return GridLayout{}, err
	}

	layout := GridLayout{
		Group:   doc.Group,
		Month:   doc.Month,
		Year:    doc.Year,
		Title:   fmt.Sprintf("%s %s", doc.Month, doc.Year),
		Columns: gridColumns(p),
		Days:    p.days,
		Footer:  GridFooter,
	}

	names := orderedNames(doc.Data.Names(), order)
	for start := 0; start < len(names) || start == 0; start += RowsPerPage {
		page := GridPage{Rows: make([]GridRow, 0, RowsPerPage)}
		for i := 0; i < RowsPerPage; i++ {
			row := GridRow{Number: start + i + 1}
			if idx := start + i; idx < len(names) {
				row.Name = names[idx]
				row.Days = attendance.PadRow(doc.Data.Get(row.Name), p.days)[:p.days]
			}
			page.Rows = append(page.Rows, row)
		}
		layout.Pages = append(layout.Pages, page)
	}
	return layout, nil
}
