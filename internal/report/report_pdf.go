package report

import (
	"bytes"
	"fmt"
	"strings"

	reporterrors "go-grafik/internal/report/errors"

	"github.com/go-pdf/fpdf"
)

const (
	ptToCm        = 2.54 / 72
	lineSpacing   = 1.2
	fontFamily    = "DejaVuSans"
	coreFamily    = "Helvetica"
	gridMargin    = 0.3
	cardMargin    = 1.06
	cardTitleSize = 12
	cardHeadSize  = 7
)

// polishFold replaces the letters missing from the core fonts' cp1252
// encoding. Only used without a TTF font.
var polishFold = strings.NewReplacer(
	"ą", "a", "ć", "c", "ę", "e", "ł", "l", "ń", "n", "ś", "s", "ź", "z", "ż", "z",
	"Ą", "A", "Ć", "C", "Ę", "E", "Ł", "L", "Ń", "N", "Ś", "S", "Ź", "Z", "Ż", "Z",
)

// Renderer turns layouts into PDF documents.
type Renderer interface {
	Grid(layout GridLayout) ([]byte, error)
	Cards(layout CardLayout) ([]byte, error)
}

// PDFRenderer draws with fpdf. With an empty font path it falls back to the
// core Helvetica font, which cannot print every Polish letter.
type PDFRenderer struct {
	fontPath string
}

func NewPDFRenderer(fontPath string) *PDFRenderer {
	return &PDFRenderer{fontPath: strings.TrimSpace(fontPath)}
}

type canvas struct {
	pdf    *fpdf.Fpdf
	family string
	tr     func(string) string
}

func (r *PDFRenderer) newCanvas(orientation string, margin float64) (*canvas, error) {
	pdf := fpdf.New(orientation, "cm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetCellMargin(0.05)
	pdf.SetLineWidth(0.02)

	c := &canvas{pdf: pdf}
	if r.fontPath != "" {
		pdf.AddUTF8Font(fontFamily, "", r.fontPath)
		pdf.AddUTF8Font(fontFamily, "B", r.fontPath)
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("%w: %v", reporterrors.ErrFontUnavailable, err)
		}
		c.family = fontFamily
		c.tr = func(s string) string { return s }
		return c, nil
	}

	cp := pdf.UnicodeTranslatorFromDescriptor("cp1252")
	if err := pdf.Error(); err != nil {
		return nil, err
	}
	c.family = coreFamily
	c.tr = func(s string) string { return cp(polishFold.Replace(s)) }
	return c, nil
}

func (c *canvas) box(x, y, w, h float64, fill Color) {
	c.pdf.SetFillColor(fill.R, fill.G, fill.B)
	c.pdf.Rect(x, y, w, h, "FD")
}

// text writes s inside the box at (x, y), one line per "\n", centred vertically.
func (c *canvas) text(x, y, w, h float64, s, align string, size float64, bold bool) {
	if s == "" {
		return
	}
	style := ""
	if bold {
		style = "B"
	}
	c.pdf.SetFont(c.family, style, size)

	lines := strings.Split(s, "\n")
	lh := size * ptToCm * lineSpacing
	top := y + (h-lh*float64(len(lines)))/2
	for i, line := range lines {
		c.pdf.SetXY(x, top+float64(i)*lh)
		c.pdf.CellFormat(w, lh, c.tr(line), "", 0, align, false, 0, "")
	}
}

func (c *canvas) cell(x, y, w, h float64, s string, fill Color, align string, size float64, bold bool) {
	c.box(x, y, w, h, fill)
	c.text(x, y, w, h, s, align, size, bold)
}

func (c *canvas) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func align(left bool) string {
	if left {
		return "LM"
	}
	return "CM"
}

// Grid prints the monthly grid on landscape pages, one page per GridPage.
func (r *PDFRenderer) Grid(layout GridLayout) ([]byte, error) {
	c, err := r.newCanvas("L", gridMargin)
	if err != nil {
		return nil, err
	}
	width := layout.Width()

	for _, page := range layout.Pages {
		c.pdf.AddPage()
		x0, y := gridMargin, gridMargin

		c.cell(x0, y, width, GridTitleHeight, layout.Title, White, "CM", GridFontSize, false)
		y += GridTitleHeight

		x := x0
		for _, col := range layout.Columns {
			c.cell(x, y, col.Width, GridHeaderHeight, col.Header, col.HeaderFill, "CM", GridFontSize, false)
			x += col.Width
		}
		y += GridHeaderHeight

		for _, row := range page.Rows {
			x = x0
			for i, value := range layout.Cells(row) {
				col := layout.Columns[i]
				if col.Spans {
					c.cell(x, y, col.Width, 2*GridBodyHeight, value, col.BodyFill, align(col.Left), GridFontSize, false)
				} else {
					c.cell(x, y, col.Width, GridBodyHeight, value, col.BodyFill, "CM", GridFontSize, false)
					c.box(x, y+GridBodyHeight, col.Width, GridBodyHeight, col.BodyFill)
				}
				x += col.Width
			}
			y += 2 * GridBodyHeight
		}

		c.cell(x0, y, width, GridFooterHeight, layout.Footer, White, "LM", GridFontSize, false)
	}
	return c.bytes()
}

// Cards prints one portrait page per employee card.
func (r *PDFRenderer) Cards(layout CardLayout) ([]byte, error) {
	c, err := r.newCanvas("P", cardMargin)
	if err != nil {
		return nil, err
	}
	width := CardColumnWidth * float64(len(CardHeaders))

	for _, card := range layout.Cards {
		c.pdf.AddPage()
		x0, y := cardMargin, cardMargin

		c.cell(x0, y, width, 0.8, card.Title, LightGrey, "LM", cardTitleSize, true)
		y += 0.8
		c.cell(x0, y, width, 0.7, card.Subtitle, LightGrey, "LM", CardFontSize, false)
		y += 0.7

		x := x0
		for _, h := range CardHeaders {
			c.cell(x, y, CardColumnWidth, 1.0, h, LightGrey, "CM", cardHeadSize, false)
			x += CardColumnWidth
		}
		y += 1.0

		for _, row := range card.Rows {
			c.cell(x0, y, CardColumnWidth, CardRowHeight, fmt.Sprint(row.Day), row.Fill, "LM", CardFontSize, false)
			x = x0 + CardColumnWidth
			for _, v := range row.Cells {
				c.cell(x, y, CardColumnWidth, CardRowHeight, v, White, "LM", CardFontSize, false)
				x += CardColumnWidth
			}
			y += CardRowHeight
		}

		c.cell(x0, y, CardColumnWidth, CardRowHeight, "Razem", LightGrey, "CM", CardFontSize, false)
		x = x0 + CardColumnWidth
		for _, v := range card.Totals {
			c.cell(x, y, CardColumnWidth, CardRowHeight, v, LightGrey, "CM", CardFontSize, false)
			x += CardColumnWidth
		}
		y += CardRowHeight

		c.cell(x0, y, width, 1.0, CardSignature, White, "LM", CardFontSize, false)
	}
	return c.bytes()
}
