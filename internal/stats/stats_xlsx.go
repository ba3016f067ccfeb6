package stats

import (
	"github.com/xuri/excelize/v2"
)

const panelSheet = "Statystyki"

var panelHeader = []interface{}{
	"Nazwisko i imię",
	"Stanowisko",
	"Kontakt",
	"E-mail",
	"Dni robocze",
	"Niedziele i święta",
	"L4",
	"Dni do badań",
}

// writePanelXLSX renders the panel as a single sheet: a title line, a header
// and one row per employee. Exams due within 30 days are highlighted.
func writePanelXLSX(title string, rows []PanelRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", panelSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
		Border: cellBorder(),
	})
	if err != nil {
		return nil, err
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{Border: cellBorder()})
	if err != nil {
		return nil, err
	}
	soonStyle, err := f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#FFC7CE"}, Pattern: 1},
		Border: cellBorder(),
	})
	if err != nil {
		return nil, err
	}

	if err := f.SetCellValue(panelSheet, "A1", title); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(panelSheet, "A3", &panelHeader); err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(panelHeader))
	if err := f.SetCellStyle(panelSheet, "A3", lastCol+"3", headerStyle); err != nil {
		return nil, err
	}

	for i, r := range rows {
		rowNum := 4 + i
		var exam interface{} = ""
		if r.ExamDaysLeft != nil {
			exam = *r.ExamDaysLeft
		}
		values := []interface{}{
			r.Name, r.Position, r.Contact, r.Email,
			r.Workdays, r.SundaysHolidaysWorked, r.SickDays, exam,
		}

		start, _ := excelize.CoordinatesToCellName(1, rowNum)
		end, _ := excelize.CoordinatesToCellName(len(values), rowNum)
		if err := f.SetSheetRow(panelSheet, start, &values); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(panelSheet, start, end, bodyStyle); err != nil {
			return nil, err
		}
		if r.ExamSoon {
			if err := f.SetCellStyle(panelSheet, end, end, soonStyle); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(panelSheet, "A", "A", 28); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(panelSheet, "B", lastCol, 16); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cellBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}
