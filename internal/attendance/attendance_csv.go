package attendance

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	attendanceerrors "go-grafik/internal/attendance/errors"
)

const (
	csvNameHeader = "Pracownik"
	utf8BOM       = "\ufeff"
)

// writeMonthCSV writes "Pracownik;1;2;...;N" followed by one line per row.
func writeMonthCSV(grid GridResponse) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	w := csv.NewWriter(&buf)
	w.Comma = ';'

	header := make([]string, 0, grid.Days+1)
	header = append(header, csvNameHeader)
	for d := 1; d <= grid.Days; d++ {
		header = append(header, strconv.Itoa(d))
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range grid.Rows {
		record := append([]string{row.Name}, row.Cells...)
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// readMonthCSV parses a month CSV. The separator is ';' unless the header
// line only contains ','. Day columns are matched by header number, so
// columns may be missing or reordered.
func readMonthCSV(r io.Reader, days int) ([]GridRow, error) {
	br := bufio.NewReader(r)
	peek, _ := br.Peek(4096)
	firstLine := string(peek)
	if i := strings.IndexByte(firstLine, '\n'); i >= 0 {
		firstLine = firstLine[:i]
	}

	reader := csv.NewReader(br)
	reader.Comma = ';'
	if !strings.Contains(firstLine, ";") && strings.Contains(firstLine, ",") {
		reader.Comma = ','
	}
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", attendanceerrors.ErrInvalidCSV, err)
	}
	if len(header) == 0 {
		return nil, attendanceerrors.ErrInvalidCSV
	}

	// column index -> day
	dayCols := map[int]int{}
	for i, h := range header[1:] {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		d, err := strconv.Atoi(h)
		if err != nil || d < 1 || d > days {
			return nil, fmt.Errorf("%w: column %q is not a day of this month", attendanceerrors.ErrInvalidCSV, h)
		}
		dayCols[i+1] = d
	}

	var out []GridRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", attendanceerrors.ErrInvalidCSV, err)
		}
		if len(record) == 0 {
			continue
		}

		name := strings.TrimSpace(strings.TrimPrefix(record[0], utf8BOM))
		if name == "" {
			continue
		}

		cells := make([]string, days)
		for col, d := range dayCols {
			if col < len(record) {
				cells[d-1] = strings.TrimSpace(record[col])
			}
		}
		out = append(out, GridRow{Name: name, Cells: cells})
	}
	return out, nil
}
