package attendance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Rows maps employee names to day cells (index 0 = day 1) and remembers
// insertion order, which is the row order of printed reports.
type Rows struct {
	names []string
	cells map[string][]string
}

func NewRows() Rows {
	return Rows{cells: map[string][]string{}}
}

func (r Rows) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (r Rows) Len() int { return len(r.names) }

func (r Rows) Has(name string) bool {
	_, ok := r.cells[name]
	return ok
}

// Get returns the stored cells; a missing row is nil.
func (r Rows) Get(name string) []string {
	return r.cells[name]
}

// Cell returns the value for a 1-based day, blank past the end of the row.
func (r Rows) Cell(name string, day int) string {
	row := r.cells[name]
	if day < 1 || day > len(row) {
		return ""
	}
	return row[day-1]
}

func (r *Rows) Set(name string, cells []string) {
	if r.cells == nil {
		r.cells = map[string][]string{}
	}
	if _, ok := r.cells[name]; !ok {
		r.names = append(r.names, name)
	}
	r.cells[name] = cells
}

func (r *Rows) Delete(name string) {
	if _, ok := r.cells[name]; !ok {
		return
	}
	delete(r.cells, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
}

// PadRow returns row extended with blanks to n cells; longer rows are kept.
func PadRow(row []string, n int) []string {
	out := make([]string, len(row), max(len(row), n))
	copy(out, row)
	for len(out) < n {
		out = append(out, "")
	}
	return out
}

// SameCells compares two rows ignoring trailing blanks.
func SameCells(a, b []string) bool {
	a, b = trimTrailingBlanks(a), trimTrailingBlanks(b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func trimTrailingBlanks(row []string) []string {
	n := len(row)
	for n > 0 && strings.TrimSpace(row[n-1]) == "" {
		n--
	}
	return row[:n]
}

func (r Rows) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		cells := r.cells[name]
		if cells == nil {
			cells = []string{}
		}
		val, err := json.Marshal(cells)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON keeps key order. Cells may be strings, numbers or null;
// a row that is not an array is read as blank.
func (r *Rows) UnmarshalJSON(data []byte) error {
	*r = NewRows()

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("attendance data: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("attendance data: unexpected key %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		r.Set(name, decodeCells(raw))
	}

	_, err = dec.Token()
	return err
}

func decodeCells(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []string{}
	}

	out := make([]string, len(items))
	for i, item := range items {
		var v any
		d := json.NewDecoder(bytes.NewReader(item))
		d.UseNumber()
		if err := d.Decode(&v); err != nil {
			continue
		}
		switch val := v.(type) {
		case string:
			out[i] = val
		case json.Number:
			out[i] = val.String()
		}
	}
	return out
}

// GridDocument is the persisted attendance grid of one group and month.
type GridDocument struct {
	Group string `json:"group"`
	Month string `json:"month"`
	Year  string `json:"year"`
	Data  Rows   `json:"data"`
}

// UnmarshalJSON also accepts a numeric year.
func (d *GridDocument) UnmarshalJSON(data []byte) error {
	var aux struct {
		Group string          `json:"group"`
		Month string          `json:"month"`
		Year  json.RawMessage `json:"year"`
		Data  Rows            `json:"data"`
	}
	aux.Data = NewRows()
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	d.Group = aux.Group
	d.Month = aux.Month
	d.Data = aux.Data
	d.Year = ""

	if len(aux.Year) > 0 {
		var s string
		if err := json.Unmarshal(aux.Year, &s); err == nil {
			d.Year = s
		} else {
			var n json.Number
			if err := json.Unmarshal(aux.Year, &n); err == nil {
				d.Year = n.String()
			}
		}
	}
	return nil
}

// DecodeDocument parses a stored payload.
func DecodeDocument(payload []byte) (GridDocument, error) {
	var doc GridDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return GridDocument{Data: NewRows()}, err
	}
	if doc.Data.cells == nil {
		doc.Data = NewRows()
	}
	return doc, nil
}

func EncodeDocument(doc GridDocument) ([]byte, error) {
	return json.Marshal(doc)
}
