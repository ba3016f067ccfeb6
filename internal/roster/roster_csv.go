package roster

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	rostererrors "go-grafik/internal/roster/errors"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const utf8BOM = "\ufeff"

var profileCSVHeader = []string{
	"Imię i nazwisko",
	"Stanowisko",
	"Kontakt (tel.)",
	"E-mail",
	"Termin badań (RRRR-MM-DD)",
	"Umiejętności",
}

func writeProfileCSV(profiles []Profile) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(profileCSVHeader); err != nil {
		return nil, err
	}
	for _, p := range profiles {
		record := []string{
			p.Name,
			p.Position,
			p.Contact,
			p.Email,
			p.MedicalExam,
			strings.Join(p.Skills.Enabled(), ", "),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

type profileRow struct {
	fields map[string]string
}

var headerSynonyms = map[string][]string{
	"name":         {"imie i nazwisko", "nazwisko i imie", "name", "pracownik"},
	"position":     {"stanowisko", "position", "pos"},
	"contact":      {"kontakt", "kontakt (tel.)", "telefon", "tel", "contact", "phone"},
	"email":        {"e mail", "email", "mail"},
	"medical_exam": {"termin badan", "termin badan lekarskich", "badania", "medical exam", "medical_exam", "exam", "data badan", "termin badan (rrrr mm dd)"},
	"skills":       {"umiejetnosci", "umiejetnosc", "doswiadczenia", "skills"},
}

var plFolder = strings.NewReplacer(
	"ą", "a", "ć", "c", "ę", "e", "ł", "l", "ń", "n",
	"ó", "o", "ś", "s", "ż", "z", "ź", "z",
)

func headerKey(h string) string {
	k := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, utf8BOM)))
	k = plFolder.Replace(k)
	k = strings.ReplaceAll(k, "-", " ")
	return strings.Join(strings.Fields(k), " ")
}

func mapHeader(h string) string {
	k := headerKey(h)
	for field, synonyms := range headerSynonyms {
		for _, s := range synonyms {
			if k == s {
				return field
			}
		}
	}
	return k
}

// readProfileCSV parses an uploaded profile list. UTF-8 (with or without
// BOM) is expected; anything else is decoded as Windows-1250.
func readProfileCSV(r io.Reader) ([]profileRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rostererrors.ErrInvalidCSV, err)
	}
	data = bytes.TrimPrefix(data, []byte(utf8BOM))
	if !utf8.Valid(data) {
		data, err = charmap.Windows1250.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", rostererrors.ErrInvalidCSV, err)
		}
	}

	firstLine := string(data)
	if i := strings.IndexByte(firstLine, '\n'); i >= 0 {
		firstLine = firstLine[:i]
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = ';'
	if !strings.Contains(firstLine, ";") && strings.Contains(firstLine, ",") {
		reader.Comma = ','
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rostererrors.ErrInvalidCSV, err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = mapHeader(h)
	}

	var out []profileRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", rostererrors.ErrInvalidCSV, err)
		}

		fields := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(record) {
				fields[col] = strings.TrimSpace(record[i])
			} else {
				fields[col] = ""
			}
		}
		out = append(out, profileRow{fields: fields})
	}
	return out, nil
}

var skillSplitRe = regexp.MustCompile(`[;,]`)

func splitSkills(s string) []string {
	var out []string
	for _, tok := range skillSplitRe.Split(s, -1) {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// normalizeExamDate accepts YYYY-MM-DD and DD.MM.YYYY with '.', '/' or '-'
// separators. Unreadable input clears the date.
func normalizeExamDate(s string) string {
	s = strings.NewReplacer("/", ".", "-", ".").Replace(strings.TrimSpace(s))
	var parts []string
	for _, p := range strings.Split(s, ".") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) != 3 {
		return ""
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return ""
		}
		nums[i] = n
	}

	y, m, d := nums[0], nums[1], nums[2]
	if len(parts[0]) != 4 {
		d, m, y = nums[0], nums[1], nums[2]
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

var (
	slugStrip = regexp.MustCompile(`[^\w\s-]`)
	slugDash  = regexp.MustCompile(`[-\s]+`)
)

// slugify lower-cases s, drops accents and non-word characters and joins
// words with '-'.
func slugify(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var ascii strings.Builder
	for _, r := range folded {
		if r < utf8.RuneSelf {
			ascii.WriteRune(r)
		}
	}

	out := slugStrip.ReplaceAllString(strings.ToLower(ascii.String()), "")
	out = slugDash.ReplaceAllString(strings.TrimSpace(out), "-")
	return strings.Trim(out, "-_")
}
