package attendance

import (
	"strconv"
	"strings"
)

type kind int

const (
	kindBlank kind = iota
	kindShift
	kindLeave
	kindUnrecognized
)

// Leave codes recognised in grid cells.
const (
	CodeVacation     = "w"
	CodeSick         = "c"
	CodeCompensation = "xz"
	CodeUP           = "up"
	CodeOccasional   = "uo"
	CodeChildcare    = "upk"
	CodeDE           = "de"
	CodeNU           = "nu"
	CodeMO           = "mo"
	CodeUB           = "ub"
	CodeWZ           = "wż"
	CodeSZ           = "sz"
	CodeWS           = "ws"

	ShiftNight = 3
)

var leaveCodes = map[string]struct{}{
	CodeVacation: {}, CodeSick: {}, CodeCompensation: {}, CodeUP: {}, CodeOccasional: {},
	CodeChildcare: {}, CodeDE: {}, CodeNU: {}, CodeMO: {}, CodeUB: {}, CodeWZ: {},
	CodeSZ: {}, CodeWS: {},
}

// Token is one parsed grid cell.
type Token struct {
	raw  string
	code string
	kind kind
}

// ParseToken trims and case-folds a cell and classifies it. Unknown values
// are kept verbatim and never rejected.
func ParseToken(raw string) Token {
	code := strings.ToLower(strings.TrimSpace(raw))
	t := Token{raw: raw, code: code}

	switch code {
	case "":
		t.kind = kindBlank
	case "1", "2", "3":
		t.kind = kindShift
	default:
		if _, ok := leaveCodes[code]; ok {
			t.kind = kindLeave
		} else {
			t.kind = kindUnrecognized
		}
	}
	return t
}

func (t Token) Code() string { return t.code }
func (t Token) IsBlank() bool { return t.kind == kindBlank }
func (t Token) IsWorked() bool { return t.kind == kindShift }
func (t Token) IsLeave() bool { return t.kind == kindLeave }
func (t Token) IsSick() bool { return t.code == CodeSick }
func (t Token) Trimmed() string { return strings.TrimSpace(t.raw) }

// Int is the integer reading of the cell ("03", "+2", "12" included).
func (t Token) Int() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(t.raw))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ShiftValue is the shift named by the integer reading, so "03" is a night
// shift on a card while IsWorked only accepts the exact codes. Zero when the
// reading is not 1, 2 or 3.
func (t Token) ShiftValue() int {
	n, ok := t.Int()
	if !ok || n < 1 || n > 3 {
		return 0
	}
	return n
}

func (t Token) IsShiftValue() bool { return t.ShiftValue() != 0 }
