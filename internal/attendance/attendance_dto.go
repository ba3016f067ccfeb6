package attendance

import (
	"bytes"
	"encoding/json"
	"strings"
)

// GridResponse is the month grid as shown to the editor: every roster
// employee in roster order, each row exactly Days cells long.
type GridResponse struct {
	Group string    `json:"group"`
	Month string    `json:"month"`
	Year  string    `json:"year"`
	Days  int       `json:"days"`
	Rows  []GridRow `json:"rows"`
}

type GridRow struct {
	Name  string   `json:"name" binding:"required"`
	Cells []string `json:"cells"`
}

type SaveGridRequest struct {
	Rows []GridRow `json:"rows" binding:"required,dive"`
}

// FlexString accepts a JSON string or number, so clients may send
// "month": 3 or "month": "Marzec" and "year": 2025.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

type SetCellRequest struct {
	Month    FlexString `json:"month" binding:"required"`
	Year     FlexString `json:"year" binding:"required"`
	UserName string     `json:"user_name" binding:"required"`
	Day      FlexString `json:"day" binding:"required"`
	Value    string     `json:"value"`
}

type MonthQuery struct {
	Month string `form:"month" binding:"required"`
	Year  string `form:"year" binding:"required"`
}

type ImportResult struct {
	Imported int `json:"imported"`
}
