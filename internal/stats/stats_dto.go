package stats

type PanelQuery struct {
	Q         string `form:"q"`
	FromMonth string `form:"from_month"`
	FromYear  string `form:"from_year"`
	ToMonth   string `form:"to_month"`
	ToYear    string `form:"to_year"`
}

type ComputeRequest struct {
	Employees []string `json:"employees"`
	FromMonth string   `json:"from_month" binding:"required"`
	FromYear  string   `json:"from_year" binding:"required"`
	ToMonth   string   `json:"to_month" binding:"required"`
	ToYear    string   `json:"to_year" binding:"required"`
}

type ComputeResponse struct {
	Months []MonthYear       `json:"months"`
	Stats  map[string]Counts `json:"stats"`
}

type PanelRow struct {
	Name                  string `json:"name"`
	Position              string `json:"position"`
	Contact               string `json:"contact"`
	Email                 string `json:"email"`
	Workdays              int    `json:"workdays"`
	SundaysHolidaysWorked int    `json:"sundays_holidays_worked"`
	SickDays              int    `json:"sick_days"`
	ExamDaysLeft          *int   `json:"exam_days_left"`
	ExamSoon              bool   `json:"exam_soon"`
}
