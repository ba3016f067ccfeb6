package report

// MonthQuery selects the month a report is printed for. Month may be a
// Polish name or its number.
type MonthQuery struct {
	Month string `form:"month" binding:"required"`
	Year  string `form:"year" binding:"required"`
}
