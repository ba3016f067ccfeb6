package tenant

import "gorm.io/gorm"

// Scope limits a query to the rows of one group. Groups are the tenants of
// the schedule: rosters, grids and templates all carry a group_name column.
func Scope(group string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("group_name = ?", group)
	}
}
