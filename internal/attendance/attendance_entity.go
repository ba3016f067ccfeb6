package attendance

import "time"

// Document is one stored grid, unique per group, month and year.
// Payload holds the JSON GridDocument as written by the service.
type Document struct {
	ID        uint      `gorm:"primaryKey"`
	GroupName string    `gorm:"column:group_name;size:200;not null;uniqueIndex:uq_attendance_document"`
	Month     string    `gorm:"column:month;size:20;not null;uniqueIndex:uq_attendance_document"`
	Year      string    `gorm:"column:year;size:4;not null;uniqueIndex:uq_attendance_document"`
	Payload   string    `gorm:"column:payload;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Document) TableName() string {
	return "attendance_documents"
}
