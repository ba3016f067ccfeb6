package template

import (
	"time"

	"github.com/google/uuid"
)

// Template is a named, ordered list of positions used to pre-fill a grid.
type Template struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	GroupName string    `gorm:"column:group_name;size:200;not null;uniqueIndex:uq_template_group_name,priority:1"`
	Name      string    `gorm:"size:120;not null;uniqueIndex:uq_template_group_name,priority:2"`
	Positions []string  `gorm:"type:text;serializer:json;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Template) TableName() string {
	return "schedule_templates"
}
