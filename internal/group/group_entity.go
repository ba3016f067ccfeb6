package group

import (
	"time"

	"github.com/google/uuid"
)

// Group is a department. Rosters, grids and templates are keyed by Name.
type Group struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:200;not null;uniqueIndex:uq_group_name"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Group) TableName() string {
	return "schedule_groups"
}
