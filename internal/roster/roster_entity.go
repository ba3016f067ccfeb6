package roster

import "time"

// Document holds a group's ordered roster as JSON.
type Document struct {
	ID        uint      `gorm:"primaryKey"`
	GroupName string    `gorm:"column:group_name;size:200;not null;uniqueIndex:uq_roster_group"`
	Payload   string    `gorm:"column:payload;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Document) TableName() string {
	return "roster_documents"
}

// Skill is an entry of the global skills catalog. NameKey is the case-folded
// name and carries the uniqueness.
type Skill struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;size:100;not null"`
	NameKey   string    `gorm:"column:name_key;size:100;not null;uniqueIndex:uq_skill_name_key"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Skill) TableName() string {
	return "skills"
}
