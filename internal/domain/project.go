package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a project owned by a single user
type Project struct {
	BaseModel
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_projects_owner_id" json:"owner_id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"type:varchar(50);not null;default:'Active'" json:"status"`
	StartDate   *time.Time `gorm:"type:timestamp" json:"start_date,omitempty"`
	DueDate     *time.Time `gorm:"type:timestamp" json:"due_date,omitempty"`
	Tasks       []Task     `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}
