package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task status sentinel values. Status is stored as free text and compared
// case-insensitively; these are the values the task flow writes.
const (
	TaskStatusToDo    = "To Do"
	TaskStatusWorking = "Working"
	TaskStatusDone    = "Done"
)

// Task represents a task within a project
type Task struct {
	BaseModel
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_tasks_project_id" json:"project_id"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_tasks_owner_id" json:"owner_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"type:varchar(50);not null;default:'To Do'" json:"status"`
	DueDate     *time.Time `gorm:"type:timestamp" json:"due_date,omitempty"`
	Project     Project    `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// TaskStatusHistory is the append-only log of task status transitions.
// One entry is written for the initial status on creation and one per
// subsequent transition; the activity aggregator reads it back.
type TaskStatusHistory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index:idx_task_status_history_task_id" json:"task_id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:idx_task_status_history_project_id" json:"project_id"`
	Status    string    `gorm:"type:varchar(50);not null" json:"status"`
	ChangedAt time.Time `gorm:"type:timestamp;not null;index:idx_task_status_history_changed_at" json:"changed_at"`
}

// TableName specifies the table name for TaskStatusHistory
func (TaskStatusHistory) TableName() string {
	return "task_status_history"
}

// BeforeCreate generates the primary key for a history entry
func (h *TaskStatusHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
