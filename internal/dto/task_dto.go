package dto

import (
	"time"

	"github.com/google/uuid"
)

// TaskResponse represents a task in API responses
type TaskResponse struct {
	TaskID      uuid.UUID  `json:"taskId"`
	ProjectID   uuid.UUID  `json:"projectId"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	ProjectID   uuid.UUID  `json:"projectId" binding:"required"`
	Title       string     `json:"title" binding:"required,max=255"`
	Description string     `json:"description"`
	Status      string     `json:"status" binding:"omitempty,max=50"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTaskRequest represents a partial update of a task
type UpdateTaskRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTaskStatusRequest changes a task's status, appending the transition
// to the status history log
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,max=50"`
}
