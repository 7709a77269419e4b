package dto

import (
	"time"

	"github.com/google/uuid"
)

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ProjectID   uuid.UUID  `json:"projectId"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateProjectRequest represents the request to create a project
type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required,max=255"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateProjectRequest represents a partial update of a project
type UpdateProjectRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" binding:"omitempty,max=50"`
	StartDate   *time.Time `json:"startDate"`
	DueDate     *time.Time `json:"dueDate"`
}
