package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"project-task-api/internal/domain"
)

// TaskRepository defines the interface for task and status history data access
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	UpdateStatus(ctx context.Context, task *domain.Task, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindHistoryByProjects(ctx context.Context, projectIDs []uuid.UUID) ([]*domain.TaskStatusHistory, error)
}

// taskRepositoryImpl is the GORM implementation of TaskRepository
type taskRepositoryImpl struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepositoryImpl{db: db}
}

// Create creates a task and appends its initial status to the history log
// in one transaction
func (r *taskRepositoryImpl) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		return tx.Create(&domain.TaskStatusHistory{
			TaskID:    task.ID,
			ProjectID: task.ProjectID,
			Status:    task.Status,
			ChangedAt: time.Now().UTC(),
		}).Error
	})
}

// FindByID finds a task by ID
func (r *taskRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByProject finds all tasks in a project
func (r *taskRepositoryImpl) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByOwner finds all tasks owned by a user across projects
func (r *taskRepositoryImpl) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task without touching the status history
func (r *taskRepositoryImpl) Update(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// UpdateStatus changes a task's status and appends the transition to the
// history log in one transaction
func (r *taskRepositoryImpl) UpdateStatus(ctx context.Context, task *domain.Task, status string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task.Status = status
		if err := tx.Save(task).Error; err != nil {
			return err
		}
		return tx.Create(&domain.TaskStatusHistory{
			TaskID:    task.ID,
			ProjectID: task.ProjectID,
			Status:    status,
			ChangedAt: time.Now().UTC(),
		}).Error
	})
}

// Delete deletes a task; its history entries are kept for the activity log
func (r *taskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id).Error
}

// FindHistoryByProjects loads the status history for a set of projects in
// ascending change order
func (r *taskRepositoryImpl) FindHistoryByProjects(ctx context.Context, projectIDs []uuid.UUID) ([]*domain.TaskStatusHistory, error) {
	if len(projectIDs) == 0 {
		return []*domain.TaskStatusHistory{}, nil
	}

	var history []*domain.TaskStatusHistory
	if err := r.db.WithContext(ctx).
		Where("project_id IN ?", projectIDs).
		Order("changed_at ASC").
		Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}
