package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"project-task-api/internal/domain"
	"project-task-api/internal/dto"
	"project-task-api/internal/metrics"
	"project-task-api/internal/repository"
	"project-task-api/internal/response"
)

// TaskService defines the interface for task management
type TaskService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*dto.TaskResponse, error)
	ListTasksByProject(ctx context.Context, userID, projectID uuid.UUID) ([]*dto.TaskResponse, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	UpdateTaskStatus(ctx context.Context, userID, taskID uuid.UUID, status string) (*dto.TaskResponse, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}

// taskServiceImpl is the implementation of TaskService
type taskServiceImpl struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	metrics     *metrics.Metrics
}

// NewTaskService creates a new instance of TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, m *metrics.Metrics) TaskService {
	return &taskServiceImpl{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		metrics:     m,
	}
}

// CreateTask creates a task in a project the user owns. The initial status
// is logged to the history so activity aggregation sees the creation day.
func (s *taskServiceImpl) CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	owned, err := s.projectRepo.IsOwnedBy(ctx, req.ProjectID, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify project access", err.Error())
	}
	if !owned {
		return nil, response.NewForbiddenError("You do not have access to this project", "")
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = domain.TaskStatusToDo
	}

	task := &domain.Task{
		ProjectID:   req.ProjectID,
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		DueDate:     req.DueDate,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create task", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementTaskCreated()
	}
	return toTaskResponse(task), nil
}

// GetTask fetches a task the user owns
func (s *taskServiceImpl) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.findOwnedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

// ListTasksByProject lists a project's tasks in creation order
func (s *taskServiceImpl) ListTasksByProject(ctx context.Context, userID, projectID uuid.UUID) ([]*dto.TaskResponse, error) {
	owned, err := s.projectRepo.IsOwnedBy(ctx, projectID, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify project access", err.Error())
	}
	if !owned {
		return nil, response.NewForbiddenError("You do not have access to this project", "")
	}

	tasks, err := s.taskRepo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch tasks", err.Error())
	}

	responses := make([]*dto.TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = toTaskResponse(task)
	}
	return responses, nil
}

// UpdateTask applies a partial update to a task's fields other than status
func (s *taskServiceImpl) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.findOwnedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update task", err.Error())
	}
	return toTaskResponse(task), nil
}

// UpdateTaskStatus changes a task's status and appends the transition to the
// history log. A repeated status is still logged; the aggregator keys off
// first and last transitions, so duplicates are harmless.
func (s *taskServiceImpl) UpdateTaskStatus(ctx context.Context, userID, taskID uuid.UUID, status string) (*dto.TaskResponse, error) {
	task, err := s.findOwnedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	status = strings.TrimSpace(status)
	if status == "" {
		return nil, response.NewValidationError("Status is required", "")
	}

	if err := s.taskRepo.UpdateStatus(ctx, task, status); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update task status", err.Error())
	}
	return toTaskResponse(task), nil
}

// DeleteTask deletes a task the user owns
func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if _, err := s.findOwnedTask(ctx, userID, taskID); err != nil {
		return err
	}
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete task", err.Error())
	}
	return nil
}

func (s *taskServiceImpl) findOwnedTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Task not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch task", err.Error())
	}
	if task.OwnerID != userID {
		return nil, response.NewForbiddenError("You do not have access to this task", "")
	}
	return task, nil
}

// toTaskResponse converts domain.Task to dto.TaskResponse
func toTaskResponse(task *domain.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		TaskID:      task.ID,
		ProjectID:   task.ProjectID,
		OwnerID:     task.OwnerID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
