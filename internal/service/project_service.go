package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"project-task-api/internal/domain"
	"project-task-api/internal/dto"
	"project-task-api/internal/metrics"
	"project-task-api/internal/repository"
	"project-task-api/internal/response"
)

// ProjectService defines the interface for project management
type ProjectService interface {
	CreateProject(ctx context.Context, userID uuid.UUID, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	GetProject(ctx context.Context, userID, projectID uuid.UUID) (*dto.ProjectResponse, error)
	ListProjects(ctx context.Context, userID uuid.UUID) ([]*dto.ProjectResponse, error)
	UpdateProject(ctx context.Context, userID, projectID uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error
}

// projectServiceImpl is the implementation of ProjectService
type projectServiceImpl struct {
	projectRepo repository.ProjectRepository
	metrics     *metrics.Metrics
}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, m *metrics.Metrics) ProjectService {
	return &projectServiceImpl{
		projectRepo: projectRepo,
		metrics:     m,
	}
}

// CreateProject creates a new project owned by the user
func (s *projectServiceImpl) CreateProject(ctx context.Context, userID uuid.UUID, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	project := &domain.Project{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Status:      "Active",
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create project", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementProjectCreated()
	}
	return toProjectResponse(project), nil
}

// GetProject fetches a project the user owns
func (s *projectServiceImpl) GetProject(ctx context.Context, userID, projectID uuid.UUID) (*dto.ProjectResponse, error) {
	project, err := s.findOwnedProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// ListProjects lists the user's projects, newest first
func (s *projectServiceImpl) ListProjects(ctx context.Context, userID uuid.UUID) ([]*dto.ProjectResponse, error) {
	projects, err := s.projectRepo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch projects", err.Error())
	}

	responses := make([]*dto.ProjectResponse, len(projects))
	for i, project := range projects {
		responses[i] = toProjectResponse(project)
	}
	return responses, nil
}

// UpdateProject applies a partial update to a project the user owns
func (s *projectServiceImpl) UpdateProject(ctx context.Context, userID, projectID uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.findOwnedProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.DueDate != nil {
		project.DueDate = req.DueDate
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update project", err.Error())
	}
	return toProjectResponse(project), nil
}

// DeleteProject deletes a project the user owns; tasks cascade with it
func (s *projectServiceImpl) DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error {
	if _, err := s.findOwnedProject(ctx, userID, projectID); err != nil {
		return err
	}
	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete project", err.Error())
	}
	return nil
}

func (s *projectServiceImpl) findOwnedProject(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch project", err.Error())
	}
	if project.OwnerID != userID {
		return nil, response.NewForbiddenError("You do not have access to this project", "")
	}
	return project, nil
}

// toProjectResponse converts domain.Project to dto.ProjectResponse
func toProjectResponse(project *domain.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ProjectID:   project.ID,
		OwnerID:     project.OwnerID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		StartDate:   project.StartDate,
		DueDate:     project.DueDate,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}
