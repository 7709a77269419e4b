package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"project-task-api/internal/domain"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	IsOwnedBy(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
}

// projectRepositoryImpl is the GORM implementation of ProjectRepository
type projectRepositoryImpl struct {
	db *gorm.DB
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

// Create creates a new project
func (r *projectRepositoryImpl) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// FindByID finds a project by ID
func (r *projectRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByOwner finds all projects owned by a user, newest first
func (r *projectRepositoryImpl) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Project, error) {
	var projects []*domain.Project
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update updates a project
func (r *projectRepositoryImpl) Update(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete deletes a project
func (r *projectRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Project{}, "id = ?", id).Error
}

// IsOwnedBy reports whether the project exists and is owned by the user.
// A missing project reports false without an error.
func (r *projectRepositoryImpl) IsOwnedBy(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).
		Select("id").
		Where("id = ? AND owner_id = ?", projectID, userID).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
