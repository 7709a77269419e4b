package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"project-task-api/internal/domain"
)

// FieldDefinitionRepository defines the interface for field definition data access
type FieldDefinitionRepository interface {
	Create(ctx context.Context, definition *domain.FieldDefinition) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.FieldDefinition, error)
	FindByScope(ctx context.Context, projectID *uuid.UUID, entityType domain.EntityType) ([]*domain.FieldDefinition, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.FieldDefinition, error)
	CountByScope(ctx context.Context, projectID *uuid.UUID, entityType domain.EntityType) (int64, error)
	Update(ctx context.Context, definition *domain.FieldDefinition) error
	DeleteWithValues(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, orderedIDs []uuid.UUID) error
}

// fieldDefinitionRepositoryImpl is the GORM implementation of FieldDefinitionRepository
type fieldDefinitionRepositoryImpl struct {
	db *gorm.DB
}

// NewFieldDefinitionRepository creates a new instance of FieldDefinitionRepository
func NewFieldDefinitionRepository(db *gorm.DB) FieldDefinitionRepository {
	return &fieldDefinitionRepositoryImpl{db: db}
}

// Create creates a new field definition
func (r *fieldDefinitionRepositoryImpl) Create(ctx context.Context, definition *domain.FieldDefinition) error {
	return r.db.WithContext(ctx).Create(definition).Error
}

// FindByID finds a field definition by ID
func (r *fieldDefinitionRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.FieldDefinition, error) {
	var definition domain.FieldDefinition
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&definition).Error; err != nil {
		return nil, err
	}
	return &definition, nil
}

// FindByScope finds all field definitions for a scope and entity type,
// ordered by position with insertion order breaking ties
func (r *fieldDefinitionRepositoryImpl) FindByScope(ctx context.Context, projectID *uuid.UUID, entityType domain.EntityType) ([]*domain.FieldDefinition, error) {
	var definitions []*domain.FieldDefinition
	if err := scopeQuery(r.db.WithContext(ctx), projectID).
		Where("entity_type = ?", entityType).
		Order("position ASC, created_at ASC").
		Find(&definitions).Error; err != nil {
		return nil, err
	}
	return definitions, nil
}

// FindByIDs finds multiple field definitions by their IDs in a single query
func (r *fieldDefinitionRepositoryImpl) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.FieldDefinition, error) {
	if len(ids) == 0 {
		return []*domain.FieldDefinition{}, nil
	}

	var definitions []*domain.FieldDefinition
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&definitions).Error; err != nil {
		return nil, err
	}
	return definitions, nil
}

// CountByScope counts the field definitions for a scope and entity type
func (r *fieldDefinitionRepositoryImpl) CountByScope(ctx context.Context, projectID *uuid.UUID, entityType domain.EntityType) (int64, error) {
	var count int64
	if err := scopeQuery(r.db.WithContext(ctx).Model(&domain.FieldDefinition{}), projectID).
		Where("entity_type = ?", entityType).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update updates a field definition
func (r *fieldDefinitionRepositoryImpl) Update(ctx context.Context, definition *domain.FieldDefinition) error {
	return r.db.WithContext(ctx).Save(definition).Error
}

// DeleteWithValues deletes a field definition together with every value
// referencing it, in one transaction so values can never be orphaned
func (r *fieldDefinitionRepositoryImpl) DeleteWithValues(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("field_definition_id = ?", id).Delete(&domain.FieldValue{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.FieldDefinition{}, "id = ?", id).Error
	})
}

// Reorder reassigns each definition's position to its index in orderedIDs.
// Runs in one transaction so a failed update leaves no partial ordering.
func (r *fieldDefinitionRepositoryImpl) Reorder(ctx context.Context, orderedIDs []uuid.UUID) error {
	if len(orderedIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for index, id := range orderedIDs {
			result := tx.Model(&domain.FieldDefinition{}).
				Where("id = ?", id).
				Update("position", index)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

// scopeQuery filters by project scope, where a nil project ID selects the
// global scope
func scopeQuery(db *gorm.DB, projectID *uuid.UUID) *gorm.DB {
	if projectID == nil {
		return db.Where("project_id IS NULL")
	}
	return db.Where("project_id = ?", *projectID)
}
