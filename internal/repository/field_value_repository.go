package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"project-task-api/internal/domain"
)

// FieldValueRepository defines the interface for field value data access
type FieldValueRepository interface {
	Upsert(ctx context.Context, value *domain.FieldValue) error
	FindByEntityAndDefinitions(ctx context.Context, entityID uuid.UUID, definitionIDs []uuid.UUID) ([]*domain.FieldValue, error)
	FindByEntitiesAndDefinitions(ctx context.Context, entityIDs []uuid.UUID, definitionIDs []uuid.UUID) ([]*domain.FieldValue, error)
	FindOrphaned(ctx context.Context) ([]*domain.FieldValue, error)
	DeleteBatch(ctx context.Context, ids []uuid.UUID) error
}

// fieldValueRepositoryImpl is the GORM implementation of FieldValueRepository
type fieldValueRepositoryImpl struct {
	db *gorm.DB
}

// NewFieldValueRepository creates a new instance of FieldValueRepository
func NewFieldValueRepository(db *gorm.DB) FieldValueRepository {
	return &fieldValueRepositoryImpl{db: db}
}

// Upsert writes a field value as a single atomic insert-or-update keyed on
// (field_definition_id, entity_id). Concurrent writers cannot produce
// duplicate rows; last write wins.
func (r *fieldValueRepositoryImpl) Upsert(ctx context.Context, value *domain.FieldValue) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "field_definition_id"}, {Name: "entity_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"text_value", "number_value", "date_value", "boolean_value", "json_value", "updated_at",
			}),
		}).
		Create(value).Error
}

// FindByEntityAndDefinitions finds the values of one entity for a set of
// definitions. At most one row exists per definition.
func (r *fieldValueRepositoryImpl) FindByEntityAndDefinitions(ctx context.Context, entityID uuid.UUID, definitionIDs []uuid.UUID) ([]*domain.FieldValue, error) {
	if len(definitionIDs) == 0 {
		return []*domain.FieldValue{}, nil
	}

	var values []*domain.FieldValue
	if err := r.db.WithContext(ctx).
		Where("entity_id = ? AND field_definition_id IN ?", entityID, definitionIDs).
		Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// FindByEntitiesAndDefinitions batch-loads values for many entities at once,
// used by the column projector to fill table rows with one query
func (r *fieldValueRepositoryImpl) FindByEntitiesAndDefinitions(ctx context.Context, entityIDs []uuid.UUID, definitionIDs []uuid.UUID) ([]*domain.FieldValue, error) {
	if len(entityIDs) == 0 || len(definitionIDs) == 0 {
		return []*domain.FieldValue{}, nil
	}

	var values []*domain.FieldValue
	if err := r.db.WithContext(ctx).
		Where("entity_id IN ? AND field_definition_id IN ?", entityIDs, definitionIDs).
		Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// FindOrphaned finds values whose owning definition no longer exists.
// API deletes cascade, but direct store writes can still leave orphans.
func (r *fieldValueRepositoryImpl) FindOrphaned(ctx context.Context) ([]*domain.FieldValue, error) {
	var values []*domain.FieldValue
	if err := r.db.WithContext(ctx).
		Where("field_definition_id NOT IN (?)",
			r.db.Model(&domain.FieldDefinition{}).Select("id")).
		Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// DeleteBatch deletes multiple field values by ID in a single statement
func (r *fieldValueRepositoryImpl) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&domain.FieldValue{}).Error
}
