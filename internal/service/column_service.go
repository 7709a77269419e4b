package service

import (
	"context"

	"github.com/google/uuid"

	"project-task-api/internal/domain"
	"project-task-api/internal/dto"
	"project-task-api/internal/fieldtype"
	"project-task-api/internal/repository"
	"project-task-api/internal/response"
)

// ColumnService projects field definitions into extra table columns and
// renders the formatted cell text for rows of entities
type ColumnService interface {
	BuildColumns(ctx context.Context, projectID *uuid.UUID, entityType domain.EntityType) ([]*dto.ColumnResponse, error)
	ProjectRows(ctx context.Context, projectID *uuid.UUID, entityType domain.EntityType, entityIDs []uuid.UUID) ([]*dto.ColumnRowResponse, error)
}

// columnServiceImpl is the implementation of ColumnService
type columnServiceImpl struct {
	definitionRepo repository.FieldDefinitionRepository
	valueRepo      repository.FieldValueRepository
}

// NewColumnService creates a new instance of ColumnService
func NewColumnService(definitionRepo repository.FieldDefinitionRepository, valueRepo repository.FieldValueRepository) ColumnService {
	return &columnServiceImpl{
		definitionRepo: definitionRepo,
		valueRepo:      valueRepo,
	}
}

// BuildColumns maps each definition in the scope to a column descriptor in
// position order. The accessor is stable across renames so table state
// (widths, sort) keyed on it survives a field name change.
func (s *columnServiceImpl) BuildColumns(ctx context.Context, projectID *uuid.UUID, entityType domain.EntityType) ([]*dto.ColumnResponse, error) {
	definitions, err := s.definitionRepo.FindByScope(ctx, projectID, entityType)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field definitions", err.Error())
	}

	columns := make([]*dto.ColumnResponse, len(definitions))
	for i, definition := range definitions {
		columns[i] = &dto.ColumnResponse{
			ID:        definition.ID.String(),
			Accessor:  columnAccessor(definition.ID),
			Header:    definition.FieldName,
			FieldType: string(definition.FieldType),
			Position:  definition.Position,
		}
	}
	return columns, nil
}

// ProjectRows renders the formatted cell text for a batch of entities with
// two queries total, one for definitions and one for all values. Every row
// carries a cell for every column; absent values render as the placeholder.
func (s *columnServiceImpl) ProjectRows(ctx context.Context, projectID *uuid.UUID, entityType domain.EntityType, entityIDs []uuid.UUID) ([]*dto.ColumnRowResponse, error) {
	definitions, err := s.definitionRepo.FindByScope(ctx, projectID, entityType)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field definitions", err.Error())
	}

	definitionIDs := make([]uuid.UUID, len(definitions))
	for i, definition := range definitions {
		definitionIDs[i] = definition.ID
	}

	values, err := s.valueRepo.FindByEntitiesAndDefinitions(ctx, entityIDs, definitionIDs)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field values", err.Error())
	}

	type valueKey struct {
		entityID     uuid.UUID
		definitionID uuid.UUID
	}
	byKey := make(map[valueKey]*domain.FieldValue, len(values))
	for _, value := range values {
		byKey[valueKey{value.EntityID, value.FieldDefinitionID}] = value
	}

	rows := make([]*dto.ColumnRowResponse, len(entityIDs))
	for i, entityID := range entityIDs {
		cells := make(map[string]string, len(definitions))
		for _, definition := range definitions {
			cells[columnAccessor(definition.ID)] = fieldtype.Format(definition, byKey[valueKey{entityID, definition.ID}])
		}
		rows[i] = &dto.ColumnRowResponse{
			EntityID: entityID,
			Cells:    cells,
		}
	}
	return rows, nil
}

func columnAccessor(definitionID uuid.UUID) string {
	return "custom_" + definitionID.String()
}
