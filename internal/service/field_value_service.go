package service

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"project-task-api/internal/domain"
	"project-task-api/internal/dto"
	"project-task-api/internal/fieldtype"
	"project-task-api/internal/metrics"
	"project-task-api/internal/repository"
	"project-task-api/internal/response"
)

// FieldValueService defines the interface for reading and writing typed
// field values against project and task entities
type FieldValueService interface {
	LoadValues(ctx context.Context, userID uuid.UUID, projectID *uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) ([]*dto.FieldWithValueResponse, error)
	SetValue(ctx context.Context, userID uuid.UUID, entityType domain.EntityType, entityID, fieldID uuid.UUID, raw interface{}) (*dto.SetFieldValueResponse, error)
	BulkSetValues(ctx context.Context, userID uuid.UUID, entityType domain.EntityType, entityID uuid.UUID, values map[string]interface{}) (*dto.BulkSetFieldValuesResponse, error)
}

// fieldValueServiceImpl is the implementation of FieldValueService
type fieldValueServiceImpl struct {
	definitionRepo repository.FieldDefinitionRepository
	valueRepo      repository.FieldValueRepository
	projectRepo    repository.ProjectRepository
	publisher      EventPublisher
	metrics        *metrics.Metrics
}

// NewFieldValueService creates a new instance of FieldValueService
func NewFieldValueService(
	definitionRepo repository.FieldDefinitionRepository,
	valueRepo repository.FieldValueRepository,
	projectRepo repository.ProjectRepository,
	publisher EventPublisher,
	m *metrics.Metrics,
) FieldValueService {
	return &fieldValueServiceImpl{
		definitionRepo: definitionRepo,
		valueRepo:      valueRepo,
		projectRepo:    projectRepo,
		publisher:      publisher,
		metrics:        m,
	}
}

// LoadValues returns every definition visible to the entity paired with the
// entity's current value, in definition position order. Access is rejected
// with an explicit forbidden error rather than an empty list, so callers can
// distinguish "no fields" from "not yours".
func (s *fieldValueServiceImpl) LoadValues(ctx context.Context, userID uuid.UUID, projectID *uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) ([]*dto.FieldWithValueResponse, error) {
	if entityType == domain.EntityTypeProject {
		if err := s.checkProjectAccess(ctx, entityID, userID); err != nil {
			return nil, err
		}
	} else if projectID != nil {
		if err := s.checkProjectAccess(ctx, *projectID, userID); err != nil {
			return nil, err
		}
	}

	definitions, err := s.definitionRepo.FindByScope(ctx, projectID, entityType)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field definitions", err.Error())
	}

	definitionIDs := make([]uuid.UUID, len(definitions))
	for i, definition := range definitions {
		definitionIDs[i] = definition.ID
	}

	values, err := s.valueRepo.FindByEntityAndDefinitions(ctx, entityID, definitionIDs)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field values", err.Error())
	}

	byDefinition := make(map[uuid.UUID]*domain.FieldValue, len(values))
	for _, value := range values {
		byDefinition[value.FieldDefinitionID] = value
	}

	responses := make([]*dto.FieldWithValueResponse, len(definitions))
	for i, definition := range definitions {
		value := byDefinition[definition.ID]
		responses[i] = &dto.FieldWithValueResponse{
			Definition: toFieldDefinitionResponse(definition),
			Value:      fieldtype.CurrentValue(definition.FieldType, value),
			HasValue:   value != nil,
		}
	}
	return responses, nil
}

// SetValue coerces a raw input per the definition's field type and upserts
// it, then re-projects the entity's full values map so the caller's pending
// form state stays in sync with what was actually stored
func (s *fieldValueServiceImpl) SetValue(ctx context.Context, userID uuid.UUID, entityType domain.EntityType, entityID, fieldID uuid.UUID, raw interface{}) (*dto.SetFieldValueResponse, error) {
	definition, value, err := s.writeValue(ctx, userID, entityType, entityID, fieldID, raw)
	if err != nil {
		return nil, err
	}

	form, err := s.projectForm(ctx, definition.ProjectID, entityType, entityID)
	if err != nil {
		return nil, err
	}

	resp := &dto.SetFieldValueResponse{
		FieldID:  fieldID,
		EntityID: entityID,
		Value:    fieldtype.CurrentValue(definition.FieldType, value),
		Form:     form,
	}
	s.publish(EventFieldValueUpdated, resp)
	return resp, nil
}

// BulkSetValues writes multiple fields sequentially and reports a per-field
// outcome. A failed field does not roll back the fields written before it.
func (s *fieldValueServiceImpl) BulkSetValues(ctx context.Context, userID uuid.UUID, entityType domain.EntityType, entityID uuid.UUID, values map[string]interface{}) (*dto.BulkSetFieldValuesResponse, error) {
	if len(values) == 0 {
		return nil, response.NewValidationError("No field values provided", "")
	}

	// stable result order regardless of map iteration
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	resp := &dto.BulkSetFieldValuesResponse{
		Results: make([]dto.FieldWriteResult, 0, len(keys)),
	}
	for _, key := range keys {
		fieldID, err := uuid.Parse(key)
		if err != nil {
			resp.Results = append(resp.Results, dto.FieldWriteResult{Success: false, Error: "invalid field ID: " + key})
			resp.Failed++
			continue
		}

		if _, _, err := s.writeValue(ctx, userID, entityType, entityID, fieldID, values[key]); err != nil {
			message := "write failed"
			var appErr *response.AppError
			if errors.As(err, &appErr) {
				message = appErr.Message
			}
			resp.Results = append(resp.Results, dto.FieldWriteResult{FieldID: fieldID, Success: false, Error: message})
			resp.Failed++
			continue
		}

		resp.Results = append(resp.Results, dto.FieldWriteResult{FieldID: fieldID, Success: true})
		resp.Succeeded++
	}

	if resp.Succeeded > 0 {
		s.publish(EventFieldValueUpdated, map[string]interface{}{
			"entityId":   entityID,
			"entityType": string(entityType),
			"bulk":       true,
		})
	}
	return resp, nil
}

// writeValue validates, coerces and upserts one field value
func (s *fieldValueServiceImpl) writeValue(ctx context.Context, userID uuid.UUID, entityType domain.EntityType, entityID, fieldID uuid.UUID, raw interface{}) (*domain.FieldDefinition, *domain.FieldValue, error) {
	definition, err := s.definitionRepo.FindByID(ctx, fieldID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewNotFoundError("Field definition not found", "")
		}
		return nil, nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field definition", err.Error())
	}

	if definition.EntityType != entityType {
		return nil, nil, response.NewValidationError("Field does not apply to this entity type", "")
	}

	if definition.ProjectID != nil {
		if err := s.checkProjectAccess(ctx, *definition.ProjectID, userID); err != nil {
			return nil, nil, err
		}
	} else if entityType == domain.EntityTypeProject {
		if err := s.checkProjectAccess(ctx, entityID, userID); err != nil {
			return nil, nil, err
		}
	}

	if definition.IsRequired && isEmptyInput(definition.FieldType, raw) {
		return nil, nil, response.NewValidationError("Field '"+definition.FieldName+"' is required", "")
	}

	value := &domain.FieldValue{
		FieldDefinitionID: fieldID,
		EntityID:          entityID,
	}
	if err := fieldtype.ApplyValue(value, definition.FieldType, raw); err != nil {
		return nil, nil, response.NewValidationError(err.Error(), "")
	}

	if err := s.valueRepo.Upsert(ctx, value); err != nil {
		return nil, nil, response.NewAppError(response.ErrCodeInternal, "Failed to save field value", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementFieldValueWrite()
	}
	return definition, value, nil
}

// projectForm flattens the entity's stored values into {fieldName: value}
func (s *fieldValueServiceImpl) projectForm(ctx context.Context, projectID *uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) (map[string]interface{}, error) {
	definitions, err := s.definitionRepo.FindByScope(ctx, projectID, entityType)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field definitions", err.Error())
	}

	definitionIDs := make([]uuid.UUID, len(definitions))
	for i, definition := range definitions {
		definitionIDs[i] = definition.ID
	}

	values, err := s.valueRepo.FindByEntityAndDefinitions(ctx, entityID, definitionIDs)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field values", err.Error())
	}

	byDefinition := make(map[uuid.UUID]*domain.FieldValue, len(values))
	for _, value := range values {
		byDefinition[value.FieldDefinitionID] = value
	}

	form := make(map[string]interface{}, len(definitions))
	for _, definition := range definitions {
		form[definition.FieldName] = fieldtype.CurrentValue(definition.FieldType, byDefinition[definition.ID])
	}
	return form, nil
}

func (s *fieldValueServiceImpl) checkProjectAccess(ctx context.Context, projectID, userID uuid.UUID) error {
	owned, err := s.projectRepo.IsOwnedBy(ctx, projectID, userID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to verify project access", err.Error())
	}
	if !owned {
		return response.NewForbiddenError("You do not have access to this project", "")
	}
	return nil
}

func (s *fieldValueServiceImpl) publish(event string, payload interface{}) {
	if s.publisher != nil {
		s.publisher.Publish(event, payload)
	}
}

// isEmptyInput reports whether a raw input would clear the value slot.
// Boolean fields are exempt: false is a legitimate stored value.
func isEmptyInput(fieldType domain.FieldType, raw interface{}) bool {
	if fieldType == domain.FieldTypeBoolean {
		return false
	}
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []interface{}:
		return len(v) == 0
	case []string:
		return len(v) == 0
	}
	return false
}
