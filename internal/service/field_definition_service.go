package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"project-task-api/internal/domain"
	"project-task-api/internal/dto"
	"project-task-api/internal/fieldtype"
	"project-task-api/internal/metrics"
	"project-task-api/internal/repository"
	"project-task-api/internal/response"
)

// Realtime event names published by the custom-fields engine
const (
	EventFieldDefinitionCreated   = "field_definition.created"
	EventFieldDefinitionUpdated   = "field_definition.updated"
	EventFieldDefinitionDeleted   = "field_definition.deleted"
	EventFieldDefinitionReordered = "field_definition.reordered"
	EventFieldValueUpdated        = "field_value.updated"
)

// PremiumChecker resolves whether a user is on a premium plan
type PremiumChecker interface {
	IsPremium(ctx context.Context, userID uuid.UUID) (bool, error)
}

// EventPublisher fans out realtime events to connected clients
type EventPublisher interface {
	Publish(event string, payload interface{})
}

// FieldDefinitionService defines the interface for field definition management
type FieldDefinitionService interface {
	List(ctx context.Context, userID uuid.UUID, projectID *uuid.UUID, entityType domain.EntityType) (*dto.FieldDefinitionListResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateFieldDefinitionRequest) (*dto.FieldDefinitionResponse, error)
	Update(ctx context.Context, fieldID uuid.UUID, req *dto.UpdateFieldDefinitionRequest) (*dto.FieldDefinitionResponse, error)
	Delete(ctx context.Context, fieldID uuid.UUID) error
	Reorder(ctx context.Context, req *dto.ReorderFieldDefinitionsRequest) ([]*dto.FieldDefinitionResponse, error)
}

// fieldDefinitionServiceImpl is the implementation of FieldDefinitionService
type fieldDefinitionServiceImpl struct {
	definitionRepo repository.FieldDefinitionRepository
	premium        PremiumChecker
	publisher      EventPublisher
	redisClient    *redis.Client
	metrics        *metrics.Metrics
	maxFreeFields  int
	cacheTTL       time.Duration
}

// NewFieldDefinitionService creates a new instance of FieldDefinitionService.
// The redis client, publisher and metrics may be nil; caching, realtime events
// and counters are then skipped.
func NewFieldDefinitionService(
	definitionRepo repository.FieldDefinitionRepository,
	premium PremiumChecker,
	publisher EventPublisher,
	redisClient *redis.Client,
	m *metrics.Metrics,
	maxFreeFields int,
	cacheTTL time.Duration,
) FieldDefinitionService {
	if maxFreeFields <= 0 {
		maxFreeFields = 3
	}
	return &fieldDefinitionServiceImpl{
		definitionRepo: definitionRepo,
		premium:        premium,
		publisher:      publisher,
		redisClient:    redisClient,
		metrics:        m,
		maxFreeFields:  maxFreeFields,
		cacheTTL:       cacheTTL,
	}
}

// List returns the definitions for a scope and entity kind in ascending
// position order, together with the caller's plan-limit state
func (s *fieldDefinitionServiceImpl) List(ctx context.Context, userID uuid.UUID, projectID *uuid.UUID, entityType domain.EntityType) (*dto.FieldDefinitionListResponse, error) {
	definitions, err := s.loadDefinitions(ctx, projectID, entityType)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field definitions", err.Error())
	}

	limitReached := false
	if len(definitions) >= s.maxFreeFields {
		premium, err := s.isPremium(ctx, userID)
		if err == nil && !premium {
			limitReached = true
		}
	}

	responses := make([]*dto.FieldDefinitionResponse, len(definitions))
	for i, definition := range definitions {
		responses[i] = toFieldDefinitionResponse(definition)
	}

	return &dto.FieldDefinitionListResponse{
		Fields:        responses,
		LimitReached:  limitReached,
		MaxFreeFields: s.maxFreeFields,
	}, nil
}

// Create validates and persists a new field definition. The free-tier field
// cap is enforced here, so a direct API call cannot bypass it the way the
// old client-side gate could be bypassed.
func (s *fieldDefinitionServiceImpl) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateFieldDefinitionRequest) (*dto.FieldDefinitionResponse, error) {
	projectID, err := dto.ParseScope(req.Scope)
	if err != nil {
		return nil, response.NewValidationError(err.Error(), "")
	}
	entityType := domain.EntityType(req.EntityType)

	fieldName := strings.TrimSpace(req.FieldName)
	if fieldName == "" {
		return nil, response.NewValidationError("Field name is required", "")
	}
	if len(fieldName) > 50 {
		return nil, response.NewValidationError("Field name must be 50 characters or fewer", "")
	}

	fieldType := domain.FieldType(req.FieldType)
	if !fieldtype.IsValid(fieldType) {
		return nil, response.NewValidationError(fmt.Sprintf("Unknown field type: %s", req.FieldType), "")
	}

	options := fieldtype.DefaultOptions(fieldType)
	if len(req.Options) > 0 {
		if err := fieldtype.ValidateOptions(fieldType, []byte(req.Options)); err != nil {
			return nil, response.NewValidationError(err.Error(), "")
		}
		options = []byte(req.Options)
	}

	existing, err := s.definitionRepo.FindByScope(ctx, projectID, entityType)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field definitions", err.Error())
	}

	for _, definition := range existing {
		if strings.EqualFold(definition.FieldName, fieldName) {
			return nil, response.NewValidationError(fmt.Sprintf("A field named '%s' already exists", fieldName), "")
		}
	}

	if len(existing) >= s.maxFreeFields {
		premium, err := s.isPremium(ctx, userID)
		if err != nil {
			// premium lookup failures must not take field creation down
			premium = true
		}
		if !premium {
			return nil, response.NewLimitExceededError(
				fmt.Sprintf("Free plan allows up to %d custom fields; upgrade to add more", s.maxFreeFields), "")
		}
	}

	definition := &domain.FieldDefinition{
		ProjectID:  projectID,
		EntityType: entityType,
		FieldName:  fieldName,
		FieldType:  fieldType,
		IsRequired: req.IsRequired,
		Options:    options,
		Position:   len(existing),
	}

	if err := s.definitionRepo.Create(ctx, definition); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create field definition", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementFieldDefinitionCreated()
	}
	s.invalidateCache(ctx, projectID, entityType)

	resp := toFieldDefinitionResponse(definition)
	s.publish(EventFieldDefinitionCreated, resp)
	return resp, nil
}

// Update applies a partial change to a field definition. When the field type
// changes, the options are reset to the new type's defaults unless the patch
// carries a payload valid for that type; the previous type's shape is never
// carried over.
func (s *fieldDefinitionServiceImpl) Update(ctx context.Context, fieldID uuid.UUID, req *dto.UpdateFieldDefinitionRequest) (*dto.FieldDefinitionResponse, error) {
	definition, err := s.definitionRepo.FindByID(ctx, fieldID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Field definition not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field definition", err.Error())
	}

	if req.FieldName != nil {
		fieldName := strings.TrimSpace(*req.FieldName)
		if fieldName == "" {
			return nil, response.NewValidationError("Field name is required", "")
		}
		if len(fieldName) > 50 {
			return nil, response.NewValidationError("Field name must be 50 characters or fewer", "")
		}
		definition.FieldName = fieldName
	}

	if req.IsRequired != nil {
		definition.IsRequired = *req.IsRequired
	}

	if req.FieldType != nil && domain.FieldType(*req.FieldType) != definition.FieldType {
		newType := domain.FieldType(*req.FieldType)
		if !fieldtype.IsValid(newType) {
			return nil, response.NewValidationError(fmt.Sprintf("Unknown field type: %s", *req.FieldType), "")
		}
		definition.FieldType = newType
		definition.Options = fieldtype.DefaultOptions(newType)
	}

	if len(req.Options) > 0 {
		// after a type change the payload must fit the new type; stale options
		// from the previous type are rejected, not carried over
		if err := fieldtype.ValidateOptions(definition.FieldType, []byte(req.Options)); err != nil {
			return nil, response.NewValidationError(err.Error(), "")
		}
		definition.Options = []byte(req.Options)
	}

	if err := s.definitionRepo.Update(ctx, definition); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update field definition", err.Error())
	}

	s.invalidateCache(ctx, definition.ProjectID, definition.EntityType)

	resp := toFieldDefinitionResponse(definition)
	s.publish(EventFieldDefinitionUpdated, resp)
	return resp, nil
}

// Delete removes a field definition and every value stored against it in a
// single transaction, so API deletes cannot orphan values
func (s *fieldDefinitionServiceImpl) Delete(ctx context.Context, fieldID uuid.UUID) error {
	definition, err := s.definitionRepo.FindByID(ctx, fieldID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Field definition not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch field definition", err.Error())
	}

	if err := s.definitionRepo.DeleteWithValues(ctx, fieldID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete field definition", err.Error())
	}

	s.invalidateCache(ctx, definition.ProjectID, definition.EntityType)
	s.publish(EventFieldDefinitionDeleted, map[string]interface{}{
		"fieldId":    fieldID,
		"scope":      dto.FormatScope(definition.ProjectID),
		"entityType": string(definition.EntityType),
	})
	return nil
}

// Reorder reassigns each definition's position to its index in the ordered
// ID list. The whole reorder is one transaction: it either applies fully or
// not at all.
func (s *fieldDefinitionServiceImpl) Reorder(ctx context.Context, req *dto.ReorderFieldDefinitionsRequest) ([]*dto.FieldDefinitionResponse, error) {
	projectID, err := dto.ParseScope(req.Scope)
	if err != nil {
		return nil, response.NewValidationError(err.Error(), "")
	}
	entityType := domain.EntityType(req.EntityType)

	existing, err := s.definitionRepo.FindByScope(ctx, projectID, entityType)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field definitions", err.Error())
	}

	known := make(map[uuid.UUID]bool, len(existing))
	for _, definition := range existing {
		known[definition.ID] = true
	}
	for _, id := range req.OrderedIDs {
		if !known[id] {
			return nil, response.NewValidationError(fmt.Sprintf("Field %s does not belong to this scope", id), "")
		}
	}

	if err := s.definitionRepo.Reorder(ctx, req.OrderedIDs); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to reorder field definitions", err.Error())
	}

	s.invalidateCache(ctx, projectID, entityType)

	reordered, err := s.definitionRepo.FindByScope(ctx, projectID, entityType)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field definitions", err.Error())
	}

	responses := make([]*dto.FieldDefinitionResponse, len(reordered))
	for i, definition := range reordered {
		responses[i] = toFieldDefinitionResponse(definition)
	}
	s.publish(EventFieldDefinitionReordered, map[string]interface{}{
		"scope":      req.Scope,
		"entityType": req.EntityType,
		"fields":     responses,
	})
	return responses, nil
}

// loadDefinitions reads a scope's definitions through the redis cache
func (s *fieldDefinitionServiceImpl) loadDefinitions(ctx context.Context, projectID *uuid.UUID, entityType domain.EntityType) ([]*domain.FieldDefinition, error) {
	key := definitionCacheKey(projectID, entityType)

	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, key).Bytes(); err == nil {
			var definitions []*domain.FieldDefinition
			if err := json.Unmarshal(cached, &definitions); err == nil {
				return definitions, nil
			}
		}
	}

	definitions, err := s.definitionRepo.FindByScope(ctx, projectID, entityType)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(definitions); err == nil {
			// best effort; a failed cache write only costs a re-read
			s.redisClient.Set(ctx, key, data, s.cacheTTL)
		}
	}
	return definitions, nil
}

func (s *fieldDefinitionServiceImpl) invalidateCache(ctx context.Context, projectID *uuid.UUID, entityType domain.EntityType) {
	if s.redisClient == nil {
		return
	}
	s.redisClient.Del(ctx, definitionCacheKey(projectID, entityType))
}

func (s *fieldDefinitionServiceImpl) isPremium(ctx context.Context, userID uuid.UUID) (bool, error) {
	if s.premium == nil {
		return false, nil
	}
	return s.premium.IsPremium(ctx, userID)
}

func (s *fieldDefinitionServiceImpl) publish(event string, payload interface{}) {
	if s.publisher != nil {
		s.publisher.Publish(event, payload)
	}
}

func definitionCacheKey(projectID *uuid.UUID, entityType domain.EntityType) string {
	return fmt.Sprintf("fielddefs:%s:%s", dto.FormatScope(projectID), entityType)
}

// toFieldDefinitionResponse converts domain.FieldDefinition to dto.FieldDefinitionResponse
func toFieldDefinitionResponse(definition *domain.FieldDefinition) *dto.FieldDefinitionResponse {
	return &dto.FieldDefinitionResponse{
		FieldID:    definition.ID,
		Scope:      dto.FormatScope(definition.ProjectID),
		EntityType: string(definition.EntityType),
		FieldName:  definition.FieldName,
		FieldType:  string(definition.FieldType),
		IsRequired: definition.IsRequired,
		Options:    json.RawMessage(definition.Options),
		Position:   definition.Position,
		CreatedAt:  definition.CreatedAt,
		UpdatedAt:  definition.UpdatedAt,
	}
}
