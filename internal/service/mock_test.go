package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"project-task-api/internal/domain"
	"project-task-api/internal/response"
)

// requireErrCode asserts that err is an AppError carrying the given code
func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected %s error, got nil", code)
	}
	appErr, ok := err.(*response.AppError)
	if !ok {
		t.Fatalf("Expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("Expected error code %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
}

// MockFieldDefinitionRepository is a mock implementation of FieldDefinitionRepository
type MockFieldDefinitionRepository struct {
	CreateFunc           func(ctx context.Context, definition *domain.FieldDefinition) error
	FindByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.FieldDefinition, error)
	FindByScopeFunc      func(ctx context.Context, projectID *uuid.UUID, entityType domain.EntityType) ([]*domain.FieldDefinition, error)
	FindByIDsFunc        func(ctx context.Context, ids []uuid.UUID) ([]*domain.FieldDefinition, error)
	CountByScopeFunc     func(ctx context.Context, projectID *uuid.UUID, entityType domain.EntityType) (int64, error)
	UpdateFunc           func(ctx context.Context, definition *domain.FieldDefinition) error
	DeleteWithValuesFunc func(ctx context.Context, id uuid.UUID) error
	ReorderFunc          func(ctx context.Context, orderedIDs []uuid.UUID) error
}

func (m *MockFieldDefinitionRepository) Create(ctx context.Context, definition *domain.FieldDefinition) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, definition)
	}
	return nil
}

func (m *MockFieldDefinitionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FieldDefinition, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockFieldDefinitionRepository) FindByScope(ctx context.Context, projectID *uuid.UUID, entityType domain.EntityType) ([]*domain.FieldDefinition, error) {
	if m.FindByScopeFunc != nil {
		return m.FindByScopeFunc(ctx, projectID, entityType)
	}
	return nil, nil
}

func (m *MockFieldDefinitionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.FieldDefinition, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockFieldDefinitionRepository) CountByScope(ctx context.Context, projectID *uuid.UUID, entityType domain.EntityType) (int64, error) {
	if m.CountByScopeFunc != nil {
		return m.CountByScopeFunc(ctx, projectID, entityType)
	}
	return 0, nil
}

func (m *MockFieldDefinitionRepository) Update(ctx context.Context, definition *domain.FieldDefinition) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, definition)
	}
	return nil
}

func (m *MockFieldDefinitionRepository) DeleteWithValues(ctx context.Context, id uuid.UUID) error {
	if m.DeleteWithValuesFunc != nil {
		return m.DeleteWithValuesFunc(ctx, id)
	}
	return nil
}

func (m *MockFieldDefinitionRepository) Reorder(ctx context.Context, orderedIDs []uuid.UUID) error {
	if m.ReorderFunc != nil {
		return m.ReorderFunc(ctx, orderedIDs)
	}
	return nil
}

// MockFieldValueRepository is a mock implementation of FieldValueRepository
type MockFieldValueRepository struct {
	UpsertFunc                       func(ctx context.Context, value *domain.FieldValue) error
	FindByEntityAndDefinitionsFunc   func(ctx context.Context, entityID uuid.UUID, definitionIDs []uuid.UUID) ([]*domain.FieldValue, error)
	FindByEntitiesAndDefinitionsFunc func(ctx context.Context, entityIDs []uuid.UUID, definitionIDs []uuid.UUID) ([]*domain.FieldValue, error)
	FindOrphanedFunc                 func(ctx context.Context) ([]*domain.FieldValue, error)
	DeleteBatchFunc                  func(ctx context.Context, ids []uuid.UUID) error
}

func (m *MockFieldValueRepository) Upsert(ctx context.Context, value *domain.FieldValue) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, value)
	}
	return nil
}

func (m *MockFieldValueRepository) FindByEntityAndDefinitions(ctx context.Context, entityID uuid.UUID, definitionIDs []uuid.UUID) ([]*domain.FieldValue, error) {
	if m.FindByEntityAndDefinitionsFunc != nil {
		return m.FindByEntityAndDefinitionsFunc(ctx, entityID, definitionIDs)
	}
	return []*domain.FieldValue{}, nil
}

func (m *MockFieldValueRepository) FindByEntitiesAndDefinitions(ctx context.Context, entityIDs []uuid.UUID, definitionIDs []uuid.UUID) ([]*domain.FieldValue, error) {
	if m.FindByEntitiesAndDefinitionsFunc != nil {
		return m.FindByEntitiesAndDefinitionsFunc(ctx, entityIDs, definitionIDs)
	}
	return []*domain.FieldValue{}, nil
}

func (m *MockFieldValueRepository) FindOrphaned(ctx context.Context) ([]*domain.FieldValue, error) {
	if m.FindOrphanedFunc != nil {
		return m.FindOrphanedFunc(ctx)
	}
	return []*domain.FieldValue{}, nil
}

func (m *MockFieldValueRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	if m.DeleteBatchFunc != nil {
		return m.DeleteBatchFunc(ctx, ids)
	}
	return nil
}

// MockProjectRepository is a mock implementation of ProjectRepository
type MockProjectRepository struct {
	CreateFunc      func(ctx context.Context, project *domain.Project) error
	FindByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	FindByOwnerFunc func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Project, error)
	UpdateFunc      func(ctx context.Context, project *domain.Project) error
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
	IsOwnedByFunc   func(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
}

func (m *MockProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, project)
	}
	return nil
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProjectRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Project, error) {
	if m.FindByOwnerFunc != nil {
		return m.FindByOwnerFunc(ctx, ownerID)
	}
	return []*domain.Project{}, nil
}

func (m *MockProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, project)
	}
	return nil
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockProjectRepository) IsOwnedBy(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	if m.IsOwnedByFunc != nil {
		return m.IsOwnedByFunc(ctx, projectID, userID)
	}
	return true, nil
}

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	CreateFunc                func(ctx context.Context, task *domain.Task) error
	FindByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByProjectFunc         func(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error)
	FindByOwnerFunc           func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)
	UpdateFunc                func(ctx context.Context, task *domain.Task) error
	UpdateStatusFunc          func(ctx context.Context, task *domain.Task, status string) error
	DeleteFunc                func(ctx context.Context, id uuid.UUID) error
	FindHistoryByProjectsFunc func(ctx context.Context, projectIDs []uuid.UUID) ([]*domain.TaskStatusHistory, error)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	if m.FindByProjectFunc != nil {
		return m.FindByProjectFunc(ctx, projectID)
	}
	return []*domain.Task{}, nil
}

func (m *MockTaskRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	if m.FindByOwnerFunc != nil {
		return m.FindByOwnerFunc(ctx, ownerID)
	}
	return []*domain.Task{}, nil
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) UpdateStatus(ctx context.Context, task *domain.Task, status string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, task, status)
	}
	task.Status = status
	return nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockTaskRepository) FindHistoryByProjects(ctx context.Context, projectIDs []uuid.UUID) ([]*domain.TaskStatusHistory, error) {
	if m.FindHistoryByProjectsFunc != nil {
		return m.FindHistoryByProjectsFunc(ctx, projectIDs)
	}
	return []*domain.TaskStatusHistory{}, nil
}

// MockPremiumChecker is a mock implementation of PremiumChecker
type MockPremiumChecker struct {
	IsPremiumFunc func(ctx context.Context, userID uuid.UUID) (bool, error)
}

func (m *MockPremiumChecker) IsPremium(ctx context.Context, userID uuid.UUID) (bool, error) {
	if m.IsPremiumFunc != nil {
		return m.IsPremiumFunc(ctx, userID)
	}
	return false, nil
}

// MockEventPublisher records published events for assertions
type MockEventPublisher struct {
	Events []string
}

func (m *MockEventPublisher) Publish(event string, payload interface{}) {
	m.Events = append(m.Events, event)
}
