package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"project-task-api/internal/domain"
	"project-task-api/internal/dto"
	"project-task-api/internal/response"
	"project-task-api/internal/service"
)

// MockFieldValueService is a mock implementation of FieldValueService
type MockFieldValueService struct {
	LoadValuesFunc    func(ctx context.Context, userID uuid.UUID, projectID *uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) ([]*dto.FieldWithValueResponse, error)
	SetValueFunc      func(ctx context.Context, userID uuid.UUID, entityType domain.EntityType, entityID, fieldID uuid.UUID, raw interface{}) (*dto.SetFieldValueResponse, error)
	BulkSetValuesFunc func(ctx context.Context, userID uuid.UUID, entityType domain.EntityType, entityID uuid.UUID, values map[string]interface{}) (*dto.BulkSetFieldValuesResponse, error)
}

func (m *MockFieldValueService) LoadValues(ctx context.Context, userID uuid.UUID, projectID *uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) ([]*dto.FieldWithValueResponse, error) {
	if m.LoadValuesFunc != nil {
		return m.LoadValuesFunc(ctx, userID, projectID, entityType, entityID)
	}
	return []*dto.FieldWithValueResponse{}, nil
}

func (m *MockFieldValueService) SetValue(ctx context.Context, userID uuid.UUID, entityType domain.EntityType, entityID, fieldID uuid.UUID, raw interface{}) (*dto.SetFieldValueResponse, error) {
	if m.SetValueFunc != nil {
		return m.SetValueFunc(ctx, userID, entityType, entityID, fieldID, raw)
	}
	return nil, nil
}

func (m *MockFieldValueService) BulkSetValues(ctx context.Context, userID uuid.UUID, entityType domain.EntityType, entityID uuid.UUID, values map[string]interface{}) (*dto.BulkSetFieldValuesResponse, error) {
	if m.BulkSetValuesFunc != nil {
		return m.BulkSetValuesFunc(ctx, userID, entityType, entityID, values)
	}
	return nil, nil
}

func setupFieldValueRouter(mockService *MockFieldValueService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewFieldValueHandler(mockService)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", uuid.New())
		c.Next()
	})
	router.GET("/field-values/:entityType/:entityId", handler.GetFieldValues)
	router.PUT("/field-values/:entityType/:entityId", handler.BulkSetFieldValues)
	router.PUT("/field-values/:entityType/:entityId/:fieldId", handler.SetFieldValue)
	return router
}

func TestFieldValueHandler_SetFieldValue(t *testing.T) {
	fieldID := uuid.New()
	entityID := uuid.New()

	mockService := &MockFieldValueService{
		SetValueFunc: func(ctx context.Context, userID uuid.UUID, entityType domain.EntityType, eID, fID uuid.UUID, raw interface{}) (*dto.SetFieldValueResponse, error) {
			if entityType != domain.EntityTypeTask {
				t.Errorf("Expected entity type task, got %s", entityType)
			}
			if raw != "3.5" {
				t.Errorf("Expected raw value '3.5', got %v", raw)
			}
			return &dto.SetFieldValueResponse{
				FieldID:  fID,
				EntityID: eID,
				Value:    3.5,
				Form:     map[string]interface{}{"Points": 3.5},
			}, nil
		},
	}
	router := setupFieldValueRouter(mockService)

	body := `{"value":"3.5"}`
	req := httptest.NewRequest(http.MethodPut, "/field-values/task/"+entityID.String()+"/"+fieldID.String(), bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp response.SuccessResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	dataBytes, _ := json.Marshal(resp.Data)
	var result dto.SetFieldValueResponse
	if err := json.Unmarshal(dataBytes, &result); err != nil {
		t.Fatalf("Failed to unmarshal data: %v", err)
	}
	if result.Value != 3.5 {
		t.Errorf("Expected stored value 3.5, got %v", result.Value)
	}
	if result.Form["Points"] != 3.5 {
		t.Errorf("Expected re-projected form to carry Points=3.5, got %v", result.Form)
	}
}

func TestFieldValueHandler_SetFieldValue_InvalidEntityType(t *testing.T) {
	router := setupFieldValueRouter(&MockFieldValueService{})

	req := httptest.NewRequest(http.MethodPut,
		"/field-values/board/"+uuid.New().String()+"/"+uuid.New().String(),
		bytes.NewBufferString(`{"value":1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown entity type, got %d", w.Code)
	}
}

func TestFieldValueHandler_BulkSetFieldValues(t *testing.T) {
	fieldA := uuid.New()
	fieldB := uuid.New()

	tests := []struct {
		name           string
		result         *dto.BulkSetFieldValuesResponse
		expectedStatus int
	}{
		{
			name: "all writes succeed",
			result: &dto.BulkSetFieldValuesResponse{
				Results: []dto.FieldWriteResult{
					{FieldID: fieldA, Success: true},
					{FieldID: fieldB, Success: true},
				},
				Succeeded: 2,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "partial failure returns multi-status",
			result: &dto.BulkSetFieldValuesResponse{
				Results: []dto.FieldWriteResult{
					{FieldID: fieldA, Success: true},
					{FieldID: fieldB, Success: false, Error: "Field 'Due Date' is required"},
				},
				Succeeded: 1,
				Failed:    1,
			},
			expectedStatus: http.StatusMultiStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockFieldValueService{
				BulkSetValuesFunc: func(ctx context.Context, userID uuid.UUID, entityType domain.EntityType, entityID uuid.UUID, values map[string]interface{}) (*dto.BulkSetFieldValuesResponse, error) {
					return tt.result, nil
				},
			}
			router := setupFieldValueRouter(mockService)

			body, _ := json.Marshal(dto.BulkSetFieldValuesRequest{
				Values: map[string]interface{}{fieldA.String(): 1, fieldB.String(): ""},
			})
			req := httptest.NewRequest(http.MethodPut, "/field-values/task/"+uuid.New().String(), bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestFieldValueHandler_GetFieldValues_Forbidden(t *testing.T) {
	mockService := &MockFieldValueService{
		LoadValuesFunc: func(ctx context.Context, userID uuid.UUID, projectID *uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) ([]*dto.FieldWithValueResponse, error) {
			return nil, response.NewForbiddenError("You do not have access to this project", "")
		},
	}
	router := setupFieldValueRouter(mockService)

	req := httptest.NewRequest(http.MethodGet, "/field-values/project/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", w.Code)
	}
}

var _ service.FieldValueService = (*MockFieldValueService)(nil)
