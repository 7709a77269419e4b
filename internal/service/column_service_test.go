package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-task-api/internal/domain"
	"project-task-api/internal/fieldtype"
)

func TestColumnService_BuildColumns(t *testing.T) {
	priority := &domain.FieldDefinition{
		BaseModel:  domain.BaseModel{ID: uuid.New()},
		EntityType: domain.EntityTypeTask,
		FieldName:  "Priority",
		FieldType:  domain.FieldTypeSelect,
		Position:   0,
	}
	points := &domain.FieldDefinition{
		BaseModel:  domain.BaseModel{ID: uuid.New()},
		EntityType: domain.EntityTypeTask,
		FieldName:  "Points",
		FieldType:  domain.FieldTypeNumber,
		Position:   1,
	}
	definitionRepo := &MockFieldDefinitionRepository{
		FindByScopeFunc: func(ctx context.Context, projectID *uuid.UUID, entityType domain.EntityType) ([]*domain.FieldDefinition, error) {
			return []*domain.FieldDefinition{priority, points}, nil
		},
	}
	svc := NewColumnService(definitionRepo, &MockFieldValueRepository{})

	columns, err := svc.BuildColumns(context.Background(), nil, domain.EntityTypeTask)

	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "custom_"+priority.ID.String(), columns[0].Accessor)
	assert.Equal(t, "Priority", columns[0].Header)
	assert.Equal(t, "select", columns[0].FieldType)
	assert.Equal(t, "custom_"+points.ID.String(), columns[1].Accessor)
	assert.Equal(t, 1, columns[1].Position)
}

func TestColumnService_ProjectRows(t *testing.T) {
	priority := &domain.FieldDefinition{
		BaseModel:  domain.BaseModel{ID: uuid.New()},
		EntityType: domain.EntityTypeTask,
		FieldName:  "Priority",
		FieldType:  domain.FieldTypeSelect,
		Options:    []byte(`{"choices":[{"label":"High","value":"high"},{"label":"Low","value":"low"}]}`),
	}
	points := &domain.FieldDefinition{
		BaseModel:  domain.BaseModel{ID: uuid.New()},
		EntityType: domain.EntityTypeTask,
		FieldName:  "Points",
		FieldType:  domain.FieldTypeNumber,
	}

	taskA := uuid.New()
	taskB := uuid.New()
	high := "high"
	five := 5.0

	definitionRepo := &MockFieldDefinitionRepository{
		FindByScopeFunc: func(ctx context.Context, projectID *uuid.UUID, entityType domain.EntityType) ([]*domain.FieldDefinition, error) {
			return []*domain.FieldDefinition{priority, points}, nil
		},
	}
	valueRepo := &MockFieldValueRepository{
		FindByEntitiesAndDefinitionsFunc: func(ctx context.Context, entityIDs []uuid.UUID, definitionIDs []uuid.UUID) ([]*domain.FieldValue, error) {
			return []*domain.FieldValue{
				{FieldDefinitionID: priority.ID, EntityID: taskA, TextValue: &high},
				{FieldDefinitionID: points.ID, EntityID: taskA, NumberValue: &five},
			}, nil
		},
	}
	svc := NewColumnService(definitionRepo, valueRepo)

	rows, err := svc.ProjectRows(context.Background(), nil, domain.EntityTypeTask, []uuid.UUID{taskA, taskB})

	require.NoError(t, err)
	require.Len(t, rows, 2)

	cellsA := rows[0].Cells
	assert.Equal(t, taskA, rows[0].EntityID)
	assert.Equal(t, "High", cellsA["custom_"+priority.ID.String()])
	assert.Equal(t, "5", cellsA["custom_"+points.ID.String()])

	// a task with no stored values still gets a cell per column
	cellsB := rows[1].Cells
	assert.Equal(t, taskB, rows[1].EntityID)
	assert.Len(t, cellsB, 2)
	assert.Equal(t, fieldtype.Placeholder, cellsB["custom_"+priority.ID.String()])
	assert.Equal(t, fieldtype.Placeholder, cellsB["custom_"+points.ID.String()])
}
