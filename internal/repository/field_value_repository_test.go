package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"project-task-api/internal/domain"
)

func TestFieldValueRepository_Upsert_SingleRowPerField(t *testing.T) {
	db := setupFieldTestDB(t)
	repo := NewFieldValueRepository(db)
	ctx := context.Background()

	definition := createDefinition(t, db, nil, "Points", 0, time.Now().UTC())
	entityID := uuid.New()

	five := 5.0
	if err := repo.Upsert(ctx, &domain.FieldValue{
		FieldDefinitionID: definition.ID,
		EntityID:          entityID,
		NumberValue:       &five,
	}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	// second write for the same (definition, entity) replaces, never duplicates
	eight := 8.0
	if err := repo.Upsert(ctx, &domain.FieldValue{
		FieldDefinitionID: definition.ID,
		EntityID:          entityID,
		NumberValue:       &eight,
	}); err != nil {
		t.Fatalf("Upsert() second write error = %v", err)
	}

	var count int64
	db.Model(&domain.FieldValue{}).
		Where("field_definition_id = ? AND entity_id = ?", definition.ID, entityID).
		Count(&count)
	if count != 1 {
		t.Fatalf("Expected a single row after two upserts, got %d", count)
	}

	values, err := repo.FindByEntityAndDefinitions(ctx, entityID, []uuid.UUID{definition.ID})
	if err != nil {
		t.Fatalf("FindByEntityAndDefinitions() error = %v", err)
	}
	if len(values) != 1 || values[0].NumberValue == nil || *values[0].NumberValue != 8.0 {
		t.Errorf("Expected last write to win with 8, got %+v", values[0])
	}
}

func TestFieldValueRepository_Upsert_ReplacesAllSlots(t *testing.T) {
	db := setupFieldTestDB(t)
	repo := NewFieldValueRepository(db)
	ctx := context.Background()

	definition := createDefinition(t, db, nil, "Anything", 0, time.Now().UTC())
	entityID := uuid.New()

	five := 5.0
	if err := repo.Upsert(ctx, &domain.FieldValue{
		FieldDefinitionID: definition.ID,
		EntityID:          entityID,
		NumberValue:       &five,
	}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	text := "hello"
	if err := repo.Upsert(ctx, &domain.FieldValue{
		FieldDefinitionID: definition.ID,
		EntityID:          entityID,
		TextValue:         &text,
	}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	values, err := repo.FindByEntityAndDefinitions(ctx, entityID, []uuid.UUID{definition.ID})
	if err != nil {
		t.Fatalf("FindByEntityAndDefinitions() error = %v", err)
	}
	if len(values) != 1 {
		t.Fatalf("Expected one row, got %d", len(values))
	}
	if values[0].NumberValue != nil {
		t.Errorf("Expected stale number slot cleared, got %v", *values[0].NumberValue)
	}
	if values[0].TextValue == nil || *values[0].TextValue != "hello" {
		t.Errorf("Expected text slot 'hello', got %v", values[0].TextValue)
	}
}

func TestFieldValueRepository_FindByEntitiesAndDefinitions(t *testing.T) {
	db := setupFieldTestDB(t)
	repo := NewFieldValueRepository(db)
	ctx := context.Background()

	definition := createDefinition(t, db, nil, "Points", 0, time.Now().UTC())
	other := createDefinition(t, db, nil, "Other", 1, time.Now().UTC())

	taskA := uuid.New()
	taskB := uuid.New()
	outside := uuid.New()

	one := 1.0
	for _, entityID := range []uuid.UUID{taskA, taskB, outside} {
		if err := repo.Upsert(ctx, &domain.FieldValue{
			FieldDefinitionID: definition.ID,
			EntityID:          entityID,
			NumberValue:       &one,
		}); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	values, err := repo.FindByEntitiesAndDefinitions(ctx, []uuid.UUID{taskA, taskB}, []uuid.UUID{definition.ID, other.ID})
	if err != nil {
		t.Fatalf("FindByEntitiesAndDefinitions() error = %v", err)
	}
	if len(values) != 2 {
		t.Errorf("Expected 2 values for the requested entities, got %d", len(values))
	}

	values, err = repo.FindByEntitiesAndDefinitions(ctx, []uuid.UUID{}, []uuid.UUID{definition.ID})
	if err != nil {
		t.Fatalf("FindByEntitiesAndDefinitions(empty) error = %v", err)
	}
	if len(values) != 0 {
		t.Errorf("Expected no values for empty entity list, got %d", len(values))
	}
}

func TestFieldValueRepository_FindOrphaned(t *testing.T) {
	db := setupFieldTestDB(t)
	repo := NewFieldValueRepository(db)
	ctx := context.Background()

	definition := createDefinition(t, db, nil, "Live", 0, time.Now().UTC())

	text := "kept"
	if err := repo.Upsert(ctx, &domain.FieldValue{
		FieldDefinitionID: definition.ID,
		EntityID:          uuid.New(),
		TextValue:         &text,
	}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	// value pointing at a definition that no longer exists
	orphan := &domain.FieldValue{
		BaseModel:         domain.BaseModel{ID: uuid.New()},
		FieldDefinitionID: uuid.New(),
		EntityID:          uuid.New(),
		TextValue:         &text,
	}
	if err := db.Create(orphan).Error; err != nil {
		t.Fatalf("failed to create orphan: %v", err)
	}

	orphaned, err := repo.FindOrphaned(ctx)
	if err != nil {
		t.Fatalf("FindOrphaned() error = %v", err)
	}
	if len(orphaned) != 1 || orphaned[0].ID != orphan.ID {
		t.Fatalf("Expected exactly the orphan row, got %d", len(orphaned))
	}

	if err := repo.DeleteBatch(ctx, []uuid.UUID{orphan.ID}); err != nil {
		t.Fatalf("DeleteBatch() error = %v", err)
	}
	orphaned, err = repo.FindOrphaned(ctx)
	if err != nil {
		t.Fatalf("FindOrphaned() error = %v", err)
	}
	if len(orphaned) != 0 {
		t.Errorf("Expected no orphans after cleanup, got %d", len(orphaned))
	}
}
