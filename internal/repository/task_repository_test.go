package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"project-task-api/internal/domain"
)

func TestTaskRepository_Create_LogsInitialStatus(t *testing.T) {
	db := setupFieldTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	projectID := uuid.New()
	task := &domain.Task{
		ProjectID: projectID,
		OwnerID:   uuid.New(),
		Title:     "First task",
		Status:    domain.TaskStatusToDo,
	}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	history, err := repo.FindHistoryByProjects(ctx, []uuid.UUID{projectID})
	if err != nil {
		t.Fatalf("FindHistoryByProjects() error = %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("Expected 1 history entry after create, got %d", len(history))
	}
	if history[0].TaskID != task.ID || history[0].Status != domain.TaskStatusToDo {
		t.Errorf("Expected initial To Do entry for the task, got %+v", history[0])
	}
}

func TestTaskRepository_UpdateStatus_AppendsHistory(t *testing.T) {
	db := setupFieldTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	projectID := uuid.New()
	task := &domain.Task{
		ProjectID: projectID,
		OwnerID:   uuid.New(),
		Title:     "Task",
		Status:    domain.TaskStatusToDo,
	}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.UpdateStatus(ctx, task, domain.TaskStatusWorking); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if err := repo.UpdateStatus(ctx, task, domain.TaskStatusDone); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	updated, err := repo.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if updated.Status != domain.TaskStatusDone {
		t.Errorf("Expected status Done, got %s", updated.Status)
	}

	history, err := repo.FindHistoryByProjects(ctx, []uuid.UUID{projectID})
	if err != nil {
		t.Fatalf("FindHistoryByProjects() error = %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("Expected 3 history entries, got %d", len(history))
	}
	want := []string{domain.TaskStatusToDo, domain.TaskStatusWorking, domain.TaskStatusDone}
	for i, entry := range history {
		if entry.Status != want[i] {
			t.Errorf("Expected history[%d] = %s, got %s", i, want[i], entry.Status)
		}
	}
}

func TestTaskRepository_Delete_KeepsHistory(t *testing.T) {
	db := setupFieldTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	projectID := uuid.New()
	task := &domain.Task{
		ProjectID: projectID,
		OwnerID:   uuid.New(),
		Title:     "Short lived",
		Status:    domain.TaskStatusToDo,
	}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Delete(ctx, task.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	history, err := repo.FindHistoryByProjects(ctx, []uuid.UUID{projectID})
	if err != nil {
		t.Fatalf("FindHistoryByProjects() error = %v", err)
	}
	if len(history) != 1 {
		t.Errorf("Expected history retained after task delete, got %d entries", len(history))
	}
}
