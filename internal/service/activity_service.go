package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"project-task-api/internal/domain"
	"project-task-api/internal/dto"
	"project-task-api/internal/repository"
	"project-task-api/internal/response"
)

// ActivityService aggregates task status history into the dashboard's
// activity series and flow (cycle/lead time) metrics
type ActivityService interface {
	TaskActivity(ctx context.Context, userID uuid.UUID, window string) (*dto.TaskActivityResponse, error)
	ProjectFlow(ctx context.Context, userID, projectID uuid.UUID) (*dto.FlowMetricsResponse, error)
}

// activityServiceImpl is the implementation of ActivityService
type activityServiceImpl struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

// NewActivityService creates a new instance of ActivityService
func NewActivityService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) ActivityService {
	return &activityServiceImpl{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

var windowDays = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
}

// TaskActivity computes the per-day open/created/closed counts over a
// trailing window for every task the user owns. Each task's history is
// swept once with a cursor instead of re-scanning it per day, so the cost
// is history size plus tasks times days, not their product.
func (s *activityServiceImpl) TaskActivity(ctx context.Context, userID uuid.UUID, window string) (*dto.TaskActivityResponse, error) {
	if window == "" {
		window = "30d"
	}
	days, ok := windowDays[window]
	if !ok {
		return nil, response.NewValidationError("Range must be one of 7d, 30d, 90d", "")
	}

	projects, err := s.projectRepo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch projects", err.Error())
	}

	projectIDs := make([]uuid.UUID, len(projects))
	for i, project := range projects {
		projectIDs[i] = project.ID
	}

	tasks := make([]*domain.Task, 0)
	for _, projectID := range projectIDs {
		projectTasks, err := s.taskRepo.FindByProject(ctx, projectID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch tasks", err.Error())
		}
		tasks = append(tasks, projectTasks...)
	}

	history, err := s.taskRepo.FindHistoryByProjects(ctx, projectIDs)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch status history", err.Error())
	}
	byTask := groupHistoryByTask(history)

	today := startOfDayUTC(time.Now().UTC())
	start := today.AddDate(0, 0, -(days - 1))

	points := make([]dto.DailyActivityPoint, days)
	for i := range points {
		points[i] = dto.DailyActivityPoint{Date: start.AddDate(0, 0, i).Format("2006-01-02")}
	}

	dayIndex := func(t time.Time) (int, bool) {
		d := startOfDayUTC(t.UTC())
		i := int(d.Sub(start).Hours() / 24)
		if i < 0 || i >= days {
			return 0, false
		}
		return i, true
	}

	for _, task := range tasks {
		taskHistory := byTask[task.ID]

		// created: the day the task first entered "To Do"
		if createdAt, ok := firstStatusAt(taskHistory, domain.TaskStatusToDo); ok {
			if i, in := dayIndex(createdAt); in {
				points[i].Created++
			}
		}
		// closed: the day the task first entered "Done"
		if closedAt, ok := firstStatusAt(taskHistory, domain.TaskStatusDone); ok {
			if i, in := dayIndex(closedAt); in {
				points[i].Closed++
			}
		}

		// open: tasks not in "Done" as of each day's end
		firstDay := 0
		if i, in := dayIndex(task.CreatedAt); in {
			firstDay = i
		} else if task.CreatedAt.After(today.AddDate(0, 0, 1)) {
			continue
		}

		status := task.Status
		cursor := 0
		for i := firstDay; i < days; i++ {
			endOfDay := start.AddDate(0, 0, i+1)
			for cursor < len(taskHistory) && taskHistory[cursor].ChangedAt.Before(endOfDay) {
				status = taskHistory[cursor].Status
				cursor++
			}
			if !strings.EqualFold(status, domain.TaskStatusDone) {
				points[i].Open++
			}
		}
	}

	return &dto.TaskActivityResponse{Range: window, Points: points}, nil
}

// ProjectFlow computes cycle and lead times for a project's completed tasks.
// Cycle time runs from the first "Working" transition to the last "Done";
// lead time runs from task creation to the last "Done".
func (s *activityServiceImpl) ProjectFlow(ctx context.Context, userID, projectID uuid.UUID) (*dto.FlowMetricsResponse, error) {
	owned, err := s.projectRepo.IsOwnedBy(ctx, projectID, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify project access", err.Error())
	}
	if !owned {
		return nil, response.NewForbiddenError("You do not have access to this project", "")
	}

	tasks, err := s.taskRepo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch tasks", err.Error())
	}

	history, err := s.taskRepo.FindHistoryByProjects(ctx, []uuid.UUID{projectID})
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch status history", err.Error())
	}
	byTask := groupHistoryByTask(history)

	resp := &dto.FlowMetricsResponse{
		CycleTimes:        []dto.TaskFlowEntry{},
		LeadTimes:         []dto.TaskFlowEntry{},
		CycleDistribution: map[int]int{},
		LeadDistribution:  map[int]int{},
	}

	for _, task := range tasks {
		if !strings.EqualFold(task.Status, domain.TaskStatusDone) {
			continue
		}
		taskHistory := byTask[task.ID]

		doneAt, ok := lastStatusAt(taskHistory, domain.TaskStatusDone)
		if !ok {
			continue
		}

		leadDays := daysBetween(task.CreatedAt, doneAt)
		resp.LeadTimes = append(resp.LeadTimes, dto.TaskFlowEntry{
			TaskID:      task.ID,
			Title:       task.Title,
			Days:        leadDays,
			CompletedAt: doneAt,
		})
		resp.LeadDistribution[leadDays]++

		// cycle time needs a Working transition that precedes completion
		workingAt, ok := firstStatusAt(taskHistory, domain.TaskStatusWorking)
		if !ok || !doneAt.After(workingAt) {
			continue
		}
		cycleDays := daysBetween(workingAt, doneAt)
		resp.CycleTimes = append(resp.CycleTimes, dto.TaskFlowEntry{
			TaskID:      task.ID,
			Title:       task.Title,
			Days:        cycleDays,
			CompletedAt: doneAt,
		})
		resp.CycleDistribution[cycleDays]++
	}

	resp.AvgCycleDays = averageDays(resp.CycleTimes)
	resp.AvgLeadDays = averageDays(resp.LeadTimes)
	return resp, nil
}

// groupHistoryByTask splits a project-wide history slice into per-task
// slices, preserving ascending change order
func groupHistoryByTask(history []*domain.TaskStatusHistory) map[uuid.UUID][]*domain.TaskStatusHistory {
	byTask := make(map[uuid.UUID][]*domain.TaskStatusHistory)
	for _, entry := range history {
		byTask[entry.TaskID] = append(byTask[entry.TaskID], entry)
	}
	for _, entries := range byTask {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].ChangedAt.Before(entries[j].ChangedAt)
		})
	}
	return byTask
}

// firstStatusAt returns when the task first entered the status.
// Status comparison is case-insensitive.
func firstStatusAt(history []*domain.TaskStatusHistory, status string) (time.Time, bool) {
	for _, entry := range history {
		if strings.EqualFold(entry.Status, status) {
			return entry.ChangedAt, true
		}
	}
	return time.Time{}, false
}

// lastStatusAt returns when the task last entered the status
func lastStatusAt(history []*domain.TaskStatusHistory, status string) (time.Time, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if strings.EqualFold(history[i].Status, status) {
			return history[i].ChangedAt, true
		}
	}
	return time.Time{}, false
}

// daysBetween returns the number of whole days from start to end
func daysBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours() / 24)
}

func averageDays(entries []dto.TaskFlowEntry) int {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, entry := range entries {
		sum += entry.Days
	}
	return int(math.Round(float64(sum) / float64(len(entries))))
}

func startOfDayUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
