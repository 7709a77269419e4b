package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"project-task-api/internal/response"
	"project-task-api/internal/service"
)

type ActivityHandler struct {
	activityService service.ActivityService
}

func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// GetTaskActivity godoc
// @Summary      Task activity series
// @Description  Returns per-day open/created/closed task counts over a trailing window for the caller's tasks
// @Tags         activity
// @Produce      json
// @Param        range query string false "Window" Enums(7d, 30d, 90d) default(30d)
// @Success      200 {object} response.SuccessResponse{data=dto.TaskActivityResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /activity/tasks [get]
func (h *ActivityHandler) GetTaskActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	activity, err := h.activityService.TaskActivity(c.Request.Context(), userID, c.Query("range"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, activity)
}

// GetProjectFlow godoc
// @Summary      Project flow metrics
// @Description  Returns cycle and lead times for a project's completed tasks with averages and day-bucket distributions
// @Tags         activity
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.FlowMetricsResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /projects/{projectId}/flow [get]
func (h *ActivityHandler) GetProjectFlow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid project ID")
		return
	}

	flow, err := h.activityService.ProjectFlow(c.Request.Context(), userID, projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, flow)
}
