package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"project-task-api/internal/domain"
	"project-task-api/internal/dto"
	"project-task-api/internal/response"
	"project-task-api/internal/service"
)

type ColumnHandler struct {
	columnService service.ColumnService
}

func NewColumnHandler(columnService service.ColumnService) *ColumnHandler {
	return &ColumnHandler{
		columnService: columnService,
	}
}

// GetColumns godoc
// @Summary      Get projected columns
// @Description  Maps each field definition in the scope to a table column descriptor in position order
// @Tags         columns
// @Produce      json
// @Param        scope query string true "Scope ('global' or project ID)"
// @Param        entityType query string true "Entity Type" Enums(project, task)
// @Success      200 {object} response.SuccessResponse{data=[]dto.ColumnResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /columns [get]
func (h *ColumnHandler) GetColumns(c *gin.Context) {
	scope, entityType, ok := scopeAndEntityType(c)
	if !ok {
		return
	}

	projectID, err := dto.ParseScope(scope)
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	columns, err := h.columnService.BuildColumns(c.Request.Context(), projectID, entityType)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, columns)
}

// GetColumnRows godoc
// @Summary      Get projected cell rows
// @Description  Renders the formatted cell text of each requested entity for every projected column
// @Tags         columns
// @Accept       json
// @Produce      json
// @Param        request body dto.ColumnRowsRequest true "Entities to project"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ColumnRowResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /columns/rows [post]
func (h *ColumnHandler) GetColumnRows(c *gin.Context) {
	var req dto.ColumnRowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	projectID, err := dto.ParseScope(req.Scope)
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	rows, err := h.columnService.ProjectRows(c.Request.Context(), projectID, domain.EntityType(req.EntityType), req.EntityIDs)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, rows)
}
