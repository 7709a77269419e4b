package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"project-task-api/internal/domain"
	"project-task-api/internal/dto"
	"project-task-api/internal/response"
	"project-task-api/internal/service"
)

type FieldValueHandler struct {
	valueService service.FieldValueService
}

func NewFieldValueHandler(valueService service.FieldValueService) *FieldValueHandler {
	return &FieldValueHandler{
		valueService: valueService,
	}
}

func entityTypeParam(c *gin.Context) (domain.EntityType, bool) {
	entityTypeStr := c.Param("entityType")
	if entityTypeStr != string(domain.EntityTypeProject) && entityTypeStr != string(domain.EntityTypeTask) {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "entityType must be one of: project, task")
		return "", false
	}
	return domain.EntityType(entityTypeStr), true
}

// GetFieldValues godoc
// @Summary      Get field values
// @Description  Returns every field definition visible to the entity paired with the entity's current value
// @Tags         field-values
// @Produce      json
// @Param        entityType path string true "Entity Type" Enums(project, task)
// @Param        entityId path string true "Entity ID (UUID)"
// @Param        scope query string false "Scope ('global' or project ID); defaults to global"
// @Success      200 {object} response.SuccessResponse{data=[]dto.FieldWithValueResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /field-values/{entityType}/{entityId} [get]
func (h *FieldValueHandler) GetFieldValues(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entityType, ok := entityTypeParam(c)
	if !ok {
		return
	}

	entityID, err := uuid.Parse(c.Param("entityId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid entity ID")
		return
	}

	projectID, err := dto.ParseScope(c.Query("scope"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	values, err := h.valueService.LoadValues(c.Request.Context(), userID, projectID, entityType, entityID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, values)
}

// SetFieldValue godoc
// @Summary      Set field value
// @Description  Coerces the raw input per the field's type and upserts it; returns the stored value and the entity's re-projected values map
// @Tags         field-values
// @Accept       json
// @Produce      json
// @Param        entityType path string true "Entity Type" Enums(project, task)
// @Param        entityId path string true "Entity ID (UUID)"
// @Param        fieldId path string true "Field ID (UUID)"
// @Param        request body dto.SetFieldValueRequest true "Raw value"
// @Success      200 {object} response.SuccessResponse{data=dto.SetFieldValueResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /field-values/{entityType}/{entityId}/{fieldId} [put]
func (h *FieldValueHandler) SetFieldValue(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entityType, ok := entityTypeParam(c)
	if !ok {
		return
	}

	entityID, err := uuid.Parse(c.Param("entityId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid entity ID")
		return
	}

	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid field ID")
		return
	}

	var req dto.SetFieldValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.valueService.SetValue(c.Request.Context(), userID, entityType, entityID, fieldID, req.Value)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// BulkSetFieldValues godoc
// @Summary      Bulk set field values
// @Description  Writes multiple fields sequentially and returns a per-field outcome; a failed field does not roll back earlier writes
// @Tags         field-values
// @Accept       json
// @Produce      json
// @Param        entityType path string true "Entity Type" Enums(project, task)
// @Param        entityId path string true "Entity ID (UUID)"
// @Param        request body dto.BulkSetFieldValuesRequest true "Field ID to raw value map"
// @Success      200 {object} response.SuccessResponse{data=dto.BulkSetFieldValuesResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /field-values/{entityType}/{entityId} [put]
func (h *FieldValueHandler) BulkSetFieldValues(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entityType, ok := entityTypeParam(c)
	if !ok {
		return
	}

	entityID, err := uuid.Parse(c.Param("entityId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid entity ID")
		return
	}

	var req dto.BulkSetFieldValuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.valueService.BulkSetValues(c.Request.Context(), userID, entityType, entityID, req.Values)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if result.Failed > 0 {
		status = http.StatusMultiStatus
	}
	response.SendSuccess(c, status, result)
}
