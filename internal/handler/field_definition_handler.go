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

type FieldDefinitionHandler struct {
	definitionService service.FieldDefinitionService
}

func NewFieldDefinitionHandler(definitionService service.FieldDefinitionService) *FieldDefinitionHandler {
	return &FieldDefinitionHandler{
		definitionService: definitionService,
	}
}

// scopeAndEntityType reads and validates the scope/entityType query pair
// shared by the list endpoints
func scopeAndEntityType(c *gin.Context) (string, domain.EntityType, bool) {
	scope := c.Query("scope")
	if scope == "" {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "scope query parameter is required")
		return "", "", false
	}

	entityTypeStr := c.Query("entityType")
	if entityTypeStr != string(domain.EntityTypeProject) && entityTypeStr != string(domain.EntityTypeTask) {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "entityType must be one of: project, task")
		return "", "", false
	}

	return scope, domain.EntityType(entityTypeStr), true
}

// ListFieldDefinitions godoc
// @Summary      List field definitions
// @Description  Lists the field definitions of a scope in position order, with the caller's plan-limit state
// @Tags         field-definitions
// @Produce      json
// @Param        scope query string true "Scope ('global' or project ID)"
// @Param        entityType query string true "Entity Type" Enums(project, task)
// @Success      200 {object} response.SuccessResponse{data=dto.FieldDefinitionListResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /field-definitions [get]
func (h *FieldDefinitionHandler) ListFieldDefinitions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	scope, entityType, ok := scopeAndEntityType(c)
	if !ok {
		return
	}

	projectID, err := dto.ParseScope(scope)
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	list, err := h.definitionService.List(c.Request.Context(), userID, projectID, entityType)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, list)
}

// CreateFieldDefinition godoc
// @Summary      Create field definition
// @Description  Creates a field definition; free-tier callers are limited in how many fields a scope can hold
// @Tags         field-definitions
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateFieldDefinitionRequest true "Field definition"
// @Success      201 {object} response.SuccessResponse{data=dto.FieldDefinitionResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse "Free plan field limit reached"
// @Failure      500 {object} response.ErrorResponse
// @Router       /field-definitions [post]
func (h *FieldDefinitionHandler) CreateFieldDefinition(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateFieldDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	definition, err := h.definitionService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, definition)
}

// UpdateFieldDefinition godoc
// @Summary      Update field definition
// @Description  Partially updates a field definition; a type change resets the options to the new type's defaults
// @Tags         field-definitions
// @Accept       json
// @Produce      json
// @Param        fieldId path string true "Field ID (UUID)"
// @Param        request body dto.UpdateFieldDefinitionRequest true "Fields to update"
// @Success      200 {object} response.SuccessResponse{data=dto.FieldDefinitionResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /field-definitions/{fieldId} [patch]
func (h *FieldDefinitionHandler) UpdateFieldDefinition(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid field ID")
		return
	}

	var req dto.UpdateFieldDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	definition, err := h.definitionService.Update(c.Request.Context(), fieldID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, definition)
}

// DeleteFieldDefinition godoc
// @Summary      Delete field definition
// @Description  Deletes a field definition and every value stored against it
// @Tags         field-definitions
// @Produce      json
// @Param        fieldId path string true "Field ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /field-definitions/{fieldId} [delete]
func (h *FieldDefinitionHandler) DeleteFieldDefinition(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid field ID")
		return
	}

	if err := h.definitionService.Delete(c.Request.Context(), fieldID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Field definition deleted successfully"})
}

// ReorderFieldDefinitions godoc
// @Summary      Reorder field definitions
// @Description  Reassigns positions so each field's position equals its index in the ordered ID list
// @Tags         field-definitions
// @Accept       json
// @Produce      json
// @Param        request body dto.ReorderFieldDefinitionsRequest true "Ordered field IDs"
// @Success      200 {object} response.SuccessResponse{data=[]dto.FieldDefinitionResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /field-definitions/reorder [put]
func (h *FieldDefinitionHandler) ReorderFieldDefinitions(c *gin.Context) {
	var req dto.ReorderFieldDefinitionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	fields, err := h.definitionService.Reorder(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, fields)
}
