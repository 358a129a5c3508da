package api

import (
	"net/http"

	"alcyxob/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TemplateHandler struct {
	templateService service.TemplateService
}

func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

type PlanFromTemplateRequest struct {
	AthleteID   string `json:"athleteId" binding:"required"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   Date   `json:"startDate"`
	EndDate     Date   `json:"endDate"`
}

// ListTemplates godoc
// @Summary List templates available to the coach
// @Description Predefined templates plus the coach's own, most used first.
// @Tags Coach Templates
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Template
// @Router /coach/templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	templates, err := h.templateService.ListTemplates(c.Request.Context(), p)
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve templates.")
		return
	}
	c.JSON(http.StatusOK, templates)
}

// GetTemplate godoc
// @Summary Get a template
// @Tags Coach Templates
// @Produce json
// @Security BearerAuth
// @Param templateId path string true "Template's ObjectID Hex"
// @Success 200 {object} domain.Template
// @Failure 404 {object} gin.H "Template not found"
// @Router /coach/templates/{templateId} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	templateID, ok := objectIDParam(c, "templateId")
	if !ok {
		return
	}
	template, err := h.templateService.GetTemplate(c.Request.Context(), p, templateID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve template.")
		return
	}
	c.JSON(http.StatusOK, template)
}

// DeleteTemplate godoc
// @Summary Delete one of the coach's templates
// @Tags Coach Templates
// @Security BearerAuth
// @Param templateId path string true "Template's ObjectID Hex"
// @Success 204 "Deleted"
// @Failure 400 {object} gin.H "Predefined templates cannot be deleted"
// @Failure 404 {object} gin.H "Template not found"
// @Router /coach/templates/{templateId} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	templateID, ok := objectIDParam(c, "templateId")
	if !ok {
		return
	}
	if err := h.templateService.DeleteTemplate(c.Request.Context(), p, templateID); err != nil {
		respondWithServiceError(c, err, "Failed to delete template.")
		return
	}
	c.Status(http.StatusNoContent)
}

// CreatePlanFromTemplate godoc
// @Summary Create a training plan from a template
// @Tags Coach Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param templateId path string true "Template's ObjectID Hex"
// @Param plan body PlanFromTemplateRequest true "Athlete and plan details"
// @Success 201 {object} domain.TrainingPlan
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Template or athlete not found"
// @Router /coach/templates/{templateId}/plans [post]
func (h *TemplateHandler) CreatePlanFromTemplate(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	templateID, ok := objectIDParam(c, "templateId")
	if !ok {
		return
	}

	var req PlanFromTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	athleteID, err := primitive.ObjectIDFromHex(req.AthleteID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid athleteId.")
		return
	}

	plan, err := h.templateService.CreatePlanFromTemplate(c.Request.Context(), p, templateID, service.PlanFromTemplateInput{
		AthleteID:   athleteID,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate.Time,
		EndDate:     req.EndDate.Time,
	})
	if err != nil {
		respondWithServiceError(c, err, "Failed to create plan from template.")
		return
	}
	c.JSON(http.StatusCreated, plan)
}
