package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/plantree"
	"alcyxob/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// Date accepts a calendar date ("2025-01-05") or an RFC 3339 timestamp.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", s)
}

func dateField(f plantree.Field[Date]) plantree.Field[time.Time] {
	return plantree.Field[time.Time]{Set: f.Set, Null: f.Null, Value: f.Value.Time}
}

// --- DTOs ---

type CreatePlanRequest struct {
	AthleteID   string                  `json:"athleteId" binding:"required"`
	Name        string                  `json:"name" binding:"required"`
	Description string                  `json:"description"`
	StartDate   Date                    `json:"startDate"`
	EndDate     Date                    `json:"endDate"`
	Sessions    []plantree.SessionInput `json:"sessions"`
}

// UpdatePlanRequest is a partial edit. Omitted attributes keep their value, null clears
// nullable ones. Sessions, when present, define the full session list.
type UpdatePlanRequest struct {
	Version     *int64                                  `json:"version"`
	Name        plantree.Field[string]                  `json:"name"`
	Description plantree.Field[string]                  `json:"description"`
	StartDate   plantree.Field[Date]                    `json:"startDate"`
	EndDate     plantree.Field[Date]                    `json:"endDate"`
	Sessions    plantree.Field[[]plantree.SessionInput] `json:"sessions"`
}

type ConvertToTemplateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// --- Handler Methods ---

// CreatePlan godoc
// @Summary Create a training plan for an athlete
// @Description Sessions and exercises get identifiers and one performed set per prescribed set.
// @Tags Coach Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body CreatePlanRequest true "Plan details"
// @Success 201 {object} domain.TrainingPlan
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Athlete not found"
// @Router /coach/plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	athleteID, err := primitive.ObjectIDFromHex(req.AthleteID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid athleteId.")
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), p, service.CreatePlanInput{
		AthleteID:   athleteID,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate.Time,
		EndDate:     req.EndDate.Time,
		Sessions:    req.Sessions,
	})
	if err != nil {
		respondWithServiceError(c, err, "Failed to create training plan.")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// UpdatePlan godoc
// @Summary Partially update a training plan
// @Description Merges the request into the stored plan. Known ids keep their node and progress.
// @Tags Coach Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan's ObjectID Hex"
// @Param plan body UpdatePlanRequest true "Fields to change"
// @Success 200 {object} domain.TrainingPlan
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Plan not found"
// @Failure 409 {object} gin.H "Plan was modified concurrently"
// @Router /coach/plans/{planId} [patch]
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	planID, ok := objectIDParam(c, "planId")
	if !ok {
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	plan, err := h.planService.UpdatePlan(c.Request.Context(), p, planID, service.UpdatePlanInput{
		Version:     req.Version,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   dateField(req.StartDate),
		EndDate:     dateField(req.EndDate),
		Sessions:    req.Sessions,
	})
	if err != nil {
		respondWithServiceError(c, err, "Failed to update training plan.")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GetPlan godoc
// @Summary Get a training plan
// @Description Available to the plan's coach and athlete.
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan's ObjectID Hex"
// @Success 200 {object} domain.TrainingPlan
// @Failure 404 {object} gin.H "Plan not found"
// @Router /plans/{planId} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	planID, ok := objectIDParam(c, "planId")
	if !ok {
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), p, planID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve training plan.")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ListPlans godoc
// @Summary List the caller's training plans
// @Description Coaches get the plans they authored (optionally for one athlete), athletes get theirs.
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param athleteId query string false "Athlete's ObjectID Hex (coaches only)"
// @Success 200 {array} domain.TrainingPlan
// @Failure 400 {object} gin.H "Invalid athleteId"
// @Router /coach/plans [get]
// @Router /athlete/plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var athleteID *primitive.ObjectID
	if raw := c.Query("athleteId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid athleteId.")
			return
		}
		athleteID = &id
	}

	plans, err := h.planService.ListPlans(c.Request.Context(), p, athleteID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve training plans.")
		return
	}
	if plans == nil {
		plans = []*domain.TrainingPlan{}
	}
	c.JSON(http.StatusOK, plans)
}

// DeletePlan godoc
// @Summary Delete a training plan
// @Tags Coach Plans
// @Security BearerAuth
// @Param planId path string true "Plan's ObjectID Hex"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Plan not found"
// @Router /coach/plans/{planId} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	planID, ok := objectIDParam(c, "planId")
	if !ok {
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), p, planID); err != nil {
		respondWithServiceError(c, err, "Failed to delete training plan.")
		return
	}
	c.Status(http.StatusNoContent)
}

// ConvertToTemplate godoc
// @Summary Save a plan as a reusable template
// @Tags Coach Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan's ObjectID Hex"
// @Param template body ConvertToTemplateRequest false "Template name and description"
// @Success 201 {object} domain.Template
// @Failure 400 {object} gin.H "Plan is already a template"
// @Failure 404 {object} gin.H "Plan not found"
// @Router /coach/plans/{planId}/template [post]
func (h *PlanHandler) ConvertToTemplate(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	planID, ok := objectIDParam(c, "planId")
	if !ok {
		return
	}

	var req ConvertToTemplateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}
	}

	template, err := h.planService.ConvertToTemplate(c.Request.Context(), p, planID, req.Name, req.Description)
	if err != nil {
		respondWithServiceError(c, err, "Failed to convert plan to template.")
		return
	}
	c.JSON(http.StatusCreated, template)
}

// RemoveTemplateStatus godoc
// @Summary Stop using a plan as a template
// @Tags Coach Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan's ObjectID Hex"
// @Success 200 {object} domain.TrainingPlan
// @Failure 404 {object} gin.H "Plan not found"
// @Router /coach/plans/{planId}/template [delete]
func (h *PlanHandler) RemoveTemplateStatus(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	planID, ok := objectIDParam(c, "planId")
	if !ok {
		return
	}

	plan, err := h.planService.RemoveTemplateStatus(c.Request.Context(), p, planID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to remove template status.")
		return
	}
	c.JSON(http.StatusOK, plan)
}
