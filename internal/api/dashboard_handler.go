package api

import (
	"net/http"

	"alcyxob/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard godoc
// @Summary Get the coach dashboard
// @Description Weekly progress, upcoming sessions and session distribution over the coach's plans.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param coachId path string true "Coach code (COACH-XXXXXX)"
// @Success 200 {object} dashboard.Dashboard
// @Failure 401 {object} gin.H "Not a coach, or not this coach"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /dashboard/{coachId} [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	dash, err := h.dashboardService.GetDashboard(c.Request.Context(), p, c.Param("coachId"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to build dashboard.")
		return
	}
	c.JSON(http.StatusOK, dash)
}
