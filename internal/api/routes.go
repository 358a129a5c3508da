package api

import (
	"net/http"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/metrics"
	"alcyxob/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles what the HTTP layer is built on.
type Services struct {
	Auth      service.AuthService
	Plans     service.PlanService
	Progress  service.ProgressService
	Templates service.TemplateService
	Dashboard service.DashboardService
}

// SetupRoutes registers every route on router. When m is not nil requests are measured and
// gatherer is exposed on /metrics.
func SetupRoutes(router *gin.Engine, jwtSecret string, svc Services, m *metrics.Manager, gatherer prometheus.Gatherer) {
	authHandler := NewAuthHandler(svc.Auth)
	planHandler := NewPlanHandler(svc.Plans)
	progressHandler := NewProgressHandler(svc.Progress)
	templateHandler := NewTemplateHandler(svc.Templates)
	dashboardHandler := NewDashboardHandler(svc.Dashboard)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.Use(metrics.LogRequest())
	if m != nil {
		router.Use(metrics.RequestMetrics(m))
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		// Readable by the plan's coach and athlete.
		protected.GET("/plans/:planId", planHandler.GetPlan)
		protected.GET("/plans/:planId/sessions/:sessionId/exercises/:exerciseId/media", progressHandler.GetMediaDownloadURL)

		// The service checks the caller is the coach the dashboard belongs to.
		protected.GET("/dashboard/:coachId", dashboardHandler.GetDashboard)

		coachGroup := protected.Group("/coach")
		coachGroup.Use(RoleMiddleware(domain.RoleCoach))
		{
			coachGroup.GET("/athletes", authHandler.GetMyAthletes)

			coachGroup.POST("/plans", planHandler.CreatePlan)
			coachGroup.GET("/plans", planHandler.ListPlans)
			coachGroup.PATCH("/plans/:planId", planHandler.UpdatePlan)
			coachGroup.DELETE("/plans/:planId", planHandler.DeletePlan)
			coachGroup.POST("/plans/:planId/template", planHandler.ConvertToTemplate)
			coachGroup.DELETE("/plans/:planId/template", planHandler.RemoveTemplateStatus)

			coachGroup.GET("/templates", templateHandler.ListTemplates)
			coachGroup.GET("/templates/:templateId", templateHandler.GetTemplate)
			coachGroup.DELETE("/templates/:templateId", templateHandler.DeleteTemplate)
			coachGroup.POST("/templates/:templateId/plans", templateHandler.CreatePlanFromTemplate)
		}

		athleteGroup := protected.Group("/athlete")
		athleteGroup.Use(RoleMiddleware(domain.RoleAthlete))
		{
			athleteGroup.GET("/plans", planHandler.ListPlans)

			exercise := athleteGroup.Group("/plans/:planId/sessions/:sessionId/exercises/:exerciseId")
			exercise.POST("/feedback", progressHandler.SubmitExerciseFeedback)
			exercise.PUT("/sets", progressHandler.SubmitPerformedSets)
			exercise.POST("/media/upload-url", progressHandler.RequestMediaUploadURL)

			athleteGroup.PUT("/plans/:planId/sessions/:sessionId/notes", progressHandler.UpdateSessionNotes)
		}
	}
}
