package api

import (
	"fmt"
	"net/http"

	"alcyxob/coaching-app/internal/plantree"
	"alcyxob/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Limits on athlete free text.
const (
	maxFeedbackLength     = 500
	maxSessionNotesLength = 1000
)

type ProgressHandler struct {
	progressService service.ProgressService
}

func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// --- DTOs ---

// ExerciseFeedbackRequest carries any subset of the feedback attributes. completed accepts
// a boolean or the strings "true"/"false".
type ExerciseFeedbackRequest struct {
	Completed          plantree.Boolish       `json:"completed"`
	PerformanceComment plantree.Field[string] `json:"performanceComment"`
	AthleteNotes       plantree.Field[string] `json:"athleteNotes"`
	MediaRef           plantree.Field[string] `json:"mediaRef"`
}

type SessionNotesRequest struct {
	SessionNotes plantree.Field[string] `json:"sessionNotes"`
}

type PerformedSetsRequest struct {
	Sets []plantree.SetResult `json:"sets" binding:"required"`
}

type RequestUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

type DownloadURLResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

func tooLong(f plantree.Field[string], limit int) bool {
	return f.Set && !f.Null && len([]rune(f.Value)) > limit
}

// bindFeedback reads feedback from a JSON body or from form fields. Form values cannot be
// null, so an empty mediaRef clears the reference.
func bindFeedback(c *gin.Context) (plantree.ExerciseFeedback, error) {
	switch c.ContentType() {
	case binding.MIMEMultipartPOSTForm, binding.MIMEPOSTForm:
		var fb plantree.ExerciseFeedback
		if v, ok := c.GetPostForm("completed"); ok {
			if parsed, ok := plantree.ParseBoolish(v); ok {
				fb.Completed = plantree.BoolOf(parsed)
			}
		}
		if v, ok := c.GetPostForm("performanceComment"); ok {
			fb.PerformanceComment = plantree.Of(v)
		}
		if v, ok := c.GetPostForm("athleteNotes"); ok {
			fb.AthleteNotes = plantree.Of(v)
		}
		if v, ok := c.GetPostForm("mediaRef"); ok {
			if v == "" {
				fb.MediaRef = plantree.Null[string]()
			} else {
				fb.MediaRef = plantree.Of(v)
			}
		}
		return fb, nil
	default:
		var req ExerciseFeedbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return plantree.ExerciseFeedback{}, err
		}
		return plantree.ExerciseFeedback{
			Completed:          req.Completed,
			PerformanceComment: req.PerformanceComment,
			AthleteNotes:       req.AthleteNotes,
			MediaRef:           req.MediaRef,
		}, nil
	}
}

// --- Handler Methods ---

// SubmitExerciseFeedback godoc
// @Summary Report feedback on an exercise
// @Description Any subset of completed, performanceComment, athleteNotes and mediaRef. Accepts JSON or form data.
// @Tags Athlete Progress
// @Accept json,mpfd,x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan's ObjectID Hex"
// @Param sessionId path string true "Session id (S-XXXXXX)"
// @Param exerciseId path string true "Exercise id (E-XXXXXX)"
// @Param feedback body ExerciseFeedbackRequest true "Feedback"
// @Success 200 {object} domain.TrainingPlan
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Plan, session or exercise not found"
// @Failure 409 {object} gin.H "Plan was modified concurrently"
// @Router /athlete/plans/{planId}/sessions/{sessionId}/exercises/{exerciseId}/feedback [post]
func (h *ProgressHandler) SubmitExerciseFeedback(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	planID, ok := objectIDParam(c, "planId")
	if !ok {
		return
	}

	fb, err := bindFeedback(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if tooLong(fb.PerformanceComment, maxFeedbackLength) || tooLong(fb.AthleteNotes, maxFeedbackLength) {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Feedback text is limited to %d characters.", maxFeedbackLength))
		return
	}

	plan, err := h.progressService.SubmitExerciseFeedback(c.Request.Context(), p, planID, c.Param("sessionId"), c.Param("exerciseId"), fb)
	if err != nil {
		respondWithServiceError(c, err, "Failed to submit feedback.")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// UpdateSessionNotes godoc
// @Summary Replace the athlete notes of a session
// @Description A null or missing sessionNotes clears the notes.
// @Tags Athlete Progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan's ObjectID Hex"
// @Param sessionId path string true "Session id (S-XXXXXX)"
// @Param notes body SessionNotesRequest true "Notes"
// @Success 200 {object} domain.TrainingPlan
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Plan or session not found"
// @Router /athlete/plans/{planId}/sessions/{sessionId}/notes [put]
func (h *ProgressHandler) UpdateSessionNotes(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	planID, ok := objectIDParam(c, "planId")
	if !ok {
		return
	}

	var req SessionNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if tooLong(req.SessionNotes, maxSessionNotesLength) {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Session notes are limited to %d characters.", maxSessionNotesLength))
		return
	}

	plan, err := h.progressService.UpdateSessionNotes(c.Request.Context(), p, planID, c.Param("sessionId"), req.SessionNotes)
	if err != nil {
		respondWithServiceError(c, err, "Failed to update session notes.")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// SubmitPerformedSets godoc
// @Summary Log results of performed sets
// @Description Each entry addresses a set by setId. Unknown ids are ignored.
// @Tags Athlete Progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan's ObjectID Hex"
// @Param sessionId path string true "Session id (S-XXXXXX)"
// @Param exerciseId path string true "Exercise id (E-XXXXXX)"
// @Param sets body PerformedSetsRequest true "Set results"
// @Success 200 {object} domain.TrainingPlan
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Plan, session or exercise not found"
// @Router /athlete/plans/{planId}/sessions/{sessionId}/exercises/{exerciseId}/sets [put]
func (h *ProgressHandler) SubmitPerformedSets(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	planID, ok := objectIDParam(c, "planId")
	if !ok {
		return
	}

	var req PerformedSetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	for _, s := range req.Sets {
		if s.SetID == "" {
			abortWithError(c, http.StatusBadRequest, "Every set needs a setId.")
			return
		}
	}

	plan, err := h.progressService.SubmitPerformedSets(c.Request.Context(), p, planID, c.Param("sessionId"), c.Param("exerciseId"), req.Sets)
	if err != nil {
		respondWithServiceError(c, err, "Failed to submit performed sets.")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// RequestMediaUploadURL godoc
// @Summary Request a pre-signed URL to upload exercise media
// @Description The returned objectKey is then submitted as the exercise mediaRef.
// @Tags Athlete Progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan's ObjectID Hex"
// @Param sessionId path string true "Session id (S-XXXXXX)"
// @Param exerciseId path string true "Exercise id (E-XXXXXX)"
// @Param uploadRequest body RequestUploadURLRequest true "Upload content type"
// @Success 200 {object} UploadURLResponse "Pre-signed URL and object key"
// @Failure 400 {object} gin.H "Unsupported content type"
// @Failure 404 {object} gin.H "Plan, session or exercise not found"
// @Failure 503 {object} gin.H "Media storage not configured"
// @Router /athlete/plans/{planId}/sessions/{sessionId}/exercises/{exerciseId}/media/upload-url [post]
func (h *ProgressHandler) RequestMediaUploadURL(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	planID, ok := objectIDParam(c, "planId")
	if !ok {
		return
	}

	var req RequestUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	uploadURL, objectKey, err := h.progressService.RequestMediaUploadURL(c.Request.Context(), p, planID, c.Param("sessionId"), c.Param("exerciseId"), req.ContentType)
	if err != nil {
		respondWithServiceError(c, err, "Failed to get upload URL.")
		return
	}
	c.JSON(http.StatusOK, UploadURLResponse{UploadURL: uploadURL, ObjectKey: objectKey})
}

// GetMediaDownloadURL godoc
// @Summary Get a pre-signed URL to view exercise media
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan's ObjectID Hex"
// @Param sessionId path string true "Session id (S-XXXXXX)"
// @Param exerciseId path string true "Exercise id (E-XXXXXX)"
// @Success 200 {object} DownloadURLResponse
// @Failure 404 {object} gin.H "Plan, exercise or media not found"
// @Failure 503 {object} gin.H "Media storage not configured"
// @Router /plans/{planId}/sessions/{sessionId}/exercises/{exerciseId}/media [get]
func (h *ProgressHandler) GetMediaDownloadURL(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	planID, ok := objectIDParam(c, "planId")
	if !ok {
		return
	}

	downloadURL, err := h.progressService.GetMediaDownloadURL(c.Request.Context(), p, planID, c.Param("sessionId"), c.Param("exerciseId"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to get download URL.")
		return
	}
	c.JSON(http.StatusOK, DownloadURLResponse{DownloadURL: downloadURL})
}
