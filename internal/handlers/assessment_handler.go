package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/services"
)

// AssessmentHandler handles assessment endpoints
// #INTEGRATION_POINT: Inspectors answer questionnaires and read reports through these endpoints
type AssessmentHandler struct {
	assessmentService services.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentService services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentService: assessmentService,
	}
}

// StartAssessment handles POST /api/v1/assessments
// @Summary Start or resume an assessment
// @Description Returns the open assessment for the building and building type, creating it when none exists
// @Tags Assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.StartAssessmentRequest true "Start request"
// @Success 200 {object} models.Assessment "Existing assessment"
// @Success 201 {object} models.Assessment "New assessment"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /assessments [post]
func (h *AssessmentHandler) StartAssessment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req services.StartAssessmentRequest
	if !bindJSON(c, &req) {
		return
	}

	assessment, created, err := h.assessmentService.StartAssessment(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, assessment)
}

// ListAssessments handles GET /api/v1/assessments
// @Summary List my assessments
// @Tags Assessments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter (in_progress, completed, cancelled)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} repository.PaginatedResult[models.Assessment]
// @Failure 400 {object} ErrorResponse
// @Router /assessments [get]
func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var status *models.AssessmentStatus
	if raw := c.Query("status"); raw != "" {
		s := models.AssessmentStatus(strings.ToUpper(raw))
		status = &s
	}

	result, err := h.assessmentService.ListAssessments(c.Request.Context(), userID, status, paginationFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAssessment handles GET /api/v1/assessments/:id
// @Summary Get an assessment
// @Tags Assessments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assessment ID"
// @Success 200 {object} models.Assessment
// @Failure 404 {object} ErrorResponse
// @Router /assessments/{id} [get]
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	assessment, err := h.assessmentService.GetAssessment(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessment)
}

// GetOverview handles GET /api/v1/assessments/:id/overview
// @Summary Assessment overview
// @Description Per-topic progress and score with the overall figures and current risk level
// @Tags Assessments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assessment ID"
// @Success 200 {object} services.Overview
// @Failure 404 {object} ErrorResponse
// @Router /assessments/{id}/overview [get]
func (h *AssessmentHandler) GetOverview(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	overview, err := h.assessmentService.GetOverview(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// GetTopicPage handles GET /api/v1/assessments/:id/topics/:topicId
// @Summary Topic page
// @Description Visible questions of one topic with their answer state, progress and score
// @Tags Assessments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assessment ID"
// @Param topicId path string true "Topic ID"
// @Success 200 {object} services.TopicPage
// @Failure 404 {object} ErrorResponse
// @Router /assessments/{id}/topics/{topicId} [get]
func (h *AssessmentHandler) GetTopicPage(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}
	topicID, ok := paramObjectID(c, "topicId")
	if !ok {
		return
	}

	page, err := h.assessmentService.GetTopicPage(c.Request.Context(), id, userID, topicID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// SaveAnswer handles PUT /api/v1/assessments/:id/answers
// @Summary Save an answer
// @Description Records one answer; the score is fixed at this point. Returns the refreshed topic figures.
// @Tags Assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assessment ID"
// @Param request body services.SaveAnswerRequest true "Answer"
// @Success 200 {object} services.SaveAnswerResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /assessments/{id}/answers [put]
func (h *AssessmentHandler) SaveAnswer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}
	var req services.SaveAnswerRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.assessmentService.SaveAnswer(c.Request.Context(), id, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CompleteAssessment handles POST /api/v1/assessments/:id/complete
// @Summary Complete an assessment
// @Description Finalizes the assessment with its total score and risk level and returns the report
// @Tags Assessments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assessment ID"
// @Success 200 {object} services.ReportResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /assessments/{id}/complete [post]
func (h *AssessmentHandler) CompleteAssessment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	report, err := h.assessmentService.CompleteAssessment(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// CancelAssessment handles POST /api/v1/assessments/:id/cancel
// @Summary Cancel an assessment
// @Tags Assessments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assessment ID"
// @Success 200 {object} models.Assessment
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /assessments/{id}/cancel [post]
func (h *AssessmentHandler) CancelAssessment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	assessment, err := h.assessmentService.CancelAssessment(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessment)
}

// GetReport handles GET /api/v1/assessments/:id/report
// @Summary Assessment report
// @Description Topic scores, critical issues, risk level and recommendations
// @Tags Assessments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assessment ID"
// @Success 200 {object} services.ReportResponse
// @Failure 404 {object} ErrorResponse
// @Router /assessments/{id}/report [get]
func (h *AssessmentHandler) GetReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	report, err := h.assessmentService.GetReport(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// RegisterRoutes registers assessment routes
func (h *AssessmentHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	assessments := router.Group("/assessments")
	assessments.Use(authMiddleware)
	{
		assessments.POST("", h.StartAssessment)
		assessments.GET("", h.ListAssessments)
		assessments.GET("/:id", h.GetAssessment)
		assessments.GET("/:id/overview", h.GetOverview)
		assessments.GET("/:id/topics/:topicId", h.GetTopicPage)
		assessments.PUT("/:id/answers", h.SaveAnswer)
		assessments.POST("/:id/complete", h.CompleteAssessment)
		assessments.POST("/:id/cancel", h.CancelAssessment)
		assessments.GET("/:id/report", h.GetReport)
	}
}
