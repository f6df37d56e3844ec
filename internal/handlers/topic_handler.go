package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/services"
)

// TopicHandler handles topic and question authoring endpoints
// #INTEGRATION_POINT: Questionnaire authors maintain topics and conditional question trees here
type TopicHandler struct {
	questionnaireService services.QuestionnaireService
}

// NewTopicHandler creates a new topic handler
func NewTopicHandler(questionnaireService services.QuestionnaireService) *TopicHandler {
	return &TopicHandler{
		questionnaireService: questionnaireService,
	}
}

// ListTopicsResponse wraps a topic list
type ListTopicsResponse struct {
	Items []models.Topic `json:"items"`
}

// CreateTopic handles POST /api/v1/topics
// @Summary Create a topic
// @Tags Topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.CreateTopicRequest true "Create request"
// @Success 201 {object} models.Topic
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /topics [post]
func (h *TopicHandler) CreateTopic(c *gin.Context) {
	var req services.CreateTopicRequest
	if !bindJSON(c, &req) {
		return
	}

	topic, err := h.questionnaireService.CreateTopic(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, topic)
}

// ListTopics handles GET /api/v1/topics
// @Summary List topics
// @Description Lists topics in display order, optionally for one building type
// @Tags Topics
// @Produce json
// @Security BearerAuth
// @Param building_type query string false "Building type"
// @Success 200 {object} ListTopicsResponse
// @Failure 401 {object} ErrorResponse
// @Router /topics [get]
func (h *TopicHandler) ListTopics(c *gin.Context) {
	topics, err := h.questionnaireService.ListTopics(c.Request.Context(), c.Query("building_type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListTopicsResponse{Items: topics})
}

// GetTopic handles GET /api/v1/topics/:id
// @Summary Get a topic
// @Tags Topics
// @Produce json
// @Security BearerAuth
// @Param id path string true "Topic ID"
// @Success 200 {object} models.Topic
// @Failure 404 {object} ErrorResponse
// @Router /topics/{id} [get]
func (h *TopicHandler) GetTopic(c *gin.Context) {
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	topic, err := h.questionnaireService.GetTopic(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, topic)
}

// UpdateTopic handles PUT /api/v1/topics/:id
// @Summary Update a topic
// @Tags Topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Topic ID"
// @Param request body services.UpdateTopicRequest true "Update request"
// @Success 200 {object} models.Topic
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /topics/{id} [put]
func (h *TopicHandler) UpdateTopic(c *gin.Context) {
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateTopicRequest
	if !bindJSON(c, &req) {
		return
	}

	topic, err := h.questionnaireService.UpdateTopic(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, topic)
}

// DeleteTopic handles DELETE /api/v1/topics/:id
// @Summary Delete a topic
// @Description Deletes a topic that no longer has questions
// @Tags Topics
// @Security BearerAuth
// @Param id path string true "Topic ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /topics/{id} [delete]
func (h *TopicHandler) DeleteTopic(c *gin.Context) {
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.questionnaireService.DeleteTopic(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddQuestion handles POST /api/v1/topics/:id/questions
// @Summary Add a question
// @Description Adds a question to a topic, optionally as a gated subquestion
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Topic ID"
// @Param request body services.CreateQuestionRequest true "Create request"
// @Success 201 {object} models.Question
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /topics/{id}/questions [post]
func (h *TopicHandler) AddQuestion(c *gin.Context) {
	topicID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}
	var req services.CreateQuestionRequest
	if !bindJSON(c, &req) {
		return
	}

	question, err := h.questionnaireService.AddQuestion(c.Request.Context(), topicID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// GetTopicTree handles GET /api/v1/topics/:id/questions
// @Summary Get the question tree of a topic
// @Tags Questions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Topic ID"
// @Success 200 {object} models.TopicTree
// @Failure 404 {object} ErrorResponse
// @Router /topics/{id}/questions [get]
func (h *TopicHandler) GetTopicTree(c *gin.Context) {
	topicID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	tree, err := h.questionnaireService.GetTopicTree(c.Request.Context(), topicID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

// GetQuestion handles GET /api/v1/questions/:id
// @Summary Get a question
// @Tags Questions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Success 200 {object} models.Question
// @Failure 404 {object} ErrorResponse
// @Router /questions/{id} [get]
func (h *TopicHandler) GetQuestion(c *gin.Context) {
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	question, err := h.questionnaireService.GetQuestion(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// UpdateQuestion handles PUT /api/v1/questions/:id
// @Summary Update a question
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Param request body services.UpdateQuestionRequest true "Update request"
// @Success 200 {object} models.Question
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /questions/{id} [put]
func (h *TopicHandler) UpdateQuestion(c *gin.Context) {
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateQuestionRequest
	if !bindJSON(c, &req) {
		return
	}

	question, err := h.questionnaireService.UpdateQuestion(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// DeleteQuestion handles DELETE /api/v1/questions/:id
// @Summary Delete a question
// @Description Deletes a question together with all of its subquestions
// @Tags Questions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Success 200 {object} DeleteResponse
// @Failure 404 {object} ErrorResponse
// @Router /questions/{id} [delete]
func (h *TopicHandler) DeleteQuestion(c *gin.Context) {
	id, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.questionnaireService.DeleteQuestion(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DeleteResponse{Deleted: deleted})
}

// RegisterRoutes registers topic and question routes
func (h *TopicHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	topics := router.Group("/topics")
	topics.Use(authMiddleware)
	{
		topics.POST("", h.CreateTopic)
		topics.GET("", h.ListTopics)
		topics.GET("/:id", h.GetTopic)
		topics.PUT("/:id", h.UpdateTopic)
		topics.DELETE("/:id", h.DeleteTopic)
		topics.POST("/:id/questions", h.AddQuestion)
		topics.GET("/:id/questions", h.GetTopicTree)
	}

	questions := router.Group("/questions")
	questions.Use(authMiddleware)
	{
		questions.GET("/:id", h.GetQuestion)
		questions.PUT("/:id", h.UpdateQuestion)
		questions.DELETE("/:id", h.DeleteQuestion)
	}
}
