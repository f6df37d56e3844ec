// Package handlers provides HTTP handlers for API endpoints.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/middleware"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/repository"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// DeleteResponse reports how many documents a delete removed
type DeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

// errorMapping pairs a sentinel with its HTTP status and error code
type errorMapping struct {
	target error
	status int
	code   string
}

// #IMPLEMENTATION_DECISION: First match wins, so specific sentinels come before the generic ones
var errorMappings = []errorMapping{
	{models.ErrTopicNotFound, http.StatusNotFound, "topic_not_found"},
	{models.ErrQuestionNotFound, http.StatusNotFound, "question_not_found"},
	{models.ErrAssessmentNotFound, http.StatusNotFound, "assessment_not_found"},
	{models.ErrNotFound, http.StatusNotFound, "not_found"},
	{models.ErrAssessmentNotOpen, http.StatusConflict, "assessment_not_open"},
	{models.ErrAssessmentExists, http.StatusConflict, "assessment_exists"},
	{models.ErrTopicHasQuestions, http.StatusConflict, "topic_has_questions"},
	{models.ErrAlreadyExists, http.StatusConflict, "already_exists"},
	{models.ErrInvalidBuildingType, http.StatusBadRequest, "invalid_building_type"},
	{models.ErrTopicNameRequired, http.StatusBadRequest, "invalid_request"},
	{models.ErrInvalidQuestionType, http.StatusBadRequest, "invalid_question_type"},
	{models.ErrMissingQuestionOptions, http.StatusBadRequest, "missing_options"},
	{models.ErrInvalidOptionID, http.StatusBadRequest, "invalid_option"},
	{models.ErrInvalidAnswerFormat, http.StatusBadRequest, "invalid_answer"},
	{models.ErrInvalidScoring, http.StatusBadRequest, "invalid_scoring"},
	{models.ErrInvalidCondition, http.StatusBadRequest, "invalid_condition"},
	{models.ErrMalformedTree, http.StatusBadRequest, "malformed_tree"},
	{models.ErrQuestionNotInProfile, http.StatusBadRequest, "question_not_in_profile"},
	{models.ErrInvalidStatusTransition, http.StatusConflict, "invalid_status_transition"},
	{models.ErrInvalidInput, http.StatusBadRequest, "invalid_request"},
}

// respondError writes the response for a service error. Unknown errors become
// a 500 without leaking their text.
func respondError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			c.JSON(m.status, ErrorResponse{Error: m.code, Message: err.Error()})
			return
		}
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An unexpected error occurred",
	})
}

// paramObjectID parses a path parameter as an ObjectID, writing a 400 when it is malformed
func paramObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Invalid " + name,
		})
		return primitive.NilObjectID, false
	}
	return id, true
}

// requireUserID returns the authenticated user, writing a 401 when there is none
func requireUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid session",
		})
		return primitive.NilObjectID, false
	}
	return userID, true
}

// bindJSON binds the request body, writing a 400 on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return false
	}
	return true
}

// paginationFromQuery reads page and limit query parameters
func paginationFromQuery(c *gin.Context) repository.PaginationOptions {
	opts := repository.DefaultPaginationOptions()
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		opts.Limit = limit
	}
	return opts.Normalize()
}
