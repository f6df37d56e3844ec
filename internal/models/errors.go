package models

import "errors"

// Model validation and operation errors
var (
	// General errors
	ErrNotFound                = errors.New("resource not found")
	ErrAlreadyExists           = errors.New("resource already exists")
	ErrInvalidInput            = errors.New("invalid input")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// Topic errors
	ErrTopicNotFound       = errors.New("topic not found")
	ErrInvalidBuildingType = errors.New("invalid building type")
	ErrTopicHasQuestions   = errors.New("topic still has questions")
	ErrTopicNameRequired   = errors.New("topic name is required")

	// Question errors
	ErrQuestionNotFound       = errors.New("question not found")
	ErrInvalidQuestionType    = errors.New("invalid question type")
	ErrMissingQuestionOptions = errors.New("choice questions require options")
	ErrInvalidOptionID        = errors.New("invalid option ID")
	ErrInvalidAnswerFormat    = errors.New("invalid answer format")
	ErrInvalidScoring         = errors.New("max score and weight must not be negative")
	ErrInvalidCondition       = errors.New("invalid gating condition")
	ErrMalformedTree          = errors.New("malformed question tree")

	// Assessment errors
	ErrAssessmentNotFound   = errors.New("assessment not found")
	ErrAssessmentNotOpen    = errors.New("assessment is not in progress")
	ErrAssessmentExists     = errors.New("an assessment is already in progress for this building")
	ErrQuestionNotInProfile = errors.New("question does not belong to the assessment's building type")
)

// IsNotFoundError returns true if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrTopicNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrAssessmentNotFound)
}

// IsValidationError returns true if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidStatusTransition) ||
		errors.Is(err, ErrInvalidBuildingType) ||
		errors.Is(err, ErrTopicNameRequired) ||
		errors.Is(err, ErrInvalidQuestionType) ||
		errors.Is(err, ErrMissingQuestionOptions) ||
		errors.Is(err, ErrInvalidOptionID) ||
		errors.Is(err, ErrInvalidAnswerFormat) ||
		errors.Is(err, ErrInvalidScoring) ||
		errors.Is(err, ErrInvalidCondition) ||
		errors.Is(err, ErrMalformedTree) ||
		errors.Is(err, ErrQuestionNotInProfile)
}

// IsConflictError returns true if the error is a conflict/duplicate error
func IsConflictError(err error) bool {
	return errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrAssessmentExists) ||
		errors.Is(err, ErrAssessmentNotOpen) ||
		errors.Is(err, ErrTopicHasQuestions)
}
