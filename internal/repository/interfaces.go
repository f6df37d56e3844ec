// Package repository defines interfaces for data access and their MongoDB implementations
// #ORM_PATTERN: Repository pattern with interfaces for testability and abstraction
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
)

// PaginationOptions contains pagination parameters
type PaginationOptions struct {
	Page    int
	Limit   int
	SortBy  string
	SortDir int // 1 for ascending, -1 for descending
}

// DefaultPaginationOptions returns default pagination settings
// #DATA_ASSUMPTION: Pagination defaults to 20 items per page
func DefaultPaginationOptions() PaginationOptions {
	return PaginationOptions{
		Page:    1,
		Limit:   20,
		SortBy:  "updated_at",
		SortDir: -1,
	}
}

// Normalize replaces out-of-range values with defaults
func (o PaginationOptions) Normalize() PaginationOptions {
	def := DefaultPaginationOptions()
	if o.Page < 1 {
		o.Page = def.Page
	}
	if o.Limit < 1 || o.Limit > 100 {
		o.Limit = def.Limit
	}
	if o.SortBy == "" {
		o.SortBy = def.SortBy
	}
	if o.SortDir != 1 && o.SortDir != -1 {
		o.SortDir = def.SortDir
	}
	return o
}

// PaginatedResult contains paginated query results
type PaginatedResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginatedResult fills in the page count
func NewPaginatedResult[T any](items []T, total int64, opts PaginationOptions) *PaginatedResult[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if opts.Limit > 0 {
		totalPages = int((total + int64(opts.Limit) - 1) / int64(opts.Limit))
	}
	return &PaginatedResult[T]{
		Items:      items,
		TotalCount: total,
		Page:       opts.Page,
		Limit:      opts.Limit,
		TotalPages: totalPages,
	}
}

// TopicRepository defines operations for topics
// #QUERY_INTERFACE: Topics are always listed per building type in display order
type TopicRepository interface {
	// Create creates a new topic
	Create(ctx context.Context, topic *models.Topic) error

	// GetByID finds a topic by ID
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Topic, error)

	// Update updates a topic
	Update(ctx context.Context, topic *models.Topic) error

	// Delete deletes a topic
	Delete(ctx context.Context, id primitive.ObjectID) error

	// ListByBuildingType lists topics of a building type, or all topics when it is empty
	ListByBuildingType(ctx context.Context, buildingType string) ([]models.Topic, error)
}

// QuestionRepository defines operations for questions
// #QUERY_INTERFACE: Questions are stored flat and assembled into trees by the caller
type QuestionRepository interface {
	// Create creates a new question
	Create(ctx context.Context, question *models.Question) error

	// GetByID finds a question by ID
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error)

	// Update updates a question
	Update(ctx context.Context, question *models.Question) error

	// DeleteMany deletes the given questions and returns how many were removed
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error)

	// ListByTopic lists all questions of a topic, flat, sorted by order
	ListByTopic(ctx context.Context, topicID primitive.ObjectID) ([]models.Question, error)

	// ListByTopics lists all questions of several topics, flat
	ListByTopics(ctx context.Context, topicIDs []primitive.ObjectID) ([]models.Question, error)

	// CountByTopic counts the questions of a topic
	CountByTopic(ctx context.Context, topicID primitive.ObjectID) (int64, error)
}

// AssessmentRepository defines operations for assessments
// #QUERY_INTERFACE: Answers are embedded and written one at a time
type AssessmentRepository interface {
	// Create creates a new assessment; a second open assessment for the same
	// building, user and type fails with ErrAssessmentExists
	Create(ctx context.Context, assessment *models.Assessment) error

	// GetByID finds an assessment by ID
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Assessment, error)

	// FindOpen finds the in-progress assessment for a building, user and type
	FindOpen(ctx context.Context, buildingID string, userID primitive.ObjectID, buildingType string) (*models.Assessment, error)

	// SaveAnswer upserts one answer into an in-progress assessment
	SaveAnswer(ctx context.Context, id primitive.ObjectID, answer models.Answer) error

	// Finalize persists a status transition out of IN_PROGRESS
	Finalize(ctx context.Context, assessment *models.Assessment) error

	// ListByUser lists a user's assessments, optionally filtered by status
	ListByUser(ctx context.Context, userID primitive.ObjectID, status *models.AssessmentStatus, opts PaginationOptions) (*PaginatedResult[models.Assessment], error)
}
