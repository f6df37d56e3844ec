// Package repository provides data access layer factories
// #IMPLEMENTATION_DECISION: Factory functions wrap raw MongoDB constructors for our database.Client
package repository

import (
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/database"
)

// NewTopicRepository creates a new topic repository using our database client
func NewTopicRepository(client *database.Client) TopicRepository {
	return NewMongoTopicRepository(client.Database())
}

// NewQuestionRepository creates a new question repository using our database client
func NewQuestionRepository(client *database.Client) QuestionRepository {
	return NewMongoQuestionRepository(client.Database())
}

// NewAssessmentRepository creates a new assessment repository using our database client
func NewAssessmentRepository(client *database.Client) AssessmentRepository {
	return NewMongoAssessmentRepository(client.Database())
}
