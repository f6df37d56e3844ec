package models

import (
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssessmentStatus represents the status of an assessment
// #IMPLEMENTATION_DECISION: IN_PROGRESS -> COMPLETED | CANCELLED lifecycle
type AssessmentStatus string

const (
	AssessmentStatusInProgress AssessmentStatus = "IN_PROGRESS"
	AssessmentStatusCompleted  AssessmentStatus = "COMPLETED"
	AssessmentStatusCancelled  AssessmentStatus = "CANCELLED"
)

// MarshalJSON converts AssessmentStatus to lowercase for JSON serialization
func (s AssessmentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(string(s)))
}

// UnmarshalJSON converts lowercase JSON to AssessmentStatus
func (s *AssessmentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = AssessmentStatus(strings.ToUpper(str))
	return nil
}

// IsValid checks if the AssessmentStatus is a valid value
func (s AssessmentStatus) IsValid() bool {
	switch s {
	case AssessmentStatusInProgress, AssessmentStatusCompleted, AssessmentStatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true if this status is a terminal state
func (s AssessmentStatus) IsTerminal() bool {
	return s == AssessmentStatusCompleted || s == AssessmentStatusCancelled
}

// CanTransitionTo checks if a transition to the target status is allowed
// #BUSINESS_RULE: AssessmentStatus transitions:
// IN_PROGRESS -> COMPLETED (explicit finalize) | CANCELLED
// COMPLETED, CANCELLED -> (terminal state)
func (s AssessmentStatus) CanTransitionTo(target AssessmentStatus) bool {
	if s != AssessmentStatusInProgress {
		return false
	}
	return target == AssessmentStatusCompleted || target == AssessmentStatusCancelled
}

// Assessment is one user's answers to a building type's questionnaire for one building.
// #CARDINALITY_ASSUMPTION: (Building, User, BuildingType) 1:1 in-progress Assessment
// #NORMALIZATION_DECISION: Answers embedded since they are always read with the assessment
type Assessment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BuildingID   string             `bson:"building_id" json:"building_id"`
	BuildingType string             `bson:"building_type" json:"building_type"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	Status       AssessmentStatus   `bson:"status" json:"status"`

	Answers []Answer `bson:"answers" json:"answers"`

	// Stamped on completion
	TotalScore *float64   `bson:"total_score,omitempty" json:"total_score,omitempty"`
	RiskLevel  *RiskLevel `bson:"risk_level,omitempty" json:"risk_level,omitempty"`

	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// CollectionName returns the MongoDB collection name for assessments
func (Assessment) CollectionName() string {
	return "assessments"
}

// BeforeCreate sets default values before inserting a new assessment
func (a *Assessment) BeforeCreate() {
	now := time.Now().UTC()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.BuildingType = NormalizeBuildingType(a.BuildingType)
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Status == "" {
		a.Status = AssessmentStatusInProgress
	}
	if a.Answers == nil {
		a.Answers = []Answer{}
	}
}

// BeforeUpdate sets the UpdatedAt timestamp
func (a *Assessment) BeforeUpdate() {
	a.UpdatedAt = time.Now().UTC()
}

// AnswerSet returns a snapshot of the recorded answers keyed by question
func (a *Assessment) AnswerSet() AnswerSet {
	return NewAnswerSet(a.Answers)
}

// CanBeAnswered returns true while the assessment accepts new answers
func (a *Assessment) CanBeAnswered() bool {
	return a.Status == AssessmentStatusInProgress
}

// SaveAnswer records or replaces the answer for a question
func (a *Assessment) SaveAnswer(answer Answer) {
	now := time.Now().UTC()
	answer.AnsweredAt = now

	found := false
	for i := range a.Answers {
		if a.Answers[i].QuestionID == answer.QuestionID {
			a.Answers[i] = answer
			found = true
			break
		}
	}
	if !found {
		a.Answers = append(a.Answers, answer)
	}
	a.UpdatedAt = now
}

// GetAnswer returns the answer for a question
func (a *Assessment) GetAnswer(questionID primitive.ObjectID) *Answer {
	for i := range a.Answers {
		if a.Answers[i].QuestionID == questionID {
			return &a.Answers[i]
		}
	}
	return nil
}

// Complete finalizes the assessment with its total score and risk level
func (a *Assessment) Complete(totalScore float64, level RiskLevel) error {
	if !a.Status.CanTransitionTo(AssessmentStatusCompleted) {
		return ErrInvalidStatusTransition
	}
	now := time.Now().UTC()
	a.Status = AssessmentStatusCompleted
	a.TotalScore = &totalScore
	a.RiskLevel = &level
	a.CompletedAt = &now
	a.UpdatedAt = now
	return nil
}

// Cancel abandons the assessment
func (a *Assessment) Cancel() error {
	if !a.Status.CanTransitionTo(AssessmentStatusCancelled) {
		return ErrInvalidStatusTransition
	}
	a.Status = AssessmentStatusCancelled
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// IsCompleted returns true if the assessment has been finalized
func (a *Assessment) IsCompleted() bool {
	return a.Status == AssessmentStatusCompleted
}

// AnswerCount returns the number of recorded answers
func (a *Assessment) AnswerCount() int {
	return len(a.Answers)
}
