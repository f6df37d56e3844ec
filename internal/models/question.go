package models

import (
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionType represents the type of question
// #IMPLEMENTATION_DECISION: Type decides how an answer payload is read and scored
type QuestionType string

const (
	QuestionTypeYesNo          QuestionType = "YES_NO"
	QuestionTypeSingleChoice   QuestionType = "SINGLE_CHOICE"
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeNumeric        QuestionType = "NUMERIC"
	QuestionTypeText           QuestionType = "TEXT"
)

// MarshalJSON converts QuestionType to lowercase with underscores for JSON serialization
func (qt QuestionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(string(qt)))
}

// UnmarshalJSON converts lowercase JSON to QuestionType
func (qt *QuestionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*qt = QuestionType(strings.ToUpper(s))
	return nil
}

// IsValid checks if the QuestionType is a valid value
func (qt QuestionType) IsValid() bool {
	switch qt {
	case QuestionTypeYesNo, QuestionTypeSingleChoice, QuestionTypeMultipleChoice,
		QuestionTypeNumeric, QuestionTypeText:
		return true
	}
	return false
}

// RequiresOptions returns true if this question type requires options
func (qt QuestionType) RequiresOptions() bool {
	return qt == QuestionTypeSingleChoice || qt == QuestionTypeMultipleChoice
}

// IsChoiceType returns true if answers to this type may carry an option ID
func (qt QuestionType) IsChoiceType() bool {
	return qt == QuestionTypeSingleChoice || qt == QuestionTypeMultipleChoice || qt == QuestionTypeYesNo
}

// QuestionOption represents an answer option for choice-based questions
// #NORMALIZATION_DECISION: Options embedded as they are never queried independently
type QuestionOption struct {
	ID         string  `bson:"id" json:"id"`
	Text       string  `bson:"text" json:"text"`
	ScoreValue float64 `bson:"score_value" json:"score_value"`
	Order      int     `bson:"order" json:"order"`
}

// Question is a node in a topic's question tree.
// #DATA_ASSUMPTION: Weight defaults to 1 and scales both achieved and maximum score
// #DATA_ASSUMPTION: Gating conditions live on the child and are read against the parent's answer
// #CARDINALITY_ASSUMPTION: Topic 1:N Questions, Question 1:N Subquestions
type Question struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TopicID          primitive.ObjectID  `bson:"topic_id" json:"topic_id"`
	ParentQuestionID *primitive.ObjectID `bson:"parent_question_id,omitempty" json:"parent_question_id,omitempty"`

	// Content
	Text     string `bson:"text" json:"text"`
	HelpText string `bson:"help_text,omitempty" json:"help_text,omitempty"`

	// Type and ordering
	Type  QuestionType `bson:"type" json:"type"`
	Order int          `bson:"order" json:"order"`

	// Scoring
	MaxScore   float64 `bson:"max_score" json:"max_score"`
	Weight     float64 `bson:"weight" json:"weight"`
	IsCritical bool    `bson:"is_critical" json:"is_critical"`

	// Gating conditions against the parent's answer
	ConditionParentAnswer   *string `bson:"condition_parent_answer,omitempty" json:"condition_parent_answer,omitempty"`
	ConditionParentOptionID *string `bson:"condition_parent_option_id,omitempty" json:"condition_parent_option_id,omitempty"`

	// Options (embedded for choice types)
	Options []QuestionOption `bson:"options,omitempty" json:"options,omitempty"`

	// Subquestions are assembled from ParentQuestionID, never stored
	Subquestions []Question `bson:"-" json:"subquestions,omitempty"`

	// Audit fields
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CollectionName returns the MongoDB collection name for questions
func (Question) CollectionName() string {
	return "questions"
}

// BeforeCreate sets default values before inserting a new question
func (q *Question) BeforeCreate() {
	now := time.Now().UTC()
	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
	}
	q.CreatedAt = now
	q.UpdatedAt = now

	if q.Weight == 0 {
		q.Weight = 1
	}
	if q.MaxScore == 0 {
		q.MaxScore = q.calculateMaxScore()
	}
	if q.Options == nil {
		q.Options = []QuestionOption{}
	}
}

// BeforeUpdate sets the UpdatedAt timestamp
func (q *Question) BeforeUpdate() {
	q.UpdatedAt = time.Now().UTC()
}

// calculateMaxScore picks the highest option score for choice types, else 1
func (q *Question) calculateMaxScore() float64 {
	maxScore := 0.0
	for _, opt := range q.Options {
		if opt.ScoreValue > maxScore {
			maxScore = opt.ScoreValue
		}
	}
	if maxScore == 0 {
		maxScore = 1
	}
	return maxScore
}

// GetOptionByID returns an option by its ID
func (q *Question) GetOptionByID(optionID string) *QuestionOption {
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			return &q.Options[i]
		}
	}
	return nil
}

// HasCondition returns true if the question is gated on its parent's answer
func (q *Question) HasCondition() bool {
	return q.ConditionParentOptionID != nil || q.ConditionParentAnswer != nil
}

// IsRoot returns true if the question has no parent
func (q *Question) IsRoot() bool {
	return q.ParentQuestionID == nil
}

// WeightedMaxScore returns the max score multiplied by weight
func (q *Question) WeightedMaxScore() float64 {
	return q.MaxScore * q.Weight
}

// ValidateAnswer checks that the answer payload fits the question type
func (q *Question) ValidateAnswer(a Answer) error {
	switch q.Type {
	case QuestionTypeSingleChoice, QuestionTypeMultipleChoice:
		if a.OptionID == nil {
			return ErrInvalidAnswerFormat
		}
		if q.GetOptionByID(*a.OptionID) == nil {
			return ErrInvalidOptionID
		}
	case QuestionTypeYesNo:
		if a.OptionID != nil {
			if q.GetOptionByID(*a.OptionID) == nil {
				return ErrInvalidOptionID
			}
			return nil
		}
		if a.TextValue == nil {
			return ErrInvalidAnswerFormat
		}
		if _, ok := ParseYesNo(*a.TextValue); !ok {
			return ErrInvalidAnswerFormat
		}
	case QuestionTypeNumeric:
		if a.NumericValue == nil {
			return ErrInvalidAnswerFormat
		}
	case QuestionTypeText:
		if a.TextValue == nil {
			return ErrInvalidAnswerFormat
		}
	default:
		return ErrInvalidQuestionType
	}
	return nil
}

// ScoreAnswer computes the points an answer earns, before weighting.
// #BUSINESS_RULE: Scores are fixed when the answer is saved; evaluation only aggregates them
func (q *Question) ScoreAnswer(a Answer) float64 {
	switch q.Type {
	case QuestionTypeYesNo:
		if a.OptionID != nil {
			if opt := q.GetOptionByID(*a.OptionID); opt != nil {
				if yes, ok := ParseYesNo(opt.Text); ok && yes {
					return q.MaxScore
				}
			}
			return 0
		}
		if a.TextValue != nil {
			if yes, ok := ParseYesNo(*a.TextValue); ok && yes {
				return q.MaxScore
			}
		}
		return 0
	case QuestionTypeSingleChoice, QuestionTypeMultipleChoice:
		if a.OptionID == nil {
			return 0
		}
		if opt := q.GetOptionByID(*a.OptionID); opt != nil {
			return opt.ScoreValue
		}
		return 0
	case QuestionTypeNumeric:
		if a.NumericValue != nil {
			return q.MaxScore
		}
		return 0
	case QuestionTypeText:
		if a.TextValue != nil && strings.TrimSpace(*a.TextValue) != "" {
			return q.MaxScore
		}
		return 0
	}
	return 0
}

// ParseYesNo reads a yes/no token. The second return is false for anything unrecognized.
func ParseYesNo(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "sim", "1":
		return true, true
	case "false", "no", "nao", "não", "0":
		return false, true
	}
	return false, false
}
