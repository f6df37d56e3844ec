package models

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Answer is a user's recorded answer to a single question.
// #DATA_ASSUMPTION: Exactly one payload field is populated, depending on the question type
// #BUSINESS_RULE: Score is computed when the answer is saved and never re-derived later
type Answer struct {
	QuestionID   primitive.ObjectID `bson:"question_id" json:"question_id"`
	OptionID     *string            `bson:"option_id,omitempty" json:"option_id,omitempty"`
	TextValue    *string            `bson:"text_value,omitempty" json:"text_value,omitempty"`
	NumericValue *float64           `bson:"numeric_value,omitempty" json:"numeric_value,omitempty"`
	Score        float64            `bson:"score" json:"score"`
	AnsweredAt   time.Time          `bson:"answered_at" json:"answered_at"`
}

// RawValue returns the answer's payload as the string gating conditions compare against
func (a Answer) RawValue() string {
	switch {
	case a.TextValue != nil:
		return *a.TextValue
	case a.NumericValue != nil:
		return CanonicalNumber(*a.NumericValue)
	case a.OptionID != nil:
		return *a.OptionID
	}
	return ""
}

// CanonicalNumber is the string form numeric answers are compared in: the
// shortest decimal that round-trips, without exponent ("5", "2.5", "1000000").
func CanonicalNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SelectedOptionID returns the selected option ID or an empty string
func (a Answer) SelectedOptionID() string {
	if a.OptionID == nil {
		return ""
	}
	return *a.OptionID
}

// NormalizeAnswer rewrites yes/no text payloads to the canonical "true"/"false"
// form that ConditionParentAnswer values are authored against.
func (q *Question) NormalizeAnswer(a *Answer) {
	a.QuestionID = q.ID
	if q.Type != QuestionTypeYesNo {
		return
	}
	raw := a.TextValue
	if raw == nil && a.OptionID != nil {
		if opt := q.GetOptionByID(*a.OptionID); opt != nil {
			raw = &opt.Text
		}
	}
	if raw == nil {
		return
	}
	if yes, ok := ParseYesNo(*raw); ok {
		v := strconv.FormatBool(yes)
		a.TextValue = &v
	}
}

// AnswerSet maps question IDs to their recorded answer
// #CARDINALITY_ASSUMPTION: One answer per question per assessment, last write wins
type AnswerSet map[primitive.ObjectID]Answer

// NewAnswerSet builds an answer set from a list; later entries win
func NewAnswerSet(answers []Answer) AnswerSet {
	set := make(AnswerSet, len(answers))
	for _, a := range answers {
		set[a.QuestionID] = a
	}
	return set
}

// Get returns the answer for a question
func (s AnswerSet) Get(questionID primitive.ObjectID) (Answer, bool) {
	a, ok := s[questionID]
	return a, ok
}

// Has returns true if the question has been answered
func (s AnswerSet) Has(questionID primitive.ObjectID) bool {
	_, ok := s[questionID]
	return ok
}

// Put records an answer, replacing any previous one for the same question
func (s AnswerSet) Put(a Answer) {
	s[a.QuestionID] = a
}
