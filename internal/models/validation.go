package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// MaxScoringValue bounds MaxScore, Weight and option scores so weighted sums stay finite
const MaxScoringValue = 1e6

func validScoringValue(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0 && v <= MaxScoringValue
}

// Validate checks a topic before it is stored
func (t *Topic) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrTopicNameRequired
	}
	if NormalizeBuildingType(t.BuildingType) == "" {
		return ErrInvalidBuildingType
	}
	return nil
}

// AssignOptionIDs gives every option without an ID a fresh one
func (q *Question) AssignOptionIDs() {
	for i := range q.Options {
		if strings.TrimSpace(q.Options[i].ID) == "" {
			q.Options[i].ID = uuid.NewString()
		}
	}
}

// Validate checks a question definition against its parent, which is nil for
// root questions.
// #BUSINESS_RULE: An option condition must name an option of the parent
// #BUSINESS_RULE: An answer condition is only meaningful on parents answered with free values
// Answer conditions under a numeric parent are rewritten to CanonicalNumber form.
func (q *Question) Validate(parent *Question) error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: question text is required", ErrInvalidInput)
	}
	if !q.Type.IsValid() {
		return ErrInvalidQuestionType
	}
	if q.Type.RequiresOptions() && len(q.Options) == 0 {
		return ErrMissingQuestionOptions
	}
	if !validScoringValue(q.MaxScore) || !validScoringValue(q.Weight) {
		return ErrInvalidScoring
	}

	seen := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		if !validScoringValue(opt.ScoreValue) {
			return ErrInvalidScoring
		}
		if opt.ID == "" {
			continue
		}
		if _, dup := seen[opt.ID]; dup {
			return fmt.Errorf("%w: duplicate option id %q", ErrInvalidInput, opt.ID)
		}
		seen[opt.ID] = struct{}{}
	}

	if parent == nil {
		if q.HasCondition() {
			return fmt.Errorf("%w: root questions cannot be gated", ErrInvalidCondition)
		}
		return nil
	}

	if parent.ID == q.ID && !q.ID.IsZero() {
		return fmt.Errorf("%w: question is its own parent", ErrMalformedTree)
	}
	if parent.TopicID != q.TopicID {
		return fmt.Errorf("%w: parent belongs to another topic", ErrMalformedTree)
	}
	if q.ConditionParentOptionID != nil && parent.GetOptionByID(*q.ConditionParentOptionID) == nil {
		return fmt.Errorf("%w: parent has no option %q", ErrInvalidCondition, *q.ConditionParentOptionID)
	}
	if q.ConditionParentAnswer != nil && parent.Type.RequiresOptions() {
		return fmt.Errorf("%w: use an option condition for %s parents", ErrInvalidCondition, strings.ToLower(string(parent.Type)))
	}
	if q.ConditionParentAnswer != nil && parent.Type == QuestionTypeNumeric {
		n, err := strconv.ParseFloat(strings.TrimSpace(*q.ConditionParentAnswer), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return fmt.Errorf("%w: %q is not a number", ErrInvalidCondition, *q.ConditionParentAnswer)
		}
		canonical := CanonicalNumber(n)
		q.ConditionParentAnswer = &canonical
	}
	return nil
}
