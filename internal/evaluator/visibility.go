package evaluator

import (
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
)

// IsVisible reports whether node is currently due to be answered.
// #BUSINESS_RULE: Top-level questions are always visible; children never show before the parent is answered
// #BUSINESS_RULE: Condition precedence is option ID, then stringified answer, then unconditional
func IsVisible(node, parent *models.Question, answers models.AnswerSet) bool {
	if parent == nil {
		return true
	}

	parentAnswer, ok := answers.Get(parent.ID)
	if !ok {
		return false
	}

	if node.ConditionParentOptionID != nil {
		return parentAnswer.OptionID != nil && *parentAnswer.OptionID == *node.ConditionParentOptionID
	}
	if node.ConditionParentAnswer != nil {
		return parentAnswer.RawValue() == *node.ConditionParentAnswer
	}
	return true
}

// QuestionState is one reachable question as shown on a topic page.
type QuestionState struct {
	Question models.Question `json:"question"`
	Depth    int             `json:"depth"`
	Answered bool            `json:"answered"`
	Answer   *models.Answer  `json:"answer,omitempty"`
}

type visibleCollector struct {
	states []QuestionState
}

func (c *visibleCollector) visit(q *models.Question, _ *models.Question, answer models.Answer, answered bool, depth int) {
	state := QuestionState{Question: *q, Depth: depth, Answered: answered}
	state.Question.Subquestions = nil
	if answered {
		a := answer
		state.Answer = &a
	}
	c.states = append(c.states, state)
}

func (c *visibleCollector) pending([]models.Question) {}

// VisibleQuestions flattens the reachable questions in pre-order. The result has
// exactly ComputeProgress(questions, answers).Total entries.
func VisibleQuestions(questions []models.Question, answers models.AnswerSet) []QuestionState {
	c := &visibleCollector{states: []QuestionState{}}
	walk(questions, nil, answers, 0, c)
	return c.states
}
