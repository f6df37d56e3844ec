package evaluator

import (
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
)

// ScoreResult holds weighted achieved and maximum scores
type ScoreResult struct {
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"max_score"`
	Percentage float64 `json:"percentage"`
}

type scoreAccumulator struct {
	score    float64
	maxScore float64
}

func (s *scoreAccumulator) visit(q *models.Question, _ *models.Question, answer models.Answer, answered bool, _ int) {
	if answered {
		s.score += answer.Score * q.Weight
	}
	s.maxScore += q.MaxScore * q.Weight
}

// pending folds the maximum of unconditional descendants of an unanswered
// question into the denominator. Conditional children stay excluded.
// #BUSINESS_RULE: Unlike progress, unconditional children count toward the max before the parent is answered
func (s *scoreAccumulator) pending(children []models.Question) {
	for i := range children {
		c := &children[i]
		if c.HasCondition() {
			continue
		}
		s.maxScore += c.MaxScore * c.Weight
		s.pending(c.Subquestions)
	}
}

func (s *scoreAccumulator) result() ScoreResult {
	return ScoreResult{
		Score:      s.score,
		MaxScore:   s.maxScore,
		Percentage: clampPercentage(ratio(s.score, s.maxScore)),
	}
}

// ComputeScore computes the weighted score over the visible tree.
// Percentage is always within [0, 100].
func ComputeScore(questions []models.Question, answers models.AnswerSet) ScoreResult {
	s := &scoreAccumulator{}
	walk(questions, nil, answers, 0, s)
	return s.result()
}

// SumScores adds score results across topics without re-weighting
func SumScores(results ...ScoreResult) ScoreResult {
	s := scoreAccumulator{}
	for _, r := range results {
		s.score += r.Score
		s.maxScore += r.MaxScore
	}
	return s.result()
}
