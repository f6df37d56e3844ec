package evaluator

import (
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
)

// ProgressResult counts reachable and answered questions
type ProgressResult struct {
	Answered   int     `json:"answered"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

type progressCounter struct {
	answered int
	total    int
}

func (p *progressCounter) visit(_ *models.Question, _ *models.Question, _ models.Answer, answered bool, _ int) {
	p.total++
	if answered {
		p.answered++
	}
}

// Children of an unanswered question are not counted until they become visible.
func (p *progressCounter) pending([]models.Question) {}

func (p *progressCounter) result() ProgressResult {
	return ProgressResult{
		Answered:   p.answered,
		Total:      p.total,
		Percentage: ratio(float64(p.answered), float64(p.total)),
	}
}

// ComputeProgress counts visible questions and visible answered questions.
// #BUSINESS_RULE: The denominator grows as gating questions are answered
func ComputeProgress(questions []models.Question, answers models.AnswerSet) ProgressResult {
	p := &progressCounter{}
	walk(questions, nil, answers, 0, p)
	return p.result()
}

// SumProgress adds progress results across topics without re-weighting
func SumProgress(results ...ProgressResult) ProgressResult {
	p := progressCounter{}
	for _, r := range results {
		p.answered += r.Answered
		p.total += r.Total
	}
	return p.result()
}
