// Package evaluator decides which questions of a conditional question tree are
// visible for a given answer set and projects progress, weighted scores, risk
// and reports from that one traversal.
// #IMPLEMENTATION_DECISION: Pure functions over immutable snapshots, no I/O and no locks
// #INTEGRATION_POINT: Assessment overview, topic page and report generation all call this package
package evaluator

import (
	"math"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
)

// visitor is the accumulator a traversal projects into.
type visitor interface {
	// visit is called for every reachable question in pre-order.
	visit(q *models.Question, parent *models.Question, answer models.Answer, answered bool, depth int)
	// pending is called with the children of a reachable question that has no answer.
	pending(children []models.Question)
}

// walk is the single pre-order traversal shared by every projection.
// A question is reached when it is top-level or visible under its parent; only
// the children of answered questions can be visible.
func walk(questions []models.Question, parent *models.Question, answers models.AnswerSet, depth int, v visitor) {
	for i := range questions {
		q := &questions[i]
		if !IsVisible(q, parent, answers) {
			continue
		}

		answer, answered := answers.Get(q.ID)
		v.visit(q, parent, answer, answered, depth)

		if len(q.Subquestions) == 0 {
			continue
		}
		if answered {
			walk(q.Subquestions, q, answers, depth+1, v)
		} else {
			v.pending(q.Subquestions)
		}
	}
}

// ratio returns 100*part/whole, or 0 when whole is not positive
func ratio(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return 100 * part / whole
}

// clampPercentage bounds p to [0, 100]. NaN, which Inf/Inf sums produce, maps to 0.
func clampPercentage(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return 0
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
