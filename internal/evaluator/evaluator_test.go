package evaluator

import (
	"math"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func question(qt models.QuestionType, maxScore float64) models.Question {
	return models.Question{
		ID:       primitive.NewObjectID(),
		Type:     qt,
		MaxScore: maxScore,
		Weight:   1,
	}
}

func withOptions(q models.Question, opts ...models.QuestionOption) models.Question {
	q.Options = opts
	return q
}

func gatedOnOption(q models.Question, optionID string) models.Question {
	q.ConditionParentOptionID = strPtr(optionID)
	return q
}

func gatedOnAnswer(q models.Question, value string) models.Question {
	q.ConditionParentAnswer = strPtr(value)
	return q
}

func answerOption(q models.Question, optionID string, score float64) models.Answer {
	return models.Answer{QuestionID: q.ID, OptionID: strPtr(optionID), Score: score}
}

func answerText(q models.Question, text string, score float64) models.Answer {
	return models.Answer{QuestionID: q.ID, TextValue: strPtr(text), Score: score}
}

func answerNumber(q models.Question, v float64, score float64) models.Answer {
	return models.Answer{QuestionID: q.ID, NumericValue: floatPtr(v), Score: score}
}

func answers(list ...models.Answer) models.AnswerSet {
	return models.NewAnswerSet(list)
}

func assertProgress(t *testing.T, got ProgressResult, answered, total int, pct float64) {
	t.Helper()
	if got.Answered != answered || got.Total != total || !almostEqual(got.Percentage, pct) {
		t.Errorf("progress = {%d, %d, %.4f}, want {%d, %d, %.4f}",
			got.Answered, got.Total, got.Percentage, answered, total, pct)
	}
}

func assertScore(t *testing.T, got ScoreResult, score, maxScore, pct float64) {
	t.Helper()
	if !almostEqual(got.Score, score) || !almostEqual(got.MaxScore, maxScore) || !almostEqual(got.Percentage, pct) {
		t.Errorf("score = {%.4f, %.4f, %.4f}, want {%.4f, %.4f, %.4f}",
			got.Score, got.MaxScore, got.Percentage, score, maxScore, pct)
	}
}
