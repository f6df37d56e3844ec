package evaluator

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
)

func TestEmptyTree(t *testing.T) {
	assertProgress(t, ComputeProgress(nil, answers()), 0, 0, 0)
	assertScore(t, ComputeScore(nil, answers()), 0, 0, 0)
	assertProgress(t, ComputeProgress([]models.Question{}, models.AnswerSet{}), 0, 0, 0)
	assertScore(t, ComputeScore([]models.Question{}, models.AnswerSet{}), 0, 0, 0)
}

// Yes/no parent with one unconditional child
func TestScenario_UnconditionalChild(t *testing.T) {
	q1 := question(models.QuestionTypeYesNo, 10)
	q2 := question(models.QuestionTypeText, 5)
	q1.Subquestions = []models.Question{q2}
	tree := []models.Question{q1}

	t.Run("no answers", func(t *testing.T) {
		set := answers()
		assertProgress(t, ComputeProgress(tree, set), 0, 1, 0)
		assertScore(t, ComputeScore(tree, set), 0, 15, 0)
	})

	t.Run("parent answered yes", func(t *testing.T) {
		set := answers(answerText(q1, "true", 10))
		assertProgress(t, ComputeProgress(tree, set), 1, 2, 50)
		assertScore(t, ComputeScore(tree, set), 10, 15, 100*10.0/15.0)
	})

	t.Run("both answered", func(t *testing.T) {
		set := answers(answerText(q1, "true", 10), answerText(q2, "ok", 5))
		assertProgress(t, ComputeProgress(tree, set), 2, 2, 100)
		assertScore(t, ComputeScore(tree, set), 15, 15, 100)
	})
}

// Single choice parent with a child gated on option A
func TestScenario_OptionGatedChild(t *testing.T) {
	q1 := withOptions(question(models.QuestionTypeSingleChoice, 10),
		models.QuestionOption{ID: "A", ScoreValue: 0},
		models.QuestionOption{ID: "B", ScoreValue: 10},
	)
	q2 := gatedOnOption(question(models.QuestionTypeText, 5), "A")
	q1.Subquestions = []models.Question{q2}
	tree := []models.Question{q1}

	t.Run("no answers excludes conditional child", func(t *testing.T) {
		set := answers()
		assertProgress(t, ComputeProgress(tree, set), 0, 1, 0)
		assertScore(t, ComputeScore(tree, set), 0, 10, 0)
	})

	t.Run("answered B keeps child hidden", func(t *testing.T) {
		set := answers(answerOption(q1, "B", 10))
		if IsVisible(&q2, &q1, set) {
			t.Error("Q2 should stay invisible")
		}
		assertProgress(t, ComputeProgress(tree, set), 1, 1, 100)
		assertScore(t, ComputeScore(tree, set), 10, 10, 100)
	})

	t.Run("answered A reveals child", func(t *testing.T) {
		set := answers(answerOption(q1, "A", 0))
		if !IsVisible(&q2, &q1, set) {
			t.Error("Q2 should be visible")
		}
		assertProgress(t, ComputeProgress(tree, set), 1, 2, 50)
		assertScore(t, ComputeScore(tree, set), 0, 15, 0)
	})
}

func TestComputeScore_Weights(t *testing.T) {
	q1 := question(models.QuestionTypeNumeric, 10)
	q1.Weight = 0.5
	q2 := question(models.QuestionTypeText, 4)
	q2.Weight = 2
	tree := []models.Question{q1, q2}

	set := answers(answerNumber(q1, 3, 10))
	// 10*0.5 achieved of 10*0.5 + 4*2
	assertScore(t, ComputeScore(tree, set), 5, 13, 100*5.0/13.0)
}

func TestComputeScore_UnansweredFoldsOnlyUnconditionalDescendants(t *testing.T) {
	root := question(models.QuestionTypeYesNo, 10)
	unconditional := question(models.QuestionTypeYesNo, 4)
	conditional := gatedOnAnswer(question(models.QuestionTypeText, 100), "true")
	grandUnconditional := question(models.QuestionTypeText, 2)
	grandConditional := gatedOnAnswer(question(models.QuestionTypeText, 50), "false")

	unconditional.Subquestions = []models.Question{grandUnconditional, grandConditional}
	conditional.Subquestions = []models.Question{question(models.QuestionTypeText, 1000)}
	root.Subquestions = []models.Question{unconditional, conditional}
	tree := []models.Question{root}

	// root 10 + unconditional 4 + grandUnconditional 2
	assertScore(t, ComputeScore(tree, answers()), 0, 16, 0)
	assertProgress(t, ComputeProgress(tree, answers()), 0, 1, 0)

	// A stale answer below an unanswered parent never contributes score
	stale := answers(answerText(grandUnconditional, "x", 2))
	assertScore(t, ComputeScore(tree, stale), 0, 16, 0)
}

func TestComputeScore_PercentageIsClamped(t *testing.T) {
	q := question(models.QuestionTypeNumeric, 10)
	tree := []models.Question{q}

	tests := []struct {
		name     string
		score    float64
		expected float64
	}{
		{"huge score", 1e9, 100},
		{"negative score", -50, 0},
		{"regular score", 5, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeScore(tree, answers(answerNumber(q, 1, tt.score)))
			if got.Percentage < 0 || got.Percentage > 100 {
				t.Fatalf("Percentage = %v out of bounds", got.Percentage)
			}
			if !almostEqual(got.Percentage, tt.expected) {
				t.Errorf("Percentage = %v, want %v", got.Percentage, tt.expected)
			}
		})
	}
}

func TestComputeScore_OverflowingTotals(t *testing.T) {
	q1 := question(models.QuestionTypeNumeric, 1e308)
	q2 := question(models.QuestionTypeNumeric, 1e308)
	tree := []models.Question{q1, q2}
	set := answers(answerNumber(q1, 1, 1e308), answerNumber(q2, 1, 1e308))

	got := ComputeScore(tree, set)
	if !math.IsInf(got.Score, 1) || !math.IsInf(got.MaxScore, 1) {
		t.Fatalf("expected both sums to overflow, got score=%v max=%v", got.Score, got.MaxScore)
	}
	if math.IsNaN(got.Percentage) || got.Percentage < 0 || got.Percentage > 100 {
		t.Fatalf("Percentage = %v out of bounds", got.Percentage)
	}
	if got.Percentage != 0 {
		t.Errorf("Percentage = %v, want 0", got.Percentage)
	}

	summed := SumScores(got, got)
	if math.IsNaN(summed.Percentage) || summed.Percentage != 0 {
		t.Errorf("SumScores() Percentage = %v, want 0", summed.Percentage)
	}

	if _, err := json.Marshal(got.Percentage); err != nil {
		t.Errorf("percentage should always marshal: %v", err)
	}
}

func TestClampPercentage(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"nan", math.NaN(), 0},
		{"positive infinity", math.Inf(1), 100},
		{"negative infinity", math.Inf(-1), 0},
		{"negative", -0.5, 0},
		{"above", 100.1, 100},
		{"inside", 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampPercentage(tt.in); got != tt.want {
				t.Errorf("clampPercentage(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestComputeScore_ZeroMaxScore(t *testing.T) {
	q := question(models.QuestionTypeText, 0)
	assertScore(t, ComputeScore([]models.Question{q}, answers(answerText(q, "x", 0))), 0, 0, 0)
}

func TestIdempotence(t *testing.T) {
	q1 := question(models.QuestionTypeYesNo, 10)
	q2 := gatedOnAnswer(question(models.QuestionTypeNumeric, 5), "true")
	q1.Subquestions = []models.Question{q2}
	tree := []models.Question{q1}
	set := answers(answerText(q1, "true", 10), answerNumber(q2, 7, 5))

	p1, p2 := ComputeProgress(tree, set), ComputeProgress(tree, set)
	s1, s2 := ComputeScore(tree, set), ComputeScore(tree, set)
	if p1 != p2 {
		t.Errorf("ComputeProgress() not idempotent: %+v vs %+v", p1, p2)
	}
	if s1 != s2 {
		t.Errorf("ComputeScore() not idempotent: %+v vs %+v", s1, s2)
	}
}

func TestProgressMonotonicity(t *testing.T) {
	q1 := withOptions(question(models.QuestionTypeSingleChoice, 10),
		models.QuestionOption{ID: "A", ScoreValue: 0},
		models.QuestionOption{ID: "B", ScoreValue: 10},
	)
	q1a := gatedOnOption(question(models.QuestionTypeYesNo, 5), "A")
	q1aa := gatedOnAnswer(question(models.QuestionTypeText, 2), "false")
	q1b := question(models.QuestionTypeNumeric, 3)
	q2 := question(models.QuestionTypeText, 4)
	q1a.Subquestions = []models.Question{q1aa}
	q1.Subquestions = []models.Question{q1a, q1b}
	tree := []models.Question{q1, q2}

	sequence := []models.Answer{
		answerText(q2, "done", 4),
		answerOption(q1, "A", 0),
		answerNumber(q1b, 12, 3),
		answerText(q1a, "false", 0),
		answerText(q1aa, "repair needed", 2),
	}

	set := answers()
	prev := ComputeProgress(tree, set)
	for i, a := range sequence {
		set.Put(a)
		cur := ComputeProgress(tree, set)
		if cur.Total < prev.Total || cur.Answered < prev.Answered {
			t.Fatalf("step %d: progress went from %+v to %+v", i, prev, cur)
		}
		prev = cur
	}
	assertProgress(t, prev, 5, 5, 100)
}

func TestSumAcrossTopics(t *testing.T) {
	p := SumProgress(
		ProgressResult{Answered: 1, Total: 2},
		ProgressResult{Answered: 3, Total: 6},
	)
	assertProgress(t, p, 4, 8, 50)

	s := SumScores(
		ScoreResult{Score: 5, MaxScore: 10},
		ScoreResult{Score: 0, MaxScore: 30},
	)
	assertScore(t, s, 5, 40, 12.5)

	assertProgress(t, SumProgress(), 0, 0, 0)
	assertScore(t, SumScores(), 0, 0, 0)
}
