package cache

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/evaluator"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
)

func strPtr(s string) *string { return &s }

func sampleTree() (models.TopicTree, models.Question, models.Question) {
	q1 := models.Question{ID: primitive.NewObjectID(), Type: models.QuestionTypeYesNo, MaxScore: 10, Weight: 1}
	q2 := models.Question{ID: primitive.NewObjectID(), Type: models.QuestionTypeText, MaxScore: 5, Weight: 1}
	q1.Subquestions = []models.Question{q2}
	return models.TopicTree{
		Topic:     models.Topic{ID: primitive.NewObjectID(), Name: "Structure"},
		Questions: []models.Question{q1},
	}, q1, q2
}

func TestTopicKey(t *testing.T) {
	tree, q1, q2 := sampleTree()
	base := models.NewAnswerSet([]models.Answer{{QuestionID: q1.ID, TextValue: strPtr("true"), Score: 10}})

	key := TopicKey(tree, base)
	if key != TopicKey(tree, base) {
		t.Fatal("TopicKey() is not deterministic")
	}

	unrelated := models.NewAnswerSet([]models.Answer{
		{QuestionID: q1.ID, TextValue: strPtr("true"), Score: 10},
		{QuestionID: primitive.NewObjectID(), TextValue: strPtr("other topic"), Score: 1},
	})
	if key != TopicKey(tree, unrelated) {
		t.Error("answers outside the topic should not change the key")
	}

	changed := models.NewAnswerSet([]models.Answer{{QuestionID: q1.ID, TextValue: strPtr("false"), Score: 0}})
	if key == TopicKey(tree, changed) {
		t.Error("a changed answer must change the key")
	}

	more := models.NewAnswerSet([]models.Answer{
		{QuestionID: q1.ID, TextValue: strPtr("true"), Score: 10},
		{QuestionID: q2.ID, TextValue: strPtr("ok"), Score: 5},
	})
	if key == TopicKey(tree, more) {
		t.Error("a new answer in the topic must change the key")
	}

	edited := tree
	edited.Questions = []models.Question{q1}
	edited.Questions[0].Weight = 2
	if key == TopicKey(edited, base) {
		t.Error("a changed weight must change the key")
	}
}

func TestTopicKey_NonFiniteScores(t *testing.T) {
	tree, q1, _ := sampleTree()
	tree.Questions[0].MaxScore = math.Inf(1)
	set := models.NewAnswerSet([]models.Answer{{QuestionID: q1.ID, TextValue: strPtr("true"), Score: math.Inf(1)}})

	key := TopicKey(tree, set)
	if key != TopicKey(tree, set) {
		t.Fatal("TopicKey() is not deterministic")
	}

	finite := models.NewAnswerSet([]models.Answer{{QuestionID: q1.ID, TextValue: strPtr("true"), Score: math.MaxFloat64}})
	if key == TopicKey(tree, finite) {
		t.Error("an infinite score and a finite one must give different keys")
	}

	other := tree
	other.Questions = []models.Question{q1}
	other.Questions[0].MaxScore = math.NaN()
	if key == TopicKey(other, set) {
		t.Error("trees differing only in non-finite scores must give different keys")
	}
}

func TestNopEvaluationCache(t *testing.T) {
	c := NewNopEvaluationCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", &evaluator.TopicResult{}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Errorf("Get() error = %v, want ErrMiss", err)
	}
}
