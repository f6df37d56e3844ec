package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
)

func newQuestionnaireFixture(t *testing.T) (QuestionnaireService, *fakeQuestionRepo, *models.Topic) {
	t.Helper()
	questions := newFakeQuestionRepo()
	svc := NewQuestionnaireService(newFakeTopicRepo(), questions)

	topic, err := svc.CreateTopic(context.Background(), CreateTopicRequest{Name: "Fire Safety", BuildingType: "Residential"})
	if err != nil {
		t.Fatalf("CreateTopic() error = %v", err)
	}
	return svc, questions, topic
}

func TestQuestionnaireService_CreateTopic(t *testing.T) {
	svc, _, first := newQuestionnaireFixture(t)
	ctx := context.Background()

	if first.BuildingType != "residential" || first.DisplayOrder != 1 {
		t.Errorf("first topic = %+v", first)
	}

	second, err := svc.CreateTopic(ctx, CreateTopicRequest{Name: "Structure", BuildingType: "residential"})
	if err != nil {
		t.Fatalf("CreateTopic() error = %v", err)
	}
	if second.DisplayOrder != 2 {
		t.Errorf("second display order = %d, want 2", second.DisplayOrder)
	}

	if _, err := svc.CreateTopic(ctx, CreateTopicRequest{BuildingType: "residential"}); !errors.Is(err, models.ErrTopicNameRequired) {
		t.Errorf("CreateTopic() without name error = %v", err)
	}
}

func TestQuestionnaireService_AddQuestion(t *testing.T) {
	svc, _, topic := newQuestionnaireFixture(t)
	ctx := context.Background()

	parent, err := svc.AddQuestion(ctx, topic.ID, CreateQuestionRequest{
		Text: "Condition of the extinguishers?",
		Type: models.QuestionTypeSingleChoice,
		Options: []models.QuestionOption{
			{Text: "Good", ScoreValue: 10},
			{ID: "bad", Text: "Bad", ScoreValue: 0},
		},
	})
	if err != nil {
		t.Fatalf("AddQuestion() error = %v", err)
	}
	if parent.Options[0].ID == "" {
		t.Error("option id not generated")
	}
	if parent.MaxScore != 10 || parent.Weight != 1 || parent.Order != 1 {
		t.Errorf("defaults not applied: max %v weight %v order %d", parent.MaxScore, parent.Weight, parent.Order)
	}

	parentHex := parent.ID.Hex()
	child, err := svc.AddQuestion(ctx, topic.ID, CreateQuestionRequest{
		ParentQuestionID:        &parentHex,
		Text:                    "When will they be replaced?",
		Type:                    models.QuestionTypeText,
		ConditionParentOptionID: strPtr("bad"),
	})
	if err != nil {
		t.Fatalf("AddQuestion(child) error = %v", err)
	}
	if child.ParentQuestionID == nil || *child.ParentQuestionID != parent.ID {
		t.Error("child parent not set")
	}

	tests := []struct {
		name string
		req  CreateQuestionRequest
		want error
	}{
		{
			name: "unknown type",
			req:  CreateQuestionRequest{Text: "x", Type: "SLIDER"},
			want: models.ErrInvalidQuestionType,
		},
		{
			name: "choice without options",
			req:  CreateQuestionRequest{Text: "x", Type: models.QuestionTypeMultipleChoice},
			want: models.ErrMissingQuestionOptions,
		},
		{
			name: "unknown parent option",
			req:  CreateQuestionRequest{ParentQuestionID: &parentHex, Text: "x", Type: models.QuestionTypeText, ConditionParentOptionID: strPtr("nope")},
			want: models.ErrInvalidCondition,
		},
		{
			name: "missing parent",
			req:  CreateQuestionRequest{ParentQuestionID: strPtr(primitive.NewObjectID().Hex()), Text: "x", Type: models.QuestionTypeText},
			want: models.ErrInvalidInput,
		},
		{
			name: "malformed parent id",
			req:  CreateQuestionRequest{ParentQuestionID: strPtr("xyz"), Text: "x", Type: models.QuestionTypeText},
			want: models.ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.AddQuestion(ctx, topic.ID, tt.req); !errors.Is(err, tt.want) {
				t.Errorf("AddQuestion() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := svc.AddQuestion(ctx, primitive.NewObjectID(), CreateQuestionRequest{Text: "x", Type: models.QuestionTypeText}); !errors.Is(err, models.ErrTopicNotFound) {
		t.Errorf("AddQuestion() on missing topic error = %v", err)
	}
}

func TestQuestionnaireService_UpdateQuestion_ProtectsChildConditions(t *testing.T) {
	svc, _, topic := newQuestionnaireFixture(t)
	ctx := context.Background()

	parent, _ := svc.AddQuestion(ctx, topic.ID, CreateQuestionRequest{
		Text:    "Alarm type?",
		Type:    models.QuestionTypeSingleChoice,
		Options: []models.QuestionOption{{ID: "none", Text: "None"}, {ID: "central", Text: "Central", ScoreValue: 10}},
	})
	parentHex := parent.ID.Hex()
	if _, err := svc.AddQuestion(ctx, topic.ID, CreateQuestionRequest{
		ParentQuestionID:        &parentHex,
		Text:                    "Why is there no alarm?",
		Type:                    models.QuestionTypeText,
		ConditionParentOptionID: strPtr("none"),
	}); err != nil {
		t.Fatalf("AddQuestion(child) error = %v", err)
	}

	_, err := svc.UpdateQuestion(ctx, parent.ID, UpdateQuestionRequest{
		Options: []models.QuestionOption{{ID: "central", Text: "Central", ScoreValue: 10}},
	})
	if !errors.Is(err, models.ErrInvalidCondition) {
		t.Errorf("UpdateQuestion() removing a gating option error = %v", err)
	}

	updated, err := svc.UpdateQuestion(ctx, parent.ID, UpdateQuestionRequest{Text: strPtr("Which alarm is installed?"), Weight: floatPtr(2)})
	if err != nil {
		t.Fatalf("UpdateQuestion() error = %v", err)
	}
	if updated.Text != "Which alarm is installed?" || updated.Weight != 2 {
		t.Errorf("update not applied: %+v", updated)
	}
}

func TestQuestionnaireService_DeleteQuestionRemovesSubtree(t *testing.T) {
	svc, repo, topic := newQuestionnaireFixture(t)
	ctx := context.Background()

	root, _ := svc.AddQuestion(ctx, topic.ID, CreateQuestionRequest{Text: "Root", Type: models.QuestionTypeYesNo, MaxScore: 10})
	rootHex := root.ID.Hex()
	child, _ := svc.AddQuestion(ctx, topic.ID, CreateQuestionRequest{ParentQuestionID: &rootHex, Text: "Child", Type: models.QuestionTypeYesNo, MaxScore: 5})
	childHex := child.ID.Hex()
	if _, err := svc.AddQuestion(ctx, topic.ID, CreateQuestionRequest{ParentQuestionID: &childHex, Text: "Grandchild", Type: models.QuestionTypeText}); err != nil {
		t.Fatalf("AddQuestion() error = %v", err)
	}
	other, _ := svc.AddQuestion(ctx, topic.ID, CreateQuestionRequest{Text: "Other", Type: models.QuestionTypeText})

	deleted, err := svc.DeleteQuestion(ctx, root.ID)
	if err != nil {
		t.Fatalf("DeleteQuestion() error = %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}
	if len(repo.questions) != 1 {
		t.Errorf("remaining questions = %d, want 1", len(repo.questions))
	}
	if _, ok := repo.questions[other.ID]; !ok {
		t.Error("unrelated question was deleted")
	}
}

func TestQuestionnaireService_DeleteTopic(t *testing.T) {
	svc, _, topic := newQuestionnaireFixture(t)
	ctx := context.Background()

	q, _ := svc.AddQuestion(ctx, topic.ID, CreateQuestionRequest{Text: "Q", Type: models.QuestionTypeText})
	if err := svc.DeleteTopic(ctx, topic.ID); !errors.Is(err, models.ErrTopicHasQuestions) {
		t.Errorf("DeleteTopic() with questions error = %v", err)
	}

	if _, err := svc.DeleteQuestion(ctx, q.ID); err != nil {
		t.Fatalf("DeleteQuestion() error = %v", err)
	}
	if err := svc.DeleteTopic(ctx, topic.ID); err != nil {
		t.Errorf("DeleteTopic() error = %v", err)
	}
	if _, err := svc.GetTopic(ctx, topic.ID); !errors.Is(err, models.ErrTopicNotFound) {
		t.Errorf("GetTopic() after delete error = %v", err)
	}
}

func TestQuestionnaireService_ListTopicTrees(t *testing.T) {
	svc, _, fire := newQuestionnaireFixture(t)
	ctx := context.Background()

	structure, _ := svc.CreateTopic(ctx, CreateTopicRequest{Name: "Structure", BuildingType: "residential"})
	office, _ := svc.CreateTopic(ctx, CreateTopicRequest{Name: "Office", BuildingType: "commercial"})

	second, _ := svc.AddQuestion(ctx, fire.ID, CreateQuestionRequest{Text: "Second", Type: models.QuestionTypeText, Order: 2})
	first, _ := svc.AddQuestion(ctx, fire.ID, CreateQuestionRequest{Text: "First", Type: models.QuestionTypeText, Order: 1})
	firstHex := first.ID.Hex()
	_, _ = svc.AddQuestion(ctx, fire.ID, CreateQuestionRequest{ParentQuestionID: &firstHex, Text: "Nested", Type: models.QuestionTypeText})
	_, _ = svc.AddQuestion(ctx, structure.ID, CreateQuestionRequest{Text: "Walls", Type: models.QuestionTypeYesNo})
	_, _ = svc.AddQuestion(ctx, office.ID, CreateQuestionRequest{Text: "Desks", Type: models.QuestionTypeText})

	trees, err := svc.ListTopicTrees(ctx, "RESIDENTIAL")
	if err != nil {
		t.Fatalf("ListTopicTrees() error = %v", err)
	}
	if len(trees) != 2 {
		t.Fatalf("trees = %d, want 2", len(trees))
	}
	if trees[0].Topic.ID != fire.ID || trees[1].Topic.ID != structure.ID {
		t.Error("topics not in display order")
	}
	fireTree := trees[0].Questions
	if len(fireTree) != 2 || fireTree[0].ID != first.ID || fireTree[1].ID != second.ID {
		t.Fatalf("fire tree roots out of order")
	}
	if len(fireTree[0].Subquestions) != 1 {
		t.Errorf("nested question not attached")
	}

	if _, err := svc.ListTopicTrees(ctx, " "); !errors.Is(err, models.ErrInvalidBuildingType) {
		t.Errorf("ListTopicTrees() blank error = %v", err)
	}
}
