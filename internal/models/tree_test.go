package models

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newNode(topicID primitive.ObjectID, parent *Question, order int) Question {
	q := Question{ID: primitive.NewObjectID(), TopicID: topicID, Order: order, Type: QuestionTypeYesNo}
	if parent != nil {
		id := parent.ID
		q.ParentQuestionID = &id
	}
	return q
}

func TestBuildQuestionTree(t *testing.T) {
	topicID := primitive.NewObjectID()
	root2 := newNode(topicID, nil, 2)
	root1 := newNode(topicID, nil, 1)
	child := newNode(topicID, &root1, 1)
	grandchild := newNode(topicID, &child, 1)

	// Deliberately out of order
	flat := []Question{grandchild, root2, child, root1}

	tree, err := BuildQuestionTree(topicID, flat)
	if err != nil {
		t.Fatalf("BuildQuestionTree() error = %v", err)
	}
	if len(tree) != 2 {
		t.Fatalf("len(tree) = %d, want 2 roots", len(tree))
	}
	if tree[0].ID != root1.ID || tree[1].ID != root2.ID {
		t.Error("roots are not ordered by Order")
	}
	if len(tree[0].Subquestions) != 1 || tree[0].Subquestions[0].ID != child.ID {
		t.Fatal("child not nested under root1")
	}
	if len(tree[0].Subquestions[0].Subquestions) != 1 {
		t.Fatal("grandchild not nested under child")
	}
	if CountQuestions(tree) != 4 {
		t.Errorf("CountQuestions() = %d, want 4", CountQuestions(tree))
	}

	found, parent := FindQuestion(tree, grandchild.ID)
	if found == nil || parent == nil || parent.ID != child.ID {
		t.Error("FindQuestion() did not return grandchild with its parent")
	}

	flatAgain := FlattenQuestionTree(tree)
	if len(flatAgain) != 4 {
		t.Fatalf("FlattenQuestionTree() len = %d, want 4", len(flatAgain))
	}
	if flatAgain[0].ID != root1.ID || flatAgain[1].ID != child.ID || flatAgain[2].ID != grandchild.ID {
		t.Error("FlattenQuestionTree() is not pre-order")
	}
	if flatAgain[2].ParentQuestionID == nil || *flatAgain[2].ParentQuestionID != child.ID {
		t.Error("FlattenQuestionTree() lost parent reference")
	}
}

func TestBuildQuestionTree_Malformed(t *testing.T) {
	topicID := primitive.NewObjectID()

	dangling := newNode(topicID, nil, 1)
	missing := primitive.NewObjectID()
	dangling.ParentQuestionID = &missing

	self := newNode(topicID, nil, 1)
	selfID := self.ID
	self.ParentQuestionID = &selfID

	a := newNode(topicID, nil, 1)
	b := newNode(topicID, &a, 1)
	aParent := b.ID
	a.ParentQuestionID = &aParent

	foreign := newNode(primitive.NewObjectID(), nil, 1)

	tests := []struct {
		name string
		flat []Question
	}{
		{"dangling parent", []Question{dangling}},
		{"self reference", []Question{self}},
		{"two node cycle", []Question{a, b}},
		{"question from another topic", []Question{foreign}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildQuestionTree(topicID, tt.flat)
			if !errors.Is(err, ErrMalformedTree) {
				t.Errorf("BuildQuestionTree() error = %v, want ErrMalformedTree", err)
			}
		})
	}
}

func TestBuildQuestionTree_Empty(t *testing.T) {
	tree, err := BuildQuestionTree(primitive.NewObjectID(), nil)
	if err != nil {
		t.Fatalf("BuildQuestionTree() error = %v", err)
	}
	if len(tree) != 0 {
		t.Errorf("len(tree) = %d, want 0", len(tree))
	}
}
