package database

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
)

func TestIndexSpecs_CoverCollections(t *testing.T) {
	want := map[string]bool{
		CollectionTopics:      false,
		CollectionQuestions:   false,
		CollectionAssessments: false,
	}
	for _, spec := range indexSpecs() {
		if _, ok := want[spec.collection]; !ok {
			t.Errorf("unexpected collection %s", spec.collection)
		}
		want[spec.collection] = true
		if len(spec.models) == 0 {
			t.Errorf("collection %s has no indexes", spec.collection)
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("collection %s has no index spec", name)
		}
	}
}

func TestAssessmentIndexes_OpenAssessmentUnique(t *testing.T) {
	idx := assessmentIndexes()[0]
	if idx.Options == nil || idx.Options.Unique == nil || !*idx.Options.Unique {
		t.Fatal("open assessment index must be unique")
	}
	filter, ok := idx.Options.PartialFilterExpression.(bson.M)
	if !ok {
		t.Fatalf("partial filter has type %T", idx.Options.PartialFilterExpression)
	}
	if filter["status"] != models.AssessmentStatusInProgress {
		t.Errorf("partial filter = %v", filter)
	}
}

func TestModelCollectionNames(t *testing.T) {
	if (models.Topic{}).CollectionName() != CollectionTopics {
		t.Error("topic collection mismatch")
	}
	if (models.Question{}).CollectionName() != CollectionQuestions {
		t.Error("question collection mismatch")
	}
	if (models.Assessment{}).CollectionName() != CollectionAssessments {
		t.Error("assessment collection mismatch")
	}
}
