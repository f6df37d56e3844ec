package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
)

// IndexManager handles MongoDB index creation and management
type IndexManager struct {
	db  *mongo.Database
	log *zap.Logger
}

// NewIndexManager creates a new index manager
func NewIndexManager(db *mongo.Database, log *zap.Logger) *IndexManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &IndexManager{db: db, log: log}
}

// collectionIndexes pairs a collection with the indexes it needs
type collectionIndexes struct {
	collection string
	models     []mongo.IndexModel
}

// CreateAllIndexes creates all indexes for all collections
// #MIGRATION_DECISION: Indexes created at application startup if they don't exist
func (m *IndexManager) CreateAllIndexes(ctx context.Context) error {
	m.log.Info("creating MongoDB indexes")

	for _, idx := range indexSpecs() {
		if _, err := m.db.Collection(idx.collection).Indexes().CreateMany(ctx, idx.models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", idx.collection, err)
		}
		m.log.Debug("indexes ensured", zap.String("collection", idx.collection), zap.Int("count", len(idx.models)))
	}

	m.log.Info("all indexes created successfully")
	return nil
}

func indexSpecs() []collectionIndexes {
	return []collectionIndexes{
		{collection: CollectionTopics, models: topicIndexes()},
		{collection: CollectionQuestions, models: questionIndexes()},
		{collection: CollectionAssessments, models: assessmentIndexes()},
	}
}

// topicIndexes lists topics of a building type in display order
func topicIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "building_type", Value: 1}, {Key: "display_order", Value: 1}},
			Options: options.Index().SetName("idx_building_type_order"),
		},
	}
}

// questionIndexes supports loading a topic's flat question list and finding children
func questionIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "topic_id", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index().SetName("idx_topic_order"),
		},
		{
			Keys:    bson.D{{Key: "parent_question_id", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("idx_parent_sparse"),
		},
	}
}

// assessmentIndexes enforces one open assessment per building, user and type
// #BUSINESS_RULE: Completed and cancelled assessments do not block a new one
func assessmentIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "building_id", Value: 1},
				{Key: "user_id", Value: 1},
				{Key: "building_type", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": models.AssessmentStatusInProgress}).
				SetName("idx_open_assessment_unique"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "updated_at", Value: -1}},
			Options: options.Index().SetName("idx_user_updated"),
		},
	}
}
