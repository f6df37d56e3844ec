package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
)

// MongoTopicRepository implements TopicRepository for MongoDB
// #ORM_INTEGRATION: MongoDB driver-based repository implementation
type MongoTopicRepository struct {
	collection *mongo.Collection
}

// NewMongoTopicRepository creates a new MongoDB topic repository
func NewMongoTopicRepository(db *mongo.Database) *MongoTopicRepository {
	return &MongoTopicRepository{
		collection: db.Collection(models.Topic{}.CollectionName()),
	}
}

// Create creates a new topic
func (r *MongoTopicRepository) Create(ctx context.Context, topic *models.Topic) error {
	topic.BeforeCreate()
	_, err := r.collection.InsertOne(ctx, topic)
	return err
}

// GetByID finds a topic by ID
func (r *MongoTopicRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Topic, error) {
	var topic models.Topic
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&topic)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrTopicNotFound
	}
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// Update updates a topic
func (r *MongoTopicRepository) Update(ctx context.Context, topic *models.Topic) error {
	topic.BeforeUpdate()
	update := bson.M{"$set": bson.M{
		"name":          topic.Name,
		"description":   topic.Description,
		"building_type": topic.BuildingType,
		"display_order": topic.DisplayOrder,
		"updated_at":    topic.UpdatedAt,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": topic.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrTopicNotFound
	}
	return nil
}

// Delete deletes a topic
func (r *MongoTopicRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return models.ErrTopicNotFound
	}
	return nil
}

// ListByBuildingType lists topics in display order
func (r *MongoTopicRepository) ListByBuildingType(ctx context.Context, buildingType string) ([]models.Topic, error) {
	filter := bson.M{}
	if bt := models.NormalizeBuildingType(buildingType); bt != "" {
		filter["building_type"] = bt
	}
	findOpts := options.Find().SetSort(bson.D{
		{Key: "building_type", Value: 1},
		{Key: "display_order", Value: 1},
		{Key: "_id", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	topics := []models.Topic{}
	if err := cursor.All(ctx, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

var _ TopicRepository = (*MongoTopicRepository)(nil)
