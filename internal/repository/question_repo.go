package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
)

// MongoQuestionRepository implements QuestionRepository for MongoDB
// #ORM_INTEGRATION: MongoDB driver-based repository implementation
type MongoQuestionRepository struct {
	collection *mongo.Collection
}

// NewMongoQuestionRepository creates a new MongoDB question repository
func NewMongoQuestionRepository(db *mongo.Database) *MongoQuestionRepository {
	return &MongoQuestionRepository{
		collection: db.Collection(models.Question{}.CollectionName()),
	}
}

// Create creates a new question
func (r *MongoQuestionRepository) Create(ctx context.Context, question *models.Question) error {
	question.BeforeCreate()
	_, err := r.collection.InsertOne(ctx, question)
	return err
}

// GetByID finds a question by ID
func (r *MongoQuestionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	var question models.Question
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&question)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// Update updates a question
// #DATA_ASSUMPTION: A question never moves between topics or parents after creation
func (r *MongoQuestionRepository) Update(ctx context.Context, question *models.Question) error {
	question.BeforeUpdate()
	filter := bson.M{"_id": question.ID}
	update := bson.M{"$set": bson.M{
		"text":                       question.Text,
		"help_text":                  question.HelpText,
		"type":                       question.Type,
		"order":                      question.Order,
		"max_score":                  question.MaxScore,
		"weight":                     question.Weight,
		"is_critical":                question.IsCritical,
		"condition_parent_answer":    question.ConditionParentAnswer,
		"condition_parent_option_id": question.ConditionParentOptionID,
		"options":                    question.Options,
		"updated_at":                 question.UpdatedAt,
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrQuestionNotFound
	}
	return nil
}

// DeleteMany deletes the given questions
// #CASCADE_STRATEGY: Callers pass a whole subtree so no orphan is left behind
func (r *MongoQuestionRepository) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// ListByTopic lists all questions of a topic
// #QUERY_PATTERN: Fetch the whole topic at once, sorted by order
func (r *MongoQuestionRepository) ListByTopic(ctx context.Context, topicID primitive.ObjectID) ([]models.Question, error) {
	return r.find(ctx, bson.M{"topic_id": topicID})
}

// ListByTopics lists all questions of several topics
func (r *MongoQuestionRepository) ListByTopics(ctx context.Context, topicIDs []primitive.ObjectID) ([]models.Question, error) {
	if len(topicIDs) == 0 {
		return []models.Question{}, nil
	}
	return r.find(ctx, bson.M{"topic_id": bson.M{"$in": topicIDs}})
}

// CountByTopic counts the questions of a topic
func (r *MongoQuestionRepository) CountByTopic(ctx context.Context, topicID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"topic_id": topicID})
}

func (r *MongoQuestionRepository) find(ctx context.Context, filter bson.M) ([]models.Question, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "topic_id", Value: 1}, {Key: "order", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	questions := []models.Question{}
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

var _ QuestionRepository = (*MongoQuestionRepository)(nil)
