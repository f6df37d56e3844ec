package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
)

// MongoAssessmentRepository implements AssessmentRepository for MongoDB
// #ORM_INTEGRATION: MongoDB driver-based repository implementation
type MongoAssessmentRepository struct {
	collection *mongo.Collection
}

// NewMongoAssessmentRepository creates a new MongoDB assessment repository
func NewMongoAssessmentRepository(db *mongo.Database) *MongoAssessmentRepository {
	return &MongoAssessmentRepository{
		collection: db.Collection(models.Assessment{}.CollectionName()),
	}
}

// Create creates a new assessment
// #BUSINESS_RULE: The partial unique index rejects a second open assessment
func (r *MongoAssessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	assessment.BeforeCreate()
	_, err := r.collection.InsertOne(ctx, assessment)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrAssessmentExists
	}
	return err
}

// GetByID finds an assessment by ID
func (r *MongoAssessmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Assessment, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindOpen finds the in-progress assessment for a building, user and type
func (r *MongoAssessmentRepository) FindOpen(ctx context.Context, buildingID string, userID primitive.ObjectID, buildingType string) (*models.Assessment, error) {
	return r.findOne(ctx, bson.M{
		"building_id":   buildingID,
		"user_id":       userID,
		"building_type": models.NormalizeBuildingType(buildingType),
		"status":        models.AssessmentStatusInProgress,
	})
}

// SaveAnswer upserts one answer into an in-progress assessment
// #IMPLEMENTATION_DECISION: Positional update first, push second, so concurrent saves of different questions never overwrite each other
func (r *MongoAssessmentRepository) SaveAnswer(ctx context.Context, id primitive.ObjectID, answer models.Answer) error {
	now := time.Now().UTC()
	if answer.AnsweredAt.IsZero() {
		answer.AnsweredAt = now
	}

	// First try to update existing answer
	filter := bson.M{
		"_id":                 id,
		"status":              models.AssessmentStatusInProgress,
		"answers.question_id": answer.QuestionID,
	}
	update := bson.M{
		"$set": bson.M{
			"answers.$":  answer,
			"updated_at": now,
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount > 0 {
		return nil
	}

	// If no existing answer found, push new one
	filter = bson.M{
		"_id":                 id,
		"status":              models.AssessmentStatusInProgress,
		"answers.question_id": bson.M{"$ne": answer.QuestionID},
	}
	update = bson.M{
		"$push": bson.M{"answers": answer},
		"$set":  bson.M{"updated_at": now},
	}
	result, err = r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount > 0 {
		return nil
	}

	// Neither matched: the assessment is gone, closed, or a concurrent push won
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !current.CanBeAnswered() {
		return models.ErrAssessmentNotOpen
	}
	result, err = r.collection.UpdateOne(ctx, bson.M{
		"_id":                 id,
		"status":              models.AssessmentStatusInProgress,
		"answers.question_id": answer.QuestionID,
	}, bson.M{"$set": bson.M{"answers.$": answer, "updated_at": now}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrAssessmentNotOpen
	}
	return nil
}

// Finalize persists a status transition out of IN_PROGRESS
func (r *MongoAssessmentRepository) Finalize(ctx context.Context, assessment *models.Assessment) error {
	set := bson.M{
		"status":     assessment.Status,
		"updated_at": assessment.UpdatedAt,
	}
	if assessment.TotalScore != nil {
		set["total_score"] = assessment.TotalScore
	}
	if assessment.RiskLevel != nil {
		set["risk_level"] = assessment.RiskLevel
	}
	if assessment.CompletedAt != nil {
		set["completed_at"] = assessment.CompletedAt
	}

	filter := bson.M{"_id": assessment.ID, "status": models.AssessmentStatusInProgress}
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		if _, err := r.GetByID(ctx, assessment.ID); err != nil {
			return err
		}
		return models.ErrAssessmentNotOpen
	}
	return nil
}

// ListByUser lists a user's assessments
func (r *MongoAssessmentRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, status *models.AssessmentStatus, opts PaginationOptions) (*PaginatedResult[models.Assessment], error) {
	opts = opts.Normalize()
	filter := bson.M{"user_id": userID}
	if status != nil {
		filter["status"] = *status
	}

	// Count total
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	// Apply pagination
	skip := int64((opts.Page - 1) * opts.Limit)
	findOpts := options.Find().
		SetSkip(skip).
		SetLimit(int64(opts.Limit)).
		SetSort(bson.D{{Key: opts.SortBy, Value: opts.SortDir}}).
		SetProjection(bson.M{"answers": 0})

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assessments []models.Assessment
	if err := cursor.All(ctx, &assessments); err != nil {
		return nil, err
	}

	return NewPaginatedResult(assessments, total, opts), nil
}

func (r *MongoAssessmentRepository) findOne(ctx context.Context, filter bson.M) (*models.Assessment, error) {
	var assessment models.Assessment
	err := r.collection.FindOne(ctx, filter).Decode(&assessment)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrAssessmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

var _ AssessmentRepository = (*MongoAssessmentRepository)(nil)
