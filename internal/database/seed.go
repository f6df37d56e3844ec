package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
)

// Seeder handles database seeding operations
// #SEED_DATA: Sample residential questionnaire with gated follow-up questions
type Seeder struct {
	db  *mongo.Database
	log *zap.Logger
}

// NewSeeder creates a new database seeder
func NewSeeder(db *mongo.Database, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{db: db, log: log}
}

// SeedAll runs all seed operations
func (s *Seeder) SeedAll(ctx context.Context) error {
	s.log.Info("starting database seeding")

	if _, err := s.SeedQuestionnaire(ctx, DefaultQuestionnaire()); err != nil {
		return fmt.Errorf("failed to seed questionnaire: %w", err)
	}

	s.log.Info("database seeding completed")
	return nil
}

// SeedQuestionnaire imports doc unless its building type already has topics.
// It returns the number of topics written.
// #IMPLEMENTATION_DECISION: Only seeds if data doesn't exist (idempotent)
func (s *Seeder) SeedQuestionnaire(ctx context.Context, doc QuestionnaireDocument) (int, error) {
	buildingType := models.NormalizeBuildingType(doc.BuildingType)
	count, err := s.db.Collection(CollectionTopics).CountDocuments(ctx, bson.M{"building_type": buildingType})
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.log.Info("questionnaire already exists, skipping seeding", zap.String("building_type", buildingType))
		return 0, nil
	}

	trees, err := doc.Materialize()
	if err != nil {
		return 0, err
	}
	if err := s.Import(ctx, trees); err != nil {
		return 0, err
	}
	return len(trees), nil
}

// Import writes materialized topic trees. Questions are stored flat with
// their parent references.
func (s *Seeder) Import(ctx context.Context, trees []models.TopicTree) error {
	if len(trees) == 0 {
		return nil
	}

	topicDocs := make([]interface{}, 0, len(trees))
	var questionDocs []interface{}
	for _, tree := range trees {
		topicDocs = append(topicDocs, tree.Topic)
		for _, q := range models.FlattenQuestionTree(tree.Questions) {
			questionDocs = append(questionDocs, q)
		}
	}

	if _, err := s.db.Collection(CollectionTopics).InsertMany(ctx, topicDocs); err != nil {
		return fmt.Errorf("failed to insert topics: %w", err)
	}
	if len(questionDocs) > 0 {
		if _, err := s.db.Collection(CollectionQuestions).InsertMany(ctx, questionDocs); err != nil {
			return fmt.Errorf("failed to insert questions: %w", err)
		}
	}

	s.log.Info("questionnaire imported",
		zap.Int("topics", len(topicDocs)),
		zap.Int("questions", len(questionDocs)),
	)
	return nil
}

func sp(s string) *string { return &s }

func yesNo() []models.QuestionOption {
	return []models.QuestionOption{
		{ID: "yes", Text: "Yes", ScoreValue: 10, Order: 1},
		{ID: "no", Text: "No", ScoreValue: 0, Order: 2},
	}
}

// DefaultQuestionnaire returns the sample questionnaire for residential buildings
func DefaultQuestionnaire() QuestionnaireDocument {
	return QuestionnaireDocument{
		BuildingType: "residential",
		Topics: []TopicDocument{
			{
				Name:        "Structure",
				Description: "Load-bearing elements, facade and roof condition",
				Questions: []QuestionDocument{
					{
						Text:       "Are load-bearing walls and columns free of visible cracks?",
						Type:       models.QuestionTypeYesNo,
						MaxScore:   10,
						Weight:     2,
						IsCritical: true,
						Options:    yesNo(),
						Subquestions: []QuestionDocument{
							{
								Text:                    "How wide is the largest crack?",
								Type:                    models.QuestionTypeSingleChoice,
								ConditionParentOptionID: sp("no"),
								IsCritical:              true,
								Options: []models.QuestionOption{
									{ID: "hairline", Text: "Hairline (under 1 mm)", ScoreValue: 8, Order: 1},
									{ID: "medium", Text: "1 to 5 mm", ScoreValue: 4, Order: 2},
									{ID: "wide", Text: "Over 5 mm", ScoreValue: 0, Order: 3},
								},
							},
							{
								Text:                    "Has a structural engineer inspected the cracks?",
								Type:                    models.QuestionTypeYesNo,
								MaxScore:                10,
								ConditionParentOptionID: sp("no"),
							},
						},
					},
					{
						Text:   "What is the general condition of the roof?",
						Type:   models.QuestionTypeSingleChoice,
						Weight: 1.5,
						Options: []models.QuestionOption{
							{ID: "good", Text: "Good", ScoreValue: 10, Order: 1},
							{ID: "fair", Text: "Fair", ScoreValue: 6, Order: 2},
							{ID: "poor", Text: "Poor", ScoreValue: 2, Order: 3},
						},
						Subquestions: []QuestionDocument{
							{
								Text:                    "Are there active leaks?",
								Type:                    models.QuestionTypeYesNo,
								MaxScore:                10,
								IsCritical:              true,
								ConditionParentOptionID: sp("poor"),
							},
						},
					},
					{
						Text:     "Building age in years",
						Type:     models.QuestionTypeNumeric,
						MaxScore: 5,
						Weight:   0.5,
					},
				},
			},
			{
				Name:        "Fire Safety",
				Description: "Detection, suppression and evacuation",
				Questions: []QuestionDocument{
					{
						Text:       "Are smoke detectors installed in every unit?",
						Type:       models.QuestionTypeYesNo,
						MaxScore:   10,
						Weight:     2,
						IsCritical: true,
						Subquestions: []QuestionDocument{
							{
								Text:                  "Were the detectors tested in the last 12 months?",
								Type:                  models.QuestionTypeYesNo,
								MaxScore:              10,
								ConditionParentAnswer: sp("true"),
							},
						},
					},
					{
						Text:       "Are fire extinguishers available on every floor?",
						Type:       models.QuestionTypeYesNo,
						MaxScore:   10,
						IsCritical: true,
						Subquestions: []QuestionDocument{
							{
								Text:     "Date of the last extinguisher inspection",
								Type:     models.QuestionTypeText,
								MaxScore: 5,
							},
						},
					},
					{
						Text:     "Are emergency exits clearly signposted?",
						Type:     models.QuestionTypeYesNo,
						MaxScore: 10,
						Options:  yesNo(),
					},
				},
			},
			{
				Name:        "Electrical Installations",
				Description: "Wiring, protection devices and maintenance",
				Questions: []QuestionDocument{
					{
						Text:       "Does the installation have residual current devices?",
						Type:       models.QuestionTypeYesNo,
						Weight:     1.5,
						IsCritical: true,
						Options:    yesNo(),
					},
					{
						Text: "When was the wiring last inspected?",
						Type: models.QuestionTypeSingleChoice,
						Options: []models.QuestionOption{
							{ID: "recent", Text: "Less than 5 years ago", ScoreValue: 10, Order: 1},
							{ID: "old", Text: "5 to 15 years ago", ScoreValue: 5, Order: 2},
							{ID: "never", Text: "More than 15 years ago or never", ScoreValue: 0, Order: 3},
						},
						Subquestions: []QuestionDocument{
							{
								Text:                    "Describe any known electrical problems",
								Type:                    models.QuestionTypeText,
								MaxScore:                5,
								ConditionParentOptionID: sp("never"),
							},
						},
					},
				},
			},
			{
				Name:        "Water and Drainage",
				Description: "Plumbing, drainage and moisture",
				Questions: []QuestionDocument{
					{
						Text: "Are there signs of moisture or mould?",
						Type: models.QuestionTypeSingleChoice,
						Options: []models.QuestionOption{
							{ID: "none", Text: "None", ScoreValue: 10, Order: 1},
							{ID: "localized", Text: "Localized", ScoreValue: 5, Order: 2},
							{ID: "widespread", Text: "Widespread", ScoreValue: 0, Order: 3},
						},
					},
					{
						Text:     "Is the drainage system cleaned regularly?",
						Type:     models.QuestionTypeYesNo,
						MaxScore: 10,
					},
				},
			},
		},
	}
}
