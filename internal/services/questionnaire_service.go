// Package services provides business logic implementations.
package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/repository"
)

// QuestionnaireService handles topics and their question trees
// #INTEGRATION_POINT: Used by topic and question handlers, and by the assessment service to load trees
type QuestionnaireService interface {
	// CreateTopic creates a new topic
	CreateTopic(ctx context.Context, req CreateTopicRequest) (*models.Topic, error)

	// GetTopic retrieves a topic by ID
	GetTopic(ctx context.Context, id primitive.ObjectID) (*models.Topic, error)

	// ListTopics lists topics, optionally for one building type
	ListTopics(ctx context.Context, buildingType string) ([]models.Topic, error)

	// UpdateTopic updates topic metadata
	UpdateTopic(ctx context.Context, id primitive.ObjectID, req UpdateTopicRequest) (*models.Topic, error)

	// DeleteTopic deletes a topic without questions
	DeleteTopic(ctx context.Context, id primitive.ObjectID) error

	// AddQuestion adds a question to a topic, optionally under a parent
	AddQuestion(ctx context.Context, topicID primitive.ObjectID, req CreateQuestionRequest) (*models.Question, error)

	// GetQuestion retrieves a question by ID
	GetQuestion(ctx context.Context, id primitive.ObjectID) (*models.Question, error)

	// UpdateQuestion updates a question
	UpdateQuestion(ctx context.Context, id primitive.ObjectID, req UpdateQuestionRequest) (*models.Question, error)

	// DeleteQuestion deletes a question with all its descendants
	DeleteQuestion(ctx context.Context, id primitive.ObjectID) (int64, error)

	// GetTopicTree retrieves a topic with its assembled question tree
	GetTopicTree(ctx context.Context, topicID primitive.ObjectID) (*models.TopicTree, error)

	// ListTopicTrees retrieves every topic tree of a building type in display order
	ListTopicTrees(ctx context.Context, buildingType string) ([]models.TopicTree, error)
}

// CreateTopicRequest represents the request to create a topic
type CreateTopicRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description,omitempty"`
	BuildingType string `json:"building_type" binding:"required"`
	DisplayOrder int    `json:"display_order,omitempty"`
}

// UpdateTopicRequest represents the request to update a topic
type UpdateTopicRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
}

// CreateQuestionRequest represents the request to create a question
type CreateQuestionRequest struct {
	ParentQuestionID        *string                 `json:"parent_question_id,omitempty"`
	Text                    string                  `json:"text" binding:"required"`
	HelpText                string                  `json:"help_text,omitempty"`
	Type                    models.QuestionType     `json:"type" binding:"required"`
	Order                   int                     `json:"order,omitempty"`
	MaxScore                float64                 `json:"max_score,omitempty"`
	Weight                  float64                 `json:"weight,omitempty"`
	IsCritical              bool                    `json:"is_critical,omitempty"`
	ConditionParentAnswer   *string                 `json:"condition_parent_answer,omitempty"`
	ConditionParentOptionID *string                 `json:"condition_parent_option_id,omitempty"`
	Options                 []models.QuestionOption `json:"options,omitempty"`
}

// UpdateQuestionRequest represents the request to update a question.
// Conditions are replaced as a pair when either is present.
type UpdateQuestionRequest struct {
	Text                    *string                 `json:"text,omitempty"`
	HelpText                *string                 `json:"help_text,omitempty"`
	Type                    *models.QuestionType    `json:"type,omitempty"`
	Order                   *int                    `json:"order,omitempty"`
	MaxScore                *float64                `json:"max_score,omitempty"`
	Weight                  *float64                `json:"weight,omitempty"`
	IsCritical              *bool                   `json:"is_critical,omitempty"`
	ConditionParentAnswer   *string                 `json:"condition_parent_answer,omitempty"`
	ConditionParentOptionID *string                 `json:"condition_parent_option_id,omitempty"`
	ClearCondition          bool                    `json:"clear_condition,omitempty"`
	Options                 []models.QuestionOption `json:"options,omitempty"`
}

// questionnaireService implements QuestionnaireService
type questionnaireService struct {
	topicRepo    repository.TopicRepository
	questionRepo repository.QuestionRepository
}

// NewQuestionnaireService creates a new questionnaire service
func NewQuestionnaireService(
	topicRepo repository.TopicRepository,
	questionRepo repository.QuestionRepository,
) QuestionnaireService {
	return &questionnaireService{
		topicRepo:    topicRepo,
		questionRepo: questionRepo,
	}
}

// CreateTopic creates a new topic
func (s *questionnaireService) CreateTopic(ctx context.Context, req CreateTopicRequest) (*models.Topic, error) {
	topic := &models.Topic{
		Name:         req.Name,
		Description:  req.Description,
		BuildingType: req.BuildingType,
		DisplayOrder: req.DisplayOrder,
	}
	if err := topic.Validate(); err != nil {
		return nil, err
	}

	// Append to the end of the building type's topics by default
	if topic.DisplayOrder == 0 {
		existing, err := s.topicRepo.ListByBuildingType(ctx, topic.BuildingType)
		if err != nil {
			return nil, fmt.Errorf("failed to list topics: %w", err)
		}
		for _, t := range existing {
			if t.DisplayOrder >= topic.DisplayOrder {
				topic.DisplayOrder = t.DisplayOrder + 1
			}
		}
		if topic.DisplayOrder == 0 {
			topic.DisplayOrder = 1
		}
	}

	if err := s.topicRepo.Create(ctx, topic); err != nil {
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}
	return topic, nil
}

// GetTopic retrieves a topic by ID
func (s *questionnaireService) GetTopic(ctx context.Context, id primitive.ObjectID) (*models.Topic, error) {
	topic, err := s.topicRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrTopicNotFound) {
			return nil, models.ErrTopicNotFound
		}
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}
	return topic, nil
}

// ListTopics lists topics
func (s *questionnaireService) ListTopics(ctx context.Context, buildingType string) ([]models.Topic, error) {
	topics, err := s.topicRepo.ListByBuildingType(ctx, buildingType)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	return topics, nil
}

// UpdateTopic updates topic metadata
// #BUSINESS_RULE: A topic never changes building type, since open assessments are bound to it
func (s *questionnaireService) UpdateTopic(ctx context.Context, id primitive.ObjectID, req UpdateTopicRequest) (*models.Topic, error) {
	topic, err := s.GetTopic(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		topic.Name = *req.Name
	}
	if req.Description != nil {
		topic.Description = *req.Description
	}
	if req.DisplayOrder != nil {
		topic.DisplayOrder = *req.DisplayOrder
	}
	if err := topic.Validate(); err != nil {
		return nil, err
	}

	if err := s.topicRepo.Update(ctx, topic); err != nil {
		return nil, fmt.Errorf("failed to update topic: %w", err)
	}
	return topic, nil
}

// DeleteTopic deletes a topic
// #BUSINESS_RULE: Topics with questions cannot be deleted
func (s *questionnaireService) DeleteTopic(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetTopic(ctx, id); err != nil {
		return err
	}

	count, err := s.questionRepo.CountByTopic(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count questions: %w", err)
	}
	if count > 0 {
		return models.ErrTopicHasQuestions
	}

	if err := s.topicRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	return nil
}

// AddQuestion adds a question to a topic
func (s *questionnaireService) AddQuestion(ctx context.Context, topicID primitive.ObjectID, req CreateQuestionRequest) (*models.Question, error) {
	if _, err := s.GetTopic(ctx, topicID); err != nil {
		return nil, err
	}

	question := &models.Question{
		TopicID:                 topicID,
		Text:                    req.Text,
		HelpText:                req.HelpText,
		Type:                    req.Type,
		Order:                   req.Order,
		MaxScore:                req.MaxScore,
		Weight:                  req.Weight,
		IsCritical:              req.IsCritical,
		ConditionParentAnswer:   req.ConditionParentAnswer,
		ConditionParentOptionID: req.ConditionParentOptionID,
		Options:                 req.Options,
	}

	var parent *models.Question
	if req.ParentQuestionID != nil {
		p, err := s.loadParent(ctx, *req.ParentQuestionID)
		if err != nil {
			return nil, err
		}
		parent = p
		question.ParentQuestionID = &p.ID
	}

	question.AssignOptionIDs()
	if err := question.Validate(parent); err != nil {
		return nil, err
	}

	// Append after existing siblings by default
	if question.Order == 0 {
		siblings, err := s.questionRepo.ListByTopic(ctx, topicID)
		if err != nil {
			return nil, fmt.Errorf("failed to list questions: %w", err)
		}
		for _, sib := range siblings {
			if sameParent(sib.ParentQuestionID, question.ParentQuestionID) && sib.Order >= question.Order {
				question.Order = sib.Order + 1
			}
		}
		if question.Order == 0 {
			question.Order = 1
		}
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

// GetQuestion retrieves a question by ID
func (s *questionnaireService) GetQuestion(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrQuestionNotFound) {
			return nil, models.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return question, nil
}

// UpdateQuestion updates a question
// #BUSINESS_RULE: An edit that would break a child's gating condition is rejected
func (s *questionnaireService) UpdateQuestion(ctx context.Context, id primitive.ObjectID, req UpdateQuestionRequest) (*models.Question, error) {
	question, err := s.GetQuestion(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		question.Text = *req.Text
	}
	if req.HelpText != nil {
		question.HelpText = *req.HelpText
	}
	if req.Type != nil {
		question.Type = *req.Type
	}
	if req.Order != nil {
		question.Order = *req.Order
	}
	if req.MaxScore != nil {
		question.MaxScore = *req.MaxScore
	}
	if req.Weight != nil {
		question.Weight = *req.Weight
	}
	if req.IsCritical != nil {
		question.IsCritical = *req.IsCritical
	}
	if req.ClearCondition {
		question.ConditionParentAnswer = nil
		question.ConditionParentOptionID = nil
	}
	if req.ConditionParentAnswer != nil || req.ConditionParentOptionID != nil {
		question.ConditionParentAnswer = req.ConditionParentAnswer
		question.ConditionParentOptionID = req.ConditionParentOptionID
	}
	if req.Options != nil {
		question.Options = req.Options
	}
	question.AssignOptionIDs()

	var parent *models.Question
	if question.ParentQuestionID != nil {
		parent, err = s.GetQuestion(ctx, *question.ParentQuestionID)
		if err != nil {
			return nil, err
		}
	}
	if err := question.Validate(parent); err != nil {
		return nil, err
	}

	all, err := s.questionRepo.ListByTopic(ctx, question.TopicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	for i := range all {
		child := &all[i]
		if child.ParentQuestionID == nil || *child.ParentQuestionID != question.ID {
			continue
		}
		if err := child.Validate(question); err != nil {
			return nil, fmt.Errorf("subquestion %s: %w", child.ID.Hex(), err)
		}
	}

	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	return question, nil
}

// DeleteQuestion deletes a question and its descendants
// #CASCADE_STRATEGY: CASCADE DELETE - subquestions are deleted with their parent
func (s *questionnaireService) DeleteQuestion(ctx context.Context, id primitive.ObjectID) (int64, error) {
	question, err := s.GetQuestion(ctx, id)
	if err != nil {
		return 0, err
	}

	all, err := s.questionRepo.ListByTopic(ctx, question.TopicID)
	if err != nil {
		return 0, fmt.Errorf("failed to list questions: %w", err)
	}

	ids := subtreeIDs(all, question.ID)
	deleted, err := s.questionRepo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete questions: %w", err)
	}
	return deleted, nil
}

// GetTopicTree retrieves a topic with its question tree
func (s *questionnaireService) GetTopicTree(ctx context.Context, topicID primitive.ObjectID) (*models.TopicTree, error) {
	topic, err := s.GetTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}

	flat, err := s.questionRepo.ListByTopic(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	tree, err := models.BuildQuestionTree(topicID, flat)
	if err != nil {
		return nil, err
	}
	return &models.TopicTree{Topic: *topic, Questions: tree}, nil
}

// ListTopicTrees retrieves every topic tree of a building type
func (s *questionnaireService) ListTopicTrees(ctx context.Context, buildingType string) ([]models.TopicTree, error) {
	buildingType = models.NormalizeBuildingType(buildingType)
	if buildingType == "" {
		return nil, models.ErrInvalidBuildingType
	}

	topics, err := s.topicRepo.ListByBuildingType(ctx, buildingType)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	if len(topics) == 0 {
		return []models.TopicTree{}, nil
	}

	topicIDs := make([]primitive.ObjectID, len(topics))
	for i, t := range topics {
		topicIDs[i] = t.ID
	}
	flat, err := s.questionRepo.ListByTopics(ctx, topicIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	byTopic := make(map[primitive.ObjectID][]models.Question, len(topics))
	for _, q := range flat {
		byTopic[q.TopicID] = append(byTopic[q.TopicID], q)
	}

	trees := make([]models.TopicTree, 0, len(topics))
	for _, t := range topics {
		tree, err := models.BuildQuestionTree(t.ID, byTopic[t.ID])
		if err != nil {
			return nil, fmt.Errorf("topic %s: %w", t.ID.Hex(), err)
		}
		trees = append(trees, models.TopicTree{Topic: t, Questions: tree})
	}
	return trees, nil
}

func (s *questionnaireService) loadParent(ctx context.Context, hexID string) (*models.Question, error) {
	parentID, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid parent question ID", models.ErrInvalidInput)
	}
	parent, err := s.questionRepo.GetByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, models.ErrQuestionNotFound) {
			return nil, fmt.Errorf("%w: parent question %s does not exist", models.ErrInvalidInput, hexID)
		}
		return nil, fmt.Errorf("failed to get parent question: %w", err)
	}
	return parent, nil
}

func sameParent(a, b *primitive.ObjectID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// subtreeIDs returns root and every question below it
func subtreeIDs(all []models.Question, root primitive.ObjectID) []primitive.ObjectID {
	children := make(map[primitive.ObjectID][]primitive.ObjectID, len(all))
	for _, q := range all {
		if q.ParentQuestionID != nil {
			children[*q.ParentQuestionID] = append(children[*q.ParentQuestionID], q.ID)
		}
	}

	ids := []primitive.ObjectID{root}
	seen := map[primitive.ObjectID]bool{root: true}
	for i := 0; i < len(ids); i++ {
		for _, c := range children[ids[i]] {
			if !seen[c] {
				seen[c] = true
				ids = append(ids, c)
			}
		}
	}
	return ids
}
