package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/cache"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/evaluator"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/events"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/metrics"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/repository"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/tracing"
)

// AssessmentService handles the assessment lifecycle and its evaluation
// #INTEGRATION_POINT: Used by assessment handler; evaluation is delegated to the evaluator package
type AssessmentService interface {
	// StartAssessment returns the open assessment for the building, creating it if needed.
	// The boolean is true when a new assessment was created.
	StartAssessment(ctx context.Context, userID primitive.ObjectID, req StartAssessmentRequest) (*models.Assessment, bool, error)

	// GetAssessment retrieves one of the user's assessments
	GetAssessment(ctx context.Context, id, userID primitive.ObjectID) (*models.Assessment, error)

	// ListAssessments lists the user's assessments
	ListAssessments(ctx context.Context, userID primitive.ObjectID, status *models.AssessmentStatus, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Assessment], error)

	// SaveAnswer validates, scores and records one answer
	SaveAnswer(ctx context.Context, id, userID primitive.ObjectID, req SaveAnswerRequest) (*SaveAnswerResult, error)

	// GetOverview returns per-topic progress and score with the overall figures
	GetOverview(ctx context.Context, id, userID primitive.ObjectID) (*Overview, error)

	// GetTopicPage returns the visible questions of one topic with its progress and score
	GetTopicPage(ctx context.Context, id, userID, topicID primitive.ObjectID) (*TopicPage, error)

	// CompleteAssessment finalizes the assessment and returns its report
	CompleteAssessment(ctx context.Context, id, userID primitive.ObjectID) (*ReportResponse, error)

	// CancelAssessment abandons the assessment
	CancelAssessment(ctx context.Context, id, userID primitive.ObjectID) (*models.Assessment, error)

	// GetReport assembles the report of an assessment in any status
	GetReport(ctx context.Context, id, userID primitive.ObjectID) (*ReportResponse, error)
}

// StartAssessmentRequest represents the request to start an assessment
type StartAssessmentRequest struct {
	BuildingID   string `json:"building_id" binding:"required"`
	BuildingType string `json:"building_type" binding:"required"`
}

// SaveAnswerRequest represents one answer. Exactly one payload field is expected,
// depending on the question type.
type SaveAnswerRequest struct {
	QuestionID   string   `json:"question_id" binding:"required"`
	OptionID     *string  `json:"option_id,omitempty"`
	TextValue    *string  `json:"text_value,omitempty"`
	NumericValue *float64 `json:"numeric_value,omitempty"`
}

// SaveAnswerResult is the saved answer with the refreshed figures of its topic
type SaveAnswerResult struct {
	Answer   models.Answer            `json:"answer"`
	TopicID  primitive.ObjectID       `json:"topic_id"`
	Progress evaluator.ProgressResult `json:"progress"`
	Score    evaluator.ScoreResult    `json:"score"`
}

// Overview summarizes an assessment across its topics
type Overview struct {
	AssessmentID      primitive.ObjectID       `json:"assessment_id"`
	Status            models.AssessmentStatus  `json:"status"`
	Topics            []TopicOverview          `json:"topics"`
	Progress          evaluator.ProgressResult `json:"progress"`
	Score             evaluator.ScoreResult    `json:"score"`
	AveragePercentage float64                  `json:"average_percentage"`
	RiskLevel         models.RiskLevel         `json:"risk_level"`
}

// TopicOverview is one topic's line in an Overview
type TopicOverview struct {
	TopicID        primitive.ObjectID       `json:"topic_id"`
	Name           string                   `json:"name"`
	DisplayOrder   int                      `json:"display_order"`
	Progress       evaluator.ProgressResult `json:"progress"`
	Score          evaluator.ScoreResult    `json:"score"`
	CriticalIssues int                      `json:"critical_issues"`
}

// TopicPage is what a user sees while answering one topic
type TopicPage struct {
	Topic          models.Topic              `json:"topic"`
	Questions      []evaluator.QuestionState `json:"questions"`
	Progress       evaluator.ProgressResult  `json:"progress"`
	Score          evaluator.ScoreResult     `json:"score"`
	CriticalIssues []evaluator.CriticalIssue `json:"critical_issues"`
}

// ReportResponse wraps a report with its generation time
type ReportResponse struct {
	evaluator.Report
	GeneratedAt time.Time `json:"generated_at"`
}

// assessmentService implements AssessmentService
type assessmentService struct {
	assessmentRepo repository.AssessmentRepository
	questionnaire  QuestionnaireService
	evalCache      cache.EvaluationCache
	publisher      events.Publisher
	metrics        *metrics.Metrics
	log            *zap.Logger
	now            func() time.Time
}

// NewAssessmentService creates a new assessment service. A nil cache, publisher
// or logger is replaced by a no-op; nil metrics are skipped.
func NewAssessmentService(
	assessmentRepo repository.AssessmentRepository,
	questionnaire QuestionnaireService,
	evalCache cache.EvaluationCache,
	publisher events.Publisher,
	m *metrics.Metrics,
	log *zap.Logger,
) AssessmentService {
	if evalCache == nil {
		evalCache = cache.NewNopEvaluationCache()
	}
	if publisher == nil {
		publisher = events.NewNopPublisher()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &assessmentService{
		assessmentRepo: assessmentRepo,
		questionnaire:  questionnaire,
		evalCache:      evalCache,
		publisher:      publisher,
		metrics:        m,
		log:            log,
		now:            time.Now,
	}
}

// StartAssessment returns or creates the open assessment
// #BUSINESS_RULE: At most one IN_PROGRESS assessment per building, user and building type
func (s *assessmentService) StartAssessment(ctx context.Context, userID primitive.ObjectID, req StartAssessmentRequest) (*models.Assessment, bool, error) {
	buildingID := strings.TrimSpace(req.BuildingID)
	buildingType := models.NormalizeBuildingType(req.BuildingType)
	if buildingID == "" {
		return nil, false, fmt.Errorf("%w: building_id is required", models.ErrInvalidInput)
	}
	if buildingType == "" {
		return nil, false, models.ErrInvalidBuildingType
	}

	topics, err := s.questionnaire.ListTopics(ctx, buildingType)
	if err != nil {
		return nil, false, err
	}
	if len(topics) == 0 {
		return nil, false, fmt.Errorf("%w: no questionnaire for %q", models.ErrInvalidBuildingType, buildingType)
	}

	existing, err := s.assessmentRepo.FindOpen(ctx, buildingID, userID, buildingType)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, models.ErrAssessmentNotFound) {
		return nil, false, fmt.Errorf("failed to find open assessment: %w", err)
	}

	assessment := &models.Assessment{
		BuildingID:   buildingID,
		BuildingType: buildingType,
		UserID:       userID,
	}
	if err := s.assessmentRepo.Create(ctx, assessment); err != nil {
		// Lost a race with a concurrent start; return the winner
		if errors.Is(err, models.ErrAssessmentExists) {
			existing, findErr := s.assessmentRepo.FindOpen(ctx, buildingID, userID, buildingType)
			if findErr != nil {
				return nil, false, fmt.Errorf("failed to find open assessment: %w", findErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to create assessment: %w", err)
	}

	s.log.Info("assessment started",
		zap.String("assessment_id", assessment.ID.Hex()),
		zap.String("building_id", buildingID),
		zap.String("building_type", buildingType),
	)
	return assessment, true, nil
}

// GetAssessment retrieves an assessment owned by the user
// #BUSINESS_RULE: Another user's assessment is reported as not found
func (s *assessmentService) GetAssessment(ctx context.Context, id, userID primitive.ObjectID) (*models.Assessment, error) {
	assessment, err := s.assessmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrAssessmentNotFound) {
			return nil, models.ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	if assessment.UserID != userID {
		return nil, models.ErrAssessmentNotFound
	}
	return assessment, nil
}

// ListAssessments lists the user's assessments
func (s *assessmentService) ListAssessments(ctx context.Context, userID primitive.ObjectID, status *models.AssessmentStatus, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Assessment], error) {
	if status != nil && !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status", models.ErrInvalidInput)
	}
	return s.assessmentRepo.ListByUser(ctx, userID, status, opts)
}

// SaveAnswer validates, scores and records one answer
// #BUSINESS_RULE: The score is fixed here and never re-derived during evaluation
func (s *assessmentService) SaveAnswer(ctx context.Context, id, userID primitive.ObjectID, req SaveAnswerRequest) (result *SaveAnswerResult, err error) {
	ctx, span := tracing.Start(ctx, "AssessmentService.SaveAnswer",
		attribute.String("assessment.id", id.Hex()),
		attribute.String("question.id", req.QuestionID),
	)
	defer func() { tracing.End(span, err) }()

	assessment, err := s.GetAssessment(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !assessment.CanBeAnswered() {
		return nil, models.ErrAssessmentNotOpen
	}

	questionID, err := primitive.ObjectIDFromHex(req.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid question ID", models.ErrInvalidInput)
	}
	question, err := s.questionnaire.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	tree, err := s.questionnaire.GetTopicTree(ctx, question.TopicID)
	if err != nil {
		return nil, err
	}
	if tree.Topic.BuildingType != assessment.BuildingType {
		return nil, models.ErrQuestionNotInProfile
	}

	answer := models.Answer{
		QuestionID:   question.ID,
		OptionID:     req.OptionID,
		TextValue:    req.TextValue,
		NumericValue: req.NumericValue,
	}
	if err := question.ValidateAnswer(answer); err != nil {
		return nil, err
	}
	question.NormalizeAnswer(&answer)
	answer.Score = question.ScoreAnswer(answer)
	answer.AnsweredAt = s.now().UTC()

	if err := s.assessmentRepo.SaveAnswer(ctx, assessment.ID, answer); err != nil {
		if errors.Is(err, models.ErrAssessmentNotOpen) || errors.Is(err, models.ErrAssessmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save answer: %w", err)
	}
	s.metrics.ObserveAnswerSaved()

	assessment.SaveAnswer(answer)
	topicResult := s.evaluateTopic(ctx, *tree, assessment.AnswerSet())

	return &SaveAnswerResult{
		Answer:   answer,
		TopicID:  tree.Topic.ID,
		Progress: topicResult.Progress,
		Score:    topicResult.Score,
	}, nil
}

// GetOverview returns per-topic progress and score
func (s *assessmentService) GetOverview(ctx context.Context, id, userID primitive.ObjectID) (overview *Overview, err error) {
	ctx, span := tracing.Start(ctx, "AssessmentService.GetOverview", attribute.String("assessment.id", id.Hex()))
	defer func() { tracing.End(span, err) }()

	assessment, err := s.GetAssessment(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	trees, results, err := s.evaluateAssessment(ctx, assessment)
	if err != nil {
		return nil, err
	}

	report := evaluator.ComposeReport(assessment, results)
	overview = &Overview{
		AssessmentID:      assessment.ID,
		Status:            assessment.Status,
		Topics:            make([]TopicOverview, 0, len(results)),
		Progress:          report.Progress,
		Score:             report.OverallScore,
		AveragePercentage: report.AveragePercentage,
		RiskLevel:         report.RiskLevel,
	}
	for i, r := range results {
		overview.Topics = append(overview.Topics, TopicOverview{
			TopicID:        r.TopicID,
			Name:           r.TopicName,
			DisplayOrder:   trees[i].Topic.DisplayOrder,
			Progress:       r.Progress,
			Score:          r.Score,
			CriticalIssues: len(r.CriticalIssues),
		})
	}
	return overview, nil
}

// GetTopicPage returns the visible questions of one topic
func (s *assessmentService) GetTopicPage(ctx context.Context, id, userID, topicID primitive.ObjectID) (*TopicPage, error) {
	assessment, err := s.GetAssessment(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	tree, err := s.questionnaire.GetTopicTree(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if tree.Topic.BuildingType != assessment.BuildingType {
		return nil, models.ErrTopicNotFound
	}

	answers := assessment.AnswerSet()
	result := s.evaluateTopic(ctx, *tree, answers)
	return &TopicPage{
		Topic:          tree.Topic,
		Questions:      evaluator.VisibleQuestions(tree.Questions, answers),
		Progress:       result.Progress,
		Score:          result.Score,
		CriticalIssues: result.CriticalIssues,
	}, nil
}

// CompleteAssessment finalizes the assessment
// #BUSINESS_RULE: TotalScore is the average topic percentage that also drives the risk level
// #BUSINESS_RULE: Completion is allowed with unanswered questions; the report recommends finishing them
func (s *assessmentService) CompleteAssessment(ctx context.Context, id, userID primitive.ObjectID) (resp *ReportResponse, err error) {
	ctx, span := tracing.Start(ctx, "AssessmentService.CompleteAssessment", attribute.String("assessment.id", id.Hex()))
	defer func() { tracing.End(span, err) }()

	assessment, err := s.GetAssessment(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !assessment.CanBeAnswered() {
		return nil, models.ErrAssessmentNotOpen
	}
	_, results, err := s.evaluateAssessment(ctx, assessment)
	if err != nil {
		return nil, err
	}

	preview := evaluator.ComposeReport(assessment, results)
	if err := assessment.Complete(preview.AveragePercentage, preview.RiskLevel); err != nil {
		return nil, models.ErrAssessmentNotOpen
	}
	if err := s.assessmentRepo.Finalize(ctx, assessment); err != nil {
		if errors.Is(err, models.ErrAssessmentNotOpen) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to complete assessment: %w", err)
	}

	report := evaluator.ComposeReport(assessment, results)
	s.metrics.ObserveCompletion(report.RiskLevel.String())
	s.publish(ctx, events.AssessmentCompleted, assessment, &report)

	s.log.Info("assessment completed",
		zap.String("assessment_id", assessment.ID.Hex()),
		zap.Float64("total_score", report.AveragePercentage),
		zap.String("risk_level", report.RiskLevel.String()),
		zap.Int("critical_issues", len(report.CriticalIssues)),
	)
	return &ReportResponse{Report: report, GeneratedAt: s.now().UTC()}, nil
}

// CancelAssessment abandons the assessment
func (s *assessmentService) CancelAssessment(ctx context.Context, id, userID primitive.ObjectID) (*models.Assessment, error) {
	assessment, err := s.GetAssessment(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := assessment.Cancel(); err != nil {
		return nil, models.ErrAssessmentNotOpen
	}
	if err := s.assessmentRepo.Finalize(ctx, assessment); err != nil {
		if errors.Is(err, models.ErrAssessmentNotOpen) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to cancel assessment: %w", err)
	}

	s.publish(ctx, events.AssessmentCancelled, assessment, nil)
	s.log.Info("assessment cancelled", zap.String("assessment_id", assessment.ID.Hex()))
	return assessment, nil
}

// GetReport assembles the report of an assessment
func (s *assessmentService) GetReport(ctx context.Context, id, userID primitive.ObjectID) (resp *ReportResponse, err error) {
	ctx, span := tracing.Start(ctx, "AssessmentService.GetReport", attribute.String("assessment.id", id.Hex()))
	defer func() { tracing.End(span, err) }()

	assessment, err := s.GetAssessment(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	_, results, err := s.evaluateAssessment(ctx, assessment)
	if err != nil {
		return nil, err
	}
	return &ReportResponse{
		Report:      evaluator.ComposeReport(assessment, results),
		GeneratedAt: s.now().UTC(),
	}, nil
}

// evaluateAssessment evaluates every topic of the assessment's building type in display order
func (s *assessmentService) evaluateAssessment(ctx context.Context, assessment *models.Assessment) ([]models.TopicTree, []evaluator.TopicResult, error) {
	trees, err := s.questionnaire.ListTopicTrees(ctx, assessment.BuildingType)
	if err != nil {
		return nil, nil, err
	}
	answers := assessment.AnswerSet()
	results := make([]evaluator.TopicResult, 0, len(trees))
	for _, tree := range trees {
		results = append(results, s.evaluateTopic(ctx, tree, answers))
	}
	return trees, results, nil
}

// evaluateTopic evaluates one topic through the cache
// #IMPLEMENTATION_DECISION: Cache failures degrade to a direct evaluation
func (s *assessmentService) evaluateTopic(ctx context.Context, tree models.TopicTree, answers models.AnswerSet) evaluator.TopicResult {
	key := cache.TopicKey(tree, answers)

	cached, err := s.evalCache.Get(ctx, key)
	if err == nil && cached != nil {
		s.metrics.ObserveTopicEvaluation(true)
		return *cached
	}
	if err != nil && !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("evaluation cache read failed", zap.String("topic_id", tree.Topic.ID.Hex()), zap.Error(err))
	}

	s.metrics.ObserveTopicEvaluation(false)
	result := evaluator.EvaluateTopic(tree, answers)
	if err := s.evalCache.Set(ctx, key, &result); err != nil {
		s.log.Warn("evaluation cache write failed", zap.String("topic_id", tree.Topic.ID.Hex()), zap.Error(err))
	}
	return result
}

// publish emits a lifecycle event; delivery failures are logged, never returned
// #INTEGRATION_POINT: Event delivery is best effort; the assessment state is the source of truth
func (s *assessmentService) publish(ctx context.Context, eventType string, assessment *models.Assessment, report *evaluator.Report) {
	payload := events.AssessmentEvent{
		AssessmentID:  assessment.ID.Hex(),
		BuildingID:    assessment.BuildingID,
		BuildingType:  assessment.BuildingType,
		UserID:        assessment.UserID.Hex(),
		Status:        strings.ToLower(string(assessment.Status)),
		TotalScore:    assessment.TotalScore,
		AnsweredCount: assessment.AnswerCount(),
	}
	if assessment.RiskLevel != nil {
		payload.RiskLevel = assessment.RiskLevel.String()
	}
	if report != nil {
		payload.CriticalIssues = len(report.CriticalIssues)
		payload.QuestionCount = report.Progress.Total
		payload.AnsweredCount = report.Progress.Answered
		payload.Recommendations = report.Recommendations
	}

	if err := s.publisher.Publish(ctx, eventType, payload); err != nil {
		s.log.Error("failed to publish event",
			zap.String("type", eventType),
			zap.String("assessment_id", assessment.ID.Hex()),
			zap.Error(err),
		)
	}
}
