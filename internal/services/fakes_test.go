package services

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/cache"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/evaluator"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/repository"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

type fakeTopicRepo struct {
	topics map[primitive.ObjectID]models.Topic
}

func newFakeTopicRepo() *fakeTopicRepo {
	return &fakeTopicRepo{topics: map[primitive.ObjectID]models.Topic{}}
}

func (r *fakeTopicRepo) Create(_ context.Context, topic *models.Topic) error {
	topic.BeforeCreate()
	r.topics[topic.ID] = *topic
	return nil
}

func (r *fakeTopicRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Topic, error) {
	t, ok := r.topics[id]
	if !ok {
		return nil, models.ErrTopicNotFound
	}
	return &t, nil
}

func (r *fakeTopicRepo) Update(_ context.Context, topic *models.Topic) error {
	if _, ok := r.topics[topic.ID]; !ok {
		return models.ErrTopicNotFound
	}
	topic.BeforeUpdate()
	r.topics[topic.ID] = *topic
	return nil
}

func (r *fakeTopicRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.topics[id]; !ok {
		return models.ErrTopicNotFound
	}
	delete(r.topics, id)
	return nil
}

func (r *fakeTopicRepo) ListByBuildingType(_ context.Context, buildingType string) ([]models.Topic, error) {
	bt := models.NormalizeBuildingType(buildingType)
	out := []models.Topic{}
	for _, t := range r.topics {
		if bt == "" || t.BuildingType == bt {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

type fakeQuestionRepo struct {
	questions map[primitive.ObjectID]models.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: map[primitive.ObjectID]models.Question{}}
}

func (r *fakeQuestionRepo) Create(_ context.Context, q *models.Question) error {
	q.BeforeCreate()
	r.questions[q.ID] = *q
	return nil
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, models.ErrQuestionNotFound
	}
	return &q, nil
}

func (r *fakeQuestionRepo) Update(_ context.Context, q *models.Question) error {
	if _, ok := r.questions[q.ID]; !ok {
		return models.ErrQuestionNotFound
	}
	q.BeforeUpdate()
	r.questions[q.ID] = *q
	return nil
}

func (r *fakeQuestionRepo) DeleteMany(_ context.Context, ids []primitive.ObjectID) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.questions[id]; ok {
			delete(r.questions, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeQuestionRepo) ListByTopic(ctx context.Context, topicID primitive.ObjectID) ([]models.Question, error) {
	return r.ListByTopics(ctx, []primitive.ObjectID{topicID})
}

func (r *fakeQuestionRepo) ListByTopics(_ context.Context, topicIDs []primitive.ObjectID) ([]models.Question, error) {
	want := map[primitive.ObjectID]bool{}
	for _, id := range topicIDs {
		want[id] = true
	}
	out := []models.Question{}
	for _, q := range r.questions {
		if want[q.TopicID] {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *fakeQuestionRepo) CountByTopic(_ context.Context, topicID primitive.ObjectID) (int64, error) {
	var n int64
	for _, q := range r.questions {
		if q.TopicID == topicID {
			n++
		}
	}
	return n, nil
}

type fakeAssessmentRepo struct {
	assessments map[primitive.ObjectID]models.Assessment
}

func newFakeAssessmentRepo() *fakeAssessmentRepo {
	return &fakeAssessmentRepo{assessments: map[primitive.ObjectID]models.Assessment{}}
}

func (r *fakeAssessmentRepo) Create(_ context.Context, a *models.Assessment) error {
	a.BeforeCreate()
	for _, existing := range r.assessments {
		if existing.Status == models.AssessmentStatusInProgress &&
			existing.BuildingID == a.BuildingID &&
			existing.UserID == a.UserID &&
			existing.BuildingType == a.BuildingType {
			return models.ErrAssessmentExists
		}
	}
	r.assessments[a.ID] = *a
	return nil
}

func (r *fakeAssessmentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Assessment, error) {
	a, ok := r.assessments[id]
	if !ok {
		return nil, models.ErrAssessmentNotFound
	}
	a.Answers = append([]models.Answer(nil), a.Answers...)
	return &a, nil
}

func (r *fakeAssessmentRepo) FindOpen(_ context.Context, buildingID string, userID primitive.ObjectID, buildingType string) (*models.Assessment, error) {
	for _, a := range r.assessments {
		if a.Status == models.AssessmentStatusInProgress &&
			a.BuildingID == buildingID &&
			a.UserID == userID &&
			a.BuildingType == models.NormalizeBuildingType(buildingType) {
			return &a, nil
		}
	}
	return nil, models.ErrAssessmentNotFound
}

func (r *fakeAssessmentRepo) SaveAnswer(_ context.Context, id primitive.ObjectID, answer models.Answer) error {
	a, ok := r.assessments[id]
	if !ok {
		return models.ErrAssessmentNotFound
	}
	if !a.CanBeAnswered() {
		return models.ErrAssessmentNotOpen
	}
	a.Answers = append([]models.Answer(nil), a.Answers...)
	a.SaveAnswer(answer)
	r.assessments[id] = a
	return nil
}

func (r *fakeAssessmentRepo) Finalize(_ context.Context, a *models.Assessment) error {
	stored, ok := r.assessments[a.ID]
	if !ok {
		return models.ErrAssessmentNotFound
	}
	if stored.Status != models.AssessmentStatusInProgress {
		return models.ErrAssessmentNotOpen
	}
	stored.Status = a.Status
	stored.TotalScore = a.TotalScore
	stored.RiskLevel = a.RiskLevel
	stored.CompletedAt = a.CompletedAt
	stored.UpdatedAt = a.UpdatedAt
	r.assessments[a.ID] = stored
	return nil
}

func (r *fakeAssessmentRepo) ListByUser(_ context.Context, userID primitive.ObjectID, status *models.AssessmentStatus, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Assessment], error) {
	opts = opts.Normalize()
	var out []models.Assessment
	for _, a := range r.assessments {
		if a.UserID == userID && (status == nil || a.Status == *status) {
			out = append(out, a)
		}
	}
	return repository.NewPaginatedResult(out, int64(len(out)), opts), nil
}

// mapCache is an in-memory EvaluationCache
type mapCache struct {
	mu      sync.Mutex
	entries map[string]evaluator.TopicResult
	gets    int
	hits    int
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string]evaluator.TopicResult{}}
}

func (c *mapCache) Get(_ context.Context, key string) (*evaluator.TopicResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	r, ok := c.entries[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	c.hits++
	return &r, nil
}

func (c *mapCache) Set(_ context.Context, key string, result *evaluator.TopicResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = *result
	return nil
}

type publishedEvent struct {
	eventType string
	payload   interface{}
}

type recordingPublisher struct {
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, payload interface{}) error {
	p.events = append(p.events, publishedEvent{eventType: eventType, payload: payload})
	return nil
}

func (p *recordingPublisher) Close() {}
