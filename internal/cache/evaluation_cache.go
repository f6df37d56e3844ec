// Package cache memoizes per-topic evaluation results in Redis.
// #IMPLEMENTATION_DECISION: Keys are content hashes, so a changed answer or question never hits a stale entry
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/evaluator"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
)

const keyPrefix = "riskassess:topic-eval:"

// EvaluationCache stores evaluated topics by content key
type EvaluationCache interface {
	Get(ctx context.Context, key string) (*evaluator.TopicResult, error)
	Set(ctx context.Context, key string, result *evaluator.TopicResult) error
}

// ErrMiss is returned by Get when no entry exists
var ErrMiss = errors.New("cache miss")

type redisEvaluationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisEvaluationCache creates a Redis backed evaluation cache
func NewRedisEvaluationCache(client *redis.Client, ttl time.Duration) EvaluationCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &redisEvaluationCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *redisEvaluationCache) Get(ctx context.Context, key string) (*evaluator.TopicResult, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	var result evaluator.TopicResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *redisEvaluationCache) Set(ctx context.Context, key string, result *evaluator.TopicResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err()
}

type nopEvaluationCache struct{}

// NewNopEvaluationCache returns a cache that never stores anything
func NewNopEvaluationCache() EvaluationCache {
	return nopEvaluationCache{}
}

func (nopEvaluationCache) Get(context.Context, string) (*evaluator.TopicResult, error) {
	return nil, ErrMiss
}

func (nopEvaluationCache) Set(context.Context, string, *evaluator.TopicResult) error {
	return nil
}

// keyQuestion is the part of a question that can change an evaluation
type keyQuestion struct {
	ID         string     `json:"i"`
	Depth      int        `json:"d"`
	Name       string     `json:"n,omitempty"`
	MaxScore   string     `json:"m"`
	Weight     string     `json:"w"`
	Critical   bool       `json:"c"`
	OptionCond *string    `json:"oc,omitempty"`
	AnswerCond *string    `json:"ac,omitempty"`
	UpdatedAt  int64      `json:"u"`
	Answer     *keyAnswer `json:"a,omitempty"`
}

type keyAnswer struct {
	OptionID     *string  `json:"o,omitempty"`
	TextValue    *string  `json:"t,omitempty"`
	NumericValue *string  `json:"v,omitempty"`
	Score        string   `json:"s"`
}

// TopicKey hashes a topic tree together with the answers to its questions.
// Answers to questions outside the topic do not change the key.
func TopicKey(tree models.TopicTree, answers models.AnswerSet) string {
	var nodes []keyQuestion
	var collect func(questions []models.Question, depth int)
	collect = func(questions []models.Question, depth int) {
		for i := range questions {
			q := &questions[i]
			node := keyQuestion{
				ID:         q.ID.Hex(),
				Depth:      depth,
				Name:       q.Text,
				MaxScore:   keyFloat(q.MaxScore),
				Weight:     keyFloat(q.Weight),
				Critical:   q.IsCritical,
				OptionCond: q.ConditionParentOptionID,
				AnswerCond: q.ConditionParentAnswer,
				UpdatedAt:  q.UpdatedAt.UnixNano(),
			}
			if a, ok := answers.Get(q.ID); ok {
				node.Answer = &keyAnswer{
					OptionID:     a.OptionID,
					TextValue:    a.TextValue,
					NumericValue: keyFloatPtr(a.NumericValue),
					Score:        keyFloat(a.Score),
				}
			}
			nodes = append(nodes, node)
			collect(q.Subquestions, depth+1)
		}
	}
	collect(tree.Questions, 0)

	// Only strings, ints and bools: Marshal cannot fail
	payload, _ := json.Marshal(struct {
		Topic string        `json:"t"`
		Name  string        `json:"n"`
		Nodes []keyQuestion `json:"q"`
	}{tree.Topic.ID.Hex(), tree.Topic.Name, nodes})

	sum := sha256.Sum256(payload)
	return tree.Topic.ID.Hex() + ":" + hex.EncodeToString(sum[:])
}

// keyFloat formats v for the key; NaN and infinities, which JSON cannot carry, stay distinct
func keyFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func keyFloatPtr(v *float64) *string {
	if v == nil {
		return nil
	}
	s := keyFloat(*v)
	return &s
}
