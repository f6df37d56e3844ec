package evaluator

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
)

const (
	// CriticalScoreRatio is the share of MaxScore under which a critical question is an issue
	CriticalScoreRatio = 0.5
	// LowTopicPercentage is the topic score under which a review is recommended
	LowTopicPercentage = 50.0
)

// CriticalIssue is an answered, visible critical question that scored under half its max
type CriticalIssue struct {
	TopicID      primitive.ObjectID `json:"topic_id"`
	TopicName    string             `json:"topic_name"`
	QuestionID   primitive.ObjectID `json:"question_id"`
	QuestionText string             `json:"question_text"`
	MaxScore     float64            `json:"max_score"`
	Answer       models.Answer      `json:"answer"`
}

// TopicResult is the full evaluation of one topic
type TopicResult struct {
	TopicID        primitive.ObjectID `json:"topic_id"`
	TopicName      string             `json:"topic_name"`
	Progress       ProgressResult     `json:"progress"`
	Score          ScoreResult        `json:"score"`
	CriticalIssues []CriticalIssue    `json:"critical_issues"`
}

// topicEvaluator runs every projection in a single pass
type topicEvaluator struct {
	topic    models.Topic
	progress progressCounter
	score    scoreAccumulator
	issues   []CriticalIssue
}

func (e *topicEvaluator) visit(q *models.Question, parent *models.Question, answer models.Answer, answered bool, depth int) {
	e.progress.visit(q, parent, answer, answered, depth)
	e.score.visit(q, parent, answer, answered, depth)

	// #BUSINESS_RULE: Issue threshold compares the unweighted answer score to the unweighted max
	if answered && q.IsCritical && answer.Score < CriticalScoreRatio*q.MaxScore {
		e.issues = append(e.issues, CriticalIssue{
			TopicID:      e.topic.ID,
			TopicName:    e.topic.Name,
			QuestionID:   q.ID,
			QuestionText: q.Text,
			MaxScore:     q.MaxScore,
			Answer:       answer,
		})
	}
}

func (e *topicEvaluator) pending(children []models.Question) {
	e.progress.pending(children)
	e.score.pending(children)
}

// EvaluateTopic computes progress, score and critical issues of one topic tree
func EvaluateTopic(tree models.TopicTree, answers models.AnswerSet) TopicResult {
	e := &topicEvaluator{topic: tree.Topic, issues: []CriticalIssue{}}
	walk(tree.Questions, nil, answers, 0, e)
	return TopicResult{
		TopicID:        tree.Topic.ID,
		TopicName:      tree.Topic.Name,
		Progress:       e.progress.result(),
		Score:          e.score.result(),
		CriticalIssues: e.issues,
	}
}

// TopicScore is a topic's line in a report
type TopicScore struct {
	TopicID           primitive.ObjectID `json:"topic_id"`
	TopicName         string             `json:"topic_name"`
	TotalScore        float64            `json:"total_score"`
	MaxPossibleScore  float64            `json:"max_possible_score"`
	Percentage        float64            `json:"percentage"`
	AnsweredQuestions int                `json:"answered_questions"`
	TotalQuestions    int                `json:"total_questions"`
	CriticalIssues    int                `json:"critical_issues"`
}

// NewTopicScore projects a topic result into its report line
func NewTopicScore(r TopicResult) TopicScore {
	return TopicScore{
		TopicID:           r.TopicID,
		TopicName:         r.TopicName,
		TotalScore:        r.Score.Score,
		MaxPossibleScore:  r.Score.MaxScore,
		Percentage:        r.Score.Percentage,
		AnsweredQuestions: r.Progress.Answered,
		TotalQuestions:    r.Progress.Total,
		CriticalIssues:    len(r.CriticalIssues),
	}
}

// Report is the assembled result of an assessment
type Report struct {
	AssessmentID         primitive.ObjectID      `json:"assessment_id"`
	BuildingID           string                  `json:"building_id"`
	BuildingType         string                  `json:"building_type"`
	Status               models.AssessmentStatus `json:"status"`
	TopicScores          []TopicScore            `json:"topic_scores"`
	CriticalIssues       []CriticalIssue         `json:"critical_issues"`
	Progress             ProgressResult          `json:"progress"`
	OverallScore         ScoreResult             `json:"overall_score"`
	CompletionPercentage float64                 `json:"completion_percentage"`
	AveragePercentage    float64                 `json:"average_percentage"`
	RiskLevel            models.RiskLevel        `json:"risk_level"`
	Recommendations      []string                `json:"recommendations"`
}

// AssembleReport evaluates every topic and composes the report.
// Topics are reported in the order given.
func AssembleReport(assessment *models.Assessment, topics []models.TopicTree, answers models.AnswerSet) Report {
	results := make([]TopicResult, 0, len(topics))
	for _, t := range topics {
		results = append(results, EvaluateTopic(t, answers))
	}
	return ComposeReport(assessment, results)
}

// ComposeReport builds a report from already evaluated topics
func ComposeReport(assessment *models.Assessment, results []TopicResult) Report {
	report := Report{
		TopicScores:     make([]TopicScore, 0, len(results)),
		CriticalIssues:  []CriticalIssue{},
		Recommendations: []string{},
	}
	if assessment != nil {
		report.AssessmentID = assessment.ID
		report.BuildingID = assessment.BuildingID
		report.BuildingType = assessment.BuildingType
		report.Status = assessment.Status
	}

	progress := make([]ProgressResult, 0, len(results))
	scores := make([]ScoreResult, 0, len(results))
	for _, r := range results {
		ts := NewTopicScore(r)
		report.TopicScores = append(report.TopicScores, ts)
		report.CriticalIssues = append(report.CriticalIssues, r.CriticalIssues...)
		progress = append(progress, r.Progress)
		scores = append(scores, r.Score)
		report.Recommendations = append(report.Recommendations, topicRecommendations(ts)...)
	}

	report.Progress = SumProgress(progress...)
	report.OverallScore = SumScores(scores...)
	report.CompletionPercentage = report.Progress.Percentage
	report.AveragePercentage = AverageTopicPercentage(report.TopicScores)
	report.RiskLevel = ClassifyRisk(report.AveragePercentage)

	if report.Progress.Total > 0 && report.Progress.Answered < report.Progress.Total {
		remaining := report.Progress.Total - report.Progress.Answered
		report.Recommendations = append(report.Recommendations, fmt.Sprintf(
			"Complete the assessment: %d question(s) remain unanswered (%.1f%% complete)",
			remaining, report.CompletionPercentage))
	}

	return report
}

// topicRecommendations applies the fixed per-topic rules
// #BUSINESS_RULE: One line per topic below 50%, one per topic with critical issues
func topicRecommendations(ts TopicScore) []string {
	var out []string
	// Same exclusion as AverageTopicPercentage: a topic with nothing to score has no percentage to judge
	if ts.MaxPossibleScore > 0 && ts.Percentage < LowTopicPercentage {
		out = append(out, fmt.Sprintf(
			"Review %q: score of %.1f%% is below %.0f%%", ts.TopicName, ts.Percentage, LowTopicPercentage))
	}
	if ts.CriticalIssues > 0 {
		out = append(out, fmt.Sprintf(
			"Address %d critical issue(s) in %q", ts.CriticalIssues, ts.TopicName))
	}
	return out
}
