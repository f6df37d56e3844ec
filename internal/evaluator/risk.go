package evaluator

import (
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
)

// Risk thresholds, inclusive lower bounds
const (
	LowRiskThreshold    = 80.0
	MediumRiskThreshold = 60.0
	HighRiskThreshold   = 40.0
)

// ClassifyRisk maps a 0-100 percentage to a risk level
func ClassifyRisk(percentage float64) models.RiskLevel {
	switch {
	case percentage >= LowRiskThreshold:
		return models.RiskLevelLow
	case percentage >= MediumRiskThreshold:
		return models.RiskLevelMedium
	case percentage >= HighRiskThreshold:
		return models.RiskLevelHigh
	default:
		return models.RiskLevelCritical
	}
}

// AverageTopicPercentage is the basis for the overall risk level.
// #BUSINESS_RULE: Risk uses the mean of per-topic percentages, not the aggregate score ratio
// #DATA_ASSUMPTION: Topics without any scorable question are left out of the mean
func AverageTopicPercentage(topics []TopicScore) float64 {
	sum := 0.0
	n := 0
	for _, t := range topics {
		if t.MaxPossibleScore <= 0 {
			continue
		}
		sum += t.Percentage
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
