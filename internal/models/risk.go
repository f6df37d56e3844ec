package models

import (
	"encoding/json"
	"strings"
)

// RiskLevel is the four-bucket classification of a score percentage
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// MarshalJSON converts RiskLevel to lowercase for JSON serialization
func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(string(r)))
}

// UnmarshalJSON converts lowercase JSON to RiskLevel
func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = RiskLevel(strings.ToUpper(s))
	return nil
}

// IsValid checks if the RiskLevel is a valid value
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLevelLow, RiskLevelMedium, RiskLevelHigh, RiskLevelCritical:
		return true
	}
	return false
}

// String returns the lowercase name used in reports and events
func (r RiskLevel) String() string {
	return strings.ToLower(string(r))
}
