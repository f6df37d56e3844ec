package database

import (
	"fmt"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
)

// QuestionnaireDocument is the import format for a building type's
// questionnaire: topics with nested questions.
// #DATA_ASSUMPTION: Conditions reference parent options by the option IDs written in the document
type QuestionnaireDocument struct {
	BuildingType string          `json:"building_type"`
	Topics       []TopicDocument `json:"topics"`
}

// TopicDocument is one topic in a QuestionnaireDocument
type TopicDocument struct {
	Name         string             `json:"name"`
	Description  string             `json:"description,omitempty"`
	DisplayOrder int                `json:"display_order,omitempty"`
	Questions    []QuestionDocument `json:"questions"`
}

// QuestionDocument is one question node in a QuestionnaireDocument
type QuestionDocument struct {
	Text                    string                  `json:"text"`
	HelpText                string                  `json:"help_text,omitempty"`
	Type                    models.QuestionType     `json:"type"`
	MaxScore                float64                 `json:"max_score,omitempty"`
	Weight                  float64                 `json:"weight,omitempty"`
	IsCritical              bool                    `json:"is_critical,omitempty"`
	ConditionParentAnswer   *string                 `json:"condition_parent_answer,omitempty"`
	ConditionParentOptionID *string                 `json:"condition_parent_option_id,omitempty"`
	Options                 []models.QuestionOption `json:"options,omitempty"`
	Subquestions            []QuestionDocument      `json:"subquestions,omitempty"`
}

// Materialize assigns IDs and defaults to every topic and question and
// validates the resulting trees. Order follows document order.
func (d QuestionnaireDocument) Materialize() ([]models.TopicTree, error) {
	buildingType := models.NormalizeBuildingType(d.BuildingType)
	if buildingType == "" {
		return nil, models.ErrInvalidBuildingType
	}

	trees := make([]models.TopicTree, 0, len(d.Topics))
	for i, td := range d.Topics {
		topic := models.Topic{
			Name:         td.Name,
			Description:  td.Description,
			BuildingType: buildingType,
			DisplayOrder: td.DisplayOrder,
		}
		if topic.DisplayOrder == 0 {
			topic.DisplayOrder = i + 1
		}
		if err := topic.Validate(); err != nil {
			return nil, fmt.Errorf("topic %d: %w", i+1, err)
		}
		topic.BeforeCreate()

		questions, err := materializeQuestions(topic, td.Questions, nil)
		if err != nil {
			return nil, fmt.Errorf("topic %q: %w", topic.Name, err)
		}

		// Round-trip through the stored shape so the tree obeys the same rules
		// as one loaded from the database.
		tree, err := models.BuildQuestionTree(topic.ID, models.FlattenQuestionTree(questions))
		if err != nil {
			return nil, fmt.Errorf("topic %q: %w", topic.Name, err)
		}
		trees = append(trees, models.TopicTree{Topic: topic, Questions: tree})
	}
	return trees, nil
}

func materializeQuestions(topic models.Topic, docs []QuestionDocument, parent *models.Question) ([]models.Question, error) {
	out := make([]models.Question, 0, len(docs))
	for i, qd := range docs {
		q := models.Question{
			TopicID:                 topic.ID,
			Text:                    qd.Text,
			HelpText:                qd.HelpText,
			Type:                    qd.Type,
			Order:                   i + 1,
			MaxScore:                qd.MaxScore,
			Weight:                  qd.Weight,
			IsCritical:              qd.IsCritical,
			ConditionParentAnswer:   qd.ConditionParentAnswer,
			ConditionParentOptionID: qd.ConditionParentOptionID,
			Options:                 append([]models.QuestionOption(nil), qd.Options...),
		}
		if parent != nil {
			parentID := parent.ID
			q.ParentQuestionID = &parentID
		}
		q.AssignOptionIDs()
		if err := q.Validate(parent); err != nil {
			return nil, fmt.Errorf("question %q: %w", qd.Text, err)
		}
		q.BeforeCreate()

		children, err := materializeQuestions(topic, qd.Subquestions, &q)
		if err != nil {
			return nil, err
		}
		q.Subquestions = children
		out = append(out, q)
	}
	return out, nil
}
