// Package catalog holds the static questionnaires for each scenario.
package catalog

import (
	"soulmatch/internal/models"
)

// Catalog resolves the questionnaire of a scenario
type Catalog interface {
	Questions(scenario models.Scenario) []models.Question
	Dimensions(scenario models.Scenario) map[models.Dimension]models.DimensionDetail
}

// Static serves the questionnaires compiled into the binary
type Static struct{}

// Default is the shipped catalog
var Default Catalog = Static{}

func (Static) Questions(scenario models.Scenario) []models.Question {
	return QuestionsFor(scenario)
}

func (Static) Dimensions(scenario models.Scenario) map[models.Dimension]models.DimensionDetail {
	return DimensionDetailsFor(scenario)
}

// QuestionsFor returns the ordered questions of a scenario. Callers get a copy
// and may not rely on a fixed length; unknown scenarios yield nil.
func QuestionsFor(scenario models.Scenario) []models.Question {
	var src []models.Question
	switch scenario {
	case models.ScenarioCouple:
		src = coupleQuestions
	case models.ScenarioFriend:
		src = friendQuestions
	default:
		return nil
	}
	out := make([]models.Question, len(src))
	copy(out, src)
	return out
}

// DimensionDetailsFor returns the section titles of a scenario.
func DimensionDetailsFor(scenario models.Scenario) map[models.Dimension]models.DimensionDetail {
	var src map[models.Dimension]models.DimensionDetail
	switch scenario {
	case models.ScenarioCouple:
		src = coupleDimensions
	case models.ScenarioFriend:
		src = friendDimensions
	default:
		return nil
	}
	out := make(map[models.Dimension]models.DimensionDetail, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Len is the answer-vector length expected for a scenario.
func Len(cat Catalog, scenario models.Scenario) int {
	return len(cat.Questions(scenario))
}

func scale(labels ...string) []models.Option {
	opts := make([]models.Option, len(labels))
	for i, label := range labels {
		opts[i] = models.Option{Value: models.MinAnswer + i, Label: label}
	}
	return opts
}
