package models

import "fmt"

// Dimension constants
const (
	DimensionLifestyle     Dimension = "lifestyle"
	DimensionFinance       Dimension = "finance"
	DimensionCommunication Dimension = "communication"
	DimensionIntimacy      Dimension = "intimacy"
	DimensionValues        Dimension = "values"
)

// Answers live on a 1..5 ordinal scale.
const (
	MinAnswer      = 1
	MaxAnswer      = 5
	MidpointAnswer = 3
	AnswerRange    = MaxAnswer - MinAnswer
)

// Dimension is the category a question belongs to
type Dimension string

// Dimensions lists every dimension in questionnaire order
var Dimensions = []Dimension{
	DimensionLifestyle,
	DimensionFinance,
	DimensionCommunication,
	DimensionIntimacy,
	DimensionValues,
}

// Scenario selects the question catalog, dimension texts and persona
type Scenario string

const (
	ScenarioCouple Scenario = "couple"
	ScenarioFriend Scenario = "friend"

	// DefaultScenario is what a profile without a scenario tag means.
	DefaultScenario = ScenarioCouple
)

// Scenarios lists every known scenario
var Scenarios = []Scenario{ScenarioCouple, ScenarioFriend}

// ParseScenario validates a scenario tag. An empty tag is the default scenario.
func ParseScenario(s string) (Scenario, error) {
	switch Scenario(s) {
	case "":
		return DefaultScenario, nil
	case ScenarioCouple, ScenarioFriend:
		return Scenario(s), nil
	}
	return "", fmt.Errorf("unknown scenario %q", s)
}

// Label returns a human readable name safe for either UI language.
func (s Scenario) Label() string {
	switch s {
	case ScenarioCouple:
		return "couple compatibility test (灵魂契合度测试)"
	case ScenarioFriend:
		return "friendship test (朋友默契度测试)"
	case "":
		return DefaultScenario.Label()
	}
	return string(s)
}

// Option pairs an ordinal answer value with its label
type Option struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Question is an immutable catalog entry
type Question struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Dimension Dimension `json:"dimension"`
	Weight    float64   `json:"weight,omitempty"`
	Options   []Option  `json:"options"`
}

// EffectiveWeight returns the weight, treating an unset weight as 1.
func (q Question) EffectiveWeight() float64 {
	if q.Weight <= 0 {
		return 1
	}
	return q.Weight
}

// LabelFor resolves an answer value to its option label.
func (q Question) LabelFor(value int) (string, bool) {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt.Label, true
		}
	}
	return "", false
}

// DimensionDetail describes a dimension section of the questionnaire
type DimensionDetail struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
