package service

import (
	"fmt"
	"math"

	"soulmatch/internal/catalog"
	apperrors "soulmatch/internal/errors"
	"soulmatch/internal/models"
)

// NotApplicableLabel is shown for answer values that match no option
const NotApplicableLabel = "N/A"

type ScoringService struct {
	Catalog catalog.Catalog
}

func NewScoringService(cat catalog.Catalog) *ScoringService {
	if cat == nil {
		cat = catalog.Default
	}
	return &ScoringService{Catalog: cat}
}

// ResolveScenario returns the scenario both profiles were answered under.
// Profiles from different questionnaires are never compared.
func (s *ScoringService) ResolveScenario(host, guest models.Profile) (models.Scenario, error) {
	a := host.Normalized().Scenario
	b := guest.Normalized().Scenario
	if a != b {
		return "", &apperrors.ScenarioMismatchError{HostLabel: a.Label(), GuestLabel: b.Label()}
	}
	return a, nil
}

// Score returns the 0-100 compatibility of two profiles.
func (s *ScoringService) Score(host, guest models.Profile) (int, error) {
	questions, err := s.questionsFor(host, guest)
	if err != nil {
		return 0, err
	}
	return WeightedScore(questions, host.Answers, guest.Answers)
}

// ComparisonMatrix lines up both parties' answers question by question.
func (s *ScoringService) ComparisonMatrix(host, guest models.Profile) ([]models.ComparisonPoint, error) {
	questions, err := s.questionsFor(host, guest)
	if err != nil {
		return nil, err
	}
	return comparisonMatrix(questions, host.Answers, guest.Answers), nil
}

// BuildContext computes score and matrix in one pass over the catalog.
func (s *ScoringService) BuildContext(host, guest models.Profile) (*models.AIContext, error) {
	host, guest = host.Normalized(), guest.Normalized()
	questions, err := s.questionsFor(host, guest)
	if err != nil {
		return nil, err
	}
	score, err := WeightedScore(questions, host.Answers, guest.Answers)
	if err != nil {
		return nil, err
	}
	return &models.AIContext{
		Host:             host,
		Guest:            guest,
		Scenario:         host.Scenario,
		MatchScore:       score,
		ComparisonMatrix: comparisonMatrix(questions, host.Answers, guest.Answers),
	}, nil
}

func (s *ScoringService) questionsFor(host, guest models.Profile) ([]models.Question, error) {
	scenario, err := s.ResolveScenario(host, guest)
	if err != nil {
		return nil, err
	}
	questions := s.Catalog.Questions(scenario)
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrEmptyCatalog, scenario)
	}
	sides := []struct {
		name    string
		profile models.Profile
	}{{"host", host}, {"guest", guest}}
	for _, side := range sides {
		if got := len(side.profile.Answers); got != len(questions) {
			return nil, &apperrors.CatalogLengthMismatchError{
				Side:     side.name,
				Scenario: string(scenario),
				Expected: len(questions),
				Got:      got,
			}
		}
	}
	return questions, nil
}

// WeightedScore implements the weighted distance:
// round((1 - Σ weight*|a-b| / Σ weight*AnswerRange) * 100).
// Missing or out-of-range answers count as the midpoint.
func WeightedScore(questions []models.Question, answersA, answersB []int) (int, error) {
	var totalWeightedDiff, maxWeightedDiff float64
	for i, q := range questions {
		weight := q.EffectiveWeight()
		diff := math.Abs(float64(answerAt(answersA, i) - answerAt(answersB, i)))
		totalWeightedDiff += diff * weight
		maxWeightedDiff += models.AnswerRange * weight
	}
	if maxWeightedDiff == 0 {
		return 0, apperrors.ErrEmptyCatalog
	}

	score := int(math.Floor((1-totalWeightedDiff/maxWeightedDiff)*100 + 0.5))
	return min(max(score, 0), 100), nil
}

func comparisonMatrix(questions []models.Question, answersA, answersB []int) []models.ComparisonPoint {
	points := make([]models.ComparisonPoint, 0, len(questions))
	for i, q := range questions {
		a, b := rawAnswerAt(answersA, i), rawAnswerAt(answersB, i)
		diff := answerAt(answersA, i) - answerAt(answersB, i)
		if diff < 0 {
			diff = -diff
		}
		points = append(points, models.ComparisonPoint{
			ID:         q.ID,
			Dimension:  q.Dimension,
			Question:   q.Text,
			AAnswer:    a,
			BAnswer:    b,
			ALabel:     labelFor(q, a),
			BLabel:     labelFor(q, b),
			Difference: diff,
		})
	}
	return points
}

func labelFor(q models.Question, value int) string {
	if label, ok := q.LabelFor(value); ok {
		return label
	}
	return NotApplicableLabel
}

func rawAnswerAt(answers []int, i int) int {
	if i < len(answers) {
		return answers[i]
	}
	return 0
}

// answerAt substitutes the midpoint for anything outside the ordinal scale.
func answerAt(answers []int, i int) int {
	v := rawAnswerAt(answers, i)
	if v < models.MinAnswer || v > models.MaxAnswer {
		return models.MidpointAnswer
	}
	return v
}
