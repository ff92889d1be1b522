package models

// ComparisonPoint holds both parties' answers to one question
type ComparisonPoint struct {
	ID         int       `json:"id"`
	Dimension  Dimension `json:"dimension"`
	Question   string    `json:"question"`
	AAnswer    int       `json:"A_answer"`
	BAnswer    int       `json:"B_answer"`
	ALabel     string    `json:"A_label"`
	BLabel     string    `json:"B_label"`
	Difference int       `json:"difference"`
}

// AIContext is everything the prompt builder needs for one comparison
type AIContext struct {
	Host             Profile           `json:"hostProfile"`
	Guest            Profile           `json:"guestProfile"`
	Scenario         Scenario          `json:"scenario"`
	MatchScore       int               `json:"matchScore"`
	ComparisonMatrix []ComparisonPoint `json:"comparisonMatrix"`
}

// ReportSections are the four delimited parts of a narrative report
type ReportSections struct {
	Verdict   string `json:"verdict"`
	Strengths string `json:"strengths"`
	Frictions string `json:"frictions"`
	Advice    string `json:"advice"`
}

// AnalysisResult is what a finished (or degraded) analysis hands to the UI
type AnalysisResult struct {
	CompatibilityScore int               `json:"compatibilityScore"`
	Summary            string            `json:"summary"`
	Details            string            `json:"details"`
	ComparisonMatrix   []ComparisonPoint `json:"comparisonMatrix,omitempty"`
	Sections           *ReportSections   `json:"sections,omitempty"`
	Degraded           bool              `json:"degraded"`
}
