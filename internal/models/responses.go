package models

// AIConfig overrides the server's default model endpoint, key and model name
type AIConfig struct {
	Endpoint string `json:"endpoint,omitempty"`
	APIKey   string `json:"apiKey,omitempty"`
	Model    string `json:"model,omitempty"`
}

// AnalyzeRequest is the body of POST /api/analyze
type AnalyzeRequest struct {
	Prompt   string    `json:"prompt"`
	Stream   bool      `json:"stream"`
	Config   *AIConfig `json:"config,omitempty"`
	CacheKey string    `json:"cacheKey,omitempty"`
}

// AnalyzeResponse is returned for cache hits and non-streaming requests
type AnalyzeResponse struct {
	ReportText string `json:"reportText"`
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// QuestionsResponse for /api/questions
type QuestionsResponse struct {
	Scenario   Scenario                      `json:"scenario"`
	Label      string                        `json:"label"`
	Questions  []Question                    `json:"questions"`
	Dimensions map[Dimension]DimensionDetail `json:"dimensions"`
}

// MatchRequest is the body of POST /api/match
type MatchRequest struct {
	Host  string `json:"host"`
	Guest string `json:"guest"`
}

// MatchResponse for /api/match
type MatchResponse struct {
	Scenario         Scenario          `json:"scenario"`
	Score            int               `json:"score"`
	Summary          string            `json:"summary"`
	HostName         string            `json:"hostName,omitempty"`
	GuestName        string            `json:"guestName,omitempty"`
	ComparisonMatrix []ComparisonPoint `json:"comparisonMatrix"`
	Prompt           string            `json:"prompt"`
	CacheKey         string            `json:"cacheKey"`
}
