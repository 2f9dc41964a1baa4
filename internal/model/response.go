package model

type TreeResponse struct {
	Metadata TreeMetadata `json:"metadata"`
	Result   TreeResult   `json:"result"`
}

type TreeMetadata struct {
	RequestID   string `json:"request_id"`
	HouseholdID string `json:"household_id"`
	Path        string `json:"path"`
	StartedAt   string `json:"started_at"`
	CompletedAt string `json:"completed_at"`
	DurationMs  int64  `json:"duration_ms"`
	Outcome     string `json:"outcome"`
}

type TreeResult struct {
	Roots    []*ViewNode `json:"roots"`
	Messages []Message   `json:"messages"`
	Stats    TreeStats   `json:"stats"`
}

type TreeStats struct {
	Members     int `json:"members"`
	Virtual     int `json:"virtual"`
	Roots       int `json:"roots"`
	Generations int `json:"generations"`
}

type BatchResponse struct {
	Trees map[string]*TreeResponse `json:"trees"`
	// Error is set when the batch stopped early; Trees then holds the
	// households finished before that.
	Error string `json:"error,omitempty"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomePartial = "PARTIAL"
	OutcomeFailure = "FAILURE"
)

const (
	PathInferred   = "inferred"
	PathClassified = "classified"
)
