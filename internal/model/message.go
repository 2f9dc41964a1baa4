package model

type Message struct {
	ID       int    `json:"id"`
	Level    string `json:"level"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	MemberID string `json:"member_id,omitempty"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
	LevelInfo     = "INFO"
)

const (
	CodeAgeUnknown          = "AGE_UNKNOWN"
	CodeDuplicateName       = "DUPLICATE_NAME"
	CodeSpouseConflict      = "SPOUSE_CONFLICT"
	CodeCycleSkipped        = "CYCLE_SKIPPED"
	CodeOrphanEdge          = "ORPHAN_EDGE"
	CodeUnplacedEdge        = "UNPLACED_EDGE"
	CodeDuplicateEdge       = "DUPLICATE_EDGE"
	CodeUnknownRelationship = "UNKNOWN_RELATIONSHIP"
	CodeNoHead              = "NO_HEAD"
	CodeInvalidJob          = "INVALID_JOB"
)
