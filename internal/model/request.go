package model

type InferRequest struct {
	HouseholdID string   `json:"household_id"`
	Members     []Member `json:"members"`
}

type ClassifiedRequest struct {
	HouseholdID string    `json:"household_id"`
	Household   Household `json:"household"`
}

// HouseholdJob is one unit of batch work. Exactly one of Members or
// Classified is expected; Classified wins when both are set.
type HouseholdJob struct {
	HouseholdID string     `json:"household_id"`
	Members     []Member   `json:"members,omitempty"`
	Classified  *Household `json:"classified,omitempty"`
}

type BatchRequest struct {
	Households []HouseholdJob `json:"households"`
}
