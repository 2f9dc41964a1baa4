package model

// Member is one flat record from the household service.
// Age is nil when the source did not state it.
type Member struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	RelativeName string `json:"relative_name,omitempty"`
	Gender       string `json:"gender"`
	Age          *int   `json:"age,omitempty"`
	HouseNo      string `json:"house_no"`
}

// KnownAge returns a pointer suitable for Member.Age.
func KnownAge(years int) *int {
	return &years
}
