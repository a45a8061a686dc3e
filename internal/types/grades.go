package types

// GradeTotals is a letter-grade histogram accumulated across matching
// grade records.
type GradeTotals struct {
	A int `json:"A"`
	B int `json:"B"`
	C int `json:"C"`
	D int `json:"D"`
	F int `json:"F"`
}

// Sum returns the total number of grades across all letters.
func (t GradeTotals) Sum() int {
	return t.A + t.B + t.C + t.D + t.F
}

// GradePercentages holds per-letter shares of the total, each rounded
// independently, so they need not sum to exactly 100.
type GradePercentages struct {
	A int `json:"A"`
	B int `json:"B"`
	C int `json:"C"`
	D int `json:"D"`
	F int `json:"F"`
}

// GradeDistribution is the aggregated outcome for one (instructor, course)
// pair. Partial marks an aggregation cut short by the wall-clock budget;
// NotFound marks a scan that matched no rows at all.
type GradeDistribution struct {
	Course      string            `json:"course"`
	Totals      GradeTotals       `json:"totals"`
	Percentages *GradePercentages `json:"percentages"`
	GPA         *float64          `json:"gpa,omitempty"`
	Partial     bool              `json:"partial,omitempty"`
	NotFound    bool              `json:"notFound,omitempty"`
}

// InstructorEntry is one row of the grade dataset's instructor directory.
// The directory is free-form beyond the name and link, so the full decoded
// record rides along for subject matching.
type InstructorEntry struct {
	FirstName string
	LastName  string
	Href      string
	Fields    map[string]any
}
