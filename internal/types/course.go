package types

// CourseInfo is a course identifier scraped near an instructor name.
// Subject is a 2-4 letter code, Catalog a numeric code; either may be
// missing when the page gave no usable context.
type CourseInfo struct {
	Subject string `json:"subject"`
	Catalog string `json:"catalog"`
}

// Display renders the course the way it appears in catalogs, e.g. "MATH 3321".
func (c CourseInfo) Display() string {
	if c.Subject == "" || c.Catalog == "" {
		return ""
	}
	return c.Subject + " " + c.Catalog
}

// Complete reports whether both parts needed for grade aggregation are present.
func (c CourseInfo) Complete() bool {
	return c.Subject != "" && c.Catalog != ""
}

// HoverData is the joined result of the three hover-time lookups. Each
// branch degrades independently: Reviews is empty and the other two are
// nil when their upstream failed.
type HoverData struct {
	Reviews           []Review           `json:"reviews"`
	GradeDistribution *GradeDistribution `json:"gradeDistribution"`
	GradeProfileURL   *string            `json:"gradeProfileUrl"`
}

// ClearResult acknowledges a cache wipe.
type ClearResult struct {
	Success bool `json:"success"`
}
