package types

// ParsedName is the structured identity extracted from a raw instructor
// name string. A name without both first and last parts is invalid and
// must never reach the network.
type ParsedName struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	MiddleInitial string `json:"middle_initial,omitempty"`
}

// Valid reports whether the parse produced a usable identity.
func (p ParsedName) Valid() bool {
	return p.FirstName != "" && p.LastName != ""
}

// RatingProfile is one resolved RateMyProfessors record.
type RatingProfile struct {
	ID                    string  `json:"id"`
	LegacyID              int     `json:"legacyId"`
	Name                  string  `json:"name"`
	OverallRating         float64 `json:"overallRating"`
	NumRatings            int     `json:"numRatings"`
	WouldTakeAgainPercent float64 `json:"wouldTakeAgainPercent"`
	Difficulty            float64 `json:"difficulty"`
	ProfileURL            string  `json:"rmpUrl"`
}

// ProfileResult is the outcome of a professor profile resolution. Data is
// set when Found, Message carries the not-found reason, and Error is only
// set when the input never reached the ratings service.
type ProfileResult struct {
	Found   bool           `json:"found"`
	Data    *RatingProfile `json:"data,omitempty"`
	Message string         `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Review is one recent rating pulled for a resolved teacher.
type Review struct {
	ID               string  `json:"id"`
	Class            string  `json:"class"`
	Comment          string  `json:"comment"`
	Date             string  `json:"date"`
	QualityRating    float64 `json:"qualityRating"`
	DifficultyRating float64 `json:"difficultyRating"`
	Grade            string  `json:"grade"`
	ThumbsUpTotal    int     `json:"thumbsUpTotal"`
	ThumbsDownTotal  int     `json:"thumbsDownTotal"`
	WouldTakeAgain   *bool   `json:"wouldTakeAgain"`
}
