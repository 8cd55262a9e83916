// README: Structured recommendation model returned by the validator.
package recommend

import (
	"errors"
	"time"
)

var (
	// ErrParse means the model's output was not JSON, even after trying to
	// recover an embedded object.
	ErrParse = errors.New("ai response is not valid JSON")

	// ErrSchema means the output parsed but violates the required structure.
	ErrSchema = errors.New("ai response violates the recommendation schema")
)

// MaxPlans is the hard cap on plans per response; over-producing models are
// silently truncated to this many.
const MaxPlans = 3

// Duration describes the time footprint of a plan. Day-trip plans have
// Nights == 0, StartDate == EndDate and Hours set.
type Duration struct {
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Nights    int      `json:"nights"`
	Hours     *float64 `json:"hours,omitempty"`
}

// Budget is a day-trip-scoped cost estimate. Breakdown categories need not
// sum to Estimated; the source never enforced that and neither do we.
type Budget struct {
	Estimated float64            `json:"estimated"`
	Currency  string             `json:"currency"`
	Breakdown map[string]float64 `json:"breakdown,omitempty"`
}

// TravelPlan is one validated recommendation for a specific attraction or place.
type TravelPlan struct {
	ID             string   `json:"id"`
	Destination    string   `json:"destination"`
	Country        string   `json:"country"`
	Duration       Duration `json:"duration"`
	Budget         Budget   `json:"budget"`
	Highlights     []string `json:"highlights"`
	Activities     []string `json:"activities"`
	Accommodation  string   `json:"accommodation,omitempty"`
	Transportation string   `json:"transportation,omitempty"`
	BestFor        string   `json:"bestFor,omitempty"`
	Considerations []string `json:"considerations,omitempty"`
}

// Metadata records the generation context of a response.
type Metadata struct {
	Model            string    `json:"model,omitempty"`
	PromptTokens     int       `json:"promptTokens,omitempty"`
	CompletionTokens int       `json:"completionTokens,omitempty"`
	GeneratedAt      time.Time `json:"generatedAt,omitempty"`
}

// RecommendationSet is the validated structured output for one recommending turn.
type RecommendationSet struct {
	Summary  string       `json:"summary"`
	Plans    []TravelPlan `json:"plans"`
	Metadata Metadata     `json:"metadata,omitempty"`
}
