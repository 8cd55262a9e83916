// README: Defensive validation of raw LLM output into a RecommendationSet.
package recommend

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// rawBudget mirrors Budget with a pointer Estimated so a missing amount can
// be told apart from an explicit zero.
type rawBudget struct {
	Estimated *float64           `json:"estimated"`
	Currency  string             `json:"currency"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// rawPlan mirrors TravelPlan with pointers on the blocks whose presence the
// schema requires.
type rawPlan struct {
	ID             string     `json:"id"`
	Destination    string     `json:"destination"`
	Country        string     `json:"country"`
	Duration       *Duration  `json:"duration"`
	Budget         *rawBudget `json:"budget"`
	Highlights     []string   `json:"highlights"`
	Activities     []string   `json:"activities"`
	Accommodation  string     `json:"accommodation"`
	Transportation string     `json:"transportation"`
	BestFor        string     `json:"bestFor"`
	Considerations []string   `json:"considerations"`
}

type rawEnvelope struct {
	Summary string            `json:"summary"`
	Plans   []json.RawMessage `json:"plans"`
}

// Validate parses raw model output into a RecommendationSet. It tolerates
// fenced code blocks and surrounding prose, silently truncates over-long plan
// lists, and fails with ErrParse or ErrSchema on everything else. A malformed
// object must never reach the caller.
func Validate(raw string) (*RecommendationSet, error) {
	var env rawEnvelope
	if err := json.Unmarshal([]byte(stripFences(raw)), &env); err != nil {
		// The model often wraps its JSON in prose; recover the first
		// balanced object span and retry before giving up.
		span, ok := firstObjectSpan(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		if err := json.Unmarshal([]byte(span), &env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
	}

	if strings.TrimSpace(env.Summary) == "" {
		return nil, fmt.Errorf("missing field %q: %w", "summary", ErrSchema)
	}
	if len(env.Plans) == 0 {
		return nil, fmt.Errorf("empty %q array: %w", "plans", ErrSchema)
	}

	// Over-production is common and recoverable: keep the first MaxPlans and
	// never look at the rest. Missing structure below, by contrast, is a hard
	// failure; the two policies are deliberately asymmetric.
	if len(env.Plans) > MaxPlans {
		env.Plans = env.Plans[:MaxPlans]
	}

	plans := make([]TravelPlan, 0, len(env.Plans))
	for i, rawMsg := range env.Plans {
		plan, err := validatePlan(i, rawMsg)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}

	return &RecommendationSet{
		Summary:  env.Summary,
		Plans:    plans,
		Metadata: Metadata{GeneratedAt: time.Now().UTC()},
	}, nil
}

func validatePlan(i int, raw json.RawMessage) (*TravelPlan, error) {
	var p rawPlan
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("plan %d is malformed: %w", i, ErrSchema)
	}

	missing := func(field string) error {
		return fmt.Errorf("plan %d: missing field %q: %w", i, field, ErrSchema)
	}
	invalid := func(field, why string) error {
		return fmt.Errorf("plan %d: field %q %s: %w", i, field, why, ErrSchema)
	}

	switch {
	case strings.TrimSpace(p.Destination) == "":
		return nil, missing("destination")
	case strings.TrimSpace(p.Country) == "":
		return nil, missing("country")
	case p.Duration == nil:
		return nil, missing("duration")
	case p.Budget == nil:
		return nil, missing("budget")
	case p.Budget.Estimated == nil:
		return nil, missing("budget.estimated")
	case len(p.Highlights) == 0:
		return nil, missing("highlights")
	case len(p.Activities) == 0:
		return nil, missing("activities")
	}

	if p.Duration.Nights < 0 {
		return nil, invalid("duration.nights", "is negative")
	}
	if p.Duration.Hours != nil && *p.Duration.Hours <= 0 {
		return nil, invalid("duration.hours", "must be positive")
	}
	if start, err1 := time.Parse("2006-01-02", p.Duration.StartDate); err1 == nil {
		if end, err2 := time.Parse("2006-01-02", p.Duration.EndDate); err2 == nil && end.Before(start) {
			return nil, invalid("duration", "has endDate before startDate")
		}
	}
	if *p.Budget.Estimated < 0 {
		return nil, invalid("budget.estimated", "is negative")
	}
	for category, amount := range p.Budget.Breakdown {
		if amount < 0 {
			return nil, invalid("budget.breakdown."+category, "is negative")
		}
	}

	id := p.ID
	if id == "" {
		id = newPlanID()
	}

	return &TravelPlan{
		ID:          id,
		Destination: p.Destination,
		Country:     p.Country,
		Duration:    *p.Duration,
		Budget: Budget{
			Estimated: *p.Budget.Estimated,
			Currency:  p.Budget.Currency,
			Breakdown: p.Budget.Breakdown,
		},
		Highlights:     p.Highlights,
		Activities:     p.Activities,
		Accommodation:  p.Accommodation,
		Transportation: p.Transportation,
		BestFor:        p.BestFor,
		Considerations: p.Considerations,
	}, nil
}

// stripFences removes a surrounding markdown code block if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// firstObjectSpan returns the first balanced {...} span in s, tracking string
// literals and escapes so braces inside values don't confuse the count.
func firstObjectSpan(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// Braces inside strings don't count.
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// newPlanID generates an opaque hex token for plans the model left unlabelled.
func newPlanID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
