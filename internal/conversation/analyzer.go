// README: Heuristic completeness analysis deciding the conversation phase.
package conversation

import (
	"regexp"
	"strings"
)

// Assessment is the analyzer's verdict on a message log. Missing always
// carries every absent category, even when Ready is true, so the caller can
// target follow-up questions while still gathering.
type Assessment struct {
	Ready   bool
	Missing []Category
}

// Phase maps the verdict onto the two-state conversation machine.
func (a Assessment) Phase() Phase {
	if a.Ready {
		return PhaseRecommending
	}
	return PhaseGathering
}

// Analyzer decides whether a conversation holds enough information to stop
// asking questions. Implementations must be deterministic and side-effect
// free; a future analyzer (e.g. a secondary LLM pass) can be swapped in
// without touching the orchestrator.
type Analyzer interface {
	Analyze(msgs []Message) Assessment
}

// RegexAnalyzer is the default implementation: cheap keyword heuristics over
// the lowercased conversation text. False positives and negatives are an
// accepted trade-off for determinism and zero latency.
type RegexAnalyzer struct{}

// NewRegexAnalyzer returns the default heuristic analyzer.
func NewRegexAnalyzer() *RegexAnalyzer {
	return &RegexAnalyzer{}
}

var (
	// Destination: an intent phrase followed by a word, or a destination-type noun.
	destinationIntentRe = regexp.MustCompile(`\b(want to|going to|visit|travel to|interested in|thinking about)\s+\w+`)
	destinationNounRe   = regexp.MustCompile(`\b(beach(es)?|mountains?|city|cities|countryside|country|islands?|coast|europe|asia|africa|america|australia|antarctica|caribbean|mediterranean|scandinavia)\b`)

	// Budget: a currency amount, a budget word, or a bare amount with a currency name.
	currencyAmountRe = regexp.MustCompile(`[$€£¥]\s?\d+`)
	budgetWordRe     = regexp.MustCompile(`\b(budget|spend|afford|cost|price|cheap|expensive)\b`)
	amountCurrencyRe = regexp.MustCompile(`\b\d[\d,]*\s*(dollars?|bucks|usd|euros?|eur|pounds?|gbp|yen|jpy)\b`)

	// Dates: a year, a month name, relative phrasing, or a vague temporal hedge.
	// "may" matching the modal verb is a known false positive; keyword
	// coincidence is an accepted cost of the heuristic.
	yearRe        = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	monthRe       = regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\b`)
	relativeRe    = regexp.MustCompile(`\b(next\s+(week|month|year|summer|winter|spring|fall)|in\s+\d+\s+(days?|weeks?|months?))\b`)
	vagueTimingRe = regexp.MustCompile(`\b(soon|later|planning)\b`)
)

// Analyze concatenates all non-system content, lowercases it, and tests the
// three signal families independently. Ready requires a destination signal
// plus at least one of budget or dates.
func (a *RegexAnalyzer) Analyze(msgs []Message) Assessment {
	var b strings.Builder
	for _, m := range msgs {
		if m.Role == RoleSystem {
			continue
		}
		b.WriteString(m.Content)
		b.WriteString(" ")
	}
	corpus := strings.ToLower(b.String())

	hasDestination := destinationIntentRe.MatchString(corpus) || destinationNounRe.MatchString(corpus)
	hasBudget := currencyAmountRe.MatchString(corpus) || budgetWordRe.MatchString(corpus) || amountCurrencyRe.MatchString(corpus)
	hasDates := yearRe.MatchString(corpus) || monthRe.MatchString(corpus) || relativeRe.MatchString(corpus) || vagueTimingRe.MatchString(corpus)

	var missing []Category
	if !hasDestination {
		missing = append(missing, CategoryDestination)
	}
	if !hasBudget {
		missing = append(missing, CategoryBudget)
	}
	if !hasDates {
		missing = append(missing, CategoryDates)
	}

	return Assessment{
		Ready:   hasDestination && (hasBudget || hasDates),
		Missing: missing,
	}
}
