// README: System prompt construction for both conversation phases.
package prompt

import (
	"fmt"
	"strings"

	"wayfarer/internal/conversation"
)

// LatLng is a decimal-degree coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Attraction is one point of interest supplied by the map collaborator.
// Position is carried through untouched; only name, distance and rating
// appear in the instruction text.
type Attraction struct {
	Name           string  `json:"name"`
	DistanceMeters float64 `json:"distanceMeters"`
	Rating         float32 `json:"rating"`
	Position       *LatLng `json:"position,omitempty"`
}

// GeoContext parameterizes the recommendation prompt with clicked-map data.
// OpenWater marks a coordinate that resolved to no land locality.
type GeoContext struct {
	LocationName string
	Lat          float64
	Lng          float64
	Attractions  []Attraction
	Cities       []string
	OpenWater    bool
}

// BaseCampRadiusKm bounds how far the model may broaden when a location has
// no nearby attraction data at all.
const BaseCampRadiusKm = 50

// planSchema is the exact shape the response validator checks. Field names
// here and in internal/recommend must stay in lockstep.
const planSchema = `{
  "summary": "string (one or two sentences introducing the set)",
  "plans": [
    {
      "id": "string (unique within this response)",
      "destination": "string (ONE specific attraction or place)",
      "country": "string",
      "duration": {
        "startDate": "YYYY-MM-DD",
        "endDate": "YYYY-MM-DD",
        "nights": 0,
        "hours": 4
      },
      "budget": {
        "estimated": 120,
        "currency": "USD",
        "breakdown": {"tickets": 40, "food": 50, "local transport": 30}
      },
      "highlights": ["string (WHY this place is special)"],
      "activities": ["string (WHAT a visitor does there)"],
      "accommodation": "string (optional)",
      "transportation": "string (optional)",
      "bestFor": "string (optional)",
      "considerations": ["string (optional)"]
    }
  ]
}`

// Gathering builds the system instruction for the question-asking phase.
// It names every category the planner ultimately needs, calls out the ones
// still missing, and forbids structured output in this phase.
func Gathering(missing []conversation.Category) string {
	missingList := "(nothing — confirm the details back to the traveler)"
	if len(missing) > 0 {
		parts := make([]string, len(missing))
		for i, c := range missing {
			parts[i] = string(c)
		}
		missingList = strings.Join(parts, ", ")
	}

	return fmt.Sprintf(`Role: You are "Wayfarer", a friendly voice travel assistant gathering trip details.

The traveler's spoken words arrive as transcribed text. Before any recommendation can be
made you need THREE things: destination (where, or what kind of place), budget (roughly how
much they can spend), and dates (when, even approximately).

Currently missing: %s

RULES:
1. Ask about AT MOST one or two of the missing items per turn. Never interrogate.
2. Keep replies short and conversational; they will be read aloud by text-to-speech.
3. Acknowledge what the traveler already told you before asking for more.
4. DO NOT emit JSON, lists of recommendations, or any structured itinerary in this phase.
   Your entire reply is one or two spoken sentences.`, missingList)
}

// Recommendation builds the system instruction demanding a single JSON object
// with 2-3 day-trip plans and nothing else.
func Recommendation() string {
	return fmt.Sprintf(`Role: You are "Wayfarer", a travel recommendation engine.

The conversation now contains enough information. Produce recommendations.

OUTPUT CONTRACT (STRICT):
- Reply with ONLY one JSON object. No greetings, no markdown fences, no trailing prose.
- The object MUST match this schema exactly (same field names, same nesting):
%s

CONTENT RULES:
1. Include EXACTLY 2 to 3 entries in "plans". Never 1, never 4 or more.
2. Each "destination" names ONE specific attraction or place, not a whole country.
3. "highlights" explain WHY the place matters; "activities" list WHAT a visitor does there.
   They are different things. BAD highlight for Fushimi Inari: "Fushimi Inari Shrine"
   (just restates the name). GOOD highlight: "Thousands of vermilion torii gates forming
   mountain tunnels". GOOD activity: "Hike the full loop to the Mount Inari summit".
4. Scope every plan as a DAY TRIP: "nights" is 0, "startDate" equals "endDate", "hours"
   estimates the visit length. Budgets cover tickets, food and local transport only —
   NO lodging, NO flights.
5. Respect the traveler's stated budget and dates from the conversation.`, planSchema)
}

// RecommendationForLocation builds the map-mode instruction. The three
// variants (normal, open water, no nearby data) all forbid inventing
// attractions that were not supplied.
func RecommendationForLocation(geo GeoContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Role: You are "Wayfarer", a travel recommendation engine for a clicked map location.

Location: %s (%.5f, %.5f)
`, geo.LocationName, geo.Lat, geo.Lng)

	switch {
	case geo.OpenWater:
		fmt.Fprintf(&b, `
This coordinate is in OPEN WATER. Recommend only the NEAREST COASTAL CITIES listed below.
Nearby cities: %s
Do NOT invent attractions, islands or resorts that are not in that list.
`, cityList(geo.Cities))
	case len(geo.Attractions) == 0:
		fmt.Fprintf(&b, `
No nearby attraction data is available for this point. Focus your plans on the named area
itself, broadening at most to base-camp towns within %d km.
Nearby cities: %s
Do NOT invent specific attractions; describe the area and those towns only.
`, BaseCampRadiusKm, cityList(geo.Cities))
	default:
		b.WriteString("\nNearby attractions (the ONLY places you may reference):\n")
		for i, a := range geo.Attractions {
			fmt.Fprintf(&b, "%d. %s — %s away, rated %.1f\n", i+1, a.Name, formatDistance(a.DistanceMeters), a.Rating)
		}
		fmt.Fprintf(&b, "Nearby cities: %s\n", cityList(geo.Cities))
		b.WriteString(`
HARD CONSTRAINT: every "destination" MUST be taken verbatim from the attraction list above.
Referencing any place not in the list is a contract violation.
`)
	}

	fmt.Fprintf(&b, `
OUTPUT CONTRACT (STRICT):
- Reply with ONLY one JSON object matching this schema exactly:
%s

CONTENT RULES:
1. Include EXACTLY 2 to 3 entries in "plans".
2. "highlights" explain WHY a place matters (never just its name); "activities" list WHAT
   a visitor does there.
3. Scope every plan as a DAY TRIP: "nights" 0, "startDate" equal to "endDate", "hours" set.
   Budgets cover tickets, food and local transport only — NO lodging, NO flights.`, planSchema)

	return b.String()
}

func cityList(cities []string) string {
	if len(cities) == 0 {
		return "(none supplied)"
	}
	return strings.Join(cities, ", ")
}

func formatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}
