package prompt

import (
	"strings"
	"testing"

	"wayfarer/internal/conversation"
)

func TestGathering_ListsMissingCategories(t *testing.T) {
	got := Gathering([]conversation.Category{conversation.CategoryBudget, conversation.CategoryDates})

	if !strings.Contains(got, "budget, dates") {
		t.Errorf("prompt does not list the missing categories:\n%s", got)
	}
	for _, category := range []string{"destination", "budget", "dates"} {
		if !strings.Contains(got, category) {
			t.Errorf("prompt does not name the %s category", category)
		}
	}
	if !strings.Contains(got, "DO NOT emit JSON") {
		t.Error("gathering prompt must forbid structured output")
	}
	if !strings.Contains(got, "one or two") {
		t.Error("gathering prompt must limit questions per turn")
	}
}

func TestGathering_NothingMissing(t *testing.T) {
	got := Gathering(nil)
	if !strings.Contains(got, "confirm the details") {
		t.Errorf("prompt should handle an empty missing set:\n%s", got)
	}
}

func TestRecommendation_EmbedsSchemaFields(t *testing.T) {
	got := Recommendation()

	// The schema the model sees must name the exact fields the validator checks.
	for _, field := range []string{
		`"summary"`, `"plans"`, `"destination"`, `"country"`, `"duration"`,
		`"startDate"`, `"endDate"`, `"nights"`, `"hours"`,
		`"budget"`, `"estimated"`, `"currency"`, `"breakdown"`,
		`"highlights"`, `"activities"`,
	} {
		if !strings.Contains(got, field) {
			t.Errorf("recommendation prompt missing schema field %s", field)
		}
	}
	if !strings.Contains(got, "2 to 3") {
		t.Error("prompt must mandate 2-3 plans")
	}
	if !strings.Contains(got, "BAD highlight") {
		t.Error("prompt must carry the highlight counter-example")
	}
	if !strings.Contains(got, "NO lodging, NO flights") {
		t.Error("prompt must scope budgets to day trips")
	}
}

func TestRecommendationForLocation_Variants(t *testing.T) {
	attractions := []Attraction{
		{Name: "Jade Garden", DistanceMeters: 850, Rating: 4.6},
		{Name: "Old Harbor Fort", DistanceMeters: 4200, Rating: 4.3},
	}

	t.Run("with attractions", func(t *testing.T) {
		got := RecommendationForLocation(GeoContext{
			LocationName: "Porto",
			Lat:          41.14961, Lng: -8.61099,
			Attractions: attractions,
			Cities:      []string{"Vila Nova de Gaia", "Matosinhos"},
		})
		if !strings.Contains(got, "Jade Garden") || !strings.Contains(got, "Old Harbor Fort") {
			t.Error("attraction list not enumerated")
		}
		if !strings.Contains(got, "850 m") || !strings.Contains(got, "4.2 km") {
			t.Errorf("distances not formatted:\n%s", got)
		}
		if !strings.Contains(got, "taken verbatim from the attraction list") {
			t.Error("missing the only-supplied-attractions constraint")
		}
	})

	t.Run("open water", func(t *testing.T) {
		got := RecommendationForLocation(GeoContext{
			Lat: 43.0, Lng: -30.0,
			Cities:    []string{"Horta", "Ponta Delgada"},
			OpenWater: true,
		})
		if !strings.Contains(got, "OPEN WATER") {
			t.Error("open-water variant not selected")
		}
		if !strings.Contains(got, "NEAREST COASTAL CITIES") {
			t.Error("open-water variant must restrict to coastal cities")
		}
		if !strings.Contains(got, "Horta") {
			t.Error("coastal cities not listed")
		}
	})

	t.Run("no nearby data", func(t *testing.T) {
		got := RecommendationForLocation(GeoContext{
			LocationName: "Atacama Desert",
			Lat:          -24.5, Lng: -69.25,
		})
		if !strings.Contains(got, "No nearby attraction data") {
			t.Error("no-data variant not selected")
		}
		if !strings.Contains(got, "50 km") {
			t.Error("base-camp radius not stated")
		}
		if !strings.Contains(got, "Do NOT invent") {
			t.Error("no-data variant must still forbid invented attractions")
		}
	})
}
