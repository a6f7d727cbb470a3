package models

import (
	"fmt"
	"strings"
)

const DefaultMaxOutfits = 3

// PreferenceBundle is the free-text preference set a user sends with a
// recommendation request. Everything is optional; the bundle is flattened
// into a single plain-text user turn for the stylist.
type PreferenceBundle struct {
	Occasion   string `json:"occasion" validate:"omitempty,max=100"`
	Season     string `json:"season" validate:"omitempty,max=100"`
	TimeOfDay  string `json:"time_of_day" validate:"omitempty,max=100"`
	Style      string `json:"style" validate:"omitempty,max=200"`
	Notes      string `json:"notes" validate:"omitempty,max=2000"`
	MaxOutfits int    `json:"max_outfits" validate:"omitempty,min=1,max=10"`
}

// Limit returns the maximum recommendation count, defaulting to 3.
func (p PreferenceBundle) Limit() int {
	if p.MaxOutfits <= 0 {
		return DefaultMaxOutfits
	}
	return p.MaxOutfits
}

// PromptText flattens the bundle into the user-turn text.
func (p PreferenceBundle) PromptText() string {
	var parts []string
	add := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", label, strings.TrimSpace(value)))
		}
	}
	add("Occasion", p.Occasion)
	add("Season", p.Season)
	add("Time of day", p.TimeOfDay)
	add("Preferred style", p.Style)
	add("Notes", p.Notes)
	if len(parts) == 0 {
		return "No specific preferences, pick something that works well together."
	}
	return strings.Join(parts, ". ")
}
