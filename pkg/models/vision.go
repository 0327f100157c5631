package models

import "time"

// FiveYearVision holds one long-form vision statement per domain.
type FiveYearVision struct {
	Version  int       `json:"version"`
	Work     string    `json:"work"`
	Health   string    `json:"health"`
	Family   string    `json:"family"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

// NewFiveYearVision returns an empty vision.
func NewFiveYearVision() *FiveYearVision {
	now := time.Now().UTC().Truncate(time.Second)
	return &FiveYearVision{Version: SchemaVersion, Created: now, Modified: now}
}

// Get returns the vision text for a domain.
func (v *FiveYearVision) Get(t OutcomeType) string {
	switch t {
	case Work:
		return v.Work
	case Health:
		return v.Health
	default:
		return v.Family
	}
}

// Set replaces the vision text for a domain, truncated to the bound.
func (v *FiveYearVision) Set(t OutcomeType, text string) {
	text = truncate(text, MaxVisionLength)
	switch t {
	case Work:
		v.Work = text
	case Health:
		v.Health = text
	default:
		v.Family = text
	}
	v.Modified = time.Now().UTC().Truncate(time.Second)
}
