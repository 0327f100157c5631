package models

import (
	"time"

	"github.com/google/uuid"
)

// IndicatorKind distinguishes leading from lagging measures.
type IndicatorKind string

const (
	Leading IndicatorKind = "Leading"
	Lagging IndicatorKind = "Lagging"
)

// IndicatorDirection says which way the number should move.
type IndicatorDirection string

const (
	HigherIsBetter IndicatorDirection = "HigherIsBetter"
	LowerIsBetter  IndicatorDirection = "LowerIsBetter"
	WithinRange    IndicatorDirection = "WithinRange"
)

// IndicatorUnit is a tagged union: the simple variants carry only a
// type name, Custom carries a label.
type IndicatorUnit struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

var (
	UnitCount   = IndicatorUnit{Type: "Count"}
	UnitMinutes = IndicatorUnit{Type: "Minutes"}
	UnitDollars = IndicatorUnit{Type: "Dollars"}
	UnitPercent = IndicatorUnit{Type: "Percent"}
)

// CustomUnit creates the parametric Custom variant.
func CustomUnit(label string) IndicatorUnit {
	return IndicatorUnit{Type: "Custom", Value: label}
}

// Label returns the display name of the unit.
func (u IndicatorUnit) Label() string {
	if u.Type == "Custom" {
		return u.Value
	}
	return u.Type
}

// IndicatorDef is a named, typed measurement series.
type IndicatorDef struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Kind        IndicatorKind      `json:"kind"`
	Unit        IndicatorUnit      `json:"unit"`
	ObjectiveID string             `json:"objective_id,omitempty"`
	Target      *float64           `json:"target,omitempty"`
	Direction   IndicatorDirection `json:"direction"`
	Active      bool               `json:"active"`
	Created     time.Time          `json:"created"`
	Modified    time.Time          `json:"modified"`
	LineageOf   string             `json:"lineage_of,omitempty"`
	Notes       string             `json:"notes,omitempty"`
}

// NewIndicator creates an active indicator.
func NewIndicator(name string, kind IndicatorKind, unit IndicatorUnit) IndicatorDef {
	now := time.Now().UTC().Truncate(time.Second)
	return IndicatorDef{
		ID:        uuid.NewString(),
		Name:      name,
		Kind:      kind,
		Unit:      unit,
		Direction: HigherIsBetter,
		Active:    true,
		Created:   now,
		Modified:  now,
	}
}

// IndicatorsData is the versioned envelope for indicators.json.
type IndicatorsData struct {
	Version    int            `json:"version"`
	Indicators []IndicatorDef `json:"indicators"`
}

// NewIndicatorsData returns an empty envelope.
func NewIndicatorsData() *IndicatorsData {
	return &IndicatorsData{Version: SchemaVersion}
}

// FindByName returns the first indicator with the given name, or nil.
func (d *IndicatorsData) FindByName(name string) *IndicatorDef {
	for i := range d.Indicators {
		if d.Indicators[i].Name == name {
			return &d.Indicators[i]
		}
	}
	return nil
}

// ObservationSource records how an observation was captured.
type ObservationSource string

const (
	SourceManual    ObservationSource = "Manual"
	SourceAutomated ObservationSource = "Automated"
	SourceImport    ObservationSource = "Import"
)

// Observation is one datapoint against an indicator for a specific date.
type Observation struct {
	ID          string            `json:"id"`
	IndicatorID string            `json:"indicator_id"`
	When        Date              `json:"when"`
	Value       float64           `json:"value"`
	Unit        IndicatorUnit     `json:"unit"`
	Source      ObservationSource `json:"source"`
	ActionID    string            `json:"action_id,omitempty"`
	Note        string            `json:"note,omitempty"`
	Created     time.Time         `json:"created"`
}

// NewObservation records a manual datapoint for an indicator.
func NewObservation(ind *IndicatorDef, when Date, value float64) Observation {
	return Observation{
		ID:          uuid.NewString(),
		IndicatorID: ind.ID,
		When:        when,
		Value:       value,
		Unit:        ind.Unit,
		Source:      SourceManual,
		Created:     time.Now().UTC().Truncate(time.Second),
	}
}
