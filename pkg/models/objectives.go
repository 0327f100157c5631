package models

import (
	"time"

	"github.com/google/uuid"
)

// ObjectiveStatus is the lifecycle state of a longer-horizon objective.
type ObjectiveStatus string

const (
	ObjectiveActive    ObjectiveStatus = "Active"
	ObjectivePaused    ObjectiveStatus = "Paused"
	ObjectiveCompleted ObjectiveStatus = "Completed"
	ObjectiveDropped   ObjectiveStatus = "Dropped"
)

// Objective is a longer-horizon aim in one domain. Actions link to it
// through their metadata; stale links to a deleted objective are
// tolerated.
type Objective struct {
	ID          string          `json:"id"`
	Domain      OutcomeType     `json:"domain"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Start       Date            `json:"start"`
	End         *Date           `json:"end,omitempty"`
	Status      ObjectiveStatus `json:"status"`
	Created     time.Time       `json:"created"`
	Modified    time.Time       `json:"modified"`
	ParentID    string          `json:"parent_id,omitempty"`
}

// NewObjective creates an active objective starting today.
func NewObjective(domain OutcomeType, title string) Objective {
	now := time.Now().UTC().Truncate(time.Second)
	return Objective{
		ID:       uuid.NewString(),
		Domain:   domain,
		Title:    title,
		Start:    Today(),
		Status:   ObjectiveActive,
		Created:  now,
		Modified: now,
	}
}

// ObjectivesData is the versioned envelope for objectives.json.
type ObjectivesData struct {
	Version    int         `json:"version"`
	Objectives []Objective `json:"objectives"`
}

// NewObjectivesData returns an empty envelope.
func NewObjectivesData() *ObjectivesData {
	return &ObjectivesData{Version: SchemaVersion}
}

// Find returns the objective with the given id, or nil.
func (d *ObjectivesData) Find(id string) *Objective {
	for i := range d.Objectives {
		if d.Objectives[i].ID == id {
			return &d.Objectives[i]
		}
	}
	return nil
}

// Active returns the objectives currently active for a domain.
func (d *ObjectivesData) Active(domain OutcomeType) []Objective {
	var out []Objective
	for _, o := range d.Objectives {
		if o.Domain == domain && o.Status == ObjectiveActive {
			out = append(out, o)
		}
	}
	return out
}
