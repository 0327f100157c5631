package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is carried by every top-level sidecar document.
const SchemaVersion = 1

// Input bounds
const (
	MaxActionLength = 500
	MaxGoalLength   = 100
	MaxVisionLength = 1000

	MinActions     = 1
	MaxActions     = 5
	DefaultActions = 3
)

// ErrPrecondition is returned when a mutation would violate a structural
// bound: a 6th action, removing the last action, an out-of-range review
// score.
var ErrPrecondition = errors.New("precondition violation")

// OutcomeType identifies one of the three life domains.
type OutcomeType string

const (
	Work   OutcomeType = "Work"
	Health OutcomeType = "Health"
	Family OutcomeType = "Family"
)

// OutcomeTypes returns the domains in their fixed order.
func OutcomeTypes() [3]OutcomeType {
	return [3]OutcomeType{Work, Health, Family}
}

// ActionStatus is the rich per-action state carried by the metadata
// sidecar. The markdown checkbox only distinguishes Done from the rest.
type ActionStatus string

const (
	StatusPlanned    ActionStatus = "Planned"
	StatusInProgress ActionStatus = "InProgress"
	StatusDone       ActionStatus = "Done"
	StatusSkipped    ActionStatus = "Skipped"
	StatusBlocked    ActionStatus = "Blocked"
)

// Next cycles Planned → InProgress → Done → Skipped → Blocked → Planned.
func (s ActionStatus) Next() ActionStatus {
	switch s {
	case StatusPlanned:
		return StatusInProgress
	case StatusInProgress:
		return StatusDone
	case StatusDone:
		return StatusSkipped
	case StatusSkipped:
		return StatusBlocked
	default:
		return StatusPlanned
	}
}

// ActionOrigin records how an action entered the day.
type ActionOrigin string

const (
	OriginManual    ActionOrigin = "Manual"
	OriginTemplate  ActionOrigin = "Template"
	OriginCarryOver ActionOrigin = "CarryOver"
)

// Action is a single to-do under one domain for one day.
type Action struct {
	ID        string       `json:"id"`
	Text      string       `json:"text"`
	Completed bool         `json:"completed"`
	Status    ActionStatus `json:"status"`
	Origin    ActionOrigin `json:"origin"`
	Created   time.Time    `json:"created"`
	Modified  time.Time    `json:"modified"`
}

// NewAction creates an action with a fresh id. Text longer than
// MaxActionLength is truncated.
func NewAction(text string) Action {
	now := time.Now().UTC().Truncate(time.Second)
	return Action{
		ID:       uuid.NewString(),
		Text:     truncate(text, MaxActionLength),
		Status:   StatusPlanned,
		Origin:   OriginManual,
		Created:  now,
		Modified: now,
	}
}

// SetText replaces the action text, enforcing the length bound.
func (a *Action) SetText(text string) {
	a.Text = truncate(text, MaxActionLength)
	a.touch()
}

// SetStatus sets the rich status and keeps Completed in sync.
func (a *Action) SetStatus(s ActionStatus) {
	a.Status = s
	a.Completed = s == StatusDone
	a.touch()
}

// SetCompleted sets the coarse boolean and the matching status.
func (a *Action) SetCompleted(done bool) {
	if done {
		a.SetStatus(StatusDone)
	} else if a.Status == StatusDone {
		a.SetStatus(StatusPlanned)
	} else {
		a.Completed = false
		a.touch()
	}
}

// CycleStatus advances to the next status in the fixed order.
func (a *Action) CycleStatus() {
	a.SetStatus(a.Status.Next())
}

// IsEmpty reports whether the action has no text.
func (a *Action) IsEmpty() bool {
	return strings.TrimSpace(a.Text) == ""
}

func (a *Action) touch() {
	a.Modified = time.Now().UTC().Truncate(time.Second)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// Outcome groups the actions for one domain plus an optional goal line
// and evening reflection.
type Outcome struct {
	Type       OutcomeType `json:"outcome_type"`
	Goal       string      `json:"goal,omitempty"`
	Actions    []Action    `json:"actions"`
	Reflection string      `json:"reflection,omitempty"`
}

// NewOutcome creates an outcome with the default three empty actions.
func NewOutcome(t OutcomeType) Outcome {
	actions := make([]Action, DefaultActions)
	for i := range actions {
		actions[i] = NewAction("")
	}
	return Outcome{Type: t, Actions: actions}
}

// SetGoal replaces the outcome's goal line, truncated to MaxGoalLength.
func (o *Outcome) SetGoal(text string) {
	o.Goal = truncate(text, MaxGoalLength)
}

// AddAction appends a new empty action, up to MaxActions.
func (o *Outcome) AddAction() (*Action, error) {
	if len(o.Actions) >= MaxActions {
		return nil, fmt.Errorf("%w: maximum %d actions per outcome", ErrPrecondition, MaxActions)
	}
	o.Actions = append(o.Actions, NewAction(""))
	return &o.Actions[len(o.Actions)-1], nil
}

// RemoveAction deletes the action at index. At least one must remain.
func (o *Outcome) RemoveAction(index int) error {
	if len(o.Actions) <= MinActions {
		return fmt.Errorf("%w: minimum %d action per outcome", ErrPrecondition, MinActions)
	}
	if index < 0 || index >= len(o.Actions) {
		return fmt.Errorf("%w: action index %d out of range", ErrPrecondition, index)
	}
	o.Actions = append(o.Actions[:index], o.Actions[index+1:]...)
	return nil
}

// CompletedCount returns the number of completed actions.
func (o *Outcome) CompletedCount() int {
	n := 0
	for i := range o.Actions {
		if o.Actions[i].Completed {
			n++
		}
	}
	return n
}

// DailyGoals is one day's full structure: the date, an optional day
// number, and the three outcomes in fixed order.
type DailyGoals struct {
	Date      Date    `json:"date"`
	DayNumber int     `json:"day_number,omitempty"`
	Work      Outcome `json:"work"`
	Health    Outcome `json:"health"`
	Family    Outcome `json:"family"`
}

// NewDailyGoals creates an empty day for the given date.
func NewDailyGoals(date Date) *DailyGoals {
	return &DailyGoals{
		Date:   date,
		Work:   NewOutcome(Work),
		Health: NewOutcome(Health),
		Family: NewOutcome(Family),
	}
}

// Outcomes returns the three outcomes in fixed order for iteration.
func (g *DailyGoals) Outcomes() [3]*Outcome {
	return [3]*Outcome{&g.Work, &g.Health, &g.Family}
}

// Outcome returns the outcome for a domain.
func (g *DailyGoals) Outcome(t OutcomeType) *Outcome {
	switch t {
	case Work:
		return &g.Work
	case Health:
		return &g.Health
	default:
		return &g.Family
	}
}
