package models

import (
	"sort"
	"time"
)

// MaxTemplateActions caps the number of entries per template.
const MaxTemplateActions = MaxActions

// ActionTemplates maps template names to reusable action-text lists.
type ActionTemplates struct {
	Version   int                 `json:"version"`
	Templates map[string][]string `json:"templates"`
	Created   time.Time           `json:"created"`
	Modified  time.Time           `json:"modified"`
}

// NewActionTemplates returns an empty template set.
func NewActionTemplates() *ActionTemplates {
	now := time.Now().UTC().Truncate(time.Second)
	return &ActionTemplates{
		Version:   SchemaVersion,
		Templates: make(map[string][]string),
		Created:   now,
		Modified:  now,
	}
}

// Add inserts or replaces a template. Entries beyond MaxTemplateActions
// are dropped; each entry is truncated to the action length bound.
func (t *ActionTemplates) Add(name string, actions []string) {
	if t.Templates == nil {
		t.Templates = make(map[string][]string)
	}
	if len(actions) > MaxTemplateActions {
		actions = actions[:MaxTemplateActions]
	}
	stored := make([]string, len(actions))
	for i, a := range actions {
		stored[i] = truncate(a, MaxActionLength)
	}
	t.Templates[name] = stored
	t.Modified = time.Now().UTC().Truncate(time.Second)
}

// Remove deletes a template, reporting whether it existed.
func (t *ActionTemplates) Remove(name string) bool {
	if _, ok := t.Templates[name]; !ok {
		return false
	}
	delete(t.Templates, name)
	t.Modified = time.Now().UTC().Truncate(time.Second)
	return true
}

// Get returns the action texts for a template name.
func (t *ActionTemplates) Get(name string) ([]string, bool) {
	a, ok := t.Templates[name]
	return a, ok
}

// Names returns all template names alphabetically.
func (t *ActionTemplates) Names() []string {
	names := make([]string, 0, len(t.Templates))
	for name := range t.Templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply fills the outcome's empty action slots with the template's
// texts, in order. Non-empty slots are never overwritten. Returns the
// number of slots filled.
func (t *ActionTemplates) Apply(name string, o *Outcome) int {
	texts, ok := t.Get(name)
	if !ok {
		return 0
	}
	return fillEmptySlots(o, texts, OriginTemplate)
}

// fillEmptySlots copies texts into empty destination slots in positional
// order, tagging them with the given origin.
func fillEmptySlots(o *Outcome, texts []string, origin ActionOrigin) int {
	filled := 0
	next := 0
	for i := range o.Actions {
		if next >= len(texts) {
			break
		}
		if !o.Actions[i].IsEmpty() {
			continue
		}
		o.Actions[i].SetText(texts[next])
		o.Actions[i].Origin = origin
		next++
		filled++
	}
	return filled
}
