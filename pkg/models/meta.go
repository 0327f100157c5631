package models

// ActionMeta is the sidecar record for one action: stable identity plus
// the state the markdown cannot carry.
type ActionMeta struct {
	ID          string       `json:"id"`
	Status      ActionStatus `json:"status"`
	ObjectiveID string       `json:"objective_id,omitempty"`
	Notes       string       `json:"notes,omitempty"`
}

// DayMeta mirrors a day's action shape, one ActionMeta per action per
// domain. It is rebuilt by Reconcile after any edit to the goals.
type DayMeta struct {
	Version int          `json:"version"`
	Work    []ActionMeta `json:"work"`
	Health  []ActionMeta `json:"health"`
	Family  []ActionMeta `json:"family"`
}

// NewDayMeta returns an empty sidecar at the current schema version.
func NewDayMeta() *DayMeta {
	return &DayMeta{Version: SchemaVersion}
}

// DayMetaFromGoals builds fresh metadata aligned with the goals.
func DayMetaFromGoals(g *DailyGoals) *DayMeta {
	m := NewDayMeta()
	m.Reconcile(g)
	return m
}

// Domain returns the metadata sequence for a domain.
func (m *DayMeta) Domain(t OutcomeType) []ActionMeta {
	switch t {
	case Work:
		return m.Work
	case Health:
		return m.Health
	default:
		return m.Family
	}
}

// Reconcile aligns the sidecar with the current goals. Per domain it
// produces exactly one ActionMeta per action, reusing entries whose id
// still appears and synthesizing the rest. Completion wins over status
// when the action is done; a richer non-default status (InProgress,
// Skipped, Blocked) survives an uncompleted checkbox.
func (m *DayMeta) Reconcile(g *DailyGoals) {
	if m.Version == 0 {
		m.Version = SchemaVersion
	}
	m.Work = reconcileDomain(m.Work, g.Work.Actions)
	m.Health = reconcileDomain(m.Health, g.Health.Actions)
	m.Family = reconcileDomain(m.Family, g.Family.Actions)
}

func reconcileDomain(existing []ActionMeta, actions []Action) []ActionMeta {
	byID := make(map[string]ActionMeta, len(existing))
	for _, am := range existing {
		byID[am.ID] = am
	}

	result := make([]ActionMeta, len(actions))
	for i := range actions {
		a := &actions[i]
		am, found := byID[a.ID]
		if !found {
			am = ActionMeta{ID: a.ID, Status: StatusPlanned}
		}

		switch {
		case a.Completed:
			am.Status = StatusDone
		case am.Status == StatusInProgress, am.Status == StatusSkipped, am.Status == StatusBlocked:
			// richer status outranks the coarse markdown boolean
		default:
			am.Status = StatusPlanned
		}
		result[i] = am
	}
	return result
}
