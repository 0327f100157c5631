package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDayMetaFromGoals(t *testing.T) {
	g := NewDailyGoals(NewDate(2025, 3, 10))
	g.Work.Actions[0].SetText("done thing")
	g.Work.Actions[0].SetCompleted(true)

	m := DayMetaFromGoals(g)

	assert.Equal(t, SchemaVersion, m.Version)
	require.Len(t, m.Work, len(g.Work.Actions))
	assert.Equal(t, g.Work.Actions[0].ID, m.Work[0].ID)
	assert.Equal(t, StatusDone, m.Work[0].Status)
	assert.Equal(t, StatusPlanned, m.Work[1].Status)
}

func TestReconcilePreservesRichStatus(t *testing.T) {
	g := NewDailyGoals(NewDate(2025, 3, 10))
	g.Health.Actions[0].SetText("run 5k")
	g.Health.Actions[1].SetText("stretch")

	m := DayMetaFromGoals(g)
	m.Health[0].Status = StatusInProgress
	m.Health[1].Status = StatusBlocked

	// An unchecked checkbox must not flatten InProgress or Blocked back
	// to Planned.
	m.Reconcile(g)
	assert.Equal(t, StatusInProgress, m.Health[0].Status)
	assert.Equal(t, StatusBlocked, m.Health[1].Status)

	// Completion always wins.
	g.Health.Actions[0].SetCompleted(true)
	m.Reconcile(g)
	assert.Equal(t, StatusDone, m.Health[0].Status)
}

func TestReconcileSynthesizesAndDrops(t *testing.T) {
	g := NewDailyGoals(NewDate(2025, 3, 10))
	m := DayMetaFromGoals(g)

	staleID := g.Work.Actions[2].ID
	require.NoError(t, g.Work.RemoveAction(2))
	fresh, err := g.Work.AddAction()
	require.NoError(t, err)
	fresh.SetText("new task")

	m.Reconcile(g)

	require.Len(t, m.Work, len(g.Work.Actions))
	ids := make(map[string]bool)
	for _, am := range m.Work {
		ids[am.ID] = true
	}
	assert.True(t, ids[fresh.ID])
	assert.False(t, ids[staleID])
}

func TestReconcileKeepsObjectiveLink(t *testing.T) {
	g := NewDailyGoals(NewDate(2025, 3, 10))
	g.Family.Actions[0].SetText("call parents")

	m := DayMetaFromGoals(g)
	m.Family[0].ObjectiveID = "obj-123"
	m.Family[0].Notes = "weekly"

	m.Reconcile(g)
	assert.Equal(t, "obj-123", m.Family[0].ObjectiveID)
	assert.Equal(t, "weekly", m.Family[0].Notes)
}

func TestReconcileIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := NewDailyGoals(NewDate(2025, 6, 1))
		for _, o := range g.Outcomes() {
			extra := rapid.IntRange(0, 2).Draw(t, "extra")
			for i := 0; i < extra; i++ {
				_, err := o.AddAction()
				require.NoError(t, err)
			}
			for i := range o.Actions {
				o.Actions[i].SetText(rapid.StringMatching(`[a-z ]{0,12}`).Draw(t, "text"))
				if rapid.Bool().Draw(t, "done") {
					o.Actions[i].SetCompleted(true)
				}
			}
		}

		m := DayMetaFromGoals(g)
		for i := range m.Work {
			if rapid.Bool().Draw(t, "rich") {
				m.Work[i].Status = StatusSkipped
			}
		}

		m.Reconcile(g)
		work := append([]ActionMeta(nil), m.Work...)
		health := append([]ActionMeta(nil), m.Health...)
		family := append([]ActionMeta(nil), m.Family...)

		m.Reconcile(g)
		assert.Equal(t, work, m.Work)
		assert.Equal(t, health, m.Health)
		assert.Equal(t, family, m.Family)
	})
}
