package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T) *DailyGoals {
	t.Helper()
	return NewDailyGoals(NewDate(2025, 8, 15))
}

func TestCompletionStats(t *testing.T) {
	g := day(t)
	for _, o := range g.Outcomes() {
		for i := range o.Actions {
			o.Actions[i].SetText("task")
		}
	}
	// Work 3/3, Health 1/3, Family 0/3
	for i := range g.Work.Actions {
		g.Work.Actions[i].SetCompleted(true)
	}
	g.Health.Actions[0].SetCompleted(true)

	stats := g.CompletionStats()

	assert.Equal(t, 4, stats.Completed)
	assert.Equal(t, 9, stats.Total)
	assert.Equal(t, 44, stats.Percentage) // 4/9 = 44.4 rounds down
	assert.Equal(t, "Work", stats.BestOutcome)
	assert.Equal(t, []string{"Health", "Family"}, stats.NeedsAttention)

	require.Len(t, stats.ByOutcome, 3)
	assert.Equal(t, OutcomeStat{Name: "Work", Completed: 3, Total: 3}, stats.ByOutcome[0])
	assert.Equal(t, OutcomeStat{Name: "Health", Completed: 1, Total: 3}, stats.ByOutcome[1])
	assert.Equal(t, OutcomeStat{Name: "Family", Completed: 0, Total: 3}, stats.ByOutcome[2])
}

func TestCompletionStatsRoundsHalfUp(t *testing.T) {
	g := day(t)
	// 3/8 = 37.5 → 38
	f, err := g.Work.AddAction()
	require.NoError(t, err)
	f.SetText("extra")
	require.NoError(t, g.Health.RemoveAction(2))
	require.NoError(t, g.Family.RemoveAction(2))

	count := 0
	for _, o := range g.Outcomes() {
		for i := range o.Actions {
			o.Actions[i].SetText("task")
			if count < 3 {
				o.Actions[i].SetCompleted(true)
				count++
			}
		}
	}

	stats := g.CompletionStats()
	assert.Equal(t, 8, stats.Total)
	assert.Equal(t, 38, stats.Percentage)
}

func TestBestOutcomeTieBreak(t *testing.T) {
	g := day(t)
	// All domains at the same ratio: first in fixed order wins.
	stats := g.CompletionStats()
	assert.Equal(t, "Work", stats.BestOutcome)

	// Health strictly ahead takes over.
	g.Health.Actions[0].SetText("task")
	g.Health.Actions[0].SetCompleted(true)
	stats = g.CompletionStats()
	assert.Equal(t, "Health", stats.BestOutcome)
}

func TestCompletionStatsEmpty(t *testing.T) {
	g := day(t)
	for _, o := range g.Outcomes() {
		o.Actions = nil
	}
	stats := g.CompletionStats()
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.Percentage)
	assert.Equal(t, "", stats.BestOutcome)
}

func TestCarryOverCandidates(t *testing.T) {
	g := day(t)
	g.Work.Actions[0].SetText("finish report")
	g.Work.Actions[1].SetText("send invoice")
	g.Work.Actions[1].SetCompleted(true)
	g.Health.Actions[0].SetText("morning run")

	cands := CarryOverCandidates(g)

	assert.Equal(t, []string{"finish report"}, cands[Work])
	assert.Equal(t, []string{"morning run"}, cands[Health])
	assert.NotContains(t, cands, Family)
}

func TestApplyCarryOver(t *testing.T) {
	g := day(t)
	g.Work.Actions[1].SetText("already planned")

	n := ApplyCarryOver(g, Work, []string{"finish report", "call client", "one more"})

	// Slots 0 and 2 were empty; slot 1 must survive untouched.
	assert.Equal(t, 2, n)
	assert.Equal(t, "finish report", g.Work.Actions[0].Text)
	assert.Equal(t, OriginCarryOver, g.Work.Actions[0].Origin)
	assert.Equal(t, "already planned", g.Work.Actions[1].Text)
	assert.Equal(t, OriginManual, g.Work.Actions[1].Origin)
	assert.Equal(t, "call client", g.Work.Actions[2].Text)
	assert.Equal(t, OriginCarryOver, g.Work.Actions[2].Origin)
}

func TestApplyCarryOverFullDay(t *testing.T) {
	g := day(t)
	for i := range g.Family.Actions {
		g.Family.Actions[i].SetText("planned")
	}
	n := ApplyCarryOver(g, Family, []string{"left over"})
	assert.Equal(t, 0, n)
}
