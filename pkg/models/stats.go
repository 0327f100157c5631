package models

import "math"

// OutcomeStat is the per-domain completion tally.
type OutcomeStat struct {
	Name      string
	Completed int
	Total     int
}

// CompletionStats summarizes a day's progress.
type CompletionStats struct {
	Completed      int
	Total          int
	Percentage     int
	StreakDays     int // 0 when unknown
	ByOutcome      []OutcomeStat
	BestOutcome    string // "" when no actions exist
	NeedsAttention []string
}

// CompletionStats computes the day's completion summary. BestOutcome is
// the domain with the highest completion ratio, ties broken by the
// fixed domain order; NeedsAttention lists every domain below 100%.
func (g *DailyGoals) CompletionStats() CompletionStats {
	stats := CompletionStats{StreakDays: g.DayNumber}

	var bestRatio float64 = -1
	for _, o := range g.Outcomes() {
		done := o.CompletedCount()
		total := len(o.Actions)
		stats.Completed += done
		stats.Total += total
		stats.ByOutcome = append(stats.ByOutcome, OutcomeStat{
			Name:      string(o.Type),
			Completed: done,
			Total:     total,
		})

		ratio := 0.0
		if total > 0 {
			ratio = float64(done) / float64(total)
		}
		if ratio > bestRatio {
			bestRatio = ratio
			stats.BestOutcome = string(o.Type)
		}
		if ratio < 1.0 {
			stats.NeedsAttention = append(stats.NeedsAttention, string(o.Type))
		}
	}

	if stats.Total == 0 {
		stats.BestOutcome = ""
		stats.Percentage = 0
		return stats
	}
	stats.Percentage = int(math.Round(100 * float64(stats.Completed) / float64(stats.Total)))
	return stats
}

// CarryOverCandidates returns, per domain, the texts of actions that
// have text but were not completed.
func CarryOverCandidates(g *DailyGoals) map[OutcomeType][]string {
	out := make(map[OutcomeType][]string)
	for _, o := range g.Outcomes() {
		for i := range o.Actions {
			a := &o.Actions[i]
			if !a.IsEmpty() && !a.Completed {
				out[o.Type] = append(out[o.Type], a.Text)
			}
		}
	}
	return out
}

// ApplyCarryOver copies the given texts into the domain's empty action
// slots in positional order. Non-empty slots are never overwritten;
// copied actions adopt the CarryOver origin. Returns the number of
// slots filled.
func ApplyCarryOver(dst *DailyGoals, domain OutcomeType, texts []string) int {
	return fillEmptySlots(dst.Outcome(domain), texts, OriginCarryOver)
}
