package store

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/halcyonlab/triday/pkg/models"
)

const sampleDay = `# January 15, 2025 - Day 46

## Work (Goal: Ship the auth feature)
- [x] Review pull requests
- [ ] Write integration tests
- [ ] Update the changelog

## Health
- [x] Morning run
- [ ] Meal prep
- [ ] 

## Family
- [ ] Call parents
- [x] School pickup
- [ ] Plan weekend trip

Reflection: Good energy today, the afternoon slipped away.
`

func TestParseMarkdown(t *testing.T) {
	g, warnings, err := ParseMarkdown(sampleDay)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "2025-01-15", g.Date.String())
	assert.Equal(t, 46, g.DayNumber)

	assert.Equal(t, "Ship the auth feature", g.Work.Goal)
	require.Len(t, g.Work.Actions, 3)
	assert.Equal(t, "Review pull requests", g.Work.Actions[0].Text)
	assert.True(t, g.Work.Actions[0].Completed)
	assert.Equal(t, models.StatusDone, g.Work.Actions[0].Status)
	assert.False(t, g.Work.Actions[1].Completed)

	assert.Equal(t, "", g.Health.Goal)
	assert.True(t, g.Health.Actions[2].IsEmpty())

	assert.Equal(t, "Good energy today, the afternoon slipped away.", g.Family.Reflection)
}

func TestParseMarkdownRoundTrip(t *testing.T) {
	g, _, err := ParseMarkdown(sampleDay)
	require.NoError(t, err)
	assert.Equal(t, sampleDay, GenerateMarkdown(g))
}

func TestParseMarkdownCaseInsensitiveHeaders(t *testing.T) {
	content := "# january 5, 2025\n\n## WORK\n- [x] ship it\n\n## health\n- [ ] rest\n\n## FaMiLy\n- [ ] dinner\n"
	g, warnings, err := ParseMarkdown(content)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "2025-01-05", g.Date.String())
	assert.Equal(t, "ship it", g.Work.Actions[0].Text)
	assert.True(t, g.Work.Actions[0].Completed)
	assert.Equal(t, "rest", g.Health.Actions[0].Text)
	assert.Equal(t, "dinner", g.Family.Actions[0].Text)
}

func TestParseMarkdownShortMonth(t *testing.T) {
	g, _, err := ParseMarkdown("# Jan 5, 2025\n\n## Work\n- [ ] x\n")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-05", g.Date.String())
}

func TestParseMarkdownCapsAtFiveActions(t *testing.T) {
	var b strings.Builder
	b.WriteString("# March 3, 2025\n\n## Work\n")
	for i := 1; i <= 7; i++ {
		fmt.Fprintf(&b, "- [ ] task %d\n", i)
	}

	g, warnings, err := ParseMarkdown(b.String())
	require.NoError(t, err)

	require.Len(t, g.Work.Actions, models.MaxActions)
	assert.Equal(t, "task 5", g.Work.Actions[4].Text)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "task 6")
	assert.Contains(t, warnings[1], "task 7")
}

func TestParseMarkdownPadsToThree(t *testing.T) {
	g, _, err := ParseMarkdown("# March 3, 2025\n\n## Health\n- [x] only one\n")
	require.NoError(t, err)

	require.Len(t, g.Health.Actions, models.DefaultActions)
	assert.Equal(t, "only one", g.Health.Actions[0].Text)
	assert.True(t, g.Health.Actions[1].IsEmpty())
	assert.True(t, g.Health.Actions[2].IsEmpty())

	// Sections never mentioned still exist with default slots.
	require.Len(t, g.Work.Actions, models.DefaultActions)
	require.Len(t, g.Family.Actions, models.DefaultActions)
}

func TestParseMarkdownToleratesPrecedingContent(t *testing.T) {
	content := "Some journal preamble.\n\n---\n\n# April 1, 2025\n\n## Work\n- [ ] task\n"
	g, _, err := ParseMarkdown(content)
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01", g.Date.String())
}

func TestParseMarkdownNoHeader(t *testing.T) {
	_, _, err := ParseMarkdown("## Work\n- [ ] orphaned\n")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, _, err = ParseMarkdown("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseMarkdownRejectsImpossibleDate(t *testing.T) {
	_, _, err := ParseMarkdown("# February 30, 2025\n\n## Work\n- [ ] x\n")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseMarkdownMultilineReflection(t *testing.T) {
	content := "# May 10, 2025\n\n## Family\n- [ ] dinner\n\nReflection: First line\nsecond line continues\n\n"
	g, _, err := ParseMarkdown(content)
	require.NoError(t, err)
	assert.Equal(t, "First line\nsecond line continues", g.Family.Reflection)
}

func TestParseMarkdownFreshIDs(t *testing.T) {
	g1, _, err := ParseMarkdown(sampleDay)
	require.NoError(t, err)
	g2, _, err := ParseMarkdown(sampleDay)
	require.NoError(t, err)

	// Identity lives in the sidecar; the markdown yields new ids each
	// parse.
	assert.NotEqual(t, g1.Work.Actions[0].ID, g2.Work.Actions[0].ID)
}

func TestGenerateMarkdownOmitsDayNumberWhenUnset(t *testing.T) {
	g := models.NewDailyGoals(models.NewDate(2025, 1, 5))
	md := GenerateMarkdown(g)

	assert.True(t, strings.HasPrefix(md, "# January 5, 2025\n"))
	assert.NotContains(t, md, "Day")
	assert.True(t, strings.HasSuffix(md, "\n"))
}

func TestGenerateMarkdownSectionOrder(t *testing.T) {
	g := models.NewDailyGoals(models.NewDate(2025, 1, 5))
	md := GenerateMarkdown(g)

	work := strings.Index(md, "## Work")
	health := strings.Index(md, "## Health")
	family := strings.Index(md, "## Family")
	assert.True(t, work < health && health < family)
}

func TestMarkdownRoundTripProperty(t *testing.T) {
	text := rapid.StringMatching(`[A-Za-z]([A-Za-z0-9 ]{0,38}[A-Za-z0-9])?`)

	rapid.Check(t, func(t *rapid.T) {
		g := models.NewDailyGoals(models.NewDate(2025, 7, 9))
		g.DayNumber = rapid.IntRange(0, 400).Draw(t, "dayNumber")
		for _, o := range g.Outcomes() {
			if rapid.Bool().Draw(t, "hasGoal") {
				o.Goal = text.Draw(t, "goal")
			}
			for i := range o.Actions {
				if rapid.Bool().Draw(t, "hasText") {
					o.Actions[i].SetText(text.Draw(t, "action"))
					o.Actions[i].SetCompleted(rapid.Bool().Draw(t, "done"))
				}
			}
			if rapid.Bool().Draw(t, "hasReflection") {
				o.Reflection = text.Draw(t, "reflection")
			}
		}

		parsed, warnings, err := ParseMarkdown(GenerateMarkdown(g))
		require.NoError(t, err)
		require.Empty(t, warnings)

		assert.True(t, parsed.Date.Equal(g.Date))
		assert.Equal(t, g.DayNumber, parsed.DayNumber)
		for i, o := range g.Outcomes() {
			p := parsed.Outcomes()[i]
			assert.Equal(t, o.Goal, p.Goal)
			assert.Equal(t, o.Reflection, p.Reflection)
			require.Len(t, p.Actions, len(o.Actions))
			for j := range o.Actions {
				assert.Equal(t, strings.TrimSpace(o.Actions[j].Text), strings.TrimSpace(p.Actions[j].Text))
				assert.Equal(t, o.Actions[j].Completed, p.Actions[j].Completed)
			}
		}
	})
}
