package store

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/halcyonlab/triday/pkg/models"
)

// The daily-goals markdown grammar is line-oriented: a date header,
// three domain sections with checkbox action lines, and an optional
// trailing Reflection paragraph per section. Everything the format
// cannot carry (ids, rich status, origin) lives in the DayMeta sidecar.

var (
	dateHeaderRe    = regexp.MustCompile(`^#\s+([A-Za-z]+)\s+(\d{1,2}),\s*(\d{4})(?:\s*-\s*Day\s+(\d+))?\s*$`)
	outcomeHeaderRe = regexp.MustCompile(`(?i)^##\s+(work|health|family)\b(.*)$`)
	goalSuffixRe    = regexp.MustCompile(`(?i)\(goal:\s*([^)]*)\)`)
	actionLineRe    = regexp.MustCompile(`^- \[([ xX])\] ?(.*)$`)
)

const reflectionPrefix = "Reflection:"

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// ParseMarkdown parses a day file into DailyGoals. Content before the
// date header is tolerated; domain headings match case-insensitively
// and may appear in any order. Sections beyond five actions are capped,
// with a warning per dropped line; sections with fewer than three are
// padded with empty actions. Actions get fresh ids on every parse.
func ParseMarkdown(content string) (*models.DailyGoals, []string, error) {
	lines := strings.Split(content, "\n")

	headerIdx := -1
	var date models.Date
	dayNumber := 0
	for i, line := range lines {
		if d, n, ok := parseDateHeader(line); ok {
			headerIdx, date, dayNumber = i, d, n
			break
		}
	}
	if headerIdx < 0 {
		return nil, nil, fmt.Errorf("%w: no valid date header", ErrInvalidFormat)
	}

	goals := models.NewDailyGoals(date)
	goals.DayNumber = dayNumber

	var warnings []string
	var current *models.Outcome
	var actions []models.Action

	flush := func() {
		if current == nil {
			return
		}
		for len(actions) < models.DefaultActions {
			actions = append(actions, models.NewAction(""))
		}
		current.Actions = actions
		current = nil
		actions = nil
	}

	for i := headerIdx + 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		if m := outcomeHeaderRe.FindStringSubmatch(line); m != nil {
			flush()
			current = goals.Outcome(domainFor(m[1]))
			if gm := goalSuffixRe.FindStringSubmatch(m[2]); gm != nil {
				current.Goal = strings.TrimSpace(gm[1])
			}
			continue
		}

		if m := actionLineRe.FindStringSubmatch(line); m != nil && current != nil {
			if len(actions) >= models.MaxActions {
				warnings = append(warnings, fmt.Sprintf(
					"line %d: more than %d actions for %s, dropping: %s",
					i+1, models.MaxActions, current.Type, m[2]))
				continue
			}
			a := models.NewAction(strings.TrimRight(m[2], " \t"))
			a.SetCompleted(m[1] == "x" || m[1] == "X")
			actions = append(actions, a)
			continue
		}

		if rest, ok := strings.CutPrefix(line, reflectionPrefix); ok && current != nil {
			text := strings.TrimSpace(rest)
			// Continuation lines belong to the reflection until a blank
			// line, heading, or action line.
			for i+1 < len(lines) {
				next := strings.TrimSpace(lines[i+1])
				if next == "" || strings.HasPrefix(next, "#") || actionLineRe.MatchString(next) {
					break
				}
				text += "\n" + next
				i++
			}
			current.Reflection = text
		}
	}
	flush()

	return goals, warnings, nil
}

func parseDateHeader(line string) (models.Date, int, bool) {
	m := dateHeaderRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return models.Date{}, 0, false
	}
	month, ok := monthsByName[strings.ToLower(m[1])]
	if !ok {
		return models.Date{}, 0, false
	}
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	dayNumber := 0
	if m[4] != "" {
		dayNumber, _ = strconv.Atoi(m[4])
	}
	date := models.NewDate(year, month, day)
	// Reject normalized overflow like February 30.
	if date.Format("January 2, 2006") != fmt.Sprintf("%s %d, %d", month, day, year) {
		return models.Date{}, 0, false
	}
	return date, dayNumber, true
}

func domainFor(word string) models.OutcomeType {
	switch strings.ToLower(word) {
	case "work":
		return models.Work
	case "health":
		return models.Health
	default:
		return models.Family
	}
}

// GenerateMarkdown renders the canonical day file: date header with
// optional day number, the three sections in fixed order, one checkbox
// line per action, and the reflection as a trailing paragraph. Ends
// with a newline.
func GenerateMarkdown(g *models.DailyGoals) string {
	var b strings.Builder

	b.WriteString("# ")
	b.WriteString(g.Date.Format("January 2, 2006"))
	if g.DayNumber > 0 {
		fmt.Fprintf(&b, " - Day %d", g.DayNumber)
	}
	b.WriteString("\n")

	for _, o := range g.Outcomes() {
		b.WriteString("\n")
		if o.Goal != "" {
			fmt.Fprintf(&b, "## %s (Goal: %s)\n", o.Type, o.Goal)
		} else {
			fmt.Fprintf(&b, "## %s\n", o.Type)
		}
		for i := range o.Actions {
			mark := " "
			if o.Actions[i].Completed {
				mark = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s\n", mark, o.Actions[i].Text)
		}
		if o.Reflection != "" {
			b.WriteString("\n")
			b.WriteString(reflectionPrefix)
			b.WriteString(" ")
			b.WriteString(o.Reflection)
			b.WriteString("\n")
		}
	}

	return b.String()
}
