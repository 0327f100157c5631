package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/halcyonlab/triday/pkg/logging"
	"github.com/halcyonlab/triday/pkg/models"
	"github.com/halcyonlab/triday/pkg/store"
	gsync "github.com/halcyonlab/triday/pkg/sync"
	"github.com/halcyonlab/triday/pkg/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := models.LoadConfig()
	if err != nil {
		return err
	}
	s, err := store.NewStore(cfg)
	if err != nil {
		return err
	}

	args := os.Args[1:]
	jsonOutput := hasFlag(args, "--json")
	args = removeFlag(args, "--json")

	if len(args) == 0 {
		return runTUI(s)
	}

	switch args[0] {
	case "today":
		return cmdToday(s, jsonOutput)
	case "add":
		if len(args) < 3 {
			return fmt.Errorf("usage: triday add <work|health|family> <text>")
		}
		return cmdAdd(s, args[1], strings.Join(args[2:], " "), jsonOutput)
	case "done":
		if len(args) < 3 {
			return fmt.Errorf("usage: triday done <work|health|family> <n>")
		}
		return cmdDone(s, args[1], args[2], jsonOutput)
	case "goal":
		if len(args) < 3 {
			return fmt.Errorf("usage: triday goal <work|health|family> <text>")
		}
		return cmdGoal(s, args[1], strings.Join(args[2:], " "), jsonOutput)
	case "reflect":
		if len(args) < 3 {
			return fmt.Errorf("usage: triday reflect <work|health|family> <text>")
		}
		return cmdReflect(s, args[1], strings.Join(args[2:], " "), jsonOutput)
	case "carry":
		return cmdCarry(s, jsonOutput)
	case "template":
		return cmdTemplate(s, args[1:], jsonOutput)
	case "stats":
		return cmdStats(s, jsonOutput)
	case "streak":
		return cmdStreak(s, jsonOutput)
	case "observe":
		if len(args) < 3 {
			return fmt.Errorf("usage: triday observe <indicator> <value> [note]")
		}
		note := ""
		if len(args) > 3 {
			note = strings.Join(args[3:], " ")
		}
		return cmdObserve(s, args[1], args[2], note, jsonOutput)
	case "observations":
		if len(args) < 3 {
			return fmt.Errorf("usage: triday observations <start> <end>")
		}
		return cmdObservations(s, args[1], args[2], jsonOutput)
	case "review":
		if len(args) < 2 {
			return fmt.Errorf("usage: triday review <score 1-5> [notes] | triday review show")
		}
		return cmdReview(s, args[1:], jsonOutput)
	case "vision":
		if len(args) < 2 {
			return fmt.Errorf("usage: triday vision <work|health|family> [text]")
		}
		text := ""
		if len(args) > 2 {
			text = strings.Join(args[2:], " ")
		}
		return cmdVision(s, args[1], text, jsonOutput)
	case "init":
		remote := ""
		for i, a := range args {
			if a == "--remote" && i+1 < len(args) {
				remote = args[i+1]
			}
		}
		return gsync.InitRepo(s.DataRoot, remote)
	case "sync":
		return gsync.SyncRepo(s.DataRoot)
	default:
		return fmt.Errorf("unknown command: %s\nUsage: triday [today|add|done|goal|reflect|carry|template|stats|streak|observe|observations|review|vision|init|sync]", args[0])
	}
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func removeFlag(args []string, flag string) []string {
	var result []string
	for _, a := range args {
		if a != flag {
			result = append(result, a)
		}
	}
	return result
}

func parseDomain(s string) (models.OutcomeType, error) {
	switch strings.ToLower(s) {
	case "work":
		return models.Work, nil
	case "health":
		return models.Health, nil
	case "family":
		return models.Family, nil
	}
	return "", fmt.Errorf("unknown outcome %q (want work, health or family)", s)
}

func openSession(s *store.Store) (*store.Session, error) {
	sess, err := store.NewSession(s, models.Today())
	if err != nil {
		return nil, err
	}
	if logger, closeLog, err := logging.Setup(store.DefaultLogDir()); err == nil {
		sess.Log = logger
		// Leaked close is fine for a short-lived CLI process.
		_ = closeLog
	}
	return sess, nil
}

func runTUI(s *store.Store) error {
	sess, err := openSession(s)
	if err != nil {
		return err
	}

	m := tui.NewModel(s, sess)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Start file watcher
	cleanup, err := tui.StartWatcher(s.GoalsDir, p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file watcher failed: %v\n", err)
	} else {
		defer cleanup()
	}

	_, err = p.Run()
	return err
}

// CLI Commands

func cmdToday(s *store.Store, jsonOut bool) error {
	sess, err := openSession(s)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(sess.Goals)
	}
	fmt.Print(store.GenerateMarkdown(sess.Goals))
	for _, w := range sess.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	return nil
}

func cmdAdd(s *store.Store, domain, text string, jsonOut bool) error {
	t, err := parseDomain(domain)
	if err != nil {
		return err
	}
	sess, err := openSession(s)
	if err != nil {
		return err
	}
	out := sess.Goals.Outcome(t)

	// Fill an empty slot before growing the list
	var target *models.Action
	for i := range out.Actions {
		if out.Actions[i].IsEmpty() {
			target = &out.Actions[i]
			break
		}
	}
	if target == nil {
		target, err = out.AddAction()
		if err != nil {
			return err
		}
	}
	target.SetText(text)
	sess.GoalsDirty = true
	if err := sess.Flush(s); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]any{"added": target.Text, "outcome": t})
	}
	fmt.Printf("Added to %s: %s\n", t, target.Text)
	return nil
}

func cmdDone(s *store.Store, domain, index string, jsonOut bool) error {
	t, err := parseDomain(domain)
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(index)
	if err != nil {
		return fmt.Errorf("action number must be an integer, got %q", index)
	}
	sess, err := openSession(s)
	if err != nil {
		return err
	}
	out := sess.Goals.Outcome(t)
	if n < 1 || n > len(out.Actions) {
		return fmt.Errorf("%s has %d actions, no action %d", t, len(out.Actions), n)
	}
	a := &out.Actions[n-1]
	a.SetCompleted(true)
	sess.GoalsDirty = true
	if err := sess.Flush(s); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]any{"done": a.Text, "outcome": t})
	}
	fmt.Printf("Done: %s\n", a.Text)
	return nil
}

func cmdGoal(s *store.Store, domain, text string, jsonOut bool) error {
	t, err := parseDomain(domain)
	if err != nil {
		return err
	}
	sess, err := openSession(s)
	if err != nil {
		return err
	}
	sess.Goals.Outcome(t).SetGoal(text)
	sess.GoalsDirty = true
	if err := sess.Flush(s); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]any{"outcome": t, "goal": sess.Goals.Outcome(t).Goal})
	}
	fmt.Printf("%s goal: %s\n", t, sess.Goals.Outcome(t).Goal)
	return nil
}

func cmdReflect(s *store.Store, domain, text string, jsonOut bool) error {
	t, err := parseDomain(domain)
	if err != nil {
		return err
	}
	sess, err := openSession(s)
	if err != nil {
		return err
	}
	sess.Goals.Outcome(t).Reflection = text
	sess.GoalsDirty = true
	if err := sess.Flush(s); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]any{"outcome": t, "reflection": text})
	}
	fmt.Printf("%s reflection recorded\n", t)
	return nil
}

func cmdCarry(s *store.Store, jsonOut bool) error {
	sess, err := openSession(s)
	if err != nil {
		return err
	}
	yesterday, err := s.GetYesterdayGoals(sess.Date)
	if err != nil {
		return err
	}
	if yesterday == nil {
		return fmt.Errorf("no goals recorded for yesterday")
	}
	carried := map[models.OutcomeType]int{}
	total := 0
	for domain, texts := range models.CarryOverCandidates(yesterday) {
		n := models.ApplyCarryOver(sess.Goals, domain, texts)
		carried[domain] = n
		total += n
	}
	if total > 0 {
		sess.GoalsDirty = true
		if err := sess.Flush(s); err != nil {
			return err
		}
	}

	if jsonOut {
		return printJSON(map[string]any{"carried": carried, "total": total})
	}
	fmt.Printf("Carried over %d action(s)\n", total)
	return nil
}

func cmdTemplate(s *store.Store, args []string, jsonOut bool) error {
	sess, err := openSession(s)
	if err != nil {
		return err
	}

	if len(args) == 0 || args[0] == "list" {
		if jsonOut {
			return printJSON(sess.Templates)
		}
		names := sess.Templates.Names()
		if len(names) == 0 {
			fmt.Println("No templates saved.")
			return nil
		}
		for _, name := range names {
			actions, _ := sess.Templates.Get(name)
			fmt.Printf("%s (%d actions)\n", name, len(actions))
			for _, a := range actions {
				fmt.Printf("  - %s\n", a)
			}
		}
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) < 3 {
			return fmt.Errorf("usage: triday template add <name> <action> [action...]")
		}
		sess.Templates.Add(args[1], args[2:])
		sess.TemplatesDirty = true
		if err := sess.Flush(s); err != nil {
			return err
		}
		fmt.Printf("Template saved: %s\n", args[1])
		return nil
	case "remove":
		if len(args) < 2 {
			return fmt.Errorf("usage: triday template remove <name>")
		}
		if !sess.Templates.Remove(args[1]) {
			return fmt.Errorf("no template named %q", args[1])
		}
		sess.TemplatesDirty = true
		if err := sess.Flush(s); err != nil {
			return err
		}
		fmt.Printf("Template removed: %s\n", args[1])
		return nil
	case "apply":
		if len(args) < 3 {
			return fmt.Errorf("usage: triday template apply <name> <work|health|family>")
		}
		t, err := parseDomain(args[2])
		if err != nil {
			return err
		}
		if _, ok := sess.Templates.Get(args[1]); !ok {
			return fmt.Errorf("no template named %q", args[1])
		}
		n := sess.Templates.Apply(args[1], sess.Goals.Outcome(t))
		if n > 0 {
			sess.GoalsDirty = true
			if err := sess.Flush(s); err != nil {
				return err
			}
		}
		fmt.Printf("Filled %d slot(s) in %s from %s\n", n, t, args[1])
		return nil
	}
	return fmt.Errorf("usage: triday template [list|add|remove|apply]")
}

func cmdStats(s *store.Store, jsonOut bool) error {
	sess, err := openSession(s)
	if err != nil {
		return err
	}
	stats := sess.Goals.CompletionStats()
	stats.StreakDays = s.CalculateStreak(sess.Date)

	if jsonOut {
		return printJSON(stats)
	}
	fmt.Printf("%s — %d/%d done (%d%%)\n", sess.Date, stats.Completed, stats.Total, stats.Percentage)
	for _, o := range stats.ByOutcome {
		fmt.Printf("  %-7s %d/%d\n", o.Name, o.Completed, o.Total)
	}
	if stats.BestOutcome != "" {
		fmt.Printf("Best: %s\n", stats.BestOutcome)
	}
	if len(stats.NeedsAttention) > 0 {
		fmt.Printf("Needs attention: %s\n", strings.Join(stats.NeedsAttention, ", "))
	}
	if stats.StreakDays > 0 {
		fmt.Printf("Streak: %d day(s)\n", stats.StreakDays)
	}
	return nil
}

func cmdStreak(s *store.Store, jsonOut bool) error {
	streak := s.CalculateStreak(models.Today())
	if jsonOut {
		return printJSON(map[string]int{"streak_days": streak})
	}
	fmt.Printf("Streak: %d day(s)\n", streak)
	return nil
}

func cmdObserve(s *store.Store, name, value, note string, jsonOut bool) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("value must be a number, got %q", value)
	}
	sess, err := openSession(s)
	if err != nil {
		return err
	}

	ind := sess.Indicators.FindByName(name)
	if ind == nil {
		// First observation of an unknown indicator defines it
		def := models.NewIndicator(name, models.Leading, models.UnitCount)
		sess.Indicators.Indicators = append(sess.Indicators.Indicators, def)
		sess.IndicatorsDirty = true
		ind = &sess.Indicators.Indicators[len(sess.Indicators.Indicators)-1]
	}

	obs := models.NewObservation(ind, models.Today(), v)
	obs.Note = note
	if err := s.AppendObservation(&obs); err != nil {
		return err
	}
	if sess.Dirty() {
		if err := sess.Flush(s); err != nil {
			return err
		}
	}

	if jsonOut {
		return printJSON(obs)
	}
	fmt.Printf("Recorded %s = %g %s\n", ind.Name, v, ind.Unit.Label())
	return nil
}

func cmdObservations(s *store.Store, start, end string, jsonOut bool) error {
	from, err := models.ParseDate(start)
	if err != nil {
		return err
	}
	to, err := models.ParseDate(end)
	if err != nil {
		return err
	}
	obs, err := s.ReadObservationsRange(from, to)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(obs)
	}
	for _, o := range obs {
		fmt.Printf("%s  %-20s %g %s\n", o.When, o.IndicatorID, o.Value, o.Unit.Label())
	}
	fmt.Printf("%d observation(s)\n", len(obs))
	return nil
}

func cmdReview(s *store.Store, args []string, jsonOut bool) error {
	today := models.Today()
	year, week := today.ISOWeek()

	if args[0] == "show" {
		review, err := s.LoadReview(year, week)
		if err != nil {
			return err
		}
		if review == nil {
			return fmt.Errorf("no review saved for %d-W%02d", year, week)
		}
		if jsonOut {
			return printJSON(review)
		}
		fmt.Printf("Week %d-W%02d — score %d/5\n", year, week, review.Score)
		if review.Notes != "" {
			fmt.Println(review.Notes)
		}
		return nil
	}

	score, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("score must be an integer 1-5, got %q", args[0])
	}
	review, err := models.NewReview(today, models.Weekly, score)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		review.Notes = strings.Join(args[1:], " ")
	}
	path, err := s.SaveReview(year, week, review)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(review)
	}
	fmt.Printf("Review saved: %s\n", path)
	return nil
}

func cmdVision(s *store.Store, domain, text string, jsonOut bool) error {
	t, err := parseDomain(domain)
	if err != nil {
		return err
	}
	sess, err := openSession(s)
	if err != nil {
		return err
	}

	if text == "" {
		if jsonOut {
			return printJSON(map[string]any{"outcome": t, "vision": sess.Vision.Get(t)})
		}
		v := sess.Vision.Get(t)
		if v == "" {
			fmt.Printf("No %s vision set.\n", t)
		} else {
			fmt.Println(v)
		}
		return nil
	}

	sess.Vision.Set(t, text)
	sess.VisionDirty = true
	if err := sess.Flush(s); err != nil {
		return err
	}
	if jsonOut {
		return printJSON(map[string]any{"outcome": t, "vision": sess.Vision.Get(t)})
	}
	fmt.Printf("%s vision updated\n", t)
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
