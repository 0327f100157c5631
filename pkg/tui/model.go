package tui

import (
	"os/exec"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/halcyonlab/triday/pkg/models"
	"github.com/halcyonlab/triday/pkg/store"
)

// FileChangedMsg is sent when the file watcher detects changes.
type FileChangedMsg struct{}

// SyncDoneMsg is sent when git sync completes.
type SyncDoneMsg struct {
	Err error
}

type mode int

const (
	modeNormal mode = iota
	modeEditAction
	modeAddAction
	modeEditGoal
	modeReflection
)

// Model is the Bubble Tea model for the daily tracker TUI.
type Model struct {
	store   *store.Store
	session *store.Session
	keys    KeyMap
	width   int
	height  int

	activeTab int // index into models.OutcomeTypes()
	cursor    int // selected action within the active outcome

	mode       mode
	textInput  textinput.Model
	reflEditor textarea.Model

	// Modal state
	showHelpModal     bool
	showDeleteConfirm bool
	deleteIndex       int
	showTemplates     bool
	templateCursor    int

	// Markdown preview of the whole day
	showPreview   bool
	previewScroll int

	// Status message
	statusMsg     string
	statusTimeout time.Time

	// Completion streak ending today, recomputed after each flush
	streak int

	// Cached glamour renderer (expensive to create)
	glamourRenderer *glamour.TermRenderer
	glamourWidth    int
}

// NewModel creates a new TUI model over a loaded session.
func NewModel(s *store.Store, sess *store.Session) Model {
	ti := textinput.New()
	ti.CharLimit = models.MaxActionLength

	ta := textarea.New()
	ta.Placeholder = "How did the day go?"
	ta.CharLimit = models.MaxActionLength
	ta.ShowLineNumbers = false

	m := Model{
		store:      s,
		session:    sess,
		keys:       DefaultKeyMap(),
		textInput:  ti,
		reflEditor: ta,
	}
	m.streak = s.CalculateStreak(sess.Date)
	if len(sess.Warnings) > 0 {
		m.setStatus(sess.Warnings[0])
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Pre-create glamour renderer at the right width
		pw := msg.Width - 4
		if pw < 20 {
			pw = 20
		}
		m.getGlamourRenderer(pw)
		m.reflEditor.SetWidth(msg.Width - 4)
		m.reflEditor.SetHeight(5)
		return m, tea.ClearScreen

	case FileChangedMsg:
		// External edits win unless the user is mid-edit.
		if m.mode == modeNormal && !m.showDeleteConfirm && !m.showTemplates {
			if err := m.session.Reload(m.store); err != nil {
				m.setStatus("Reload error: " + err.Error())
			} else {
				m.clampCursor()
				m.setStatus("Reloaded (external change)")
			}
		}
		return m, nil

	case SyncDoneMsg:
		if msg.Err != nil {
			m.setStatus("Sync failed: " + msg.Err.Error())
		} else {
			m.setStatus("Synced successfully")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help modal swallows everything except its own dismissal
	if m.showHelpModal {
		switch msg.String() {
		case "?", "esc", "q":
			m.showHelpModal = false
		}
		return m, nil
	}

	if m.showDeleteConfirm {
		switch msg.String() {
		case "y", "Y", "enter":
			m.showDeleteConfirm = false
			out := m.activeOutcome()
			if err := out.RemoveAction(m.deleteIndex); err != nil {
				m.setStatus("Delete failed: " + err.Error())
			} else {
				m.session.GoalsDirty = true
				m.clampCursor()
				m.setStatus("Action deleted")
			}
		case "n", "N", "esc":
			m.showDeleteConfirm = false
		}
		return m, nil
	}

	if m.showTemplates {
		return m.handleTemplatePick(msg)
	}

	if m.showPreview {
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.previewScroll > 0 {
				m.previewScroll--
			}
		case key.Matches(msg, m.keys.Down):
			m.previewScroll++
		default:
			m.showPreview = false
			m.previewScroll = 0
		}
		return m, nil
	}

	switch m.mode {
	case modeEditAction, modeAddAction, modeEditGoal:
		return m.handleInput(msg)
	case modeReflection:
		return m.handleReflection(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.activeOutcome().Actions)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Left):
		m.activeTab = (m.activeTab + 2) % 3
		m.clampCursor()

	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Tab):
		m.activeTab = (m.activeTab + 1) % 3
		m.clampCursor()

	case key.Matches(msg, m.keys.Space):
		if a := m.selectedAction(); a != nil {
			a.CycleStatus()
			m.session.GoalsDirty = true
			m.session.MetaDirty = true
		}

	case key.Matches(msg, m.keys.Enter):
		if a := m.selectedAction(); a != nil {
			a.SetCompleted(!a.Completed)
			m.session.GoalsDirty = true
			m.session.MetaDirty = true
		}

	case key.Matches(msg, m.keys.Edit):
		if a := m.selectedAction(); a != nil {
			m.mode = modeEditAction
			m.textInput.Placeholder = "action"
			m.textInput.CharLimit = models.MaxActionLength
			m.textInput.SetValue(a.Text)
			m.textInput.CursorEnd()
			m.textInput.Focus()
		}

	case key.Matches(msg, m.keys.Add):
		out := m.activeOutcome()
		if len(out.Actions) >= models.MaxActions {
			m.setStatus("This outcome already has the maximum of 5 actions")
			break
		}
		m.mode = modeAddAction
		m.textInput.Placeholder = "new action"
		m.textInput.CharLimit = models.MaxActionLength
		m.textInput.SetValue("")
		m.textInput.Focus()

	case key.Matches(msg, m.keys.Delete):
		if len(m.activeOutcome().Actions) > 0 {
			m.deleteIndex = m.cursor
			m.showDeleteConfirm = true
		}

	case key.Matches(msg, m.keys.Goal):
		m.mode = modeEditGoal
		m.textInput.Placeholder = "goal for this outcome"
		m.textInput.CharLimit = models.MaxGoalLength
		m.textInput.SetValue(m.activeOutcome().Goal)
		m.textInput.CursorEnd()
		m.textInput.Focus()

	case key.Matches(msg, m.keys.Reflection):
		m.mode = modeReflection
		m.reflEditor.SetValue(m.activeOutcome().Reflection)
		m.reflEditor.Focus()

	case key.Matches(msg, m.keys.Template):
		if len(m.session.Templates.Names()) == 0 {
			m.setStatus("No templates saved yet")
			break
		}
		m.showTemplates = true
		m.templateCursor = 0

	case key.Matches(msg, m.keys.CarryOver):
		m.carryOver()

	case key.Matches(msg, m.keys.Save):
		if err := m.session.Flush(m.store); err != nil {
			m.setStatus("Save failed: " + err.Error())
		} else {
			m.streak = m.store.CalculateStreak(m.session.Date)
			m.setStatus("Saved")
		}

	case key.Matches(msg, m.keys.Sync):
		m.setStatus("Syncing...")
		return m, m.doSync()

	case key.Matches(msg, m.keys.Reload):
		if err := m.session.Reload(m.store); err != nil {
			m.setStatus("Reload error: " + err.Error())
		} else {
			m.clampCursor()
			m.setStatus("Reloaded")
		}

	case key.Matches(msg, m.keys.Preview):
		m.showPreview = true
		m.previewScroll = 0

	case key.Matches(msg, m.keys.Help):
		m.showHelpModal = true

	case key.Matches(msg, m.keys.Quit):
		if m.session.Dirty() {
			if err := m.session.Flush(m.store); err != nil {
				m.setStatus("Save failed: " + err.Error())
				return m, nil
			}
		}
		return m, tea.Quit
	}

	return m, nil
}

// handleInput drives the single-line editors (action text, goal).
func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := m.textInput.Value()
		switch m.mode {
		case modeEditAction:
			if a := m.selectedAction(); a != nil {
				a.SetText(text)
				m.session.GoalsDirty = true
			}
		case modeAddAction:
			out := m.activeOutcome()
			a, err := out.AddAction()
			if err != nil {
				m.setStatus("Add failed: " + err.Error())
			} else {
				a.SetText(text)
				m.cursor = len(out.Actions) - 1
				m.session.GoalsDirty = true
				m.session.MetaDirty = true
			}
		case modeEditGoal:
			m.activeOutcome().SetGoal(text)
			m.session.GoalsDirty = true
		}
		m.mode = modeNormal
		m.textInput.Blur()
		return m, nil

	case "esc":
		m.mode = modeNormal
		m.textInput.Blur()
		m.setStatus("Edit cancelled")
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// handleReflection drives the multi-line reflection editor.
func (m Model) handleReflection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+s":
		m.activeOutcome().Reflection = m.reflEditor.Value()
		m.session.GoalsDirty = true
		m.mode = modeNormal
		m.reflEditor.Blur()
		m.setStatus("Reflection saved")
		return m, nil

	case "ctrl+c":
		m.mode = modeNormal
		m.reflEditor.Blur()
		m.setStatus("Edit cancelled")
		return m, nil
	}

	var cmd tea.Cmd
	m.reflEditor, cmd = m.reflEditor.Update(msg)
	return m, cmd
}

func (m Model) handleTemplatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := m.session.Templates.Names()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.templateCursor > 0 {
			m.templateCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.templateCursor < len(names)-1 {
			m.templateCursor++
		}
	case msg.String() == "enter":
		m.showTemplates = false
		if m.templateCursor < len(names) {
			name := names[m.templateCursor]
			n := m.session.Templates.Apply(name, m.activeOutcome())
			if n > 0 {
				m.session.GoalsDirty = true
				m.session.MetaDirty = true
			}
			m.setStatus("Template applied: " + name)
		}
	case msg.String() == "esc", msg.String() == "t":
		m.showTemplates = false
	}
	return m, nil
}

// carryOver pulls yesterday's incomplete actions into today's empty
// slots across all three outcomes.
func (m *Model) carryOver() {
	yesterday, err := m.store.GetYesterdayGoals(m.session.Date)
	if err != nil {
		m.setStatus("Carry over failed: " + err.Error())
		return
	}
	if yesterday == nil {
		m.setStatus("No goals recorded for yesterday")
		return
	}
	total := 0
	for domain, texts := range models.CarryOverCandidates(yesterday) {
		total += models.ApplyCarryOver(m.session.Goals, domain, texts)
	}
	if total == 0 {
		m.setStatus("Nothing to carry over")
		return
	}
	m.session.GoalsDirty = true
	m.session.MetaDirty = true
	m.setStatus("Carried over " + strconv.Itoa(total) + " action(s)")
}

func (m *Model) activeOutcome() *models.Outcome {
	types := models.OutcomeTypes()
	return m.session.Goals.Outcome(types[m.activeTab])
}

func (m *Model) selectedAction() *models.Action {
	out := m.activeOutcome()
	if m.cursor < 0 || m.cursor >= len(out.Actions) {
		return nil
	}
	return &out.Actions[m.cursor]
}

func (m *Model) clampCursor() {
	n := len(m.activeOutcome().Actions)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// getGlamourRenderer returns a cached glamour renderer, creating one if needed
// (recreated only when the width changes).
func (m *Model) getGlamourRenderer(width int) *glamour.TermRenderer {
	if m.glamourRenderer != nil && m.glamourWidth == width {
		return m.glamourRenderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	m.glamourRenderer = r
	m.glamourWidth = width
	return r
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTimeout = time.Now().Add(3 * time.Second)
}

func (m Model) doSync() tea.Cmd {
	return func() tea.Msg {
		dir := m.store.DataRoot
		cmds := []struct {
			name string
			args []string
		}{
			{"git", []string{"-C", dir, "add", "-A"}},
			{"git", []string{"-C", dir, "commit", "-m", "sync " + time.Now().Format("2006-01-02 15:04:05")}},
			{"git", []string{"-C", dir, "pull", "--rebase"}},
			{"git", []string{"-C", dir, "push"}},
		}

		for _, c := range cmds {
			cmd := exec.Command(c.name, c.args...)
			if err := cmd.Run(); err != nil {
				// commit fails if nothing to commit — that's ok
				if c.args[2] != "commit" {
					return SyncDoneMsg{Err: err}
				}
			}
		}
		return SyncDoneMsg{}
	}
}
