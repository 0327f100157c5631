package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/halcyonlab/triday/pkg/models"
	"github.com/halcyonlab/triday/pkg/store"
)

const minWidth = 40
const minHeight = 10

// View implements tea.Model.
func (m Model) View() string {
	w := m.width
	h := m.height
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}

	if m.showHelpModal {
		return placeOverlay(m.renderHelpModal(), w, h)
	}
	if m.showDeleteConfirm {
		return placeOverlay(m.renderDeleteModal(), w, h)
	}
	if m.showTemplates {
		return placeOverlay(m.renderTemplateModal(), w, h)
	}
	if m.showPreview {
		return m.renderPreview(w, h)
	}

	var b strings.Builder

	// Header
	b.WriteString(m.renderHeader(w))
	b.WriteString("\n")

	// Outcome tabs
	b.WriteString(m.renderTabs(w))
	b.WriteString("\n")

	// Separator
	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	headerLines := 3
	footerLines := 3
	contentHeight := h - headerLines - footerLines

	content := m.renderOutcomePanel(w, contentHeight)
	lines := strings.Split(content, "\n")
	if len(lines) > contentHeight {
		lines = lines[:contentHeight]
	}
	for len(lines) < contentHeight {
		lines = append(lines, "")
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")

	// Separator
	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	// Footer: stats line plus key help
	b.WriteString(m.renderStatsLine(w))
	b.WriteString("\n")
	b.WriteString(m.renderFooter(w))

	return b.String()
}

func (m Model) renderHeader(width int) string {
	phase := models.PhaseForHour(time.Now().Hour())
	title := HeaderStyle.Render("Triday")
	date := HeaderCountStyle.Render("  " + m.session.Goals.Date.Format("Monday, January 2, 2006"))
	greeting := FooterStyle.Render("  " + phase.Greeting())

	// Status message
	status := ""
	if m.statusMsg != "" && time.Now().Before(m.statusTimeout) {
		status = lipgloss.NewStyle().Foreground(ColorCyan).Render(m.statusMsg) + "  "
	}

	dirty := ""
	if m.session.Dirty() {
		dirty = lipgloss.NewStyle().Foreground(ColorYellow).Render("●")
	}

	left := title + date + greeting
	right := status + dirty
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderTabs(width int) string {
	var tabs []string
	for i, t := range models.OutcomeTypes() {
		out := m.session.Goals.Outcome(t)
		label := fmt.Sprintf("%s %d/%d", t, out.CompletedCount(), len(out.Actions))
		if i == m.activeTab {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderOutcomePanel(width, height int) string {
	out := m.activeOutcome()
	var lines []string

	// Goal line
	goal := out.Goal
	if m.mode == modeEditGoal {
		lines = append(lines, GoalLabelStyle.Render("Goal: ")+InputPromptStyle.Render("> ")+m.textInput.View())
	} else if goal != "" {
		lines = append(lines, GoalLabelStyle.Render("Goal: ")+GoalTextStyle.Render(goal))
	} else {
		lines = append(lines, GoalLabelStyle.Render("Goal: (press g to set one)"))
	}
	lines = append(lines, "")

	// Actions
	for i := range out.Actions {
		a := &out.Actions[i]

		if m.mode == modeEditAction && i == m.cursor {
			lines = append(lines, "  "+InputPromptStyle.Render("✎ ")+m.textInput.View())
			continue
		}

		lines = append(lines, m.renderActionLine(a, i == m.cursor, width))
	}

	// Pending add goes after the existing actions
	if m.mode == modeAddAction {
		lines = append(lines, "  "+InputPromptStyle.Render("> ")+m.textInput.View())
	}

	// Reflection
	lines = append(lines, "")
	if m.mode == modeReflection {
		lines = append(lines, ReflectionStyle.Render("Reflection:"))
		lines = append(lines, strings.Split(m.reflEditor.View(), "\n")...)
	} else if out.Reflection != "" {
		lines = append(lines, ReflectionStyle.Render("Reflection: ")+FooterStyle.Render(out.Reflection))
	}

	// File path pinned at the bottom
	for len(lines) < height-1 {
		lines = append(lines, "")
	}
	if len(lines) > height-1 {
		lines = lines[:height-1]
	}
	path := m.store.GoalsPath(m.session.Goals.Date)
	lines = append(lines, lipgloss.NewStyle().Foreground(ColorGrayDim).Render(fileHyperlink(path)))

	return strings.Join(lines, "\n")
}

func (m Model) renderActionLine(a *models.Action, selected bool, width int) string {
	icon := statusIcon(a.Status)

	text := a.Text
	if text == "" {
		text = FooterStyle.Render("(empty)")
	}

	origin := ""
	switch a.Origin {
	case models.OriginCarryOver:
		origin = OriginStyle.Render("  [carried]")
	case models.OriginTemplate:
		origin = OriginStyle.Render("  [template]")
	}

	line := "  " + icon + " " + text + origin

	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		line += strings.Repeat(" ", width-lineWidth)
	}
	if selected {
		line = SelectedStyle.Render(line)
	}
	return line
}

func statusIcon(s models.ActionStatus) string {
	switch s {
	case models.StatusDone:
		return DoneStyle.Render(IconDone)
	case models.StatusInProgress:
		return InProgressStyle.Render(IconInProgress)
	case models.StatusSkipped:
		return SkippedStyle.Render(IconSkipped)
	case models.StatusBlocked:
		return BlockedStyle.Render(IconBlocked)
	default:
		return PlannedStyle.Render(IconPlanned)
	}
}

func (m Model) renderStatsLine(width int) string {
	stats := m.session.Goals.CompletionStats()

	parts := []string{
		fmt.Sprintf("%d/%d done (%d%%)", stats.Completed, stats.Total, stats.Percentage),
	}
	if m.streak > 0 {
		parts = append(parts, fmt.Sprintf("streak %dd", m.streak))
	}
	if stats.BestOutcome != "" {
		parts = append(parts, "best: "+stats.BestOutcome)
	}
	if len(stats.NeedsAttention) > 0 {
		parts = append(parts, "attention: "+strings.Join(stats.NeedsAttention, ", "))
	}
	return HeaderCountStyle.Render(strings.Join(parts, "  ·  "))
}

func (m Model) renderFooter(width int) string {
	help := m.keys.ShortHelp()
	switch m.mode {
	case modeEditAction, modeAddAction, modeEditGoal:
		help = "enter confirm  esc cancel"
	case modeReflection:
		help = "esc save & exit  ctrl+c cancel"
	}
	if m.showPreview {
		help = "↑↓ scroll  any key close"
	}
	return FooterStyle.Render(help)
}

func (m Model) renderPreview(width, height int) string {
	md := store.GenerateMarkdown(m.session.Goals)

	rendered := md
	if r := m.glamourRenderer; r != nil {
		if out, err := r.Render(md); err == nil {
			rendered = out
		}
	}
	rendered = strings.TrimRight(rendered, "\n ")
	lines := strings.Split(rendered, "\n")

	scroll := m.previewScroll
	if scroll > len(lines)-1 {
		scroll = len(lines) - 1
	}
	if scroll < 0 {
		scroll = 0
	}
	lines = lines[scroll:]

	body := height - 1
	if len(lines) > body {
		lines = lines[:body]
	}
	for len(lines) < body {
		lines = append(lines, "")
	}
	lines = append(lines, m.renderFooter(width))
	return strings.Join(lines, "\n")
}

func (m Model) renderHelpModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(ColorBlue).Width(16)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	for _, binding := range m.keys.FullHelp() {
		b.WriteString(keyStyle.Render(binding[0]))
		b.WriteString(descStyle.Render(binding[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("Press Esc or ? to close"))

	return ModalStyle.Render(b.String())
}

func (m Model) renderDeleteModal() string {
	var b strings.Builder

	target := "(empty)"
	out := m.activeOutcome()
	if m.deleteIndex >= 0 && m.deleteIndex < len(out.Actions) && out.Actions[m.deleteIndex].Text != "" {
		target = out.Actions[m.deleteIndex].Text
	}

	b.WriteString(ModalTitleStyle.Render("Delete Action"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Delete '%s'?\n\n", target))
	b.WriteString(lipgloss.NewStyle().Foreground(ColorGreen).Render("[y]") + " Yes  ")
	b.WriteString(lipgloss.NewStyle().Foreground(ColorRed).Render("[n]") + " No")

	return ModalStyle.Render(b.String())
}

func (m Model) renderTemplateModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Apply Template"))
	b.WriteString("\n\n")

	names := m.session.Templates.Names()
	for i, name := range names {
		actions, _ := m.session.Templates.Get(name)
		label := fmt.Sprintf("%s (%d actions)", name, len(actions))
		if i == m.templateCursor {
			b.WriteString(SelectedStyle.Render(" " + label + " "))
		} else {
			b.WriteString(" " + label)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("enter apply to " + string(models.OutcomeTypes()[m.activeTab]) + "  esc cancel"))

	return ModalStyle.Render(b.String())
}

// fileHyperlink wraps a file path in an OSC 8 terminal hyperlink so it's clickable.
func fileHyperlink(path string) string {
	url := "file://" + path
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, path)
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := (height - len(modalLines)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	leftPadding := (width - lipgloss.Width(modalLines[0])) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}

	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}
