package tui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/countdown/internal/model"
)

const fontStep = 5

type adminPanel struct {
	open   bool
	inputs []textinput.Model
	focus  int
	slider progress.Model
}

func newAdminPanel() adminPanel {
	inputs := make([]textinput.Model, len(model.Fields))
	for i, f := range model.Fields {
		input := textinput.New()
		input.Prompt = ""
		input.CharLimit = len(strconv.Itoa(f.Max()))
		input.Width = input.CharLimit + 1
		input.Cursor.SetMode(cursor.CursorBlink)
		inputs[i] = input
	}
	return adminPanel{
		inputs: inputs,
		focus:  -1,
		slider: progress.New(
			progress.WithGradient(colorBlue, colorCyan),
			progress.WithoutPercentage(),
			progress.WithWidth(30),
		),
	}
}

// sync copies remaining time into every input the user is not editing.
func (a *adminPanel) sync(t model.TimeRemaining) {
	for i, f := range model.Fields {
		if i == a.focus {
			continue
		}
		a.inputs[i].SetValue(strconv.Itoa(t.Get(f)))
	}
}

func (a *adminPanel) setFocus(idx int) tea.Cmd {
	count := len(a.inputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	a.focus = idx
	var cmd tea.Cmd
	for i := range a.inputs {
		if i == a.focus {
			cmd = a.inputs[i].Focus()
			a.inputs[i].CursorEnd()
		} else {
			a.inputs[i].Blur()
		}
	}
	return cmd
}

func (a *adminPanel) blur() {
	a.focus = -1
	for i := range a.inputs {
		a.inputs[i].Blur()
	}
}

func (m *Model) openAdmin(field int) tea.Cmd {
	m.admin.open = true
	m.admin.blur()
	m.admin.sync(m.ctrl.Snapshot().Remaining)
	if field >= 0 && m.ctrl.Snapshot().Manual() {
		return m.admin.setFocus(field)
	}
	return nil
}

func (m *Model) closeAdmin() {
	m.admin.open = false
	m.admin.blur()
}

func (m *Model) updateAdmin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	manual := m.ctrl.Snapshot().Manual()
	if manual && m.admin.focus >= 0 && key.Matches(msg, adminKeys.CursorMove) {
		return m, m.updateFieldInput(msg)
	}
	switch {
	case key.Matches(msg, adminKeys.Close):
		m.closeAdmin()
		return m, nil
	case key.Matches(msg, adminKeys.Mode):
		cmd := m.transition(func() { m.ctrl.ToggleMode() })
		m.log.Debug("mode toggled", zap.Stringer("mode", m.ctrl.Snapshot().Mode))
		m.admin.blur()
		m.admin.sync(m.ctrl.Snapshot().Remaining)
		return m, cmd
	case key.Matches(msg, adminKeys.Pause):
		cmd := m.transition(func() { m.ctrl.TogglePause() })
		m.log.Debug("pause toggled", zap.Bool("paused", m.ctrl.Snapshot().Paused))
		return m, cmd
	case key.Matches(msg, adminKeys.Reset):
		m.confirming = true
		return m, nil
	case key.Matches(msg, adminKeys.FontUp):
		m.stepFontSize(fontStep)
		return m, nil
	case key.Matches(msg, adminKeys.FontDown):
		m.stepFontSize(-fontStep)
		return m, nil
	case key.Matches(msg, adminKeys.NextField):
		if !manual {
			return m, nil
		}
		return m, m.admin.setFocus(m.admin.focus + 1)
	case key.Matches(msg, adminKeys.PrevField):
		if !manual {
			return m, nil
		}
		return m, m.admin.setFocus(m.admin.focus - 1)
	}
	if manual && m.admin.focus >= 0 {
		return m, m.updateFieldInput(msg)
	}
	return m, nil
}

// updateFieldInput feeds a key to the focused input. Non-digit runes are
// dropped; edits that leave a non-numeric or out-of-range value are
// reverted; an empty input is allowed but not applied.
func (m *Model) updateFieldInput(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyRunes && !allDigits(msg.Runes) {
		return nil
	}
	idx := m.admin.focus
	field := model.Fields[idx]
	prev := m.admin.inputs[idx].Value()
	var cmd tea.Cmd
	m.admin.inputs[idx], cmd = m.admin.inputs[idx].Update(msg)
	next := m.admin.inputs[idx].Value()
	if next == prev || next == "" {
		return cmd
	}
	v, ok := parseFieldValue(field, next)
	if !ok {
		m.admin.inputs[idx].SetValue(prev)
		return cmd
	}
	return tea.Batch(cmd, m.transition(func() {
		if err := m.ctrl.SetField(field, v); err != nil {
			m.log.Debug("manual edit rejected", zap.Error(err))
		}
	}))
}

func parseFieldValue(f model.Field, s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !f.InRange(v) {
		return 0, false
	}
	return v, true
}

func allDigits(runes []rune) bool {
	if len(runes) == 0 {
		return false
	}
	for _, r := range runes {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func (m *Model) stepFontSize(delta int) {
	next := m.ctrl.Snapshot().FontSize + delta
	if next < model.MinFontSize {
		next = model.MinFontSize
	}
	if next > model.MaxFontSize {
		next = model.MaxFontSize
	}
	if err := m.ctrl.SetFontSize(next); err != nil {
		m.log.Debug("font size rejected", zap.Int("value", next), zap.Error(err))
	}
}

func (m *Model) renderAdmin() string {
	state := m.ctrl.Snapshot()
	lines := []string{titleStyle.Render("Control Panel"), ""}

	check := "[ ]"
	desc := fmt.Sprintf("Time is computed automatically until %s.", m.targetLabel())
	if state.Manual() {
		check = "[x]"
		desc = "Adjust the time with the fields below or press 1-4 on the main screen."
	}
	lines = append(lines, fmt.Sprintf("%s Manual mode", check), mutedStyle.Render(desc), "")

	if state.Manual() {
		lines = append(lines, labelStyle.Render("Manual time"))
		cells := make([]string, 0, len(model.Fields))
		for i, f := range model.Fields {
			label := f.Label()
			style := inputStyle
			if i == m.admin.focus {
				style = focusedInputStyle
			}
			cells = append(cells, lipgloss.JoinVertical(lipgloss.Center, mutedStyle.Render(label), style.Render(m.admin.inputs[i].View())))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, spaced(cells)...), "")
	}

	lines = append(lines,
		fmt.Sprintf("Font size: %dpx", state.FontSize),
		m.admin.slider.ViewAs(fontFraction(state.FontSize)),
		"",
	)

	pauseLabel := "Pause countdown"
	if state.Paused {
		pauseLabel = "Resume countdown"
	}
	resetLabel := fmt.Sprintf("Reset to %s", m.targetLabel())
	if state.Manual() {
		resetLabel = "Zero timer"
	}
	lines = append(lines,
		buttonStyle.Render("p  "+pauseLabel),
		dangerButtonStyle.Render("r  "+resetLabel),
		closeButtonStyle.Render("esc  Close"),
	)
	return strings.Join(lines, "\n")
}

func fontFraction(fontSize int) float64 {
	return float64(fontSize-model.MinFontSize) / float64(model.MaxFontSize-model.MinFontSize)
}

func spaced(cells []string) []string {
	out := make([]string, 0, len(cells)*2)
	for i, c := range cells {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, c)
	}
	return out
}
