// Package tui provides the Bubble Tea countdown interface.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/countdown/internal/confetti"
	"github.com/verte-zerg/countdown/internal/countdown"
	"github.com/verte-zerg/countdown/internal/model"
)

const (
	colorBlue = "#0857b3"
	colorCyan = "#54d2e0"
)

var (
	titleStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBlue)).Bold(true)
	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")).Bold(true)
	mutedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	celebrationStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorCyan)).Bold(true).Padding(1, 4)
	pausedBadgeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#EF4444")).Padding(0, 1)
	manualBadgeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#A855F7")).Padding(0, 1)
	inputStyle        = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).BorderForeground(lipgloss.Color("#4A4A4A")).Padding(0, 1)
	focusedInputStyle = inputStyle.BorderForeground(lipgloss.Color(colorBlue))
	buttonStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color(colorBlue)).Padding(0, 1).MarginBottom(1)
	dangerButtonStyle = buttonStyle.Background(lipgloss.Color("#DC2626"))
	closeButtonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")).Background(lipgloss.Color("#E5E7EB")).Padding(0, 1)
	blockStyle        = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A")).
				Padding(0, 2)
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color(colorBlue)).
			Padding(1, 2)
	digitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBlue)).Bold(true)
)

const blockGap = 2

type tickMsg struct {
	gen uint64
	at  time.Time
}

type frameMsg struct {
	gen uint64
}

// ReloadMsg carries display settings reloaded from the config file. Empty
// strings restore the defaults derived from the target.
type ReloadMsg struct {
	Target      time.Time
	Title       string
	Celebration string
}

// Options configures a Model.
type Options struct {
	Title       string
	Celebration string
	Logger      *zap.Logger
	Width       int
	Height      int
	Seed        int64
}

// Model implements the Bubble Tea countdown UI.
type Model struct {
	ctrl        *countdown.Controller
	log         *zap.Logger
	title       string
	celebration string

	width  int
	height int

	celebrating bool
	confetti    *confetti.Field
	frameGen    uint64
	seed        int64

	admin      adminPanel
	confirming bool
	help       help.Model
}

// NewModel constructs a countdown TUI model around ctrl.
func NewModel(ctrl *countdown.Controller, opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m := &Model{
		ctrl:        ctrl,
		log:         log.Named("tui"),
		title:       opts.Title,
		celebration: opts.Celebration,
		width:       opts.Width,
		height:      opts.Height,
		seed:        seed,
		admin:       newAdminPanel(),
		help:        help.New(),
	}
	state := ctrl.Snapshot()
	if !state.Manual() && !state.Paused {
		// Automatic time is derived from the clock, so refresh it before the
		// first frame instead of showing the stored value for a second.
		ctrl.Tick()
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.scheduleTick(), m.syncCelebration())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.confetti != nil {
			m.confetti.Resize(m.width, m.height)
		}
		return m, nil
	case tickMsg:
		return m, m.handleTick(msg)
	case frameMsg:
		if msg.gen != m.frameGen || !m.celebrating || m.confetti == nil {
			return m, nil
		}
		m.confetti.Step()
		if m.confetti.Active() == 0 {
			return m, nil
		}
		return m, m.frameCmd()
	case ReloadMsg:
		return m, m.handleReload(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.confirming {
			return m, m.updateConfirm(msg)
		}
		if m.admin.open {
			return m.updateAdmin(msg)
		}
		return m.updateMain(msg)
	}
	var cmd tea.Cmd
	if m.admin.open && m.admin.focus >= 0 {
		m.admin.inputs[m.admin.focus], cmd = m.admin.inputs[m.admin.focus].Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return m.plainView()
	}
	switch {
	case m.confirming:
		return m.renderModal(m.renderConfirm(), m.help.View(confirmKeys))
	case m.admin.open:
		return m.renderModal(m.renderAdmin(), m.help.View(adminKeys))
	case m.celebrating:
		return m.renderCelebration()
	default:
		return m.renderCountdown()
	}
}

func (m *Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, mainKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, mainKeys.Admin):
		return m, m.openAdmin(-1)
	case key.Matches(msg, mainKeys.Select):
		idx, err := strconv.Atoi(msg.String())
		if err != nil {
			return m, nil
		}
		return m, m.selectField(model.Fields[idx-1])
	}
	return m, nil
}

// selectField handles a click on a countdown block. Only manual mode reacts.
func (m *Model) selectField(f model.Field) tea.Cmd {
	if !m.ctrl.Snapshot().Manual() {
		return nil
	}
	m.log.Debug("block selected", zap.Stringer("field", f))
	return m.openAdmin(int(f))
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.admin.open || m.confirming || m.celebrating {
		return nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	for _, box := range m.blockBoxes() {
		if box.contains(msg.X, msg.Y) {
			return m.selectField(box.field)
		}
	}
	return nil
}

func (m *Model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	var answer bool
	switch {
	case key.Matches(msg, confirmKeys.Yes):
		answer = true
	case key.Matches(msg, confirmKeys.No):
		answer = false
	default:
		return nil
	}
	m.confirming = false
	var applied bool
	cmd := m.transition(func() {
		applied = m.ctrl.Reset(func() bool { return answer })
	})
	m.log.Debug("reset answered", zap.Bool("applied", applied))
	if applied {
		m.admin.blur()
		m.admin.sync(m.ctrl.Snapshot().Remaining)
	}
	return cmd
}

// transition runs fn and, when it changed a tick dependency, schedules a new
// tick. The tick scheduled under the old generation is dropped on arrival.
func (m *Model) transition(fn func()) tea.Cmd {
	before := m.ctrl.TickGeneration()
	fn()
	var cmds []tea.Cmd
	if m.ctrl.TickGeneration() != before {
		cmds = append(cmds, m.scheduleTick())
	}
	cmds = append(cmds, m.syncCelebration())
	return tea.Batch(cmds...)
}

func (m *Model) scheduleTick() tea.Cmd {
	if m.ctrl.Snapshot().Paused {
		return nil
	}
	gen := m.ctrl.TickGeneration()
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if msg.gen != m.ctrl.TickGeneration() {
		return nil
	}
	m.ctrl.Tick()
	if m.admin.open {
		m.admin.sync(m.ctrl.Snapshot().Remaining)
	}
	return tea.Batch(m.scheduleTick(), m.syncCelebration())
}

func (m *Model) handleReload(msg ReloadMsg) tea.Cmd {
	m.title = msg.Title
	m.celebration = msg.Celebration
	if msg.Target.IsZero() || msg.Target.Equal(m.ctrl.Target()) {
		return nil
	}
	m.log.Info("target reloaded", zap.Time("target", msg.Target))
	return m.transition(func() { m.ctrl.SetTarget(msg.Target) })
}

// syncCelebration starts the zero-state when the countdown reaches zero and
// re-arms it once a transition yields a non-zero time again.
func (m *Model) syncCelebration() tea.Cmd {
	finished := m.ctrl.Finished()
	switch {
	case finished && !m.celebrating:
		m.celebrating = true
		m.frameGen++
		m.confetti = confetti.New(m.width, m.height, confetti.DefaultParams(), m.seed)
		m.log.Info("countdown finished")
		return m.frameCmd()
	case !finished && m.celebrating:
		m.celebrating = false
		m.frameGen++
		m.confetti = nil
	}
	return nil
}

// frameCmd schedules the next confetti frame. Frames from an earlier
// celebration carry an older generation and are dropped.
func (m *Model) frameCmd() tea.Cmd {
	gen := m.frameGen
	return tea.Tick(time.Second/confetti.FPS, func(time.Time) tea.Msg { return frameMsg{gen: gen} })
}

func (m *Model) targetLabel() string {
	return strconv.Itoa(m.ctrl.Target().Year())
}

func (m *Model) titleText() string {
	if m.title != "" {
		return m.title
	}
	return "Countdown to " + m.targetLabel()
}

func (m *Model) celebrationText() string {
	if m.celebration != "" {
		return m.celebration
	}
	return fmt.Sprintf("HAPPY %s!", m.targetLabel())
}

func (m *Model) plainView() string {
	if m.celebrating {
		return m.celebrationText()
	}
	return formatRemaining(m.ctrl.Snapshot().Remaining)
}

func formatRemaining(t model.TimeRemaining) string {
	parts := make([]string, 0, len(model.Fields))
	for _, f := range model.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", padValue(t.Get(f)), f.Label()))
	}
	return strings.Join(parts, "  ")
}

// padValue zero-pads to two digits; wider values are kept whole.
func padValue(v int) string {
	return fmt.Sprintf("%02d", v)
}

func (m *Model) renderModal(body, helpLine string) string {
	box := modalStyle.Width(modalWidth(m.width)).Render(body)
	content := lipgloss.JoinVertical(lipgloss.Center, box, footerStyle.Render(helpLine))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderConfirm() string {
	return strings.Join([]string{
		titleStyle.Render("Reset countdown"),
		"",
		"Are you sure you want to reset the countdown?",
		mutedStyle.Render("y to confirm / n to cancel"),
	}, "\n")
}

func (m *Model) renderBadges() string {
	state := m.ctrl.Snapshot()
	var badges []string
	if state.Paused {
		badges = append(badges, pausedBadgeStyle.Render("PAUSED"))
	}
	if state.Manual() {
		badges = append(badges, manualBadgeStyle.Render("MANUAL"))
	}
	return strings.Join(badges, " ")
}

func (m *Model) renderFooter() string {
	return footerStyle.Render(m.help.View(mainKeys))
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 72))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
