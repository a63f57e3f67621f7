package tui

import "github.com/charmbracelet/bubbles/key"

type mainKeyMap struct {
	Admin  key.Binding
	Select key.Binding
	Quit   key.Binding
}

func (k mainKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Admin, k.Select, k.Quit}
}

func (k mainKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type adminKeyMap struct {
	Mode       key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	FontUp     key.Binding
	FontDown   key.Binding
	CursorMove key.Binding
	Pause      key.Binding
	Reset      key.Binding
	Close      key.Binding
}

func (k adminKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mode, k.NextField, k.FontDown, k.FontUp, k.Pause, k.Reset, k.Close}
}

func (k adminKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type confirmKeyMap struct {
	Yes key.Binding
	No  key.Binding
}

func (k confirmKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Yes, k.No}
}

func (k confirmKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var (
	mainKeys = mainKeyMap{
		Admin:  key.NewBinding(key.WithKeys("a", "s"), key.WithHelp("a", "control panel")),
		Select: key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "edit field (manual)")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	adminKeys = adminKeyMap{
		Mode:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "manual mode")),
		NextField:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		FontUp:     key.NewBinding(key.WithKeys("+", "=", "right"), key.WithHelp("+", "bigger")),
		FontDown:   key.NewBinding(key.WithKeys("-", "_", "left"), key.WithHelp("-", "smaller")),
		CursorMove: key.NewBinding(key.WithKeys("left", "right", "home", "end")),
		Pause:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause/resume")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Close:      key.NewBinding(key.WithKeys("esc", "c"), key.WithHelp("esc", "close")),
	}
	confirmKeys = confirmKeyMap{
		Yes: key.NewBinding(key.WithKeys("y", "Y", "enter"), key.WithHelp("y", "confirm")),
		No:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "cancel")),
	}
)
