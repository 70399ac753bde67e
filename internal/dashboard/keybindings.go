package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renaudg/netdash/internal/engine"
)

// keyMap groups the dashboard's key bindings for the help footer.
type keyMap struct {
	Quit       key.Binding
	ModeToggle key.Binding
	Up         key.Binding
	Down       key.Binding
	Confirm    key.Binding
	Disconnect key.Binding
	Refresh    key.Binding
	CycleGraph key.Binding
	AddVPN     key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	ModeToggle: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "mode")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "connect")),
	Disconnect: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "disconnect")),
	Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rescan")),
	CycleGraph: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "graph")),
	AddVPN:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add vpn")),
}

// helpBindings is the footer order.
var helpBindings = []key.Binding{
	keys.ModeToggle, keys.CycleGraph, keys.AddVPN,
	keys.Confirm, keys.Disconnect, keys.Refresh, keys.Quit,
}

// handleKey translates keyboard input into engine events. While a secret is
// being entered every printable key belongs to the buffer, so only the
// secret-entry controls are recognized there; quit included among them
// would make 'q' untypable in a password.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.selection.Mode() == engine.ModeSecretEntry {
		return m.handleSecretKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.ModeToggle):
		m.apply(engine.ModeToggle{})

	case key.Matches(msg, keys.Down):
		m.apply(engine.CursorDown{})

	case key.Matches(msg, keys.Up):
		m.apply(engine.CursorUp{})

	case key.Matches(msg, keys.Confirm):
		m.apply(engine.Confirm{})

	case key.Matches(msg, keys.Disconnect):
		m.apply(engine.Disconnect{})

	case key.Matches(msg, keys.Refresh):
		return m, m.apply(engine.Refresh{})

	case key.Matches(msg, keys.CycleGraph):
		m.graphCycle++

	case key.Matches(msg, keys.AddVPN):
		m.sources.Actions.OpenEditor()
	}

	return m, nil
}

// handleSecretKey routes input while the secret overlay is open.
func (m Model) handleSecretKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m, m.apply(engine.Confirm{})

	case tea.KeyEsc:
		m.apply(engine.Cancel{})

	case tea.KeyBackspace:
		m.apply(engine.Backspace{})

	case tea.KeySpace:
		m.apply(engine.CharInput{Rune: ' '})

	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.apply(engine.CharInput{Rune: r})
		}
	}

	return m, nil
}

// apply feeds one event to the selection machine and dispatches any
// resulting action.
func (m *Model) apply(ev engine.Event) tea.Cmd {
	action := m.selection.Handle(ev, m.vpnNames, m.wifiSSIDs)
	if action == nil {
		return nil
	}
	return m.dispatch(action)
}
