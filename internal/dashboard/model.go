package dashboard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renaudg/netdash/internal/config"
	"github.com/renaudg/netdash/internal/engine"
	"github.com/renaudg/netdash/internal/logger"
	"github.com/renaudg/netdash/internal/netstat"
	"github.com/renaudg/netdash/internal/nm"
	"github.com/renaudg/netdash/internal/notify"
)

// Sources bundles the external collaborators the dashboard reads from and
// acts on. Tests substitute fakes for any of them.
type Sources struct {
	Counters  netstat.CounterSource
	Addresses netstat.AddressSource
	Directory nm.Directory
	Status    nm.Status
	Actions   nm.ActionSink
	Notifier  notify.Notifier
}

// Model is the Bubble Tea model for the dashboard. It owns all engine
// state; the runtime serializes tick and key messages, so no other
// goroutine ever mutates it.
type Model struct {
	cfg     *config.Config
	sources Sources
	log     logger.Logger

	throughput *engine.ThroughputTracker
	conntrack  *engine.ConnectionTracker
	selection  *engine.Selection

	vpnNames  []string
	wifiSSIDs []string
	addresses []netstat.InterfaceAddress

	graphCycle int
	width      int
	height     int
	quitting   bool
}

// tickMsg signals a periodic metrics refresh.
type tickMsg time.Time

// pollMsg carries one tick's worth of external reads, gathered off the
// update path so the event loop never blocks on the kernel or nmcli.
type pollMsg struct {
	snapshot  netstat.Snapshot
	tunnels   []string
	ssid      string
	addresses []netstat.InterfaceAddress
}

// listsMsg carries freshly fetched browse lists (Refresh, startup).
type listsMsg struct {
	vpns  []string
	ssids []string
}

// NewModel creates a dashboard model from config and collaborators.
func NewModel(cfg *config.Config, sources Sources, log logger.Logger) Model {
	if log == nil {
		log = logger.Noop()
	}
	return Model{
		cfg:        cfg,
		sources:    sources,
		log:        log,
		throughput: engine.NewThroughputTracker(cfg.TickInterval, cfg.HistorySize, cfg.ExcludedPrefixes),
		conntrack:  engine.NewConnectionTracker(),
		selection:  engine.NewSelection(),
	}
}

// Init starts the tick timer and fetches the initial lists and state.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.pollCmd(),
		m.refreshListsCmd(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, tea.Batch(m.tickCmd(), m.pollCmd())

	case pollMsg:
		m.applyPoll(msg)

	case listsMsg:
		m.vpnNames = msg.vpns
		m.wifiSSIDs = msg.ssids
		m.selection.ClampCursor(m.vpnNames, m.wifiSSIDs)
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// tickCmd schedules the next metrics tick.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.cfg.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// pollCmd reads counters, active state, and addresses in a command
// goroutine and delivers them as one message.
func (m Model) pollCmd() tea.Cmd {
	return func() tea.Msg {
		return pollMsg{
			snapshot:  m.sources.Counters.Snapshot(),
			tunnels:   m.sources.Status.ActiveTunnels(),
			ssid:      m.sources.Status.ActiveSSID(),
			addresses: m.sources.Addresses.ActiveAddresses(),
		}
	}
}

// refreshListsCmd re-fetches both browse lists from the directory.
func (m Model) refreshListsCmd() tea.Cmd {
	return func() tea.Msg {
		return listsMsg{
			vpns:  m.sources.Directory.ListTunnels(),
			ssids: m.sources.Directory.ListWifiNetworks(),
		}
	}
}

// applyPoll feeds one poll's data through the trackers and raises
// notifications for tunnel transitions.
func (m *Model) applyPoll(msg pollMsg) {
	m.throughput.Update(msg.snapshot)
	m.addresses = msg.addresses

	events := m.conntrack.Observe(msg.tunnels, msg.ssid)
	for _, ev := range events {
		switch ev.Kind {
		case engine.TunnelDisconnected:
			m.log.Info("tunnel down: %s", ev.Tunnel)
			m.sources.Notifier.Notify("VPN Disconnected",
				"Tunnel '"+ev.Tunnel+"' closed.", notify.UrgencyCritical)
		case engine.TunnelConnected:
			m.log.Info("tunnel up: %s", ev.Tunnel)
			m.sources.Notifier.Notify("VPN Connected",
				"Tunnel '"+ev.Tunnel+"' active.", notify.UrgencyNormal)
		}
	}
}

// dispatch hands an engine action to the matching collaborator.
func (m *Model) dispatch(action engine.Action) tea.Cmd {
	switch action := action.(type) {
	case engine.SubmitSecret:
		kind := nm.KindTunnel
		if action.From == engine.ModeBrowseWiFi {
			kind = nm.KindWifi
		}
		m.sources.Actions.Connect(kind, action.Target, action.Secret)

	case engine.RequestDisconnect:
		m.sources.Actions.Disconnect(action.Name)

	case engine.RequestRefresh:
		return m.refreshListsCmd()
	}
	return nil
}
