package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/renaudg/netdash/internal/engine"
)

// Layout proportions, top to bottom: lists+interfaces, graph, footer.
const (
	footerHeight   = 3
	minPanelHeight = 4
)

// render composes the full dashboard frame.
func (m Model) render() string {
	width := m.width
	if width < 40 {
		width = 80
	}
	height := m.height
	if height < 15 {
		height = 24
	}

	topHeight := height * 6 / 10
	graphHeight := height - topHeight - footerHeight
	if graphHeight < minPanelHeight {
		graphHeight = minPanelHeight
	}

	listWidth := width * 4 / 10
	ifaceWidth := width - listWidth

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderListPanel(listWidth, topHeight),
		m.renderInterfacesPanel(ifaceWidth, topHeight),
	)
	frame := lipgloss.JoinVertical(lipgloss.Left,
		top,
		m.renderGraphPanel(width, graphHeight),
		m.renderFooter(width),
	)

	if m.selection.Mode() == engine.ModeSecretEntry {
		return m.renderSecretOverlay(width, height)
	}
	return frame
}

// renderListPanel renders the active browse list (VPN or Wi-Fi).
func (m Model) renderListPanel(width, height int) string {
	browsingWifi := m.selection.Mode() == engine.ModeBrowseWiFi

	title := " [ VPN LIST ] "
	names := m.vpnNames
	borderColor := ColorVPN
	if browsingWifi {
		title = " [ WIFI SCAN ] "
		names = m.wifiSSIDs
		borderColor = ColorWifi
	}

	var rows []string
	for i, name := range names {
		var marker string
		var style lipgloss.Style
		if browsingWifi {
			if name == m.conntrack.ActiveSSID() {
				marker, style = "📶", ActiveWifiStyle
			} else {
				marker, style = "  ", lipgloss.NewStyle()
			}
		} else {
			if m.conntrack.IsActive(name) {
				marker, style = "●", ActiveVPNStyle
			} else {
				marker, style = "○", lipgloss.NewStyle()
			}
		}

		row := fmt.Sprintf(" %s %s", marker, name)
		if i == m.selection.Cursor() {
			row = CursorRowStyle.Render(CursorSymbol + row)
		} else {
			row = strings.Repeat(" ", len(CursorSymbol)) + style.Render(row)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		rows = append(rows, PlaceholderStyle.Render(" (empty - press r to rescan)"))
	}

	body := PanelTitleStyle.Render(title) + "\n" + strings.Join(rows, "\n")
	return ListPanelStyle.
		BorderForeground(borderColor).
		Width(width - 2).
		Height(height - 2).
		Render(body)
}

// renderInterfacesPanel lists interfaces holding an address, with their
// current throughput.
func (m Model) renderInterfacesPanel(width, height int) string {
	var rows []string
	for _, ia := range m.addresses {
		lane := engine.ClassifyLane(ia.Name)
		speed := ""
		if s := m.throughput.Sample(ia.Name); s != nil {
			speed = fmt.Sprintf("  %7.2f Mb/s", s.CurrentSpeed())
		}
		line := fmt.Sprintf(" • %-15s: %s%s", ia.Name, ia.Address, speed)
		rows = append(rows, lipgloss.NewStyle().Foreground(LaneColor(lane)).Render(line))
	}
	if len(rows) == 0 {
		rows = append(rows, PlaceholderStyle.Render(" no active interfaces"))
	}

	body := PanelTitleStyle.Render(" [ ACTIVE INTERFACES ] ") + "\n" + strings.Join(rows, "\n")
	return InterfacesPanelStyle.
		Width(width - 2).
		Height(height - 2).
		Render(body)
}

// renderGraphPanel renders the single scrolling throughput graph. Which
// series it shows is decided by SelectGraphSeries; with no addressed
// interface it shows a placeholder.
func (m Model) renderGraphPanel(width, height int) string {
	addressed := make(map[string]bool, len(m.addresses))
	for _, ia := range m.addresses {
		addressed[ia.Name] = true
	}

	sample := SelectGraphSeries(m.throughput.Samples(), addressed, m.graphCycle)
	innerWidth := width - 4
	innerHeight := height - 3
	if innerHeight < 1 {
		innerHeight = 1
	}

	if sample == nil {
		body := lipgloss.Place(innerWidth, innerHeight, lipgloss.Center, lipgloss.Center,
			PlaceholderStyle.Render("waiting for an active address..."))
		return GraphPanelStyle.Width(width - 2).Height(height - 2).Render(body)
	}

	points := sample.History()
	xMax := m.throughput.Seq()
	yMax := WindowMax(points, xMax-GraphWindow)

	title := fmt.Sprintf(" %s - %.2f Mb/s ", sample.Name, sample.CurrentSpeed())
	scale := PlaceholderStyle.Render(fmt.Sprintf("%.1f Mb/s max", yMax))
	graph := RenderBrailleGraph(points, innerWidth, innerHeight-1, xMax, yMax, LaneColor(sample.Lane))

	body := PanelTitleStyle.Render(title) + "  " + scale + "\n" + graph
	return GraphPanelStyle.Width(width - 2).Height(height - 2).Render(body)
}

// renderFooter renders the keyboard help bar.
func (m Model) renderFooter(width int) string {
	var hints []string
	for _, b := range helpBindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("[%s] %s", strings.ToUpper(h.Key), h.Desc))
	}
	return FooterStyle.Width(width - 2).Render(" " + strings.Join(hints, " | ") + " ")
}

// renderSecretOverlay renders the centered masked secret prompt. The buffer
// itself stays inside the selection machine; only its length leaks out, as
// asterisks.
func (m Model) renderSecretOverlay(width, height int) string {
	masked := strings.Repeat("*", m.selection.SecretLen())
	box := SecretOverlayStyle.Render(
		PanelTitleStyle.Render("Password Required") + "\n\n" +
			m.selection.Target() + "\n" +
			masked + "▏",
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
