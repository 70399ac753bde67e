package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renaudg/netdash/internal/engine"
)

// Color palette using ANSI color codes for terminal compatibility.
const (
	ColorVPN      lipgloss.Color = "6" // Cyan - VPN list, tunnel lanes
	ColorWifi     lipgloss.Color = "3" // Yellow - Wi-Fi list, wireless lanes
	ColorPhysical lipgloss.Color = "2" // Green - wired lanes
	ColorSecret   lipgloss.Color = "5" // Magenta - secret entry overlay
	ColorMuted    lipgloss.Color = "8" // Gray (bright black) - footer, hints
	ColorText     lipgloss.Color = "7" // White/default
)

// Panel and widget styles shared across the view.
var (
	ListPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			Padding(0, 1)

	InterfacesPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				Padding(0, 1)

	GraphPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Foreground(ColorMuted).
			Padding(0, 1)

	SecretOverlayStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(ColorSecret).
				Padding(1, 4).
				Align(lipgloss.Center)

	PanelTitleStyle = lipgloss.NewStyle().Bold(true)

	CursorRowStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Bold(true)

	ActiveVPNStyle   = lipgloss.NewStyle().Foreground(ColorVPN)
	ActiveWifiStyle  = lipgloss.NewStyle().Foreground(ColorWifi)
	PlaceholderStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)

// CursorSymbol marks the highlighted list row.
const CursorSymbol = ">> "

// LaneColor maps an interface lane to its display color.
func LaneColor(lane engine.Lane) lipgloss.Color {
	switch lane {
	case engine.LaneTunnel:
		return ColorVPN
	case engine.LaneWireless:
		return ColorWifi
	case engine.LanePhysical:
		return ColorPhysical
	default:
		return ColorText
	}
}
