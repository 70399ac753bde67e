package nm

import (
	"sort"
	"strings"

	"github.com/renaudg/netdash/internal/logger"
)

// ConnectKind selects the nmcli connect flavor.
type ConnectKind int

const (
	KindTunnel ConnectKind = iota
	KindWifi
)

// Directory lists the names the user can browse. Listings are refreshed on
// demand, not every tick.
type Directory interface {
	ListTunnels() []string
	ListWifiNetworks() []string
}

// Status reports what is currently connected.
type Status interface {
	ActiveTunnels() []string
	ActiveSSID() string
}

// ActionSink performs connection changes. Calls are fire-and-forget; no
// result is observed and failures are never propagated.
type ActionSink interface {
	Connect(kind ConnectKind, name, secret string)
	Disconnect(name string)
	OpenEditor()
}

// Client implements Directory, Status, and ActionSink over nmcli.
type Client struct {
	run Runner
	log logger.Logger
}

// NewClient creates a Client using the given runner.
func NewClient(run Runner, log logger.Logger) *Client {
	if log == nil {
		log = logger.Noop()
	}
	return &Client{run: run, log: log}
}

// ListTunnels returns the names of all configured VPN and WireGuard
// connections, sorted. A failing nmcli yields an empty list.
func (c *Client) ListTunnels() []string {
	out, err := c.run.Output("nmcli", "-t", "-f", "NAME,TYPE", "connection", "show")
	if err != nil {
		c.log.Debug("nmcli connection show failed: %v", err)
		return nil
	}
	return parseTunnelList(string(out))
}

// ListWifiNetworks returns visible SSIDs, sorted and deduplicated.
func (c *Client) ListWifiNetworks() []string {
	out, err := c.run.Output("nmcli", "-t", "-f", "SSID", "dev", "wifi", "list")
	if err != nil {
		c.log.Debug("nmcli wifi list failed: %v", err)
		return nil
	}
	return parseSSIDList(string(out))
}

// ActiveTunnels returns the names of currently active VPN and WireGuard
// connections.
func (c *Client) ActiveTunnels() []string {
	out, err := c.run.Output("nmcli", "-t", "-f", "NAME,TYPE", "con", "show", "--active")
	if err != nil {
		c.log.Debug("nmcli active query failed: %v", err)
		return nil
	}
	return parseTunnelList(string(out))
}

// ActiveSSID returns the SSID the Wi-Fi device is associated with, or empty.
func (c *Client) ActiveSSID() string {
	out, err := c.run.Output("nmcli", "-t", "-f", "ACTIVE,SSID", "dev", "wifi")
	if err != nil {
		c.log.Debug("nmcli ssid query failed: %v", err)
		return ""
	}
	return parseActiveSSID(string(out))
}

// Connect brings up a connection, piping the secret to nmcli's --ask prompt.
func (c *Client) Connect(kind ConnectKind, name, secret string) {
	var err error
	switch kind {
	case KindWifi:
		err = c.run.SpawnWithInput(secret, "nmcli", "dev", "wifi", "connect", name, "--ask")
	default:
		err = c.run.SpawnWithInput(secret, "nmcli", "con", "up", "id", name, "--ask")
	}
	if err != nil {
		c.log.Debug("connect %q spawn failed: %v", name, err)
	}
}

// Disconnect tears down the named connection.
func (c *Client) Disconnect(name string) {
	if err := c.run.Spawn("nmcli", "con", "down", "id", name); err != nil {
		c.log.Debug("disconnect %q spawn failed: %v", name, err)
	}
}

// OpenEditor launches the graphical connection editor.
func (c *Client) OpenEditor() {
	if err := c.run.Spawn("nm-connection-editor"); err != nil {
		c.log.Debug("editor spawn failed: %v", err)
	}
}

// parseTunnelList extracts connection names of type vpn or wireguard from
// nmcli's terse NAME:TYPE output, sorted by name.
func parseTunnelList(out string) []string {
	var names []string
	for _, line := range strings.Split(out, "\n") {
		name, typ, ok := strings.Cut(line, ":")
		if !ok || name == "" {
			continue
		}
		if typ == "vpn" || typ == "wireguard" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// parseSSIDList extracts non-empty SSIDs from nmcli's terse output, sorted
// and deduplicated. nmcli prints "--" for hidden networks; those are
// dropped.
func parseSSIDList(out string) []string {
	seen := make(map[string]struct{})
	var ssids []string
	for _, line := range strings.Split(out, "\n") {
		if line == "" || line == "--" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		ssids = append(ssids, line)
	}
	sort.Strings(ssids)
	return ssids
}

// parseActiveSSID finds the "yes:<ssid>" line in nmcli's ACTIVE:SSID output.
func parseActiveSSID(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if ssid, ok := strings.CutPrefix(line, "yes:"); ok {
			return ssid
		}
	}
	return ""
}
