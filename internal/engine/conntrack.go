package engine

import "sort"

// EventKind distinguishes tunnel transition events.
type EventKind int

const (
	TunnelDisconnected EventKind = iota
	TunnelConnected
)

// ConnectionEvent is a one-shot tunnel transition raised by the tracker.
type ConnectionEvent struct {
	Kind   EventKind
	Tunnel string
}

// ConnectionTracker diffs successive views of NetworkManager's active state
// and raises a transition event exactly once per tunnel state change. Wi-Fi
// association changes are tracked but deliberately not raised as events,
// matching the tool's long-standing behavior.
type ConnectionTracker struct {
	active map[string]struct{}
	ssid   string
}

// NewConnectionTracker creates an empty tracker; the first Observe call
// raises Connected events for every tunnel already active.
func NewConnectionTracker() *ConnectionTracker {
	return &ConnectionTracker{active: make(map[string]struct{})}
}

// Observe ingests the current active tunnel names and SSID and returns the
// transition events since the previous observation. Disconnects are emitted
// before connects; within each group events are sorted by tunnel name so a
// poll's output is deterministic.
func (c *ConnectionTracker) Observe(tunnels []string, ssid string) []ConnectionEvent {
	next := make(map[string]struct{}, len(tunnels))
	for _, t := range tunnels {
		if t != "" {
			next[t] = struct{}{}
		}
	}

	var gone, came []string
	for name := range c.active {
		if _, ok := next[name]; !ok {
			gone = append(gone, name)
		}
	}
	for name := range next {
		if _, ok := c.active[name]; !ok {
			came = append(came, name)
		}
	}
	sort.Strings(gone)
	sort.Strings(came)

	events := make([]ConnectionEvent, 0, len(gone)+len(came))
	for _, name := range gone {
		events = append(events, ConnectionEvent{Kind: TunnelDisconnected, Tunnel: name})
	}
	for _, name := range came {
		events = append(events, ConnectionEvent{Kind: TunnelConnected, Tunnel: name})
	}

	c.active = next
	c.ssid = ssid
	return events
}

// IsActive reports whether a tunnel was active at the last observation.
func (c *ConnectionTracker) IsActive(tunnel string) bool {
	_, ok := c.active[tunnel]
	return ok
}

// ActiveSSID returns the Wi-Fi network associated at the last observation,
// or empty if none.
func (c *ConnectionTracker) ActiveSSID() string {
	return c.ssid
}
