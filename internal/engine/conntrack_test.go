package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveInitialTunnelsConnect(t *testing.T) {
	tr := NewConnectionTracker()

	events := tr.Observe([]string{"home"}, "")

	require.Len(t, events, 1)
	assert.Equal(t, ConnectionEvent{Kind: TunnelConnected, Tunnel: "home"}, events[0])
}

func TestObserveDiff(t *testing.T) {
	tr := NewConnectionTracker()
	tr.Observe([]string{"A", "B"}, "")

	events := tr.Observe([]string{"B", "C"}, "")

	// Exactly one disconnect for A, one connect for C, in that order,
	// and nothing for B.
	require.Len(t, events, 2)
	assert.Equal(t, ConnectionEvent{Kind: TunnelDisconnected, Tunnel: "A"}, events[0])
	assert.Equal(t, ConnectionEvent{Kind: TunnelConnected, Tunnel: "C"}, events[1])
}

func TestObserveStableStateEmitsNothing(t *testing.T) {
	tr := NewConnectionTracker()
	tr.Observe([]string{"home"}, "")

	// The tunnel stays up across many polls; the connect event fired once.
	for i := 0; i < 5; i++ {
		assert.Empty(t, tr.Observe([]string{"home"}, ""))
	}
}

func TestObserveDisconnectsBeforeConnectsSorted(t *testing.T) {
	tr := NewConnectionTracker()
	tr.Observe([]string{"z-old", "a-old"}, "")

	events := tr.Observe([]string{"b-new", "a-new"}, "")

	require.Len(t, events, 4)
	assert.Equal(t, ConnectionEvent{Kind: TunnelDisconnected, Tunnel: "a-old"}, events[0])
	assert.Equal(t, ConnectionEvent{Kind: TunnelDisconnected, Tunnel: "z-old"}, events[1])
	assert.Equal(t, ConnectionEvent{Kind: TunnelConnected, Tunnel: "a-new"}, events[2])
	assert.Equal(t, ConnectionEvent{Kind: TunnelConnected, Tunnel: "b-new"}, events[3])
}

func TestSSIDTrackedButNotNotified(t *testing.T) {
	tr := NewConnectionTracker()

	events := tr.Observe(nil, "cafe-wifi")
	assert.Empty(t, events, "SSID changes do not raise events")
	assert.Equal(t, "cafe-wifi", tr.ActiveSSID())

	events = tr.Observe(nil, "home-wifi")
	assert.Empty(t, events)
	assert.Equal(t, "home-wifi", tr.ActiveSSID())
}

func TestIsActive(t *testing.T) {
	tr := NewConnectionTracker()
	tr.Observe([]string{"office"}, "")

	assert.True(t, tr.IsActive("office"))
	assert.False(t, tr.IsActive("home"))

	tr.Observe(nil, "")
	assert.False(t, tr.IsActive("office"))
}

func TestObserveIgnoresEmptyNames(t *testing.T) {
	tr := NewConnectionTracker()

	events := tr.Observe([]string{"", "home"}, "")

	require.Len(t, events, 1)
	assert.Equal(t, "home", events[0].Tunnel)
}
