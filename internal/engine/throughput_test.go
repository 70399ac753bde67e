package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renaudg/netdash/internal/netstat"
)

func snap(pairs map[string]uint64) netstat.Snapshot {
	s := make(netstat.Snapshot, len(pairs))
	for name, rx := range pairs {
		s[name] = netstat.Counters{Rx: rx}
	}
	return s
}

func TestClassifyLane(t *testing.T) {
	tests := []struct {
		name     string
		expected Lane
	}{
		{"eth0", LanePhysical},
		{"enp3s0", LanePhysical},
		{"wlp2s0", LaneWireless},
		{"wlan0", LaneWireless},
		{"tun0", LaneTunnel},
		{"tap1", LaneTunnel},
		{"wg0", LaneTunnel},
		{"ppp0", LaneTunnel},
		{"virbr0", LaneOther},
		{"lo", LaneOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyLane(tt.name))
		})
	}
}

func TestFirstPollIsBaselineOnly(t *testing.T) {
	tr := NewThroughputTracker(500*time.Millisecond, 300, nil)

	tr.Update(snap(map[string]uint64{"eth0": 1000}))

	assert.Empty(t, tr.Samples(), "first poll must produce no samples")
	assert.Equal(t, 0.0, tr.Seq())
}

func TestThroughputComputation(t *testing.T) {
	// 655360 bytes over a 0.5s tick is exactly 10 Mbps.
	tr := NewThroughputTracker(500*time.Millisecond, 300, nil)

	tr.Update(snap(map[string]uint64{"eth0": 1000}))
	tr.Update(snap(map[string]uint64{"eth0": 1000 + 655360}))

	sample := tr.Sample("eth0")
	require.NotNil(t, sample)
	assert.InDelta(t, 10.0, sample.CurrentSpeed(), 1e-9)
	require.Len(t, sample.History(), 1)
	assert.Equal(t, 1.0, sample.History()[0].Seq)
}

func TestCounterResetYieldsZero(t *testing.T) {
	tr := NewThroughputTracker(500*time.Millisecond, 300, nil)

	tr.Update(snap(map[string]uint64{"eth0": 5000000}))
	tr.Update(snap(map[string]uint64{"eth0": 100})) // wrapped or reset

	sample := tr.Sample("eth0")
	require.NotNil(t, sample)
	assert.Equal(t, 0.0, sample.CurrentSpeed(), "reset counter must clamp to zero, never negative")
}

func TestHistoryBoundAndOrdering(t *testing.T) {
	tr := NewThroughputTracker(500*time.Millisecond, 300, nil)

	rx := uint64(0)
	for i := 0; i < 350; i++ {
		tr.Update(snap(map[string]uint64{"eth0": rx}))
		rx += 1024
	}

	sample := tr.Sample("eth0")
	require.NotNil(t, sample)
	history := sample.History()
	assert.LessOrEqual(t, len(history), 300)

	for i := 1; i < len(history); i++ {
		assert.Greater(t, history[i].Seq, history[i-1].Seq, "sequence numbers must be strictly increasing")
	}
	for _, p := range history {
		assert.GreaterOrEqual(t, p.Mbps, 0.0)
	}
}

func TestSmallHistoryEvictsOldest(t *testing.T) {
	tr := NewThroughputTracker(500*time.Millisecond, 5, nil)

	for i := 0; i < 10; i++ {
		tr.Update(snap(map[string]uint64{"eth0": uint64(i * 1000)}))
	}

	history := tr.Sample("eth0").History()
	require.Len(t, history, 5)
	assert.Equal(t, 5.0, history[0].Seq, "oldest entries drop from the head")
	assert.Equal(t, 9.0, history[4].Seq)
}

func TestExcludedPrefixesNeverTracked(t *testing.T) {
	tr := NewThroughputTracker(500*time.Millisecond, 300, []string{"lo", "docker", "br-", "veth"})

	counters := map[string]uint64{
		"lo":      1000,
		"docker0": 2000,
		"br-12ab": 3000,
		"veth9fc": 4000,
		"eth0":    5000,
	}
	tr.Update(snap(counters))
	for name := range counters {
		counters[name] += 1024
	}
	tr.Update(snap(counters))

	require.Len(t, tr.Samples(), 1)
	assert.Equal(t, "eth0", tr.Samples()[0].Name)
}

func TestVanishedInterfaceIsRemoved(t *testing.T) {
	tr := NewThroughputTracker(500*time.Millisecond, 300, nil)

	tr.Update(snap(map[string]uint64{"eth0": 0, "tun0": 0}))
	tr.Update(snap(map[string]uint64{"eth0": 1024, "tun0": 1024}))
	require.NotNil(t, tr.Sample("tun0"))

	// tun0 disappears from the source; it must be gone within one tick.
	tr.Update(snap(map[string]uint64{"eth0": 2048}))
	assert.Nil(t, tr.Sample("tun0"))
	assert.NotNil(t, tr.Sample("eth0"))
}

func TestNewInterfaceGetsBaselineBeforeFirstPoint(t *testing.T) {
	tr := NewThroughputTracker(500*time.Millisecond, 300, nil)

	tr.Update(snap(map[string]uint64{"eth0": 0}))
	tr.Update(snap(map[string]uint64{"eth0": 1024, "wg0": 500}))

	// wg0 only appeared this poll: baseline recorded, no sample yet.
	assert.Nil(t, tr.Sample("wg0"))

	tr.Update(snap(map[string]uint64{"eth0": 2048, "wg0": 1500}))
	sample := tr.Sample("wg0")
	require.NotNil(t, sample)
	assert.Equal(t, LaneTunnel, sample.Lane)
	assert.Len(t, sample.History(), 1)
}

func TestLaneFixedAtCreation(t *testing.T) {
	tr := NewThroughputTracker(500*time.Millisecond, 300, nil)

	tr.Update(snap(map[string]uint64{"wg0": 0}))
	tr.Update(snap(map[string]uint64{"wg0": 100}))
	sample := tr.Sample("wg0")
	require.NotNil(t, sample)

	lane := sample.Lane
	tr.Update(snap(map[string]uint64{"wg0": 200}))
	assert.Equal(t, lane, tr.Sample("wg0").Lane)
}

func TestEmptySnapshotClearsTracking(t *testing.T) {
	tr := NewThroughputTracker(500*time.Millisecond, 300, nil)

	tr.Update(snap(map[string]uint64{"eth0": 0}))
	tr.Update(snap(map[string]uint64{"eth0": 1024}))
	require.Len(t, tr.Samples(), 1)

	// Unreadable source presents as an empty snapshot, not a fault.
	tr.Update(netstat.Snapshot{})
	assert.Empty(t, tr.Samples())
}
