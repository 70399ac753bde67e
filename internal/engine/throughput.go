// Package engine holds the dashboard's live state: per-interface throughput
// history, connection transition tracking, and the interaction state machine.
// It is pure state - no I/O happens here - so every piece is directly
// testable with synthetic inputs.
package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/renaudg/netdash/internal/netstat"
)

// Lane classifies an interface by name prefix: physical uplink, wireless
// radio, tunnel overlay, or other. The lane drives graph selection and
// color-coding and is fixed for the lifetime of a sample.
type Lane int

const (
	LaneOther Lane = iota
	LanePhysical
	LaneWireless
	LaneTunnel
)

// String returns a human-readable lane label.
func (l Lane) String() string {
	switch l {
	case LanePhysical:
		return "physical"
	case LaneWireless:
		return "wireless"
	case LaneTunnel:
		return "tunnel"
	default:
		return "other"
	}
}

// ClassifyLane maps an interface name to its lane.
func ClassifyLane(name string) Lane {
	switch {
	case strings.HasPrefix(name, "wl"):
		return LaneWireless
	case strings.HasPrefix(name, "en") || strings.HasPrefix(name, "eth"):
		return LanePhysical
	case strings.HasPrefix(name, "tun") || strings.HasPrefix(name, "tap") ||
		strings.HasPrefix(name, "wg") || strings.HasPrefix(name, "ppp"):
		return LaneTunnel
	default:
		return LaneOther
	}
}

// Point is one throughput sample: logical tick number on the x-axis,
// megabits per second on the y-axis.
type Point struct {
	Seq  float64
	Mbps float64
}

// InterfaceSample is one interface's live throughput state.
type InterfaceSample struct {
	Name    string
	Lane    Lane
	history []Point
}

// History returns the retained samples, oldest first. The returned slice is
// the tracker's own storage; callers must treat it as read-only.
func (s *InterfaceSample) History() []Point {
	return s.history
}

// CurrentSpeed returns the most recent throughput in Mbps, or 0 when no
// sample has been recorded yet.
func (s *InterfaceSample) CurrentSpeed() float64 {
	if len(s.history) == 0 {
		return 0
	}
	return s.history[len(s.history)-1].Mbps
}

// ThroughputTracker converts successive counter snapshots into bounded
// per-interface throughput histories.
type ThroughputTracker struct {
	interval    time.Duration
	historySize int
	excluded    []string

	prev     netstat.Snapshot
	baseline bool
	seq      float64
	samples  map[string]*InterfaceSample
}

// NewThroughputTracker creates a tracker. interval is the fixed tick period
// used to convert byte deltas into rates; historySize bounds each
// interface's retained history; excludedPrefixes lists interface-name
// prefixes that are never tracked (loopback, container bridges).
func NewThroughputTracker(interval time.Duration, historySize int, excludedPrefixes []string) *ThroughputTracker {
	if historySize <= 0 {
		historySize = 300
	}
	return &ThroughputTracker{
		interval:    interval,
		historySize: historySize,
		excluded:    excludedPrefixes,
		samples:     make(map[string]*InterfaceSample),
	}
}

// Update ingests one counter snapshot. The first call only records a
// baseline; every later call appends one point per interface present in
// both this snapshot and the previous one, then drops samples for
// interfaces that disappeared from the source.
func (t *ThroughputTracker) Update(snap netstat.Snapshot) {
	if !t.baseline {
		t.prev = snap
		t.baseline = true
		return
	}

	t.seq++
	for name, cur := range snap {
		if t.isExcluded(name) {
			continue
		}
		old, ok := t.prev[name]
		if !ok {
			// No baseline for this interface yet; it gets one now and a
			// first point on the next tick.
			continue
		}

		// Saturating delta: a wrapped or reset counter yields 0, never a
		// negative rate.
		var delta uint64
		if cur.Rx > old.Rx {
			delta = cur.Rx - old.Rx
		}
		mbps := float64(delta) * 8 / (t.interval.Seconds() * 1024 * 1024)

		sample, ok := t.samples[name]
		if !ok {
			sample = &InterfaceSample{Name: name, Lane: ClassifyLane(name)}
			t.samples[name] = sample
		}
		sample.history = append(sample.history, Point{Seq: t.seq, Mbps: mbps})
		if len(sample.history) > t.historySize {
			sample.history = sample.history[1:]
		}
	}

	t.prev = snap

	// GC interfaces absent from the source.
	for name := range t.samples {
		if _, ok := snap[name]; !ok {
			delete(t.samples, name)
		}
	}
}

// Seq returns the latest sequence number (one unit per tick).
func (t *ThroughputTracker) Seq() float64 {
	return t.seq
}

// Sample returns the tracked sample for an interface, or nil.
func (t *ThroughputTracker) Sample(name string) *InterfaceSample {
	return t.samples[name]
}

// Samples returns all tracked samples sorted by interface name.
func (t *ThroughputTracker) Samples() []*InterfaceSample {
	out := make([]*InterfaceSample, 0, len(t.samples))
	for _, s := range t.samples {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (t *ThroughputTracker) isExcluded(name string) bool {
	for _, p := range t.excluded {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
