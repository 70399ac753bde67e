// Package netstat reads live interface state from the kernel: cumulative
// byte counters and assigned addresses. It never returns errors to callers;
// an unreadable source degrades to empty data and heals on the next poll.
package netstat

import (
	"net"

	gnet "github.com/shirou/gopsutil/v4/net"
)

// Counters holds one interface's cumulative byte counters.
type Counters struct {
	Rx uint64
	Tx uint64
}

// Snapshot maps interface name to its cumulative counters at one instant.
type Snapshot map[string]Counters

// CounterSource supplies counter snapshots on demand.
type CounterSource interface {
	Snapshot() Snapshot
}

// AddressSource lists interfaces that currently hold a routable address.
type AddressSource interface {
	ActiveAddresses() []InterfaceAddress
}

// InterfaceAddress pairs an interface name with one of its addresses.
type InterfaceAddress struct {
	Name    string
	Address string
}

// KernelSource reads counters and addresses from the running kernel.
type KernelSource struct{}

// NewKernelSource returns a source backed by the local kernel.
func NewKernelSource() *KernelSource {
	return &KernelSource{}
}

// Snapshot returns the current per-interface byte counters. A failure to
// read the counters yields an empty snapshot, not an error: the tracker
// treats that as "no interfaces" and retries on the next tick.
func (s *KernelSource) Snapshot() Snapshot {
	counters, err := gnet.IOCounters(true)
	if err != nil {
		return Snapshot{}
	}
	snap := make(Snapshot, len(counters))
	for _, c := range counters {
		snap[c.Name] = Counters{Rx: c.BytesRecv, Tx: c.BytesSent}
	}
	return snap
}

// ActiveAddresses returns the IPv4 address of every up, non-loopback
// interface that has one. Used only to decide graph visibility.
func (s *KernelSource) ActiveAddresses() []InterfaceAddress {
	ifs, err := net.Interfaces()
	if err != nil {
		return nil
	}

	var out []InterfaceAddress
	for _, nif := range ifs {
		if nif.Flags&net.FlagLoopback != 0 || nif.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, err := nif.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			ipnet, ok := a.(*net.IPNet)
			if !ok {
				continue
			}
			v4 := ipnet.IP.To4()
			if v4 == nil {
				continue
			}
			out = append(out, InterfaceAddress{Name: nif.Name, Address: v4.String()})
			break
		}
	}
	return out
}
