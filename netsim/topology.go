package netsim

import "fmt"

// TopologyKind enumerates the single-dimension interconnect shapes. It is a
// closed set: every switch over it is exhaustive, so an unsupported kind can
// never flow silently through a hop-count or delay computation.
type TopologyKind int

const (
	// KindFullyConnected links every pair of distinct devices directly.
	KindFullyConnected TopologyKind = iota
	// KindRing arranges devices on a cycle, traversed the shorter way round.
	KindRing
	// KindSwitch routes every message through one central switch; the switch
	// cost is folded into the per-hop cost rather than counted as a hop.
	KindSwitch
)

func (k TopologyKind) String() string {
	switch k {
	case KindFullyConnected:
		return "FullyConnected"
	case KindRing:
		return "Ring"
	case KindSwitch:
		return "Switch"
	}
	return fmt.Sprintf("TopologyKind(%d)", int(k))
}

// BasicTopology is the hop and delay model of one addressing dimension.
// A Torus2D interconnect never appears here: it is realized as two stacked
// Ring dimensions by the composite topology.
type BasicTopology struct {
	Kind TopologyKind
	Cfg  TopologyConfig
}

// HopCount returns the number of link traversals between two devices local
// to this dimension. It is pure and total over 0 <= src, dst < NPUsCount;
// out-of-range indices are a wiring defect and panic.
func (t BasicTopology) HopCount(src, dst int) int {
	n := t.Cfg.NPUsCount
	if src < 0 || src >= n || dst < 0 || dst >= n {
		panic(fmt.Sprintf("netsim: device index out of range: src=%d dst=%d npus=%d", src, dst, n))
	}
	if src == dst {
		return 0
	}
	switch t.Kind {
	case KindFullyConnected, KindSwitch:
		return 1
	case KindRing:
		d := src - dst
		if d < 0 {
			d = -d
		}
		if wrap := n - d; wrap < d {
			return wrap
		}
		return d
	}
	panic(fmt.Sprintf("netsim: unsupported topology kind %v", t.Kind))
}

// Delay is the closed-form congestion-unaware transfer time for a message
// crossing this dimension in the given number of hops:
//
//	2*nic + hops*(link + router) + bytes/bandwidth
//
// There is no contention term.
func (t BasicTopology) Delay(hops int, messageBytes float64) float64 {
	if hops < 0 {
		panic(fmt.Sprintf("netsim: negative hop count %d", hops))
	}
	fixed := 2*t.Cfg.NICLatency + float64(hops)*(t.Cfg.LinkLatency+t.Cfg.RouterLatency)
	return fixed + messageBytes/t.Cfg.LinkBandwidth
}
