package netsim

import "fmt"

// DeviceID is a global NPU identifier in [0, NPUsCount).
type DeviceID int

// CompositeTopology composes one BasicTopology per addressing dimension and
// maps global device pairs to transfer delays. A global device id decomposes
// into one coordinate per dimension via mixed-radix encoding over the
// per-dimension unit counts, least-significant dimension first.
type CompositeTopology struct {
	dims      []BasicTopology
	npusCount int
}

// NewCompositeTopology selects the per-dimension topology variants for a
// configuration. Torus2D expands into two stacked Ring dimensions, one per
// axis, each carrying its own axis parameters; the remaining topologies map
// to a single dimension of the matching kind.
func NewCompositeTopology(cfg *Config) (*CompositeTopology, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tcs := cfg.TopologyConfigs()
	var dims []BasicTopology
	switch cfg.TopologyName {
	case TopologyFullyConnected:
		dims = []BasicTopology{{Kind: KindFullyConnected, Cfg: tcs[0]}}
	case TopologyRing:
		dims = []BasicTopology{{Kind: KindRing, Cfg: tcs[0]}}
	case TopologySwitch:
		dims = []BasicTopology{{Kind: KindSwitch, Cfg: tcs[0]}}
	case TopologyTorus2D:
		dims = []BasicTopology{
			{Kind: KindRing, Cfg: tcs[0]},
			{Kind: KindRing, Cfg: tcs[1]},
		}
	default:
		// Validate already rejected anything else.
		panic(fmt.Sprintf("netsim: unreachable topology %q", cfg.TopologyName))
	}

	return &CompositeTopology{dims: dims, npusCount: cfg.NPUsCount()}, nil
}

// NPUsCount is the total number of addressable devices.
func (ct *CompositeTopology) NPUsCount() int {
	return ct.npusCount
}

// Dimensions returns the number of addressing dimensions.
func (ct *CompositeTopology) Dimensions() int {
	return len(ct.dims)
}

func (ct *CompositeTopology) checkDevice(id DeviceID) {
	if id < 0 || int(id) >= ct.npusCount {
		panic(fmt.Sprintf("netsim: device id %d out of range [0, %d)", id, ct.npusCount))
	}
}

// Coordinates decomposes a global device id into one index per dimension,
// least-significant dimension first.
func (ct *CompositeTopology) Coordinates(id DeviceID) []int {
	ct.checkDevice(id)
	coords := make([]int, len(ct.dims))
	rem := int(id)
	for i, dim := range ct.dims {
		coords[i] = rem % dim.Cfg.NPUsCount
		rem /= dim.Cfg.NPUsCount
	}
	return coords
}

// DeviceID is the inverse of Coordinates; together they form a bijection
// over [0, NPUsCount).
func (ct *CompositeTopology) DeviceID(coords []int) DeviceID {
	if len(coords) != len(ct.dims) {
		panic(fmt.Sprintf("netsim: got %d coordinates for %d dimensions", len(coords), len(ct.dims)))
	}
	id := 0
	radix := 1
	for i, dim := range ct.dims {
		n := dim.Cfg.NPUsCount
		if coords[i] < 0 || coords[i] >= n {
			panic(fmt.Sprintf("netsim: coordinate %d out of range [0, %d) in dimension %d", coords[i], n, i))
		}
		id += coords[i] * radix
		radix *= n
	}
	return DeviceID(id)
}

// SendDelay returns the analytical transfer time of a message between two
// global devices. The message traverses exactly the dimensions in which the
// two coordinates differ; per-dimension delays compose serially. A self-send
// pays the zero-hop cost of the first dimension (2*nic plus serialization).
func (ct *CompositeTopology) SendDelay(src, dst DeviceID, messageBytes float64) float64 {
	if messageBytes < 0 {
		panic(fmt.Sprintf("netsim: negative message size %v", messageBytes))
	}
	srcCoords := ct.Coordinates(src)
	dstCoords := ct.Coordinates(dst)

	delay := 0.0
	traversed := false
	for i, dim := range ct.dims {
		if srcCoords[i] == dstCoords[i] {
			continue
		}
		hops := dim.HopCount(srcCoords[i], dstCoords[i])
		delay += dim.Delay(hops, messageBytes)
		traversed = true
	}
	if !traversed {
		delay = ct.dims[0].Delay(0, messageBytes)
	}
	return delay
}
