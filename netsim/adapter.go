package netsim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Simulation is the explicit context binding one CompositeTopology and one
// EventQueue to all per-device adapters for a run. It replaces the original
// design's process-wide shared state: construct it first, then hand it to
// every collaborator. It also owns the adapter array, indexed by device id,
// so device objects have a single unambiguous owner and lifetime.
type Simulation struct {
	Topology *CompositeTopology
	Queue    *EventQueue

	adapters []*NetworkAdapter
	memory   *MemoryModel
}

// NewSimulation validates the configuration and assembles the topology,
// event queue, memory model, and one NetworkAdapter per device.
func NewSimulation(cfg *Config) (*Simulation, error) {
	topo, err := NewCompositeTopology(cfg)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		Topology: topo,
		Queue:    NewEventQueue(),
		memory:   NewMemoryModel(cfg.TopologyConfigs()[0]),
	}
	s.adapters = make([]*NetworkAdapter, topo.NPUsCount())
	for id := range s.adapters {
		s.adapters[id] = &NetworkAdapter{id: DeviceID(id), sim: s}
	}
	return s, nil
}

// NPUsCount is the total number of simulated devices.
func (s *Simulation) NPUsCount() int {
	return s.Topology.NPUsCount()
}

// Adapter returns the network adapter bound to a device id.
func (s *Simulation) Adapter(id DeviceID) *NetworkAdapter {
	if id < 0 || int(id) >= len(s.adapters) {
		panic(fmt.Sprintf("netsim: no adapter for device id %d (npus=%d)", id, len(s.adapters)))
	}
	return s.adapters[id]
}

// Memory returns the shared HBM timing model.
func (s *Simulation) Memory() *MemoryModel {
	return s.memory
}

// Run drains the event queue, dispatching entries in timestamp order until
// no simulated activity remains. It returns the final simulated time.
func (s *Simulation) Run() float64 {
	logrus.Debugf("[t %012.3f] driver loop starting with %d pending entries", s.Queue.Now(), s.Queue.Len())
	for !s.Queue.Empty() {
		s.Queue.Proceed()
	}
	logrus.Debugf("[t %012.3f] event queue drained", s.Queue.Now())
	return s.Queue.Now()
}

// NetworkAdapter is the per-device boundary the external workload engine
// talks to. All adapters of one simulation share the simulation's topology
// and queue.
type NetworkAdapter struct {
	id  DeviceID
	sim *Simulation
}

// ID is the device this adapter is bound to.
func (a *NetworkAdapter) ID() DeviceID {
	return a.id
}

// Now is the current simulated time. The adapter never advances the clock.
func (a *NetworkAdapter) Now() float64 {
	return a.sim.Queue.Now()
}

// Memory is the HBM timing model for this device.
func (a *NetworkAdapter) Memory() *MemoryModel {
	return a.sim.memory
}

// Send issues a transfer of messageBytes from src to dst and schedules
// completion after the analytical delay. src must be this adapter's own
// device. The call returns immediately; completion is observed only when the
// driver loop dispatches it. Cancellation is not supported: once scheduled,
// the callback runs.
func (a *NetworkAdapter) Send(src, dst DeviceID, messageBytes float64, completion func()) {
	if src != a.id {
		panic(fmt.Sprintf("netsim: adapter %d asked to send from device %d", a.id, src))
	}
	delay := a.sim.Topology.SendDelay(src, dst, messageBytes)
	logrus.Debugf("[t %012.3f] send %d -> %d (%.0f bytes), delay %.3f", a.Now(), src, dst, messageBytes, delay)
	a.sim.Queue.Schedule(delay, completion)
}
