// Package netsim is the analytical, congestion-unaware network core of the
// simulator. It predicts message transfer times between NPUs arranged in a
// configurable multi-dimensional interconnect, in closed form, with no
// per-packet contention modeling.
//
// # Reading Guide
//
//   - config.go: the network configuration document and its validation
//   - topology.go: single-dimension hop-count models (FullyConnected, Ring, Switch)
//   - composite.go: device-id coordinate codec and cross-dimension delay
//   - eventqueue.go: the time-ordered callback scheduler and simulated clock
//   - adapter.go: the Simulation context and per-device NetworkAdapter surface
//
// The external workload engine issues sends through a NetworkAdapter; the
// composite topology converts each send into a delay; the event queue orders
// completion callbacks on the simulated timeline. The whole package is
// single-threaded and cooperative: a multi-threaded host must serialize all
// calls into it.
package netsim
