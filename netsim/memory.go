package netsim

// MemoryModel is the on-device HBM timing collaborator. It consumes the
// hbm-* configuration fields that the network delay formula itself leaves
// untouched, estimating how long a message's payload takes to move through
// device memory before it can enter the network.
type MemoryModel struct {
	latency   float64
	bandwidth float64
	scale     float64
}

// NewMemoryModel builds the model from a dimension's configuration.
func NewMemoryModel(cfg TopologyConfig) *MemoryModel {
	return &MemoryModel{
		latency:   cfg.HBMLatency,
		bandwidth: cfg.HBMBandwidth,
		scale:     cfg.HBMScale,
	}
}

// AccessDelay is the scaled closed-form memory access time for a payload:
// scale * (latency + bytes/bandwidth).
func (m *MemoryModel) AccessDelay(messageBytes float64) float64 {
	return m.scale * (m.latency + messageBytes/m.bandwidth)
}
