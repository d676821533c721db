// Package workload synthesizes network traffic for the CLI driver. The real
// workload engine sits outside the core; this generator stands in for it so
// a run is complete end to end: it times message injections, picks
// source/destination pairs per a traffic pattern, and schedules the sends
// onto a simulation.
package workload

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/analytical-sim/analytical-sim/netsim"
)

// Pattern selects which (src, dst) pairs the generator produces.
type Pattern string

const (
	// PatternUniform draws uniformly random distinct pairs.
	PatternUniform Pattern = "uniform"
	// PatternNeighbor sends from each device to its successor id, round-robin
	// over sources.
	PatternNeighbor Pattern = "neighbor"
	// PatternAllToAll runs full rounds of every ordered distinct pair.
	PatternAllToAll Pattern = "alltoall"
)

// Config parameterizes one synthetic traffic run.
type Config struct {
	Pattern  Pattern
	Messages int     // uniform/neighbor: message count; alltoall: full rounds
	Rate     float64 // mean injections per simulated time unit (Poisson)
	Seed     int64

	// Message sizes are clamped Gaussian, in bytes.
	MessageBytes      float64
	MessageBytesStdev float64
	MessageBytesMin   float64
	MessageBytesMax   float64

	// CommScale multiplies sampled sizes; InjectionScale multiplies Rate.
	// Both default to 1 when zero.
	CommScale      float64
	InjectionScale float64
}

// SizeSampler generates message sizes in bytes.
type SizeSampler interface {
	// Sample returns a positive byte count.
	Sample(rng *rand.Rand) float64
}

// GaussianSizeSampler produces clamped Gaussian message sizes.
type GaussianSizeSampler struct {
	Mean, Stdev float64
	Min, Max    float64
}

func (s *GaussianSizeSampler) Sample(rng *rand.Rand) float64 {
	if s.Min == s.Max {
		return s.Min
	}
	val := rng.NormFloat64()*s.Stdev + s.Mean
	clamped := math.Min(s.Max, math.Max(s.Min, val))
	if clamped < 1 {
		return 1
	}
	return clamped
}

// Generator produces timed send requests from a Config.
type Generator struct {
	cfg   Config
	rng   *rand.Rand
	sizes SizeSampler
}

// NewGenerator validates the traffic parameters and seeds the generator's
// RNG. The same seed and config always produce the same traffic.
func NewGenerator(cfg Config) (*Generator, error) {
	switch cfg.Pattern {
	case PatternUniform, PatternNeighbor, PatternAllToAll:
	default:
		return nil, fmt.Errorf("workload: unknown traffic pattern %q", cfg.Pattern)
	}
	if cfg.Messages < 1 {
		return nil, fmt.Errorf("workload: messages must be >= 1, got %d", cfg.Messages)
	}
	if cfg.Rate <= 0 {
		return nil, fmt.Errorf("workload: rate must be > 0, got %v", cfg.Rate)
	}
	if cfg.MessageBytes < 0 || cfg.MessageBytesMin < 0 || cfg.MessageBytesMax < cfg.MessageBytesMin {
		return nil, fmt.Errorf("workload: invalid message size bounds [%v, %v] around %v",
			cfg.MessageBytesMin, cfg.MessageBytesMax, cfg.MessageBytes)
	}
	if cfg.CommScale == 0 {
		cfg.CommScale = 1
	}
	if cfg.InjectionScale == 0 {
		cfg.InjectionScale = 1
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
		sizes: &GaussianSizeSampler{
			Mean:  cfg.MessageBytes,
			Stdev: cfg.MessageBytesStdev,
			Min:   cfg.MessageBytesMin,
			Max:   cfg.MessageBytesMax,
		},
	}, nil
}

// pairs materializes the ordered (src, dst) list for the configured pattern.
func (g *Generator) pairs(npus int) [][2]netsim.DeviceID {
	var out [][2]netsim.DeviceID
	switch g.cfg.Pattern {
	case PatternUniform:
		for i := 0; i < g.cfg.Messages; i++ {
			src := g.rng.Intn(npus)
			dst := g.rng.Intn(npus)
			if npus > 1 {
				for dst == src {
					dst = g.rng.Intn(npus)
				}
			}
			out = append(out, [2]netsim.DeviceID{netsim.DeviceID(src), netsim.DeviceID(dst)})
		}
	case PatternNeighbor:
		for i := 0; i < g.cfg.Messages; i++ {
			src := i % npus
			out = append(out, [2]netsim.DeviceID{netsim.DeviceID(src), netsim.DeviceID((src + 1) % npus)})
		}
	case PatternAllToAll:
		for round := 0; round < g.cfg.Messages; round++ {
			for src := 0; src < npus; src++ {
				for dst := 0; dst < npus; dst++ {
					if src == dst {
						continue
					}
					out = append(out, [2]netsim.DeviceID{netsim.DeviceID(src), netsim.DeviceID(dst)})
				}
			}
		}
	}
	return out
}

// Fire schedules the whole traffic pattern onto a simulation and wires
// completions into the metrics accumulator. Injection times follow a Poisson
// process starting from the simulation's current clock; each message pays
// its source's HBM access delay before entering the network.
func (g *Generator) Fire(sim *netsim.Simulation, m *netsim.Metrics) {
	rate := g.cfg.Rate * g.cfg.InjectionScale
	delay := 0.0
	for _, pair := range g.pairs(sim.NPUsCount()) {
		src, dst := pair[0], pair[1]
		size := g.sizes.Sample(g.rng) * g.cfg.CommScale
		delay += g.rng.ExpFloat64() / rate

		adapter := sim.Adapter(src)
		sim.Queue.Schedule(delay, func() {
			// Payload leaves HBM first, then the send is issued.
			sim.Queue.Schedule(adapter.Memory().AccessDelay(size), func() {
				sent := adapter.Now()
				m.RecordSend(size)
				adapter.Send(src, dst, size, func() {
					m.RecordCompletion(adapter.Now() - sent)
				})
			})
		})
	}
}
