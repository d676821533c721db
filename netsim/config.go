package netsim

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// TopologyName is the interconnect shape requested by the configuration
// document.
type TopologyName string

const (
	TopologyFullyConnected TopologyName = "FullyConnected"
	TopologyRing           TopologyName = "Ring"
	TopologySwitch         TopologyName = "Switch"
	TopologyTorus2D        TopologyName = "Torus2D"

	// TopologyAllToAll is recognized by the configuration grammar but has no
	// implementation; requesting it is a configuration error, never a silent
	// fallback.
	TopologyAllToAll TopologyName = "AllToAll"
)

// Config mirrors the network configuration document. The per-dimension
// parameters are parallel arrays, each of length DimensionsCount.
type Config struct {
	TopologyName    TopologyName `json:"topology-name" yaml:"topology-name"`
	UseFastVersion  bool         `json:"use-fast-version" yaml:"use-fast-version"`
	DimensionsCount int          `json:"dimensions-count" yaml:"dimensions-count"`

	UnitsCount    []int     `json:"units-count" yaml:"units-count"`
	LinkLatency   []float64 `json:"link-latency" yaml:"link-latency"`
	LinkBandwidth []float64 `json:"link-bandwidth" yaml:"link-bandwidth"`
	NICLatency    []float64 `json:"nic-latency" yaml:"nic-latency"`
	RouterLatency []float64 `json:"router-latency" yaml:"router-latency"`
	HBMLatency    []float64 `json:"hbm-latency" yaml:"hbm-latency"`
	HBMBandwidth  []float64 `json:"hbm-bandwidth" yaml:"hbm-bandwidth"`
	HBMScale      []float64 `json:"hbm-scale" yaml:"hbm-scale"`
}

// TopologyConfig holds the immutable parameters of one addressing dimension.
// Latencies are in simulated time units, bandwidths in bytes per time unit.
// The HBM fields are carried for the memory-model collaborator; the network
// delay formula does not consume them.
type TopologyConfig struct {
	NPUsCount     int
	LinkLatency   float64
	LinkBandwidth float64
	NICLatency    float64
	RouterLatency float64
	HBMLatency    float64
	HBMBandwidth  float64
	HBMScale      float64
}

// FieldError names one offending configuration field and why it was rejected.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationErrors is every problem found in a single validation pass, so a
// user can fix the document in one round trip. The caller decides whether to
// abort; the core never exits on its own.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return "invalid network configuration: " + strings.Join(msgs, "; ")
}

// LoadConfig reads and validates a network configuration document. Files
// ending in .yaml or .yml are decoded as YAML, anything else as JSON; both
// decoders reject unknown fields so typos surface as errors.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read network configuration: %w", err)
	}

	var cfg Config
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse network configuration %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logrus.Infof("Loaded network configuration %s: topology=%s dimensions=%d npus=%d",
		path, cfg.TopologyName, cfg.DimensionsCount, cfg.NPUsCount())
	return &cfg, nil
}

// expectedDimensions returns the dimension count an implemented topology
// requires, or -1 for names with no implementation.
func expectedDimensions(name TopologyName) int {
	switch name {
	case TopologyFullyConnected, TopologyRing, TopologySwitch:
		return 1
	case TopologyTorus2D:
		return 2
	}
	return -1
}

// Validate checks the whole document and returns a ValidationErrors listing
// every violation, or nil if the configuration is usable.
func (c *Config) Validate() error {
	var errs ValidationErrors

	switch c.TopologyName {
	case TopologyFullyConnected, TopologyRing, TopologySwitch, TopologyTorus2D:
		if want := expectedDimensions(c.TopologyName); c.DimensionsCount != want {
			errs = append(errs, FieldError{"dimensions-count",
				fmt.Sprintf("topology %s requires %d dimension(s), got %d", c.TopologyName, want, c.DimensionsCount)})
		}
	case TopologyAllToAll:
		errs = append(errs, FieldError{"topology-name",
			"topology AllToAll is recognized but not implemented"})
	default:
		errs = append(errs, FieldError{"topology-name",
			fmt.Sprintf("unknown topology %q", c.TopologyName)})
	}

	if !c.UseFastVersion {
		errs = append(errs, FieldError{"use-fast-version",
			"detailed per-hop mode is not implemented; only the fast analytical mode is supported"})
	}

	if c.DimensionsCount < 1 {
		errs = append(errs, FieldError{"dimensions-count",
			fmt.Sprintf("must be >= 1, got %d", c.DimensionsCount)})
		return errs
	}

	arrays := []struct {
		field string
		len   int
	}{
		{"units-count", len(c.UnitsCount)},
		{"link-latency", len(c.LinkLatency)},
		{"link-bandwidth", len(c.LinkBandwidth)},
		{"nic-latency", len(c.NICLatency)},
		{"router-latency", len(c.RouterLatency)},
		{"hbm-latency", len(c.HBMLatency)},
		{"hbm-bandwidth", len(c.HBMBandwidth)},
		{"hbm-scale", len(c.HBMScale)},
	}
	lengthsOK := true
	for _, a := range arrays {
		if a.len != c.DimensionsCount {
			errs = append(errs, FieldError{a.field,
				fmt.Sprintf("length %d does not match dimensions-count %d", a.len, c.DimensionsCount)})
			lengthsOK = false
		}
	}
	if !lengthsOK {
		return errs
	}

	for i := 0; i < c.DimensionsCount; i++ {
		dim := func(field string) string { return fmt.Sprintf("%s[%d]", field, i) }
		if c.UnitsCount[i] < 1 {
			errs = append(errs, FieldError{dim("units-count"),
				fmt.Sprintf("must be >= 1, got %d", c.UnitsCount[i])})
		}
		if c.LinkBandwidth[i] <= 0 {
			errs = append(errs, FieldError{dim("link-bandwidth"),
				fmt.Sprintf("must be > 0, got %v", c.LinkBandwidth[i])})
		}
		if c.HBMBandwidth[i] <= 0 {
			errs = append(errs, FieldError{dim("hbm-bandwidth"),
				fmt.Sprintf("must be > 0, got %v", c.HBMBandwidth[i])})
		}
		for _, lat := range []struct {
			field string
			val   float64
		}{
			{"link-latency", c.LinkLatency[i]},
			{"nic-latency", c.NICLatency[i]},
			{"router-latency", c.RouterLatency[i]},
			{"hbm-latency", c.HBMLatency[i]},
			{"hbm-scale", c.HBMScale[i]},
		} {
			if lat.val < 0 {
				errs = append(errs, FieldError{dim(lat.field),
					fmt.Sprintf("must be >= 0, got %v", lat.val)})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TopologyConfigs converts the parallel arrays into the ordered dimension
// list. Call only after Validate has passed.
func (c *Config) TopologyConfigs() []TopologyConfig {
	tcs := make([]TopologyConfig, c.DimensionsCount)
	for i := 0; i < c.DimensionsCount; i++ {
		tcs[i] = TopologyConfig{
			NPUsCount:     c.UnitsCount[i],
			LinkLatency:   c.LinkLatency[i],
			LinkBandwidth: c.LinkBandwidth[i],
			NICLatency:    c.NICLatency[i],
			RouterLatency: c.RouterLatency[i],
			HBMLatency:    c.HBMLatency[i],
			HBMBandwidth:  c.HBMBandwidth[i],
			HBMScale:      c.HBMScale[i],
		}
	}
	return tcs
}

// NPUsCount is the total device count: the product of units-count across all
// dimensions.
func (c *Config) NPUsCount() int {
	total := 1
	for _, n := range c.UnitsCount {
		total *= n
	}
	return total
}
