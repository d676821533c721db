package netsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinates_RoundTrip(t *testing.T) {
	for _, cfg := range []*Config{ringConfig(), torusConfig(3, 4), torusConfig(5, 2)} {
		ct, err := NewCompositeTopology(cfg)
		require.NoError(t, err)
		for id := 0; id < ct.NPUsCount(); id++ {
			coords := ct.Coordinates(DeviceID(id))
			assert.Equal(t, DeviceID(id), ct.DeviceID(coords),
				"%s: round trip of id %d via %v", cfg.TopologyName, id, coords)
		}
	}
}

func TestCoordinates_Torus2DLayout(t *testing.T) {
	ct, err := NewCompositeTopology(torusConfig(3, 4))
	require.NoError(t, err)
	assert.Equal(t, 2, ct.Dimensions())

	// Least-significant dimension first: id = x + width*y.
	assert.Equal(t, []int{0, 0}, ct.Coordinates(0))
	assert.Equal(t, []int{2, 0}, ct.Coordinates(2))
	assert.Equal(t, []int{0, 1}, ct.Coordinates(3))
	assert.Equal(t, []int{2, 3}, ct.Coordinates(11))
}

func TestCoordinates_OutOfRangePanics(t *testing.T) {
	ct, err := NewCompositeTopology(ringConfig())
	require.NoError(t, err)
	assert.Panics(t, func() { ct.Coordinates(4) })
	assert.Panics(t, func() { ct.Coordinates(-1) })
	assert.Panics(t, func() { ct.DeviceID([]int{0, 0}) })
	assert.Panics(t, func() { ct.DeviceID([]int{4}) })
}

func TestSendDelay_WorkedRingScenario(t *testing.T) {
	ct, err := NewCompositeTopology(ringConfig())
	require.NoError(t, err)

	// hops(0,2)=2, fixed = 2*2 + 2*(10+5) = 34, serialization = 1000.
	assert.InDelta(t, 1034.0, ct.SendDelay(0, 2, 1000), 1e-9)
}

func TestSendDelay_SelfSend(t *testing.T) {
	ct, err := NewCompositeTopology(ringConfig())
	require.NoError(t, err)

	// Zero-hop case: 2*nic + serialization.
	assert.InDelta(t, 4.0+100, ct.SendDelay(1, 1, 100), 1e-9)
	// Zero-size self-send reduces to 2*nic.
	assert.InDelta(t, 4.0, ct.SendDelay(1, 1, 0), 1e-9)
}

func TestSendDelay_Torus2DSumsDifferingDimensions(t *testing.T) {
	ct, err := NewCompositeTopology(torusConfig(3, 4))
	require.NoError(t, err)

	const size = 120.0
	// (0,0) -> (2,1): one wrap hop on the width ring, one hop on the height ring.
	src := ct.DeviceID([]int{0, 0})
	dst := ct.DeviceID([]int{2, 1})
	dim0 := 2*2.0 + 1*(10.0+5.0) + size/1.0
	dim1 := 2*3.0 + 1*(20.0+7.0) + size/2.0
	assert.InDelta(t, dim0+dim1, ct.SendDelay(src, dst, size), 1e-9)

	// Same row: only the width dimension is traversed.
	dstRow := ct.DeviceID([]int{1, 0})
	assert.InDelta(t, 2*2.0+1*(10.0+5.0)+size/1.0, ct.SendDelay(src, dstRow, size), 1e-9)

	// Same column: only the height dimension is traversed.
	dstCol := ct.DeviceID([]int{0, 2})
	assert.InDelta(t, 2*3.0+2*(20.0+7.0)+size/2.0, ct.SendDelay(src, dstCol, size), 1e-9)
}

func TestSendDelay_Symmetric(t *testing.T) {
	ct, err := NewCompositeTopology(torusConfig(4, 4))
	require.NoError(t, err)
	for src := 0; src < ct.NPUsCount(); src++ {
		for dst := 0; dst < ct.NPUsCount(); dst++ {
			assert.InDelta(t,
				ct.SendDelay(DeviceID(src), DeviceID(dst), 256),
				ct.SendDelay(DeviceID(dst), DeviceID(src), 256), 1e-9,
				"delay(%d,%d) != delay(%d,%d)", src, dst, dst, src)
		}
	}
}

func TestSendDelay_NegativeSizePanics(t *testing.T) {
	ct, err := NewCompositeTopology(ringConfig())
	require.NoError(t, err)
	assert.Panics(t, func() { ct.SendDelay(0, 1, -1) })
}

func TestNewCompositeTopology_RejectsInvalidConfig(t *testing.T) {
	cfg := ringConfig()
	cfg.TopologyName = TopologyAllToAll
	_, err := NewCompositeTopology(cfg)
	assert.Error(t, err)
}
