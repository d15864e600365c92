package thermocouple

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimlab/thermolog/pkg/daq"
)

func TestBuildPlan_T8(t *testing.T) {
	plan, err := BuildPlan([]int{0, 2}, TypeK, UnitCelsius, daq.DeviceT8)
	require.NoError(t, err)

	// Five EF entries per channel, channel-specific names, nothing else.
	require.Len(t, plan.EF, 10)
	want := []Entry{
		{Name: "AIN0_EF_INDEX", Value: 22},
		{Name: "AIN0_EF_CONFIG_A", Value: 1},
		{Name: "AIN0_EF_CONFIG_B", Value: 600},
		{Name: "AIN0_EF_CONFIG_D", Value: 1.0},
		{Name: "AIN0_EF_CONFIG_E", Value: 0.0},
		{Name: "AIN2_EF_INDEX", Value: 22},
		{Name: "AIN2_EF_CONFIG_A", Value: 1},
		{Name: "AIN2_EF_CONFIG_B", Value: 604},
		{Name: "AIN2_EF_CONFIG_D", Value: 1.0},
		{Name: "AIN2_EF_CONFIG_E", Value: 0.0},
	}
	assert.Equal(t, want, plan.EF)

	// T8 inputs are isolated: no negative channel writes.
	assert.Empty(t, plan.Negative)

	// Resolution index carries the channel's own number.
	assert.Equal(t, []Entry{
		{Name: "AIN0_RESOLUTION_INDEX", Value: 0},
		{Name: "AIN2_RESOLUTION_INDEX", Value: 2},
	}, plan.Resolution)
}

func TestBuildPlan_T7(t *testing.T) {
	plan, err := BuildPlan([]int{3}, TypeK, UnitKelvin, daq.DeviceT7)
	require.NoError(t, err)

	assert.Equal(t, []Entry{{Name: "AIN3_NEGATIVE_CH", Value: daq.GND}}, plan.Negative)
	assert.Equal(t, []Entry{{Name: "AIN3_RESOLUTION_INDEX", Value: 3}}, plan.Resolution)

	require.Len(t, plan.EF, 5)
	assert.Equal(t, Entry{Name: "AIN3_EF_CONFIG_A", Value: 0}, plan.EF[1])
	// Shared device temperature register for CJC.
	assert.Equal(t, Entry{Name: "AIN3_EF_CONFIG_B", Value: 60052}, plan.EF[2])
}

func TestBuildPlan_Deterministic(t *testing.T) {
	a, err := BuildPlan([]int{0, 2, 5}, TypeK, UnitCelsius, daq.DeviceT7)
	require.NoError(t, err)
	b, err := BuildPlan([]int{0, 2, 5}, TypeK, UnitCelsius, daq.DeviceT7)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildPlan_ResolutionOverride(t *testing.T) {
	plan, err := BuildPlan([]int{0, 2}, TypeK, UnitCelsius, daq.DeviceT8, WithResolutionIndex(8))
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Name: "AIN0_RESOLUTION_INDEX", Value: 8},
		{Name: "AIN2_RESOLUTION_INDEX", Value: 8},
	}, plan.Resolution)
}

func TestBuildPlan_UnsupportedDevice(t *testing.T) {
	_, err := BuildPlan([]int{0}, TypeK, UnitCelsius, daq.DeviceT4)
	assert.ErrorIs(t, err, daq.ErrUnsupportedDevice)
}

func TestBuildPlan_UnsupportedType(t *testing.T) {
	_, err := BuildPlan([]int{0}, TypeJ, UnitCelsius, daq.DeviceT7)
	assert.ErrorIs(t, err, ErrUnsupportedConfiguration)
}

func TestBuildPlan_InvalidChannels(t *testing.T) {
	_, err := BuildPlan([]int{-1}, TypeK, UnitCelsius, daq.DeviceT7)
	assert.ErrorIs(t, err, daq.ErrInvalidChannel)

	_, err = BuildPlan([]int{150}, TypeK, UnitCelsius, daq.DeviceT7)
	assert.ErrorIs(t, err, daq.ErrInvalidChannel)

	_, err = BuildPlan([]int{1, 1}, TypeK, UnitCelsius, daq.DeviceT7)
	assert.Error(t, err)

	_, err = BuildPlan(nil, TypeK, UnitCelsius, daq.DeviceT7)
	assert.Error(t, err)
}

func TestRegisterPlan_Entries_WriteOrder(t *testing.T) {
	plan, err := BuildPlan([]int{0}, TypeK, UnitCelsius, daq.DeviceT7)
	require.NoError(t, err)

	entries := plan.Entries()
	require.Len(t, entries, 7)
	assert.Equal(t, "AIN0_NEGATIVE_CH", entries[0].Name)
	assert.Equal(t, "AIN0_RESOLUTION_INDEX", entries[1].Name)
	assert.Equal(t, "AIN0_EF_INDEX", entries[2].Name)
}

func TestRegisterPlan_ReadNames(t *testing.T) {
	plan, err := BuildPlan([]int{0, 2}, TypeK, UnitCelsius, daq.DeviceT8)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"AIN0_EF_READ_A",
		"AIN0_EF_READ_B",
		"AIN0_EF_READ_C",
		"AIN2_EF_READ_A",
		"AIN2_EF_READ_B",
		"AIN2_EF_READ_C",
	}, plan.ReadNames())
}
